package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	authservice "github.com/rewardly/cbs/internal/application/auth"
	"github.com/rewardly/cbs/internal/application/campaigns"
	"github.com/rewardly/cbs/internal/application/cashback"
	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/server/middleware"
	"github.com/rewardly/cbs/internal/server/websocket"
	"github.com/rewardly/cbs/pkg/config"
)

type Handlers struct {
	LedgerSvc   ledger.ILedgerService
	CashbackSvc cashback.ICashbackService
	MonitorSvc  monitor.IMonitorService
	CampaignSvc campaigns.ICampaignService
	AuthSvc     authservice.IAuthService
	DB          *database.DBManager
	WsHub       *websocket.WsHub
	Logger      zerolog.Logger
	Config      *config.Config
}

func New(
	ledgerSvc ledger.ILedgerService,
	cashbackSvc cashback.ICashbackService,
	monitorSvc monitor.IMonitorService,
	campaignSvc campaigns.ICampaignService,
	authSvc authservice.IAuthService,
	db *database.DBManager,
	wsHub *websocket.WsHub,
	logger zerolog.Logger,
	config *config.Config,
) *Handlers {
	return &Handlers{
		LedgerSvc:   ledgerSvc,
		CashbackSvc: cashbackSvc,
		MonitorSvc:  monitorSvc,
		CampaignSvc: campaignSvc,
		AuthSvc:     authSvc,
		DB:          db,
		WsHub:       wsHub,
		Logger:      logger,
		Config:      config,
	}
}

func (h *Handlers) SetupHandlers(router *gin.Engine) {
	mw := middleware.NewMiddleware(h.AuthSvc, h.Logger)
	mw.SetupMiddleware(router)

	budgetHandler := NewBudgetHandler(h.LedgerSvc, h.MonitorSvc, h.Logger)
	cashbackHandler := NewCashbackHandler(h.CashbackSvc, h.Logger)
	campaignHandler := NewCampaignHandler(h.CampaignSvc, h.Logger)
	alertHandler := NewAlertHandler(h.MonitorSvc, h.Logger)
	healthHandler := NewHealthHandler(h.DB)
	wsHandler := NewWebSocketHandler(h.WsHub, h.Logger)

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// WebSocket endpoint; the token rides in the query string.
	router.GET("/events", mw.AuthMiddleware(), wsHandler.HandleConnection)

	v1 := router.Group("/v1")

	// Dashboard surface: merchants and back-office staff with JWTs.
	dashboard := v1.Group("", mw.AuthMiddleware())
	{
		budgets := dashboard.Group("/budgets")
		{
			budgets.POST("", budgetHandler.CreateBudget)
			budgets.POST("/:budget_id/load", budgetHandler.Load)
			budgets.POST("/:budget_id/deduct", budgetHandler.Deduct)
			budgets.PUT("/:budget_id/status", budgetHandler.UpdateStatus)
			budgets.GET("/:budget_id/movements", budgetHandler.Movements)
		}

		merchants := dashboard.Group("/merchants/:merchant_id")
		{
			merchants.GET("/budget", budgetHandler.GetBudgetByMerchant)
			merchants.GET("/budget/utilization", budgetHandler.Utilization)
			merchants.GET("/budget/stats", budgetHandler.Stats)
			merchants.GET("/movements", budgetHandler.MovementsByMerchant)
			merchants.GET("/cashback", cashbackHandler.ListByMerchant)
			merchants.GET("/cashback/original/:original_transaction_id", cashbackHandler.GetByOriginal)
			merchants.GET("/campaigns", campaignHandler.ListByMerchant)
			merchants.POST("/campaigns/pause", campaignHandler.PauseAll)
			merchants.POST("/campaigns/resume", campaignHandler.ResumeAll)
			merchants.GET("/alerts", alertHandler.ListByMerchant)
			merchants.POST("/check", alertHandler.Check)
		}

		dashboard.GET("/customers/:customer_id/cashback", cashbackHandler.ListByCustomer)
		dashboard.GET("/campaigns/:id", campaignHandler.GetByID)
		dashboard.PUT("/alerts/:id/acknowledge", alertHandler.Acknowledge)
		dashboard.GET("/cashback/:id", cashbackHandler.GetByID)
		dashboard.PUT("/cashback/:id/retry", cashbackHandler.Retry)
		dashboard.PUT("/cashback/:id/dispute", cashbackHandler.MarkDisputed)
	}

	// Service surface: the transaction collaborator and ops tooling with
	// the shared API key.
	service := v1.Group("/internal", mw.APIKeyMiddleware())
	{
		service.POST("/cashback", cashbackHandler.Submit)
		service.POST("/cashback/:id/process", cashbackHandler.Process)
		service.POST("/cashback/process-batch", cashbackHandler.ProcessPendingBatch)
		service.GET("/budgets/at-risk", budgetHandler.AtRisk)
		service.POST("/sweep/thresholds", alertHandler.Sweep)
		service.POST("/sweep/campaigns", campaignHandler.CompleteExpired)
	}
}
