package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	authservice "github.com/rewardly/cbs/internal/application/auth"
	"github.com/rewardly/cbs/internal/application/campaigns"
	"github.com/rewardly/cbs/internal/application/cashback"
	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/jobs"
	"github.com/rewardly/cbs/internal/server/handlers"
	"github.com/rewardly/cbs/internal/server/websocket"
	"github.com/rewardly/cbs/pkg/config"
)

type Server struct {
	LedgerSvc   ledger.ILedgerService
	CashbackSvc cashback.ICashbackService
	MonitorSvc  monitor.IMonitorService
	CampaignSvc campaigns.ICampaignService
	AuthSvc     authservice.IAuthService
	DB          *database.DBManager
	Cfg         *config.Config
	Logger      zerolog.Logger
	Router      *gin.Engine
	httpServer  *http.Server
	WsHub       *websocket.WsHub
	Sweeper     *jobs.Sweeper
}

func New(
	cfg *config.Config,
	ledgerSvc ledger.ILedgerService,
	cashbackSvc cashback.ICashbackService,
	monitorSvc monitor.IMonitorService,
	campaignSvc campaigns.ICampaignService,
	authSvc authservice.IAuthService,
	db *database.DBManager,
	wsHub *websocket.WsHub,
	sweeper *jobs.Sweeper,
	logger zerolog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		Cfg:         cfg,
		LedgerSvc:   ledgerSvc,
		CashbackSvc: cashbackSvc,
		MonitorSvc:  monitorSvc,
		CampaignSvc: campaignSvc,
		AuthSvc:     authSvc,
		DB:          db,
		Logger:      logger,
		Router:      gin.New(),
		WsHub:       wsHub,
		Sweeper:     sweeper,
	}
}

func (s *Server) SetupRouter() {
	handler := handlers.New(
		s.LedgerSvc,
		s.CashbackSvc,
		s.MonitorSvc,
		s.CampaignSvc,
		s.AuthSvc,
		s.DB,
		s.WsHub,
		s.Logger,
		s.Cfg,
	)
	handler.SetupHandlers(s.Router)
}

func (s *Server) Start() {
	s.SetupRouter()

	s.httpServer = &http.Server{
		Addr:         s.Cfg.Server.Host + ":" + s.Cfg.Server.Port,
		Handler:      s.Router,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go s.WsHub.Run()
	if s.Sweeper != nil {
		s.Sweeper.Start()
	}

	s.Logger.Info().Msgf("Starting server on %s", s.httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-stopChan
	s.Logger.Info().Msg("Shutdown signal received, shutting down server...")

	if s.Sweeper != nil {
		s.Sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.Logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	s.Logger.Info().Msg("Server exited gracefully")
}
