package main

import (
	authservice "github.com/rewardly/cbs/internal/application/auth"
	"github.com/rewardly/cbs/internal/application/campaigns"
	"github.com/rewardly/cbs/internal/application/cashback"
	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/internal/infrastructure/database"
	"github.com/rewardly/cbs/internal/jobs"
	"github.com/rewardly/cbs/internal/repositories/alertrepo"
	"github.com/rewardly/cbs/internal/repositories/budgetrepo"
	"github.com/rewardly/cbs/internal/repositories/campaignrepo"
	"github.com/rewardly/cbs/internal/repositories/cashbackrepo"
	"github.com/rewardly/cbs/internal/server"
	"github.com/rewardly/cbs/internal/server/websocket"
	"github.com/rewardly/cbs/pkg/config"
	"github.com/rewardly/cbs/pkg/logger"
)

func main() {
	logger := logger.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.ShutDown()

	budgetRepo := budgetrepo.New(db, logger)
	cashbackRepo := cashbackrepo.New(db, logger)
	campaignRepo := campaignrepo.New(db, logger)
	alertRepo := alertrepo.New(db, logger)

	wsHub := websocket.NewWsHub(logger)

	ledgerService := ledger.NewLedgerService(budgetRepo, logger)
	campaignService := campaigns.NewCampaignService(campaignRepo, logger)
	monitorService := monitor.NewMonitorService(
		ledgerService,
		campaignService,
		alertRepo,
		wsHub,
		cfg.Alerts,
		cfg.Sweeps.AlertRetention,
		logger,
	)
	cashbackService := cashback.NewCashbackService(cashbackRepo, ledgerService, monitorService, logger)
	authService := authservice.NewAuthService(cfg, logger)

	sweeper := jobs.NewSweeper(monitorService, cashbackService, campaignService, cfg.Sweeps, logger)

	srv := server.New(
		cfg,
		ledgerService,
		cashbackService,
		monitorService,
		campaignService,
		authService,
		db,
		wsHub,
		sweeper,
		logger,
	)
	srv.Start()
}
