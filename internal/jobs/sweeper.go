package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/application/campaigns"
	"github.com/rewardly/cbs/internal/application/cashback"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/pkg/config"
)

// sweepTimeout bounds each scheduled run so a stuck database cannot pile up
// overlapping sweeps forever.
const sweepTimeout = 10 * time.Minute

// systemActorID tags movements made by background processing runs.
const systemActorID = "00000000-0000-0000-0000-000000000001"

// Sweeper owns the scheduled maintenance work: threshold sweeps, pending
// cashback batches, campaign expiry and alert cleanup. Each schedule runs at
// most one instance at a time.
type Sweeper struct {
	cron        *cron.Cron
	monitorSvc  monitor.IMonitorService
	cashbackSvc cashback.ICashbackService
	campaignSvc campaigns.ICampaignService
	cfg         config.SweepConfig
	logger      zerolog.Logger
}

func NewSweeper(
	monitorSvc monitor.IMonitorService,
	cashbackSvc cashback.ICashbackService,
	campaignSvc campaigns.ICampaignService,
	cfg config.SweepConfig,
	logger zerolog.Logger,
) *Sweeper {
	return &Sweeper{
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			cron.Recover(cron.DiscardLogger),
		)),
		monitorSvc:  monitorSvc,
		cashbackSvc: cashbackSvc,
		campaignSvc: campaignSvc,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *Sweeper) Start() {
	s.mustAdd(s.cfg.ThresholdSpec, "threshold_sweep", s.runThresholdSweep)
	s.mustAdd(s.cfg.ThresholdSpec, "pending_batch", s.runPendingBatch)
	s.mustAdd(s.cfg.ExpirySpec, "campaign_expiry", s.runCampaignExpiry)
	s.mustAdd(s.cfg.AlertCleanupSpec, "alert_cleanup", s.runAlertCleanup)

	s.cron.Start()
	s.logger.Info().
		Str("threshold_spec", s.cfg.ThresholdSpec).
		Str("expiry_spec", s.cfg.ExpirySpec).
		Str("alert_cleanup_spec", s.cfg.AlertCleanupSpec).
		Msg("Background sweeper started")
}

// Stop halts scheduling and waits for any in-flight run to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Background sweeper stopped")
}

func (s *Sweeper) mustAdd(spec, name string, job func()) {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		s.logger.Fatal().Err(err).Str("job", name).Str("spec", spec).Msg("Invalid cron spec")
	}
}

func (s *Sweeper) runThresholdSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.monitorSvc.SweepAllActiveMerchants(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Threshold sweep failed")
	}
}

func (s *Sweeper) runPendingBatch() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.cashbackSvc.ProcessPendingBatch(ctx, s.cfg.PendingBatchSize, systemActorID); err != nil {
		s.logger.Error().Err(err).Msg("Pending cashback batch failed")
	}
}

func (s *Sweeper) runCampaignExpiry() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.campaignSvc.CompleteExpiredCampaigns(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Campaign expiry sweep failed")
	}
}

func (s *Sweeper) runAlertCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.monitorSvc.CleanupAcknowledged(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Alert cleanup failed")
	}
}
