package syncing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/gads-play-optimizer/infrastructure/repository"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/log"
	"github.com/vfg2006/gads-play-optimizer/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Service conduz a execução diária: busca nas duas fontes, combinação, geração e persistência
type Service struct {
	cfg       *config.Config
	ads       SourceAdapter
	play      SourceAdapter
	generator Generator
	store     repository.RecommendationSetRepository
	now       func() time.Time
}

func NewService(
	cfg *config.Config,
	ads SourceAdapter,
	play SourceAdapter,
	generator Generator,
	store repository.RecommendationSetRepository,
) *Service {
	return &Service{
		cfg:       cfg,
		ads:       ads,
		play:      play,
		generator: generator,
		store:     store,
		now:       time.Now,
	}
}

type fetchResult struct {
	point   *domain.MetricPoint
	outcome *domain.SourceOutcome
	err     error
}

// Run executa o fluxo completo para a data. Sem force, uma data já processada
// termina em Failed{already_processed} sem chamar nenhuma fonte.
// O resultado é sempre terminal; o erro fica disponível em RunResult.Err.
func (s *Service) Run(ctx context.Context, date time.Time, force bool) *domain.RunResult {
	ctx, runID := log.WithRunID(ctx)
	record := domain.NewRunRecord(runID, date, force, s.now())

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"date":  domain.FormatDate(record.Date),
		"force": force,
	})
	logger.Info("Iniciando execução diária")

	s.execute(ctx, record, logger)

	result := record.Result()
	metrics.RecordRun(string(result.State), string(result.FailureKind))

	fields := log.Fields{
		"state":       result.State,
		"attempt":     result.Attempts,
		"duration_ms": result.Duration().Milliseconds(),
	}
	if result.Succeeded() {
		logger.WithFields(fields).Info("Execução diária concluída")
	} else {
		fields["failure_kind"] = result.FailureKind
		fields["stage"] = result.FailedStage
		logger.WithFields(fields).WithError(result.Err()).Warn("Execução diária encerrada com falha")
	}

	return result
}

func (s *Service) execute(ctx context.Context, record *domain.RunRecord, logger log.Logger) {
	fail := func(err error) {
		record.Fail(err, s.now())
	}

	if !record.Force {
		exists, err := s.exists(ctx, record.Date)
		if err != nil {
			fail(err)
			return
		}
		if exists {
			fail(domain.NewSyncError(domain.FailureKindAlreadyProcessed, fmt.Errorf("data %s", domain.FormatDate(record.Date))))
			return
		}
	}

	if err := s.advance(ctx, record, domain.RunStateFetchingAds, domain.RunStateFetchingPlay); err != nil {
		fail(err)
		return
	}

	ads, play := s.fetchAll(ctx, record)
	record.Sources[domain.SourceAds] = ads.outcome
	record.Sources[domain.SourcePlay] = play.outcome
	record.AttemptCount = ads.outcome.Attempts + play.outcome.Attempts

	if err := ctx.Err(); err != nil {
		fail(domain.NewSyncError(domain.FailureKindCancelled, err))
		return
	}

	if ads.err != nil && play.err != nil {
		if err := bothSourcesFailed(ads, play); err != nil {
			fail(err)
			return
		}
	}

	for _, fetched := range []fetchResult{ads, play} {
		if fetched.err != nil {
			logger.WithFields(log.Fields{
				"source":       fetched.outcome.Source,
				"failure_kind": fetched.outcome.FailureKind,
				"attempt":      fetched.outcome.Attempts,
			}).Warn("Fonte ausente no relatório do dia")
		}
	}

	if err := s.advance(ctx, record, domain.RunStateMerging); err != nil {
		fail(err)
		return
	}

	startedAt := s.now()
	report := domain.MergeReport(record.Date, ads.point, play.point)
	record.Report = report
	metrics.RecordStage(string(domain.RunStateMerging), s.now().Sub(startedAt))

	if !report.IsEligible() {
		fail(domain.NewSyncError(domain.FailureKindNoData, fmt.Errorf("ads: %v; play: %v", ads.err, play.err)))
		return
	}

	if err := s.advance(ctx, record, domain.RunStateGenerating); err != nil {
		fail(err)
		return
	}

	recommendations, err := s.generate(ctx, record, report, logger)
	if err != nil {
		fail(err)
		return
	}

	if err := s.advance(ctx, record, domain.RunStatePersisting); err != nil {
		fail(err)
		return
	}

	set := &domain.RecommendationSet{
		Date:               record.Date,
		GeneratedAt:        s.now().UTC(),
		SourceReportStatus: report.Status,
		Recommendations:    recommendations,
	}

	if err := s.persist(ctx, record, set); err != nil {
		fail(err)
		return
	}
	record.Recommendations = set

	// Gravado: um cancelamento a partir daqui não desfaz a execução
	if err := record.Succeed(s.now()); err != nil {
		fail(domain.NewSyncError(domain.FailureKindUnexpected, err))
	}
}

// advance verifica o cancelamento antes de cada mudança de estado
func (s *Service) advance(ctx context.Context, record *domain.RunRecord, states ...domain.RunState) error {
	if err := ctx.Err(); err != nil {
		return domain.NewSyncError(domain.FailureKindCancelled, err)
	}

	for _, state := range states {
		if err := record.Transition(state); err != nil {
			return domain.NewSyncError(domain.FailureKindUnexpected, err)
		}
	}

	return nil
}

func (s *Service) exists(ctx context.Context, date time.Time) (bool, error) {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	exists, err := s.store.Exists(storeCtx, date)
	if err != nil {
		if ctx.Err() != nil {
			return false, domain.NewSyncError(domain.FailureKindCancelled, err)
		}
		return false, domain.NewSyncError(domain.FailureKindStore, err)
	}

	return exists, nil
}

// fetchAll dispara as duas fontes em paralelo e espera as duas terminarem
func (s *Service) fetchAll(ctx context.Context, record *domain.RunRecord) (fetchResult, fetchResult) {
	var ads, play fetchResult
	policy := FetchPolicy(s.cfg.DailySync)

	var group errgroup.Group
	group.Go(func() error {
		ads = s.fetchSource(ctx, s.ads, record.Date, policy)
		return nil
	})
	group.Go(func() error {
		play = s.fetchSource(ctx, s.play, record.Date, policy)
		return nil
	})
	_ = group.Wait()

	return ads, play
}

func (s *Service) fetchSource(ctx context.Context, adapter SourceAdapter, date time.Time, policy RetryPolicy) fetchResult {
	source := adapter.Source()
	logger := log.ForContext(ctx).WithField("source", source)
	startedAt := s.now()

	point, attempts, err := retry(ctx, policy,
		func(attempt int, err error) {
			outcome := metrics.OutcomeSuccess
			if err != nil {
				outcome = string(domain.KindOf(err))
				logger.WithFields(log.Fields{
					"attempt":      attempt,
					"failure_kind": outcome,
					"error":        err.Error(),
				}).Warn("Falha na busca da fonte")
			}
			metrics.RecordFetchAttempt(string(source), outcome)
		},
		func(ctx context.Context) (*domain.MetricPoint, error) {
			return adapter.Fetch(ctx, date)
		},
	)
	metrics.RecordStage(string(stageForSource(source)), s.now().Sub(startedAt))

	outcome := &domain.SourceOutcome{Source: source, Attempts: attempts}
	if err != nil {
		outcome.FailureKind = domain.KindOf(err)
		outcome.Error = err.Error()
		return fetchResult{outcome: outcome, err: withSource(err, source)}
	}

	if point == nil {
		point = domain.NewMetricPoint(source, date, nil)
	}
	outcome.Present = true

	return fetchResult{point: point, outcome: outcome}
}

// bothSourcesFailed decide o desfecho quando nenhuma fonte respondeu. Só quando as duas
// esgotaram falhas transitórias a execução segue para a combinação, que resulta em no_data.
// Nos demais casos falha com o tipo mais grave, no estágio da fonte que o produziu.
func bothSourcesFailed(ads, play fetchResult) error {
	adsKind, playKind := ads.outcome.FailureKind, play.outcome.FailureKind
	if adsKind == domain.FailureKindTransientSource && playKind == domain.FailureKindTransientSource {
		return nil
	}

	kind := domain.StrongerSourceKind(adsKind, playKind)

	chosen := ads
	if kind != adsKind {
		chosen = play
	}

	source := chosen.outcome.Source

	var syncErr *domain.SyncError
	if errors.As(chosen.err, &syncErr) {
		failed := *syncErr
		failed.Stage = stageForSource(source)
		return &failed
	}

	err := domain.NewSourceError(chosen.outcome.FailureKind, source, chosen.err)
	err.Stage = stageForSource(source)
	return err
}

func (s *Service) generate(ctx context.Context, record *domain.RunRecord, report *domain.DailyReport, logger log.Logger) ([]domain.Recommendation, error) {
	startedAt := s.now()
	defer func() {
		metrics.RecordStage(string(domain.RunStateGenerating), s.now().Sub(startedAt))
	}()

	recommendations, attempts, err := retry(ctx, GeneratePolicy(s.cfg.DailySync),
		func(attempt int, err error) {
			outcome := metrics.OutcomeSuccess
			if err != nil {
				outcome = string(domain.KindOf(err))
				logger.WithFields(log.Fields{
					"attempt":      attempt,
					"failure_kind": outcome,
					"error":        err.Error(),
				}).Warn("Falha na geração de recomendações")
			}
			metrics.RecordGenerationAttempt(outcome)
		},
		func(ctx context.Context) ([]domain.Recommendation, error) {
			return s.generator.Generate(ctx, report)
		},
	)
	record.GenerationAttempts = attempts
	record.AttemptCount += attempts

	return recommendations, err
}

// persist usa Create sem force, para que duas execuções concorrentes da mesma data
// não gravem duas vezes, e Put com force para sobrescrever
func (s *Service) persist(ctx context.Context, record *domain.RunRecord, set *domain.RecommendationSet) error {
	startedAt := s.now()
	defer func() {
		metrics.RecordStage(string(domain.RunStatePersisting), s.now().Sub(startedAt))
	}()

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	var err error
	if record.Force {
		err = s.store.Put(storeCtx, record.Date, set)
	} else {
		err = s.store.Create(storeCtx, record.Date, set)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return domain.NewSyncError(domain.FailureKindAlreadyProcessed, err)
	case ctx.Err() != nil:
		return domain.NewSyncError(domain.FailureKindCancelled, err)
	}

	return domain.NewSyncError(domain.FailureKindStore, err)
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.DailySync.StoreTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.DailySync.StoreTimeout)
	}
	return context.WithCancel(ctx)
}

func stageForSource(source domain.Source) domain.RunState {
	if source == domain.SourcePlay {
		return domain.RunStateFetchingPlay
	}
	return domain.RunStateFetchingAds
}

func withSource(err error, source domain.Source) error {
	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) && syncErr.Source == "" {
		syncErr.Source = source
	}
	return err
}
