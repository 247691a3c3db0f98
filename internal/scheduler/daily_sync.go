package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/utils"
)

var ErrSyncInProgress = errors.New("execução diária já em andamento")

// Runner executa o fluxo diário para uma data
type Runner interface {
	Run(ctx context.Context, date time.Time, force bool) *domain.RunResult
}

// DailySyncConfig representa a configuração do agendador da execução diária
type DailySyncConfig struct {
	CronSchedule  string
	Location      *time.Location
	ReportLagDays int
	HistorySize   int
	SyncEnabled   bool
}

// RunningSync descreve a execução em andamento
type RunningSync struct {
	Date      string    `json:"date"`
	Force     bool      `json:"force"`
	Manual    bool      `json:"manual"`
	StartedAt time.Time `json:"started_at"`
}

// DailySyncService agenda a execução diária e garante que só uma rode por vez
type DailySyncService struct {
	scheduler           *gocron.Scheduler
	config              DailySyncConfig
	runner              Runner
	syncRunning         bool
	syncMutex           sync.Mutex
	current             *RunningSync
	history             []*domain.RunResult
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	baseCtx             context.Context
	wg                  sync.WaitGroup
	now                 func() time.Time
}

func NewDailySyncService(runner Runner, appConfig *config.Config) *DailySyncService {
	syncConfig := DailySyncConfig{
		CronSchedule:  appConfig.DailySync.CronSchedule,
		Location:      appConfig.DailySync.Location(),
		ReportLagDays: appConfig.DailySync.ReportLagDays,
		HistorySize:   appConfig.DailySync.HistorySize,
		SyncEnabled:   appConfig.DailySync.Enabled,
	}
	if syncConfig.HistorySize < 1 {
		syncConfig.HistorySize = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   syncConfig.CronSchedule,
		"timezone":        syncConfig.Location.String(),
		"report_lag_days": syncConfig.ReportLagDays,
		"sync_enabled":    syncConfig.SyncEnabled,
	}).Info("Configuração do agendador da execução diária carregada")

	return &DailySyncService{
		scheduler: gocron.NewScheduler(syncConfig.Location),
		config:    syncConfig,
		runner:    runner,
		baseCtx:   context.Background(),
		now:       time.Now,
	}
}

// Start agenda a execução diária. Execuções manuais disparadas depois disso
// são canceladas junto com ctx.
func (s *DailySyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		logrus.Info("Execução diária agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da execução diária")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar execução diária: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da execução diária")
		s.scheduler.Stop()
	}()

	return nil
}

// Wait bloqueia até as execuções em segundo plano terminarem
func (s *DailySyncService) Wait() {
	s.wg.Wait()
}

// TargetDate é o dia processado pela execução agendada: hoje menos o atraso dos relatórios
func (s *DailySyncService) TargetDate() time.Time {
	return utils.DaysAgo(s.now(), s.config.ReportLagDays, s.config.Location)
}

func (s *DailySyncService) runScheduled(ctx context.Context) {
	date := s.TargetDate()

	if err := s.acquire(date, false, false); err != nil {
		logrus.WithField("date", domain.FormatDate(date)).Info("Execução diária já em andamento, ignorando disparo agendado")
		return
	}

	s.execute(ctx, date, false)
}

// RunForDate executa de forma síncrona e retorna o resultado.
// Retorna ErrSyncInProgress se já houver uma execução em andamento.
func (s *DailySyncService) RunForDate(ctx context.Context, date time.Time, force bool) (*domain.RunResult, error) {
	date = domain.NormalizeDate(date)
	if err := s.acquire(date, force, true); err != nil {
		return nil, err
	}

	return s.execute(ctx, date, force), nil
}

// TriggerManualSync dispara a execução em segundo plano. Sem data, usa a data alvo do agendamento.
func (s *DailySyncService) TriggerManualSync(date *time.Time, force bool) error {
	target := s.TargetDate()
	if date != nil {
		target = domain.NormalizeDate(*date)
	}

	if err := s.acquire(target, force, true); err != nil {
		logrus.WithField("date", domain.FormatDate(target)).Info("Execução diária já em andamento, ignorando solicitação manual")
		return err
	}

	s.syncMutex.Lock()
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"date":  domain.FormatDate(target),
		"force": force,
	}).Info("Iniciando execução diária manual")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(ctx, target, force)
	}()

	return nil
}

func (s *DailySyncService) acquire(date time.Time, force, manual bool) error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return ErrSyncInProgress
	}

	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.current = &RunningSync{
		Date:      domain.FormatDate(date),
		Force:     force,
		Manual:    manual,
		StartedAt: s.lastSyncStartedAt,
	}

	return nil
}

func (s *DailySyncService) execute(ctx context.Context, date time.Time, force bool) *domain.RunResult {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.current = nil
		s.syncMutex.Unlock()
	}()

	result := s.runner.Run(ctx, date, force)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.history = append([]*domain.RunResult{result}, s.history...)
	if len(s.history) > s.config.HistorySize {
		s.history = s.history[:s.config.HistorySize]
	}
	s.syncMutex.Unlock()

	return result
}

// History retorna os resultados mais recentes primeiro
func (s *DailySyncService) History() []*domain.RunResult {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	history := make([]*domain.RunResult, len(s.history))
	copy(history, s.history)
	return history
}

// NextRun calcula o próximo disparo agendado a partir da expressão cron
func (s *DailySyncService) NextRun() (time.Time, error) {
	schedule, err := cron.ParseStandard(s.config.CronSchedule)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.Next(s.now().In(s.config.Location)), nil
}

// GetStatus retorna o status atual do agendador
func (s *DailySyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_timezone":          s.config.Location.String(),
		"sync_report_lag_days":   s.config.ReportLagDays,
		"sync_running":           s.syncRunning,
		"current":                s.current,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	s.syncMutex.Unlock()

	status["target_date"] = domain.FormatDate(s.TargetDate())
	status["history"] = s.History()

	if s.config.SyncEnabled {
		if next, err := s.NextRun(); err == nil {
			status["next_run"] = next
		}
	}

	return status
}
