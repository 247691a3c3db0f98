package domain

import (
	"errors"
	"fmt"
	"time"
)

type RunState string

const (
	RunStatePending      RunState = "pending"
	RunStateFetchingAds  RunState = "fetching_ads"
	RunStateFetchingPlay RunState = "fetching_play"
	RunStateMerging      RunState = "merging"
	RunStateGenerating   RunState = "generating"
	RunStatePersisting   RunState = "persisting"
	RunStateSucceeded    RunState = "succeeded"
	RunStateFailed       RunState = "failed"
)

// As duas buscas são disparadas juntas: FetchingAds marca o disparo de Ads
// e FetchingPlay o de Play, e ambas terminam antes de Merging.
var runTransitions = map[RunState][]RunState{
	RunStatePending:      {RunStateFetchingAds},
	RunStateFetchingAds:  {RunStateFetchingPlay},
	RunStateFetchingPlay: {RunStateMerging},
	RunStateMerging:      {RunStateGenerating},
	RunStateGenerating:   {RunStatePersisting},
	RunStatePersisting:   {RunStateSucceeded},
}

func (s RunState) IsTerminal() bool {
	return s == RunStateSucceeded || s == RunStateFailed
}

// CanTransitionTo valida a máquina de estados da execução.
// Qualquer estado não terminal pode ir para Failed.
func (s RunState) CanTransitionTo(next RunState) bool {
	if s.IsTerminal() {
		return false
	}

	if next == RunStateFailed {
		return true
	}

	for _, allowed := range runTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// SourceOutcome registra o resultado da busca de uma fonte
type SourceOutcome struct {
	Source      Source      `json:"source"`
	Attempts    int         `json:"attempts"`
	Present     bool        `json:"present"`
	FailureKind FailureKind `json:"failure_kind,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// RunRecord acompanha uma execução enquanto ela percorre os estados
type RunRecord struct {
	RunID              string
	Date               time.Time
	Force              bool
	State              RunState
	AttemptCount       int
	GenerationAttempts int
	LastErrorKind      FailureKind
	FailedStage        RunState
	Err                error
	Sources            map[Source]*SourceOutcome
	Report             *DailyReport
	Recommendations    *RecommendationSet
	StartedAt          time.Time
	FinishedAt         time.Time
}

func NewRunRecord(runID string, date time.Time, force bool, startedAt time.Time) *RunRecord {
	return &RunRecord{
		RunID:     runID,
		Date:      NormalizeDate(date),
		Force:     force,
		State:     RunStatePending,
		Sources:   make(map[Source]*SourceOutcome),
		StartedAt: startedAt,
	}
}

func (r *RunRecord) Transition(next RunState) error {
	if !r.State.CanTransitionTo(next) {
		return fmt.Errorf("transição inválida de %s para %s", r.State, next)
	}

	r.State = next
	return nil
}

// Fail encerra a execução registrando o estágio e o tipo da falha
func (r *RunRecord) Fail(err error, finishedAt time.Time) {
	if r.State.IsTerminal() {
		return
	}

	r.FailedStage = r.State
	var syncErr *SyncError
	if errors.As(err, &syncErr) && syncErr.Stage != "" {
		r.FailedStage = syncErr.Stage
	}
	r.LastErrorKind = KindOf(err)
	r.Err = err
	r.State = RunStateFailed
	r.FinishedAt = finishedAt
}

func (r *RunRecord) Succeed(finishedAt time.Time) error {
	if err := r.Transition(RunStateSucceeded); err != nil {
		return err
	}

	r.FinishedAt = finishedAt
	return nil
}

// Result cria uma cópia imutável do estado terminal da execução
func (r *RunRecord) Result() *RunResult {
	result := &RunResult{
		RunID:              r.RunID,
		Date:               r.Date,
		Day:                FormatDate(r.Date),
		State:              r.State,
		Force:              r.Force,
		FailureKind:        r.LastErrorKind,
		FailedStage:        r.FailedStage,
		Attempts:           r.AttemptCount,
		GenerationAttempts: r.GenerationAttempts,
		Report:             r.Report,
		Recommendations:    r.Recommendations,
		StartedAt:          r.StartedAt,
		FinishedAt:         r.FinishedAt,
		err:                r.Err,
	}

	if r.Err != nil {
		result.Error = r.Err.Error()
	}

	if r.Report != nil {
		result.ReportStatus = r.Report.Status
	}

	for _, source := range []Source{SourceAds, SourcePlay} {
		if outcome, ok := r.Sources[source]; ok {
			copied := *outcome
			result.Sources = append(result.Sources, copied)
		}
	}

	return result
}

// RunResult é o resultado observável de uma execução diária
type RunResult struct {
	RunID              string             `json:"run_id"`
	Date               time.Time          `json:"-"`
	Day                string             `json:"date"`
	State              RunState           `json:"state"`
	Force              bool               `json:"force"`
	FailureKind        FailureKind        `json:"failure_kind,omitempty"`
	FailedStage        RunState           `json:"failed_stage,omitempty"`
	Error              string             `json:"error,omitempty"`
	Attempts           int                `json:"attempts"`
	GenerationAttempts int                `json:"generation_attempts"`
	ReportStatus       ReportStatus       `json:"report_status,omitempty"`
	Sources            []SourceOutcome    `json:"sources,omitempty"`
	Report             *DailyReport       `json:"report,omitempty"`
	Recommendations    *RecommendationSet `json:"recommendations,omitempty"`
	StartedAt          time.Time          `json:"started_at"`
	FinishedAt         time.Time          `json:"finished_at"`

	err error
}

func (r *RunResult) Succeeded() bool {
	return r.State == RunStateSucceeded
}

// Err retorna o erro que encerrou a execução, preservando a cadeia para errors.Is
func (r *RunResult) Err() error {
	return r.err
}

func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
