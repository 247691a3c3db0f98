package domain

import (
	"context"
	"errors"
	"fmt"
)

// FailureKind classifica a causa de uma falha na execução diária
type FailureKind string

const (
	FailureKindNone                FailureKind = ""
	FailureKindTransientSource     FailureKind = "transient_source"
	FailureKindAuth                FailureKind = "auth"
	FailureKindPermanentSource     FailureKind = "permanent_source"
	FailureKindGenerationTimeout   FailureKind = "generation_timeout"
	FailureKindQuotaExceeded       FailureKind = "quota_exceeded"
	FailureKindMalformedGeneration FailureKind = "malformed_generation"
	FailureKindAlreadyProcessed    FailureKind = "already_processed"
	FailureKindNoData              FailureKind = "no_data"
	FailureKindStore               FailureKind = "store"
	FailureKindCancelled           FailureKind = "cancelled"
	FailureKindUnexpected          FailureKind = "unexpected"
)

var (
	ErrTransientSource     = errors.New("falha transitória na fonte de dados")
	ErrAuth                = errors.New("credenciais inválidas ou expiradas")
	ErrPermanentSource     = errors.New("falha permanente na fonte de dados")
	ErrGenerationTimeout   = errors.New("tempo esgotado na geração de recomendações")
	ErrQuotaExceeded       = errors.New("cota do gerador esgotada")
	ErrMalformedGeneration = errors.New("resposta do gerador fora do formato esperado")
	ErrAlreadyProcessed    = errors.New("recomendações já geradas para a data")
	ErrNoData              = errors.New("nenhuma fonte retornou dados para a data")
	ErrStore               = errors.New("falha no armazenamento de recomendações")
	ErrCancelled           = errors.New("execução cancelada")
	ErrUnexpected          = errors.New("erro inesperado")
)

var kindSentinels = map[FailureKind]error{
	FailureKindTransientSource:     ErrTransientSource,
	FailureKindAuth:                ErrAuth,
	FailureKindPermanentSource:     ErrPermanentSource,
	FailureKindGenerationTimeout:   ErrGenerationTimeout,
	FailureKindQuotaExceeded:       ErrQuotaExceeded,
	FailureKindMalformedGeneration: ErrMalformedGeneration,
	FailureKindAlreadyProcessed:    ErrAlreadyProcessed,
	FailureKindNoData:              ErrNoData,
	FailureKindStore:               ErrStore,
	FailureKindCancelled:           ErrCancelled,
	FailureKindUnexpected:          ErrUnexpected,
}

// Sentinel retorna o erro sentinela associado ao tipo de falha
func (k FailureKind) Sentinel() error {
	if err, ok := kindSentinels[k]; ok {
		return err
	}

	return ErrUnexpected
}

// IsRetryable indica se a falha pode ser resolvida com uma nova tentativa
func (k FailureKind) IsRetryable() bool {
	switch k {
	case FailureKindTransientSource, FailureKindGenerationTimeout, FailureKindQuotaExceeded:
		return true
	}

	return false
}

// SyncError carrega o tipo da falha, o estágio e a fonte onde ela aconteceu
type SyncError struct {
	Kind   FailureKind
	Stage  RunState
	Source Source
	Err    error
}

func (e *SyncError) Error() string {
	msg := e.Kind.Sentinel().Error()
	if e.Source != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Source)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Is permite comparar um SyncError com o sentinela do seu tipo via errors.Is
func (e *SyncError) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

func NewSyncError(kind FailureKind, err error) *SyncError {
	return &SyncError{Kind: kind, Err: err}
}

func NewSourceError(kind FailureKind, source Source, err error) *SyncError {
	return &SyncError{Kind: kind, Source: source, Err: err}
}

// KindOf extrai o tipo de falha de um erro qualquer
func KindOf(err error) FailureKind {
	if err == nil {
		return FailureKindNone
	}

	var syncErr *SyncError
	if errors.As(err, &syncErr) {
		return syncErr.Kind
	}

	if errors.Is(err, context.Canceled) {
		return FailureKindCancelled
	}

	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return FailureKindUnexpected
}

// StrongerSourceKind escolhe qual falha de fonte descreve melhor a execução.
// Autenticação prevalece sobre falha permanente; qualquer outra falha não recuperável
// vem em seguida e a transitória por último.
func StrongerSourceKind(a, b FailureKind) FailureKind {
	if sourceKindRank(b) > sourceKindRank(a) {
		return b
	}

	return a
}

func sourceKindRank(kind FailureKind) int {
	switch kind {
	case FailureKindAuth:
		return 3
	case FailureKindPermanentSource:
		return 2
	case FailureKindTransientSource:
		return 1
	case FailureKindNone:
		return 0
	}

	return 2
}
