package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/scheduler"
	"github.com/vfg2006/gads-play-optimizer/pkg/apiErrors"
	"github.com/vfg2006/gads-play-optimizer/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SyncService é o agendador visto pelas rotas de sincronização
type SyncService interface {
	RunForDate(ctx context.Context, date time.Time, force bool) (*domain.RunResult, error)
	TargetDate() time.Time
	GetStatus() map[string]any
}

// Códigos de erro da API para cada tipo de falha da execução
var failureKindCodes = map[domain.FailureKind]string{
	domain.FailureKindAlreadyProcessed:    apiErrors.ErrAlreadyProcessed,
	domain.FailureKindNoData:              apiErrors.ErrNoData,
	domain.FailureKindTransientSource:     apiErrors.ErrSourceFailure,
	domain.FailureKindPermanentSource:     apiErrors.ErrSourceFailure,
	domain.FailureKindAuth:                apiErrors.ErrSourceAuthorization,
	domain.FailureKindGenerationTimeout:   apiErrors.ErrGenerationFailure,
	domain.FailureKindQuotaExceeded:       apiErrors.ErrGenerationFailure,
	domain.FailureKindMalformedGeneration: apiErrors.ErrGenerationFailure,
	domain.FailureKindCancelled:           apiErrors.ErrSyncCancelled,
	domain.FailureKindStore:               apiErrors.ErrDatabaseOperation,
}

// ErrorCodeForFailure retorna o código da API para o tipo de falha
func ErrorCodeForFailure(kind domain.FailureKind) string {
	code, ok := failureKindCodes[kind]
	if !ok {
		return apiErrors.ErrInternalServer
	}

	return code
}

// RunSync executa a sincronização diária de forma síncrona e devolve o resultado
func RunSync(service SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.ForContext(ctx)

		date := service.TargetDate()
		if value := r.URL.Query().Get("date"); value != "" {
			parsed, err := domain.ParseDate(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato AAAA-MM-DD", map[string]string{"date": value})
				return
			}
			date = parsed
		}

		force := false
		if value := r.URL.Query().Get("force"); value != "" {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro force inválido", map[string]string{"force": value})
				return
			}
			force = parsed
		}

		logger.WithFields(log.Fields{
			"date":  domain.FormatDate(date),
			"force": force,
		}).Info("Execução diária solicitada via API")

		result, err := service.RunForDate(ctx, date, force)
		if errors.Is(err, scheduler.ErrSyncInProgress) {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe uma execução diária em andamento", nil)
			return
		}
		if err != nil {
			logger.WithError(err).Error("Erro ao executar a sincronização diária")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar a sincronização diária", nil)
			return
		}

		if !result.Succeeded() {
			apiErrors.WriteError(w, ErrorCodeForFailure(result.FailureKind), result.Error, result)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("Erro ao codificar resposta")
		}
	})
}

// GetSyncStatus retorna o status do agendador e o histórico recente
func GetSyncStatus(service SyncService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(service.GetStatus()); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
