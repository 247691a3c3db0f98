package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/apiErrors"
	"github.com/vfg2006/gads-play-optimizer/pkg/log"
)

const (
	defaultListLimit = 30
	maxListLimit     = 365
)

// RecommendationReader é a parte de leitura do armazenamento de recomendações
type RecommendationReader interface {
	Get(ctx context.Context, date time.Time) (*domain.RecommendationSet, error)
	ListDates(ctx context.Context, limit int) ([]time.Time, error)
}

// GetRecommendations retorna o conjunto de recomendações gerado para a data
func GetRecommendations(store RecommendationReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value := httprouter.ParamsFromContext(r.Context()).ByName("date")

		date, err := domain.ParseDate(value)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato AAAA-MM-DD", map[string]string{"date": value})
			return
		}

		set, err := store.Get(r.Context(), date)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).WithField("date", value).Error("Erro ao buscar recomendações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar recomendações", nil)
			return
		}

		if set == nil {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhuma recomendação encontrada para a data", map[string]string{"date": value})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(set); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// ListRecommendationDates lista as datas com recomendações, mais recentes primeiro
func ListRecommendationDates(store RecommendationReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := defaultListLimit
		if value := r.URL.Query().Get("limit"); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed <= 0 || parsed > maxListLimit {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Limite inválido", map[string]any{"limit": value, "max": maxListLimit})
				return
			}
			limit = parsed
		}

		dates, err := store.ListDates(r.Context(), limit)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar recomendações")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar recomendações", nil)
			return
		}

		days := make([]string, 0, len(dates))
		for _, date := range dates {
			days = append(days, domain.FormatDate(date))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"dates": days}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
