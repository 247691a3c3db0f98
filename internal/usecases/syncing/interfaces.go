package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

// SourceAdapter busca as métricas de uma fonte para um dia. Sem dados para o dia,
// deve retornar um MetricPoint vazio em vez de erro.
type SourceAdapter interface {
	Source() domain.Source
	Fetch(ctx context.Context, date time.Time) (*domain.MetricPoint, error)
}

// Generator transforma o relatório do dia em recomendações com uma única chamada
type Generator interface {
	Generate(ctx context.Context, report *domain.DailyReport) ([]domain.Recommendation, error)
}
