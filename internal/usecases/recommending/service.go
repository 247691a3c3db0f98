package recommending

import (
	"context"

	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/pkg/log"
)

// Service gera recomendações a partir de um relatório diário
type Service struct {
	cfg *config.Config
	llm LLMClient
}

func NewService(cfg *config.Config, llm LLMClient) *Service {
	return &Service{
		cfg: cfg,
		llm: llm,
	}
}

// Generate faz uma única chamada ao modelo. Novas tentativas ficam a cargo do orquestrador.
func (s *Service) Generate(ctx context.Context, report *domain.DailyReport) ([]domain.Recommendation, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"date":   domain.FormatDate(report.Date),
		"status": report.Status,
	})

	prompt, err := BuildPrompt(s.cfg, report)
	if err != nil {
		return nil, domain.NewSyncError(domain.FailureKindUnexpected, err)
	}

	completion, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Falha na chamada ao gerador de recomendações")
		return nil, err
	}

	recommendations, err := ParseCompletion(completion, report, s.cfg.OpenAI.MaxRecommendations)
	if err != nil {
		logger.WithField("error", err.Error()).Warn("Resposta do gerador rejeitada")
		return nil, err
	}

	logger.WithField("recommendations", len(recommendations)).Info("Recomendações geradas")

	return recommendations, nil
}
