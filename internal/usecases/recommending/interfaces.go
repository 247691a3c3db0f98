package recommending

import (
	"context"

	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

// LLMClient envia um prompt ao modelo de linguagem e devolve a resposta bruta
type LLMClient interface {
	Complete(ctx context.Context, prompt *domain.Prompt) (*domain.Completion, error)
}
