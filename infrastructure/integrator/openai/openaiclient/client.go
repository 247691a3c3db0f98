package openaiclient

import (
	"context"
	"net/http"

	openaidomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
)

type Client interface {
	CreateChatCompletion(ctx context.Context, request *openaidomain.ChatRequest) ([]byte, error)
}

type OpenAIClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &OpenAIClient{
		cfg:        cfg,
		httpClient: httpClient,
	}
}
