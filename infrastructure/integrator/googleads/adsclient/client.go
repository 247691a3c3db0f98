package adsclient

import (
	"context"
	"net/http"

	adsdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/credentials"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"golang.org/x/time/rate"
)

type Client interface {
	Search(ctx context.Context, customerID, query, pageToken string) (*adsdomain.SearchResponse, error)
}

type GoogleAdsClient struct {
	cfg        *config.Config
	httpClient *http.Client
	tokens     credentials.TokenProvider
	limiter    *rate.Limiter
}

func NewClient(cfg *config.Config, httpClient *http.Client, tokens credentials.TokenProvider) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &GoogleAdsClient{
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(cfg.GoogleAds.RequestsPerSecond), 1),
	}
}
