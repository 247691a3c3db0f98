package playclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/gads-play-optimizer/infrastructure/credentials"
	playdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
)

var ErrReportNotFound = errors.New("relatório de instalações ainda não publicado")

type Client interface {
	ListReviews(ctx context.Context, packageName, pageToken string) (*playdomain.ReviewsResponse, error)
	DownloadInstallsReport(ctx context.Context, bucket, object string) ([]playdomain.InstallsRow, error)
}

type GooglePlayClient struct {
	cfg        *config.Config
	httpClient *http.Client
	tokens     credentials.TokenProvider
}

func NewClient(cfg *config.Config, httpClient *http.Client, tokens credentials.TokenProvider) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &GooglePlayClient{
		cfg:        cfg,
		httpClient: httpClient,
		tokens:     tokens,
	}
}

func (c *GooglePlayClient) newRequest(ctx context.Context, url string) (*http.Request, error) {
	accessToken, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	return req, nil
}
