package playclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleapi"
	playdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *GooglePlayClient) ListReviews(ctx context.Context, packageName, pageToken string) (*playdomain.ReviewsResponse, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(c.cfg.GooglePlay.ReviewsPageSize))
	if pageToken != "" {
		query.Set("token", pageToken)
	}

	endpoint := fmt.Sprintf("%s/androidpublisher/v3/applications/%s/reviews?%s",
		strings.TrimRight(c.cfg.GooglePlay.BaseURL, "/"),
		url.PathEscape(packageName),
		query.Encode(),
	)

	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, withSource(err)
	}

	body, err := googleapi.Do(ctx, c.httpClient, req, domain.SourcePlay)
	if err != nil {
		return nil, err
	}

	var response playdomain.ReviewsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar avaliações do Google Play")
		return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourcePlay, err)
	}

	return &response, nil
}
