package adsclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleapi"
	adsdomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (c *GoogleAdsClient) Search(ctx context.Context, customerID, query, pageToken string) (*adsdomain.SearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, googleapi.ClassifyTransport(ctx, domain.SourceAds, err)
	}

	accessToken, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, withSource(err)
	}

	payload, err := json.Marshal(adsdomain.SearchRequest{Query: query, PageToken: pageToken})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:search",
		strings.TrimRight(c.cfg.GoogleAds.BaseURL, "/"),
		c.cfg.GoogleAds.APIVersion,
		customerID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.cfg.GoogleAds.DeveloperToken)
	if loginCustomerID := c.cfg.GoogleAds.NormalizedLoginCustomerID(); loginCustomerID != "" {
		req.Header.Set("login-customer-id", loginCustomerID)
	}

	body, err := googleapi.Do(ctx, c.httpClient, req, domain.SourceAds)
	if err != nil {
		return nil, refineAdsError(err)
	}

	var response adsdomain.SearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar resposta do Google Ads")
		return nil, domain.NewSourceError(domain.FailureKindPermanentSource, domain.SourceAds, err)
	}

	return &response, nil
}

// refineAdsError usa os códigos do GoogleAdsFailure para ajustar a classificação feita pelo status HTTP
func refineAdsError(err error) error {
	var apiErr *googleapi.APIError
	var syncErr *domain.SyncError
	if !errors.As(err, &apiErr) || !errors.As(err, &syncErr) {
		return err
	}

	for _, code := range FailureCodes(apiErr.Body) {
		switch {
		case adsdomain.AuthErrorTypes[code.Type]:
			syncErr.Kind = domain.FailureKindAuth
			return syncErr
		case adsdomain.TransientErrorTypes[code.Type]:
			syncErr.Kind = domain.FailureKindTransientSource
			return syncErr
		}
	}

	return syncErr
}

// FailureCodes extrai error.details[].errors[].errorCode de uma resposta de erro
func FailureCodes(body []byte) []adsdomain.FailureCode {
	var codes []adsdomain.FailureCode

	gjson.GetBytes(body, "error.details").ForEach(func(_, detail gjson.Result) bool {
		detail.Get("errors").ForEach(func(_, item gjson.Result) bool {
			item.Get("errorCode").ForEach(func(key, value gjson.Result) bool {
				codes = append(codes, adsdomain.FailureCode{Type: key.String(), Value: value.String()})
				return true
			})
			return true
		})
		return true
	})

	return codes
}

func withSource(err error) error {
	var syncErr *domain.SyncError
	if errors.As(err, &syncErr) && syncErr.Source == "" {
		syncErr.Source = domain.SourceAds
	}
	return err
}
