package adsclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/credentials"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

func newTestClient(serverURL string) Client {
	cfg := &config.Config{GoogleAds: config.GoogleAds{
		BaseURL:           serverURL,
		APIVersion:        "v17",
		DeveloperToken:    "dev-token",
		LoginCustomerID:   "999-000-1111",
		RequestsPerSecond: 100,
	}}

	return NewClient(cfg, nil, credentials.NewStaticProvider("access-token"))
}

func TestGoogleAdsClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v17/customers/1234567890/googleAds:search", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))
		assert.Equal(t, "9990001111", r.Header.Get("login-customer-id"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"query":"SELECT campaign.id FROM campaign","pageToken":"abc"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{"campaign": {"resourceName": "customers/1234567890/campaigns/1", "id": "1", "name": "Busca"},
				 "metrics": {"impressions": "1000", "clicks": "50", "costMicros": "12500000", "conversions": 3.0},
				 "segments": {"date": "2024-05-01"}}
			],
			"fieldMask": "campaign.id,metrics.impressions"
		}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Search(context.Background(), "1234567890", "SELECT campaign.id FROM campaign", "abc")
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "1000", resp.Results[0].Metrics.Impressions)
	assert.Equal(t, "12500000", resp.Results[0].Metrics.CostMicros)
	assert.Empty(t, resp.NextPageToken)
}

func TestGoogleAdsClient_Search_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected domain.FailureKind
	}{
		{
			name:   "Cliente inexistente",
			status: http.StatusBadRequest,
			body: `{"error":{"code":400,"message":"Request contains an invalid argument.","status":"INVALID_ARGUMENT",
				"details":[{"@type":"type.googleapis.com/google.ads.googleads.v17.errors.GoogleAdsFailure",
				"errors":[{"errorCode":{"requestError":"INVALID_CUSTOMER_ID"},"message":"Invalid customer ID"}]}]}}`,
			expected: domain.FailureKindPermanentSource,
		},
		{
			name:   "Developer token não aprovado",
			status: http.StatusBadRequest,
			body: `{"error":{"code":400,"status":"INVALID_ARGUMENT",
				"details":[{"errors":[{"errorCode":{"authorizationError":"DEVELOPER_TOKEN_NOT_APPROVED"}}]}]}}`,
			expected: domain.FailureKindAuth,
		},
		{
			name:   "Cota de requisições",
			status: http.StatusBadRequest,
			body: `{"error":{"code":400,"status":"INVALID_ARGUMENT",
				"details":[{"errors":[{"errorCode":{"quotaError":"RESOURCE_TEMPORARILY_EXHAUSTED"}}]}]}}`,
			expected: domain.FailureKindTransientSource,
		},
		{
			name:     "Serviço indisponível",
			status:   http.StatusServiceUnavailable,
			body:     `{"error":{"code":503,"status":"UNAVAILABLE"}}`,
			expected: domain.FailureKindTransientSource,
		},
		{
			name:     "Token revogado",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"code":401,"status":"UNAUTHENTICATED"}}`,
			expected: domain.FailureKindAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := newTestClient(server.URL).Search(context.Background(), "1234567890", "SELECT campaign.id FROM campaign", "")

			assert.Nil(t, resp)
			assert.Equal(t, tt.expected, domain.KindOf(err))
		})
	}
}

func TestFailureCodes(t *testing.T) {
	body := []byte(`{"error":{"details":[{"errors":[{"errorCode":{"authenticationError":"CUSTOMER_NOT_FOUND"}},{"errorCode":{"requestError":"BAD_RESOURCE_ID"}}]}]}}`)

	codes := FailureCodes(body)

	require.Len(t, codes, 2)
	assert.Equal(t, "authenticationError", codes[0].Type)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", codes[0].Value)
	assert.Equal(t, "requestError", codes[1].Type)
}
