package openaiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	openaidomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

func newTestClient(serverURL string, httpClient *http.Client) Client {
	cfg := &config.Config{OpenAI: config.OpenAI{BaseURL: serverURL + "/v1", APIKey: "sk-test"}}
	return NewClient(cfg, httpClient)
}

func newTestRequest() *openaidomain.ChatRequest {
	return &openaidomain.ChatRequest{
		Model:    "o3",
		Messages: []openaidomain.Message{{Role: openaidomain.RoleUser, Content: "oi"}},
		Tools: []openaidomain.Tool{{
			Type:     openaidomain.ToolFunction,
			Function: openaidomain.Function{Name: "recommend_actions"},
		}},
		ToolChoice: &openaidomain.ToolChoice{
			Type:     openaidomain.ToolFunction,
			Function: openaidomain.ToolChoiceFunction{Name: "recommend_actions"},
		},
	}
}

func TestOpenAIClient_CreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "o3", gjson.GetBytes(body, "model").String())
		assert.Equal(t, "recommend_actions", gjson.GetBytes(body, "tool_choice.function.name").String())
		assert.False(t, gjson.GetBytes(body, "seed").Exists())

		w.Write([]byte(`{"choices":[{"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	body, err := newTestClient(server.URL, nil).CreateChatCompletion(context.Background(), newTestRequest())

	require.NoError(t, err)
	assert.Equal(t, "stop", gjson.GetBytes(body, "choices.0.finish_reason").String())
}

func TestOpenAIClient_CreateChatCompletion_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected domain.FailureKind
	}{
		{name: "Limite de uso", status: http.StatusTooManyRequests, expected: domain.FailureKindQuotaExceeded},
		{name: "Chave inválida", status: http.StatusUnauthorized, expected: domain.FailureKindAuth},
		{name: "Sem acesso ao modelo", status: http.StatusForbidden, expected: domain.FailureKindAuth},
		{name: "Instabilidade do serviço", status: http.StatusBadGateway, expected: domain.FailureKindGenerationTimeout},
		{name: "Timeout do serviço", status: http.StatusRequestTimeout, expected: domain.FailureKindGenerationTimeout},
		{name: "Requisição rejeitada", status: http.StatusBadRequest, expected: domain.FailureKindMalformedGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":{"message":"falha","type":"invalid_request_error","code":"x"}}`))
			}))
			defer server.Close()

			body, err := newTestClient(server.URL, nil).CreateChatCompletion(context.Background(), newTestRequest())

			assert.Nil(t, body)
			assert.Equal(t, tt.expected, domain.KindOf(err))

			var apiErr *openaidomain.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "falha", apiErr.Message)
		})
	}
}

func TestOpenAIClient_CreateChatCompletion_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(server.URL, &http.Client{Timeout: 50 * time.Millisecond})
	body, err := client.CreateChatCompletion(context.Background(), newTestRequest())

	assert.Nil(t, body)
	assert.Equal(t, domain.FailureKindGenerationTimeout, domain.KindOf(err))
}

func TestOpenAIClient_CreateChatCompletion_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body, err := newTestClient("http://127.0.0.1:1", nil).CreateChatCompletion(ctx, newTestRequest())

	assert.Nil(t, body)
	assert.Equal(t, domain.FailureKindCancelled, domain.KindOf(err))
}
