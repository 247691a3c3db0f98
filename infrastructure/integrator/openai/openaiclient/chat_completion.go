package openaiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	openaidomain "github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CreateChatCompletion envia a conversa e devolve o corpo bruto da resposta 2xx
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, request *openaidomain.ChatRequest) ([]byte, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, domain.NewSyncError(domain.FailureKindUnexpected, err)
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(c.cfg.OpenAI.BaseURL, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewSyncError(domain.FailureKindUnexpected, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAI.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseError(resp.StatusCode, body)
		logrus.WithFields(logrus.Fields{
			"status_code": apiErr.StatusCode,
			"type":        apiErr.Type,
			"code":        apiErr.Code,
		}).Warn("openai: requisição recusada")
		return nil, domain.NewSyncError(KindForStatus(resp.StatusCode), apiErr)
	}

	return body, nil
}

// KindForStatus classifica as respostas de erro da API
func KindForStatus(statusCode int) domain.FailureKind {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return domain.FailureKindQuotaExceeded
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domain.FailureKindAuth
	case statusCode == http.StatusRequestTimeout || statusCode >= http.StatusInternalServerError:
		return domain.FailureKindGenerationTimeout
	}

	return domain.FailureKindMalformedGeneration
}

// classifyTransport trata falhas sem resposta HTTP. Timeout, conexão recusada ou
// derrubada contam como indisponibilidade momentânea do gerador.
func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return domain.NewSyncError(domain.FailureKindCancelled, err)
	}

	return domain.NewSyncError(domain.FailureKindGenerationTimeout, err)
}

func parseError(statusCode int, body []byte) *openaidomain.APIError {
	apiErr := &openaidomain.APIError{StatusCode: statusCode}
	if gjson.ValidBytes(body) {
		apiErr.Message = gjson.GetBytes(body, openaidomain.PathErrorMessage).String()
		apiErr.Type = gjson.GetBytes(body, openaidomain.PathErrorType).String()
		apiErr.Code = gjson.GetBytes(body, openaidomain.PathErrorCode).String()
	}
	return apiErr
}
