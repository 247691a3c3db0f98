package googleapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
)

// maxErrorBody limita quanto do corpo de erro é guardado no APIError
const maxErrorBody = 4 << 10

// APIError representa a resposta de erro padrão das APIs REST do Google:
// {"error": {"code": 403, "message": "...", "status": "PERMISSION_DENIED", "details": [...]}}
type APIError struct {
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("google api: http %d", e.StatusCode)
	}
	return fmt.Sprintf("google api: http %d %s: %s", e.StatusCode, e.Status, e.Message)
}

func ParseError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	apiErr.Body = body

	if gjson.ValidBytes(body) {
		apiErr.Status = gjson.GetBytes(body, "error.status").String()
		apiErr.Message = gjson.GetBytes(body, "error.message").String()
	}

	return apiErr
}

// KindForStatus classifica um erro HTTP das APIs do Google
func KindForStatus(statusCode int, status string) domain.FailureKind {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return domain.FailureKindAuth
	case status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED":
		return domain.FailureKindAuth
	case statusCode == http.StatusTooManyRequests || statusCode == http.StatusRequestTimeout:
		return domain.FailureKindTransientSource
	case statusCode >= http.StatusInternalServerError:
		return domain.FailureKindTransientSource
	}

	return domain.FailureKindPermanentSource
}

// ClassifyTransport trata falhas antes de haver resposta HTTP
func ClassifyTransport(ctx context.Context, source domain.Source, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return domain.NewSourceError(domain.FailureKindCancelled, source, err)
	}

	return domain.NewSourceError(domain.FailureKindTransientSource, source, err)
}

// Do executa a requisição e devolve o corpo das respostas 2xx.
// Respostas de erro viram *domain.SyncError envolvendo um *APIError.
func Do(ctx context.Context, httpClient *http.Client, req *http.Request, source domain.Source) ([]byte, error) {
	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, ClassifyTransport(ctx, source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ClassifyTransport(ctx, source, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := ParseError(resp.StatusCode, body)
		return nil, domain.NewSourceError(KindForStatus(apiErr.StatusCode, apiErr.Status), source, apiErr)
	}

	return body, nil
}
