package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"github.com/vfg2006/gads-play-optimizer/internal/usecases/authenticating"
)

func protectedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		w.Write([]byte(claims.Role))
	})
}

func TestAuthMiddleware(t *testing.T) {
	auth := authenticating.NewService(&config.Config{Auth: config.Auth{Enabled: true, Secret: "segredo"}})

	operatorToken, err := auth.IssueToken("ana", domain.RoleOperator, time.Hour)
	require.NoError(t, err)

	viewerToken, err := auth.IssueToken("bia", domain.RoleViewer, time.Hour)
	require.NoError(t, err)

	handler := AuthMiddleware(auth, true)(OperatorOnly()(protectedHandler()))

	tests := []struct {
		name           string
		path           string
		header         string
		expectedStatus int
	}{
		{name: "Sem cabeçalho", path: "/v1/sync/run", expectedStatus: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer", path: "/v1/sync/run", header: operatorToken, expectedStatus: http.StatusUnauthorized},
		{name: "Token inválido", path: "/v1/sync/run", header: "Bearer abc", expectedStatus: http.StatusUnauthorized},
		{name: "Papel sem permissão", path: "/v1/sync/run", header: "Bearer " + viewerToken, expectedStatus: http.StatusForbidden},
		{name: "Operador autenticado", path: "/v1/sync/run", header: "Bearer " + operatorToken, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_PublicPathsAndDisabled(t *testing.T) {
	auth := authenticating.NewService(&config.Config{Auth: config.Auth{Enabled: true, Secret: "segredo"}})

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	AuthMiddleware(auth, true)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	AuthMiddleware(auth, false)(OperatorOnly()(protectedHandler())).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/run", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.RoleOperator, rec.Body.String())
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://painel.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/sync/status", nil)
	req.Header.Set("Origin", "https://painel.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://painel.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
	req.Header.Set("Origin", "https://outro.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
