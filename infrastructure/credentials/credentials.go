package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/gads-play-optimizer/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Escopos exigidos pelas duas fontes de dados
const (
	ScopeAdWords          = "https://www.googleapis.com/auth/adwords"
	ScopeAndroidPublisher = "https://www.googleapis.com/auth/androidpublisher"
	ScopeStorageReadOnly  = "https://www.googleapis.com/auth/devstorage.read_only"
)

var DefaultScopes = []string{ScopeAdWords, ScopeAndroidPublisher, ScopeStorageReadOnly}

var ErrMissingRefreshToken = errors.New("credencial sem refresh token")

// TokenProvider entrega tokens de acesso válidos para as APIs do Google
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// AuthorizedUser é o formato do credentials.json de usuário autorizado
type AuthorizedUser struct {
	Type         string    `json:"type,omitempty"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret"`
	RefreshToken string    `json:"refresh_token"`
	Token        string    `json:"token,omitempty"`
	TokenURI     string    `json:"token_uri,omitempty"`
	Scopes       []string  `json:"scopes,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// OAuthProvider renova o token automaticamente a partir do refresh token.
// A renovação usa o contexto de quem pede o token, então respeita o prazo da tentativa.
type OAuthProvider struct {
	config     *oauth2.Config
	httpClient *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

func NewOAuthConfig(clientID, clientSecret string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     endpoints.Google,
		Scopes:       scopes,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
	}
}

// NewRefreshTokenProvider monta o provedor a partir de client id, secret e refresh token
func NewRefreshTokenProvider(httpClient *http.Client, clientID, clientSecret, refreshToken string, scopes []string) (*OAuthProvider, error) {
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	return newProvider(httpClient, NewOAuthConfig(clientID, clientSecret, scopes), &oauth2.Token{RefreshToken: refreshToken}), nil
}

// NewAuthorizedUserProvider lê um credentials.json de usuário autorizado
func NewAuthorizedUserProvider(httpClient *http.Client, path string, scopes []string) (*OAuthProvider, error) {
	user, err := LoadAuthorizedUser(path)
	if err != nil {
		return nil, err
	}

	if user.RefreshToken == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRefreshToken, path)
	}

	cfg := NewOAuthConfig(user.ClientID, user.ClientSecret, scopes)
	if user.TokenURI != "" {
		cfg.Endpoint.TokenURL = user.TokenURI
	}

	token := &oauth2.Token{
		AccessToken:  user.Token,
		RefreshToken: user.RefreshToken,
		Expiry:       user.Expiry,
	}

	return newProvider(httpClient, cfg, token), nil
}

// NewStaticProvider usa um token fixo, útil para testes e execuções pontuais
func NewStaticProvider(accessToken string) *OAuthProvider {
	return &OAuthProvider{token: &oauth2.Token{AccessToken: accessToken}}
}

func newProvider(httpClient *http.Client, cfg *oauth2.Config, token *oauth2.Token) *OAuthProvider {
	return &OAuthProvider{config: cfg, httpClient: httpClient, token: token}
}

// AccessToken retorna um token válido; falhas de renovação são classificadas
// como erro de autenticação (credencial revogada) ou transitório (rede)
func (p *OAuthProvider) AccessToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token.Valid() {
		return p.token.AccessToken, nil
	}

	if p.config == nil {
		return "", domain.NewSyncError(domain.FailureKindAuth, errors.New("token fixo expirado"))
	}

	refreshCtx := ctx
	if p.httpClient != nil {
		refreshCtx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	token, err := p.config.TokenSource(refreshCtx, p.token).Token()
	if err != nil {
		return "", ClassifyTokenError(err)
	}
	p.token = token

	return token.AccessToken, nil
}

// ClassifyTokenError converte erros do oauth2 para o tipo de falha da execução
func ClassifyTokenError(err error) error {
	if errors.Is(err, context.Canceled) {
		return domain.NewSyncError(domain.FailureKindCancelled, err)
	}

	// prazo da tentativa esgotado enquanto o servidor de tokens não respondia
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewSyncError(domain.FailureKindTransientSource, err)
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return domain.NewSyncError(domain.FailureKindTransientSource, err)
		}
		return domain.NewSyncError(domain.FailureKindAuth, err)
	}

	return domain.NewSyncError(domain.FailureKindTransientSource, err)
}

func LoadAuthorizedUser(path string) (*AuthorizedUser, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler credenciais %s: %w", path, err)
	}

	user := &AuthorizedUser{}
	if err := json.Unmarshal(content, user); err != nil {
		return nil, fmt.Errorf("erro ao deserializar credenciais %s: %w", path, err)
	}

	return user, nil
}

// SaveAuthorizedUser grava as credenciais com permissão restrita ao dono
func SaveAuthorizedUser(path string, cfg *oauth2.Config, token *oauth2.Token) error {
	user := AuthorizedUser{
		Type:         "authorized_user",
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RefreshToken: token.RefreshToken,
		Token:        token.AccessToken,
		TokenURI:     cfg.Endpoint.TokenURL,
		Scopes:       cfg.Scopes,
		Expiry:       token.Expiry,
	}

	content, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(path, content, 0o600)
}
