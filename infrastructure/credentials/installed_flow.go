package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/vfg2006/gads-play-optimizer/pkg/utils"
	"golang.org/x/oauth2"
)

var ErrAuthorizationDenied = errors.New("autorização negada pelo usuário")

// ClientSecret é o client_secret.json de um app instalado, baixado do console do Google Cloud
type ClientSecret struct {
	Installed *clientSecretEntry `json:"installed"`
	Web       *clientSecretEntry `json:"web"`
}

type clientSecretEntry struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// LoadClientSecret monta a configuração OAuth a partir do client_secret.json
func LoadClientSecret(path string, scopes []string) (*oauth2.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler client secret %s: %w", path, err)
	}

	secret := ClientSecret{}
	if err := json.Unmarshal(content, &secret); err != nil {
		return nil, fmt.Errorf("erro ao deserializar client secret %s: %w", path, err)
	}

	entry := secret.Installed
	if entry == nil {
		entry = secret.Web
	}
	if entry == nil || entry.ClientID == "" {
		return nil, fmt.Errorf("client secret %s sem client_id", path)
	}

	cfg := NewOAuthConfig(entry.ClientID, entry.ClientSecret, scopes)
	if entry.AuthURI != "" {
		cfg.Endpoint.AuthURL = entry.AuthURI
	}
	if entry.TokenURI != "" {
		cfg.Endpoint.TokenURL = entry.TokenURI
	}

	return cfg, nil
}

// RunInstalledAppFlow executa o fluxo de app instalado com redirecionamento para um
// servidor local e grava o usuário autorizado em storePath
func RunInstalledAppFlow(ctx context.Context, cfg *oauth2.Config, storePath string, out io.Writer) error {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("erro ao abrir servidor local: %w", err)
	}
	defer listener.Close()

	cfg.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state, err := utils.GenerateID()
	if err != nil {
		return err
	}

	codes := make(chan string, 1)
	failures := make(chan error, 1)

	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("state") != state {
			http.Error(w, "state inválido", http.StatusBadRequest)
			return
		}

		if reason := query.Get("error"); reason != "" {
			select {
			case failures <- fmt.Errorf("%w: %s", ErrAuthorizationDenied, reason):
			default:
			}
			fmt.Fprintln(w, "Autorização negada. Você pode fechar esta janela.")
			return
		}

		select {
		case codes <- query.Get("code"):
		default:
		}
		fmt.Fprintln(w, "Autorização concluída. Você pode fechar esta janela.")
	})}

	go server.Serve(listener)
	defer server.Close()

	fmt.Fprintf(out, "Abra o endereço abaixo no navegador para autorizar o acesso:\n\n%s\n\n",
		cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	var code string
	select {
	case code = <-codes:
	case err := <-failures:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return ClassifyTokenError(err)
	}

	if token.RefreshToken == "" {
		return ErrMissingRefreshToken
	}

	if err := SaveAuthorizedUser(storePath, cfg, token); err != nil {
		return fmt.Errorf("erro ao gravar credenciais: %w", err)
	}

	fmt.Fprintf(out, "Credenciais salvas em %s\n", storePath)
	return nil
}
