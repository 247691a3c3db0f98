package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/credentials"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/database"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/filestore"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleads"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleads/adsclient"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/googleplay/playclient"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/migration"
	"github.com/vfg2006/gads-play-optimizer/infrastructure/repository"
	"github.com/vfg2006/gads-play-optimizer/internal/config"
	"github.com/vfg2006/gads-play-optimizer/internal/scheduler"
	"github.com/vfg2006/gads-play-optimizer/internal/usecases/authenticating"
	"github.com/vfg2006/gads-play-optimizer/internal/usecases/recommending"
	"github.com/vfg2006/gads-play-optimizer/internal/usecases/syncing"
)

const StoreDriverFile = "file"

// App reúne os serviços montados a partir da configuração
type App struct {
	Config        *config.Config
	Store         repository.RecommendationSetRepository
	Authenticator authenticating.Authenticator
	Syncing       *syncing.Service
	Scheduler     *scheduler.DailySyncService

	closers []func() error
}

// New monta o armazenamento, as integrações e o fluxo diário
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Config:        cfg,
		Authenticator: authenticating.NewService(cfg),
	}

	store, closer, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	sourceHTTP := &http.Client{Timeout: cfg.DailySync.FetchTimeout}
	generationHTTP := &http.Client{Timeout: cfg.DailySync.GenerateTimeout}

	adsTokens, err := AdsTokenProvider(cfg, sourceHTTP)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("credenciais do Google Ads: %w", err)
	}

	playTokens, err := PlayTokenProvider(cfg, sourceHTTP, adsTokens)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("credenciais do Google Play: %w", err)
	}

	ads := googleads.New(cfg, adsclient.NewClient(cfg, sourceHTTP, adsTokens))
	play := googleplay.New(cfg, playclient.NewClient(cfg, sourceHTTP, playTokens))
	llm := openai.New(cfg, openaiclient.NewClient(cfg, generationHTTP))

	generator := recommending.NewService(cfg, llm)
	app.Syncing = syncing.NewService(cfg, ads, play, generator, store)
	app.Scheduler = scheduler.NewDailySyncService(app.Syncing, cfg)

	return app, nil
}

// NewStore abre o armazenamento de recomendações escolhido em STORE_DRIVER.
// Para os drivers SQL a migração é executada antes do uso.
func NewStore(ctx context.Context, cfg *config.Config) (repository.RecommendationSetRepository, func() error, error) {
	if cfg.Store.Driver == StoreDriverFile {
		store, err := filestore.NewRecommendationSetStore(cfg.Store.FileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao abrir diretório de recomendações: %w", err)
		}

		logrus.WithField("dir", cfg.Store.FileDir).Info("Usando armazenamento em arquivos")
		return store, nil, nil
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao conectar ao banco (%s): %w", cfg.Database.Driver, err)
	}

	if err := migration.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("erro ao executar migração: %w", err)
	}

	logrus.WithField("driver", conn.Driver).Info("Conexão com o banco estabelecida com sucesso")
	return repository.NewRecommendationSetRepository(conn), conn.Close, nil
}

// AdsTokenProvider usa o refresh token do google-ads.yaml ou, na falta dele,
// o credentials.json de usuário autorizado
func AdsTokenProvider(cfg *config.Config, httpClient *http.Client) (credentials.TokenProvider, error) {
	ads := cfg.GoogleAds
	if ads.RefreshToken != "" {
		return credentials.NewRefreshTokenProvider(httpClient, ads.ClientID, ads.ClientSecret, ads.RefreshToken, credentials.DefaultScopes)
	}

	return credentials.NewAuthorizedUserProvider(httpClient, cfg.GooglePlay.CredentialsFile, credentials.DefaultScopes)
}

// PlayTokenProvider prefere o credentials.json; sem ele reaproveita a credencial do Ads,
// que já pede os escopos do Play
func PlayTokenProvider(cfg *config.Config, httpClient *http.Client, fallback credentials.TokenProvider) (credentials.TokenProvider, error) {
	if _, err := os.Stat(cfg.GooglePlay.CredentialsFile); err != nil {
		if os.IsNotExist(err) && fallback != nil {
			return fallback, nil
		}
		return nil, err
	}

	return credentials.NewAuthorizedUserProvider(httpClient, cfg.GooglePlay.CredentialsFile, credentials.DefaultScopes)
}

// Close libera as conexões abertas
func (a *App) Close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso")
		}
	}
}
