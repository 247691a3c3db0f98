package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: Database{Driver: "postgres"},
		Store:    Store{Driver: "postgres"},
		GoogleAds: GoogleAds{
			BaseURL:           "https://googleads.googleapis.com",
			APIVersion:        "v17",
			RequestsPerSecond: 1,
		},
		GooglePlay: GooglePlay{
			BaseURL:         "https://androidpublisher.googleapis.com",
			StorageURL:      "https://storage.googleapis.com",
			ReviewsPageSize: 100,
		},
		OpenAI: OpenAI{
			BaseURL:            "https://api.openai.com/v1",
			Model:              "o3",
			MaxRecommendations: 15,
		},
		DailySync: DailySync{
			CronSchedule:        "0 8 * * *",
			Timezone:            "UTC",
			ReportLagDays:       1,
			FetchMaxAttempts:    3,
			GenerateMaxAttempts: 3,
			BackoffInitial:      2 * time.Second,
			BackoffMax:          30 * time.Second,
			BackoffMultiplier:   2,
			FetchTimeout:        time.Minute,
			GenerateTimeout:     90 * time.Second,
			StoreTimeout:        15 * time.Second,
			HistorySize:         30,
		},
		Auth: Auth{Enabled: true, Secret: "segredo"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Configuração padrão válida", mutate: func(c *Config) {}},
		{name: "Cron inválido", mutate: func(c *Config) { c.DailySync.CronSchedule = "todo dia" }, wantErr: true},
		{name: "Fuso horário inválido", mutate: func(c *Config) { c.DailySync.Timezone = "Marte/Olympus" }, wantErr: true},
		{name: "Driver de armazenamento desconhecido", mutate: func(c *Config) { c.Store.Driver = "redis" }, wantErr: true},
		{name: "Armazenamento em arquivo sem diretório", mutate: func(c *Config) { c.Store.Driver = "file" }, wantErr: true},
		{name: "Nenhuma tentativa de busca", mutate: func(c *Config) { c.DailySync.FetchMaxAttempts = 0 }, wantErr: true},
		{name: "Backoff máximo menor que o inicial", mutate: func(c *Config) { c.DailySync.BackoffMax = time.Second }, wantErr: true},
		{name: "Autenticação sem segredo", mutate: func(c *Config) { c.Auth.Secret = "" }, wantErr: true},
		{name: "Autenticação desabilitada sem segredo", mutate: func(c *Config) { c.Auth = Auth{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadGoogleAdsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "google-ads.yaml")
	content := "developer_token: dev-token\nlogin_customer_id: 1234567890\nclient_id: client\nclient_secret: secret\nrefresh_token: refresh\nuse_proto_plus: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	file, err := loadGoogleAdsFile(path)
	require.NoError(t, err)

	ads := GoogleAds{DeveloperToken: "env-token"}
	ads.merge(file)

	assert.Equal(t, "env-token", ads.DeveloperToken)
	assert.Equal(t, "1234567890", ads.LoginCustomerID)
	assert.Equal(t, "client", ads.ClientID)
	assert.Equal(t, "refresh", ads.RefreshToken)

	missing, err := loadGoogleAdsFile(filepath.Join(dir, "inexistente.yaml"))
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGoogleAds_NormalizedCustomerID(t *testing.T) {
	ads := GoogleAds{CustomerID: "123-456-7890", LoginCustomerID: "999-000-1111"}

	assert.Equal(t, "1234567890", ads.NormalizedCustomerID())
	assert.Equal(t, "9990001111", ads.NormalizedLoginCustomerID())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DAILY_SYNC_CRON", "30 6 * * *")
	t.Setenv("DAILY_SYNC_BACKOFF_INITIAL", "1s")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_PATH", "/tmp/gads.db")
	t.Setenv("GOOGLE_ADS_CONFIG_FILE", "")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "30 6 * * *", cfg.DailySync.CronSchedule)
	assert.Equal(t, time.Second, cfg.DailySync.BackoffInitial)
	assert.Equal(t, 30*time.Second, cfg.DailySync.BackoffMax)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/gads.db", cfg.Database.DSN)
	assert.Equal(t, 15, cfg.OpenAI.MaxRecommendations)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}
