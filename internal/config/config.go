package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Store      Store      `mapstructure:",squash"`
	GoogleAds  GoogleAds  `mapstructure:",squash"`
	GooglePlay GooglePlay `mapstructure:",squash"`
	OpenAI     OpenAI     `mapstructure:",squash"`
	DailySync  DailySync  `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"server_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver" validate:"oneof=postgres sqlite"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Path     string `mapstructure:"database_path"`
}

// Store define onde os conjuntos de recomendações são persistidos
type Store struct {
	Driver  string `mapstructure:"store_driver" validate:"oneof=postgres sqlite file"`
	FileDir string `mapstructure:"store_file_dir"`
}

type GoogleAds struct {
	ConfigFile        string  `mapstructure:"google_ads_config_file"`
	BaseURL           string  `mapstructure:"google_ads_base_url" validate:"required,url"`
	APIVersion        string  `mapstructure:"google_ads_api_version" validate:"required"`
	CustomerID        string  `mapstructure:"google_ads_customer_id"`
	LoginCustomerID   string  `mapstructure:"google_ads_login_customer_id"`
	DeveloperToken    string  `mapstructure:"google_ads_developer_token"`
	ClientID          string  `mapstructure:"google_ads_client_id"`
	ClientSecret      string  `mapstructure:"google_ads_client_secret"`
	RefreshToken      string  `mapstructure:"google_ads_refresh_token"`
	RequestsPerSecond float64 `mapstructure:"google_ads_requests_per_second" validate:"gt=0"`
}

type GooglePlay struct {
	PackageName     string `mapstructure:"google_play_package_name"`
	CredentialsFile string `mapstructure:"google_play_credentials_file"`
	BaseURL         string `mapstructure:"google_play_base_url" validate:"required,url"`
	StorageURL      string `mapstructure:"google_play_storage_url" validate:"required,url"`
	ReportsBucket   string `mapstructure:"google_play_reports_bucket"`
	ReviewsPageSize int    `mapstructure:"google_play_reviews_page_size" validate:"gte=1,lte=100"`
}

type OpenAI struct {
	APIKey             string `mapstructure:"openai_api_key"`
	BaseURL            string `mapstructure:"openai_base_url" validate:"required,url"`
	Model              string `mapstructure:"openai_model" validate:"required"`
	Seed               int    `mapstructure:"openai_seed"`
	MaxRecommendations int    `mapstructure:"openai_max_recommendations" validate:"gte=1"`
}

type DailySync struct {
	CronSchedule        string        `mapstructure:"daily_sync_cron" validate:"required"`
	Enabled             bool          `mapstructure:"daily_sync_enabled"`
	Timezone            string        `mapstructure:"daily_sync_timezone" validate:"required"`
	ReportLagDays       int           `mapstructure:"daily_sync_report_lag_days" validate:"gte=0"`
	FetchMaxAttempts    int           `mapstructure:"daily_sync_fetch_max_attempts" validate:"gte=1"`
	GenerateMaxAttempts int           `mapstructure:"daily_sync_generate_max_attempts" validate:"gte=1"`
	BackoffInitial      time.Duration `mapstructure:"daily_sync_backoff_initial" validate:"gt=0"`
	BackoffMax          time.Duration `mapstructure:"daily_sync_backoff_max" validate:"gtefield=BackoffInitial"`
	BackoffMultiplier   float64       `mapstructure:"daily_sync_backoff_multiplier" validate:"gte=1"`
	FetchTimeout        time.Duration `mapstructure:"daily_sync_fetch_timeout" validate:"gt=0"`
	GenerateTimeout     time.Duration `mapstructure:"daily_sync_generate_timeout" validate:"gt=0"`
	StoreTimeout        time.Duration `mapstructure:"daily_sync_store_timeout" validate:"gt=0"`
	HistorySize         int           `mapstructure:"daily_sync_history_size" validate:"gte=1"`
}

// Location retorna o fuso usado para calcular a data alvo da execução agendada
func (d DailySync) Location() *time.Location {
	location, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}

	return location
}

type Auth struct {
	Enabled bool   `mapstructure:"auth_enabled"`
	Secret  string `mapstructure:"auth_secret"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", "*")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/gads_play?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_PATH", "data/gads_play.db")

	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("STORE_FILE_DIR", "data/recommendations")

	viper.SetDefault("GOOGLE_ADS_CONFIG_FILE", "config/google-ads.yaml")
	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_API_VERSION", "v17")
	viper.SetDefault("GOOGLE_ADS_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_REFRESH_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_REQUESTS_PER_SECOND", 1)

	viper.SetDefault("GOOGLE_PLAY_PACKAGE_NAME", "")
	viper.SetDefault("GOOGLE_PLAY_CREDENTIALS_FILE", defaultCredentialsFile())
	viper.SetDefault("GOOGLE_PLAY_BASE_URL", "https://androidpublisher.googleapis.com")
	viper.SetDefault("GOOGLE_PLAY_STORAGE_URL", "https://storage.googleapis.com")
	viper.SetDefault("GOOGLE_PLAY_REPORTS_BUCKET", "")
	viper.SetDefault("GOOGLE_PLAY_REVIEWS_PAGE_SIZE", 100)

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_MODEL", "o3")
	viper.SetDefault("OPENAI_SEED", 0)
	viper.SetDefault("OPENAI_MAX_RECOMMENDATIONS", 15)

	// Defaults para a sincronização diária
	viper.SetDefault("DAILY_SYNC_CRON", "0 8 * * *") // Todos os dias às 8h da manhã
	viper.SetDefault("DAILY_SYNC_ENABLED", false)
	viper.SetDefault("DAILY_SYNC_TIMEZONE", "UTC")
	viper.SetDefault("DAILY_SYNC_REPORT_LAG_DAYS", 1) // Processa o dia anterior
	viper.SetDefault("DAILY_SYNC_FETCH_MAX_ATTEMPTS", 3)
	viper.SetDefault("DAILY_SYNC_GENERATE_MAX_ATTEMPTS", 3)
	viper.SetDefault("DAILY_SYNC_BACKOFF_INITIAL", "2s")
	viper.SetDefault("DAILY_SYNC_BACKOFF_MAX", "30s")
	viper.SetDefault("DAILY_SYNC_BACKOFF_MULTIPLIER", 2.0)
	viper.SetDefault("DAILY_SYNC_FETCH_TIMEOUT", "60s")
	viper.SetDefault("DAILY_SYNC_GENERATE_TIMEOUT", "90s")
	viper.SetDefault("DAILY_SYNC_STORE_TIMEOUT", "15s")
	viper.SetDefault("DAILY_SYNC_HISTORY_SIZE", 30)

	viper.SetDefault("AUTH_ENABLED", true)
	viper.SetDefault("AUTH_SECRET", "your_secret_key")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// Credenciais do Google Ads podem vir do google-ads.yaml; variáveis de ambiente têm prioridade
	adsFile, err := loadGoogleAdsFile(config.GoogleAds.ConfigFile)
	if err != nil {
		return nil, err
	}
	config.GoogleAds.merge(adsFile)

	if config.Store.Driver != "file" {
		config.Database.Driver = config.Store.Driver
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)
	if config.Database.Driver == "sqlite" {
		config.Database.DSN = config.Database.Path
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "credentials.json"
	}

	return filepath.Join(home, ".config", "gads-play-optimizer", "credentials.json")
}

// NormalizedCustomerID remove os traços do ID de cliente (123-456-7890)
func (g GoogleAds) NormalizedCustomerID() string {
	return strings.ReplaceAll(g.CustomerID, "-", "")
}

func (g GoogleAds) NormalizedLoginCustomerID() string {
	return strings.ReplaceAll(g.LoginCustomerID, "-", "")
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
