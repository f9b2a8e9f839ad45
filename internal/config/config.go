package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	RateLimit     RateLimit     `mapstructure:",squash"`
	Geolocation   Geolocation   `mapstructure:",squash"`
	Optimizer     Optimizer     `mapstructure:",squash"`
	AnalyticsSync AnalyticsSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	BaseURL  string `mapstructure:"app_base_url"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret          string        `mapstructure:"auth_secret"`
	TokenExpiration time.Duration `mapstructure:"auth_token_expiration"`
}

type RateLimit struct {
	Strategy        string        `mapstructure:"rate_limit_strategy"` // sliding_window ou windowed_counter
	Window          time.Duration `mapstructure:"rate_limit_window"`
	MaxUniqueTokens int           `mapstructure:"rate_limit_max_unique_tokens"`
	RedirectLimit   int           `mapstructure:"rate_limit_redirect_limit"`
	ShortenLimit    int           `mapstructure:"rate_limit_shorten_limit"`
}

type Geolocation struct {
	BaseURL string        `mapstructure:"geolocation_base_url"`
	Timeout time.Duration `mapstructure:"geolocation_timeout"`
}

type Optimizer struct {
	UniquenessWindow  time.Duration `mapstructure:"optimizer_uniqueness_window"`
	UniquenessTimeout time.Duration `mapstructure:"optimizer_uniqueness_timeout"`
}

type AnalyticsSync struct {
	CronSchedule string `mapstructure:"analytics_sync_cron"`
	LookbackDays int    `mapstructure:"analytics_sync_lookback_days"`
	Enabled      bool   `mapstructure:"analytics_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8000")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/linkvault")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_TOKEN_EXPIRATION", "24h")

	// Limites do caminho de redirecionamento e da API de encurtamento
	viper.SetDefault("RATE_LIMIT_STRATEGY", "sliding_window")
	viper.SetDefault("RATE_LIMIT_WINDOW", "60s")
	viper.SetDefault("RATE_LIMIT_MAX_UNIQUE_TOKENS", 500)
	viper.SetDefault("RATE_LIMIT_REDIRECT_LIMIT", 60)
	viper.SetDefault("RATE_LIMIT_SHORTEN_LIMIT", 10)

	viper.SetDefault("GEOLOCATION_BASE_URL", "http://ip-api.com")
	viper.SetDefault("GEOLOCATION_TIMEOUT", "800ms")

	viper.SetDefault("OPTIMIZER_UNIQUENESS_WINDOW", "24h")
	viper.SetDefault("OPTIMIZER_UNIQUENESS_TIMEOUT", "500ms")

	viper.SetDefault("ANALYTICS_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("ANALYTICS_SYNC_LOOKBACK_DAYS", 2)
	viper.SetDefault("ANALYTICS_SYNC_ENABLED", false)
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
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
