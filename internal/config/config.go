package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Engine           Engine           `mapstructure:",squash"`
	AnalysisWorker   AnalysisWorker   `mapstructure:",squash"`
	AssetRankingSync AssetRankingSync `mapstructure:",squash"`
	Notifier         Notifier         `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN             string `mapstructure:"-"`
	Driver          string `mapstructure:"database_driver"`
	Password        string `mapstructure:"database_password"`
	URL             string `mapstructure:"database_url"`
	User            string `mapstructure:"database_user"`
	MaxOpenConns    int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int    `mapstructure:"database_max_idle_conns"`
	ConnMaxLifeMins int    `mapstructure:"database_conn_max_life_minutes"`
}

// Engine concentra os parâmetros do motor de análise. Nada aqui vive em
// estado global: os valores são injetados no construtor do motor, o que
// permite testar com limiares alternativos.
type Engine struct {
	BrokenRowsThresholdPct float64  `mapstructure:"engine_broken_rows_threshold_pct"`
	NewWorksMonths         int      `mapstructure:"engine_new_works_months"`
	PortfolioTierBounds    []string `mapstructure:"engine_portfolio_tier_bounds"`
	NewWorksTierBounds     []string `mapstructure:"engine_new_works_tier_bounds"`
	UploadUsageTierBounds  []string `mapstructure:"engine_upload_usage_tier_bounds"`
	DatetimeLayouts        []string `mapstructure:"engine_datetime_layouts"`
	MaxUploadSizeMB        int64    `mapstructure:"engine_max_upload_size_mb"`
}

type AnalysisWorker struct {
	CronSchedule           string `mapstructure:"analysis_worker_cron"`
	MaxConcurrentJobs      int    `mapstructure:"analysis_worker_max_concurrent_jobs"`
	BatchSize              int    `mapstructure:"analysis_worker_batch_size"`
	StaleProcessingMinutes int    `mapstructure:"analysis_worker_stale_processing_minutes"`
	Enabled                bool   `mapstructure:"analysis_worker_enabled"`
}

type AssetRankingSync struct {
	CronSchedule string `mapstructure:"asset_ranking_sync_cron"`
	TopN         int    `mapstructure:"asset_ranking_sync_top_n"`
	SyncEnabled  bool   `mapstructure:"asset_ranking_sync_enabled"`
}

type Notifier struct {
	WebhookURL     string `mapstructure:"notifier_webhook_url"`
	AuthToken      string `mapstructure:"notifier_auth_token"`
	TimeoutSeconds int    `mapstructure:"notifier_timeout_seconds"`
	Enabled        bool   `mapstructure:"notifier_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/stockanalytics")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFE_MINUTES", 30)

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Defaults do motor de análise. Os limites de faixa são listas de quatro
	// cortes ascendentes que separam as cinco faixas de cada métrica.
	viper.SetDefault("ENGINE_BROKEN_ROWS_THRESHOLD_PCT", 20.0) // Acima disso o upload é rejeitado
	viper.SetDefault("ENGINE_NEW_WORKS_MONTHS", 3)             // Janela de obra nova em meses de calendário
	viper.SetDefault("ENGINE_PORTFOLIO_TIER_BOUNDS", "1,2,3,5")
	viper.SetDefault("ENGINE_NEW_WORKS_TIER_BOUNDS", "10,20,30,85")
	viper.SetDefault("ENGINE_UPLOAD_USAGE_TIER_BOUNDS", "30,60,80,95")
	viper.SetDefault("ENGINE_DATETIME_LAYOUTS", "2006-01-02T15:04:05Z07:00,2006-01-02 15:04:05,2006-01-02T15:04:05,2006-01-02")
	viper.SetDefault("ENGINE_MAX_UPLOAD_SIZE_MB", 10) // Tamanho máximo do CSV aceito

	// Defaults do worker de análises
	viper.SetDefault("ANALYSIS_WORKER_CRON", "*/1 * * * *")          // A cada minuto
	viper.SetDefault("ANALYSIS_WORKER_MAX_CONCURRENT_JOBS", 3)       // 3 análises concorrentes
	viper.SetDefault("ANALYSIS_WORKER_BATCH_SIZE", 10)               // 10 análises por ciclo
	viper.SetDefault("ANALYSIS_WORKER_STALE_PROCESSING_MINUTES", 30) // PROCESSING mais velho que isso vira FAILED
	viper.SetDefault("ANALYSIS_WORKER_ENABLED", true)

	viper.SetDefault("ASSET_RANKING_SYNC_CRON", "0 6 2 * *") // Dia 2 de cada mês às 6h da manhã
	viper.SetDefault("ASSET_RANKING_SYNC_TOP_N", 10)         // Tamanho do ranking por período
	viper.SetDefault("ASSET_RANKING_SYNC_ENABLED", false)

	viper.SetDefault("NOTIFIER_WEBHOOK_URL", "")
	viper.SetDefault("NOTIFIER_AUTH_TOKEN", "")
	viper.SetDefault("NOTIFIER_TIMEOUT_SECONDS", 5)
	viper.SetDefault("NOTIFIER_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

// NewConfig monta a configuração na ordem: defaults, arquivo .env (quando
// existe, útil em desenvolvimento) e variáveis de ambiente por cima de tudo.
func NewConfig() (*Config, error) {
	// godotenv joga o .env no ambiente do processo antes do viper ler
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Sem .env não é erro: em produção tudo chega por variável de ambiente
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Arquivo .env não lido pelo viper, seguindo com o ambiente: ", err)
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

// loadEnvFile procura o .env subindo a partir do diretório atual, o que cobre
// rodar a partir da raiz do projeto, de cmd/api ou de dentro de um pacote nos
// testes. Não achar o arquivo é o caminho normal fora de desenvolvimento.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando só o ambiente")
}
