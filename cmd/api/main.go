package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier"
	"github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier/notifierclient"
	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/internal/api"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/scheduler"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/limits"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/submitting"
)

func main() {
	// O formatador precisa estar pronto antes do primeiro log
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Nível de log vem da configuração; valor inválido cai em info
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	analysisRepo := repository.NewAnalysisRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	assetRankingRepo := repository.NewAssetRankingRepository(pgConn)
	limitsRepo := repository.NewLimitsRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// O motor e o montador são puros; qualquer ajuste de limiar vem da config
	analyzer := analyzing.NewService(analyzing.EngineConfigFromApp(cfg))

	assemblerConfig, err := reporting.AssemblerConfigFromApp(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Configuração de faixas do relatório inválida")
	}

	assembler, err := reporting.NewService(assemblerConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao montar o serviço de relatórios")
	}

	limitsService := limits.NewService(limitsRepo)
	rankingService := ranking.NewAssetRankingService(assetRankingRepo)
	submissionService := submitting.NewService(cfg, analyzer, limitsService, analysisRepo, reportRepo)

	notifierService := notifier.New(cfg, notifierclient.NewClient(cfg))

	// Inicializa os agendadores: o worker da fila de análises e a
	// consolidação mensal do ranking de assets
	analysisWorkerService := scheduler.NewAnalysisWorkerService(
		analysisRepo,
		reportRepo,
		assetRankingRepo,
		analyzer,
		assembler,
		limitsService,
		notifierService,
		cfg,
	)

	assetRankingSyncService := scheduler.NewAssetRankingSyncService(
		assetRankingRepo,
		cfg,
	)

	// Schedulers sobem antes do servidor; falha neles não derruba a API
	if err := analysisWorkerService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o worker de análises")
	} else {
		logrus.Info("Worker de análises iniciado com sucesso")
	}

	if err := assetRankingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ranking de assets")
	} else {
		logrus.Info("Agendador do ranking de assets iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		submissionService,
		limitsService,
		rankingService,
		analysisWorkerService,
		assetRankingSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger define o formato dos logs antes de qualquer saída
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn abre a conexão com o banco; sem banco a aplicação não sobe
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
