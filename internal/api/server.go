package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/internal/api/handler"
	"github.com/vfg2006/stock-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/scheduler"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/limits"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/submitting"
	"github.com/vfg2006/stock-analytics-api/pkg/middleware"
)

const (
	// readHeaderTimeout limita a espera pelos headers e protege o servidor de
	// conexões que abrem e não enviam nada
	readHeaderTimeout = 2 * time.Second

	// drainTimeout é o prazo para as requisições em andamento terminarem no
	// desligamento gracioso
	drainTimeout = 15 * time.Second
)

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	submissionService submitting.SubmissionService,
	limitsService limits.LimitsService,
	rankingService ranking.RankingService,
	analysisWorkerService *scheduler.AnalysisWorkerService,
	assetRankingSyncService *scheduler.AssetRankingSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		AnalysisWorkerService:   analysisWorkerService,
		AssetRankingSyncService: assetRankingSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Analyses(cfg, submissionService)...),
		router.WithRoutes(handler.Reports(submissionService)...),
		router.WithRoutes(handler.Limits(limitsService)...),
		router.WithRoutes(handler.AssetRanking(rankingService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	// A ordem importa: o recover de pânico envolve tudo, o log de acesso vem
	// antes do CORS e a autenticação fecha a cadeia já perto dos handlers
	chain := alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	).Then(rt)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Run sobe o servidor HTTP e bloqueia até um sinal de término, o cancelamento
// do contexto ou uma falha de escuta. Nos dois primeiros casos as conexões em
// andamento são drenadas antes de retornar.
func (s *Server) Run(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")
		listenErr <- s.httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-listenErr:
		// ListenAndServe só retorna por falha de bind ou Shutdown; aqui ainda
		// não houve Shutdown
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("erro ao subir o servidor: %w", err)
		}
		return nil

	case sig := <-stop:
		logrus.WithField("signal", sig.String()).Info("Sinal de término recebido")

	case <-ctx.Done():
		logrus.Info("Contexto da aplicação cancelado")
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	logrus.WithField("timeout", drainTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
