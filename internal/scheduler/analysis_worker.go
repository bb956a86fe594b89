package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier"
	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/limits"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

// AnalysisWorkerConfig representa a configuração do worker de análises
type AnalysisWorkerConfig struct {
	CronSchedule           string
	MaxConcurrentJobs      int
	BatchSize              int
	StaleProcessingMinutes int
	WorkerEnabled          bool
}

// AnalysisWorkerService consome a fila de análises pendentes: lê o CSV
// armazenado, roda o motor de KPIs, monta o relatório e notifica o resultado
type AnalysisWorkerService struct {
	scheduler           *gocron.Scheduler
	config              AnalysisWorkerConfig
	appConfig           *config.Config
	analysisRepo        repository.AnalysisRepository
	reportRepo          repository.ReportRepository
	assetRepo           repository.AssetRankingRepository
	analyzer            analyzing.Analyzer
	assembler           reporting.Assembler
	limitsService       limits.LimitsService
	notifierService     notifier.Notifier
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewAnalysisWorkerService cria uma nova instância do worker de análises
func NewAnalysisWorkerService(
	analysisRepo repository.AnalysisRepository,
	reportRepo repository.ReportRepository,
	assetRepo repository.AssetRankingRepository,
	analyzer analyzing.Analyzer,
	assembler reporting.Assembler,
	limitsService limits.LimitsService,
	notifierService notifier.Notifier,
	appConfig *config.Config,
) *AnalysisWorkerService {
	workerConfig := AnalysisWorkerConfig{
		CronSchedule:           appConfig.AnalysisWorker.CronSchedule,
		MaxConcurrentJobs:      appConfig.AnalysisWorker.MaxConcurrentJobs,
		BatchSize:              appConfig.AnalysisWorker.BatchSize,
		StaleProcessingMinutes: appConfig.AnalysisWorker.StaleProcessingMinutes,
		WorkerEnabled:          appConfig.AnalysisWorker.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":            workerConfig.CronSchedule,
		"max_concurrent_jobs":      workerConfig.MaxConcurrentJobs,
		"batch_size":               workerConfig.BatchSize,
		"stale_processing_minutes": workerConfig.StaleProcessingMinutes,
		"worker_enabled":           workerConfig.WorkerEnabled,
	}).Info("Configuração do worker de análises carregada")

	return &AnalysisWorkerService{
		scheduler:       scheduler,
		config:          workerConfig,
		appConfig:       appConfig,
		analysisRepo:    analysisRepo,
		reportRepo:      reportRepo,
		assetRepo:       assetRepo,
		analyzer:        analyzer,
		assembler:       assembler,
		limitsService:   limitsService,
		notifierService: notifierService,
		syncRunning:     false,
	}
}

// Start registra o consumo da fila no cron configurado e amarra o desligamento
// do agendador ao cancelamento do contexto
func (s *AnalysisWorkerService) Start(ctx context.Context) error {
	if !s.config.WorkerEnabled {
		logrus.Info("Worker de análises desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando worker de análises")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.processQueue()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar worker de análises: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando worker de análises")
		s.scheduler.Stop()
	}()

	return nil
}

// processQueue varre análises presas, reivindica um lote de pendentes e
// processa cada uma em paralelo limitado
func (s *AnalysisWorkerService) processQueue() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Processamento de análises já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	// Análises presas em PROCESSING além do limite viram FAILED antes de um
	// novo lote ser reivindicado
	stale, err := s.analysisRepo.FailStaleProcessing(s.config.StaleProcessingMinutes)
	if err != nil {
		logrus.WithError(err).Error("Erro ao varrer análises presas em processamento")
	} else if stale > 0 {
		logrus.WithField("stale_analyses", stale).Warn("Análises presas em processamento marcadas como falha")
	}

	claimed, err := s.analysisRepo.ClaimPendingAnalyses(s.config.BatchSize)
	if err != nil {
		logrus.WithError(err).Error("Erro ao reivindicar análises pendentes")
		return
	}

	if len(claimed) == 0 {
		return
	}

	logrus.WithField("claimed", len(claimed)).Info("Análises pendentes reivindicadas para processamento")

	s.processAnalyses(claimed)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"analyses": len(claimed),
	}).Info("Lote de análises processado")

	s.lastSyncCompletedAt = time.Now()
}

// processAnalyses processa as análises reivindicadas com concorrência limitada
func (s *AnalysisWorkerService) processAnalyses(analyses []*domain.Analysis) {
	// Semáforo limita o paralelismo a MaxConcurrentJobs
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, analysis := range analyses {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(a *domain.Analysis) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			logrus.WithFields(logrus.Fields{
				"analysis_id": a.ID,
				"user_id":     a.UserID,
				"file_name":   a.FileName,
			}).Info("Processando análise")

			if err := s.processAnalysis(a); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"analysis_id": a.ID,
					"user_id":     a.UserID,
				}).Error("Erro ao processar análise")
			}
		}(analysis)
	}

	wg.Wait()
}

// processAnalysis roda o pipeline completo de uma análise: payload, motor de
// KPIs, montagem do relatório, persistência e notificação
func (s *AnalysisWorkerService) processAnalysis(analysis *domain.Analysis) error {
	payload, err := s.analysisRepo.GetAnalysisPayload(analysis.ID)
	if err != nil {
		s.failAnalysis(analysis, apiErrors.ErrInternalServer, "Erro ao carregar o arquivo da análise")
		return fmt.Errorf("erro ao carregar payload da análise: %w", err)
	}

	result, err := s.analyzer.Run(payload, analysis.Inputs)
	if err != nil {
		code, message := classifyEngineError(err)
		s.failAnalysis(analysis, code, message)
		return fmt.Errorf("motor de análise recusou o arquivo: %w", err)
	}

	sections, err := s.assembler.Assemble(result.Kpi, analysis.Inputs)
	if err != nil {
		s.failAnalysis(analysis, apiErrors.ErrInternalServer, "Erro ao montar o relatório")
		return fmt.Errorf("erro ao montar relatório: %w", err)
	}

	reportID, err := utils.GenerateID()
	if err != nil {
		s.failAnalysis(analysis, apiErrors.ErrInternalServer, "Erro ao gerar identificador do relatório")
		return fmt.Errorf("erro ao gerar identificador do relatório: %w", err)
	}

	report := &domain.AnalyticsReport{
		ID:         reportID,
		AnalysisID: analysis.ID,
		UserID:     analysis.UserID,
		Period:     utils.FormatPeriod(result.Kpi.PeriodMonth),
		Kpi:        result.Kpi,
		ReportText: sections.Archival,
	}

	if err := s.reportRepo.SaveReport(report); err != nil {
		s.failAnalysis(analysis, apiErrors.ErrDatabaseOperation, "Erro ao salvar o relatório")
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}

	// Os agregados por asset alimentam o ranking mensal. Falha aqui não
	// invalida o relatório já salvo.
	if err := s.assetRepo.SaveAssetAggregates(analysis.ID, result.Assets); err != nil {
		logrus.WithError(err).WithField("analysis_id", analysis.ID).Warn("Erro ao salvar agregados por asset")
	}

	if err := s.analysisRepo.MarkAnalysisCompleted(analysis.ID, result.RowsTotal, result.RowsBroken); err != nil {
		return fmt.Errorf("erro ao concluir análise: %w", err)
	}

	// O saldo é debitado apenas por análise concluída. O relatório já foi
	// entregue, então um débito recusado não reverte a análise.
	if err := s.limitsService.ConsumeAnalysis(analysis.UserID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"analysis_id": analysis.ID,
			"user_id":     analysis.UserID,
		}).Warn("Erro ao debitar saldo de análises")
	}

	logrus.WithFields(logrus.Fields{
		"analysis_id": analysis.ID,
		"period":      report.Period,
		"rows_total":  result.RowsTotal,
		"rows_broken": result.RowsBroken,
	}).Info("Análise concluída com sucesso")

	if err := s.notifierService.NotifyReportReady(analysis, report); err != nil {
		logrus.WithError(err).WithField("analysis_id", analysis.ID).Warn("Erro ao notificar relatório pronto")
	}

	return nil
}

// failAnalysis marca a análise como FAILED e notifica o webhook. Erros aqui
// são apenas logados: a varredura de presas cobre o caso de a marcação falhar.
func (s *AnalysisWorkerService) failAnalysis(analysis *domain.Analysis, code, message string) {
	if err := s.analysisRepo.MarkAnalysisFailed(analysis.ID, code, message); err != nil {
		logrus.WithError(err).WithField("analysis_id", analysis.ID).Error("Erro ao marcar análise como falha")
		return
	}

	analysis.FailureCode = &code
	analysis.FailureMessage = &message

	if err := s.notifierService.NotifyAnalysisFailed(analysis); err != nil {
		logrus.WithError(err).WithField("analysis_id", analysis.ID).Warn("Erro ao notificar falha da análise")
	}
}

// classifyEngineError traduz erros do motor de análise para o código e a
// mensagem armazenados na análise. Erros de entrada carregam o próprio código;
// o restante vira erro interno.
func classifyEngineError(err error) (string, string) {
	var analysisErr *analyzing.AnalysisError
	if errors.As(err, &analysisErr) && analyzing.IsInputError(err) {
		return analysisErr.Code, analysisErr.Error()
	}

	return apiErrors.ErrInternalServer, "Erro interno ao processar a análise"
}

// TriggerManualSync inicia manualmente o consumo da fila de análises
func (s *AnalysisWorkerService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Processamento de análises já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando processamento manual da fila de análises")
	go s.processQueue()
}

// GetStatus retorna o status atual do worker
func (s *AnalysisWorkerService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.WorkerEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
