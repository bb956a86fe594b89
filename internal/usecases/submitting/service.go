package submitting

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/limits"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

// SubmitRequest carrega o upload de um CSV de vendas. Os campos de entrada
// são opcionais: quando ausentes, valem os valores do perfil do contribuidor.
type SubmitRequest struct {
	FileName    string
	ContentType domain.ContentType
	Payload     []byte

	PortfolioSize         *int
	UploadQuota           *int
	MonthlyUploads        *int
	AcceptanceRatePercent *float64
}

// SubmissionService cobre o ciclo de vida de uma análise do ponto de vista do
// contribuidor: enfileirar o upload e recuperar status, relatório e períodos
type SubmissionService interface {
	SubmitAnalysis(userID int, req *SubmitRequest) (*domain.Analysis, error)
	GetAnalysis(userID int, analysisID string) (*domain.Analysis, error)
	ListAnalyses(userID int) ([]*domain.Analysis, error)
	GetReport(userID int, analysisID string) (*domain.AnalyticsReport, error)
	ListReports(userID int) ([]*domain.AnalyticsReport, error)
	GetAvailablePeriods(userID int) (*domain.AvailablePeriods, error)
}

type Service struct {
	cfg           *config.Config
	analyzer      analyzing.Analyzer
	limitsService limits.LimitsService
	analysisRepo  repository.AnalysisRepository
	reportRepo    repository.ReportRepository
}

func NewService(
	cfg *config.Config,
	analyzer analyzing.Analyzer,
	limitsService limits.LimitsService,
	analysisRepo repository.AnalysisRepository,
	reportRepo repository.ReportRepository,
) SubmissionService {
	return &Service{
		cfg:           cfg,
		analyzer:      analyzer,
		limitsService: limitsService,
		analysisRepo:  analysisRepo,
		reportRepo:    reportRepo,
	}
}

// SubmitAnalysis valida o upload, debita nada ainda (o saldo é consumido só
// quando a análise conclui) e enfileira a análise como PENDING
func (s *Service) SubmitAnalysis(userID int, req *SubmitRequest) (*domain.Analysis, error) {
	if req == nil || len(req.Payload) == 0 {
		return nil, NewSubmissionError(ErrMissingFile, apiErrors.ErrMissingRequiredData, "Arquivo CSV não enviado")
	}

	maxBytes := s.cfg.Engine.MaxUploadSizeMB * 1024 * 1024
	if maxBytes > 0 && int64(len(req.Payload)) > maxBytes {
		return nil, NewSubmissionError(
			ErrFileTooLarge,
			apiErrors.ErrFileTooLarge,
			fmt.Sprintf("Arquivo acima do limite de %dMB", s.cfg.Engine.MaxUploadSizeMB),
		)
	}

	if !domain.ValidContentType(req.ContentType) {
		return nil, NewSubmissionError(
			ErrUnsupportedContentType,
			apiErrors.ErrInvalidFormat,
			"Tipo de conteúdo inválido. Valores aceitos: ai, photo, illustration, video, vector",
		)
	}

	// http.DetectContentType devolve text/plain para CSV, então qualquer
	// payload binário (zip, imagem) é recusado antes de entrar na fila
	if sniffed := http.DetectContentType(req.Payload); !strings.HasPrefix(sniffed, "text/") {
		return nil, NewSubmissionError(
			ErrNotTextPayload,
			apiErrors.ErrMalformedInput,
			fmt.Sprintf("Arquivo não reconhecido como CSV de texto (%s)", sniffed),
		)
	}

	profile, err := s.limitsService.GetUserLimits(userID)
	if err != nil {
		return nil, err
	}

	if profile.AnalysesLeft <= 0 {
		return nil, NewSubmissionError(limits.ErrNoAnalysesLeft, apiErrors.ErrNoAnalysesLeft, "Saldo de análises esgotado")
	}

	inputs := profile.Inputs()
	applyOverrides(&inputs, req)

	if err := s.analyzer.ValidateInputs(inputs); err != nil {
		return nil, err
	}

	id, err := utils.GenerateAnalysisID()
	if err != nil {
		return nil, NewSubmissionError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador da análise")
	}

	analysis := &domain.Analysis{
		ID:          id,
		UserID:      userID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Status:      domain.AnalysisStatusPending,
		Inputs:      inputs,
		Payload:     req.Payload,
	}

	if err := s.analysisRepo.CreateAnalysis(analysis); err != nil {
		return nil, NewSubmissionErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao enfileirar a análise")
	}

	logrus.WithFields(logrus.Fields{
		"analysis_id": analysis.ID,
		"user_id":     userID,
		"file_name":   analysis.FileName,
		"bytes":       len(req.Payload),
	}).Info("Análise enfileirada")

	return analysis, nil
}

// GetAnalysis retorna uma análise do próprio usuário. Análise de outro
// usuário responde como não encontrada
func (s *Service) GetAnalysis(userID int, analysisID string) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.GetAnalysisByID(analysisID)
	if err != nil {
		return nil, NewSubmissionErrorWithID(err, apiErrors.ErrDatabaseOperation, analysisID, "Erro ao consultar análise")
	}

	if analysis == nil || analysis.UserID != userID {
		return nil, NewSubmissionErrorWithID(ErrAnalysisNotFound, apiErrors.ErrAnalysisNotFound, analysisID, "Análise não encontrada")
	}

	return analysis, nil
}

func (s *Service) ListAnalyses(userID int) ([]*domain.Analysis, error) {
	analyses, err := s.analysisRepo.ListAnalysesByUser(userID)
	if err != nil {
		return nil, NewSubmissionError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar análises")
	}
	return analyses, nil
}

// GetReport retorna o relatório de uma análise concluída. Análise ainda na
// fila responde como relatório indisponível; análise que falhou responde com
// o código de falha registrado no processamento
func (s *Service) GetReport(userID int, analysisID string) (*domain.AnalyticsReport, error) {
	analysis, err := s.GetAnalysis(userID, analysisID)
	if err != nil {
		return nil, err
	}

	switch analysis.Status {
	case domain.AnalysisStatusPending, domain.AnalysisStatusProcessing:
		return nil, NewSubmissionErrorWithID(
			ErrReportNotReady,
			apiErrors.ErrReportNotReady,
			analysisID,
			fmt.Sprintf("Análise ainda em processamento (status %s)", analysis.Status),
		)

	case domain.AnalysisStatusFailed:
		code := apiErrors.ErrInternalServer
		message := "Análise falhou"
		if analysis.FailureCode != nil {
			code = *analysis.FailureCode
		}
		if analysis.FailureMessage != nil {
			message = *analysis.FailureMessage
		}
		return nil, NewSubmissionErrorWithID(ErrAnalysisFailed, code, analysisID, message)
	}

	report, err := s.reportRepo.GetReportByAnalysisID(analysisID)
	if err != nil {
		return nil, NewSubmissionErrorWithID(err, apiErrors.ErrDatabaseOperation, analysisID, "Erro ao consultar relatório")
	}

	if report == nil {
		return nil, NewSubmissionErrorWithID(ErrReportNotReady, apiErrors.ErrReportNotReady, analysisID, "Relatório ainda não disponível")
	}

	return report, nil
}

func (s *Service) ListReports(userID int) ([]*domain.AnalyticsReport, error) {
	reports, err := s.reportRepo.ListReportsByUser(userID)
	if err != nil {
		return nil, NewSubmissionError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar relatórios")
	}
	return reports, nil
}

func (s *Service) GetAvailablePeriods(userID int) (*domain.AvailablePeriods, error) {
	periods, err := s.reportRepo.GetAvailablePeriods(userID)
	if err != nil {
		return nil, NewSubmissionError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar períodos disponíveis")
	}
	return periods, nil
}

// applyOverrides aplica sobre o perfil os valores informados no upload
func applyOverrides(inputs *domain.UserInputs, req *SubmitRequest) {
	if req.PortfolioSize != nil {
		inputs.PortfolioSize = *req.PortfolioSize
	}
	if req.UploadQuota != nil {
		inputs.UploadQuota = *req.UploadQuota
	}
	if req.MonthlyUploads != nil {
		inputs.MonthlyUploads = *req.MonthlyUploads
	}
	if req.AcceptanceRatePercent != nil {
		inputs.AcceptanceRatePercent = *req.AcceptanceRatePercent
	}
}
