package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/limits"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/submitting"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/stock-analytics-api/pkg/middleware"
)

// CreateAnalysis recebe o upload multipart do CSV de vendas e enfileira a
// análise. O arquivo vai no campo "file"; content_type e os parâmetros
// numéricos do contribuidor são campos de formulário opcionais que
// sobrepõem o perfil salvo.
func CreateAnalysis(cfg *config.Config, service submitting.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateAnalysis")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		// Limitar o corpo antes do parse para não bufferizar uploads gigantes
		maxBytes := cfg.Engine.MaxUploadSizeMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge,
					fmt.Sprintf("Arquivo acima do limite de %dMB", cfg.Engine.MaxUploadSizeMB), nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Requisição multipart inválida", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo de arquivo 'file' não enviado", nil)
			return
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler o arquivo enviado", nil)
			return
		}

		req := &submitting.SubmitRequest{
			FileName:    header.Filename,
			ContentType: domain.ContentType(r.FormValue("content_type")),
			Payload:     payload,
		}

		if err := parseInputOverrides(r, req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		analysis, err := service.SubmitAnalysis(userClaims.UserID, req)
		if err != nil {
			logrus.Error(err)
			writeAnalysisError(w, err)
			return
		}

		// A análise entra na fila; o worker processa em seguida
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(analysis)
	}
}

// GetAnalysis retorna o status de uma análise do próprio usuário
func GetAnalysis(service submitting.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		analysisID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if analysisID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da análise não fornecido", nil)
			return
		}

		analysis, err := service.GetAnalysis(userClaims.UserID, analysisID)
		if err != nil {
			logrus.Error(err)
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(analysis)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ListAnalyses lista as análises do próprio usuário, mais recentes primeiro
func ListAnalyses(service submitting.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		analyses, err := service.ListAnalyses(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(analyses)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// parseInputOverrides lê os parâmetros numéricos opcionais do formulário
func parseInputOverrides(r *http.Request, req *submitting.SubmitRequest) error {
	if raw := r.FormValue("portfolio_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("portfolio_size inválido: %q", raw)
		}
		req.PortfolioSize = &value
	}

	if raw := r.FormValue("upload_quota"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("upload_quota inválido: %q", raw)
		}
		req.UploadQuota = &value
	}

	if raw := r.FormValue("monthly_uploads"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("monthly_uploads inválido: %q", raw)
		}
		req.MonthlyUploads = &value
	}

	if raw := r.FormValue("acceptance_rate_percent"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("acceptance_rate_percent inválido: %q", raw)
		}
		req.AcceptanceRatePercent = &value
	}

	return nil
}

// writeAnalysisError traduz os erros tipados do fluxo de análise para a
// resposta da API, preservando o código de cada camada
func writeAnalysisError(w http.ResponseWriter, err error) {
	var subErr *submitting.SubmissionError
	if errors.As(err, &subErr) {
		var details any
		if subErr.AnalysisID != "" {
			details = map[string]any{"analysis_id": subErr.AnalysisID}
		}
		apiErrors.WriteError(w, subErr.Code, subErr.Error(), details)
		return
	}

	var limitsErr *limits.LimitsError
	if errors.As(err, &limitsErr) {
		apiErrors.WriteError(w, limitsErr.Code, limitsErr.Error(), nil)
		return
	}

	var analysisErr *analyzing.AnalysisError
	if errors.As(err, &analysisErr) {
		apiErrors.WriteError(w, analysisErr.Code, analysisErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
}
