package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/submitting"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/stock-analytics-api/pkg/middleware"
)

// GetAnalysisReport retorna o relatório de uma análise concluída. Análise
// ainda na fila responde 409 com o código de relatório indisponível; análise
// que falhou responde com o código registrado na falha.
func GetAnalysisReport(service submitting.SubmissionService) http.HandlerFunc {
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

		report, err := service.GetReport(userClaims.UserID, analysisID)
		if err != nil {
			logrus.Error(err)
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(report)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// ListReports lista os relatórios do próprio usuário, mais recentes primeiro
func ListReports(service submitting.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		reports, err := service.ListReports(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(reports)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetAvailablePeriods retorna os períodos mensais com relatórios armazenados
// para o usuário, com os anos e meses distintos já separados
func GetAvailablePeriods(service submitting.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		periods, err := service.GetAvailablePeriods(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			writeAnalysisError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(periods)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
