package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/limits"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/stock-analytics-api/pkg/middleware"
)

type GrantAnalysesRequest struct {
	Amount int `json:"amount"`
}

// GetMyLimits retorna o perfil de limites do usuário logado. Usuário sem
// perfil provisionado recebe o perfil zerado.
func GetMyLimits(service limits.LimitsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		userLimits, err := service.GetUserLimits(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			writeLimitsError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(userLimits)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// SaveMyLimits grava os parâmetros padrão de análise do usuário logado.
// O saldo de análises não é alterado por esta rota.
func SaveMyLimits(service limits.LimitsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SaveMyLimits")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UserLimits
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		saved, err := service.SaveUserLimits(userClaims.UserID, &req)
		if err != nil {
			logrus.Error(err)
			writeLimitsError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(saved)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GrantAnalyses credita saldo de análises para um usuário. Apenas
// administradores podem conceder saldo.
func GrantAnalyses(service limits.LimitsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GrantAnalyses")

		// Verificar permissões - apenas administradores podem conceder saldo
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || !userClaims.IsAdmin() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem conceder saldo de análises", nil)
			return
		}

		targetUserID, idOk := userIDFromPath(w, r)
		if !idOk {
			return
		}

		var req GrantAnalysesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if err := service.GrantAnalyses(targetUserID, req.Amount); err != nil {
			logrus.Error(err)
			writeLimitsError(w, err)
			return
		}

		// Retornar o perfil atualizado do usuário alvo
		updated, err := service.GetUserLimits(targetUserID)
		if err != nil {
			logrus.Error(err)
			writeLimitsError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(updated)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// writeLimitsError traduz os erros tipados de limites para a resposta da API
func writeLimitsError(w http.ResponseWriter, err error) {
	var limitsErr *limits.LimitsError
	if errors.As(err, &limitsErr) {
		var details any
		if limitsErr.UserID != 0 {
			details = map[string]any{"user_id": limitsErr.UserID}
		}
		apiErrors.WriteError(w, limitsErr.Code, limitsErr.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
}
