// Package apiErrors define o contrato de erro da API: códigos estáveis por
// família, o status HTTP de cada um e o corpo JSON padronizado.
package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Os códigos são contrato com os clientes: nunca renumerar, só acrescentar.
// Lacunas numa família são códigos aposentados.
const (
	// Autenticação e contas
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Validação de payloads
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Análise de CSV
	ErrMalformedInput   = "ANL_001" // Arquivo não reconhecido como tabular
	ErrEmptyDataset     = "ANL_002" // Arquivo sem linhas de venda
	ErrDataQuality      = "ANL_003" // Percentual de linhas quebradas acima do limite
	ErrInvalidUserInput = "ANL_004" // Parâmetros do usuário fora do intervalo aceito
	ErrNoAnalysesLeft   = "ANL_005" // Saldo de análises esgotado
	ErrAnalysisNotFound = "ANL_006" // Análise não encontrada
	ErrReportNotReady   = "ANL_007" // Relatório ainda não disponível
	ErrFileTooLarge     = "ANL_008" // Arquivo acima do tamanho máximo aceito

	// Servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrRouteNotFound     = "SRV_005" // Rota não encontrada
	ErrMethodNotAllowed  = "SRV_006" // Método HTTP não aceito pela rota
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrMalformedInput:        http.StatusUnprocessableEntity,
	ErrEmptyDataset:          http.StatusUnprocessableEntity,
	ErrDataQuality:           http.StatusUnprocessableEntity,
	ErrInvalidUserInput:      http.StatusBadRequest,
	ErrNoAnalysesLeft:        http.StatusForbidden,
	ErrAnalysisNotFound:      http.StatusNotFound,
	ErrReportNotReady:        http.StatusConflict,
	ErrFileTooLarge:          http.StatusRequestEntityTooLarge,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
}

// APIError é o corpo de toda resposta de erro da API
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError responde a requisição com o status HTTP do código e o corpo
// padronizado. Código desconhecido sai como erro interno.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, ok := httpStatusMap[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}
