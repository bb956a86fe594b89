package analyzing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

// Erros terminais do motor de análise. Nenhum deles é recuperável dentro de uma
// execução: não há retry nem processamento parcial. O fluxo chamador decide a
// mensagem ao usuário e se permite um novo upload.
var (
	// Erros de entrada
	ErrMalformedInput   = errors.New("arquivo não pôde ser lido como dados tabulares")
	ErrEmptyDataset     = errors.New("arquivo sem linhas de venda")
	ErrInvalidUserInput = errors.New("parâmetros do usuário inválidos")

	// Erro da barreira de qualidade
	ErrDataQuality = errors.New("percentual de linhas quebradas acima do limite aceito")

	// Erros de configuração do motor
	ErrInvalidEngineConfig = errors.New("configuração do motor inválida")
)

// AnalysisError é um erro do motor com contexto adicional para o relatório ao usuário
type AnalysisError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais

	// Contexto da barreira de qualidade, preenchido apenas em ErrDataQuality
	RowsTotal         int
	RowsBroken        int
	BrokenRowsPercent float64
}

// Error devolve a mensagem do sentinela com o detalhe, quando houver
func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap expõe o sentinela para errors.Is e errors.As
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsInputError verifica se o erro foi causado pelo arquivo ou pelos parâmetros
// enviados, e não por falha interna
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrInvalidUserInput) ||
		errors.Is(err, ErrDataQuality)
}

// NewAnalysisError cria um novo erro do motor de análise
func NewAnalysisError(baseErr error, code string, details string) *AnalysisError {
	return &AnalysisError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewDataQualityError cria o erro da barreira de qualidade carregando as
// contagens que o usuário precisa para entender a rejeição
func NewDataQualityError(total, broken int, percent float64) *AnalysisError {
	return &AnalysisError{
		Err:               ErrDataQuality,
		Code:              apiErrors.ErrDataQuality,
		Details:           fmt.Sprintf("%d de %d linhas quebradas (%.2f%%)", broken, total, percent),
		RowsTotal:         total,
		RowsBroken:        broken,
		BrokenRowsPercent: percent,
	}
}
