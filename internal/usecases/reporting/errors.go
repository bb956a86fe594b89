package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para a montagem de relatórios
var (
	// Erros de configuração
	ErrInvalidTierBounds = errors.New("cortes de faixa inválidos")
	ErrIncompleteCatalog = errors.New("catálogo de textos incompleto")

	// Erros de montagem
	ErrMissingKpi = errors.New("resultado de KPIs ausente")
)

// ReportError é um erro da montagem de relatório com contexto adicional
type ReportError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap permite o casamento com errors.Is nos chamadores
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Details: details,
	}
}
