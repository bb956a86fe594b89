package submitting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de submissão de análises
var (
	// Erros de validação do upload
	ErrMissingFile            = errors.New("missing csv file")
	ErrFileTooLarge           = errors.New("file exceeds the upload size limit")
	ErrUnsupportedContentType = errors.New("unsupported content type selector")
	ErrNotTextPayload         = errors.New("payload is not a text file")

	// Erros de recuperação
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrReportNotReady   = errors.New("report not ready")
	ErrAnalysisFailed   = errors.New("analysis failed")
)

// SubmissionError é um erro com contexto adicional para submissões
type SubmissionError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	AnalysisID string // ID da análise envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error anexa o detalhe à mensagem do sentinela
func (e *SubmissionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError cria um novo SubmissionError
func NewSubmissionError(err error, code string, details string) *SubmissionError {
	return &SubmissionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewSubmissionErrorWithID cria um novo SubmissionError com ID da análise
func NewSubmissionErrorWithID(err error, code string, analysisID string, details string) *SubmissionError {
	return &SubmissionError{
		Err:        err,
		Code:       code,
		AnalysisID: analysisID,
		Details:    details,
	}
}
