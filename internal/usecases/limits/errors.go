package limits

import (
	"errors"
	"fmt"
)

// Erros do ciclo de vida do perfil de limites
var (
	// Validação do perfil
	ErrInvalidLimits = errors.New("invalid limits profile")

	// Saldo de análises
	ErrNoAnalysesLeft = errors.New("no analyses left")

	// Persistência
	ErrFetchLimits = errors.New("error fetching limits from database")
	ErrSaveLimits  = errors.New("error saving limits to database")
)

// LimitsError é um erro com contexto adicional para limites
type LimitsError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	UserID  int    // ID do usuário envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *LimitsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *LimitsError) Unwrap() error {
	return e.Err
}

// NewLimitsError cria um novo LimitsError
func NewLimitsError(err error, code string, details string) *LimitsError {
	return &LimitsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewLimitsErrorWithUser cria um novo LimitsError com ID do usuário
func NewLimitsErrorWithUser(err error, code string, userID int, details string) *LimitsError {
	return &LimitsError{
		Err:     err,
		Code:    code,
		UserID:  userID,
		Details: details,
	}
}
