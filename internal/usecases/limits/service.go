package limits

import (
	"fmt"

	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

type LimitsService interface {
	GetUserLimits(userID int) (*domain.UserLimits, error)
	SaveUserLimits(userID int, limits *domain.UserLimits) (*domain.UserLimits, error)
	ConsumeAnalysis(userID int) error
	GrantAnalyses(userID int, amount int) error
}

type Service struct {
	limitsRepository repository.LimitsRepository
}

func NewService(limitsRepository repository.LimitsRepository) LimitsService {
	return &Service{
		limitsRepository: limitsRepository,
	}
}

// GetUserLimits busca o perfil de limites do usuário. Usuários sem perfil
// salvo recebem um perfil zerado: os parâmetros são preenchidos no primeiro
// PUT e o saldo de análises entra apenas por concessão.
func (s *Service) GetUserLimits(userID int) (*domain.UserLimits, error) {
	userLimits, err := s.limitsRepository.GetUserLimits(userID)
	if err != nil {
		return nil, NewLimitsErrorWithUser(ErrFetchLimits, apiErrors.ErrDatabaseOperation, userID, "Falha ao buscar limites no banco de dados")
	}

	if userLimits == nil {
		return &domain.UserLimits{UserID: userID}, nil
	}

	return userLimits, nil
}

// SaveUserLimits valida e persiste os parâmetros padrão de análise do usuário.
// O saldo de análises não é alterado por aqui.
func (s *Service) SaveUserLimits(userID int, limits *domain.UserLimits) (*domain.UserLimits, error) {
	if limits == nil {
		return nil, NewLimitsErrorWithUser(ErrInvalidLimits, apiErrors.ErrInvalidUserInput, userID, "Perfil de limites não informado")
	}

	if err := validateInputs(limits.Inputs()); err != nil {
		return nil, err
	}

	limits.UserID = userID

	if err := s.limitsRepository.SaveUserLimits(limits); err != nil {
		return nil, NewLimitsErrorWithUser(ErrSaveLimits, apiErrors.ErrDatabaseOperation, userID, "Falha ao salvar limites no banco de dados")
	}

	return limits, nil
}

// ConsumeAnalysis debita uma análise do saldo do usuário. O decremento é
// atômico no banco: duas requisições concorrentes nunca debitam o mesmo saldo
// duas vezes.
func (s *Service) ConsumeAnalysis(userID int) error {
	consumed, err := s.limitsRepository.DecrementAnalysesLeft(userID)
	if err != nil {
		return NewLimitsErrorWithUser(ErrFetchLimits, apiErrors.ErrDatabaseOperation, userID, "Falha ao debitar análise do saldo")
	}

	if !consumed {
		return NewLimitsErrorWithUser(ErrNoAnalysesLeft, apiErrors.ErrNoAnalysesLeft, userID, "Saldo de análises esgotado")
	}

	return nil
}

// GrantAnalyses credita análises ao saldo do usuário
func (s *Service) GrantAnalyses(userID int, amount int) error {
	if amount <= 0 {
		return NewLimitsErrorWithUser(ErrInvalidLimits, apiErrors.ErrInvalidUserInput, userID, "Quantidade de análises deve ser positiva")
	}

	if err := s.limitsRepository.GrantAnalyses(userID, amount); err != nil {
		return NewLimitsErrorWithUser(ErrSaveLimits, apiErrors.ErrDatabaseOperation, userID, "Falha ao creditar análises")
	}

	return nil
}

// validateInputs aplica as mesmas regras de validação usadas na análise:
// portfólio e cota positivos, uploads não negativos e taxa de aceite entre 0 e 100.
func validateInputs(inputs domain.UserInputs) error {
	if inputs.PortfolioSize < 1 {
		return NewLimitsError(ErrInvalidLimits, apiErrors.ErrInvalidUserInput, "Tamanho do portfólio deve ser maior que zero")
	}

	if inputs.UploadQuota < 1 {
		return NewLimitsError(ErrInvalidLimits, apiErrors.ErrInvalidUserInput, "Cota de upload deve ser maior que zero")
	}

	if inputs.MonthlyUploads < 0 {
		return NewLimitsError(ErrInvalidLimits, apiErrors.ErrInvalidUserInput, "Uploads do mês não pode ser negativo")
	}

	if inputs.AcceptanceRatePercent < 0 || inputs.AcceptanceRatePercent > 100 {
		return NewLimitsError(ErrInvalidLimits, apiErrors.ErrInvalidUserInput,
			fmt.Sprintf("Taxa de aceite deve estar entre 0 e 100, recebido %.2f", inputs.AcceptanceRatePercent))
	}

	return nil
}
