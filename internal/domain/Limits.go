package domain

import "time"

// UserInputs são os quatro parâmetros informados pelo usuário para uma análise.
// Imutáveis durante a execução; a taxa de aceite é carregada para contexto do
// relatório mas não entra em nenhuma fórmula.
type UserInputs struct {
	PortfolioSize         int     `json:"portfolio_size"`
	UploadQuota           int     `json:"upload_quota"`
	MonthlyUploads        int     `json:"monthly_uploads"`
	AcceptanceRatePercent float64 `json:"acceptance_rate_percent"`
}

// UserLimits é o perfil persistido do contribuidor: os parâmetros padrão das
// análises e o saldo de análises disponíveis
type UserLimits struct {
	UserID                int       `json:"user_id"`
	PortfolioSize         int       `json:"portfolio_size"`
	UploadQuota           int       `json:"upload_quota"`
	MonthlyUploads        int       `json:"monthly_uploads"`
	AcceptanceRatePercent float64   `json:"acceptance_rate_percent"`
	AnalysesLeft          int       `json:"analyses_left"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Inputs monta os parâmetros de análise a partir do perfil armazenado
func (l *UserLimits) Inputs() UserInputs {
	return UserInputs{
		PortfolioSize:         l.PortfolioSize,
		UploadQuota:           l.UploadQuota,
		MonthlyUploads:        l.MonthlyUploads,
		AcceptanceRatePercent: l.AcceptanceRatePercent,
	}
}
