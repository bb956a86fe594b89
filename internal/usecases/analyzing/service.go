package analyzing

import (
	"time"

	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

// Layouts de data aceitos nos exports dos marketplaces, todos interpretados em UTC
var defaultDatetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EngineConfig reúne os parâmetros do motor de análise. É sempre injetada no
// construtor; o motor não lê estado global, o que permite testar com limiares
// alternativos.
type EngineConfig struct {
	BrokenRowsThresholdPct float64
	NewWorksMonths         int
	DatetimeLayouts        []string
}

// DefaultEngineConfig retorna a configuração padrão do motor
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		BrokenRowsThresholdPct: 20.0,
		NewWorksMonths:         3,
		DatetimeLayouts:        defaultDatetimeLayouts,
	}
}

// EngineConfigFromApp monta a configuração do motor a partir da configuração da aplicação
func EngineConfigFromApp(cfg *config.Config) EngineConfig {
	engine := DefaultEngineConfig()

	if cfg.Engine.BrokenRowsThresholdPct > 0 {
		engine.BrokenRowsThresholdPct = cfg.Engine.BrokenRowsThresholdPct
	}
	if cfg.Engine.NewWorksMonths > 0 {
		engine.NewWorksMonths = cfg.Engine.NewWorksMonths
	}
	if len(cfg.Engine.DatetimeLayouts) > 0 {
		engine.DatetimeLayouts = cfg.Engine.DatetimeLayouts
	}

	return engine
}

// Result reúne tudo que o fluxo externo persiste após uma execução bem-sucedida
type Result struct {
	Kpi        domain.KpiResult
	Assets     []domain.AssetAggregate
	RowsTotal  int
	RowsBroken int
}

// Analyzer executa a análise completa de um upload de vendas. Cada execução é
// uma função pura de (bytes do arquivo, parâmetros do usuário): sem estado
// entre chamadas, seguro para invocações concorrentes.
type Analyzer interface {
	Run(payload []byte, inputs domain.UserInputs) (*Result, error)
	ValidateInputs(inputs domain.UserInputs) error
}

type Service struct {
	cfg EngineConfig
}

func NewService(cfg EngineConfig) Analyzer {
	if len(cfg.DatetimeLayouts) == 0 {
		cfg.DatetimeLayouts = defaultDatetimeLayouts
	}

	return &Service{cfg: cfg}
}

// Run processa um arquivo de vendas do início ao fim: leitura, normalização,
// barreira de qualidade e cálculo de KPIs. Erros são terminais; nunca há
// reprocessamento parcial com só as linhas boas de um arquivo reprovado.
func (s *Service) Run(payload []byte, inputs domain.UserInputs) (*Result, error) {
	if err := s.ValidateInputs(inputs); err != nil {
		return nil, err
	}

	raw, err := s.readRows(payload)
	if err != nil {
		return nil, err
	}

	clean := s.normalizeRows(raw)

	valid, brokenPercent, err := s.applyQualityGate(clean)
	if err != nil {
		return nil, err
	}

	kpi := s.calculateKpis(valid, inputs, brokenPercent)

	return &Result{
		Kpi:        kpi,
		Assets:     aggregateAssets(valid),
		RowsTotal:  len(clean),
		RowsBroken: len(clean) - len(valid),
	}, nil
}

// ValidateInputs rejeita parâmetros fora do intervalo aceito antes de qualquer
// processamento de linhas
func (s *Service) ValidateInputs(inputs domain.UserInputs) error {
	if inputs.PortfolioSize <= 0 {
		return NewAnalysisError(ErrInvalidUserInput, apiErrors.ErrInvalidUserInput, "portfolio_size deve ser maior que zero")
	}

	if inputs.UploadQuota <= 0 {
		return NewAnalysisError(ErrInvalidUserInput, apiErrors.ErrInvalidUserInput, "upload_quota deve ser maior que zero")
	}

	if inputs.MonthlyUploads < 0 {
		return NewAnalysisError(ErrInvalidUserInput, apiErrors.ErrInvalidUserInput, "monthly_uploads não pode ser negativo")
	}

	if inputs.AcceptanceRatePercent < 0 || inputs.AcceptanceRatePercent > 100 {
		return NewAnalysisError(ErrInvalidUserInput, apiErrors.ErrInvalidUserInput, "acceptance_rate_percent deve estar entre 0 e 100")
	}

	return nil
}
