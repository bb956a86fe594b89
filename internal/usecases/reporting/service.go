package reporting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

// AssemblerConfig reúne os cortes de faixa de cada métrica e o catálogo de
// textos. Sempre injetada no construtor, nunca lida de estado global.
type AssemblerConfig struct {
	PortfolioBounds TierBounds
	NewWorksBounds  TierBounds
	UploadBounds    TierBounds
	Catalog         TextCatalog
}

// DefaultAssemblerConfig retorna os cortes e textos padrão do produto
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		PortfolioBounds: TierBounds{1, 2, 3, 5},
		NewWorksBounds:  TierBounds{10, 20, 30, 85},
		UploadBounds:    TierBounds{30, 60, 80, 95},
		Catalog:         DefaultCatalog(),
	}
}

// AssemblerConfigFromApp monta a configuração do montador a partir da
// configuração da aplicação, mantendo os padrões onde nada foi definido
func AssemblerConfigFromApp(cfg *config.Config) (AssemblerConfig, error) {
	assembler := DefaultAssemblerConfig()

	if len(cfg.Engine.PortfolioTierBounds) > 0 {
		bounds, err := parseBounds(cfg.Engine.PortfolioTierBounds)
		if err != nil {
			return AssemblerConfig{}, NewReportError(ErrInvalidTierBounds, fmt.Sprintf("cortes de portfólio: %v", err))
		}
		assembler.PortfolioBounds = bounds
	}

	if len(cfg.Engine.NewWorksTierBounds) > 0 {
		bounds, err := parseBounds(cfg.Engine.NewWorksTierBounds)
		if err != nil {
			return AssemblerConfig{}, NewReportError(ErrInvalidTierBounds, fmt.Sprintf("cortes de novas obras: %v", err))
		}
		assembler.NewWorksBounds = bounds
	}

	if len(cfg.Engine.UploadUsageTierBounds) > 0 {
		bounds, err := parseBounds(cfg.Engine.UploadUsageTierBounds)
		if err != nil {
			return AssemblerConfig{}, NewReportError(ErrInvalidTierBounds, fmt.Sprintf("cortes de uso de cota: %v", err))
		}
		assembler.UploadBounds = bounds
	}

	return assembler, nil
}

// parseBounds converte os quatro cortes vindos da configuração como strings
func parseBounds(raw []string) (TierBounds, error) {
	var bounds TierBounds

	if len(raw) != len(bounds) {
		return bounds, fmt.Errorf("esperados %d cortes, recebidos %d", len(bounds), len(raw))
	}

	for i, cell := range raw {
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return bounds, fmt.Errorf("corte %q não é numérico", cell)
		}
		bounds[i] = value
	}

	return bounds, nil
}

// Assembler monta o relatório final a partir dos KPIs calculados. Puro e
// determinístico: os mesmos KPIs com a mesma configuração produzem sempre os
// mesmos blocos.
type Assembler interface {
	Assemble(kpi domain.KpiResult, inputs domain.UserInputs) (*domain.ReportSections, error)
	Tiers(kpi domain.KpiResult) map[Metric]Tier
}

type Service struct {
	cfg AssemblerConfig
}

// NewService valida a configuração e cria o montador de relatórios
func NewService(cfg AssemblerConfig) (Assembler, error) {
	for _, bounds := range []TierBounds{cfg.PortfolioBounds, cfg.NewWorksBounds, cfg.UploadBounds} {
		if err := bounds.Validate(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Catalog.Validate(); err != nil {
		return nil, err
	}

	return &Service{cfg: cfg}, nil
}

// Assemble produz os blocos ordenados do relatório e o bloco combinado de
// arquivamento: resumo, título da explicação, as três seções de faixa e o
// encerramento, nessa ordem.
func (s *Service) Assemble(kpi domain.KpiResult, inputs domain.UserInputs) (*domain.ReportSections, error) {
	if kpi.SalesCount == 0 && kpi.PeriodHumanLabel == "" {
		return nil, NewReportError(ErrMissingKpi, "montagem chamada sem resultado de análise")
	}

	tiers := s.Tiers(kpi)

	blocks := []domain.ReportBlock{
		{Name: domain.ReportBlockSummary, Text: s.renderSummary(kpi, inputs)},
		{Name: domain.ReportBlockExplanation, Text: s.cfg.Catalog.ExplanationTitle},
		{Name: domain.ReportBlockSoldPortfolio, Text: s.cfg.Catalog.SoldPortfolio[tiers[MetricSoldPortfolio]]},
		{Name: domain.ReportBlockNewWorks, Text: s.cfg.Catalog.NewWorks[tiers[MetricNewWorks]]},
		{Name: domain.ReportBlockUploadLimit, Text: s.cfg.Catalog.UploadUsage[tiers[MetricUploadUsage]]},
		{Name: domain.ReportBlockClosing, Text: s.cfg.Catalog.ClosingMessage},
	}

	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		texts = append(texts, block.Text)
	}

	return &domain.ReportSections{
		Blocks:   blocks,
		Archival: strings.Join(texts, "\n\n"),
	}, nil
}

// Tiers classifica os três percentuais nas suas faixas
func (s *Service) Tiers(kpi domain.KpiResult) map[Metric]Tier {
	return map[Metric]Tier{
		MetricSoldPortfolio: s.cfg.PortfolioBounds.Classify(kpi.PortfolioSoldPercent),
		MetricNewWorks:      s.cfg.NewWorksBounds.Classify(kpi.NewWorksSalesPercent),
		MetricUploadUsage:   s.cfg.UploadBounds.Classify(kpi.UploadLimitUsagePercent),
	}
}

// renderSummary preenche o template do resumo com os valores calculados
func (s *Service) renderSummary(kpi domain.KpiResult, inputs domain.UserInputs) string {
	replacer := strings.NewReplacer(
		"{period}", kpi.PeriodHumanLabel,
		"{sales_count}", strconv.Itoa(kpi.SalesCount),
		"{total_revenue}", formatAmount(kpi.TotalRevenueUSD),
		"{avg_revenue}", formatAmount(kpi.AvgRevenuePerSale),
		"{portfolio_sold}", formatAmount(kpi.PortfolioSoldPercent),
		"{new_works}", formatAmount(kpi.NewWorksSalesPercent),
		"{acceptance_rate}", formatAmount(inputs.AcceptanceRatePercent),
		"{upload_usage}", formatAmount(kpi.UploadLimitUsagePercent),
		"{broken_rows}", formatAmount(kpi.BrokenRowsPercent),
	)

	return replacer.Replace(s.cfg.Catalog.SummaryTemplate)
}

// formatAmount exibe valores monetários e percentuais sempre com duas casas
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
