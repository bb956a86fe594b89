package reporting

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

func TestService_Assemble(t *testing.T) {
	service, err := NewService(DefaultAssemblerConfig())
	assert.NoError(t, err)

	kpi := domain.KpiResult{
		SalesCount:              120,
		TotalRevenueUSD:         250.40,
		AvgRevenuePerSale:       2.09,
		PortfolioSoldPercent:    2.5,
		NewWorksSalesPercent:    15.0,
		UploadLimitUsagePercent: 85.0,
		PeriodMonth:             time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		PeriodHumanLabel:        "Апрель 2025",
		BrokenRowsPercent:       5.0,
	}

	inputs := domain.UserInputs{
		PortfolioSize:         4800,
		UploadQuota:           100,
		MonthlyUploads:        85,
		AcceptanceRatePercent: 62,
	}

	sections, err := service.Assemble(kpi, inputs)

	assert.NoError(t, err)
	assert.Len(t, sections.Blocks, 6)

	// Ordem fixa dos blocos para envio sequencial
	assert.Equal(t, domain.ReportBlockSummary, sections.Blocks[0].Name)
	assert.Equal(t, domain.ReportBlockExplanation, sections.Blocks[1].Name)
	assert.Equal(t, domain.ReportBlockSoldPortfolio, sections.Blocks[2].Name)
	assert.Equal(t, domain.ReportBlockNewWorks, sections.Blocks[3].Name)
	assert.Equal(t, domain.ReportBlockUploadLimit, sections.Blocks[4].Name)
	assert.Equal(t, domain.ReportBlockClosing, sections.Blocks[5].Name)

	// Resumo renderizado com os valores calculados
	summary := sections.Blocks[0].Text
	assert.Contains(t, summary, "Апрель 2025")
	assert.Contains(t, summary, "120")
	assert.Contains(t, summary, "250.40")
	assert.Contains(t, summary, "62.00")
	assert.NotContains(t, summary, "{period}")
	assert.NotContains(t, summary, "{sales_count}")

	// Cada seção de faixa carrega o texto da faixa correta
	catalog := DefaultCatalog()
	assert.Equal(t, catalog.SoldPortfolio[TierSteady], sections.Blocks[2].Text)   // 2.5% em [2,3)
	assert.Equal(t, catalog.NewWorks[TierRising], sections.Blocks[3].Text)        // 15% em [10,20)
	assert.Equal(t, catalog.UploadUsage[TierAdvanced], sections.Blocks[4].Text)   // 85% em [80,95)
	assert.Equal(t, catalog.ClosingMessage, sections.Blocks[5].Text)

	// Bloco de arquivamento concatena os mesmos textos na mesma ordem
	for _, block := range sections.Blocks {
		assert.Contains(t, sections.Archival, block.Text)
	}
	assert.True(t, strings.Index(sections.Archival, sections.Blocks[0].Text) <
		strings.Index(sections.Archival, sections.Blocks[5].Text))
}

func TestService_Assemble_MesmaEntradaMesmoRelatorio(t *testing.T) {
	service, err := NewService(DefaultAssemblerConfig())
	assert.NoError(t, err)

	kpi := domain.KpiResult{
		SalesCount:              10,
		TotalRevenueUSD:         25.0,
		AvgRevenuePerSale:       2.5,
		PortfolioSoldPercent:    1.0,
		NewWorksSalesPercent:    100.0,
		UploadLimitUsagePercent: 10.0,
		PeriodHumanLabel:        "Март 2025",
	}
	inputs := domain.UserInputs{PortfolioSize: 1000, UploadQuota: 100, MonthlyUploads: 10}

	first, err := service.Assemble(kpi, inputs)
	assert.NoError(t, err)
	second, err := service.Assemble(kpi, inputs)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_Assemble_SemResultado(t *testing.T) {
	service, err := NewService(DefaultAssemblerConfig())
	assert.NoError(t, err)

	sections, err := service.Assemble(domain.KpiResult{}, domain.UserInputs{})

	assert.Nil(t, sections)
	assert.True(t, errors.Is(err, ErrMissingKpi))
}

func TestService_Tiers(t *testing.T) {
	service, err := NewService(DefaultAssemblerConfig())
	assert.NoError(t, err)

	kpi := domain.KpiResult{
		PortfolioSoldPercent:    0.5,
		NewWorksSalesPercent:    90.0,
		UploadLimitUsagePercent: 60.0,
	}

	tiers := service.Tiers(kpi)

	assert.Equal(t, TierNewbie, tiers[MetricSoldPortfolio])
	assert.Equal(t, TierTop, tiers[MetricNewWorks])
	assert.Equal(t, TierSteady, tiers[MetricUploadUsage])
}

func TestNewService_ConfiguracaoInvalida(t *testing.T) {
	t.Run("Cortes fora de ordem são rejeitados", func(t *testing.T) {
		cfg := DefaultAssemblerConfig()
		cfg.NewWorksBounds = TierBounds{10, 5, 30, 85}

		service, err := NewService(cfg)

		assert.Nil(t, service)
		assert.True(t, errors.Is(err, ErrInvalidTierBounds))
	})

	t.Run("Catálogo sem texto de faixa é rejeitado", func(t *testing.T) {
		cfg := DefaultAssemblerConfig()
		cfg.Catalog.UploadUsage[TierTop] = ""

		service, err := NewService(cfg)

		assert.Nil(t, service)
		assert.True(t, errors.Is(err, ErrIncompleteCatalog))
	})

	t.Run("Catálogo sem resumo é rejeitado", func(t *testing.T) {
		cfg := DefaultAssemblerConfig()
		cfg.Catalog.SummaryTemplate = ""

		service, err := NewService(cfg)

		assert.Nil(t, service)
		assert.True(t, errors.Is(err, ErrIncompleteCatalog))
	})
}

func TestAssemblerConfigFromApp(t *testing.T) {
	tests := []struct {
		name     string
		engine   config.Engine
		expected AssemblerConfig
		hasError bool
	}{
		{
			name:   "Sem configuração usa os padrões",
			engine: config.Engine{},
			expected: AssemblerConfig{
				PortfolioBounds: TierBounds{1, 2, 3, 5},
				NewWorksBounds:  TierBounds{10, 20, 30, 85},
				UploadBounds:    TierBounds{30, 60, 80, 95},
			},
			hasError: false,
		},
		{
			name: "Cortes customizados substituem os padrões",
			engine: config.Engine{
				PortfolioTierBounds: []string{"0.5", "1", "2", "4"},
			},
			expected: AssemblerConfig{
				PortfolioBounds: TierBounds{0.5, 1, 2, 4},
				NewWorksBounds:  TierBounds{10, 20, 30, 85},
				UploadBounds:    TierBounds{30, 60, 80, 95},
			},
			hasError: false,
		},
		{
			name: "Corte não numérico é rejeitado",
			engine: config.Engine{
				UploadUsageTierBounds: []string{"30", "sessenta", "80", "95"},
			},
			hasError: true,
		},
		{
			name: "Quantidade errada de cortes é rejeitada",
			engine: config.Engine{
				NewWorksTierBounds: []string{"10", "20", "30"},
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Engine: tt.engine}

			assembler, err := AssemblerConfigFromApp(cfg)

			if tt.hasError {
				assert.True(t, errors.Is(err, ErrInvalidTierBounds))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected.PortfolioBounds, assembler.PortfolioBounds)
			assert.Equal(t, tt.expected.NewWorksBounds, assembler.NewWorksBounds)
			assert.Equal(t, tt.expected.UploadBounds, assembler.UploadBounds)
		})
	}
}
