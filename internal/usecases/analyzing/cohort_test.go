package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

func TestService_newWorksSalesPercent(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	tests := []struct {
		name     string
		rows     []domain.CleanSaleRow
		expected float64
	}{
		{
			name: "Arquivo de um único mês tem todos os assets como novos",
			rows: []domain.CleanSaleRow{
				makeSale("2025-04-01 08:00:00", "1001", 0.99),
				makeSale("2025-04-15 12:00:00", "1002", 1.50),
				makeSale("2025-04-28 20:00:00", "1001", 0.99),
			},
			expected: 100.0,
		},
		{
			name: "Asset com primeira venda fora da janela é antigo",
			rows: []domain.CleanSaleRow{
				// Asset 1001: primeira venda em 10 de janeiro, antes do corte de 15 de janeiro
				makeSale("2025-01-10 09:00:00", "1001", 0.99),
				makeSale("2025-03-01 10:00:00", "1001", 0.99),
				makeSale("2025-04-15 12:00:00", "1001", 0.99),
				// Asset 1002: primeira venda em fevereiro, dentro da janela
				makeSale("2025-02-20 14:00:00", "1002", 2.00),
			},
			expected: 25.0,
		},
		{
			name: "Primeira venda exatamente no corte conta como novo",
			rows: []domain.CleanSaleRow{
				makeSale("2025-04-15 12:00:00", "1001", 0.99),
				makeSale("2025-01-15 12:00:00", "1002", 1.00),
			},
			expected: 100.0,
		},
		{
			name: "Todas as vendas de assets antigos zeram o percentual",
			rows: []domain.CleanSaleRow{
				makeSale("2024-11-01 08:00:00", "1001", 0.99),
				makeSale("2025-04-15 12:00:00", "1001", 0.99),
			},
			expected: 0,
		},
		{
			name:     "Sem linhas válidas o percentual é zero",
			rows:     nil,
			expected: 0,
		},
		{
			name: "Percentual fracionário arredondado em duas casas",
			rows: []domain.CleanSaleRow{
				makeSale("2024-10-01 08:00:00", "1001", 0.99),
				makeSale("2025-04-15 12:00:00", "1001", 0.99),
				makeSale("2025-04-16 12:00:00", "1002", 1.00),
			},
			expected: 33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.newWorksSalesPercent(tt.rows))
		})
	}
}

func TestService_newWorksSalesPercent_JanelaConfiguravel(t *testing.T) {
	// Janela de um mês: só conta como novo quem apareceu no último mês de calendário
	service := &Service{cfg: EngineConfig{
		BrokenRowsThresholdPct: 20.0,
		NewWorksMonths:         1,
		DatetimeLayouts:        defaultDatetimeLayouts,
	}}

	rows := []domain.CleanSaleRow{
		// Primeira venda em 10 de março: antes do corte de 15 de março
		makeSale("2025-03-10 09:00:00", "1001", 0.99),
		makeSale("2025-04-15 12:00:00", "1001", 0.99),
		// Primeira venda em 1º de abril: dentro da janela
		makeSale("2025-04-01 10:00:00", "1002", 1.50),
	}

	assert.Equal(t, 33.33, service.newWorksSalesPercent(rows))
}
