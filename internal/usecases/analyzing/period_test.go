package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name          string
		rows          []domain.CleanSaleRow
		expectedMonth time.Time
		expectedLabel string
	}{
		{
			name: "Arquivo de um único mês",
			rows: []domain.CleanSaleRow{
				makeSale("2025-03-05 10:00:00", "1001", 0.99),
				makeSale("2025-03-28 22:15:00", "1002", 1.50),
			},
			expectedMonth: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedLabel: "Март 2025",
		},
		{
			name: "Arquivo atravessando dois meses fica com o mais antigo",
			rows: []domain.CleanSaleRow{
				makeSale("2025-04-02 08:00:00", "1001", 0.99),
				makeSale("2025-03-31 23:59:59", "1002", 1.50),
				makeSale("2025-04-20 12:00:00", "1003", 2.00),
			},
			expectedMonth: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedLabel: "Март 2025",
		},
		{
			name: "Virada de ano resolve para dezembro do ano anterior",
			rows: []domain.CleanSaleRow{
				makeSale("2025-01-01 00:00:01", "1001", 0.99),
				makeSale("2024-12-31 23:00:00", "1002", 1.50),
			},
			expectedMonth: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			expectedLabel: "Декабрь 2024",
		},
		{
			name:          "Sem linhas válidas não há período",
			rows:          nil,
			expectedMonth: time.Time{},
			expectedLabel: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, label := resolvePeriod(tt.rows)

			assert.Equal(t, tt.expectedMonth, month)
			assert.Equal(t, tt.expectedLabel, label)
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		name     string
		month    time.Time
		expected string
	}{
		{
			name:     "Janeiro",
			month:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "Январь 2025",
		},
		{
			name:     "Junho",
			month:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			expected: "Июнь 2024",
		},
		{
			name:     "Dezembro",
			month:    time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			expected: "Декабрь 2023",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, periodLabel(tt.month))
		})
	}
}
