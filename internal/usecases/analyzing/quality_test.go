package analyzing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

func TestService_applyQualityGate(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	tests := []struct {
		name            string
		rows            []domain.CleanSaleRow
		expectedErr     error
		expectedValid   int
		expectedPercent float64
	}{
		{
			name:            "Arquivo sem nenhuma linha quebrada passa com zero por cento",
			rows:            buildRows(10, 0),
			expectedValid:   10,
			expectedPercent: 0,
		},
		{
			name:            "Uma linha quebrada em dez passa com dez por cento",
			rows:            buildRows(9, 1),
			expectedValid:   9,
			expectedPercent: 10,
		},
		{
			name:            "Exatamente no limiar de vinte por cento passa",
			rows:            buildRows(4, 1),
			expectedValid:   4,
			expectedPercent: 20,
		},
		{
			name:            "Limiar exato também passa em arquivos grandes",
			rows:            buildRows(8000, 2000),
			expectedValid:   8000,
			expectedPercent: 20,
		},
		{
			name:        "Logo acima do limiar reprova",
			rows:        buildRows(7999, 2001),
			expectedErr: ErrDataQuality,
		},
		{
			name:        "Arquivo majoritariamente quebrado reprova",
			rows:        buildRows(3, 7),
			expectedErr: ErrDataQuality,
		},
		{
			name:        "Sem linhas nenhuma é conjunto vazio, não qualidade",
			rows:        nil,
			expectedErr: ErrEmptyDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, percent, err := service.applyQualityGate(tt.rows)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
				return
			}

			assert.NoError(t, err)
			assert.Len(t, valid, tt.expectedValid)
			assert.Equal(t, tt.expectedPercent, percent)

			for _, row := range valid {
				assert.False(t, row.IsBroken())
			}
		})
	}
}

func TestService_applyQualityGate_ContagensNoErro(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	_, _, err := service.applyQualityGate(buildRows(3, 7))

	var analysisErr *AnalysisError
	assert.True(t, errors.As(err, &analysisErr))
	assert.Equal(t, 10, analysisErr.RowsTotal)
	assert.Equal(t, 7, analysisErr.RowsBroken)
	assert.Equal(t, 70.0, analysisErr.BrokenRowsPercent)
	assert.Contains(t, analysisErr.Error(), "7 de 10")
}

func TestService_applyQualityGate_LimiarConfiguravel(t *testing.T) {
	// Limiar de 50%: o mesmo arquivo que reprova no padrão passa aqui
	service := &Service{cfg: EngineConfig{
		BrokenRowsThresholdPct: 50.0,
		NewWorksMonths:         3,
		DatetimeLayouts:        defaultDatetimeLayouts,
	}}

	valid, percent, err := service.applyQualityGate(buildRows(6, 4))

	assert.NoError(t, err)
	assert.Len(t, valid, 6)
	assert.Equal(t, 40.0, percent)
}

// buildRows monta um conjunto com a quantidade pedida de linhas boas e quebradas
func buildRows(goodCount, brokenCount int) []domain.CleanSaleRow {
	rows := make([]domain.CleanSaleRow, 0, goodCount+brokenCount)

	saleAt := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)
	assetID := "98765"
	royalty := 0.99

	for i := 0; i < goodCount; i++ {
		rows = append(rows, domain.CleanSaleRow{
			SaleDatetime: &saleAt,
			AssetID:      &assetID,
			LicenseKind:  domain.LicenseSubscription,
			RoyaltyUSD:   &royalty,
			MediaType:    "photo",
		})
	}

	for i := 0; i < brokenCount; i++ {
		rows = append(rows, domain.CleanSaleRow{
			LicenseKind: domain.LicenseSubscription,
			MediaType:   "photo",
		})
	}

	return rows
}
