package analyzing

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

const salesHeader = "sale_datetime_utc,asset_id,asset_title,license_plan,royalty_usd,media_type"

func TestService_Run(t *testing.T) {
	service := NewService(DefaultEngineConfig())

	inputs := domain.UserInputs{
		PortfolioSize:         100,
		UploadQuota:           60,
		MonthlyUploads:        30,
		AcceptanceRatePercent: 75,
	}

	t.Run("Arquivo limpo produz todos os KPIs", func(t *testing.T) {
		payload := csvFile(
			"2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo",
			"2025-04-05 11:00:00,1002,Mountain,subscription,2.00,photo",
			"2025-04-10 12:00:00,1001,Sunset,subscription,3.00,photo",
			"2025-04-20 13:00:00,1003,River,custom,4.00,video",
		)

		result, err := service.Run(payload, inputs)

		assert.NoError(t, err)
		assert.Equal(t, 4, result.RowsTotal)
		assert.Equal(t, 0, result.RowsBroken)
		assert.Equal(t, 4, result.Kpi.SalesCount)
		assert.Equal(t, 10.0, result.Kpi.TotalRevenueUSD)
		assert.Equal(t, 2.50, result.Kpi.AvgRevenuePerSale)
		assert.Equal(t, 4.0, result.Kpi.PortfolioSoldPercent)
		assert.Equal(t, 100.0, result.Kpi.NewWorksSalesPercent)
		assert.Equal(t, 50.0, result.Kpi.UploadLimitUsagePercent)
		assert.Equal(t, 0.0, result.Kpi.BrokenRowsPercent)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), result.Kpi.PeriodMonth)
		assert.Equal(t, "Апрель 2025", result.Kpi.PeriodHumanLabel)
	})

	t.Run("Linha quebrada dentro do limiar não impede a análise", func(t *testing.T) {
		lines := make([]string, 0, 10)
		for i := 0; i < 9; i++ {
			lines = append(lines, fmt.Sprintf("2025-04-%02d 10:00:00,10%02d,Asset,custom,1.00,photo", i+1, i))
		}
		lines = append(lines, "quando foi isso?,2099,Broken,custom,n/a,photo")

		result, err := service.Run(csvFile(lines...), inputs)

		assert.NoError(t, err)
		assert.Equal(t, 10, result.RowsTotal)
		assert.Equal(t, 1, result.RowsBroken)
		assert.Equal(t, 9, result.Kpi.SalesCount)
		assert.Equal(t, 10.0, result.Kpi.BrokenRowsPercent)
	})

	t.Run("Acima do limiar de qualidade a análise é abortada", func(t *testing.T) {
		payload := csvFile(
			"2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo",
			",,,custom,,photo",
			",,,custom,,photo",
			",,,custom,,photo",
		)

		result, err := service.Run(payload, inputs)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrDataQuality))
		assert.True(t, IsInputError(err))

		var analysisErr *AnalysisError
		assert.True(t, errors.As(err, &analysisErr))
		assert.Equal(t, 4, analysisErr.RowsTotal)
		assert.Equal(t, 3, analysisErr.RowsBroken)
		assert.Equal(t, 75.0, analysisErr.BrokenRowsPercent)
	})

	t.Run("Cabeçalho aceito em qualquer caixa", func(t *testing.T) {
		payload := []byte(strings.Join([]string{
			"Sale_Datetime_UTC,ASSET_ID,Asset_Title,License_Plan,Royalty_USD,Media_Type",
			"2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo",
		}, "\n"))

		result, err := service.Run(payload, inputs)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Kpi.SalesCount)
	})

	t.Run("Valores com símbolo de moeda e vírgula decimal são aceitos", func(t *testing.T) {
		payload := csvFile(
			`2025-04-01 10:00:00,1001,Sunset,custom,"$1,234.56",photo`,
			`2025-04-02 10:00:00,1002,Mountain,custom,"765,44",photo`,
		)

		result, err := service.Run(payload, inputs)

		assert.NoError(t, err)
		assert.Equal(t, 2000.0, result.Kpi.TotalRevenueUSD)
	})

	t.Run("Arquivo sem linhas de venda é conjunto vazio", func(t *testing.T) {
		result, err := service.Run([]byte(salesHeader+"\n"), inputs)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrEmptyDataset))
	})

	t.Run("Cabeçalho sem colunas reconhecidas é arquivo malformado", func(t *testing.T) {
		payload := []byte("foo,bar,baz\n1,2,3\n")

		result, err := service.Run(payload, inputs)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrMalformedInput))
	})

	t.Run("Arquivo totalmente vazio é malformado", func(t *testing.T) {
		result, err := service.Run(nil, inputs)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrMalformedInput))
	})

	t.Run("Parâmetros inválidos barram antes de ler o arquivo", func(t *testing.T) {
		badInputs := domain.UserInputs{PortfolioSize: 0, UploadQuota: 60}

		result, err := service.Run(csvFile("2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo"), badInputs)

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrInvalidUserInput))
	})

	t.Run("Agregados por asset ordenados por receita", func(t *testing.T) {
		payload := csvFile(
			"2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo",
			"2025-04-05 11:00:00,1002,Mountain,subscription,5.00,photo",
			"2025-04-10 12:00:00,1001,Sunset,subscription,2.00,photo",
		)

		result, err := service.Run(payload, inputs)

		assert.NoError(t, err)
		assert.Len(t, result.Assets, 2)

		assert.Equal(t, "1002", result.Assets[0].AssetID)
		assert.Equal(t, 5.0, result.Assets[0].RevenueUSD)
		assert.Equal(t, 1, result.Assets[0].SalesCount)

		assert.Equal(t, "1001", result.Assets[1].AssetID)
		assert.Equal(t, 3.0, result.Assets[1].RevenueUSD)
		assert.Equal(t, 2, result.Assets[1].SalesCount)
		assert.Equal(t, "Sunset", result.Assets[1].AssetTitle)
		assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), result.Assets[1].FirstSaleAt)
	})
}

func TestService_ValidateInputs(t *testing.T) {
	service := NewService(DefaultEngineConfig())

	tests := []struct {
		name     string
		inputs   domain.UserInputs
		hasError bool
	}{
		{
			name: "Parâmetros válidos passam",
			inputs: domain.UserInputs{
				PortfolioSize:         100,
				UploadQuota:           60,
				MonthlyUploads:        30,
				AcceptanceRatePercent: 75,
			},
			hasError: false,
		},
		{
			name: "Uploads do mês pode ser zero",
			inputs: domain.UserInputs{
				PortfolioSize:  100,
				UploadQuota:    60,
				MonthlyUploads: 0,
			},
			hasError: false,
		},
		{
			name: "Taxa de aceite nos extremos é aceita",
			inputs: domain.UserInputs{
				PortfolioSize:         100,
				UploadQuota:           60,
				AcceptanceRatePercent: 100,
			},
			hasError: false,
		},
		{
			name:     "Portfólio zerado é rejeitado",
			inputs:   domain.UserInputs{PortfolioSize: 0, UploadQuota: 60},
			hasError: true,
		},
		{
			name:     "Portfólio negativo é rejeitado",
			inputs:   domain.UserInputs{PortfolioSize: -5, UploadQuota: 60},
			hasError: true,
		},
		{
			name:     "Cota de upload zerada é rejeitada",
			inputs:   domain.UserInputs{PortfolioSize: 100, UploadQuota: 0},
			hasError: true,
		},
		{
			name:     "Uploads do mês negativo é rejeitado",
			inputs:   domain.UserInputs{PortfolioSize: 100, UploadQuota: 60, MonthlyUploads: -1},
			hasError: true,
		},
		{
			name:     "Taxa de aceite acima de cem é rejeitada",
			inputs:   domain.UserInputs{PortfolioSize: 100, UploadQuota: 60, AcceptanceRatePercent: 101},
			hasError: true,
		},
		{
			name:     "Taxa de aceite negativa é rejeitada",
			inputs:   domain.UserInputs{PortfolioSize: 100, UploadQuota: 60, AcceptanceRatePercent: -0.5},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ValidateInputs(tt.inputs)

			if tt.hasError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidUserInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_readRows(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	t.Run("Colunas extras viram passthrough sem participar dos cálculos", func(t *testing.T) {
		payload := []byte(strings.Join([]string{
			"sale_datetime_utc,asset_id,asset_title,license_plan,royalty_usd,media_type,contributor,file_size",
			"2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo,ivan,2048",
		}, "\n"))

		rows, err := service.readRows(payload)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "1001", rows[0].AssetID)
		assert.Equal(t, "ivan", rows[0].Passthrough["contributor"])
		assert.Equal(t, "2048", rows[0].Passthrough["file_size"])
	})

	t.Run("Linha curta preenche os campos ausentes como vazios", func(t *testing.T) {
		payload := []byte(strings.Join([]string{
			salesHeader,
			"2025-04-01 10:00:00,1001",
		}, "\n"))

		rows, err := service.readRows(payload)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "1001", rows[0].AssetID)
		assert.Equal(t, "", rows[0].RoyaltyRaw)
	})

	t.Run("Colunas em ordem diferente são resolvidas pelo cabeçalho", func(t *testing.T) {
		payload := []byte(strings.Join([]string{
			"royalty_usd,asset_id,sale_datetime_utc",
			"9.99,1001,2025-04-01 10:00:00",
		}, "\n"))

		rows, err := service.readRows(payload)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "9.99", rows[0].RoyaltyRaw)
		assert.Equal(t, "1001", rows[0].AssetID)
		assert.Equal(t, "2025-04-01 10:00:00", rows[0].SaleTimestamp)
	})

	t.Run("BOM no início do cabeçalho é ignorado", func(t *testing.T) {
		payload := []byte("\uFEFF" + salesHeader + "\n2025-04-01 10:00:00,1001,Sunset,custom,1.00,photo\n")

		rows, err := service.readRows(payload)

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "2025-04-01 10:00:00", rows[0].SaleTimestamp)
	})
}

// csvFile monta um arquivo de vendas com o cabeçalho padrão e as linhas dadas
func csvFile(lines ...string) []byte {
	return []byte(salesHeader + "\n" + strings.Join(lines, "\n") + "\n")
}
