package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

func TestService_calculateKpis(t *testing.T) {
	service := &Service{cfg: DefaultEngineConfig()}

	t.Run("Fórmulas básicas com cem vendas iguais", func(t *testing.T) {
		rows := make([]domain.CleanSaleRow, 0, 100)
		for i := 0; i < 100; i++ {
			rows = append(rows, makeSale("2025-04-10 12:00:00", "1001", 2.50))
		}

		inputs := domain.UserInputs{
			PortfolioSize:  50,
			UploadQuota:    100,
			MonthlyUploads: 10,
		}

		kpi := service.calculateKpis(rows, inputs, 0)

		assert.Equal(t, 100, kpi.SalesCount)
		assert.Equal(t, 250.0, kpi.TotalRevenueUSD)
		assert.Equal(t, 2.50, kpi.AvgRevenuePerSale)
		// Cem vendas sobre cinquenta assets: atividade passa de cem por cento sem corte
		assert.Equal(t, 200.0, kpi.PortfolioSoldPercent)
		assert.Equal(t, 10.0, kpi.UploadLimitUsagePercent)
		assert.Equal(t, 0.0, kpi.BrokenRowsPercent)
	})

	t.Run("Conjunto sem vendas zera médias e percentuais", func(t *testing.T) {
		inputs := domain.UserInputs{
			PortfolioSize:  50,
			UploadQuota:    100,
			MonthlyUploads: 10,
		}

		kpi := service.calculateKpis(nil, inputs, 0)

		assert.Equal(t, 0, kpi.SalesCount)
		assert.Equal(t, 0.0, kpi.TotalRevenueUSD)
		assert.Equal(t, 0.0, kpi.AvgRevenuePerSale)
		assert.Equal(t, 0.0, kpi.PortfolioSoldPercent)
		assert.Equal(t, 0.0, kpi.NewWorksSalesPercent)
		assert.True(t, kpi.PeriodMonth.IsZero())
	})

	t.Run("Uso da cota de upload é cortado em cem por cento", func(t *testing.T) {
		rows := []domain.CleanSaleRow{makeSale("2025-04-10 12:00:00", "1001", 1.00)}

		inputs := domain.UserInputs{
			PortfolioSize:  10,
			UploadQuota:    10,
			MonthlyUploads: 1000,
		}

		kpi := service.calculateKpis(rows, inputs, 0)

		assert.Equal(t, 100.0, kpi.UploadLimitUsagePercent)
	})

	t.Run("Receita média e totais arredondados em duas casas", func(t *testing.T) {
		rows := []domain.CleanSaleRow{
			makeSale("2025-04-01 08:00:00", "1001", 0.333),
			makeSale("2025-04-02 09:00:00", "1002", 0.333),
			makeSale("2025-04-03 10:00:00", "1003", 0.333),
		}

		inputs := domain.UserInputs{
			PortfolioSize:  100,
			UploadQuota:    100,
			MonthlyUploads: 33,
		}

		kpi := service.calculateKpis(rows, inputs, 0)

		assert.Equal(t, 3, kpi.SalesCount)
		assert.Equal(t, 1.0, kpi.TotalRevenueUSD)
		assert.Equal(t, 0.33, kpi.AvgRevenuePerSale)
		assert.Equal(t, 3.0, kpi.PortfolioSoldPercent)
		assert.Equal(t, 33.0, kpi.UploadLimitUsagePercent)
	})

	t.Run("Período resolvido para o mês mais antigo do arquivo", func(t *testing.T) {
		rows := []domain.CleanSaleRow{
			makeSale("2025-05-01 00:00:00", "1001", 1.00),
			makeSale("2025-04-28 23:59:59", "1002", 1.00),
		}

		inputs := domain.UserInputs{PortfolioSize: 10, UploadQuota: 10}

		kpi := service.calculateKpis(rows, inputs, 0)

		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), kpi.PeriodMonth)
		assert.Equal(t, "Апрель 2025", kpi.PeriodHumanLabel)
	})

	t.Run("Percentual de linhas quebradas é carregado para o resultado", func(t *testing.T) {
		rows := []domain.CleanSaleRow{makeSale("2025-04-10 12:00:00", "1001", 1.00)}

		inputs := domain.UserInputs{PortfolioSize: 10, UploadQuota: 10}

		kpi := service.calculateKpis(rows, inputs, 12.5)

		assert.Equal(t, 12.5, kpi.BrokenRowsPercent)
	})

	t.Run("Mesma entrada produz sempre o mesmo resultado", func(t *testing.T) {
		rows := []domain.CleanSaleRow{
			makeSale("2025-04-01 08:00:00", "1001", 0.99),
			makeSale("2025-04-15 16:30:00", "1002", 12.40),
			makeSale("2025-04-20 11:00:00", "1001", 3.75),
		}

		inputs := domain.UserInputs{
			PortfolioSize:         200,
			UploadQuota:           120,
			MonthlyUploads:        45,
			AcceptanceRatePercent: 80,
		}

		first := service.calculateKpis(rows, inputs, 5)
		second := service.calculateKpis(rows, inputs, 5)

		assert.Equal(t, first, second)
	})
}

// makeSale monta uma linha válida para os testes de cálculo
func makeSale(datetime, assetID string, royalty float64) domain.CleanSaleRow {
	saleAt, err := time.Parse("2006-01-02 15:04:05", datetime)
	if err != nil {
		panic(err)
	}
	saleAt = saleAt.UTC()

	return domain.CleanSaleRow{
		SaleDatetime: &saleAt,
		AssetID:      &assetID,
		LicenseKind:  domain.LicenseSubscription,
		RoyaltyUSD:   &royalty,
		MediaType:    "photo",
	}
}
