package analyzing

import (
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

// calculateKpis computa as métricas do mês a partir das linhas válidas e dos
// parâmetros do usuário. Função pura, sem relógio nem aleatoriedade: o mesmo
// arquivo com os mesmos parâmetros sempre produz o mesmo resultado.
func (s *Service) calculateKpis(valid []domain.CleanSaleRow, inputs domain.UserInputs, brokenPercent float64) domain.KpiResult {
	salesCount := len(valid)

	var revenue float64
	for _, row := range valid {
		revenue += *row.RoyaltyUSD
	}

	avgRevenue := 0.0
	if salesCount > 0 {
		avgRevenue = revenue / float64(salesCount)
	}

	// Guardas de última instância; a validação dos parâmetros acontece antes
	// de qualquer linha ser processada
	portfolioSize := inputs.PortfolioSize
	if portfolioSize < 1 {
		portfolioSize = 1
	}
	uploadQuota := inputs.UploadQuota
	if uploadQuota < 1 {
		uploadQuota = 1
	}

	// Mede atividade de vendas sobre o tamanho do catálogo, não cobertura:
	// um catálogo muito ativo passa de 100% quando um asset vende várias vezes
	portfolioSold := float64(salesCount) * 100 / float64(portfolioSize)

	uploadUsage := utils.ClampPercent(float64(inputs.MonthlyUploads) * 100 / float64(uploadQuota))

	periodMonth, periodHumanLabel := resolvePeriod(valid)

	return domain.KpiResult{
		SalesCount:              salesCount,
		TotalRevenueUSD:         utils.RoundWithTwoDecimalPlace(revenue),
		AvgRevenuePerSale:       utils.RoundWithTwoDecimalPlace(avgRevenue),
		PortfolioSoldPercent:    utils.RoundWithTwoDecimalPlace(portfolioSold),
		NewWorksSalesPercent:    s.newWorksSalesPercent(valid),
		UploadLimitUsagePercent: utils.RoundWithTwoDecimalPlace(uploadUsage),
		PeriodMonth:             periodMonth,
		PeriodHumanLabel:        periodHumanLabel,
		BrokenRowsPercent:       utils.RoundWithTwoDecimalPlace(brokenPercent),
	}
}
