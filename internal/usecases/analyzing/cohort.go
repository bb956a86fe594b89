package analyzing

import (
	"time"

	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

// newWorksSalesPercent estima quanto da receita de vendas (em contagem) veio
// de trabalhos "novos". Como o arquivo cobre um único mês, a idade real de um
// asset não está disponível: usamos a primeira venda dentro do arquivo como
// aproximação da data de publicação. Um asset é novo quando sua primeira
// venda ocorre dentro da janela de NewWorksMonths meses (calendário) contados
// para trás a partir da venda mais recente do arquivo.
func (s *Service) newWorksSalesPercent(valid []domain.CleanSaleRow) float64 {
	if len(valid) == 0 {
		return 0
	}

	var maxSale time.Time
	for _, row := range valid {
		if row.SaleDatetime.After(maxSale) {
			maxSale = *row.SaleDatetime
		}
	}

	threshold := maxSale.AddDate(0, -s.cfg.NewWorksMonths, 0)

	firstSaleByAsset := make(map[string]time.Time)
	for _, row := range valid {
		first, ok := firstSaleByAsset[*row.AssetID]
		if !ok || row.SaleDatetime.Before(first) {
			firstSaleByAsset[*row.AssetID] = *row.SaleDatetime
		}
	}

	var newSales int
	for _, row := range valid {
		first := firstSaleByAsset[*row.AssetID]
		if !first.Before(threshold) {
			newSales++
		}
	}

	return utils.RoundWithTwoDecimalPlace(float64(newSales) * 100 / float64(len(valid)))
}
