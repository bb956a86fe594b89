package analyzing

import (
	"sort"
	"time"

	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

// aggregateAssets agrupa as linhas válidas por asset para alimentar o ranking
// de mais vendidos. A ordenação é determinística: receita decrescente e, em
// empate, o identificador do asset.
func aggregateAssets(valid []domain.CleanSaleRow) []domain.AssetAggregate {
	type accumulator struct {
		title     string
		sales     int
		revenue   float64
		firstSale time.Time
	}

	byAsset := make(map[string]*accumulator)
	for _, row := range valid {
		acc, ok := byAsset[*row.AssetID]
		if !ok {
			acc = &accumulator{firstSale: *row.SaleDatetime}
			byAsset[*row.AssetID] = acc
		}

		acc.sales++
		acc.revenue += *row.RoyaltyUSD
		if row.SaleDatetime.Before(acc.firstSale) {
			acc.firstSale = *row.SaleDatetime
		}
		// Linhas do mesmo asset podem divergir no título; a última não vazia vence
		if row.AssetTitle != "" {
			acc.title = row.AssetTitle
		}
	}

	aggregates := make([]domain.AssetAggregate, 0, len(byAsset))
	for assetID, acc := range byAsset {
		aggregates = append(aggregates, domain.AssetAggregate{
			AssetID:     assetID,
			AssetTitle:  acc.title,
			SalesCount:  acc.sales,
			RevenueUSD:  utils.RoundWithTwoDecimalPlace(acc.revenue),
			FirstSaleAt: acc.firstSale,
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].RevenueUSD != aggregates[j].RevenueUSD {
			return aggregates[i].RevenueUSD > aggregates[j].RevenueUSD
		}
		return aggregates[i].AssetID < aggregates[j].AssetID
	})

	return aggregates
}
