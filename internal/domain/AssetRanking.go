// Package domain reúne os tipos que circulam entre os usecases, os repositórios
// e a API: vendas normalizadas, análises, relatórios, usuários e limites
package domain

import "time"

// AssetAggregate agrega as vendas de um asset dentro de uma única análise
type AssetAggregate struct {
	AnalysisID  string    `json:"analysis_id"`
	AssetID     string    `json:"asset_id"`
	AssetTitle  string    `json:"asset_title"`
	SalesCount  int       `json:"sales_count"`
	RevenueUSD  float64   `json:"revenue_usd"`
	FirstSaleAt time.Time `json:"first_sale_at"`
}

type AssetRankingResponse struct {
	Period     string             `json:"period"` // Formato mm-yyyy (ex: 01-2024)
	Ranking    []AssetRankingItem `json:"ranking"`
	LastUpdate time.Time          `json:"last_update"`
}

type AssetRankingItem struct {
	ID               int       `json:"id"`
	AssetID          string    `json:"asset_id"`
	AssetTitle       string    `json:"asset_title"`
	Period           string    `json:"period"`
	SalesCount       int       `json:"sales_count"`
	RevenueUSD       float64   `json:"revenue_usd"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"` // Valor positivo = subiu, negativo = desceu, 0 = manteve
	PreviousPosition int       `json:"previous_position"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
