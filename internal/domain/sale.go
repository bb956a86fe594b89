package domain

import "time"

// Planos de licença reconhecidos nos exports dos marketplaces
const (
	LicenseCustom       = "custom"
	LicenseSubscription = "subscription"
)

// RawSaleRow representa uma linha do export de vendas exatamente como veio do arquivo,
// antes de qualquer limpeza ou tipagem
type RawSaleRow struct {
	SaleTimestamp string
	AssetID       string
	AssetTitle    string
	LicenseKind   string
	RoyaltyRaw    string
	MediaType     string
	Passthrough   map[string]string
}

// CleanSaleRow é a linha tipada e validada consumida pelo cálculo de KPIs.
// Campos obrigatórios não parseáveis ficam nulos e marcam a linha como quebrada.
type CleanSaleRow struct {
	SaleDatetime *time.Time
	AssetID      *string
	AssetTitle   string
	LicenseKind  string
	RoyaltyUSD   *float64
	MediaType    string
}

// IsBroken indica se a linha está quebrada: data, asset ou royalty nulos
func (r CleanSaleRow) IsBroken() bool {
	return r.SaleDatetime == nil || r.AssetID == nil || r.RoyaltyUSD == nil
}
