package domain

import "time"

// KpiResult agrega as métricas calculadas para o mês coberto pelo arquivo.
// Criado uma única vez por execução e nunca mutado depois.
type KpiResult struct {
	SalesCount              int       `json:"sales_count"`
	TotalRevenueUSD         float64   `json:"total_revenue_usd"`
	AvgRevenuePerSale       float64   `json:"avg_revenue_per_sale"`
	PortfolioSoldPercent    float64   `json:"portfolio_sold_percent"`
	NewWorksSalesPercent    float64   `json:"new_works_sales_percent"`
	UploadLimitUsagePercent float64   `json:"upload_limit_usage_percent"`
	PeriodMonth             time.Time `json:"period_month"` // primeiro dia do mês, UTC
	PeriodHumanLabel        string    `json:"period_human_label"`
	BrokenRowsPercent       float64   `json:"broken_rows_percent"`
}

// AnalyticsReport é o relatório persistido de uma análise concluída
type AnalyticsReport struct {
	ID         string    `json:"id"`
	AnalysisID string    `json:"analysis_id"`
	UserID     int       `json:"user_id"`
	Period     string    `json:"period"` // Período no formato mm-yyyy
	Kpi        KpiResult `json:"kpi"`
	ReportText string    `json:"report_text"`
	CreatedAt  time.Time `json:"created_at"`
}
