package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/stock-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

const (
	reportsTable = "analytics_reports ar"
)

type ReportRepository interface {
	SaveReport(report *domain.AnalyticsReport) error
	GetReportByAnalysisID(analysisID string) (*domain.AnalyticsReport, error)
	ListReportsByUser(userID int) ([]*domain.AnalyticsReport, error)
	GetAvailablePeriods(userID int) (*domain.AvailablePeriods, error)
}

type reportRepository struct {
	conn postgres.Queryer
}

func NewReportRepository(conn postgres.Queryer) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

func (r *reportRepository) SaveReport(report *domain.AnalyticsReport) error {
	queryBuilder := squirrel.
		Insert("analytics_reports").
		Columns(
			"id",
			"analysis_id",
			"user_id",
			"period",
			"sales_count",
			"total_revenue_usd",
			"avg_revenue_per_sale",
			"portfolio_sold_percent",
			"new_works_sales_percent",
			"upload_limit_usage_percent",
			"broken_rows_percent",
			"period_month",
			"period_human_label",
			"report_text",
		).
		Values(
			report.ID,
			report.AnalysisID,
			report.UserID,
			report.Period,
			report.Kpi.SalesCount,
			report.Kpi.TotalRevenueUSD,
			report.Kpi.AvgRevenuePerSale,
			report.Kpi.PortfolioSoldPercent,
			report.Kpi.NewWorksSalesPercent,
			report.Kpi.UploadLimitUsagePercent,
			report.Kpi.BrokenRowsPercent,
			report.Kpi.PeriodMonth,
			report.Kpi.PeriodHumanLabel,
			report.ReportText,
		).
		PlaceholderFormat(squirrel.Dollar)

	// Reprocessamento da mesma análise substitui o relatório anterior
	queryBuilder = queryBuilder.Suffix(`
		ON CONFLICT (analysis_id) DO UPDATE SET
			period = EXCLUDED.period,
			sales_count = EXCLUDED.sales_count,
			total_revenue_usd = EXCLUDED.total_revenue_usd,
			avg_revenue_per_sale = EXCLUDED.avg_revenue_per_sale,
			portfolio_sold_percent = EXCLUDED.portfolio_sold_percent,
			new_works_sales_percent = EXCLUDED.new_works_sales_percent,
			upload_limit_usage_percent = EXCLUDED.upload_limit_usage_percent,
			broken_rows_percent = EXCLUDED.broken_rows_percent,
			period_month = EXCLUDED.period_month,
			period_human_label = EXCLUDED.period_human_label,
			report_text = EXCLUDED.report_text
	`)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}

	return nil
}

func (r *reportRepository) GetReportByAnalysisID(analysisID string) (*domain.AnalyticsReport, error) {
	queryBuilder := squirrel.
		Select(reportColumns()...).
		From(reportsTable).
		Where(squirrel.Eq{"ar.analysis_id": analysisID}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	report, err := r.scanReportRow(r.conn.QueryRow(sqlQuery, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
	}

	return report, nil
}

func (r *reportRepository) ListReportsByUser(userID int) ([]*domain.AnalyticsReport, error) {
	queryBuilder := squirrel.
		Select(reportColumns()...).
		From(reportsTable).
		Where(squirrel.Eq{"ar.user_id": userID}).
		OrderBy("ar.period_month DESC", "ar.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	var reports []*domain.AnalyticsReport
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear relatório: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer os resultados: %w", err)
	}

	return reports, nil
}

// GetAvailablePeriods retorna os períodos mensais com relatório armazenado para
// o usuário, do mais recente ao mais antigo. A ordenação usa period_month: o
// texto mm-yyyy ordena pelo mês antes do ano e embaralharia anos diferentes
func (r *reportRepository) GetAvailablePeriods(userID int) (*domain.AvailablePeriods, error) {
	queryBuilder := squirrel.
		Select("DISTINCT ar.period", "ar.period_month").
		From(reportsTable).
		Where(squirrel.Eq{"ar.user_id": userID}).
		OrderBy("ar.period_month DESC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := &domain.AvailablePeriods{
		Periods: []string{},
		Years:   []string{},
		Months:  []string{},
	}

	seenYears := map[string]bool{}
	seenMonths := map[string]bool{}

	for rows.Next() {
		// period_month só entra no select para a ordenação cronológica valer
		// com o DISTINCT; o valor em si não é usado
		var (
			period      string
			periodMonth time.Time
		)
		if err := rows.Scan(&period, &periodMonth); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}

		periods.Periods = append(periods.Periods, period)

		// Período no formato mm-yyyy
		if len(period) == 7 {
			month, year := period[:2], period[3:]
			if !seenMonths[month] {
				seenMonths[month] = true
				periods.Months = append(periods.Months, month)
			}
			if !seenYears[year] {
				seenYears[year] = true
				periods.Years = append(periods.Years, year)
			}
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer os resultados: %w", err)
	}

	return periods, nil
}

func reportColumns() []string {
	return []string{
		"ar.id",
		"ar.analysis_id",
		"ar.user_id",
		"ar.period",
		"ar.sales_count",
		"ar.total_revenue_usd",
		"ar.avg_revenue_per_sale",
		"ar.portfolio_sold_percent",
		"ar.new_works_sales_percent",
		"ar.upload_limit_usage_percent",
		"ar.broken_rows_percent",
		"ar.period_month",
		"ar.period_human_label",
		"ar.report_text",
		"ar.created_at",
	}
}

func (r *reportRepository) scanReport(rows *sql.Rows) (*domain.AnalyticsReport, error) {
	report := &domain.AnalyticsReport{}

	err := rows.Scan(
		&report.ID,
		&report.AnalysisID,
		&report.UserID,
		&report.Period,
		&report.Kpi.SalesCount,
		&report.Kpi.TotalRevenueUSD,
		&report.Kpi.AvgRevenuePerSale,
		&report.Kpi.PortfolioSoldPercent,
		&report.Kpi.NewWorksSalesPercent,
		&report.Kpi.UploadLimitUsagePercent,
		&report.Kpi.BrokenRowsPercent,
		&report.Kpi.PeriodMonth,
		&report.Kpi.PeriodHumanLabel,
		&report.ReportText,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) scanReportRow(row *sql.Row) (*domain.AnalyticsReport, error) {
	report := &domain.AnalyticsReport{}

	err := row.Scan(
		&report.ID,
		&report.AnalysisID,
		&report.UserID,
		&report.Period,
		&report.Kpi.SalesCount,
		&report.Kpi.TotalRevenueUSD,
		&report.Kpi.AvgRevenuePerSale,
		&report.Kpi.PortfolioSoldPercent,
		&report.Kpi.NewWorksSalesPercent,
		&report.Kpi.UploadLimitUsagePercent,
		&report.Kpi.BrokenRowsPercent,
		&report.Kpi.PeriodMonth,
		&report.Kpi.PeriodHumanLabel,
		&report.ReportText,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return report, nil
}
