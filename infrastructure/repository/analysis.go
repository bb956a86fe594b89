// Package repository implementa a persistência da plataforma sobre PostgreSQL,
// com queries montadas via squirrel
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/stock-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

const (
	analysesTable = "csv_analyses"
)

type AnalysisRepository interface {
	CreateAnalysis(analysis *domain.Analysis) error
	GetAnalysisByID(id string) (*domain.Analysis, error)
	GetAnalysisPayload(id string) ([]byte, error)
	ListAnalysesByUser(userID int) ([]*domain.Analysis, error)
	ClaimPendingAnalyses(limit int) ([]*domain.Analysis, error)
	MarkAnalysisCompleted(id string, rowsTotal, rowsBroken int) error
	MarkAnalysisFailed(id string, code string, message string) error
	FailStaleProcessing(olderThanMinutes int) (int64, error)
}

type analysisRepository struct {
	conn postgres.Queryer
}

func NewAnalysisRepository(conn postgres.Queryer) AnalysisRepository {
	return &analysisRepository{
		conn: conn,
	}
}

func (r *analysisRepository) CreateAnalysis(analysis *domain.Analysis) error {
	queryBuilder := squirrel.
		Insert(analysesTable).
		Columns(
			"id",
			"user_id",
			"file_name",
			"content_type",
			"status",
			"portfolio_size",
			"upload_quota",
			"monthly_uploads",
			"acceptance_rate_percent",
			"payload",
		).
		Values(
			analysis.ID,
			analysis.UserID,
			analysis.FileName,
			analysis.ContentType,
			analysis.Status,
			analysis.Inputs.PortfolioSize,
			analysis.Inputs.UploadQuota,
			analysis.Inputs.MonthlyUploads,
			analysis.Inputs.AcceptanceRatePercent,
			analysis.Payload,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	err = r.conn.QueryRow(sqlQuery, args...).Scan(&analysis.CreatedAt, &analysis.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao inserir análise: %w", err)
	}

	return nil
}

func (r *analysisRepository) GetAnalysisByID(id string) (*domain.Analysis, error) {
	queryBuilder := squirrel.
		Select(analysisColumns()...).
		From(analysesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	analysis, err := r.scanAnalysisRow(r.conn.QueryRow(sqlQuery, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear análise: %w", err)
	}

	return analysis, nil
}

// GetAnalysisPayload carrega os bytes do arquivo separadamente; as listagens
// nunca trafegam o payload
func (r *analysisRepository) GetAnalysisPayload(id string) ([]byte, error) {
	var payload []byte
	err := r.conn.QueryRow("SELECT payload FROM csv_analyses WHERE id = $1", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar payload da análise: %w", err)
	}

	return payload, nil
}

func (r *analysisRepository) ListAnalysesByUser(userID int) ([]*domain.Analysis, error) {
	queryBuilder := squirrel.
		Select(analysisColumns()...).
		From(analysesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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

	var analyses []*domain.Analysis
	for rows.Next() {
		analysis, err := r.scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear análise: %w", err)
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer os resultados: %w", err)
	}

	return analyses, nil
}

// ClaimPendingAnalyses reivindica um lote de análises pendentes marcando-as
// como PROCESSING na mesma operação. O SKIP LOCKED permite múltiplas instâncias
// do worker sem processar a mesma análise duas vezes.
func (r *analysisRepository) ClaimPendingAnalyses(limit int) ([]*domain.Analysis, error) {
	query := `
		UPDATE csv_analyses SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id IN (
			SELECT id FROM csv_analyses
			WHERE status = $2
			ORDER BY created_at ASC
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, user_id, file_name, content_type, status,
			portfolio_size, upload_quota, monthly_uploads, acceptance_rate_percent,
			rows_total, rows_broken, failure_code, failure_message, created_at, updated_at`

	rows, err := r.conn.Query(query, domain.AnalysisStatusProcessing, domain.AnalysisStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao reivindicar análises pendentes: %w", err)
	}
	defer rows.Close()

	var analyses []*domain.Analysis
	for rows.Next() {
		analysis, err := r.scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear análise reivindicada: %w", err)
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer os resultados: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) MarkAnalysisCompleted(id string, rowsTotal, rowsBroken int) error {
	queryBuilder := squirrel.
		Update(analysesTable).
		Set("status", domain.AnalysisStatusCompleted).
		Set("rows_total", rowsTotal).
		Set("rows_broken", rowsBroken).
		Set("failure_code", nil).
		Set("failure_message", nil).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao concluir análise: %w", err)
	}

	return nil
}

func (r *analysisRepository) MarkAnalysisFailed(id string, code string, message string) error {
	queryBuilder := squirrel.
		Update(analysesTable).
		Set("status", domain.AnalysisStatusFailed).
		Set("failure_code", code).
		Set("failure_message", message).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao marcar análise como falha: %w", err)
	}

	return nil
}

// FailStaleProcessing derruba análises presas em PROCESSING (worker morto no
// meio do processamento) para FAILED, devolvendo quantas foram afetadas
func (r *analysisRepository) FailStaleProcessing(olderThanMinutes int) (int64, error) {
	query := `
		UPDATE csv_analyses
		SET status = $1, failure_code = $2,
			failure_message = 'processamento interrompido por tempo excedido',
			updated_at = CURRENT_TIMESTAMP
		WHERE status = $3
			AND updated_at < CURRENT_TIMESTAMP - ($4 * INTERVAL '1 minute')`

	result, err := r.conn.Exec(query,
		domain.AnalysisStatusFailed,
		apiErrors.ErrInternalServer,
		domain.AnalysisStatusProcessing,
		olderThanMinutes,
	)
	if err != nil {
		return 0, fmt.Errorf("erro ao derrubar análises presas: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao contar análises derrubadas: %w", err)
	}

	return affected, nil
}

func analysisColumns() []string {
	return []string{
		"id",
		"user_id",
		"file_name",
		"content_type",
		"status",
		"portfolio_size",
		"upload_quota",
		"monthly_uploads",
		"acceptance_rate_percent",
		"rows_total",
		"rows_broken",
		"failure_code",
		"failure_message",
		"created_at",
		"updated_at",
	}
}

func (r *analysisRepository) scanAnalysis(rows *sql.Rows) (*domain.Analysis, error) {
	analysis := &domain.Analysis{}

	err := rows.Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.FileName,
		&analysis.ContentType,
		&analysis.Status,
		&analysis.Inputs.PortfolioSize,
		&analysis.Inputs.UploadQuota,
		&analysis.Inputs.MonthlyUploads,
		&analysis.Inputs.AcceptanceRatePercent,
		&analysis.RowsTotal,
		&analysis.RowsBroken,
		&analysis.FailureCode,
		&analysis.FailureMessage,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return analysis, nil
}

func (r *analysisRepository) scanAnalysisRow(row *sql.Row) (*domain.Analysis, error) {
	analysis := &domain.Analysis{}

	err := row.Scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.FileName,
		&analysis.ContentType,
		&analysis.Status,
		&analysis.Inputs.PortfolioSize,
		&analysis.Inputs.UploadQuota,
		&analysis.Inputs.MonthlyUploads,
		&analysis.Inputs.AcceptanceRatePercent,
		&analysis.RowsTotal,
		&analysis.RowsBroken,
		&analysis.FailureCode,
		&analysis.FailureMessage,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return analysis, nil
}
