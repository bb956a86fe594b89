package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/stock-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

const (
	userLimitsTable = "user_limits"
)

type LimitsRepository interface {
	GetUserLimits(userID int) (*domain.UserLimits, error)
	SaveUserLimits(limits *domain.UserLimits) error
	DecrementAnalysesLeft(userID int) (bool, error)
	GrantAnalyses(userID int, amount int) error
}

type limitsRepository struct {
	conn postgres.Queryer
}

func NewLimitsRepository(conn postgres.Queryer) LimitsRepository {
	return &limitsRepository{
		conn: conn,
	}
}

func (r *limitsRepository) GetUserLimits(userID int) (*domain.UserLimits, error) {
	queryBuilder := squirrel.
		Select(
			"user_id",
			"portfolio_size",
			"upload_quota",
			"monthly_uploads",
			"acceptance_rate_percent",
			"analyses_left",
			"updated_at",
		).
		From(userLimitsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	limits := &domain.UserLimits{}
	err = r.conn.QueryRow(sqlQuery, args...).Scan(
		&limits.UserID,
		&limits.PortfolioSize,
		&limits.UploadQuota,
		&limits.MonthlyUploads,
		&limits.AcceptanceRatePercent,
		&limits.AnalysesLeft,
		&limits.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao escanear limites: %w", err)
	}

	return limits, nil
}

func (r *limitsRepository) SaveUserLimits(limits *domain.UserLimits) error {
	queryBuilder := squirrel.
		Insert(userLimitsTable).
		Columns(
			"user_id",
			"portfolio_size",
			"upload_quota",
			"monthly_uploads",
			"acceptance_rate_percent",
			"analyses_left",
		).
		Values(
			limits.UserID,
			limits.PortfolioSize,
			limits.UploadQuota,
			limits.MonthlyUploads,
			limits.AcceptanceRatePercent,
			limits.AnalysesLeft,
		).
		Suffix(`
			ON CONFLICT (user_id) DO UPDATE SET
				portfolio_size = EXCLUDED.portfolio_size,
				upload_quota = EXCLUDED.upload_quota,
				monthly_uploads = EXCLUDED.monthly_uploads,
				acceptance_rate_percent = EXCLUDED.acceptance_rate_percent,
				analyses_left = EXCLUDED.analyses_left,
				updated_at = CURRENT_TIMESTAMP
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao salvar limites: %w", err)
	}

	return nil
}

// DecrementAnalysesLeft debita uma análise do saldo do usuário de forma
// atômica. Retorna false quando o saldo já estava esgotado.
func (r *limitsRepository) DecrementAnalysesLeft(userID int) (bool, error) {
	query := `
		UPDATE user_limits
		SET analyses_left = analyses_left - 1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $1 AND analyses_left > 0`

	result, err := r.conn.Exec(query, userID)
	if err != nil {
		return false, fmt.Errorf("erro ao debitar análise do saldo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao verificar débito do saldo: %w", err)
	}

	return affected > 0, nil
}

// GrantAnalyses credita análises ao saldo. Usuários sem perfil salvo ganham a
// linha na hora, com os demais parâmetros nos defaults da tabela.
func (r *limitsRepository) GrantAnalyses(userID int, amount int) error {
	query := `
		INSERT INTO user_limits (user_id, analyses_left)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			analyses_left = user_limits.analyses_left + EXCLUDED.analyses_left,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := r.conn.Exec(query, userID, amount); err != nil {
		return fmt.Errorf("erro ao creditar análises: %w", err)
	}

	return nil
}
