package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/stock-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

const (
	assetRankingTable  = "asset_rankings rk"
	analysisAssetTable = "analysis_assets"
)

type AssetRankingRepository interface {
	SaveAssetAggregates(analysisID string, aggregates []domain.AssetAggregate) error
	AggregateAssetsForPeriod(period string, limit int) ([]domain.AssetAggregate, error)
	GetByAssetID(assetID string, period string) (*domain.AssetRankingItem, error)
	GetAssetRanking(period string) (*domain.AssetRankingResponse, error)
	SaveOrUpdateAssetRanking(rankings []*domain.AssetRankingItem) error
}

type assetRankingRepository struct {
	conn *postgres.Connection
}

func NewAssetRankingRepository(conn *postgres.Connection) AssetRankingRepository {
	return &assetRankingRepository{
		conn: conn,
	}
}

// SaveAssetAggregates grava os agregados por asset produzidos por uma análise.
// Reprocessamento da mesma análise substitui todos os agregados anteriores,
// inclusive os de assets que saíram do arquivo.
func (r *assetRankingRepository) SaveAssetAggregates(analysisID string, aggregates []domain.AssetAggregate) error {
	if len(aggregates) == 0 {
		return nil
	}

	deleteQuery := squirrel.StatementBuilder.
		Delete(analysisAssetTable).
		Where(squirrel.Eq{"analysis_id": analysisID}).
		PlaceholderFormat(squirrel.Dollar)

	insertQuery := squirrel.StatementBuilder.
		Insert(analysisAssetTable).
		Columns(
			"analysis_id",
			"asset_id",
			"asset_title",
			"sales_count",
			"revenue_usd",
			"first_sale_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, aggregate := range aggregates {
		insertQuery = insertQuery.Values(
			analysisID,
			aggregate.AssetID,
			aggregate.AssetTitle,
			aggregate.SalesCount,
			aggregate.RevenueUSD,
			aggregate.FirstSaleAt,
		)
	}

	deleteSQL, deleteArgs, err := deleteQuery.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de limpeza: %w", err)
	}

	insertSQL, insertArgs, err := insertQuery.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(deleteSQL, deleteArgs...); err != nil {
			return fmt.Errorf("erro ao limpar agregados anteriores: %w", err)
		}

		if _, err := tx.Exec(insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("erro ao salvar agregados de assets: %w", err)
		}

		return nil
	})
}

// AggregateAssetsForPeriod soma as vendas por asset entre todas as análises
// concluídas de um período, em ordem de receita
func (r *assetRankingRepository) AggregateAssetsForPeriod(period string, limit int) ([]domain.AssetAggregate, error) {
	queryBuilder := squirrel.
		Select(
			"aa.asset_id",
			"MAX(aa.asset_title) AS asset_title",
			"SUM(aa.sales_count) AS sales_count",
			"SUM(aa.revenue_usd) AS revenue_usd",
			"MIN(aa.first_sale_at) AS first_sale_at",
		).
		From("analysis_assets aa").
		Join("analytics_reports ar ON ar.analysis_id = aa.analysis_id").
		Where(squirrel.Eq{"ar.period": period}).
		GroupBy("aa.asset_id").
		OrderBy("revenue_usd DESC", "aa.asset_id ASC").
		Limit(uint64(limit)).
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

	var aggregates []domain.AssetAggregate
	for rows.Next() {
		var aggregate domain.AssetAggregate
		if err := rows.Scan(
			&aggregate.AssetID,
			&aggregate.AssetTitle,
			&aggregate.SalesCount,
			&aggregate.RevenueUSD,
			&aggregate.FirstSaleAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear agregado: %w", err)
		}
		aggregates = append(aggregates, aggregate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer os resultados: %w", err)
	}

	return aggregates, nil
}

func (r *assetRankingRepository) GetByAssetID(assetID string, period string) (*domain.AssetRankingItem, error) {
	query, args, err := squirrel.
		Select("rk.id, rk.asset_id, rk.asset_title, rk.period, rk.sales_count, rk.revenue_usd, rk.position, rk.position_change, rk.previous_position, rk.created_at, rk.updated_at").
		From(assetRankingTable).
		Where(squirrel.Eq{"rk.asset_id": assetID, "rk.period": period}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	ranking, err := r.scanAssetRankingItemRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ranking: %w", err)
	}

	return ranking, nil
}

func (r *assetRankingRepository) GetAssetRanking(period string) (*domain.AssetRankingResponse, error) {
	queryBuilder := squirrel.
		Select(
			"rk.id",
			"rk.asset_id",
			"rk.asset_title",
			"rk.period",
			"rk.sales_count",
			"rk.revenue_usd",
			"rk.position",
			"rk.position_change",
			"rk.previous_position",
			"rk.created_at",
			"rk.updated_at",
		).
		From(assetRankingTable).
		Where(squirrel.Eq{"rk.period": period}).
		OrderBy("rk.position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.AssetRankingResponse{
				Period:     period,
				Ranking:    []domain.AssetRankingItem{},
				LastUpdate: time.Now(),
			}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rankings := make([]domain.AssetRankingItem, 0)
	var lastUpdate time.Time

	for rows.Next() {
		item, err := r.scanAssetRankingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		rankings = append(rankings, *item)

		if item.UpdatedAt.After(lastUpdate) {
			lastUpdate = item.UpdatedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer os resultados: %w", err)
	}

	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &domain.AssetRankingResponse{
		Period:     period,
		Ranking:    rankings,
		LastUpdate: lastUpdate,
	}, nil
}

func (r *assetRankingRepository) SaveOrUpdateAssetRanking(rankings []*domain.AssetRankingItem) error {
	if len(rankings) == 0 {
		return nil
	}

	query := squirrel.StatementBuilder.
		Insert("asset_rankings").
		Columns(
			"asset_id",
			"asset_title",
			"period",
			"sales_count",
			"revenue_usd",
			"position",
			"position_change",
			"previous_position",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, ranking := range rankings {
		query = query.Values(
			ranking.AssetID,
			ranking.AssetTitle,
			ranking.Period,
			ranking.SalesCount,
			ranking.RevenueUSD,
			ranking.Position,
			ranking.PositionChange,
			ranking.PreviousPosition,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (asset_id, period) DO UPDATE SET
			asset_title = EXCLUDED.asset_title,
			sales_count = EXCLUDED.sales_count,
			revenue_usd = EXCLUDED.revenue_usd,
			position = EXCLUDED.position,
			position_change = EXCLUDED.position_change,
			previous_position = EXCLUDED.previous_position,
			updated_at = CURRENT_TIMESTAMP
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao executar query de inserção: %w", err)
	}

	return nil
}

func (r *assetRankingRepository) scanAssetRankingItem(rows *sql.Rows) (*domain.AssetRankingItem, error) {
	item := &domain.AssetRankingItem{}

	err := rows.Scan(
		&item.ID,
		&item.AssetID,
		&item.AssetTitle,
		&item.Period,
		&item.SalesCount,
		&item.RevenueUSD,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *assetRankingRepository) scanAssetRankingItemRow(row *sql.Row) (*domain.AssetRankingItem, error) {
	item := &domain.AssetRankingItem{}

	err := row.Scan(
		&item.ID,
		&item.AssetID,
		&item.AssetTitle,
		&item.Period,
		&item.SalesCount,
		&item.RevenueUSD,
		&item.Position,
		&item.PositionChange,
		&item.PreviousPosition,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
