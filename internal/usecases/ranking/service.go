package ranking

import (
	"time"

	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

type RankingService interface {
	GetAssetRanking(period string) (*domain.AssetRankingResponse, error)
}

type AssetRankingService struct {
	AssetRankingRepository repository.AssetRankingRepository
}

func NewAssetRankingService(assetRankingRepository repository.AssetRankingRepository) RankingService {
	return &AssetRankingService{
		AssetRankingRepository: assetRankingRepository,
	}
}

// GetAssetRanking retorna o ranking de assets do período informado (mm-yyyy).
// Sem período, usa o mês anterior, que é o último ranking consolidado.
func (s *AssetRankingService) GetAssetRanking(period string) (*domain.AssetRankingResponse, error) {
	if period == "" {
		period = utils.PreviousPeriod(time.Now())
	}

	normalized, err := utils.ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	ranking, err := s.AssetRankingRepository.GetAssetRanking(normalized)
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
