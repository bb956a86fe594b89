// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/infrastructure/repository"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

type AssetRankingSyncConfig struct {
	CronSchedule string
	TopN         int
	SyncEnabled  bool
}

// AssetRankingSyncService consolida mensalmente o ranking dos assets mais
// vendidos a partir dos agregados de todas as análises do período
type AssetRankingSyncService struct {
	scheduler           *gocron.Scheduler
	config              AssetRankingSyncConfig
	assetRepo           repository.AssetRankingRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewAssetRankingSyncService(
	assetRepo repository.AssetRankingRepository,
	cfg *config.Config,
) *AssetRankingSyncService {
	rankingConfig := AssetRankingSyncConfig{
		CronSchedule: cfg.AssetRankingSync.CronSchedule,
		TopN:         cfg.AssetRankingSync.TopN,
		SyncEnabled:  cfg.AssetRankingSync.SyncEnabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rankingConfig.CronSchedule,
		"top_n":         rankingConfig.TopN,
	}).Info("Configuração do agendador do ranking de assets carregada")

	return &AssetRankingSyncService{
		scheduler: scheduler,
		config:    rankingConfig,
		assetRepo: assetRepo,
	}
}

func (s *AssetRankingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de atualização do ranking de assets desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do ranking de assets")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateAssetRanking(); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de assets")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do ranking de assets: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking de assets")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AssetRankingSyncService) UpdateAssetRanking() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Sincronização do ranking de assets já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando atualização do ranking de assets")

	s.processAssetRanking()

	logrus.Info("Atualização do ranking de assets concluída")

	return nil
}

// processAssetRanking consolida o ranking do mês anterior
func (s *AssetRankingSyncService) processAssetRanking() {
	s.processAssetRankingWithDate(time.Now())
}

// processAssetRankingWithDate consolida o ranking do mês anterior à data de
// processamento informada
func (s *AssetRankingSyncService) processAssetRankingWithDate(processingDate time.Time) []*domain.AssetRankingItem {
	period := utils.PreviousPeriod(processingDate)

	aggregates, err := s.assetRepo.AggregateAssetsForPeriod(period, s.config.TopN)
	if err != nil {
		logrus.WithError(err).Error("AssetRankingSyncService: Erro ao agregar assets do período")
		return nil
	}

	if len(aggregates) == 0 {
		logrus.WithField("period", period).Info("Nenhum asset encontrado para o ranking do período")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"period": period,
		"assets": len(aggregates),
	}).Info("AssetRankingSyncService: assets agregados para o ranking")

	// Buscar as posições anteriores em paralelo para calcular a movimentação
	wg := sync.WaitGroup{}
	rankingBeforeUpdate := make(chan domain.AssetRankingItem, len(aggregates))
	for _, aggregate := range aggregates {
		wg.Add(1)

		go func(assetID string) {
			defer wg.Done()

			previous, err := s.assetRepo.GetByAssetID(assetID, period)
			if err != nil {
				logrus.WithError(err).Error("AssetRankingSyncService: Erro ao buscar ranking anterior do asset")
				return
			}

			if previous != nil {
				rankingBeforeUpdate <- *previous
			}
		}(aggregate.AssetID)
	}

	wg.Wait()
	close(rankingBeforeUpdate)

	rankingsBeforeUpdate := make(map[string]*domain.AssetRankingItem, len(aggregates))
	for ranking := range rankingBeforeUpdate {
		item := ranking
		if item.AssetID == "" {
			continue
		}
		rankingsBeforeUpdate[item.AssetID] = &item
	}

	updatedRankings := make([]*domain.AssetRankingItem, 0, len(aggregates))
	for _, aggregate := range aggregates {
		updatedRankings = append(updatedRankings, &domain.AssetRankingItem{
			AssetID:    aggregate.AssetID,
			AssetTitle: aggregate.AssetTitle,
			Period:     period,
			SalesCount: aggregate.SalesCount,
			RevenueUSD: aggregate.RevenueUSD,
		})
	}

	s.updatePositions(updatedRankings, rankingsBeforeUpdate)

	if err := s.assetRepo.SaveOrUpdateAssetRanking(updatedRankings); err != nil {
		logrus.WithError(err).Error("Erro ao salvar ranking de assets atualizado")
		return updatedRankings
	}

	logrus.WithField("period", period).Info("Ranking de assets atualizado")

	return updatedRankings
}

// updatePositions ordena por receita e calcula a movimentação de cada asset
// em relação ao ranking anterior do mesmo período
func (*AssetRankingSyncService) updatePositions(
	updatedRankings []*domain.AssetRankingItem,
	rankingsBeforeUpdate map[string]*domain.AssetRankingItem,
) {
	sort.Slice(updatedRankings, func(i, j int) bool {
		if updatedRankings[i].RevenueUSD != updatedRankings[j].RevenueUSD {
			return updatedRankings[i].RevenueUSD > updatedRankings[j].RevenueUSD
		}
		return updatedRankings[i].AssetID < updatedRankings[j].AssetID
	})

	for i, ranking := range updatedRankings {
		ranking.Position = i + 1

		rankingBefore, exists := rankingsBeforeUpdate[ranking.AssetID]
		if exists {
			ranking.PositionChange = rankingBefore.Position - ranking.Position
			ranking.PreviousPosition = rankingBefore.Position
		}
	}
}

// TriggerManualSync inicia manualmente uma consolidação do ranking de assets
func (s *AssetRankingSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização do ranking de assets já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual do ranking de assets")
	go func() {
		if err := s.UpdateAssetRanking(); err != nil {
			logrus.WithError(err).Error("Erro na sincronização manual do ranking de assets")
		}
	}()
}

// GetStatus expõe o estado corrente da rotina para o endpoint de cron
func (s *AssetRankingSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
