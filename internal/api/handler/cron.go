package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/internal/scheduler"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/stock-analytics-api/pkg/middleware"
)

// Tipos de rotina aceitos em /v1/cron/:type/run
const (
	CronJobTypeAnalysisWorker = "analysis-worker"
	CronJobTypeAssetRanking   = "asset-ranking"
	CronJobTypeAll            = "all"
)

// CronJobServices agrupa os schedulers expostos para disparo e consulta manual
type CronJobServices struct {
	AnalysisWorkerService   *scheduler.AnalysisWorkerService
	AssetRankingSyncService *scheduler.AssetRankingSyncService
}

// RunCronJob dispara imediatamente a rotina indicada na URL, sem esperar o
// próximo ciclo agendado
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || !userClaims.IsStaff() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Somente administradores e supervisores podem disparar rotinas agendadas", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de rotina não informado", nil)
			return
		}

		switch cronType {
		case CronJobTypeAnalysisWorker:
			// Drenar a fila de análises pendentes
			if services.AnalysisWorkerService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de processamento de análises não disponível", nil)
				return
			}
			services.AnalysisWorkerService.TriggerManualSync()

		case CronJobTypeAssetRanking:
			// Reconstruir o ranking mensal de assets
			if services.AssetRankingSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de ranking de assets não disponível", nil)
				return
			}
			services.AssetRankingSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.AnalysisWorkerService != nil {
				services.AnalysisWorkerService.TriggerManualSync()
			}
			if services.AssetRankingSyncService != nil {
				services.AssetRankingSyncService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de rotina inválido. Valores aceitos: analysis-worker, asset-ranking, all", nil)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"message": "Rotina disparada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus devolve o estado corrente de cada rotina (última execução,
// execução em andamento, contadores)
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || !userClaims.IsStaff() {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Somente administradores e supervisores podem consultar rotinas agendadas", nil)
			return
		}

		status := map[string]any{
			"analysis-worker": services.AnalysisWorkerService.GetStatus(),
			"asset-ranking":   services.AssetRankingSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
