package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/stock-analytics-api/internal/usecases/ranking"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

// GetAssetRanking retorna o ranking mensal de assets por receita de royalties.
// Aceita o período via query string (?period=mm-yyyy); sem período, o serviço
// usa o último ranking consolidado.
func GetAssetRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := r.URL.Query().Get("period")

		// Buscar o ranking dos assets
		assetRanking, err := service.GetAssetRanking(period)
		if err != nil {
			var parseErr *time.ParseError
			if errors.As(err, &parseErr) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}

			logrus.Error("Erro ao buscar ranking de assets:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking de assets", nil)
			return
		}

		if assetRanking == nil {
			apiErrors.WriteError(w, apiErrors.ErrAnalysisNotFound, "Nenhum ranking encontrado para o período", map[string]any{
				"period": period,
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(assetRanking)
		if err != nil {
			logrus.Error("Erro ao enviar resposta do ranking:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
