package analyzing

import (
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/apiErrors"
)

// applyQualityGate separa linhas válidas de quebradas e aplica a barreira de
// qualidade: acima do limiar o processamento inteiro é abortado, porque KPI
// sobre um arquivo majoritariamente lixo não significa nada. Exatamente no
// limiar passa.
func (s *Service) applyQualityGate(rows []domain.CleanSaleRow) ([]domain.CleanSaleRow, float64, error) {
	total := len(rows)
	if total == 0 {
		return nil, 0, NewAnalysisError(ErrEmptyDataset, apiErrors.ErrEmptyDataset, "nenhuma linha de venda no arquivo")
	}

	valid := make([]domain.CleanSaleRow, 0, total)
	broken := 0
	for _, row := range rows {
		if row.IsBroken() {
			broken++
			continue
		}
		valid = append(valid, row)
	}

	// Multiplicar antes de dividir mantém o resultado exato nos percentuais
	// redondos que caem em cima do limiar
	percent := float64(broken) * 100 / float64(total)

	if percent > s.cfg.BrokenRowsThresholdPct {
		return nil, percent, NewDataQualityError(total, broken, percent)
	}

	return valid, percent, nil
}
