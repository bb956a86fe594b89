package analyzing

import (
	"fmt"
	"time"

	"github.com/vfg2006/stock-analytics-api/internal/domain"
)

// Tabela fixa de nomes de meses no idioma do produto. O rótulo do período
// precisa ser determinístico e independente do locale do host, por isso não
// usamos nenhuma chamada de localização.
var monthNames = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// resolvePeriod reduz as datas das linhas válidas ao mês de calendário coberto
// pelo arquivo. Um export que atravessa mais de um mês não é erro: fica
// deterministicamente com o mês mais antigo presente.
func resolvePeriod(rows []domain.CleanSaleRow) (time.Time, string) {
	var earliest time.Time

	for _, row := range rows {
		month := time.Date(row.SaleDatetime.Year(), row.SaleDatetime.Month(), 1, 0, 0, 0, 0, time.UTC)
		if earliest.IsZero() || month.Before(earliest) {
			earliest = month
		}
	}

	if earliest.IsZero() {
		return time.Time{}, ""
	}

	return earliest, periodLabel(earliest)
}

// periodLabel monta o rótulo humano do período a partir da tabela fixa de meses
func periodLabel(month time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[int(month.Month())-1], month.Year())
}
