package utils

import (
	"fmt"
	"time"
)

// Layout dos períodos mensais usados em toda a aplicação (mm-yyyy)
const PeriodLayout = "01-2006"

// FormatPeriod formata uma data como período mensal mm-yyyy
func FormatPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}

// PreviousPeriod devolve o período do mês anterior à data informada.
// Ancora no primeiro dia do mês antes de recuar porque AddDate normaliza
// fins de mês (31/03 menos um mês viraria 03/03).
func PreviousPeriod(t time.Time) string {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return FormatPeriod(firstOfMonth.AddDate(0, -1, 0))
}

// ParsePeriod valida e normaliza um período informado no formato mm-yyyy
func ParsePeriod(raw string) (string, error) {
	t, err := time.Parse(PeriodLayout, raw)
	if err != nil {
		return "", fmt.Errorf("período inválido %q, esperado formato mm-yyyy: %w", raw, err)
	}

	return FormatPeriod(t), nil
}
