package domain

// AvailablePeriods agrega os períodos mensais com relatório armazenado para um
// usuário, já quebrados em anos e meses para os filtros do front
type AvailablePeriods struct {
	Periods []string `json:"periods"` // mm-yyyy, do mais recente ao mais antigo
	Years   []string `json:"years"`
	Months  []string `json:"months"`
}
