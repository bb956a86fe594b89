package reporting

import "fmt"

// Tier é a faixa interpretativa em que um percentual calculado cai. As cinco
// faixas são ordenadas da mais fraca para a mais forte e cada uma seleciona um
// texto pré-autorado do catálogo.
type Tier int

const (
	TierNewbie Tier = iota
	TierRising
	TierSteady
	TierAdvanced
	TierTop
)

// String retorna o nome da faixa para logs e persistência
func (t Tier) String() string {
	switch t {
	case TierNewbie:
		return "newbie"
	case TierRising:
		return "rising"
	case TierSteady:
		return "steady"
	case TierAdvanced:
		return "advanced"
	case TierTop:
		return "top"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Metric identifica qual dos três percentuais está sendo classificado
type Metric int

const (
	MetricSoldPortfolio Metric = iota
	MetricNewWorks
	MetricUploadUsage
)

// String retorna o nome da métrica para logs e mensagens de erro
func (m Metric) String() string {
	switch m {
	case MetricSoldPortfolio:
		return "sold_portfolio"
	case MetricNewWorks:
		return "new_works"
	case MetricUploadUsage:
		return "upload_usage"
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// TierBounds são os quatro cortes crescentes que separam as cinco faixas de
// uma métrica. Os intervalos são semiabertos com o corte incluído na faixa de
// cima: valor < b[0] é newbie, b[0] <= valor < b[1] é rising e assim por diante
// até valor >= b[3], que é top.
type TierBounds [4]float64

// Classify resolve a faixa de um valor
func (b TierBounds) Classify(value float64) Tier {
	switch {
	case value < b[0]:
		return TierNewbie
	case value < b[1]:
		return TierRising
	case value < b[2]:
		return TierSteady
	case value < b[3]:
		return TierAdvanced
	}
	return TierTop
}

// Validate garante que os cortes são estritamente crescentes
func (b TierBounds) Validate() error {
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			return NewReportError(ErrInvalidTierBounds, fmt.Sprintf("cortes devem ser estritamente crescentes, recebido %v", b))
		}
	}
	return nil
}
