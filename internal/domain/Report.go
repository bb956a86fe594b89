package domain

// Nomes dos blocos do relatório, na ordem de exibição sequencial
const (
	ReportBlockSummary       = "summary"
	ReportBlockExplanation   = "explanation"
	ReportBlockSoldPortfolio = "sold_portfolio"
	ReportBlockNewWorks      = "new_works"
	ReportBlockUploadLimit   = "upload_limit"
	ReportBlockClosing       = "closing"
)

// ReportBlock é um bloco nomeado de texto do relatório
type ReportBlock struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ReportSections é o resultado da montagem do relatório: os blocos ordenados
// para envio sequencial e um bloco único combinado para arquivamento
type ReportSections struct {
	Blocks   []ReportBlock `json:"blocks"`
	Archival string        `json:"archival"`
}
