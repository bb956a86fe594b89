package domain

import "time"

// AnalysisStatus representa o estado de processamento de uma análise na fila
type AnalysisStatus string

const (
	AnalysisStatusPending    AnalysisStatus = "PENDING"
	AnalysisStatusProcessing AnalysisStatus = "PROCESSING"
	AnalysisStatusCompleted  AnalysisStatus = "COMPLETED"
	AnalysisStatusFailed     AnalysisStatus = "FAILED"
)

// ContentType é o seletor de tipo de conteúdo informado pelo usuário no upload.
// É armazenado junto com a análise mas nunca participa do cálculo dos KPIs.
type ContentType string

const (
	ContentTypeAI           ContentType = "ai"
	ContentTypePhoto        ContentType = "photo"
	ContentTypeIllustration ContentType = "illustration"
	ContentTypeVideo        ContentType = "video"
	ContentTypeVector       ContentType = "vector"
)

// ValidContentType verifica se o seletor informado é um dos valores aceitos
func ValidContentType(ct ContentType) bool {
	switch ct {
	case ContentTypeAI, ContentTypePhoto, ContentTypeIllustration, ContentTypeVideo, ContentTypeVector:
		return true
	}
	return false
}

// Analysis representa um upload de CSV de vendas e o seu ciclo de vida de processamento
type Analysis struct {
	ID             string         `json:"id"`
	UserID         int            `json:"user_id"`
	FileName       string         `json:"file_name"`
	ContentType    ContentType    `json:"content_type"`
	Status         AnalysisStatus `json:"status"`
	Inputs         UserInputs     `json:"inputs"`
	Payload        []byte         `json:"-"`
	RowsTotal      int            `json:"rows_total"`
	RowsBroken     int            `json:"rows_broken"`
	FailureCode    *string        `json:"failure_code,omitempty"`
	FailureMessage *string        `json:"failure_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
