package domain

import "time"

// Tipos de evento publicados no webhook de notificação
const (
	EventReportReady    = "report.ready"
	EventAnalysisFailed = "analysis.failed"
)

// Event é o corpo enviado ao webhook quando uma análise muda de estado
type Event struct {
	Event          string    `json:"event"`
	AnalysisID     string    `json:"analysis_id"`
	UserID         int       `json:"user_id"`
	Period         string    `json:"period,omitempty"`
	ReportText     string    `json:"report_text,omitempty"`
	FailureCode    string    `json:"failure_code,omitempty"`
	FailureMessage string    `json:"failure_message,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
