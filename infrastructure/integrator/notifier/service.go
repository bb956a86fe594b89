package notifier

import (
	"time"

	"github.com/sirupsen/logrus"
	notifierdomain "github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier/domain"
	"github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier/notifierclient"
	"github.com/vfg2006/stock-analytics-api/internal/config"
	"github.com/vfg2006/stock-analytics-api/internal/domain"
	"github.com/vfg2006/stock-analytics-api/pkg/utils"
)

// Notifier publica eventos de ciclo de vida das análises em um webhook
// externo, tipicamente o bot que conversa com o contribuidor
type Notifier interface {
	NotifyReportReady(analysis *domain.Analysis, report *domain.AnalyticsReport) error
	NotifyAnalysisFailed(analysis *domain.Analysis) error
}

type WebhookService struct {
	cfg    *config.Config
	Client notifierclient.Client
}

func New(cfg *config.Config, client notifierclient.Client) Notifier {
	return &WebhookService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *WebhookService) NotifyReportReady(analysis *domain.Analysis, report *domain.AnalyticsReport) error {
	if !s.enabled() {
		return nil
	}

	event := notifierdomain.Event{
		Event:      notifierdomain.EventReportReady,
		AnalysisID: analysis.ID,
		UserID:     analysis.UserID,
		Period:     report.Period,
		ReportText: report.ReportText,
		OccurredAt: time.Now().UTC(),
	}

	logrus.Debugf("Publicando evento de relatório pronto: %s", utils.PrettyJson(event))

	return s.Client.PostEvent(event)
}

func (s *WebhookService) NotifyAnalysisFailed(analysis *domain.Analysis) error {
	if !s.enabled() {
		return nil
	}

	event := notifierdomain.Event{
		Event:      notifierdomain.EventAnalysisFailed,
		AnalysisID: analysis.ID,
		UserID:     analysis.UserID,
		OccurredAt: time.Now().UTC(),
	}

	if analysis.FailureCode != nil {
		event.FailureCode = *analysis.FailureCode
	}

	if analysis.FailureMessage != nil {
		event.FailureMessage = *analysis.FailureMessage
	}

	logrus.Debugf("Publicando evento de análise com falha: %s", utils.PrettyJson(event))

	return s.Client.PostEvent(event)
}

func (s *WebhookService) enabled() bool {
	return s.cfg.Notifier.Enabled && s.cfg.Notifier.WebhookURL != ""
}
