package notifierclient

import (
	"net/http"
	"time"

	notifierdomain "github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier/domain"
	"github.com/vfg2006/stock-analytics-api/internal/config"
)

type Client interface {
	PostEvent(event notifierdomain.Event) error
}

type WebhookClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient cria uma nova instância do cliente de webhook.
func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.Notifier.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: cfg,
	}
}
