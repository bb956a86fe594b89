package notifierclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	notifierdomain "github.com/vfg2006/stock-analytics-api/infrastructure/integrator/notifier/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PostEvent entrega um evento ao webhook configurado. Qualquer status fora da
// faixa 2xx é tratado como falha de entrega.
func (c *WebhookClient) PostEvent(event notifierdomain.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao serializar o evento: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Notifier.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.config.Notifier.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Notifier.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	// Drena o corpo para a conexão voltar ao pool de keep-alive
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook respondeu com status: %s", resp.Status)
	}

	return nil
}
