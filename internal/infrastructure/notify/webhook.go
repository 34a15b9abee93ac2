// Package notify contiene los adaptadores del canal externo de avisos:
// webhook HTTP y correo SendGrid. Todos son de mejor esfuerzo; los casos de
// uso registran el fallo y siguen.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cochin-traders/trader-api/internal/application/orders"
	"github.com/cochin-traders/trader-api/internal/application/trader"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

var _ orders.Notifier = (*WebhookNotifier)(nil)
var _ trader.Notifier = (*WebhookNotifier)(nil)

// WebhookNotifier reenvía pedidos y fichajes al servicio de correo heredado
// (cochin-express) vía POST JSON autenticado con x-api-key.
type WebhookNotifier struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWebhookNotifier construye el adaptador. timeout acota cada envío; con
// cero se usan 10 s.
func NewWebhookNotifier(baseURL, apiKey string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NotifyOrder envía el pedido con las piezas solicitadas originales.
func (n *WebhookNotifier) NotifyOrder(ctx context.Context, order *entity.Order) error {
	payload := map[string]any{
		"companyName": order.CompanyName,
		"shopName":    order.ShopName,
		"items":       order.Items,
	}
	return n.post(ctx, "/api/send-order", payload)
}

// NotifyPunchIn envía el fichaje de visita.
func (n *WebhookNotifier) NotifyPunchIn(ctx context.Context, p *entity.PunchIn) error {
	payload := map[string]any{
		"employeeName":  p.EmployeeName,
		"employeePhone": p.EmployeePhone,
		"companyName":   p.CompanyName,
		"shopName":      p.ShopName,
		"amount":        p.Amount,
		"time":          p.Time,
		"date":          p.Date,
	}
	return n.post(ctx, "/api/punch-in", payload)
}

func (n *WebhookNotifier) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// Incluye timeouts del cliente: distinguibles del código de error
		// reportado por el servidor.
		return fmt.Errorf("webhook %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook %s: estado %d: %s", path, resp.StatusCode, snippet)
	}
	return nil
}
