package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/cochin-traders/trader-api/internal/application/orders"
	"github.com/cochin-traders/trader-api/internal/application/trader"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

var _ orders.Notifier = (*EmailNotifier)(nil)
var _ trader.Notifier = (*EmailNotifier)(nil)

// EmailNotifier envía los avisos por correo directamente vía SendGrid, sin
// pasar por el servicio heredado.
type EmailNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
}

// NewEmailNotifier construye el adaptador de correo.
func NewEmailNotifier(apiKey, fromAddr, toAddr string) *EmailNotifier {
	return &EmailNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Cochin Traders", fromAddr),
		to:     mail.NewEmail("", toAddr),
	}
}

// NotifyOrder envía el pedido en texto plano, una línea por artículo con el
// desglose por talla solicitado.
func (n *EmailNotifier) NotifyOrder(ctx context.Context, order *entity.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Nuevo pedido de %s\nEmpresa: %s\n\n", order.ShopName, order.CompanyName)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s: %s\n", item.StockItem, formatPieces(item.Pieces))
	}
	subject := fmt.Sprintf("Pedido: %s (%d artículos)", order.ShopName, len(order.Items))
	return n.send(ctx, subject, b.String())
}

// NotifyPunchIn envía el aviso de visita.
func (n *EmailNotifier) NotifyPunchIn(ctx context.Context, p *entity.PunchIn) error {
	body := fmt.Sprintf(
		"Visita registrada\nEmpleado: %s (%s)\nEmpresa: %s\nTienda: %s\nImporte: %s\nFecha: %s %s\n",
		p.EmployeeName, p.EmployeePhone, p.CompanyName, p.ShopName, p.Amount.String(), p.Date, p.Time,
	)
	subject := fmt.Sprintf("Visita: %s en %s", p.EmployeeName, p.ShopName)
	return n.send(ctx, subject, body)
}

func (n *EmailNotifier) send(ctx context.Context, subject, body string) error {
	msg := mail.NewSingleEmail(n.from, subject, n.to, body, body)
	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: estado %d", resp.StatusCode)
	}
	return nil
}

// formatPieces imprime el mapa talla→cantidad en orden de talla estable.
func formatPieces(pieces map[int]int) string {
	sizes := make([]int, 0, len(pieces))
	for size := range pieces {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	parts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		parts = append(parts, fmt.Sprintf("talla %d × %d", size, pieces[size]))
	}
	return strings.Join(parts, ", ")
}
