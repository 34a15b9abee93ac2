package orders

import (
	"context"

	"github.com/cochin-traders/trader-api/internal/application/batches"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// Store es el recorte del almacén de lotes que necesita el procesador de
// pedidos: solo descuentos. Se inyecta para que los tests sustituyan un doble.
type Store interface {
	Decrement(companyName, stockItem string, pieces map[int]int) (*batches.DecrementResult, error)
}

// Notifier envía la notificación externa del pedido (correo o webhook).
// Mejor esfuerzo: el procesador registra el fallo y nunca lo propaga; la
// verdad del inventario no depende de la entrega.
type Notifier interface {
	NotifyOrder(ctx context.Context, order *entity.Order) error
}
