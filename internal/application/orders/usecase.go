package orders

import (
	"context"
	"sort"
	"time"

	"github.com/cochin-traders/trader-api/internal/application/batches"
	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/pkg/logger"
)

var _ Store = (*batches.UseCase)(nil)

// UseCase convierte una lista de líneas de pedido en descuentos de inventario
// comprometidos más una notificación externa de mejor esfuerzo. No guarda
// estado entre llamadas: cada envío es una lectura-modificación-escritura
// fresca por artículo.
type UseCase struct {
	store         Store
	notifier      Notifier
	log           *logger.Logger
	notifyTimeout time.Duration
}

// NewUseCase construye el procesador de pedidos. notifyTimeout acota la
// llamada saliente de notificación; con cero se usan 10 s.
func NewUseCase(store Store, notifier Notifier, log *logger.Logger, notifyTimeout time.Duration) *UseCase {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &UseCase{store: store, notifier: notifier, log: log, notifyTimeout: notifyTimeout}
}

// PieceDelta es lo pedido contra lo realmente descontado para una talla.
type PieceDelta struct {
	Size      int `json:"size"`
	Requested int `json:"requested"`
	Reduced   int `json:"reduced"`
}

// LineResult es el desenlace de una línea. La UI actual solo mira el resumen,
// pero el detalle pedido-contra-descontado queda expuesto para que un llamador
// pueda detectar recortes por falta de stock.
type LineResult struct {
	StockItem      string       `json:"stockItem"`
	Found          bool         `json:"found"`
	Skipped        bool         `json:"skipped,omitempty"`
	RequestedTotal int          `json:"requestedTotal"`
	ReducedTotal   int          `json:"reducedTotal"`
	Pieces         []PieceDelta `json:"pieces"`
}

// SubmitResult resume un envío: eco de empresa/tienda, número de líneas
// recibidas y el detalle por línea.
type SubmitResult struct {
	CompanyName string       `json:"companyName"`
	ShopName    string       `json:"shopName"`
	ItemsCount  int          `json:"itemsCount"`
	Lines       []LineResult `json:"lines"`
}

// Submit procesa las líneas en orden estricto (nunca en paralelo: cada
// descuento es lectura-modificación-escritura y líneas concurrentes sobre el
// mismo artículo se pisarían). Política "degradar, no abortar": una línea sin
// registro de lotes se marca como no satisfecha y se continúa, porque la
// contabilidad de lotes puede ir por detrás de la toma de pedidos; la
// notificación sale igual para que una persona concilie. Solo abortan el resto
// de líneas los fallos de E/S del almacén, sin deshacer las ya aplicadas.
func (uc *UseCase) Submit(ctx context.Context, companyName, shopName string, items []entity.OrderLine) (*SubmitResult, error) {
	if companyName == "" || shopName == "" || len(items) == 0 {
		return nil, domain.ErrInvalidOrder
	}

	lines := make([]LineResult, 0, len(items))
	for _, item := range items {
		if item.StockItem == "" || len(item.Pieces) == 0 {
			uc.log.Warn().Str("empresa", companyName).Msg("línea de pedido inválida, se omite")
			lines = append(lines, LineResult{StockItem: item.StockItem, Skipped: true, Pieces: []PieceDelta{}})
			continue
		}
		res, err := uc.store.Decrement(companyName, item.StockItem, item.Pieces)
		if err != nil {
			// Sin rollback compensatorio de líneas ya descontadas: diseño
			// al-menos-una-vez asumido; las correcciones de inventario son aditivas.
			return nil, err
		}
		lines = append(lines, buildLineResult(item, res))
		uc.log.Info().
			Str("articulo", item.StockItem).
			Int("descontado", res.ReducedTotal).
			Int("totalRestante", res.TotalQuantity).
			Msg("lotes actualizados")
	}

	order := &entity.Order{
		CompanyName: companyName,
		ShopName:    shopName,
		Items:       items, // piezas solicitadas originales, no los descuentos aplicados
		SubmittedAt: time.Now().UTC(),
	}
	nctx, cancel := context.WithTimeout(ctx, uc.notifyTimeout)
	defer cancel()
	if err := uc.notifier.NotifyOrder(nctx, order); err != nil {
		// El inventario ya está actualizado; la notificación es mejor esfuerzo.
		uc.log.Error().Err(err).Str("tienda", shopName).Msg("fallo al notificar el pedido")
	}

	return &SubmitResult{
		CompanyName: companyName,
		ShopName:    shopName,
		ItemsCount:  len(items),
		Lines:       lines,
	}, nil
}

// buildLineResult cruza lo pedido con lo descontado, talla a talla. Las tallas
// pedidas sin lote correspondiente aparecen con Reduced cero.
func buildLineResult(item entity.OrderLine, res *batches.DecrementResult) LineResult {
	sizes := make([]int, 0, len(item.Pieces))
	for size, qty := range item.Pieces {
		if qty > 0 {
			sizes = append(sizes, size)
		}
	}
	sort.Ints(sizes)

	line := LineResult{StockItem: item.StockItem, Found: res.Found, Pieces: make([]PieceDelta, 0, len(sizes))}
	for _, size := range sizes {
		requested := item.Pieces[size]
		reduced := res.ReducedBySize[size]
		line.RequestedTotal += requested
		line.ReducedTotal += reduced
		line.Pieces = append(line.Pieces, PieceDelta{Size: size, Requested: requested, Reduced: reduced})
	}
	return line
}
