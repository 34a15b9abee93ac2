package batches

import (
	"fmt"
	"time"

	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/keys"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

// UseCase implementa el almacén de lotes: lectura, reemplazo completo y
// descuento por talla sobre BatchRecord. Es la única pieza que muta inventario;
// el procesador de pedidos y el listado de stocks se apoyan en ella.
//
// El repositorio se inyecta por constructor (nunca un cliente ambiental a nivel
// de módulo) para que los tests sustituyan un doble en memoria.
type UseCase struct {
	companies KeyResolver
	repo      repository.BatchRepository
}

// NewUseCase construye el caso de uso del almacén de lotes.
func NewUseCase(companies KeyResolver, repo repository.BatchRepository) *UseCase {
	return &UseCase{companies: companies, repo: repo}
}

// DecrementResult es el desglose diagnóstico de un descuento: cuánto se
// descontó realmente por talla (puede ser menos de lo pedido, el recorte a
// cero es silencioso) y el estado resultante del registro.
type DecrementResult struct {
	Found         bool
	ReducedTotal  int
	TotalQuantity int
	Batches       []entity.Batch
	ReducedBySize map[int]int
}

// resolveKeys traduce los nombres legibles al par de claves de almacenamiento.
func (uc *UseCase) resolveKeys(companyName, stockItem string) (string, string, error) {
	companyKey, err := uc.companies.ResolveKey(companyName)
	if err != nil {
		return "", "", storeErr("resolver empresa", err)
	}
	return companyKey, keys.Sanitize(stockItem), nil
}

// Get devuelve el registro persistido para (empresa, artículo), o (nil, nil)
// si la clave nunca se escribió: la ausencia es estado vacío, no error.
func (uc *UseCase) Get(companyName, stockItem string) (*entity.BatchRecord, error) {
	companyKey, itemKey, err := uc.resolveKeys(companyName, stockItem)
	if err != nil {
		return nil, err
	}
	rec, err := uc.repo.Get(companyKey, itemKey)
	if err != nil {
		return nil, storeErr("leer lotes", err)
	}
	return rec, nil
}

// Put valida y reemplaza por completo la lista de lotes de un artículo.
// Las entradas con talla o cantidad no positivas se descartan en silencio
// (poda intencional, no error); si no sobrevive ninguna falla con
// ErrInvalidBatchData. Si hay tallas repetidas gana la última, conservando la
// posición de la primera aparición. TotalQuantity se recalcula siempre;
// CreatedAt solo se fija en la primera escritura.
func (uc *UseCase) Put(companyName, stockItem string, in []entity.Batch) (*entity.BatchRecord, error) {
	if companyName == "" || stockItem == "" {
		return nil, domain.ErrInvalidInput
	}

	valid := make([]entity.Batch, 0, len(in))
	pos := make(map[int]int, len(in))
	for _, b := range in {
		if b.Size <= 0 || b.Quantity <= 0 {
			continue
		}
		if i, ok := pos[b.Size]; ok {
			valid[i] = b
			continue
		}
		pos[b.Size] = len(valid)
		valid = append(valid, b)
	}
	if len(valid) == 0 {
		return nil, domain.ErrInvalidBatchData
	}

	companyKey, itemKey, err := uc.resolveKeys(companyName, stockItem)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &entity.BatchRecord{
		CompanyName:   companyName,
		StockItem:     stockItem,
		Batches:       valid,
		TotalQuantity: entity.SumQuantities(valid),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	existing, err := uc.repo.Get(companyKey, itemKey)
	if err != nil {
		return nil, storeErr("leer lotes previos", err)
	}
	if existing != nil {
		rec.CreatedAt = existing.CreatedAt
	}
	if err := uc.repo.Upsert(companyKey, itemKey, rec); err != nil {
		return nil, storeErr("guardar lotes", err)
	}
	return rec, nil
}

// Decrement descuenta piezas por talla de un artículo con recorte a cero:
// newQuantity = max(0, quantity - solicitado). Descontar menos de lo pedido
// NO es un error; el faltante queda reflejado en ReducedBySize. Las tallas no
// mencionadas (o con petición no positiva) pasan intactas. Sobre una clave
// nunca escrita es un no-op que devuelve Found=false sin escribir nada.
//
// Lectura y escritura son dos operaciones separadas sin bloqueo de fila:
// dos descuentos concurrentes sobre la misma clave pueden perder una
// actualización. Limitación aceptada; ver el test que la fija.
func (uc *UseCase) Decrement(companyName, stockItem string, pieces map[int]int) (*DecrementResult, error) {
	companyKey, itemKey, err := uc.resolveKeys(companyName, stockItem)
	if err != nil {
		return nil, err
	}
	rec, err := uc.repo.Get(companyKey, itemKey)
	if err != nil {
		return nil, storeErr("leer lotes", err)
	}
	if rec == nil {
		return &DecrementResult{Found: false, ReducedBySize: map[int]int{}}, nil
	}

	reducedBySize := make(map[int]int)
	reducedTotal := 0
	updated := make([]entity.Batch, len(rec.Batches))
	for i, b := range rec.Batches {
		requested := pieces[b.Size]
		if requested > 0 {
			newQty := b.Quantity - requested
			if newQty < 0 {
				newQty = 0
			}
			reducedBySize[b.Size] += b.Quantity - newQty
			reducedTotal += b.Quantity - newQty
			b.Quantity = newQty
		}
		updated[i] = b
	}

	rec.Batches = updated
	rec.TotalQuantity = entity.SumQuantities(updated)
	rec.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Upsert(companyKey, itemKey, rec); err != nil {
		return nil, storeErr("guardar descuento", err)
	}
	return &DecrementResult{
		Found:         true,
		ReducedTotal:  reducedTotal,
		TotalQuantity: rec.TotalQuantity,
		Batches:       updated,
		ReducedBySize: reducedBySize,
	}, nil
}

// storeErr marca un fallo de E/S del repositorio como ErrStoreUnavailable
// manteniendo la causa en el mensaje.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
