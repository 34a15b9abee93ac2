package stocks

import (
	"fmt"

	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/keys"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

// UseCase produce la vista "artículo con lotes" que consumen el listado de
// stocks y la validación de pedidos: una lectura masiva de lotes por empresa
// (nunca una petición por artículo) cruzada con el catálogo por clave
// normalizada.
type UseCase struct {
	companies KeyResolver
	batches   repository.BatchRepository
	catalog   CatalogSource
}

// NewUseCase construye el lector de stocks con lotes.
func NewUseCase(companies KeyResolver, batches repository.BatchRepository, catalog CatalogSource) *UseCase {
	return &UseCase{companies: companies, batches: batches, catalog: catalog}
}

// ListWithBatches cruza el catálogo de la empresa con sus BatchRecord. Un
// artículo sin registro sale con lotes vacíos y total cero, nunca como error.
// Se conserva el orden del catálogo y todos sus campos.
//
// Limitación conocida: dos nombres de catálogo que normalizan a la misma clave
// comparten vista de lotes.
func (uc *UseCase) ListWithBatches(companyName string) ([]entity.StockWithBatches, error) {
	if companyName == "" {
		return nil, domain.ErrInvalidInput
	}
	companyKey, err := uc.companies.ResolveKey(companyName)
	if err != nil {
		return nil, fmt.Errorf("%w: resolver empresa: %v", domain.ErrStoreUnavailable, err)
	}
	items, err := uc.catalog.FetchStocks(companyKey)
	if err != nil {
		return nil, fmt.Errorf("%w: catálogo de %s: %v", domain.ErrStoreUnavailable, companyName, err)
	}
	recs, err := uc.batches.ListByCompany(companyKey)
	if err != nil {
		return nil, fmt.Errorf("%w: lotes de %s: %v", domain.ErrStoreUnavailable, companyName, err)
	}
	byItemKey := make(map[string]entity.BatchRecord, len(recs))
	for _, rec := range recs {
		byItemKey[keys.Sanitize(rec.StockItem)] = rec
	}

	out := make([]entity.StockWithBatches, 0, len(items))
	for _, item := range items {
		enriched := entity.StockWithBatches{StockItem: item, Batches: []entity.Batch{}}
		if rec, ok := byItemKey[keys.Sanitize(item.Name)]; ok {
			enriched.Batches = rec.Batches
			enriched.TotalQuantity = rec.TotalQuantity
		}
		out = append(out, enriched)
	}
	return out, nil
}
