package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cochin-traders/trader-api/internal/application/stocks"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

var _ stocks.CatalogSource = (*CatalogRepo)(nil)

// CatalogRepo adapta los documentos de stocks sincronizados al puerto
// CatalogSource. Aquí, y solo aquí, se resuelven las convenciones históricas
// de nombres de campo del origen Tally ($Name, Name, StockName...): la lógica
// de negocio recibe siempre StockItem ya normalizado.
type CatalogRepo struct {
	companies repository.CompanyRepository
}

// NewCatalogSource construye el adaptador de catálogo.
func NewCatalogSource(companies repository.CompanyRepository) *CatalogRepo {
	return &CatalogRepo{companies: companies}
}

// FetchStocks devuelve el catálogo de la empresa (ya resuelta a clave) en
// orden de sincronización.
func (r *CatalogRepo) FetchStocks(companyKey string) ([]entity.StockItem, error) {
	docs, err := r.companies.ListDocs(companyKey, repository.DocStocks)
	if err != nil {
		return nil, fmt.Errorf("fetch stocks: %w", err)
	}
	out := make([]entity.StockItem, 0, len(docs))
	for _, raw := range docs {
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue // documento corrupto del sync: se omite, no tumba el listado
		}
		out = append(out, StockItemFromDoc(doc))
	}
	return out, nil
}

// StockItemFromDoc normaliza un documento crudo de stock a StockItem con un
// orden de prioridad de campos fijo y documentado:
//
//	nombre:   $Name > Name > StockName
//	grupo:    $Parent > Parent > Category
//	tarifa:   $ClosingRate > ClosingRate
//	apertura: $OpeningBalance > OpeningBalance
//	cierre:   closingBalance > $ClosingBalance > ClosingBalance
//
// Cada cadena corresponde a una generación del job de sincronización; las
// formas legadas siguen vivas en datos ya escritos.
func StockItemFromDoc(doc map[string]any) entity.StockItem {
	return entity.StockItem{
		Name:           docString(doc, "$Name", "Name", "StockName"),
		ParentGroup:    docString(doc, "$Parent", "Parent", "Category"),
		Rate:           docDecimal(doc, "$ClosingRate", "ClosingRate"),
		OpeningQty:     docDecimal(doc, "$OpeningBalance", "OpeningBalance"),
		ClosingBalance: docDecimal(doc, "closingBalance", "$ClosingBalance", "ClosingBalance"),
	}
}

// docString devuelve el primer campo presente y no vacío.
func docString(doc map[string]any, fields ...string) string {
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// docDecimal devuelve el primer campo presente que parsea a decimal. Tally
// exporta números tanto como número JSON como string ("450.00").
func docDecimal(doc map[string]any, fields ...string) decimal.Decimal {
	for _, f := range fields {
		v, ok := doc[f]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return decimal.NewFromFloat(n)
		case string:
			if d, err := decimal.NewFromString(n); err == nil {
				return d
			}
		case json.Number:
			if d, err := decimal.NewFromString(n.String()); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
