package entity

import "github.com/shopspring/decimal"

// StockItem es un artículo del catálogo sincronizado desde Tally.
// Name es la identidad (único por empresa, sensible a mayúsculas); la clave de
// almacenamiento se deriva con keys.Sanitize.
type StockItem struct {
	Name           string          `json:"name"`
	ParentGroup    string          `json:"parentGroup"`
	Rate           decimal.Decimal `json:"rate"`
	OpeningQty     decimal.Decimal `json:"openingQty"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// StockWithBatches es la vista enriquecida que consume el listado de stocks y
// la validación de pedidos: el artículo del catálogo más su desglose por talla.
type StockWithBatches struct {
	StockItem
	Batches       []Batch `json:"batches"`
	TotalQuantity int     `json:"totalQuantity"`
}
