package entity

import "time"

// Batch es una entrada de inventario discreta por talla dentro de un artículo.
// Size es un código de talla (1..N); Quantity nunca es negativa: toda operación
// que la llevaría por debajo de cero se recorta a cero.
type Batch struct {
	Size     int `json:"size"`
	Quantity int `json:"quantity"`
}

// BatchRecord es el agregado persistido para un par (empresa, artículo).
// TotalQuantity siempre es la suma de Batches[].Quantity; se recalcula en cada
// mutación y nunca se edita de forma independiente.
type BatchRecord struct {
	CompanyName   string    `json:"companyName"`
	StockItem     string    `json:"stockItem"`
	Batches       []Batch   `json:"batches"`
	TotalQuantity int       `json:"totalQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SumQuantities suma las cantidades de una lista de lotes.
func SumQuantities(batches []Batch) int {
	total := 0
	for _, b := range batches {
		total += b.Quantity
	}
	return total
}
