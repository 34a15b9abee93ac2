package entity

import "time"

// OrderLine es una línea de pedido: artículo más piezas solicitadas por talla.
// Pieces lleva lo pedido, todavía sin validar contra disponibilidad.
type OrderLine struct {
	StockItem string      `json:"stockItem"`
	Pieces    map[int]int `json:"pieces"`
}

// Order es un pedido transitorio: lo crea el carrito, se envía una vez y se
// descarta. No se persiste como agregado propio; su efecto son los descuentos
// sobre los BatchRecord y la notificación externa.
type Order struct {
	CompanyName string      `json:"companyName"`
	ShopName    string      `json:"shopName"`
	Items       []OrderLine `json:"items"`
	SubmittedAt time.Time   `json:"submittedAt"`
}
