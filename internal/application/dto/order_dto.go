package dto

import "github.com/cochin-traders/trader-api/internal/application/orders"

// OrderItemRequest una línea del pedido: artículo y piezas por talla.
// Las claves del mapa llegan como strings JSON ("5": 3) y se decodifican a int.
type OrderItemRequest struct {
	StockItem string      `json:"stockItem"`
	Pieces    map[int]int `json:"pieces"`
}

// SubmitOrderRequest body para POST /api/orders.
type SubmitOrderRequest struct {
	CompanyName string             `json:"companyName"`
	ShopName    string             `json:"shopName"`
	Items       []OrderItemRequest `json:"items"`
}

// SubmitOrderResponse resumen del envío más el detalle por línea
// (pedido-contra-descontado); la app actual solo usa el resumen.
type SubmitOrderResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	CompanyName string              `json:"companyName"`
	ShopName    string              `json:"shopName"`
	ItemsCount  int                 `json:"itemsCount"`
	Lines       []orders.LineResult `json:"lines"`
}
