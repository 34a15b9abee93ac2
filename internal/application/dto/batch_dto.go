package dto

import (
	"time"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// AddBatchesRequest body para POST /api/batches. Reemplazo completo de la
// lista de lotes del artículo: quien quiera conservar tallas no tocadas debe
// leer primero el estado y reenviarlo entero.
type AddBatchesRequest struct {
	CompanyName string         `json:"companyName"`
	StockItem   string         `json:"stockItem"`
	Batches     []entity.Batch `json:"batches"`
}

// AddBatchesResponse eco de una escritura de lotes aceptada.
type AddBatchesResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	CompanyName   string `json:"companyName"`
	StockItem     string `json:"stockItem"`
	BatchCount    int    `json:"batchCount"`
	TotalQuantity int    `json:"totalQuantity"`
}

// GetBatchesResponse respuesta de GET /api/companies/:name/batches/:item.
// Found=false con 200 y lotes vacíos: la ausencia es estado vacío, no error.
type GetBatchesResponse struct {
	Success       bool           `json:"success"`
	Found         bool           `json:"found"`
	CompanyName   string         `json:"companyName"`
	StockItem     string         `json:"stockItem"`
	Batches       []entity.Batch `json:"batches"`
	TotalQuantity int            `json:"totalQuantity"`
	BatchCount    int            `json:"batchCount"`
	CreatedAt     *time.Time     `json:"createdAt"`
	UpdatedAt     *time.Time     `json:"updatedAt"`
}
