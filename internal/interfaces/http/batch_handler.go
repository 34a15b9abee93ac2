package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/batches"
	"github.com/cochin-traders/trader-api/internal/application/dto"
	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// BatchHandler maneja lectura y escritura de lotes por artículo.
type BatchHandler struct {
	uc *batches.UseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *batches.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Get godoc
// @Summary      Lotes de un artículo
// @Description  found=false con 200 y lotes vacíos cuando la clave nunca se
//
//	escribió: la ausencia es estado vacío, no error.
//
// @Tags         batches
// @Produce      json
// @Param        name  path  string  true  "Empresa (URL-encoded)"
// @Param        item  path  string  true  "Artículo (URL-encoded)"
// @Success      200  {object}  dto.GetBatchesResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies/{name}/batches/{item} [get]
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	companyName := paramName(c, "name")
	stockItem := paramName(c, "item")

	rec, err := h.uc.Get(companyName, stockItem)
	if err != nil {
		return storeError(c, err)
	}
	resp := dto.GetBatchesResponse{
		Success:     true,
		CompanyName: companyName,
		StockItem:   stockItem,
		Batches:     []entity.Batch{},
	}
	if rec != nil {
		resp.Found = len(rec.Batches) > 0
		resp.CompanyName = rec.CompanyName
		resp.StockItem = rec.StockItem
		resp.Batches = rec.Batches
		resp.TotalQuantity = rec.TotalQuantity
		resp.BatchCount = len(rec.Batches)
		resp.CreatedAt = &rec.CreatedAt
		resp.UpdatedAt = &rec.UpdatedAt
	}
	return c.JSON(resp)
}

// Create godoc
// @Summary      Crear o reemplazar los lotes de un artículo
// @Description  Reemplazo completo, no merge: para conservar tallas no tocadas
//
//	hay que leer primero el estado y reenviarlo entero.
//
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddBatchesRequest  true  "companyName, stockItem, batches[]"
// @Success      200  {object}  dto.AddBatchesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.AddBatchesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	rec, err := h.uc.Put(in.CompanyName, in.StockItem, in.Batches)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "faltan companyName o stockItem",
			})
		}
		if errors.Is(err, domain.ErrInvalidBatchData) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_BATCHES", Message: "ninguna entrada con talla y cantidad positivas",
			})
		}
		return storeError(c, err)
	}
	return c.JSON(dto.AddBatchesResponse{
		Success:       true,
		Message:       fmt.Sprintf("Lotes de %s guardados", in.StockItem),
		CompanyName:   rec.CompanyName,
		StockItem:     rec.StockItem,
		BatchCount:    len(rec.Batches),
		TotalQuantity: rec.TotalQuantity,
	})
}
