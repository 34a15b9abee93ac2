package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/dto"
	"github.com/cochin-traders/trader-api/internal/application/stocks"
	"github.com/cochin-traders/trader-api/internal/domain"
)

// StockHandler expone la vista de stocks con lotes.
type StockHandler struct {
	uc *stocks.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stocks.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListWithBatches godoc
// @Summary      Catálogo de la empresa enriquecido con lotes por talla
// @Description  Cruza el catálogo con los BatchRecord por clave normalizada.
//
//	Un artículo sin registro sale con lotes vacíos y total cero,
//	nunca como error.
//
// @Tags         stocks
// @Produce      json
// @Param        name  path  string  true  "Nombre legible (URL-encoded)"
// @Success      200  {object}  dto.ListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies/{name}/stocks-with-batches [get]
func (h *StockHandler) ListWithBatches(c *fiber.Ctx) error {
	name := paramName(c, "name")
	list, err := h.uc.ListWithBatches(name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "falta el nombre de empresa",
			})
		}
		return storeError(c, err)
	}
	return c.JSON(dto.ListResponse{Success: true, Count: len(list), Data: list})
}
