package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/dto"
	"github.com/cochin-traders/trader-api/internal/application/orders"
	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// OrderHandler maneja el envío de pedidos.
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar un pedido
// @Description  Descuenta lotes por talla línea a línea (secuencial) y dispara
//
//	la notificación externa de mejor esfuerzo. El pedido "triunfa"
//	cuando el inventario quedó actualizado, con o sin notificación.
//
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitOrderRequest  true  "companyName, shopName, items[]"
// @Success      200  {object}  dto.SubmitOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	items := make([]entity.OrderLine, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderLine{StockItem: it.StockItem, Pieces: it.Pieces})
	}

	res, err := h.uc.Submit(c.Context(), in.CompanyName, in.ShopName, items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidOrder) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_ORDER", Message: "faltan companyName, shopName o items",
			})
		}
		return storeError(c, err)
	}
	return c.JSON(dto.SubmitOrderResponse{
		Success:     true,
		Message:     fmt.Sprintf("Pedido registrado para %s", res.ShopName),
		CompanyName: res.CompanyName,
		ShopName:    res.ShopName,
		ItemsCount:  res.ItemsCount,
		Lines:       res.Lines,
	})
}
