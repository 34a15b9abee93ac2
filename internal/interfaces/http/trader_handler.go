package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/dto"
	"github.com/cochin-traders/trader-api/internal/application/trader"
	"github.com/cochin-traders/trader-api/internal/domain"
)

// TraderHandler maneja los fichajes de visita de los vendedores.
type TraderHandler struct {
	uc *trader.UseCase
}

// NewTraderHandler construye el handler.
func NewTraderHandler(uc *trader.UseCase) *TraderHandler {
	return &TraderHandler{uc: uc}
}

// PunchIn godoc
// @Summary      Registrar una visita (punch in)
// @Tags         trader
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PunchInRequest  true  "empleado, empresa, tienda, importe"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/punch-in [post]
func (h *TraderHandler) PunchIn(c *fiber.Ctx) error {
	var in dto.PunchInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	p, err := h.uc.PunchIn(c.Context(), trader.PunchInput{
		EmployeeName:  in.EmployeeName,
		EmployeePhone: in.EmployeePhone,
		CompanyName:   in.CompanyName,
		ShopName:      in.ShopName,
		Amount:        in.Amount,
		Time:          in.Time,
		Date:          in.Date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "faltan empleado, empresa o tienda",
			})
		}
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Visita registrada",
		"id":      p.ID,
	})
}
