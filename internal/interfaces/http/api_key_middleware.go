package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/dto"
)

// APIKeyMiddleware protege las rutas de la API con la clave estática que
// comparte la app móvil (cabecera x-api-key). La autenticación de usuarios es
// un colaborador externo; esta clave solo autentica a la aplicación.
func APIKeyMiddleware(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get("x-api-key")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHORIZED", Message: "clave de API inválida",
			})
		}
		return c.Next()
	}
}
