package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/companies"
	"github.com/cochin-traders/trader-api/internal/application/dto"
	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

// CompanyHandler maneja las lecturas de empresas y de sus documentos crudos.
type CompanyHandler struct {
	uc *companies.UseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *companies.UseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List godoc
// @Summary      Listar empresas sincronizadas
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.ListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(dto.ListResponse{Success: true, Count: len(list), Data: list})
}

// Details godoc
// @Summary      Detalles de una empresa
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre legible (URL-encoded)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{name} [get]
func (h *CompanyHandler) Details(c *fiber.Ctx) error {
	name := paramName(c, "name")
	details, err := h.uc.Details(name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "empresa no encontrada",
			})
		}
		return storeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": details})
}

// Ledgers godoc
// @Summary      Libros mayores de la empresa (documentos crudos del sync)
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre legible (URL-encoded)"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/companies/{name}/ledgers [get]
func (h *CompanyHandler) Ledgers(c *fiber.Ctx) error {
	return h.docs(c, repository.DocLedgers)
}

// Parties godoc
// @Summary      Clientes/proveedores de la empresa (documentos crudos del sync)
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre legible (URL-encoded)"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/companies/{name}/parties [get]
func (h *CompanyHandler) Parties(c *fiber.Ctx) error {
	return h.docs(c, repository.DocParties)
}

// Stocks godoc
// @Summary      Catálogo crudo de stocks de la empresa
// @Tags         stocks
// @Produce      json
// @Param        name  path  string  true  "Nombre legible (URL-encoded)"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/companies/{name}/stocks [get]
func (h *CompanyHandler) Stocks(c *fiber.Ctx) error {
	return h.docs(c, repository.DocStocks)
}

func (h *CompanyHandler) docs(c *fiber.Ctx, kind string) error {
	name := paramName(c, "name")
	docs, err := h.uc.Docs(name, kind)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "tipo de documento desconocido",
			})
		}
		return storeError(c, err)
	}
	return c.JSON(dto.ListResponse{Success: true, Count: len(docs), Data: docs})
}

// paramName extrae un parámetro de ruta con URL-decode: los nombres de empresa
// y artículo viajan codificados.
func paramName(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// storeError mapea un fallo de backend al código distinguible que la app
// muestra en el diálogo de reintento.
func storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "STORE_UNAVAILABLE", Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
