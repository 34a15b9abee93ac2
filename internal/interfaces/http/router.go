package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cochin-traders/trader-api/internal/application/batches"
	"github.com/cochin-traders/trader-api/internal/application/companies"
	"github.com/cochin-traders/trader-api/internal/application/orders"
	"github.com/cochin-traders/trader-api/internal/application/stocks"
	"github.com/cochin-traders/trader-api/internal/application/trader"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC *companies.UseCase
	StockUC   *stocks.UseCase
	BatchUC   *batches.UseCase
	OrderUC   *orders.UseCase
	TraderUC  *trader.UseCase
	APIKey    string
}

// Router registra las rutas de la API. Todo /api va detrás de la clave
// compartida con la app móvil.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", APIKeyMiddleware(deps.APIKey))

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	stockHandler := NewStockHandler(deps.StockUC)
	batchHandler := NewBatchHandler(deps.BatchUC)
	orderHandler := NewOrderHandler(deps.OrderUC)
	traderHandler := NewTraderHandler(deps.TraderUC)

	comp := api.Group("/companies")
	comp.Get("/", companyHandler.List)
	comp.Get("/:name", companyHandler.Details)
	comp.Get("/:name/ledgers", companyHandler.Ledgers)
	comp.Get("/:name/parties", companyHandler.Parties)
	comp.Get("/:name/stocks", companyHandler.Stocks)
	comp.Get("/:name/stocks-with-batches", stockHandler.ListWithBatches)
	comp.Get("/:name/batches/:item", batchHandler.Get)

	api.Post("/batches", batchHandler.Create)
	api.Post("/orders", orderHandler.Submit)
	api.Post("/punch-in", traderHandler.PunchIn)
}
