package stocks

import "github.com/cochin-traders/trader-api/internal/domain/entity"

// KeyResolver traduce el nombre legible de una empresa a su clave de
// almacenamiento. El lector solo necesita esto del repositorio de empresas.
type KeyResolver interface {
	ResolveKey(name string) (string, error)
}

// CatalogSource entrega el catálogo crudo de artículos de una empresa ya
// resuelta (colaborador externo: los datos los escribe el job de
// sincronización Tally). La normalización de campos de formas históricas
// ($Name, Name, StockName...) ocurre dentro del adaptador, nunca aquí.
type CatalogSource interface {
	FetchStocks(companyKey string) ([]entity.StockItem, error)
}
