package repository

import "github.com/cochin-traders/trader-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia cruda de BatchRecord,
// indexado por (companyKey, itemKey) ya normalizados. La semántica de negocio
// (poda de entradas, recálculo de totales, recorte a cero) vive en el caso de
// uso; aquí solo lectura y escritura de registros completos.
type BatchRepository interface {
	// Get devuelve el registro tal cual se persistió, o (nil, nil) si la clave
	// nunca se escribió. Los llamadores tratan la ausencia como "cero lotes".
	Get(companyKey, itemKey string) (*entity.BatchRecord, error)
	// ListByCompany devuelve todos los registros de una empresa en una sola
	// lectura, para que el listado de stocks no haga una petición por artículo.
	ListByCompany(companyKey string) ([]entity.BatchRecord, error)
	// Upsert reemplaza por completo el registro bajo la clave (no es un merge).
	Upsert(companyKey, itemKey string, rec *entity.BatchRecord) error
}
