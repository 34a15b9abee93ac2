package repository

import (
	"encoding/json"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// Tipos de documento sincronizados por empresa desde Tally.
const (
	DocStocks  = "stocks"
	DocLedgers = "ledgers"
	DocParties = "parties"
)

// CompanyRepository define el puerto de lectura de las empresas sincronizadas
// y de sus documentos crudos (stocks, ledgers, parties). El job de
// sincronización escribe; esta API solo lee.
type CompanyRepository interface {
	List() ([]entity.Company, error)
	// GetDetails devuelve el documento companyDetails tal cual se sincronizó,
	// o (nil, nil) si la empresa no existe.
	GetDetails(companyKey string) (json.RawMessage, error)
	// ListDocs devuelve los documentos crudos de un tipo, en el orden en que
	// los dejó la sincronización (el catálogo se presenta sin reordenar).
	ListDocs(companyKey, kind string) ([]json.RawMessage, error)
	// ResolveKey traduce un nombre legible a clave de almacenamiento:
	// coincidencia exacta de clave, luego slug minúsculo, luego barrido lineal
	// contra el nombre legible de cada empresa. Si nada coincide devuelve la
	// clave saneada del nombre, para que escritura y lectura posteriores sigan
	// siendo coherentes entre sí.
	ResolveKey(name string) (string, error)
}
