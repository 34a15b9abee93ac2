package companies

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

// UseCase expone las lecturas de empresas sincronizadas y de sus documentos
// crudos (ledgers, parties). Son lecturas finas: la lógica con contenido vive
// en batches, stocks y orders.
type UseCase struct {
	repo repository.CompanyRepository
}

// NewUseCase construye el caso de uso de empresas.
func NewUseCase(repo repository.CompanyRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve las empresas ordenadas por nombre legible.
func (uc *UseCase) List() ([]entity.Company, error) {
	companies, err := uc.repo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: listar empresas: %v", domain.ErrStoreUnavailable, err)
	}
	sort.Slice(companies, func(i, j int) bool {
		return companies[i].DisplayName < companies[j].DisplayName
	})
	return companies, nil
}

// Details devuelve el documento companyDetails de una empresa. A diferencia de
// los lotes, aquí la ausencia sí es error: preguntar por una empresa que no
// existe es un fallo duro.
func (uc *UseCase) Details(name string) (json.RawMessage, error) {
	key, err := uc.repo.ResolveKey(name)
	if err != nil {
		return nil, fmt.Errorf("%w: resolver empresa: %v", domain.ErrStoreUnavailable, err)
	}
	details, err := uc.repo.GetDetails(key)
	if err != nil {
		return nil, fmt.Errorf("%w: detalles de %s: %v", domain.ErrStoreUnavailable, name, err)
	}
	if details == nil {
		return nil, domain.ErrNotFound
	}
	return details, nil
}

// Docs devuelve los documentos crudos de un tipo (ledgers, parties, stocks)
// en el orden de sincronización. Una empresa sin documentos devuelve lista
// vacía, no error.
func (uc *UseCase) Docs(name, kind string) ([]json.RawMessage, error) {
	switch kind {
	case repository.DocStocks, repository.DocLedgers, repository.DocParties:
	default:
		return nil, domain.ErrInvalidInput
	}
	key, err := uc.repo.ResolveKey(name)
	if err != nil {
		return nil, fmt.Errorf("%w: resolver empresa: %v", domain.ErrStoreUnavailable, err)
	}
	docs, err := uc.repo.ListDocs(key, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %s de %s: %v", domain.ErrStoreUnavailable, kind, name, err)
	}
	if docs == nil {
		docs = []json.RawMessage{}
	}
	return docs, nil
}
