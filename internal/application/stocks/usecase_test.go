package stocks_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cochin-traders/trader-api/internal/application/stocks"
	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/keys"
)

type fakeCatalog struct {
	items []entity.StockItem
	err   error
	calls int
}

func (f *fakeCatalog) FetchStocks(string) ([]entity.StockItem, error) {
	f.calls++
	return f.items, f.err
}

type fakeCompanies struct{}

func (fakeCompanies) ResolveKey(name string) (string, error) { return keys.Sanitize(name), nil }

// Los dobles cubren exactamente los puertos que pide el lector.
var (
	_ stocks.KeyResolver   = fakeCompanies{}
	_ stocks.CatalogSource = (*fakeCatalog)(nil)
)

type fakeBatches struct {
	recs  []entity.BatchRecord
	calls int
}

func (f *fakeBatches) Get(string, string) (*entity.BatchRecord, error) { return nil, nil }
func (f *fakeBatches) Upsert(string, string, *entity.BatchRecord) error {
	return errors.New("solo lectura en este test")
}
func (f *fakeBatches) ListByCompany(string) ([]entity.BatchRecord, error) {
	f.calls++
	return f.recs, nil
}

func item(name string, rate float64) entity.StockItem {
	return entity.StockItem{Name: name, ParentGroup: "Shirts", Rate: decimal.NewFromFloat(rate)}
}

func TestListWithBatches_CruceYOrden(t *testing.T) {
	catalog := &fakeCatalog{items: []entity.StockItem{
		item("Blue Shirt", 450),
		item("Red Shirt", 300),
		item("Green Shirt", 275),
	}}
	repo := &fakeBatches{recs: []entity.BatchRecord{
		{StockItem: "Red Shirt", Batches: []entity.Batch{{Size: 2, Quantity: 5}}, TotalQuantity: 5},
		{StockItem: "Blue Shirt", Batches: []entity.Batch{{Size: 1, Quantity: 3}, {Size: 4, Quantity: 2}}, TotalQuantity: 5},
	}}
	uc := stocks.NewUseCase(fakeCompanies{}, repo, catalog)

	out, err := uc.ListWithBatches("Cochin Traders")
	require.NoError(t, err)
	require.Len(t, out, 3)

	// El orden del catálogo se conserva tal cual; no se reordena.
	assert.Equal(t, "Blue Shirt", out[0].Name)
	assert.Equal(t, "Red Shirt", out[1].Name)
	assert.Equal(t, "Green Shirt", out[2].Name)

	assert.Equal(t, []entity.Batch{{Size: 1, Quantity: 3}, {Size: 4, Quantity: 2}}, out[0].Batches)
	assert.Equal(t, 5, out[0].TotalQuantity)
	assert.True(t, decimal.NewFromFloat(450).Equal(out[0].Rate), "los campos del catálogo pasan sin tocar")

	assert.Equal(t, 1, repo.calls, "una sola lectura masiva de lotes, no una por artículo")
	assert.Equal(t, 1, catalog.calls)
}

// Escenario extremo a extremo de la especificación: "Blue Shirt" sin registro
// previo sale con lotes vacíos y total cero, nunca como error.
func TestListWithBatches_ArticuloSinRegistro(t *testing.T) {
	catalog := &fakeCatalog{items: []entity.StockItem{item("Blue Shirt", 450)}}
	uc := stocks.NewUseCase(fakeCompanies{}, &fakeBatches{}, catalog)

	out, err := uc.ListWithBatches("Cochin Traders")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotNil(t, out[0].Batches)
	assert.Empty(t, out[0].Batches)
	assert.Zero(t, out[0].TotalQuantity)
}

// El cruce es por clave normalizada: el registro guardado bajo un nombre con
// espacios dobles alcanza al artículo del catálogo que normaliza igual.
func TestListWithBatches_CrucePorClaveNormalizada(t *testing.T) {
	catalog := &fakeCatalog{items: []entity.StockItem{item("Blue  Shirt", 450)}}
	repo := &fakeBatches{recs: []entity.BatchRecord{
		{StockItem: "Blue Shirt", Batches: []entity.Batch{{Size: 1, Quantity: 2}}, TotalQuantity: 2},
	}}
	uc := stocks.NewUseCase(fakeCompanies{}, repo, catalog)

	out, err := uc.ListWithBatches("Cochin Traders")
	require.NoError(t, err)
	assert.Equal(t, 2, out[0].TotalQuantity)
}

func TestListWithBatches_FalloCatalogo(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("timeout")}
	uc := stocks.NewUseCase(fakeCompanies{}, &fakeBatches{}, catalog)

	_, err := uc.ListWithBatches("Cochin Traders")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable,
		"un catálogo caído es fallo de almacén, igual que los lotes")
}
