package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL. Los lotes se
// guardan como JSONB; la tolerancia de forma (lista u objeto indexado, herencia
// de los volcados antiguos del sync) se resuelve aquí, en la frontera del
// almacén, y hacia arriba solo viaja una lista ordenada.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Get devuelve el registro bajo (companyKey, itemKey), o (nil, nil) si nunca
// se escribió.
func (r *BatchRepo) Get(companyKey, itemKey string) (*entity.BatchRecord, error) {
	query := `
		SELECT company_name, stock_item, batches, total_quantity, created_at, updated_at
		FROM stock_batches WHERE company_key = $1 AND item_key = $2`
	var rec entity.BatchRecord
	var raw []byte
	err := r.q.QueryRow(context.Background(), query, companyKey, itemKey).Scan(
		&rec.CompanyName, &rec.StockItem, &raw, &rec.TotalQuantity, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batches: %w", err)
	}
	rec.Batches = DecodeBatchList(raw)
	return &rec, nil
}

// ListByCompany devuelve todos los registros de una empresa en una sola
// consulta, en orden estable por clave de artículo.
func (r *BatchRepo) ListByCompany(companyKey string) ([]entity.BatchRecord, error) {
	query := `
		SELECT company_name, stock_item, batches, total_quantity, created_at, updated_at
		FROM stock_batches WHERE company_key = $1
		ORDER BY item_key`
	rows, err := r.q.Query(context.Background(), query, companyKey)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []entity.BatchRecord
	for rows.Next() {
		var rec entity.BatchRecord
		var raw []byte
		if err := rows.Scan(&rec.CompanyName, &rec.StockItem, &raw,
			&rec.TotalQuantity, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batches: %w", err)
		}
		rec.Batches = DecodeBatchList(raw)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return out, nil
}

// Upsert reemplaza por completo el registro bajo la clave. Siempre persiste
// los lotes como lista JSON, nunca como objeto indexado.
func (r *BatchRepo) Upsert(companyKey, itemKey string, rec *entity.BatchRecord) error {
	raw, err := json.Marshal(rec.Batches)
	if err != nil {
		return fmt.Errorf("marshal batches: %w", err)
	}
	query := `
		INSERT INTO stock_batches
			(company_key, item_key, company_name, stock_item, batches, total_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (company_key, item_key) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			stock_item = EXCLUDED.stock_item,
			batches = EXCLUDED.batches,
			total_quantity = EXCLUDED.total_quantity,
			updated_at = EXCLUDED.updated_at`
	_, err = r.q.Exec(context.Background(), query,
		companyKey, itemKey, rec.CompanyName, rec.StockItem, raw,
		rec.TotalQuantity, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert batches: %w", err)
	}
	return nil
}

// DecodeBatchList normaliza el campo batches persistido a lista ordenada.
// Los volcados antiguos del sync a veces guardaron un objeto indexado
// ({"0": {...}, "1": {...}}) en lugar de una lista; aquí se acepta cualquiera
// de las dos formas y la ambigüedad no sube a la lógica de negocio.
func DecodeBatchList(raw []byte) []entity.Batch {
	if len(raw) == 0 {
		return []entity.Batch{}
	}
	var list []entity.Batch
	if err := json.Unmarshal(raw, &list); err == nil {
		if list == nil {
			return []entity.Batch{}
		}
		return list
	}
	var keyed map[string]entity.Batch
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return []entity.Batch{}
	}
	ks := make([]string, 0, len(keyed))
	for k := range keyed {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool {
		a, errA := strconv.Atoi(ks[i])
		b, errB := strconv.Atoi(ks[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ks[i] < ks[j]
	})
	out := make([]entity.Batch, 0, len(ks))
	for _, k := range ks {
		out = append(out, keyed[k])
	}
	return out
}
