package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/keys"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL. Lee lo que
// deja el job de sincronización Tally: una fila por empresa y los documentos
// crudos (stocks, ledgers, parties) como filas JSONB ordenadas.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// List devuelve todas las empresas sincronizadas.
func (r *CompanyRepo) List() ([]entity.Company, error) {
	query := `SELECT company_key, display_name, last_synced_at FROM companies`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.Key, &c.DisplayName, &c.LastSyncedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return out, nil
}

// GetDetails devuelve el documento companyDetails crudo, o (nil, nil) si la
// empresa no existe.
func (r *CompanyRepo) GetDetails(companyKey string) (json.RawMessage, error) {
	query := `SELECT details FROM companies WHERE company_key = $1`
	var details []byte
	err := r.q.QueryRow(context.Background(), query, companyKey).Scan(&details)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company details: %w", err)
	}
	return details, nil
}

// ListDocs devuelve los documentos crudos de un tipo en el orden en que los
// escribió la sincronización (columna seq).
func (r *CompanyRepo) ListDocs(companyKey, kind string) ([]json.RawMessage, error) {
	query := `
		SELECT doc FROM company_docs
		WHERE company_key = $1 AND kind = $2
		ORDER BY seq`
	rows, err := r.q.Query(context.Background(), query, companyKey, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s docs: %w", kind, err)
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s doc: %w", kind, err)
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s docs: %w", kind, err)
	}
	return out, nil
}

// ResolveKey traduce un nombre legible a clave de almacenamiento: clave
// exacta, luego slug minúsculo, luego barrido contra el nombre legible. Si
// nada coincide devuelve el nombre saneado, de modo que escrituras y lecturas
// posteriores de una empresa aún no sincronizada sigan siendo coherentes.
func (r *CompanyRepo) ResolveKey(name string) (string, error) {
	if ok, err := r.keyExists(name); err != nil {
		return "", err
	} else if ok {
		return name, nil
	}
	if slug := keys.Slug(name); slug != "" && slug != name {
		if ok, err := r.keyExists(slug); err != nil {
			return "", err
		} else if ok {
			return slug, nil
		}
	}
	query := `
		SELECT company_key FROM companies
		WHERE lower(btrim(display_name)) = lower(btrim($1))
		LIMIT 1`
	var key string
	err := r.q.QueryRow(context.Background(), query, name).Scan(&key)
	if err == nil {
		return key, nil
	}
	if !isNoRows(err) {
		return "", fmt.Errorf("resolve company key: %w", err)
	}
	return keys.Sanitize(name), nil
}

func (r *CompanyRepo) keyExists(key string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM companies WHERE company_key = $1)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("resolve company key: %w", err)
	}
	return exists, nil
}
