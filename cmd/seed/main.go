// seed crea el esquema de la API y carga una empresa de demostración con su
// catálogo y lotes, para levantar un entorno local sin depender del job de
// sincronización Tally.
//
// Uso: go run ./cmd/seed [-demo]
// Sin flags solo aplica el esquema; con -demo inserta además los datos de ejemplo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/keys"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
	"github.com/cochin-traders/trader-api/internal/infrastructure/postgres"
	"github.com/cochin-traders/trader-api/pkg/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		company_key    TEXT PRIMARY KEY,
		display_name   TEXT NOT NULL,
		details        JSONB,
		last_synced_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS company_docs (
		company_key TEXT NOT NULL,
		kind        TEXT NOT NULL,
		seq         INT  NOT NULL,
		doc         JSONB NOT NULL,
		PRIMARY KEY (company_key, kind, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_batches (
		company_key    TEXT NOT NULL,
		item_key       TEXT NOT NULL,
		company_name   TEXT NOT NULL,
		stock_item     TEXT NOT NULL,
		batches        JSONB NOT NULL,
		total_quantity INT  NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (company_key, item_key)
	)`,
	`CREATE TABLE IF NOT EXISTS punch_ins (
		id             TEXT PRIMARY KEY,
		employee_name  TEXT NOT NULL,
		employee_phone TEXT NOT NULL DEFAULT '',
		company_name   TEXT NOT NULL,
		shop_name      TEXT NOT NULL,
		amount         NUMERIC NOT NULL DEFAULT 0,
		punch_time     TEXT NOT NULL,
		punch_date     TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
}

func main() {
	demo := flag.Bool("demo", false, "insertar empresa y catálogo de demostración")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fail("aplicar esquema: %v", err)
		}
	}
	fmt.Println("esquema aplicado")

	if !*demo {
		return
	}
	if err := seedDemo(ctx, pool); err != nil {
		fail("datos de demostración: %v", err)
	}
	fmt.Println("datos de demostración insertados")
}

// seedDemo inserta una empresa con el nombre legible que enviaría la app y los
// documentos crudos como los deja la sincronización; los lotes entran por el
// mismo repositorio que usa la API para que las claves queden saneadas igual.
func seedDemo(ctx context.Context, pool *pgxpool.Pool) error {
	const display = "Cochin Traders"
	companyKey := keys.Slug(display)

	_, err := pool.Exec(ctx, `
		INSERT INTO companies (company_key, display_name, details, last_synced_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (company_key) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			details = EXCLUDED.details,
			last_synced_at = now()`,
		companyKey, display,
		[]byte(`{"Name":"Cochin Traders","Address":"MG Road, Kochi","GSTIN":"32AAAAA0000A1Z5"}`),
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}

	stocks := []string{
		`{"$Name":"Blue Shirt","$Parent":"Shirts","$ClosingRate":450.0,"$OpeningBalance":120,"closingBalance":96}`,
		`{"$Name":"Red Shirt","$Parent":"Shirts","$ClosingRate":420.0,"$OpeningBalance":80,"closingBalance":75}`,
		`{"Name":"Black Trouser","Parent":"Trousers","ClosingRate":"780.50","OpeningBalance":"60","ClosingBalance":"41"}`,
	}
	ledgers := []string{
		`{"$Name":"Kochi Retail LLP","$Parent":"Sundry Debtors"}`,
		`{"$Name":"Ernakulam Garments","$Parent":"Sundry Debtors"}`,
	}
	if err := insertDocs(ctx, pool, companyKey, repository.DocStocks, stocks); err != nil {
		return err
	}
	if err := insertDocs(ctx, pool, companyKey, repository.DocLedgers, ledgers); err != nil {
		return err
	}
	if err := insertDocs(ctx, pool, companyKey, repository.DocParties, ledgers); err != nil {
		return err
	}

	now := time.Now().UTC()
	batchRepo := postgres.NewBatchRepository(pool)
	demoBatches := map[string][]entity.Batch{
		"Blue Shirt":    {{Size: 38, Quantity: 12}, {Size: 40, Quantity: 9}, {Size: 42, Quantity: 4}},
		"Black Trouser": {{Size: 32, Quantity: 7}, {Size: 34, Quantity: 10}},
	}
	for item, list := range demoBatches {
		rec := &entity.BatchRecord{
			CompanyName:   display,
			StockItem:     item,
			Batches:       list,
			TotalQuantity: entity.SumQuantities(list),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := batchRepo.Upsert(companyKey, keys.Sanitize(item), rec); err != nil {
			return err
		}
	}
	return nil
}

func insertDocs(ctx context.Context, pool *pgxpool.Pool, companyKey, kind string, docs []string) error {
	if _, err := pool.Exec(ctx,
		`DELETE FROM company_docs WHERE company_key = $1 AND kind = $2`, companyKey, kind); err != nil {
		return fmt.Errorf("clear %s docs: %w", kind, err)
	}
	for i, doc := range docs {
		_, err := pool.Exec(ctx, `
			INSERT INTO company_docs (company_key, kind, seq, doc)
			VALUES ($1, $2, $3, $4)`,
			companyKey, kind, i, []byte(doc),
		)
		if err != nil {
			return fmt.Errorf("insert %s doc: %w", kind, err)
		}
	}
	return nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
