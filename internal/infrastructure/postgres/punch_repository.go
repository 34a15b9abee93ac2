package postgres

import (
	"context"
	"fmt"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
)

var _ repository.PunchRepository = (*PunchRepo)(nil)

// PunchRepo implementación de PunchRepository sobre PostgreSQL.
type PunchRepo struct {
	q Querier
}

// NewPunchRepository construye el adaptador de fichajes.
func NewPunchRepository(q Querier) *PunchRepo {
	return &PunchRepo{q: q}
}

// Create persiste un fichaje de visita.
func (r *PunchRepo) Create(p *entity.PunchIn) error {
	query := `
		INSERT INTO punch_ins
			(id, employee_name, employee_phone, company_name, shop_name, amount, punch_time, punch_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.EmployeeName, p.EmployeePhone, p.CompanyName, p.ShopName,
		p.Amount, p.Time, p.Date, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert punch in: %w", err)
	}
	return nil
}
