package repository

import "github.com/cochin-traders/trader-api/internal/domain/entity"

// PunchRepository define el puerto de persistencia de fichajes de visita.
type PunchRepository interface {
	Create(p *entity.PunchIn) error
}
