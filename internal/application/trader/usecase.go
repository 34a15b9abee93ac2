package trader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
	"github.com/cochin-traders/trader-api/internal/domain/repository"
	"github.com/cochin-traders/trader-api/pkg/logger"
)

// Notifier avisa del fichaje por el canal externo. Mejor esfuerzo, igual que
// con los pedidos.
type Notifier interface {
	NotifyPunchIn(ctx context.Context, p *entity.PunchIn) error
}

// UseCase registra fichajes de visita de los vendedores.
type UseCase struct {
	repo          repository.PunchRepository
	notifier      Notifier
	log           *logger.Logger
	notifyTimeout time.Duration
}

// NewUseCase construye el caso de uso de fichajes.
func NewUseCase(repo repository.PunchRepository, notifier Notifier, log *logger.Logger, notifyTimeout time.Duration) *UseCase {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &UseCase{repo: repo, notifier: notifier, log: log, notifyTimeout: notifyTimeout}
}

// PunchInput es la entrada de un fichaje tal como la envía la app.
type PunchInput struct {
	EmployeeName  string
	EmployeePhone string
	CompanyName   string
	ShopName      string
	Amount        decimal.Decimal
	Time          string
	Date          string
}

// PunchIn valida y persiste el fichaje, y avisa por el canal externo sin que
// un fallo de aviso afecte al registro ya guardado.
func (uc *UseCase) PunchIn(ctx context.Context, in PunchInput) (*entity.PunchIn, error) {
	if in.EmployeeName == "" || in.CompanyName == "" || in.ShopName == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.PunchIn{
		ID:            uuid.New().String(),
		EmployeeName:  in.EmployeeName,
		EmployeePhone: in.EmployeePhone,
		CompanyName:   in.CompanyName,
		ShopName:      in.ShopName,
		Amount:        in.Amount,
		Time:          in.Time,
		Date:          in.Date,
		CreatedAt:     time.Now().UTC(),
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, fmt.Errorf("%w: guardar fichaje: %v", domain.ErrStoreUnavailable, err)
	}

	nctx, cancel := context.WithTimeout(ctx, uc.notifyTimeout)
	defer cancel()
	if err := uc.notifier.NotifyPunchIn(nctx, p); err != nil {
		uc.log.Error().Err(err).Str("empleado", in.EmployeeName).Msg("fallo al notificar el fichaje")
	}
	return p, nil
}
