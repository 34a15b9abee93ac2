package notify

import (
	"context"

	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// NopNotifier descarta los avisos; se usa en desarrollo local cuando no hay
// canal configurado.
type NopNotifier struct{}

func (NopNotifier) NotifyOrder(context.Context, *entity.Order) error { return nil }

func (NopNotifier) NotifyPunchIn(context.Context, *entity.PunchIn) error { return nil }
