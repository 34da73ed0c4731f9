package usecase

import (
	"context"

	"ritual/internal/modules/device/domain"
	"ritual/internal/modules/device/dto"
	devicein "ritual/internal/modules/device/port/in"
	"ritual/internal/modules/device/service"
)

type Interactor struct {
	svc *service.Dispatcher
}

func NewInteractor(svc *service.Dispatcher) devicein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Dispatch(ctx context.Context, input dto.SignalInput) (dto.DispatchOutput, error) {
	signal, handled, err := i.svc.Dispatch(ctx, domain.Signal{
		Kind:      domain.Kind(input.Kind),
		Package:   input.Package,
		TS:        input.TS,
		Replacing: input.Replacing,
	})
	if err != nil {
		return dto.DispatchOutput{}, err
	}
	return dto.DispatchOutput{Kind: string(signal.Kind), TS: signal.TS, Handled: handled}, nil
}
