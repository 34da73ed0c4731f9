package usecase

import (
	"context"

	"ritual/internal/modules/unlock/domain"
	"ritual/internal/modules/unlock/dto"
	unlockin "ritual/internal/modules/unlock/port/in"
	"ritual/internal/modules/unlock/service"
)

type Interactor struct {
	svc *service.Reconstructor
}

func NewInteractor(svc *service.Reconstructor) unlockin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) HandleUnlocked(ctx context.Context, ts int64) (dto.SignalOutput, error) {
	event, state, err := i.svc.Unlocked(ctx, ts)
	if err != nil {
		return dto.SignalOutput{}, err
	}
	return toSignalOutput(event, state), nil
}

func (i *Interactor) HandleLocked(ctx context.Context, ts int64) (dto.SignalOutput, error) {
	event, state, err := i.svc.Locked(ctx, ts)
	if err != nil {
		return dto.SignalOutput{}, err
	}
	return toSignalOutput(event, state), nil
}

func (i *Interactor) RecordNotification(ctx context.Context, input dto.NotificationInput) (bool, error) {
	return i.svc.RecordNotification(ctx, input.Package, input.TS)
}

func (i *Interactor) ListEvents(ctx context.Context) ([]dto.EventOutput, error) {
	events, err := i.svc.Events(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, toEventOutput(e))
	}
	return out, nil
}

func (i *Interactor) Pending(ctx context.Context) (dto.PendingOutput, error) {
	state, err := i.svc.State(ctx)
	if err != nil {
		return dto.PendingOutput{}, err
	}
	return toPendingOutput(state), nil
}

func toSignalOutput(event *domain.Event, state domain.State) dto.SignalOutput {
	out := dto.SignalOutput{Pending: toPendingOutput(state)}
	if event != nil {
		e := toEventOutput(*event)
		out.Finalized = &e
	}
	return out
}

func toPendingOutput(state domain.State) dto.PendingOutput {
	out := dto.PendingOutput{LastUnlockMs: state.LastUnlockMs}
	if state.Pending != nil {
		out.Active = true
		out.StartMs = state.Pending.StartMs
		out.SincePrevMs = state.Pending.SincePrevMs
	}
	return out
}

func toEventOutput(e domain.Event) dto.EventOutput {
	return dto.EventOutput{
		TS:                 e.TS,
		SincePrevMs:        e.SincePrevMs,
		SessionMs:          e.SessionMs,
		Impulsive:          e.Impulsive,
		ImpulsiveConscious: e.ImpulsiveConscious,
		Reactive:           e.Reactive,
		ReactiveSourceApp:  e.ReactiveSourceApp,
		FirstApp:           e.FirstApp,
		FirstAppDelayMs:    e.FirstAppDelayMs,
	}
}
