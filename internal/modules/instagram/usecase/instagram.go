package usecase

import (
	"context"

	"ritual/internal/modules/instagram/dto"
	instagramin "ritual/internal/modules/instagram/port/in"
	"ritual/internal/modules/instagram/service"
)

type Interactor struct {
	svc *service.InstagramService
}

func NewInteractor(svc *service.InstagramService) instagramin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) HandlePackageChange(ctx context.Context, input dto.PackageChangeInput) (bool, error) {
	return i.svc.HandlePackageChange(ctx, input.Package, input.Installed, input.Replacing, input.TS)
}

func (i *Interactor) ListEvents(ctx context.Context) ([]dto.EventOutput, error) {
	events, err := i.svc.Events(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventOutput, 0, len(events))
	for _, e := range events {
		out = append(out, dto.EventOutput{
			TS:             e.TS,
			Type:           string(e.Type),
			ReasonCaptured: e.ReasonCaptured,
			Reason:         e.Reason,
			Notes:          e.Notes,
		})
	}
	return out, nil
}

func (i *Interactor) SaveRelapseReason(ctx context.Context, input dto.RelapseReasonInput) (dto.RelapseReasonOutput, error) {
	matched, err := i.svc.SaveRelapseReason(ctx, input.TS, input.Reason, input.Notes)
	if err != nil {
		return dto.RelapseReasonOutput{}, err
	}
	return dto.RelapseReasonOutput{Matched: matched}, nil
}

func (i *Interactor) Installed(ctx context.Context) (bool, error) {
	return i.svc.Installed(ctx)
}
