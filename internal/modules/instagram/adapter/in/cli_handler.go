package in

import (
	"context"

	instagramdto "ritual/internal/modules/instagram/dto"
	instagramin "ritual/internal/modules/instagram/port/in"
)

type CLIHandler struct {
	usecase instagramin.Usecase
}

func NewCLIHandler(usecase instagramin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]instagramdto.EventOutput, error) {
	return h.usecase.ListEvents(ctx)
}

// Reason saves a relapse reason. Empty notes are stored as absent.
func (h CLIHandler) Reason(ctx context.Context, ts int64, reason, notes string) (instagramdto.RelapseReasonOutput, error) {
	input := instagramdto.RelapseReasonInput{TS: ts, Reason: reason}
	if notes != "" {
		input.Notes = &notes
	}
	return h.usecase.SaveRelapseReason(ctx, input)
}
