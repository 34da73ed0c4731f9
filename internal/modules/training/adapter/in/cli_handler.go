package in

import (
	"context"

	trainingdto "ritual/internal/modules/training/dto"
	trainingin "ritual/internal/modules/training/port/in"
)

type CLIHandler struct {
	usecase trainingin.Usecase
}

func NewCLIHandler(usecase trainingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, minutes int) (trainingdto.TimerOutput, error) {
	return h.usecase.Start(ctx, trainingdto.StartInput{Minutes: minutes})
}

func (h CLIHandler) Break(ctx context.Context, ts int64) (trainingdto.TimerOutput, error) {
	return h.usecase.MarkBreak(ctx, trainingdto.BreakInput{TS: ts})
}

func (h CLIHandler) Stats(ctx context.Context) (trainingdto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) History(ctx context.Context) ([]trainingdto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx)
}
