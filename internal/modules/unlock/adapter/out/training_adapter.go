package out

import (
	"context"

	trainingdto "ritual/internal/modules/training/dto"
	trainingin "ritual/internal/modules/training/port/in"
	unlockout "ritual/internal/modules/unlock/port/out"
)

type TrainingAdapter struct {
	training trainingin.Usecase
}

func NewTrainingAdapter(training trainingin.Usecase) unlockout.TrainingBreaker {
	return &TrainingAdapter{training: training}
}

func (a *TrainingAdapter) MarkBreak(ctx context.Context, ts int64) error {
	_, err := a.training.MarkBreak(ctx, trainingdto.BreakInput{TS: ts})
	return err
}
