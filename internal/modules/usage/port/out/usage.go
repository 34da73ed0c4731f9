package out

import (
	"context"

	"ritual/internal/modules/usage/domain"
)

type TransitionLog interface {
	Append(ctx context.Context, t domain.Transition) error
	ReadAll(ctx context.Context) ([]domain.Transition, error)
}
