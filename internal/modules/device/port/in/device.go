package in

import (
	"context"

	"ritual/internal/modules/device/dto"
)

type Usecase interface {
	Dispatch(ctx context.Context, input dto.SignalInput) (dto.DispatchOutput, error)
}
