package in

import (
	"context"

	"ritual/internal/modules/instagram/dto"
)

type Usecase interface {
	HandlePackageChange(ctx context.Context, input dto.PackageChangeInput) (bool, error)
	ListEvents(ctx context.Context) ([]dto.EventOutput, error)
	SaveRelapseReason(ctx context.Context, input dto.RelapseReasonInput) (dto.RelapseReasonOutput, error)
	Installed(ctx context.Context) (bool, error)
}
