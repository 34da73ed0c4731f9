package in

import (
	"context"
	"io"

	devicedto "ritual/internal/modules/device/dto"
	devicein "ritual/internal/modules/device/port/in"
)

type CLIHandler struct {
	usecase devicein.Usecase
}

func NewCLIHandler(usecase devicein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Signal(ctx context.Context, kind, pkg string, ts int64, replacing bool) (devicedto.DispatchOutput, error) {
	return h.usecase.Dispatch(ctx, devicedto.SignalInput{Kind: kind, Package: pkg, TS: ts, Replacing: replacing})
}

func (h CLIHandler) Ingest(ctx context.Context, r io.Reader) (devicedto.IngestOutput, error) {
	return Ingest(ctx, r, h.usecase)
}
