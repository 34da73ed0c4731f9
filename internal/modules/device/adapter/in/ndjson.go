package in

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	devicedto "ritual/internal/modules/device/dto"
	devicein "ritual/internal/modules/device/port/in"
)

const maxLineBytes = 1 << 20

// Ingest dispatches one JSON signal per line. Blank lines are skipped; the
// first malformed or rejected line stops the stream and its line number is
// reported.
func Ingest(ctx context.Context, r io.Reader, usecase devicein.Usecase) (devicedto.IngestOutput, error) {
	out := devicedto.IngestOutput{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
		input := devicedto.SignalInput{}
		if err := json.Unmarshal(raw, &input); err != nil {
			return out, fmt.Errorf("line %d: decode signal: %w", line, err)
		}
		result, err := usecase.Dispatch(ctx, input)
		if err != nil {
			return out, fmt.Errorf("line %d: %w", line, err)
		}
		out.Processed++
		if result.Handled {
			out.Handled++
		}
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("read signals: %w", err)
	}
	return out, nil
}
