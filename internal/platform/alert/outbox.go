package alert

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ritual/internal/platform/id"
)

const defaultTailLimit = 50

// OutboxSink appends alerts as JSON lines so another process can pick them up.
type OutboxSink struct {
	path string
	ids  id.Generator
}

func NewOutboxSink(dataDir string, ids id.Generator) *OutboxSink {
	if ids == nil {
		ids = id.UUID{}
	}
	return &OutboxSink{path: filepath.Join(dataDir, "alerts.jsonl"), ids: ids}
}

func (s *OutboxSink) Path() string { return s.path }

func (s *OutboxSink) Send(_ context.Context, a Alert) error {
	if a.ID == "" {
		a.ID = s.ids.New()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create outbox dir: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open outbox: %w", err)
	}
	defer file.Close()
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}
	if _, err := file.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}
	return nil
}

// Tail returns up to limit of the most recent alerts, oldest first.
func (s *OutboxSink) Tail(_ context.Context, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = defaultTailLimit
	}
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Alert{}, nil
		}
		return nil, fmt.Errorf("open outbox: %w", err)
	}
	defer file.Close()

	buffer := make([]Alert, 0, limit)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		a := Alert{}
		if err := json.Unmarshal(line, &a); err != nil {
			continue
		}
		if len(buffer) < limit {
			buffer = append(buffer, a)
			continue
		}
		copy(buffer, buffer[1:])
		buffer[len(buffer)-1] = a
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan outbox: %w", err)
	}
	return buffer, nil
}
