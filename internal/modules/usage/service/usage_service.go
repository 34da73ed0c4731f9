package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ritual/internal/modules/usage/domain"
	usageout "ritual/internal/modules/usage/port/out"
	apperrors "ritual/internal/platform/errors"
)

const SystemUIPackage = "com.android.systemui"

type UsageService struct {
	log      usageout.TransitionLog
	excluded []string
	logger   *zap.Logger
}

// NewUsageService excludes selfPackage and the system UI from first-app lookups.
func NewUsageService(log usageout.TransitionLog, selfPackage string, logger *zap.Logger) *UsageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	excluded := []string{SystemUIPackage}
	if selfPackage != "" {
		excluded = append(excluded, selfPackage)
	}
	return &UsageService{log: log, excluded: excluded, logger: logger}
}

func (s *UsageService) Record(ctx context.Context, pkg string, kind domain.Kind, ts int64) error {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return fmt.Errorf("%w: package is required", apperrors.ErrInvalidInput)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown transition kind %q", apperrors.ErrInvalidInput, kind)
	}
	if err := s.log.Append(ctx, domain.Transition{Package: pkg, Kind: kind, TS: ts}); err != nil {
		return fmt.Errorf("append transition: %w", err)
	}
	s.logger.Debug("transition recorded", zap.String("package", pkg), zap.String("kind", string(kind)), zap.Int64("ts", ts))
	return nil
}

func (s *UsageService) ForDay(ctx context.Context, dayStart, dayEnd int64) (domain.DayUsage, error) {
	transitions, err := s.log.ReadAll(ctx)
	if err != nil {
		return domain.DayUsage{}, err
	}
	return domain.ForDay(transitions, dayStart, dayEnd), nil
}

func (s *UsageService) FirstForeground(ctx context.Context, start, end int64) (domain.Foreground, bool, error) {
	transitions, err := s.log.ReadAll(ctx)
	if err != nil {
		return domain.Foreground{}, false, err
	}
	fg, ok := domain.FirstForeground(transitions, start, end, s.excluded...)
	return fg, ok, nil
}
