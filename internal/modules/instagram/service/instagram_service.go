package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ritual/internal/modules/instagram/domain"
	instagramout "ritual/internal/modules/instagram/port/out"
)

type InstagramService struct {
	log       instagramout.EventLog
	detection instagramout.DetectionToggle
	logger    *zap.Logger
}

func NewInstagramService(log instagramout.EventLog, detection instagramout.DetectionToggle, logger *zap.Logger) *InstagramService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstagramService{log: log, detection: detection, logger: logger}
}

// HandlePackageChange records an install or uninstall of Instagram. Other
// packages, in-place updates and a disabled detection toggle are ignored.
func (s *InstagramService) HandlePackageChange(ctx context.Context, pkg string, installed, replacing bool, ts int64) (bool, error) {
	if strings.TrimSpace(pkg) != domain.Package || replacing {
		return false, nil
	}
	enabled, err := s.detection.DetectionEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("read detection setting: %w", err)
	}
	if !enabled {
		s.logger.Debug("instagram detection disabled", zap.Int64("ts", ts))
		return false, nil
	}
	event := domain.Event{TS: ts, Type: domain.TypeUninstalled}
	if installed {
		event.Type = domain.TypeInstalled
	}
	if err := s.log.Append(ctx, event); err != nil {
		return false, fmt.Errorf("append instagram event: %w", err)
	}
	s.logger.Debug("instagram event recorded", zap.String("type", string(event.Type)), zap.Int64("ts", ts))
	return true, nil
}

// SaveRelapseReason attaches reason to every event at ts. No match is not an
// error and leaves the log untouched.
func (s *InstagramService) SaveRelapseReason(ctx context.Context, ts int64, reason string, notes *string) (int, error) {
	events, err := s.log.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	matched := domain.AttachReason(events, ts, strings.TrimSpace(reason), notes)
	if matched == 0 {
		s.logger.Debug("relapse reason without matching event", zap.Int64("ts", ts))
		return 0, nil
	}
	if err := s.log.Replace(ctx, events); err != nil {
		return 0, fmt.Errorf("save relapse reason: %w", err)
	}
	return matched, nil
}

func (s *InstagramService) Events(ctx context.Context) ([]domain.Event, error) {
	return s.log.ReadAll(ctx)
}

func (s *InstagramService) Installed(ctx context.Context) (bool, error) {
	events, err := s.log.ReadAll(ctx)
	if err != nil {
		return false, err
	}
	return domain.Installed(events), nil
}
