package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	deviceinadapter "ritual/internal/modules/device/adapter/in"
	instagramdto "ritual/internal/modules/instagram/dto"
	settingsdto "ritual/internal/modules/settings/dto"
	summarydto "ritual/internal/modules/summary/dto"
	trainingdto "ritual/internal/modules/training/dto"
	"ritual/internal/platform/calendar"
	"ritual/internal/platform/clock"
	apperrors "ritual/internal/platform/errors"
)

const defaultSummaryDays = 7

// postSignals ingests an NDJSON body of device signals.
func (s *Server) postSignals(w http.ResponseWriter, r *http.Request) {
	out, err := deviceinadapter.Ingest(r.Context(), r.Body, s.deps.Device)
	if err != nil {
		// Lines before the failing one were applied.
		respondJSON(w, s.logger, map[string]any{
			"error":     err.Error(),
			"processed": out.Processed,
			"handled":   out.Handled,
		}, errorStatus(err))
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

// getSummaries answers ?startMs=&endMs=; both default to the last seven days.
func (s *Server) getSummaries(w http.ResponseWriter, r *http.Request) {
	start, end := calendar.LastDays(clock.NowMillis(s.deps.Clock), defaultSummaryDays)
	var err error
	if start, err = queryMillis(r, "startMs", start); err != nil {
		respondError(w, s.logger, err)
		return
	}
	if end, err = queryMillis(r, "endMs", end); err != nil {
		respondError(w, s.logger, err)
		return
	}
	days, err := s.deps.Summary.GetDailySummaries(r.Context(), summarydto.RangeInput{StartMs: start, EndMs: end})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, days, http.StatusOK)
}

func (s *Server) exportSummary(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Summary.ExportDay(r.Context(), summarydto.ExportInput{DayKey: chi.URLParam(r, "day")})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func (s *Server) getInstagramEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.deps.Instagram.ListEvents(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, events, http.StatusOK)
}

func (s *Server) postRelapseReason(w http.ResponseWriter, r *http.Request) {
	input := instagramdto.RelapseReasonInput{}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, s.logger, err)
		return
	}
	if input.TS <= 0 {
		respondError(w, s.logger, fmt.Errorf("%w: ts is required", apperrors.ErrInvalidInput))
		return
	}
	out, err := s.deps.Instagram.SaveRelapseReason(r.Context(), input)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Settings.Get(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

// patchSettings merges a partial JSON object; unknown or non-boolean keys are
// ignored.
func (s *Server) patchSettings(w http.ResponseWriter, r *http.Request) {
	values := map[string]any{}
	if err := decodeJSON(r, &values); err != nil {
		respondError(w, s.logger, err)
		return
	}
	out, err := s.deps.Settings.Update(r.Context(), settingsdto.UpdateInput{Values: values})
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func (s *Server) startTraining(w http.ResponseWriter, r *http.Request) {
	input := trainingdto.StartInput{}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, s.logger, err)
		return
	}
	out, err := s.deps.Training.Start(r.Context(), input)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func (s *Server) markTrainingBreak(w http.ResponseWriter, r *http.Request) {
	input := trainingdto.BreakInput{}
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, s.logger, err)
		return
	}
	out, err := s.deps.Training.MarkBreak(r.Context(), input)
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func (s *Server) getTrainingStats(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Training.Stats(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func (s *Server) getTrainingSessions(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Training.ListSessions(r.Context())
	if err != nil {
		respondError(w, s.logger, err)
		return
	}
	respondJSON(w, s.logger, out, http.StatusOK)
}

func queryMillis(r *http.Request, name string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be epoch milliseconds", apperrors.ErrInvalidInput, name)
	}
	return v, nil
}
