package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftlog/internal/storage"
	"github.com/meltforce/liftlog/internal/validation"
)

// IngestResponse is returned when a session is stored.
type IngestResponse struct {
	SessionID string   `json:"sessionId"`
	Warnings  []string `json:"warnings"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIngestWorkout validates and stores a session. Structural and
// linking failures reject the document; HIIT anomalies are returned as
// warnings alongside the stored session.
func (s *Server) handleIngestWorkout(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	report := validation.ValidateAll(body)
	if !report.Schema.IsValid {
		writeJSON(w, http.StatusBadRequest, report.Schema)
		return
	}
	if !report.Linking.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, report.Linking)
		return
	}

	session := report.Session()
	if err := s.db.InsertSession(r.Context(), session); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "session already exists"})
			return
		}
		if errors.Is(err, storage.ErrDuplicateGoal) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		s.log.Error("insert session", "session_id", session.SessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	warnings := report.HIIT.Errors
	if warnings == nil {
		warnings = []string{}
	}
	s.log.Info("session stored",
		"session_id", session.SessionID,
		"blocks", len(session.WorkoutBlocks),
		"warnings", len(warnings),
	)
	writeJSON(w, http.StatusCreated, IngestResponse{SessionID: session.SessionID, Warnings: warnings})
}

func (s *Server) handleValidateWorkout(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateAll(body))
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r, 0, 30)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	tag := r.URL.Query().Get("tag")
	sessions, err := s.db.QuerySessions(r.Context(), start, end, tag)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	session, err := s.db.GetSession(r.Context(), sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	err = s.db.DeleteSession(r.Context(), sessionID)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQueryGoals(w http.ResponseWriter, r *http.Request) {
	var exerciseID *uuid.UUID
	if v := r.URL.Query().Get("exercise"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
			return
		}
		exerciseID = &id
	}

	goals, err := s.db.QueryGoals(r.Context(), exerciseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleTrainingSummary(w http.ResponseWriter, r *http.Request) {
	bucket := "1 month"
	switch r.URL.Query().Get("bucket") {
	case "week":
		bucket = "1 week"
	case "month", "":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bucket must be week or month"})
		return
	}

	start, end, err := parseTimeRange(r, 6, 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	periods, err := s.db.GetTrainingSummary(r.Context(), start, end, bucket)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, periods)
}

// decodeBody reads an arbitrary JSON document. On failure it writes the
// 400 response itself.
func decodeBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads the start and end query parameters. end defaults to
// now; start defaults to end minus the given months and days.
func parseTimeRange(r *http.Request, months, days int) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = parseTimeParam(endStr, true)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if startStr == "" {
		start = end.AddDate(0, -months, -days)
		return
	}
	start, err = parseTimeParam(startStr, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return
}

// parseTimeParam accepts RFC 3339 or a bare date. A bare end date covers
// the whole day.
func parseTimeParam(v string, endOfDay bool) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24 * time.Hour)
	}
	return t, nil
}
