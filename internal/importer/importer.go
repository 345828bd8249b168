// Package importer writes validated session files straight into the
// database, for bulk loads on the server host without going through HTTP.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/storage"
	"github.com/meltforce/liftlog/internal/upload"
	"github.com/meltforce/liftlog/internal/validation"
)

// Inserter is the storage the importer writes to. *storage.DB satisfies it.
type Inserter interface {
	InsertSession(ctx context.Context, s *models.WorkoutSession) error
}

// Importer applies the same acceptance rules as the ingest endpoint and
// satisfies upload.Sender, so the upload walker can drive it.
type Importer struct {
	db  Inserter
	log *slog.Logger
}

var _ upload.Sender = (*Importer)(nil)

// New creates an Importer.
func New(db Inserter, log *slog.Logger) *Importer {
	return &Importer{db: db, log: log}
}

// SendSession validates doc and inserts it. Rejections use the status the
// ingest endpoint would answer with; a stored duplicate is
// upload.ErrAlreadyStored.
func (i *Importer) SendSession(ctx context.Context, doc []byte) ([]string, error) {
	var input any
	if err := json.Unmarshal(doc, &input); err != nil {
		return nil, &upload.RejectedError{Status: http.StatusBadRequest, Errors: []string{"invalid JSON: " + err.Error()}}
	}

	report := validation.ValidateAll(input)
	if !report.Schema.IsValid {
		return nil, &upload.RejectedError{Status: http.StatusBadRequest, Errors: report.Schema.Errors}
	}
	if !report.Linking.IsValid {
		return nil, &upload.RejectedError{Status: http.StatusUnprocessableEntity, Errors: report.Linking.Errors}
	}

	session := report.Session()
	if err := i.db.InsertSession(ctx, session); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, upload.ErrAlreadyStored
		}
		if errors.Is(err, storage.ErrDuplicateGoal) {
			return nil, &upload.RejectedError{Status: http.StatusUnprocessableEntity, Errors: []string{err.Error()}}
		}
		return nil, err
	}
	i.log.Debug("session inserted", "session_id", session.SessionID)

	if report.HIIT.Errors == nil {
		return []string{}, nil
	}
	return report.HIIT.Errors, nil
}
