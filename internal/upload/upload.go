package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/meltforce/liftlog/internal/validation"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal     int
	FilesUploaded  int
	FilesSkipped   int
	FilesDuplicate int
	FilesInvalid   int
	FilesErrored   int

	// Warnings counts soft HIIT anomalies across all valid files.
	Warnings int
}

// Sender posts a session document. *Client satisfies it.
type Sender interface {
	SendSession(ctx context.Context, doc []byte) ([]string, error)
}

// Uploader walks a directory of session JSON files, validates each one
// locally and POSTs the valid ones to the LiftLog server.
type Uploader struct {
	client Sender
	state  *StateDB
	root   string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. client may be nil in dry-run mode.
func New(client Sender, state *StateDB, root string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		root:   root,
		dryRun: dryRun,
		log:    log,
	}
}

// Run processes every *.json file under root. Per-file failures are
// counted in Stats; only a failure to walk the tree or a cancelled ctx
// is returned.
func (u *Uploader) Run(ctx context.Context) (*Stats, error) {
	var files []string
	err := filepath.WalkDir(u.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != u.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return &u.stats, fmt.Errorf("walking %s: %w", u.root, err)
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return &u.stats, err
		}
		u.processFile(ctx, f)
	}
	return &u.stats, nil
}

func (u *Uploader) processFile(ctx context.Context, path string) {
	u.stats.FilesTotal++
	relPath, _ := filepath.Rel(u.root, path)

	data, err := os.ReadFile(path)
	if err != nil {
		u.log.Warn("read failed", "file", relPath, "error", err)
		u.stats.FilesErrored++
		return
	}
	size := int64(len(data))
	hash := Hash(data)

	prev, err := u.state.Lookup(relPath)
	if err != nil {
		u.log.Warn("state check failed", "file", relPath, "error", err)
		u.stats.FilesErrored++
		return
	}
	if prev.Matches(size, hash) {
		u.stats.FilesSkipped++
		return
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		u.log.Warn("parse failed", "file", relPath, "error", err)
		u.stats.FilesInvalid++
		return
	}

	report := validation.ValidateAll(doc)
	if !report.Schema.IsValid {
		u.log.Warn("schema invalid", "file", relPath, "errors", report.Schema.Errors)
		u.stats.FilesInvalid++
		return
	}
	if !report.Linking.IsValid {
		u.log.Warn("linking invalid", "file", relPath, "errors", report.Linking.Errors)
		u.stats.FilesInvalid++
		return
	}
	for _, w := range report.HIIT.Errors {
		u.log.Warn("hiit warning", "file", relPath, "warning", w)
	}
	u.stats.Warnings += len(report.HIIT.Errors)

	sessionID := report.Session().SessionID
	if prev != nil && prev.SessionID != sessionID {
		u.log.Warn("file now holds a different session", "file", relPath,
			"previous_session_id", prev.SessionID, "session_id", sessionID)
	}
	if u.dryRun {
		u.log.Info("valid", "file", relPath, "session_id", sessionID)
		return
	}

	if _, err := u.client.SendSession(ctx, data); err != nil {
		if !errors.Is(err, ErrAlreadyStored) {
			u.log.Warn("upload failed", "file", relPath, "error", err)
			u.stats.FilesErrored++
			return
		}
		u.stats.FilesDuplicate++
	} else {
		u.stats.FilesUploaded++
		u.log.Info("uploaded", "file", relPath, "session_id", sessionID)
	}

	if err := u.state.Record(relPath, FileRecord{Size: size, Hash: hash, SessionID: sessionID}); err != nil {
		u.log.Warn("state update failed", "file", relPath, "error", err)
	}
}
