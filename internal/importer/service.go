// Package importer orchestrates the two-step import flow: upload-and-validate
// stages a file under a per-owner session, process consumes the session and
// streams the file into a card set.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck/internal/csvimport"
	"github.com/flashdeck/flashdeck/internal/session"
)

// Config carries the tunables for the import flow.
type Config struct {
	StagingDir     string
	MaxFileSize    int64
	BatchSize      int
	SessionTTL     time.Duration
	ProcessTimeout time.Duration
}

// Service owns the staged-upload lifecycle. One staged file per owner; a new
// upload replaces the previous one, and processing consumes the session
// whether it succeeds or not.
type Service struct {
	sessions  session.Store
	validator *csvimport.Validator
	processor *csvimport.Processor
	log       *slog.Logger
	cfg       Config
}

// NewService creates a Service backed by the given store and session store.
func NewService(st csvimport.Store, sessions session.Store, cfg Config, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		sessions:  sessions,
		validator: csvimport.NewValidator(),
		processor: csvimport.NewProcessor(st, cfg.BatchSize),
		log:       log,
		cfg:       cfg,
	}
}

// Upload stages the reader's content, validates it, and on success opens a
// session for ownerID. An invalid file is deleted immediately and reported
// via ValidationFailedError. A prior staged file for the same owner is
// removed before the new session replaces it.
func (s *Service) Upload(ctx context.Context, ownerID, filename string, r io.Reader) (csvimport.Validation, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return csvimport.Validation{}, csvimport.ErrInvalidExtension
	}

	path, err := s.stage(r)
	if err != nil {
		return csvimport.Validation{}, err
	}

	result := s.validator.Validate(path)
	if !result.Valid {
		os.Remove(path)
		return result, &ValidationFailedError{Errors: result.Errors}
	}

	if prior, ok := s.sessions.Delete(ownerID); ok {
		if err := os.Remove(prior.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove replaced staged file",
				"path", prior.FilePath, "error", err)
		}
	}

	s.sessions.Put(ownerID, session.ImportSession{
		FilePath:     path,
		OriginalName: filepath.Base(filename),
		UploadedAt:   time.Now(),
	}, s.cfg.SessionTTL)

	s.log.Info("upload staged",
		"owner", ownerID,
		"file", filepath.Base(filename),
		"rows", result.RowCount)

	return result, nil
}

// stage copies the upload into the staging directory under a unique name,
// enforcing the size limit as it reads.
func (s *Service) stage(r io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	name := fmt.Sprintf("import-%d-%s.csv", time.Now().Unix(), uuid.NewString()[:8])
	path := filepath.Join(s.cfg.StagingDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.cfg.MaxFileSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if n > s.cfg.MaxFileSize {
		os.Remove(path)
		return "", ErrFileTooLarge
	}

	return path, nil
}

// Process consumes the owner's session and imports the staged file into the
// given card set. The session is removed before processing begins so it can
// never be replayed, and the staged file is deleted regardless of outcome.
func (s *Service) Process(ctx context.Context, ownerID string, setID int64) (*csvimport.Report, error) {
	sess, ok := s.sessions.Delete(ownerID)
	if !ok {
		return nil, ErrSessionExpired
	}
	defer func() {
		if err := os.Remove(sess.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove staged file",
				"path", sess.FilePath, "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProcessTimeout)
	defer cancel()

	report, err := s.processor.Process(ctx, sess.FilePath, setID)
	if err != nil {
		s.log.Error("import failed",
			"owner", ownerID,
			"set_id", setID,
			"file", sess.OriginalName,
			"error", err)
		return report, err
	}

	s.log.Info("import finished",
		"owner", ownerID,
		"set_id", setID,
		"file", sess.OriginalName,
		"total_rows", report.TotalRows,
		"created", report.Created,
		"skipped", report.Skipped,
		"errors", report.Errors)

	return report, nil
}

// Cancel discards the owner's session and its staged file. Reports whether a
// session existed.
func (s *Service) Cancel(ownerID string) bool {
	sess, ok := s.sessions.Delete(ownerID)
	if !ok {
		return false
	}
	if err := os.Remove(sess.FilePath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove staged file",
			"path", sess.FilePath, "error", err)
	}
	s.log.Info("import cancelled", "owner", ownerID, "file", sess.OriginalName)
	return true
}
