package csvimport

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/flashdeck/flashdeck/internal/store"
)

// Store is the slice of persistence the pipeline needs. Satisfied by
// store.Postgres; tests substitute an in-memory fake.
type Store interface {
	GetSet(ctx context.Context, id int64) (*store.CardSet, error)
	GetCollection(ctx context.Context, setID int64) (store.Collection, error)
	SaveCollection(ctx context.Context, setID int64, cards store.Collection) error
}

// Processor streams data rows from a validated upload into a card set.
type Processor struct {
	store     Store
	batchSize int
}

// NewProcessor creates a Processor. A non-positive batchSize falls back to
// DefaultBatchSize.
func NewProcessor(st Store, batchSize int) *Processor {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Processor{store: st, batchSize: batchSize}
}

// Process imports the CSV at path into the card set identified by setID and
// returns the aggregated report.
//
// The entire existing collection is loaded up front to seed the duplicate
// check, so memory is O(existing cards + new cards). Row defects are local:
// they are counted and messaged but never abort the stream. Failures that do
// abort the run (missing set, unreadable file, a storage write error) are
// returned as an error alongside the partial report.
//
// Row numbers in error messages are 1-based physical line numbers, counting
// the header row as line 1.
func (p *Processor) Process(ctx context.Context, path string, setID int64) (*Report, error) {
	report := &Report{}
	report.Logf(SeverityInfo, "Starting import process")
	report.Logf(SeverityInfo, "File: %s", filepath.Base(path))

	set, err := p.store.GetSet(ctx, setID)
	if err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			report.Logf(SeverityError, "Invalid flashcard set ID")
			report.rowError("%s", userMessage(ErrInvalidTargetSet))
			return report, ErrInvalidTargetSet
		}
		report.Logf(SeverityError, "Failed to load flashcard set: %v", err)
		report.rowError("Storage error: %v", err)
		return report, fmt.Errorf("load set %d: %w", setID, err)
	}

	s, err := openStream(path)
	if err != nil {
		report.Logf(SeverityError, "Cannot open file")
		report.rowError("%s", userMessage(err))
		return report, err
	}
	defer s.Close()

	report.Logf(SeverityInfo, "Importing to: %s", set.Title)
	report.Logf(SeverityInfo, "Columns: %s", strings.Join(s.headers, ", "))

	questionIdx := columnIndex(s.headers, "question")
	answerIdx := columnIndex(s.headers, "answer")

	existing, err := p.store.GetCollection(ctx, setID)
	if err != nil {
		report.Logf(SeverityError, "Failed to load existing flashcards: %v", err)
		report.rowError("Storage error: %v", err)
		return report, fmt.Errorf("load collection for set %d: %w", setID, err)
	}
	report.Logf(SeverityInfo, "Existing flashcards: %d", len(existing))

	writer := newBatchWriter(p.store, setID, existing, p.batchSize)

	rowNum := 1 // header is physical line 1
	for {
		row, err := s.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row is a local defect; the reader resumes at the
			// next record.
			var pe *csv.ParseError
			if errors.As(err, &pe) && pe.Line > rowNum {
				report.TotalRows += pe.Line - rowNum
				rowNum = pe.Line
			} else {
				rowNum++
				report.TotalRows++
			}
			report.rowError("Row %d: %v", rowNum, err)
			continue
		}

		// Track the physical line so fully blank lines, which the csv
		// reader swallows, still count as rows and keep line numbers true.
		line, _ := s.reader.FieldPos(0)
		report.TotalRows += line - rowNum
		rowNum = line

		if isEmptyRow(row) {
			continue
		}

		question := field(row, questionIdx)
		answer := field(row, answerIdx)

		if question == "" {
			report.rowError("Row %d: Missing question.", rowNum)
			continue
		}
		if answer == "" {
			report.rowError("Row %d: Missing answer.", rowNum)
			continue
		}

		question = SanitizeText(question)
		answer = SanitizeText(answer)

		if writer.has(question) {
			report.Skipped++
			continue
		}

		flushed, err := writer.add(ctx, question, store.Card{Front: question, Back: answer})
		if err != nil {
			report.Logf(SeverityError, "Failed to save batch: %v", err)
			report.rowError("Import aborted: storage write failed.")
			return report, err
		}
		report.Created++
		if flushed > 0 {
			report.Logf(SeveritySuccess, "Saved batch of %d flashcards", flushed)
		}
	}

	flushed, err := writer.finish(ctx)
	if err != nil {
		report.Logf(SeverityError, "Failed to save final batch: %v", err)
		report.rowError("Import aborted: storage write failed.")
		return report, err
	}
	if flushed > 0 {
		report.Logf(SeveritySuccess, "Saved final batch of %d flashcards", flushed)
	}

	report.Logf(SeveritySuccess, "Import complete!")
	report.Logf(SeverityInfo, "Created: %d, Skipped: %d, Errors: %d",
		report.Created, report.Skipped, report.Errors)

	return report, nil
}
