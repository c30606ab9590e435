package csvimport

import (
	"context"
	"fmt"

	"github.com/flashdeck/flashdeck/internal/store"
)

// DefaultBatchSize is the number of accepted cards accumulated before the
// merged collection is rewritten to the store.
const DefaultBatchSize = 500

// batchWriter accumulates new cards and flushes them in bounded batches.
// Each flush merges the batch into the in-memory copy of the existing
// collection (batch entries win on key collision) and persists the entire
// merged collection as one write.
type batchWriter struct {
	store    Store
	setID    int64
	existing store.Collection
	batch    store.Collection
	limit    int
	flushes  int
}

func newBatchWriter(st Store, setID int64, existing store.Collection, limit int) *batchWriter {
	if existing == nil {
		existing = store.Collection{}
	}
	if limit <= 0 {
		limit = DefaultBatchSize
	}
	return &batchWriter{
		store:    st,
		setID:    setID,
		existing: existing,
		batch:    store.Collection{},
		limit:    limit,
	}
}

// has reports whether the question already exists in the stored collection
// or in the batch still waiting to be flushed.
func (w *batchWriter) has(question string) bool {
	if _, ok := w.existing[question]; ok {
		return true
	}
	_, ok := w.batch[question]
	return ok
}

// add appends a card to the batch and flushes when the threshold is reached.
// It returns the number of cards flushed (zero when the batch is still
// filling).
func (w *batchWriter) add(ctx context.Context, question string, card store.Card) (int, error) {
	w.batch[question] = card

	if len(w.batch) >= w.limit {
		return w.flush(ctx)
	}
	return 0, nil
}

// finish flushes any remaining cards. Returns the number flushed.
func (w *batchWriter) finish(ctx context.Context) (int, error) {
	if len(w.batch) == 0 {
		return 0, nil
	}
	return w.flush(ctx)
}

func (w *batchWriter) flush(ctx context.Context) (int, error) {
	n := len(w.batch)

	for q, card := range w.batch {
		w.existing[q] = card
	}

	if err := w.store.SaveCollection(ctx, w.setID, w.existing); err != nil {
		return 0, fmt.Errorf("save collection: %w", err)
	}

	w.batch = store.Collection{}
	w.flushes++
	return n, nil
}
