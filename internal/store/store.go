// Package store persists card sets and their card collections in PostgreSQL.
//
// A collection is stored as a single JSONB blob per set and is always
// rewritten in full on save (whole-value overwrite). There is no row-level
// card storage; at the expected scale (thousands of cards per set) one
// blob per set is simpler and a single write per batch is sufficient.
package store

import (
	"context"
	"errors"
	"sort"
)

// ErrSetNotFound is returned when a card set ID does not exist.
var ErrSetNotFound = errors.New("card set not found")

// CardSet is a named, externally managed collection of flashcards.
// The import pipeline reads its identity and writes its cards; it never
// creates or deletes sets.
type CardSet struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Card is a single question/answer pair as persisted.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Collection maps sanitized question text to its card. Question text is the
// uniqueness key within a set: two cards with the same sanitized question
// cannot coexist, regardless of their answers.
type Collection map[string]Card

// Ordered returns the cards sorted by question text. JSON objects do not
// preserve insertion order, so a deterministic order is derived from the keys.
func (c Collection) Ordered() []Card {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cards := make([]Card, 0, len(keys))
	for _, k := range keys {
		cards = append(cards, c[k])
	}
	return cards
}

// Store is the persistence surface the rest of the application consumes.
// Satisfied by *Postgres.
type Store interface {
	// GetSet returns the card set with the given ID, or ErrSetNotFound.
	GetSet(ctx context.Context, id int64) (*CardSet, error)

	// ListSets returns all card sets ordered by ID.
	ListSets(ctx context.Context) ([]CardSet, error)

	// GetCollection returns the full card collection for a set. A set with
	// no saved collection yields an empty, non-nil Collection.
	GetCollection(ctx context.Context, setID int64) (Collection, error)

	// SaveCollection rewrites the entire collection for a set in one write.
	// The write is idempotent: saving the same collection twice is a no-op
	// beyond the extra round trip.
	SaveCollection(ctx context.Context, setID int64, cards Collection) error
}
