package widget

import (
	"math/rand"

	"github.com/flashdeck/flashdeck/internal/store"
)

// Deck is a card set prepared for study: the set's metadata plus its cards
// in stable question order.
type Deck struct {
	Set   store.CardSet
	Cards []store.Card
}

// NewDeck assembles a deck from a stored collection. Card order is the
// sorted question text, so the same collection always yields the same deck.
func NewDeck(set store.CardSet, cards store.Collection) Deck {
	return Deck{
		Set:   set,
		Cards: cards.Ordered(),
	}
}

// Shuffled returns a copy of the deck's cards in random order. The deck
// itself keeps its stable order.
func (d Deck) Shuffled() []store.Card {
	out := make([]store.Card, len(d.Cards))
	copy(out, d.Cards)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
