package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/internal/widget"
)

// handleListSets returns all card sets with their card counts.
func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := s.store.ListSets(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	type setResponse struct {
		ID        int64  `json:"id"`
		Title     string `json:"title"`
		CardCount int    `json:"card_count"`
	}

	out := make([]setResponse, 0, len(sets))
	for _, set := range sets {
		cards, err := s.store.GetCollection(r.Context(), set.ID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		out = append(out, setResponse{ID: set.ID, Title: set.Title, CardCount: len(cards)})
	}

	writeJSON(w, map[string]any{"sets": out})
}

// handleSetCards returns a set's cards in stable order, or shuffled when
// the shuffle query parameter is set.
func (s *Server) handleSetCards(w http.ResponseWriter, r *http.Request) {
	set, cards, err := s.loadDeckParts(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if len(cards) == 0 {
		writeJSONStatus(w, http.StatusNotFound, ErrorResponse{
			Error:   "no cards",
			Message: "This set has no cards yet.",
			Action:  "Import a CSV file into this set first.",
			Code:    "SET003",
		})
		return
	}

	deck := widget.NewDeck(*set, cards)
	out := deck.Cards
	if r.URL.Query().Get("shuffle") == "1" {
		out = deck.Shuffled()
	}

	writeJSON(w, map[string]any{
		"set":   set,
		"cards": out,
	})
}

// loadDeckParts resolves the setID URL parameter to a set and its cards.
func (s *Server) loadDeckParts(r *http.Request) (*store.CardSet, store.Collection, error) {
	setID, err := strconv.ParseInt(chi.URLParam(r, "setID"), 10, 64)
	if err != nil || setID <= 0 {
		return nil, nil, store.ErrSetNotFound
	}

	set, err := s.store.GetSet(r.Context(), setID)
	if err != nil {
		return nil, nil, err
	}

	cards, err := s.store.GetCollection(r.Context(), setID)
	if err != nil {
		return nil, nil, err
	}

	return set, cards, nil
}
