package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/flashdeck/flashdeck/internal/logging"
	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/internal/widget"
)

//go:embed templates
var templateFiles embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// handleWidgetPage renders the embeddable study widget for a card set.
func (s *Server) handleWidgetPage(w http.ResponseWriter, r *http.Request) {
	set, cards, err := s.loadDeckParts(r)
	if err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			http.Error(w, "Flashcard set not found.", http.StatusNotFound)
			return
		}
		logging.FromContext(r.Context()).Error("widget page failed", "error", err)
		http.Error(w, "An unexpected error occurred.", http.StatusInternalServerError)
		return
	}

	deck := widget.NewDeck(*set, cards)

	cardsJSON, err := json.Marshal(deck.Cards)
	if err != nil {
		logging.FromContext(r.Context()).Error("widget card encoding failed", "error", err)
		http.Error(w, "An unexpected error occurred.", http.StatusInternalServerError)
		return
	}

	data := struct {
		Set       store.CardSet
		CardCount int
		Settings  widget.Settings
		CardsJSON template.JS
	}{
		Set:       deck.Set,
		CardCount: len(deck.Cards),
		Settings:  s.settings.WithOverrides(r.URL.Query()),
		CardsJSON: template.JS(cardsJSON),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, "cards.html", data); err != nil {
		logging.FromContext(r.Context()).Error("widget render failed", "error", err)
	}
}
