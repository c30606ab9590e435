// Package widget holds the study-widget read surface: display settings and
// deck assembly over a stored card collection.
package widget

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings controls the rendered appearance of the study widget. All fields
// have working defaults; a settings file only needs the keys it overrides.
type Settings struct {
	CardHeight      int    `yaml:"card_height" validate:"min=100,max=1000"`
	FontSize        int    `yaml:"font_size" validate:"min=10,max=48"`
	QuestionBgStart string `yaml:"question_bg_start" validate:"hexcolor"`
	QuestionBgEnd   string `yaml:"question_bg_end" validate:"hexcolor"`
	AnswerBgStart   string `yaml:"answer_bg_start" validate:"hexcolor"`
	AnswerBgEnd     string `yaml:"answer_bg_end" validate:"hexcolor"`
	TextColor       string `yaml:"text_color" validate:"hexcolor"`
	AccentColor     string `yaml:"accent_color" validate:"hexcolor"`
	ShowCounter     bool   `yaml:"show_counter"`
	ShowProgress    bool   `yaml:"show_progress"`
	ShowShuffle     bool   `yaml:"show_shuffle"`
	ShowFlipHint    bool   `yaml:"show_flip_hint"`
	ShowTitle       bool   `yaml:"show_title"`
	BorderRadius    int    `yaml:"border_radius" validate:"min=0,max=50"`
	MaxWidth        int    `yaml:"max_width" validate:"min=200,max=2000"`
	TextAlign       string `yaml:"text_align" validate:"oneof=left center right"`
	CounterPosition string `yaml:"counter_position" validate:"oneof=top bottom"`
}

// Defaults returns the stock widget appearance.
func Defaults() Settings {
	return Settings{
		CardHeight:      300,
		FontSize:        18,
		QuestionBgStart: "#667eea",
		QuestionBgEnd:   "#764ba2",
		AnswerBgStart:   "#11998e",
		AnswerBgEnd:     "#38ef7d",
		TextColor:       "#ffffff",
		AccentColor:     "#4361ee",
		ShowCounter:     true,
		ShowProgress:    true,
		ShowShuffle:     true,
		ShowFlipHint:    true,
		ShowTitle:       true,
		BorderRadius:    16,
		MaxWidth:        800,
		TextAlign:       "center",
		CounterPosition: "bottom",
	}
}

var validate = validator.New()

// Load reads settings from a YAML file layered over the defaults. An empty
// path or a missing file yields the defaults. A file that parses but fails
// validation returns the defaults alongside the error so the widget still
// renders.
func Load(path string) (Settings, error) {
	s := Defaults()

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return Defaults(), fmt.Errorf("read widget settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("parse widget settings: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return Defaults(), fmt.Errorf("invalid widget settings: %w", err)
	}

	return s, nil
}

// WithOverrides returns a copy of s with recognized query parameters
// applied, so a single embed URL can tweak its appearance. The overridden
// result is validated as a whole; if anything is out of range the original
// settings are returned unchanged.
func (s Settings) WithOverrides(q url.Values) Settings {
	out := s

	for key, dst := range map[string]*int{
		"card_height":   &out.CardHeight,
		"font_size":     &out.FontSize,
		"border_radius": &out.BorderRadius,
		"max_width":     &out.MaxWidth,
	} {
		if v := q.Get(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	for key, dst := range map[string]*bool{
		"show_counter":   &out.ShowCounter,
		"show_progress":  &out.ShowProgress,
		"show_shuffle":   &out.ShowShuffle,
		"show_flip_hint": &out.ShowFlipHint,
		"show_title":     &out.ShowTitle,
	} {
		if v := q.Get(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	if v := q.Get("text_align"); v != "" {
		out.TextAlign = v
	}
	if v := q.Get("counter_position"); v != "" {
		out.CounterPosition = v
	}

	if err := validate.Struct(out); err != nil {
		return s
	}
	return out
}
