package widget

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "widget.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	if err := validate.Struct(d); err != nil {
		t.Errorf("Defaults() fails validation: %v", err)
	}
	if !d.ShowProgress || !d.ShowTitle {
		t.Errorf("ShowProgress = %v, ShowTitle = %v, want both on by default",
			d.ShowProgress, d.ShowTitle)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != Defaults() {
		t.Errorf("Load(\"\") = %+v, want defaults", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != Defaults() {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestLoadOverridesLayerOverDefaults(t *testing.T) {
	path := writeSettingsFile(t, "card_height: 400\ntext_align: left\n")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.CardHeight != 400 {
		t.Errorf("CardHeight = %d, want 400", got.CardHeight)
	}
	if got.TextAlign != "left" {
		t.Errorf("TextAlign = %q, want left", got.TextAlign)
	}
	if got.FontSize != Defaults().FontSize {
		t.Errorf("FontSize = %d, want untouched default %d", got.FontSize, Defaults().FontSize)
	}
}

func TestWithOverrides(t *testing.T) {
	base := Defaults()

	q := url.Values{}
	q.Set("card_height", "450")
	q.Set("show_counter", "false")
	q.Set("show_progress", "false")
	q.Set("show_title", "false")
	q.Set("text_align", "left")

	got := base.WithOverrides(q)
	if got.CardHeight != 450 {
		t.Errorf("CardHeight = %d, want 450", got.CardHeight)
	}
	if got.ShowCounter {
		t.Error("ShowCounter = true, want overridden to false")
	}
	if got.ShowProgress {
		t.Error("ShowProgress = true, want overridden to false")
	}
	if got.ShowTitle {
		t.Error("ShowTitle = true, want overridden to false")
	}
	if got.TextAlign != "left" {
		t.Errorf("TextAlign = %q, want left", got.TextAlign)
	}
	if got.FontSize != base.FontSize {
		t.Errorf("FontSize = %d, want untouched %d", got.FontSize, base.FontSize)
	}
}

func TestWithOverridesRejectsInvalid(t *testing.T) {
	base := Defaults()

	q := url.Values{}
	q.Set("card_height", "5")

	if got := base.WithOverrides(q); got != base {
		t.Errorf("WithOverrides accepted an out-of-range value: %+v", got)
	}

	q = url.Values{}
	q.Set("text_align", "justified")
	if got := base.WithOverrides(q); got != base {
		t.Errorf("WithOverrides accepted a bad alignment: %+v", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "card height out of range", content: "card_height: 5\n"},
		{name: "bad color", content: "text_color: notacolor\n"},
		{name: "bad alignment", content: "text_align: justified\n"},
		{name: "malformed yaml", content: "card_height: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeSettingsFile(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want validation failure")
			}
			if got != Defaults() {
				t.Errorf("Load() = %+v, want defaults on failure", got)
			}
		})
	}
}
