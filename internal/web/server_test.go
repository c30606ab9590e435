package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flashdeck/flashdeck/internal/config"
	"github.com/flashdeck/flashdeck/internal/importer"
	"github.com/flashdeck/flashdeck/internal/session"
	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/internal/widget"
)

type fakeStore struct {
	sets        map[int64]*store.CardSet
	collections map[int64]store.Collection
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sets: map[int64]*store.CardSet{
			1: {ID: 1, Title: "Geography"},
		},
		collections: map[int64]store.Collection{},
	}
}

func (f *fakeStore) GetSet(_ context.Context, id int64) (*store.CardSet, error) {
	set, ok := f.sets[id]
	if !ok {
		return nil, store.ErrSetNotFound
	}
	return set, nil
}

func (f *fakeStore) ListSets(_ context.Context) ([]store.CardSet, error) {
	var out []store.CardSet
	for _, s := range f.sets {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStore) GetCollection(_ context.Context, setID int64) (store.Collection, error) {
	out := store.Collection{}
	for k, v := range f.collections[setID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeStore) SaveCollection(_ context.Context, setID int64, cards store.Collection) error {
	saved := store.Collection{}
	for k, v := range cards {
		saved[k] = v
	}
	f.collections[setID] = saved
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			WriteTimeout: 15 * time.Minute,
		},
		Import: config.ImportConfig{
			MaxFileSize: 1 << 20,
			BatchSize:   500,
			SessionTTL:  time.Hour,
			Timeout:     time.Minute,
			StagingDir:  t.TempDir(),
		},
		Rate:     config.RateLimitConfig{Enabled: false},
		Security: config.SecurityConfig{},
	}
}

func newTestServer(t *testing.T, st *fakeStore, cfg *config.Config) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	imp := importer.NewService(st, session.NewMemory(nil), importer.Config{
		StagingDir:     cfg.Import.StagingDir,
		MaxFileSize:    cfg.Import.MaxFileSize,
		BatchSize:      cfg.Import.BatchSize,
		SessionTTL:     cfg.Import.SessionTTL,
		ProcessTimeout: cfg.Import.Timeout,
	}, log)
	return NewServer(st, imp, widget.Defaults(), cfg)
}

func multipartCSV(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func doRequest(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), testConfig(t))

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestValidateThenProcess(t *testing.T) {
	st := newFakeStore()
	srv := newTestServer(t, st, testConfig(t))

	body, contentType := multipartCSV(t, "cards.csv",
		"question,answer\nWhat is the capital of France?,Paris\nWhat is 2+2?,4\n")
	req := httptest.NewRequest(http.MethodPost, "/api/import/validate", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate status = %d, body %s", rec.Code, rec.Body.String())
	}
	var validated struct {
		Valid    bool `json:"valid"`
		RowCount int  `json:"row_count"`
	}
	decodeBody(t, rec, &validated)
	if !validated.Valid || validated.RowCount != 2 {
		t.Fatalf("validate response = %+v, want 2 valid rows", validated)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/import/process",
		strings.NewReader("set_id=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec = doRequest(t, srv, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("process status = %d, body %s", rec.Code, rec.Body.String())
	}
	var processed struct {
		SetID  int64 `json:"set_id"`
		Report struct {
			Created int `json:"created"`
		} `json:"report"`
	}
	decodeBody(t, rec, &processed)
	if processed.Report.Created != 2 {
		t.Errorf("created = %d, want 2", processed.Report.Created)
	}
	if len(st.collections[1]) != 2 {
		t.Errorf("stored %d cards, want 2", len(st.collections[1]))
	}
}

func TestValidateRejectsBadSchema(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), testConfig(t))

	body, contentType := multipartCSV(t, "cards.csv", "front,back\na,b\n")
	req := httptest.NewRequest(http.MethodPost, "/api/import/validate", body)
	req.Header.Set("Content-Type", contentType)

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	if resp.Valid || len(resp.Errors) == 0 {
		t.Errorf("response = %+v, want validation errors", resp)
	}
	if !strings.Contains(resp.Errors[0], "Missing required columns") {
		t.Errorf("error = %q, want missing-columns message", resp.Errors[0])
	}
}

func TestProcessWithoutSession(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/api/import/process",
		strings.NewReader(`{"set_id": 1}`))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(t, srv, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != "SES001" {
		t.Errorf("code = %q, want SES001", resp.Code)
	}
}

func TestCancelWithoutSession(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), testConfig(t))

	rec := doRequest(t, srv,
		httptest.NewRequest(http.MethodPost, "/api/import/cancel", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]bool
	decodeBody(t, rec, &resp)
	if resp["cancelled"] {
		t.Error("cancelled = true, want false with no session")
	}
}

func TestListSets(t *testing.T) {
	st := newFakeStore()
	st.collections[1] = store.Collection{
		"Q": {Front: "Q", Back: "A"},
	}
	srv := newTestServer(t, st, testConfig(t))

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/sets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Sets []struct {
			ID        int64  `json:"id"`
			Title     string `json:"title"`
			CardCount int    `json:"card_count"`
		} `json:"sets"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Sets) != 1 || resp.Sets[0].CardCount != 1 {
		t.Errorf("sets = %+v, want one set with one card", resp.Sets)
	}
}

func TestSetCardsOrdered(t *testing.T) {
	st := newFakeStore()
	st.collections[1] = store.Collection{
		"Bravo": {Front: "Bravo", Back: "2"},
		"Alpha": {Front: "Alpha", Back: "1"},
	}
	srv := newTestServer(t, st, testConfig(t))

	rec := doRequest(t, srv,
		httptest.NewRequest(http.MethodGet, "/api/sets/1/cards", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Cards []store.Card `json:"cards"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Cards) != 2 || resp.Cards[0].Front != "Alpha" {
		t.Errorf("cards = %+v, want stable question order", resp.Cards)
	}
}

func TestSetCardsEmptySet(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), testConfig(t))

	rec := doRequest(t, srv,
		httptest.NewRequest(http.MethodGet, "/api/sets/1/cards", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a set with no cards", rec.Code)
	}
	var resp ErrorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != "SET003" {
		t.Errorf("code = %q, want SET003", resp.Code)
	}
}

func TestSetCardsUnknownSet(t *testing.T) {
	srv := newTestServer(t, newFakeStore(), testConfig(t))

	rec := doRequest(t, srv,
		httptest.NewRequest(http.MethodGet, "/api/sets/42/cards", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestWidgetPage(t *testing.T) {
	st := newFakeStore()
	st.collections[1] = store.Collection{
		"What is DNS?": {Front: "What is DNS?", Back: "Domain Name System"},
	}
	srv := newTestServer(t, st, testConfig(t))

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/cards/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "Geography") {
		t.Error("widget page missing the set title")
	}
	if !strings.Contains(html, "What is DNS?") {
		t.Error("widget page missing the card data")
	}
	if !strings.Contains(html, `class="progress"`) {
		t.Error("widget page missing the progress bar")
	}

	rec = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/cards/1?show_title=false&show_progress=false", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status with overrides = %d, want 200", rec.Code)
	}
	html = rec.Body.String()
	if strings.Contains(html, "<h1>") {
		t.Error("show_title=false still renders the heading")
	}
	if strings.Contains(html, `class="progress"`) {
		t.Error("show_progress=false still renders the progress bar")
	}

	rec = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/cards/42", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown set status = %d, want 404", rec.Code)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.RequireAPIKey = true
	cfg.Security.APIKeys = []string{"secret-key"}
	srv := newTestServer(t, newFakeStore(), cfg)

	rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/sets", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without key = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sets", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	if rec := doRequest(t, srv, req); rec.Code != http.StatusForbidden {
		t.Errorf("status with bad key = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/sets", nil)
	req.Header.Set("X-API-Key", "secret-key")
	if rec := doRequest(t, srv, req); rec.Code != http.StatusOK {
		t.Errorf("status with good key = %d, want 200", rec.Code)
	}

	// The widget page stays public.
	if rec := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/cards/1", nil)); rec.Code != http.StatusOK {
		t.Errorf("widget status = %d, want 200 without a key", rec.Code)
	}
}
