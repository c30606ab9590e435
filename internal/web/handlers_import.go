package web

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/flashdeck/flashdeck/internal/csvimport"
)

// ownerID identifies the caller for session scoping. With API-key auth on,
// the key itself is the identity; otherwise the client IP stands in, which
// is good enough for a single staged upload per caller.
func (s *Server) ownerID(r *http.Request) string {
	if s.cfg.Security.RequireAPIKey {
		if key := r.Header.Get("X-API-Key"); key != "" {
			return "key:" + key
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// validateResponse is the body returned by the validate endpoint.
type validateResponse struct {
	csvimport.Validation
	Filename string `json:"filename,omitempty"`
	Message  string `json:"message,omitempty"`
}

// handleImportValidate stages an uploaded CSV and returns its validation
// result. On success the file waits under the caller's session until
// processed, replaced, cancelled, or expired.
func (s *Server) handleImportValidate(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		respondError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONStatus(w, http.StatusBadRequest, ErrorResponse{
			Error:   "no file provided",
			Message: "No file was uploaded.",
			Action:  "Attach a CSV file under the \"file\" form field.",
			Code:    "FILE006",
		})
		return
	}
	defer file.Close()

	result, err := s.importer.Upload(r.Context(), s.ownerID(r), header.Filename, file)
	if err != nil {
		// A failed validation still carries the result payload so the client
		// can show the specific problems.
		if !result.Valid && len(result.Errors) > 0 {
			writeJSONStatus(w, http.StatusBadRequest, validateResponse{
				Validation: result,
				Filename:   header.Filename,
			})
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, validateResponse{
		Validation: result,
		Filename:   header.Filename,
		Message:    "File validated successfully. Ready to import.",
	})
}

// processResponse is the body returned by the process endpoint.
type processResponse struct {
	SetID  int64             `json:"set_id"`
	Report *csvimport.Report `json:"report"`
	Shown  []string          `json:"displayed_errors,omitempty"`
}

// handleImportProcess consumes the caller's staged upload and imports it
// into the requested set. The set ID comes from a JSON body {"set_id": N}
// or a set_id form value.
func (s *Server) handleImportProcess(w http.ResponseWriter, r *http.Request) {
	setID, err := parseSetID(r)
	if err != nil || setID <= 0 {
		writeJSONStatus(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid set id",
			Message: "A numeric set_id form value is required.",
			Action:  "Pass the target flashcard set ID as set_id.",
			Code:    "SET002",
		})
		return
	}

	report, err := s.importer.Process(r.Context(), s.ownerID(r), setID)
	if err != nil {
		if report != nil {
			// Partial report: surface the mapped status but keep the detail.
			status, resp := mapError(err)
			writeJSONStatus(w, status, struct {
				ErrorResponse
				Report *csvimport.Report `json:"report"`
			}{resp, report})
			return
		}
		respondError(w, r, err)
		return
	}

	writeJSON(w, processResponse{
		SetID:  setID,
		Report: report,
		Shown:  report.DisplayMessages(),
	})
}

// handleImportCancel discards the caller's staged upload, if any.
func (s *Server) handleImportCancel(w http.ResponseWriter, r *http.Request) {
	cancelled := s.importer.Cancel(s.ownerID(r))
	writeJSON(w, map[string]bool{"cancelled": cancelled})
}

func parseSetID(r *http.Request) (int64, error) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			SetID int64 `json:"set_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return 0, err
		}
		return body.SetID, nil
	}
	return strconv.ParseInt(r.FormValue("set_id"), 10, 64)
}
