package web

// errors.go maps pipeline and session errors to client responses. Technical
// detail is logged server side with the request ID; clients get a short
// message, a suggested action, and a stable code they can quote to support.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashdeck/flashdeck/internal/csvimport"
	"github.com/flashdeck/flashdeck/internal/importer"
	"github.com/flashdeck/flashdeck/internal/logging"
	"github.com/flashdeck/flashdeck/internal/store"
)

// ErrorResponse is the JSON body for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// mapError translates an error into an HTTP status and client response.
func mapError(err error) (int, ErrorResponse) {
	var vErr *importer.ValidationFailedError

	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Message: "The uploaded file failed validation.",
			Action:  "Fix the reported problems and upload again.",
			Code:    "VAL001",
		}
	case errors.Is(err, importer.ErrSessionExpired):
		return http.StatusNotFound, ErrorResponse{
			Error:   "no pending import",
			Message: "No validated upload is waiting to be imported.",
			Action:  "Upload and validate a file first.",
			Code:    "SES001",
		}
	case errors.Is(err, importer.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "file too large",
			Message: "The file exceeds the maximum upload size.",
			Action:  "Split the file and import it in parts.",
			Code:    "FILE001",
		}
	case errors.Is(err, csvimport.ErrInvalidExtension):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid file type",
			Message: "Invalid file type. Only CSV files are allowed.",
			Action:  "Export your flashcards as a .csv file.",
			Code:    "FILE002",
		}
	case errors.Is(err, csvimport.ErrMissingFile):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "file not found",
			Message: "File not found.",
			Action:  "Upload the file again.",
			Code:    "FILE003",
		}
	case errors.Is(err, csvimport.ErrEmptyFile):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "empty file",
			Message: "CSV file is empty.",
			Action:  "Upload a file with a header row and data.",
			Code:    "FILE004",
		}
	case errors.Is(err, csvimport.ErrUnreadableFile):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "unreadable file",
			Message: "Unable to read file.",
			Action:  "Re-export the file as UTF-8 CSV and try again.",
			Code:    "FILE005",
		}
	case errors.Is(err, csvimport.ErrInvalidTargetSet),
		errors.Is(err, store.ErrSetNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "set not found",
			Message: "Flashcard set not found.",
			Action:  "Check the set ID and try again.",
			Code:    "SET001",
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal error",
			Message: "An unexpected error occurred.",
			Action:  "Please try again.",
			Code:    "ERR000",
		}
	}
}

// respondError logs the technical error and writes the mapped JSON response.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := mapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", resp.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSONStatus(w, status, resp)
}

// writeJSON writes v as a 200 JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; nothing to do but record it.
		slog.Error("json encode failed", "error", err)
	}
}
