package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"prompt-collector/prompt"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps prompt errors onto status codes. DuplicateError also matches
// ValidationError, so it is checked first.
func writeError(w http.ResponseWriter, err error) {
	var (
		dup     *prompt.DuplicateError
		invalid *prompt.ValidationError
		missing *prompt.NotFoundError
	)
	switch {
	case errors.As(err, &dup):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &invalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &missing):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("prompt store error: %v", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// intParam reads a non-negative integer URL parameter. Anything else is reported
// as not found, like an out-of-range index.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		http.Error(w, name+" not found", http.StatusNotFound)
		return 0, false
	}
	return n, true
}

type textRequest struct {
	Text string `json:"text"`
}
