package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrValidation marks bad client input.
var ErrValidation = errors.New("validation failed")

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}

func problem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ProblemDetail{Title: title, Status: status, Detail: detail})
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
