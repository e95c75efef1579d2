package server

import (
	"encoding/json"
	"net/http"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error      string `json:"error"`
	Code       string `json:"code,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps coded errors onto HTTP statuses. Unknown errors are
// internal server errors with their message suppressed.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	he, ok := err.(*errors.HubError)
	if !ok {
		s.logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}

	status := statusForCode(he.Code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "code", he.Code, "error", he)
	}
	respondJSON(w, status, errorBody{
		Error:      he.Message,
		Code:       he.Code,
		Detail:     he.Detail,
		Suggestion: he.Suggestion,
	})
}

func statusForCode(code string) int {
	switch code {
	case "E100", "E101", "E303", "E400":
		return http.StatusNotFound
	case "E102":
		return http.StatusForbidden
	case "E104", "E302":
		return http.StatusConflict
	case "E103", "E200", "E201", "E202", "E203",
		"E300", "E301", "E304", "E305", "E401", "E500":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeBody decodes the request body into v.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("E500").Wrap(err)
	}
	return nil
}
