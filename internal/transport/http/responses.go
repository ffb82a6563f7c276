package httpapi

import (
	"encoding/json"
	"net/http"

	dErrors "atmgate/pkg/domain-errors"
)

// response is the envelope every ATM endpoint returns. Optional fields are
// omitted rather than zeroed so failures leak nothing. Balances are rendered
// as two-decimal rupee strings.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
	Balance string `json:"balance,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a domain error onto the envelope. Messages come from the
// domain layer, which already keeps authentication failures generic.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, dErrors.HTTPStatus(err), response{
		Success: false,
		Message: dErrors.MessageOf(err),
	})
}
