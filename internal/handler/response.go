package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/httputil"
)

func writeSuccess(w http.ResponseWriter, data any) {
	httputil.WriteSuccess(w, data)
}

func writeMessage(w http.ResponseWriter, message string) {
	httputil.WriteMessage(w, message)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeBody parses a JSON request body into dst, converting malformed
// input into a validation error.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.ValidationError("Invalid request body").WithCause(err)
	}
	return nil
}
