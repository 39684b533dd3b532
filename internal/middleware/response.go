package middleware

import (
	"net/http"

	"github.com/TicketXOS/CRM-sub001/internal/httputil"
)

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}
