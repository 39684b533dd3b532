package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/pairing"
)

// QRHandler exposes the device pairing flow. These endpoints are
// unauthenticated: the QR token is the credential.
type QRHandler struct {
	registry *pairing.Registry
}

func NewQRHandler(registry *pairing.Registry) *QRHandler {
	return &QRHandler{registry: registry}
}

func (h *QRHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/generate", h.Generate)
	r.Post("/connect", h.Connect)
	r.Get("/status/{connectionId}", h.Status)
	r.Post("/disconnect/{connectionId}", h.Disconnect)
	r.Get("/devices", h.ListDevices)
	r.Post("/reconnect", h.Reconnect)

	return r
}

// POST /qr/generate
func (h *QRHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string   `json:"userId"`
		Permissions []string `json:"permissions"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.registry.CreateSession(req.UserID, req.Permissions)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, result)
}

// POST /qr/connect
func (h *QRHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConnectionID string          `json:"connectionId"`
		Token        string          `json:"token"`
		DeviceInfo   json.RawMessage `json:"deviceInfo"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.registry.ConfirmConnection(req.ConnectionID, req.Token, req.DeviceInfo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, result)
}

// GET /qr/status/{connectionId}
func (h *QRHandler) Status(w http.ResponseWriter, r *http.Request) {
	connectionID := chi.URLParam(r, "connectionId")
	if connectionID == "" {
		writeError(w, apperrors.MissingRequired("connectionId"))
		return
	}

	result, err := h.registry.GetStatus(connectionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, result)
}

// POST /qr/disconnect/{connectionId}
func (h *QRHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	connectionID := chi.URLParam(r, "connectionId")
	if connectionID == "" {
		writeError(w, apperrors.MissingRequired("connectionId"))
		return
	}

	var req struct {
		DeviceID string `json:"deviceId"`
	}
	// body is optional for disconnect
	_ = json.NewDecoder(r.Body).Decode(&req)

	h.registry.Disconnect(connectionID, req.DeviceID)
	writeMessage(w, "Disconnected")
}

// GET /qr/devices
func (h *QRHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices := h.registry.ListDevices(r.URL.Query().Get("userId"))
	writeSuccess(w, map[string]any{
		"devices": devices,
		"total":   len(devices),
	})
}

// POST /qr/reconnect
func (h *QRHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID        string `json:"deviceId"`
		ConnectionToken string `json:"connectionToken"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.registry.Reconnect(req.DeviceID, req.ConnectionToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, result)
}
