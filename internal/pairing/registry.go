package pairing

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/TicketXOS/CRM-sub001/internal/config"
	apperrors "github.com/TicketXOS/CRM-sub001/internal/errors"
	"github.com/TicketXOS/CRM-sub001/internal/model"
	"github.com/TicketXOS/CRM-sub001/internal/util"
)

// Registry owns all QR pairing state: connection sessions keyed by session
// id and connected devices keyed by device id. Everything lives in process
// memory; a restart discards it. Every operation holds the mutex for its
// whole read-then-write sequence.
type Registry struct {
	mu          sync.Mutex
	serverURL   string
	sessions    map[string]*model.ConnectionSession
	devices     map[string]*model.ConnectedDevice
	deviceOrder []string

	now func() time.Time
}

func NewRegistry(serverURL string) *Registry {
	return &Registry{
		serverURL: serverURL,
		sessions:  make(map[string]*model.ConnectionSession),
		devices:   make(map[string]*model.ConnectedDevice),
		now:       time.Now,
	}
}

type CreateSessionResult struct {
	ConnectionID string   `json:"connectionId"`
	QRData       string   `json:"qrData"`
	ExpiresAt    int64    `json:"expiresAt"`
	Permissions  []string `json:"permissions"`
}

type ConfirmResult struct {
	DeviceID        string   `json:"deviceId"`
	ConnectionToken string   `json:"connectionToken"`
	ServerURL       string   `json:"serverUrl"`
	Permissions     []string `json:"permissions"`
	UserID          string   `json:"userId"`
}

type StatusResult struct {
	Status     model.SessionStatus `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	ExpiresAt  time.Time           `json:"expiresAt"`
	DeviceInfo json.RawMessage     `json:"deviceInfo,omitempty"`
}

type ReconnectResult struct {
	DeviceID    string   `json:"deviceId"`
	DeviceName  string   `json:"deviceName"`
	Permissions []string `json:"permissions"`
	UserID      string   `json:"userId"`
}

// deviceInfoFields are the fields the registry understands inside the
// otherwise opaque deviceInfo payload.
type deviceInfoFields struct {
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

// CreateSession mints a pending session for userID with a fresh id and
// 256-bit token. The QR payload it returns is what the scanning client
// parses, so its shape is fixed. Expired sessions are swept (marked, never
// evicted) as a side effect.
func (r *Registry) CreateSession(userID string, permissions []string) (*CreateSessionResult, error) {
	if userID == "" {
		return nil, apperrors.MissingRequired("userId")
	}

	if len(permissions) == 0 {
		permissions = config.DefaultDevicePermissions
	}

	token, err := util.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepExpiredLocked()

	now := r.now()
	session := &model.ConnectionSession{
		ID:          uuid.NewString(),
		Token:       util.HashToken(token),
		UserID:      userID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(config.PairingSessionTTL),
		Status:      model.SessionStatusPending,
		ServerURL:   r.serverURL,
		Permissions: cloneStrings(permissions),
	}
	r.sessions[session.ID] = session

	payload, err := json.Marshal(model.QRPayload{
		ConnectionID: session.ID,
		Token:        token,
		ServerURL:    r.serverURL,
		Permissions:  session.Permissions,
		ExpiresAt:    session.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal qr payload: %w", err)
	}

	log.Info().
		Str("connectionId", session.ID).
		Str("userId", userID).
		Time("expiresAt", session.ExpiresAt).
		Msg("pairing session created")

	return &CreateSessionResult{
		ConnectionID: session.ID,
		QRData:       string(payload),
		ExpiresAt:    session.ExpiresAt.UnixMilli(),
		Permissions:  cloneStrings(session.Permissions),
	}, nil
}

// ConfirmConnection validates the scanned credentials and registers the
// device. Preconditions are checked in a fixed order so each failure mode
// is distinct: missing input, unknown session, wrong state, bad token,
// expired. An expired session is marked expired before the error returns.
func (r *Registry) ConfirmConnection(connectionID, token string, deviceInfo json.RawMessage) (*ConfirmResult, error) {
	if connectionID == "" {
		return nil, apperrors.MissingRequired("connectionId")
	}
	if token == "" {
		return nil, apperrors.MissingRequired("token")
	}
	if len(deviceInfo) == 0 {
		return nil, apperrors.MissingRequired("deviceInfo")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[connectionID]
	if !ok {
		return nil, apperrors.NotFound("Connection session")
	}

	if session.Status != model.SessionStatusPending {
		return nil, apperrors.InvalidState(fmt.Sprintf("session is %s, expected pending", session.Status))
	}

	if !util.ConstantTimeEqual(session.Token, util.HashToken(token)) {
		return nil, apperrors.Unauthorized("Session token mismatch")
	}

	if r.now().After(session.ExpiresAt) {
		session.Status = model.SessionStatusExpired
		return nil, apperrors.SessionExpired()
	}

	var info deviceInfoFields
	if err := json.Unmarshal(deviceInfo, &info); err != nil {
		return nil, apperrors.InvalidInput("deviceInfo", "must be a JSON object")
	}

	deviceID := info.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	connectionToken, err := util.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("generate connection token: %w", err)
	}

	now := r.now()
	if _, exists := r.devices[deviceID]; !exists {
		r.deviceOrder = append(r.deviceOrder, deviceID)
	}
	r.devices[deviceID] = &model.ConnectedDevice{
		ID:              uuid.NewString(),
		DeviceID:        deviceID,
		DeviceName:      info.DeviceName,
		UserID:          session.UserID,
		ConnectionToken: util.HashToken(connectionToken),
		LastConnected:   now,
		Status:          model.DeviceStatusOnline,
		Permissions:     cloneStrings(session.Permissions),
	}

	session.Status = model.SessionStatusConnected
	session.DeviceInfo = append(json.RawMessage(nil), deviceInfo...)

	log.Info().
		Str("connectionId", connectionID).
		Str("deviceId", deviceID).
		Str("userId", session.UserID).
		Msg("device connected")

	return &ConfirmResult{
		DeviceID:        deviceID,
		ConnectionToken: connectionToken,
		ServerURL:       r.serverURL,
		Permissions:     cloneStrings(session.Permissions),
		UserID:          session.UserID,
	}, nil
}

// GetStatus returns a read-only snapshot. It never sweeps or mutates, so a
// lapsed session still reads as pending here until something touches it.
func (r *Registry) GetStatus(connectionID string) (*StatusResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[connectionID]
	if !ok {
		return nil, apperrors.NotFound("Connection session")
	}

	return &StatusResult{
		Status:     session.Status,
		CreatedAt:  session.CreatedAt,
		ExpiresAt:  session.ExpiresAt,
		DeviceInfo: append(json.RawMessage(nil), session.DeviceInfo...),
	}, nil
}

// Disconnect is permissive: unknown ids are silent no-ops and
// repeated calls are harmless. A known device goes offline; a known session
// goes expired regardless of its current state.
func (r *Registry) Disconnect(connectionID, deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if deviceID != "" {
		if device, ok := r.devices[deviceID]; ok {
			device.Status = model.DeviceStatusOffline
			log.Info().Str("deviceId", deviceID).Msg("device disconnected")
		}
	}

	if session, ok := r.sessions[connectionID]; ok {
		session.Status = model.SessionStatusExpired
		log.Info().Str("connectionId", connectionID).Msg("session closed")
	}
}

// ListDevices returns devices in the order they first connected, optionally
// filtered by exact userId match.
func (r *Registry) ListDevices(userID string) []model.ConnectedDevice {
	r.mu.Lock()
	defer r.mu.Unlock()

	devices := make([]model.ConnectedDevice, 0, len(r.deviceOrder))
	for _, id := range r.deviceOrder {
		device, ok := r.devices[id]
		if !ok {
			continue
		}
		if userID != "" && device.UserID != userID {
			continue
		}
		copied := *device
		copied.Permissions = cloneStrings(device.Permissions)
		devices = append(devices, copied)
	}
	return devices
}

// Reconnect brings a previously paired device back online. The connection
// token is not rotated.
func (r *Registry) Reconnect(deviceID, connectionToken string) (*ReconnectResult, error) {
	if deviceID == "" {
		return nil, apperrors.MissingRequired("deviceId")
	}
	if connectionToken == "" {
		return nil, apperrors.MissingRequired("connectionToken")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.devices[deviceID]
	if !ok {
		return nil, apperrors.NotFound("Device")
	}

	if !util.ConstantTimeEqual(device.ConnectionToken, util.HashToken(connectionToken)) {
		return nil, apperrors.Unauthorized("Connection token mismatch")
	}

	device.Status = model.DeviceStatusOnline
	device.LastConnected = r.now()

	log.Info().Str("deviceId", deviceID).Str("userId", device.UserID).Msg("device reconnected")

	return &ReconnectResult{
		DeviceID:    device.DeviceID,
		DeviceName:  device.DeviceName,
		Permissions: cloneStrings(device.Permissions),
		UserID:      device.UserID,
	}, nil
}

// PurgeExpired evicts sessions that have been expired for longer than
// retention. The lazy sweep only flips status; this is the only place
// sessions actually leave the map. The cleanup job calls it periodically.
func (r *Registry) PurgeExpired(retention time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepExpiredLocked()

	cutoff := r.now().Add(-retention)
	purged := 0
	for id, session := range r.sessions {
		if session.Status == model.SessionStatusExpired && session.ExpiresAt.Before(cutoff) {
			delete(r.sessions, id)
			purged++
		}
	}
	return purged
}

// Counts reports the current session and device map sizes.
func (r *Registry) Counts() (sessions, devices int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions), len(r.devices)
}

// sweepExpiredLocked marks lapsed pending sessions expired. Callers must
// hold the mutex. Sessions are never evicted here.
func (r *Registry) sweepExpiredLocked() {
	now := r.now()
	for _, session := range r.sessions {
		if session.Status == model.SessionStatusPending && now.After(session.ExpiresAt) {
			session.Status = model.SessionStatusExpired
		}
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
