package model

import (
	"encoding/json"
	"time"
)

// ConnectionSession is one QR pairing attempt. Sessions live only in the
// in-memory registry; nothing here is persisted. Token holds the sha256 of
// the secret, never the secret itself.
type ConnectionSession struct {
	ID          string          `json:"id"`
	Token       string          `json:"-"`
	UserID      string          `json:"userId"`
	DeviceInfo  json.RawMessage `json:"deviceInfo,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	Status      SessionStatus   `json:"status"`
	ServerURL   string          `json:"serverUrl"`
	Permissions []string        `json:"permissions"`
}

// ConnectedDevice is a client paired via a session, reconnectable with its
// own connection token. ConnectionToken stores the sha256 of that token.
type ConnectedDevice struct {
	ID              string       `json:"id"`
	DeviceID        string       `json:"deviceId"`
	DeviceName      string       `json:"deviceName"`
	UserID          string       `json:"userId"`
	ConnectionToken string       `json:"-"`
	LastConnected   time.Time    `json:"lastConnected"`
	Status          DeviceStatus `json:"status"`
	Permissions     []string     `json:"permissions"`
}

// QRPayload is the JSON object serialized into the generated QR code.
// The exact shape is an external contract: a scanning client parses it,
// and expiresAt is epoch milliseconds.
type QRPayload struct {
	ConnectionID string   `json:"connectionId"`
	Token        string   `json:"token"`
	ServerURL    string   `json:"serverUrl"`
	Permissions  []string `json:"permissions"`
	ExpiresAt    int64    `json:"expiresAt"`
}
