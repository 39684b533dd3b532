package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job intervals
const CleanupJobInterval = 5 * time.Minute

// Pairing session lifetime
const PairingSessionTTL = 5 * time.Minute

// Capabilities granted to devices when a session does not request any
var DefaultDevicePermissions = []string{"call", "sms", "sync"}

// Auth token lifetime
const AuthTokenTTL = 24 * time.Hour

// Default rate limiting
const DefaultRateLimitPerMin = 60
