package config

const (
	defaultMailPort           = 587
	securePort                = 465
	defaultMailMaxConnections = 5
	defaultMailMaxMessages    = 100
)

// Mail holds the SMTP transport configuration.
type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string // sender address, e.g. "GoEvent-Admin <noreply@example.org>"

	// Connection pool bounds. Zero values fall back to the defaults.
	MaxConnections int
	MaxMessages    int
}

// EffectivePort returns the configured port, falling back to the
// submission port 587.
func (m Mail) EffectivePort() int {
	if m.Port == 0 {
		return defaultMailPort
	}

	return m.Port
}

// Secure reports whether the transport should use implicit TLS.
// Derived from the port: 465 is SMTPS, everything else negotiates STARTTLS.
func (m Mail) Secure() bool {
	return m.EffectivePort() == securePort
}

// Complete reports whether host, username and password are all set.
// An incomplete config must be rejected before any network attempt.
func (m Mail) Complete() bool {
	return m.Host != "" && m.Username != "" && m.Password != ""
}

// PoolMaxConnections returns the bounded connection count for the transport pool.
func (m Mail) PoolMaxConnections() int {
	if m.MaxConnections <= 0 {
		return defaultMailMaxConnections
	}

	return m.MaxConnections
}

// PoolMaxMessages returns the message budget per pooled connection.
func (m Mail) PoolMaxMessages() int {
	if m.MaxMessages <= 0 {
		return defaultMailMaxMessages
	}

	return m.MaxMessages
}
