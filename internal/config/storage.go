package config

// Storage holds the asset storage configuration.
type Storage struct {
	// UseCloud enables the cloud object storage backend. Cloud storage is
	// only selected if this flag is set AND all three credential fields
	// below are non-empty; otherwise assets are stored on local disk.
	UseCloud bool

	CloudEndpoint  string
	CloudAccessKey string
	CloudSecretKey string

	CloudBucket string
	CloudSecure bool // use https towards the cloud endpoint

	// LocalRoot is the base directory for the local disk backend.
	LocalRoot string
}

// CloudCredentialsComplete reports whether all three cloud credential
// fields are set.
func (s Storage) CloudCredentialsComplete() bool {
	return s.CloudEndpoint != "" && s.CloudAccessKey != "" && s.CloudSecretKey != ""
}

// Documents holds named document delivery configuration.
type Documents struct {
	// RulebookFile is the local path of the event rulebook PDF. If empty,
	// the daemon derives it from Storage.LocalRoot.
	RulebookFile string
}
