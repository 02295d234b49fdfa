package driven

// ConfigStore persists user configuration as key-value pairs.
// Backed by a TOML file in the askdoc config directory.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetFloat retrieves a float configuration value.
	GetFloat(key string) float64

	// Set stores a configuration value.
	Set(key string, value any) error

	// Delete removes a configuration value.
	Delete(key string) error

	// Keys returns all configuration keys.
	Keys() []string

	// Save persists the configuration.
	Save() error
}
