package schema

// Config holds configuration for the item schema source.
type Config struct {
	// Source selects where the catalog is loaded from (storage, database).
	Source string `mapstructure:"source" default:"storage"`
	// Object is the schema dump object key inside the storage bucket.
	Object string `mapstructure:"object" default:"schema/items.json"`
	// TTLSeconds is how long a loaded catalog is considered fresh. Zero disables expiry.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"0"`
}

const (
	SourceStorage  = "storage"
	SourceDatabase = "database"
)

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceStorage, SourceDatabase:
		return true
	default:
		return false
	}
}
