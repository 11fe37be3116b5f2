package codec

import (
	"github.com/signadot/go-surreal/naming"

	"go.uber.org/zap"
)

// DefaultTagKey is the struct tag key read when Config.TagKey is empty.
const DefaultTagKey = "surreal"

// Config holds the settings a Registry is built with. The zero value is
// usable: snake_case wire names, no logging, "surreal" struct tags.
type Config struct {
	// Naming selects how host identifiers become wire names.
	Naming naming.Convention

	// Logger receives debug records about codec construction. Nil
	// disables logging.
	Logger *zap.Logger

	// TagKey is the struct tag key holding field options.
	TagKey string
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.TagKey == "" {
		c.TagKey = DefaultTagKey
	}
	return c
}
