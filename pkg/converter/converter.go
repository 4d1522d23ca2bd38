// pkg/converter/converter.go
package converter

import (
	"strings"

	"go.uber.org/zap"
)

// TypeConverter coerces loosely typed cell values (CSV text, spreadsheet
// strings, SQL driver values) into the numeric and text forms the pipeline uses
type TypeConverter struct {
	logger *zap.Logger
	// Configuration options
	config TypeConverterConfig
	nulls  map[string]struct{}
}

// TypeConverterConfig provides configuration options for value coercion
type TypeConverterConfig struct {
	// Cell contents (compared case-insensitively after trimming) treated as missing
	NullSentinels []string
	// Whether to strip thousands separators ("1,234.5") before parsing
	AllowThousandsSeparator bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() TypeConverterConfig {
	return TypeConverterConfig{
		NullSentinels: []string{
			"", "nan", "null", "nil", "none", "na", "n/a", "nat", "-", "--", "?",
		},
		AllowThousandsSeparator: false,
	}
}

// NewTypeConverter creates a new TypeConverter with default configuration
func NewTypeConverter(logger *zap.Logger) *TypeConverter {
	return NewTypeConverterWithConfig(logger, DefaultConfig())
}

// NewTypeConverterWithConfig creates a TypeConverter with custom configuration
func NewTypeConverterWithConfig(logger *zap.Logger, config TypeConverterConfig) *TypeConverter {
	if logger == nil {
		logger = zap.NewNop()
	}
	nulls := make(map[string]struct{}, len(config.NullSentinels))
	for _, s := range config.NullSentinels {
		nulls[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return &TypeConverter{
		logger: logger,
		config: config,
		nulls:  nulls,
	}
}

// IsNull determines if a value should be treated as missing
func (c *TypeConverter) IsNull(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return c.isNullText(v)
	case []byte:
		return c.isNullText(string(v))
	default:
		return false
	}
}

func (c *TypeConverter) isNullText(s string) bool {
	_, ok := c.nulls[strings.ToLower(strings.TrimSpace(s))]
	return ok
}
