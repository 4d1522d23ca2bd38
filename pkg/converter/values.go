// pkg/converter/values.go
package converter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Float coerces a cell to a finite float64. The second result is false for
// missing values, null sentinels, text that is not a number, NaN and ±Inf.
func (c *TypeConverter) Float(value any) (float64, bool) {
	if c.IsNull(value) {
		return 0, false
	}

	var (
		f  float64
		ok bool
	)
	switch v := value.(type) {
	case float64:
		f, ok = v, true
	case float32:
		f, ok = float64(v), true
	case int:
		f, ok = float64(v), true
	case int8:
		f, ok = float64(v), true
	case int16:
		f, ok = float64(v), true
	case int32:
		f, ok = float64(v), true
	case int64:
		f, ok = float64(v), true
	case uint:
		f, ok = float64(v), true
	case uint8:
		f, ok = float64(v), true
	case uint16:
		f, ok = float64(v), true
	case uint32:
		f, ok = float64(v), true
	case uint64:
		f, ok = float64(v), true
	case string:
		f, ok = c.parseText(v)
	case []byte:
		f, ok = c.parseText(string(v))
	case bool, time.Time:
		ok = false
	default:
		// Driver-specific numeric types (decimals, nullable wrappers) usually
		// format to a parseable string
		f, ok = c.parseText(fmt.Sprint(v))
		if !ok {
			c.logger.Debug("Cannot convert value to numeric",
				zap.String("type", fmt.Sprintf("%T", value)))
		}
	}

	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseText parses trimmed text as a float
func (c *TypeConverter) parseText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if c.isNullText(s) {
		return 0, false
	}
	if c.config.AllowThousandsSeparator {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Text converts a cell to its display string. Missing values become "".
func (c *TypeConverter) Text(value any) string {
	if c.IsNull(value) {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(v)) {
			return ""
		}
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, bool:
		return fmt.Sprintf("%v", v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Round rounds x to the given number of decimal places using correctly
// rounded decimal conversion (ties to even on the exact binary value)
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}
