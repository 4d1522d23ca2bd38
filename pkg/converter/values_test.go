package converter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type decimal struct{ s string }

func (d decimal) String() string { return d.s }

func TestFloat(t *testing.T) {
	c := NewTypeConverter(zap.NewNop())

	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"plain text", "3.5", 3.5, true},
		{"padded text", "  850 ", 850, true},
		{"exponent", "8e-4", 0.0008, true},
		{"bytes", []byte("11.5"), 11.5, true},
		{"float64", 2.3, 2.3, true},
		{"float32", float32(0.5), 0.5, true},
		{"int64", int64(12), 12, true},
		{"uint8", uint8(7), 7, true},
		{"negative", "-4.2", -4.2, true},
		{"stringer", decimal{"1.25"}, 1.25, true},
		{"nil", nil, 0, false},
		{"blank", "   ", 0, false},
		{"nan sentinel", "NaN", 0, false},
		{"null sentinel", "NULL", 0, false},
		{"n/a sentinel", "N/A", 0, false},
		{"dash", "-", 0, false},
		{"not a number", "abc", 0, false},
		{"float NaN", math.NaN(), 0, false},
		{"float Inf", math.Inf(1), 0, false},
		{"inf text", "inf", 0, false},
		{"bool", true, 0, false},
		{"time", time.Unix(0, 0), 0, false},
		{"thousands separator rejected by default", "1,234", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Float(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestFloat_ThousandsSeparator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowThousandsSeparator = true
	c := NewTypeConverterWithConfig(zap.NewNop(), cfg)

	got, ok := c.Float("1,234.5")
	assert.True(t, ok)
	assert.Equal(t, 1234.5, got)
}

func TestText(t *testing.T) {
	c := NewTypeConverter(nil)

	assert.Equal(t, "1000.01", c.Text("1000.01"))
	assert.Equal(t, "1000.01", c.Text(1000.01))
	assert.Equal(t, "10797460", c.Text(int64(10797460)))
	assert.Equal(t, "K00752.01", c.Text([]byte(" K00752.01 ")))
	assert.Equal(t, "", c.Text(nil))
	assert.Equal(t, "", c.Text("nan"))
	assert.Equal(t, "", c.Text(math.NaN()))
}

func TestIsNull(t *testing.T) {
	c := NewTypeConverter(nil)

	assert.True(t, c.IsNull(nil))
	assert.True(t, c.IsNull(""))
	assert.True(t, c.IsNull([]byte("None")))
	assert.False(t, c.IsNull("0"))
	assert.False(t, c.IsNull(0.0))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 59.4, Round(59.39999999999999, 1))
	assert.Equal(t, 2.67, Round(2.675, 2), "2.675 is stored just below the tie")
	assert.Equal(t, 0.12, Round(0.125, 2), "exact ties round to even")
	assert.Equal(t, 850.0, Round(849.5, 0))
	assert.Equal(t, 852.0, Round(851.5, 0))
	assert.Equal(t, 11.5, Round(11.5, 2))
	assert.True(t, math.IsNaN(Round(math.NaN(), 2)))
}
