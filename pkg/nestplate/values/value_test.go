package values

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named string

func (n named) String() string { return "named:" + string(n) }

func TestString(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint8", uint8(255), "255"},
		{"float whole", 10.0, "10"},
		{"float fraction", 3.25, "3.25"},
		{"float32", float32(0.5), "0.5"},
		{"json number", json.Number("12.50"), "12.50"},
		{"time", ts, "2024-03-01T12:30:00Z"},
		{"duration", 90 * time.Second, "1m30s"},
		{"stringer", named("x"), "named:x"},
		{"error", errors.New("boom"), "boom"},
		{"slice fallback", []int{1, 2}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOK bool
	}{
		{"float64", 1.5, 1.5, true},
		{"int", 3, 3, true},
		{"int64", int64(-4), -4, true},
		{"uint32", uint32(9), 9, true},
		{"numeric string", " 12.5 ", 12.5, true},
		{"json number", json.Number("8"), 8, true},
		{"non numeric string", "abc", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float64(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestTime(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, ok := Time("2024-01-02T03:04:05Z")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got)
	})

	t.Run("date only", func(t *testing.T) {
		got, ok := Time("2024-01-02")
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("datetime-local", func(t *testing.T) {
		got, ok := Time("2024-01-02T10:30")
		require.True(t, ok)
		assert.Equal(t, 10, got.Hour())
		assert.Equal(t, 30, got.Minute())
	})

	t.Run("unix seconds", func(t *testing.T) {
		got, ok := Time(int64(0))
		require.True(t, ok)
		assert.Equal(t, int64(0), got.Unix())
	})

	t.Run("time value", func(t *testing.T) {
		now := time.Now()
		got, ok := Time(now)
		require.True(t, ok)
		assert.True(t, now.Equal(got))
	})

	t.Run("invalid", func(t *testing.T) {
		_, ok := Time("yesterday")
		assert.False(t, ok)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var p *time.Time
		_, ok := Time(p)
		assert.False(t, ok)
	})
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(nil))
	assert.False(t, IsTruthy(false))
	assert.False(t, IsTruthy(""))
	assert.False(t, IsTruthy(0))
	assert.False(t, IsTruthy(0.0))
	assert.True(t, IsTruthy(true))
	assert.True(t, IsTruthy("x"))
	assert.True(t, IsTruthy(-1))
	assert.True(t, IsTruthy([]int{}))
}
