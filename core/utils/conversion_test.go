package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 5021, 5021},
		{"Float", float64(5021), 5021},
		{"String", "5021", 5021},
		{"FloatString", "12.0", 12},
		{"JSONNumber", json.Number("30"), 30},
		{"Bytes", []byte("7"), 7},
		{"Garbage", "abc", 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "taunt", ToString("taunt"))
	assert.Equal(t, "5", ToString(float64(5)))
	assert.Equal(t, "true", ToString(true))
}
