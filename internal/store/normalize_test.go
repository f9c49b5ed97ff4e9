package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBool(t *testing.T) {
	truthy := true
	testCases := []struct {
		name  string
		input any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"pointer", &truthy, true},
		{"nil pointer", (*bool)(nil), false},
		{"string true", "true", true},
		{"string TRUE padded", " TRUE ", true},
		{"string 1", "1", true},
		{"string yes", "yes", true},
		{"string false", "false", false},
		{"string 0", "0", false},
		{"empty string", "", false},
		{"bytes", []byte("true"), true},
		{"int 1", 1, true},
		{"int 0", 0, false},
		{"int64", int64(1), true},
		{"float", 1.0, true},
		{"nil", nil, false},
		{"unsupported", struct{}{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeBool(tc.input))
		})
	}
}
