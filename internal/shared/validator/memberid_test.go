package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMemberID(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"B001", true},
		{"D0042", true},
		{"U123", true},
		{"b001", false},
		{"B01", false},
		{"B00001", false},
		{"BB001", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMemberID(tc.code))
		})
	}
}
