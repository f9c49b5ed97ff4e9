package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestToARGB(t *testing.T) {
	assert.Equal(t, "FFFFFF00", toARGB("ffff00"))
	assert.Equal(t, "FFFFFF00", toARGB("#FFFF00"))
	assert.Equal(t, "FFFFFF00", toARGB("FFFFFF00"))
	assert.Empty(t, toARGB(""))
	assert.Empty(t, toARGB("FFF"))
}

func TestIsYellow(t *testing.T) {
	assert.True(t, isYellow("FFFFFF00"))
	assert.False(t, isYellow("FFFFFF01"))
	assert.False(t, isYellow("00FFFF00"))
	assert.False(t, isYellow(""))
}

func TestIsGray(t *testing.T) {
	testCases := []struct {
		name  string
		color fgColor
		want  bool
	}{
		{"background 2 darker 50%", fgColor{theme: 2, tint: -0.499984740745262}, true},
		{"background 2 darker 50% lower bound", fgColor{theme: 2, tint: -0.5099}, true},
		{"background 2 darker 25%", fgColor{theme: 2, tint: -0.249977111117893}, false},
		{"background 2 darker 75%", fgColor{theme: 2, tint: -0.749992370372631}, false},
		{"background 2 itself", fgColor{theme: 2}, false},
		{"text 2 darker 50%", fgColor{theme: 3, tint: -0.499984740745262}, false},
		{"rgb background 2 darker 50%", fgColor{argb: "FF767171", theme: -1}, false},
		{"rgb neutral gray", fgColor{argb: "FF737373", theme: -1}, false},
		{"none", fgColor{theme: -1}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isGray(tc.color))
		})
	}
}

func TestRawFill(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() {
		_ = f.Close()
	})

	yellow, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFFF00"}},
	})
	require.NoError(t, err)

	color, ok := rawFill(f, yellow)
	require.True(t, ok)
	assert.Equal(t, fgColor{argb: "FFFFFF00", theme: -1}, color)
	assert.Equal(t, rowFill{yellow: true}, classify(color))

	// Default style has an empty fill
	_, ok = rawFill(f, 0)
	assert.False(t, ok)

	_, ok = rawFill(f, 999)
	assert.False(t, ok)
	_, ok = rawFill(f, -1)
	assert.False(t, ok)
}
