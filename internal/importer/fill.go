package importer

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Fill colours that carry meaning in the membership sheet
const (
	// yellowARGB marks a member whose payment is not valid
	yellowARGB = "FFFFFF00"

	// Gray rows (inactive members) are theme colour 2 "Background 2" darker 50%,
	// stored by Excel as tint -0.499984740745262.
	grayTheme   = 2
	grayTintMin = -0.51
	grayTintMax = -0.49
)

// rowFill is what the A-D fills of a row say about the member
type rowFill struct {
	gray   bool
	yellow bool
}

// fgColor is the foreground colour of a pattern fill as written in styles.xml
type fgColor struct {
	argb  string // "" when the colour is not a literal rgb
	theme int    // -1 when the colour is not a theme colour
	tint  float64
}

// rawFill returns the fgColor of the fill applied by cell style styleID.
// The raw attributes are read because excelize only resolves theme based
// colours when the workbook carries a theme part.
func rawFill(f *excelize.File, styleID int) (fgColor, bool) {
	s := f.Styles
	if s == nil || s.CellXfs == nil || s.Fills == nil || styleID < 0 || styleID >= len(s.CellXfs.Xf) {
		return fgColor{}, false
	}

	fillID := s.CellXfs.Xf[styleID].FillID
	if fillID == nil || *fillID < 0 || *fillID >= len(s.Fills.Fill) {
		return fgColor{}, false
	}

	fill := s.Fills.Fill[*fillID]
	if fill == nil || fill.PatternFill == nil || fill.PatternFill.FgColor == nil {
		return fgColor{}, false
	}

	c := fill.PatternFill.FgColor
	color := fgColor{argb: toARGB(c.RGB), theme: -1, tint: c.Tint}
	if c.Theme != nil {
		color.theme = *c.Theme
	}
	return color, true
}

func classify(c fgColor) rowFill {
	return rowFill{gray: isGray(c), yellow: isYellow(c.argb)}
}

func toARGB(color string) string {
	c := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	switch len(c) {
	case 6:
		return "FF" + c
	case 8:
		return c
	}
	return ""
}

func isYellow(argb string) bool {
	return argb == yellowARGB
}

func isGray(c fgColor) bool {
	return c.theme == grayTheme && c.tint > grayTintMin && c.tint < grayTintMax
}
