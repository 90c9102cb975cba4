package core

// Color is the foreground colour of a screen cell.
type Color uint8

// Colours the arena draws with. ColorDefault leaves the terminal's own
// foreground in place.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorGray

	colorCount
)

var ansiCodes = [colorCount]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorCyan:         "6",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightCyan:   "14",
	ColorBrightWhite:  "15",
	ColorGray:         "245",
}

// ANSI returns the 256-colour palette index for c, or "" for ColorDefault
// and unknown values.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}
