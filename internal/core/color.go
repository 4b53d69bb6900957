package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Block colors by remaining hit points, from one hit left (dark blue)
// up to the toughest blocks (white).
const (
	ColorHP1 Color = iota + 64
	ColorHP2
	ColorHP3
	ColorHP4
	ColorHP5
	ColorHP6
	ColorHP7
	ColorHP8
	ColorHP9
	ColorHP10
	ColorHP11
)

// HPColor returns the palette entry for a block with hp hit points left.
// Values past the palette saturate at the last entry.
func HPColor(hp int) Color {
	switch {
	case hp <= 1:
		return ColorHP1
	case hp >= 11:
		return ColorHP11
	default:
		return ColorHP1 + Color(hp-1)
	}
}
