package core

// Color is a foreground color for a screen cell.
// Front ends map it to ANSI colors or CSS.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorPink
	ColorGray
)

// BalloonPalette is the rotation of balloon colors.
var BalloonPalette = []Color{
	ColorRed,
	ColorYellow,
	ColorBlue,
	ColorGreen,
	ColorMagenta,
	ColorOrange,
	ColorCyan,
	ColorPink,
}

// BalloonColor picks a palette color from a spawn sequence number so the
// same balloon keeps its color across frames.
func BalloonColor(seq uint64) Color {
	return BalloonPalette[seq%uint64(len(BalloonPalette))]
}

// String returns the lowercase color name, also used as a CSS class.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorPink:
		return "pink"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}
