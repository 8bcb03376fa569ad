package core

// Color is a foreground color for a screen cell.
// The value is a lipgloss color string: an ANSI index ("1", "208") or a
// hex string ("#EF4444"). The empty string is the terminal default.
type Color string

// Predefined colors for HUD and chrome.
const (
	ColorDefault     Color = ""
	ColorRed         Color = "1"
	ColorGreen       Color = "2"
	ColorYellow      Color = "3"
	ColorBlue        Color = "4"
	ColorMagenta     Color = "5"
	ColorCyan        Color = "6"
	ColorWhite       Color = "7"
	ColorBrightWhite Color = "15"
	ColorOrange      Color = "208"
	ColorGray        Color = "245"
)
