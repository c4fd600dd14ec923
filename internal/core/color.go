package core

// Color is the foreground of a screen cell. The host maps it to a terminal
// color; the zero value leaves the terminal default.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed           // stationary enemies, hostile shots
	ColorGreen         // arena frame
	ColorYellow
	ColorBlue
	ColorMagenta // mobile enemies
	ColorCyan
	ColorWhite // common weapon
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow // gold weapon
	ColorBrightBlue   // blue weapon, armor
	ColorBrightMagenta
	ColorBrightCyan // player
	ColorBrightWhite
	ColorOrange // boss
	ColorGray   // hints, locked weapons
)
