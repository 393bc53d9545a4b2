package tui

// Key bindings.
const (
	keyQuit   = "q"
	keyCtrlC  = "ctrl+c"
	keyEnter  = "enter"
	keyEsc    = "esc"
	keySlash  = "/"
	keyS      = "s"
	keySpace  = " "
	keyA      = "a"
	keyN      = "n"
	keyP      = "p"
	keyG      = "g"
	keyV      = "v"
	keyR      = "r"
	keyLeft   = "left"
	keyRight  = "right"
	keyH      = "h"
	keyL      = "l"
	keyUp     = "up"
	keyDown   = "down"
	keyFirst  = "<"
	keyLast   = ">"
	keyPlus   = "+"
	keyMinus  = "-"
	keyPgUp   = "pgup"
	keyPgDown = "pgdown"
)

// Text input limits.
const (
	searchInputCharLimit = 64
	searchInputWidth     = 32
	jumpInputCharLimit   = 6
	jumpInputWidth       = 8
)

// Layout defaults used before the first WindowSizeMsg.
const (
	defaultWidth  = 120
	defaultHeight = 30
	// chromeLines is the height taken by title, actions, pagination,
	// input, status and help lines.
	chromeLines   = 10
	minBodyHeight = 3
)
