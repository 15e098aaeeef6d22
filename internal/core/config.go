package core

// RuntimeConfig holds the per-connection settings a front end starts with.
type RuntimeConfig struct {
	ScreenW   int   // Terminal or canvas width in cells
	ScreenH   int   // Terminal or canvas height in cells
	FrameRate int   // Redraws per second
	Seed      int64 // RNG seed; 0 means derive one from the clock
}

// DefaultConfig returns a standard 80x24 terminal at 30 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 30,
	}
}

// HUDRows is the number of rows above the play area used for score and
// message lines.
const HUDRows = 3

// FooterRows is the number of rows below the play area used for help.
const FooterRows = 1

// PlayArea returns the dimensions left for balloons once the HUD, footer and
// the surrounding frame are taken out. Results may be zero or negative on
// tiny terminals.
func (c RuntimeConfig) PlayArea() (width, height int) {
	return c.ScreenW - 2, c.ScreenH - HUDRows - FooterRows - 2
}
