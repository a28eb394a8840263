package domain

import (
	"fmt"
)

// Display is the structured time value shown for a timer: remaining time for
// countdowns, elapsed time for stopwatches, wall-clock time for world clocks.
type Display struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	// Finished is set for countdowns whose target instant has passed.
	Finished bool
}

// Equal reports whether two displays would render identically.
// The polling loop uses this to skip redundant publications.
func (d Display) Equal(other Display) bool {
	return d == other
}

// ShowDays reports whether the days column should be rendered.
func (d Display) ShowDays() bool {
	return d.Days > 0
}

// String formats the display as DD:HH:MM:SS, omitting days when zero.
func (d Display) String() string {
	if d.ShowDays() {
		return fmt.Sprintf("%02d:%02d:%02d:%02d", d.Days, d.Hours, d.Minutes, d.Seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}
