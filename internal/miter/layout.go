package miter

import "fmt"

// Layout decides whether per-output comparison results leave the wrapper.
// The testbench generator must be given the same Layout as the wrapper it
// drives.
type Layout string

const (
	// LayoutInternal keeps comparison wires inside the wrapper; only
	// trigger is visible.
	LayoutInternal Layout = "internal"

	// LayoutVisible exports each comparison wire as an output port ahead
	// of trigger, so the driver can report which outputs differ.
	LayoutVisible Layout = "visible"
)

// ParseLayout parses a layout name; the empty string means LayoutInternal.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutInternal:
		return LayoutInternal, nil
	case LayoutVisible:
		return LayoutVisible, nil
	}
	return "", fmt.Errorf("unknown layout %q: must be %q or %q", s, LayoutInternal, LayoutVisible)
}
