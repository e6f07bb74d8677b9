// Package viz plays recorded runs back in the terminal.
//
// [Player] is a Bubble Tea model that draws each body's trail and a marker
// sized by log radius onto a Braille [Canvas], coloured by the body's display
// hint, next to a panel of per-body temperatures in °C.
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	+ -   - Double/halve playback speed
//	c     - Cycle the body fixed at the centre
//	t T   - Tilt the view about the x axis
//	z Z   - Zoom in/out
//	[ ]   - Seek backward/forward
//	p     - Cycle panel themes
//	q     - Quit
package viz
