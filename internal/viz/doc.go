// Package viz renders lab sessions in the terminal.
//
// The live view is a Bubble Tea program that steps a [sim.Session] on its
// own tick interval:
//
//   - [Picker]: topic menu that opens a live view
//   - [Model]: canvas, outputs, parameters and a history chart for one session
//   - [Canvas]: braille pixel canvas used to draw particles and molecules
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	R       - Reset the session
//	Tab     - Select next parameter, ↑/↓ to adjust it
//	[ ]     - Scrub the history window
//	W A S D - Rotate the molecule
//	N B M   - Next step, previous step, toggle autoplay
//	T       - Cycle color themes
//	?       - Show help
package viz
