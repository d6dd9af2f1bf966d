// Package viz hosts the particle field in a terminal.
//
// [Model] is a Bubble Tea program that acts as a field host: terminal size
// messages are resizes and mouse motion is pointer movement. The field draws
// onto a [Surface], a braille [Canvas] where every cell carries a blended
// color, rendered with Lip Gloss.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	T     - Toggle dark/light theme
//	?     - Show help overlay
//	Q     - Quit
package viz
