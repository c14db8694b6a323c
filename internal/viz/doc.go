// Package viz renders a running engine in the terminal.
//
// Molecules are drawn on a braille [Canvas] through an orbiting [Camera]:
// atoms as discs in their element color and bonds as two half-lines, one per
// element. [Model] is a Bubble Tea program that steps the engine every frame.
//
// # Key Bindings
//
//	Space - Start, pause or resume
//	S     - Start or stop (stopping clears every molecule)
//	+ -   - Speed up or slow down, 0 resets
//	Up/Dn - Temperature in 10 K steps
//	Tab   - Choose the molecule to spawn
//	A     - Spawn it
//	?     - Show help overlay
package viz
