// Package game holds the runtime half of the engine: the mutable game
// state, the vocabulary resolver, the condition/action interpreter and
// the turn-based session loop. It performs no I/O of its own; every
// interaction with the player goes through the Terminal interface.
package game

import (
	"io"
	"time"
)

// Terminal is the capability contract a front-end implements. Console,
// WebSocket and test-harness terminals attach interchangeably.
type Terminal interface {
	// NotifyRoomChanged tells the front-end to re-query the room, exit
	// and item descriptions and redraw its static section.
	NotifyRoomChanged()

	// Print appends text to the scrolling transcript. Text may or may
	// not end in a newline.
	Print(text string)

	// ClearScreen clears the scrolling transcript. Optional; many of the
	// original drivers never implemented it.
	ClearScreen()

	// Prompt shows an input prompt. Most implementations just print it.
	Prompt(text string)

	// ReadInput blocks for one line of player input. Empty or malformed
	// lines are fine; the parser rejects what it cannot use.
	ReadInput() string

	// Delay pauses presentation for roughly d. The interpreter does not
	// depend on the pause actually happening.
	Delay(d time.Duration)

	// SaveStream returns a writable stream for a game save. Returning an
	// error abandons the save; that is a valid outcome, not a fault.
	SaveStream() (io.WriteCloser, error)

	// LoadStream returns a readable stream holding a saved game. A
	// missing save is reported to the player but is non-fatal.
	LoadStream() (io.ReadCloser, error)
}
