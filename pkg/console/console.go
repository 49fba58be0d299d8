// Package console is the stdin/stdout front-end: it implements the
// game.Terminal contract, routes saves to a flat file or a bbolt slot
// store, and optionally records the session to a transcript database.
package console

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pforhan/scottFree2025/pkg/game"
	"github.com/pforhan/scottFree2025/pkg/savestore"
	"github.com/pforhan/scottFree2025/pkg/transcript"
)

// Console runs one adventure session over a terminal.
type Console struct {
	cfg *Config
	in  *bufio.Scanner
	out io.Writer

	adv   *game.Adventure
	store *savestore.Store
	rec   *transcript.Recorder

	// Transcript capture: everything printed since the last input line.
	lastInput string
	captured  strings.Builder
}

// New builds a Console over stdin/stdout. store and rec may be nil.
func New(cfg *Config, store *savestore.Store, rec *transcript.Recorder) *Console {
	return &Console{
		cfg:   cfg,
		in:    bufio.NewScanner(os.Stdin),
		out:   os.Stdout,
		store: store,
		rec:   rec,
	}
}

// Attach binds the session whose state the redraw notification reads.
// Required before Run; split from New because the Adventure needs the
// Terminal at construction.
func (c *Console) Attach(adv *game.Adventure) {
	c.adv = adv
}

// Run drives the session to completion: restore handling is left to
// the caller via saved, which may be nil.
func (c *Console) Run(saved io.Reader) {
	c.adv.Run(saved)
	for c.adv.Tick() {
	}
	c.flushTurn()
}

// NotifyRoomChanged redraws the room: description, exits and visible
// items.
func (c *Console) NotifyRoomChanged() {
	c.Print(c.adv.DescribeRoom())
	if exits := c.adv.DescribeExits(); exits != nil {
		c.Print(exits[0] + strings.Join(exits[1:], ", ") + ".\n")
	}
	if items := c.adv.DescribeItems(); items != nil {
		c.Print(items[0] + strings.Join(items[1:], " - ") + "\n")
	}
}

func (c *Console) Print(s string) {
	fmt.Fprint(c.out, s)
	if c.rec != nil {
		c.captured.WriteString(s)
	}
}

// ClearScreen clears a VT100-compatible terminal.
func (c *Console) ClearScreen() {
	fmt.Fprint(c.out, "\033[2J\033[H")
}

func (c *Console) Prompt(s string) {
	c.Print(s)
}

// ReadInput blocks for one line. EOF quits the session rather than
// spinning.
func (c *Console) ReadInput() string {
	c.flushTurn()
	if !c.in.Scan() {
		c.Print("\n")
		os.Exit(0)
	}
	c.lastInput = c.in.Text()
	return c.lastInput
}

// flushTurn records the previous input line and the output it produced.
func (c *Console) flushTurn() {
	if c.rec == nil {
		return
	}
	if c.lastInput != "" || c.captured.Len() > 0 {
		if err := c.rec.Record(c.lastInput, c.captured.String()); err != nil {
			log.Printf("WARNING: transcript: %v", err)
		}
	}
	c.lastInput = ""
	c.captured.Reset()
}

func (c *Console) Delay(d time.Duration) {
	if !c.cfg.NoDelay {
		time.Sleep(d)
	}
}

// SaveStream opens the configured save target: a bbolt slot when a
// slot store is attached, a flat file otherwise.
func (c *Console) SaveStream() (io.WriteCloser, error) {
	if c.store != nil {
		return c.store.Writer(c.cfg.SaveSlot, c.adv.Database().Tail.Adventure), nil
	}
	f, err := os.Create(c.cfg.SavePath)
	if err != nil {
		return nil, fmt.Errorf("creating save %s: %w", c.cfg.SavePath, err)
	}
	return f, nil
}

// LoadStream opens the configured save target for restore.
func (c *Console) LoadStream() (io.ReadCloser, error) {
	if c.store != nil {
		return c.store.ReaderFor(c.cfg.SaveSlot)
	}
	f, err := os.Open(c.cfg.SavePath)
	if err != nil {
		return nil, fmt.Errorf("opening save %s: %w", c.cfg.SavePath, err)
	}
	return f, nil
}
