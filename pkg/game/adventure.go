package game

import (
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
	"github.com/pforhan/scottFree2025/pkg/lang"
)

// Adventure is one interactive session: the immutable database, the
// owned mutable state, the terminal it talks through and the random
// source driving automatic lines. Strictly single-threaded; one full
// turn runs to completion before the next input is read.
type Adventure struct {
	db   *gamedb.Database
	text *lang.DB
	term Terminal
	rng  *rand.Rand

	state *State

	// Last parsed command, kept for ECHO_NOUN actions and the GET/PUT
	// heuristics.
	lastVerb string
	lastNoun string
	verbID   int
	nounID   int

	finished bool
}

// New creates a session over a loaded database. text may be nil for no
// translation. rng may be nil, in which case a time-seeded generator is
// used; tests pass a fixed-seed one for reproducible automatic lines.
func New(db *gamedb.Database, text *lang.DB, term Terminal, rng *rand.Rand) *Adventure {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	a := &Adventure{
		db:   db,
		text: text,
		term: term,
		rng:  rng,
	}
	a.Restart()
	return a
}

// State exposes the runtime state, mainly for front-ends and tests.
func (a *Adventure) State() *State { return a.state }

// Database returns the immutable game description.
func (a *Adventure) Database() *gamedb.Database { return a.db }

// Finished reports whether the session has ended.
func (a *Adventure) Finished() bool { return a.finished }

// Restart resets the session to the initial state.
func (a *Adventure) Restart() {
	a.state = NewState(a.db)
}

func (a *Adventure) tr(key string) string {
	return a.text.Get(key)
}

func (a *Adventure) print(s string) {
	a.term.Print(s)
}

// LoadGame restores state from the terminal's load stream. A missing
// stream is reported and leaves state untouched; corrupt data is
// reported and forces a full reset since the in-memory structures may
// be partially overwritten.
func (a *Adventure) LoadGame() {
	r, err := a.term.LoadStream()
	if err != nil || r == nil {
		a.print(a.tr("Unable to restore game.\n"))
		return
	}
	defer r.Close()

	if err := a.state.Load(r); err != nil {
		a.print(a.tr("Unable to restore game.\n"))
		a.Restart()
	}
}

// SaveGame writes state to the terminal's save stream in the
// ScottFree-compatible layout.
func (a *Adventure) SaveGame() {
	w, err := a.term.SaveStream()
	if err != nil || w == nil {
		a.print(a.tr("Unable to create save file.\n"))
		return
	}
	if err := a.state.Save(w); err != nil {
		w.Close()
		a.print(a.tr("Unable to create save file.\n"))
		return
	}
	if err := w.Close(); err != nil {
		a.print(a.tr("Unable to create save file.\n"))
		return
	}
	a.print(a.tr("\nSaved.\n"))
}

// Single-letter command abbreviations, expanded only when the command
// has no noun word.
var abbreviations = []string{"NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN", "INVENTORY"}

func (a *Adventure) expandAbbreviation(word string) string {
	if len(word) != 1 {
		return word
	}
	c := strings.ToUpper(word)
	for _, full := range abbreviations {
		if c[0] == full[0] {
			return a.tr(full)
		}
	}
	return word
}

// parseCommand splits an input line into at most a verb word and a noun
// word (anything past the second word is discarded) and resolves both
// against the vocabulary. A lone direction word turns into GO with that
// direction. Reports whether the verb resolved.
func (a *Adventure) parseCommand(input string) bool {
	if i := strings.IndexByte(input, ' '); i == -1 {
		a.lastVerb = input
		a.lastNoun = ""
	} else {
		a.lastVerb = input[:i]
		rest := strings.TrimSpace(input[i:])
		if j := strings.IndexByte(rest, ' '); j == -1 {
			a.lastNoun = rest
		} else {
			a.lastNoun = rest[:j]
		}
	}

	if a.lastNoun == "" {
		a.lastVerb = a.expandAbbreviation(a.lastVerb)
	}

	// Try the verb word as a noun first: a bare direction is implicitly
	// GO <direction>.
	a.nounID = gamedb.WhichWord(a.lastVerb, a.db.Nouns)
	if a.nounID >= gamedb.FirstDir && a.nounID <= gamedb.LastDir {
		a.verbID = gamedb.VerbGo
	} else {
		a.verbID = gamedb.WhichWord(a.lastVerb, a.db.Verbs)
		a.nounID = gamedb.WhichWord(a.lastNoun, a.db.Nouns)
	}

	if a.verbID == gamedb.NotFound {
		a.print(a.tr("\"") + a.lastVerb + a.tr("\" is a word I don't know...sorry!\n"))
	}
	return a.verbID != gamedb.NotFound
}

// readCommand blocks for input, skipping blank lines and debug
// commands, and parses what remains.
func (a *Adventure) readCommand() bool {
	var input string
	for {
		input = strings.TrimSpace(a.term.ReadInput())
		if a.debugCommand(input) {
			return false
		}
		if input != "" {
			break
		}
	}
	return a.parseCommand(input)
}

// itemByNoun resolves a noun word to an item present in the current
// room or carried whose auto-pick name matches it. The presence
// restriction matters when several items share a name.
func (a *Adventure) itemByNoun(word string) int {
	index := gamedb.WhichWord(word, a.db.Nouns)
	realName := word
	if index != gamedb.NotFound {
		realName = a.db.Nouns[index].Text
	}
	for i := range a.db.Items {
		if a.state.ItemHere(i) &&
			gamedb.Match(realName, a.db.Items[i].AutoPick, a.db.Header.WordLength) {
			return i
		}
	}
	return gamedb.NotFound
}

// Run starts the session: optionally restores a saved game from r,
// performs the initial redraw and banner, runs the opening automatic
// pass and shows the first prompt.
func (a *Adventure) Run(saved io.Reader) {
	if saved != nil {
		if err := a.state.Load(saved); err != nil {
			a.print(a.tr("Unable to restore game.\n"))
			a.Restart()
		}
	}

	a.term.NotifyRoomChanged()

	a.print(a.tr("* ScottFree 2025\n" +
		"* A Scott Adams Classic Adventure driver in Go.\n\n"))

	a.finished = a.doActions(gamedb.Auto, gamedb.Any, false)

	if !a.finished {
		a.term.Prompt(a.tr("\nTell me what to do ? "))
	}
}

// Tick runs one full turn: read and resolve input, dispatch the
// player's command, tick the light source, run the automatic pass and
// prompt again. Returns false once the game is over.
func (a *Adventure) Tick() bool {
	if a.finished {
		return false
	}

	if a.readCommand() {
		if a.doActions(a.verbID, a.nounID, false) {
			a.finished = true
			return false
		}

		a.lampTick()

		if a.doActions(gamedb.Auto, gamedb.Any, false) {
			a.finished = true
			return false
		}
	}

	a.term.Prompt(a.tr("\nTell me what to do ? "))
	return true
}

// lampTick burns one unit of light per turn. Burnout is reported when
// the lamp is carried; a dimming warning fires every fifth turn under
// 25 while the lamp is present. A light duration of -1 never runs down.
func (a *Adventure) lampTick() {
	if a.state.LampDestroyed() || a.db.Header.LightTime == -1 {
		return
	}
	a.state.SetLightTime(a.state.LightTime() - 1)
	if a.state.LightTime() < 1 {
		if a.state.LampCarried() {
			a.print(a.tr("Your light has run out. "))
		}
	} else if a.state.LightTime() < 25 {
		if a.state.LampHere() && a.state.LightTime()%5 == 0 {
			a.print(a.tr("Your light is growing dim. "))
		}
	}
}
