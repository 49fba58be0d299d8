package game

import (
	"fmt"
	"strings"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
)

// debugCommand intercepts the '#'-prefixed inspection commands and
// dumps the requested slice of state. Returns true when the input was
// consumed here.
func (a *Adventure) debugCommand(input string) bool {
	if !strings.HasPrefix(input, "#") {
		return false
	}

	switch strings.ToLower(input) {
	case "#room":
		a.debugRoom()
	case "#flags":
		a.debugFlags()
	case "#counters":
		a.debugCounters()
	case "#items":
		a.debugItems()
	case "#words":
		a.debugWords()
	case "#dump":
		a.debugRoom()
		a.debugFlags()
		a.debugCounters()
		a.debugItems()
	default:
		a.print(fmt.Sprintf("unknown debug command %q\n", input))
	}
	return true
}

func (a *Adventure) debugRoom() {
	room := a.state.Room()
	a.print(fmt.Sprintf("room %d: %q\n", room, a.db.Rooms[room].Description))
	for dir := 1; dir <= 6; dir++ {
		a.print(fmt.Sprintf("  %s -> %d\n", directionNames[dir-1], a.db.Rooms[room].Exit(dir)))
	}
}

func (a *Adventure) debugFlags() {
	var set []string
	for i := 0; i < gamedb.NumFlags; i++ {
		if a.state.Flag(i) {
			set = append(set, fmt.Sprintf("%d", i))
		}
	}
	a.print(fmt.Sprintf("flags set: [%s]  dark: %v  light: %d\n",
		strings.Join(set, " "), a.state.IsDark(), a.state.LightTime()))
}

func (a *Adventure) debugCounters() {
	a.print(fmt.Sprintf("counter: %d\n", a.state.Counter()))
	for i := 0; i < gamedb.NumCounters; i++ {
		if v := a.state.CounterSlot(i); v != 0 {
			a.print(fmt.Sprintf("  slot %d: %d\n", i, v))
		}
	}
}

func (a *Adventure) debugItems() {
	for i := range a.db.Items {
		loc := a.state.ItemLocation(i)
		a.print(fmt.Sprintf("item %d at %d: %q\n", i, loc, a.db.Items[i].Description))
	}
}

func (a *Adventure) debugWords() {
	a.print("verbs:\n")
	for i, w := range a.db.Verbs {
		a.print(fmt.Sprintf("  %d %s\n", i, w.Text))
	}
	a.print("nouns:\n")
	for i, w := range a.db.Nouns {
		a.print(fmt.Sprintf("  %d %s\n", i, w.Text))
	}
}
