package game

import (
	"fmt"
	"io"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
	"github.com/pforhan/scottFree2025/pkg/token"
)

// State is the single mutable runtime record of a session: current
// room, item locations, flags, counters, room-swap slots and the light
// timer. It is owned by exactly one Adventure and never shared across
// goroutines. Mutators track the "room changed" dirty flag so the
// front-end only redraws when something visible moved.
type State struct {
	header *gamedb.Header
	orig   []int // initial item locations, for the ORIGROOM conditions

	room      int
	roomSwap  int // the single room-swap slot
	roomSlots [gamedb.NumRoomSlots]int

	itemLoc []int

	flags    [gamedb.NumFlags]bool
	counters [gamedb.NumCounters]int
	counter  int // currently selected counter value

	lightTime int

	endGame     bool
	roomChanged bool
}

// NewState builds a fresh state from the database's header and initial
// item locations. Restarting a game is just calling this again.
func NewState(db *gamedb.Database) *State {
	s := &State{
		header:    &db.Header,
		orig:      make([]int, len(db.Items)),
		itemLoc:   make([]int, len(db.Items)),
		room:      db.Header.StartRoom,
		lightTime: db.Header.LightTime,
	}
	for i := range db.Items {
		s.orig[i] = db.Items[i].Location
		s.itemLoc[i] = db.Items[i].Location
	}
	s.room = s.clampRoom(s.room)
	return s
}

// Room returns the current room number.
func (s *State) Room() int { return s.room }

// clampRoom forces a room number into the room table. Scripted
// teleports, swap slots and saved games are not trusted to stay in
// range, and every Rooms[] access downstream assumes they do.
func (s *State) clampRoom(room int) int {
	if room < 0 {
		return 0
	}
	if room >= s.header.NumRooms {
		return s.header.NumRooms - 1
	}
	return room
}

// SetRoom moves the player and marks the room dirty.
func (s *State) SetRoom(room int) {
	s.room = s.clampRoom(room)
	s.roomChanged = true
}

// SwapRoom exchanges the current room with the single room-swap slot.
func (s *State) SwapRoom() {
	if s.room != s.roomSwap {
		s.room, s.roomSwap = s.clampRoom(s.roomSwap), s.room
		s.roomChanged = true
	}
}

// SwapRoomSlot exchanges the current room with indexed slot n.
func (s *State) SwapRoomSlot(n int) {
	if n < 0 || n >= gamedb.NumRoomSlots {
		return
	}
	if s.room != s.roomSlots[n] {
		s.room, s.roomSlots[n] = s.clampRoom(s.roomSlots[n]), s.room
		s.roomChanged = true
	}
}

// Flag returns flag n, false for out-of-range indices.
func (s *State) Flag(n int) bool {
	if n < 0 || n >= gamedb.NumFlags {
		return false
	}
	return s.flags[n]
}

// SetFlag sets flag n. Setting the dark flag dirties the room.
func (s *State) SetFlag(n int) {
	if n < 0 || n >= gamedb.NumFlags || s.flags[n] {
		return
	}
	s.flags[n] = true
	if n == gamedb.DarkFlag {
		s.roomChanged = true
	}
}

// ClearFlag clears flag n. Clearing the dark flag dirties the room.
func (s *State) ClearFlag(n int) {
	if n < 0 || n >= gamedb.NumFlags || !s.flags[n] {
		return
	}
	s.flags[n] = false
	if n == gamedb.DarkFlag {
		s.roomChanged = true
	}
}

// SetDark and ClearDark flip the reserved darkness flag without
// touching the dirty flag, matching the save/load path.
func (s *State) SetDark()     { s.flags[gamedb.DarkFlag] = true }
func (s *State) ClearDark()   { s.flags[gamedb.DarkFlag] = false }
func (s *State) IsDark() bool { return s.flags[gamedb.DarkFlag] }

// IsReallyDark reports whether the player actually cannot see: the dark
// flag is set, the light source is neither carried nor here, and its
// charge is gone.
func (s *State) IsReallyDark() bool {
	return s.IsDark() && !s.LampHere() && s.lightTime <= 0
}

// Counter returns the currently selected counter value.
func (s *State) Counter() int { return s.counter }

// SetCounter sets the currently selected counter value.
func (s *State) SetCounter(v int) { s.counter = v }

// CounterSlot returns stored counter n.
func (s *State) CounterSlot(n int) int {
	if n < 0 || n >= gamedb.NumCounters {
		return 0
	}
	return s.counters[n]
}

// SelectCounter swaps the current counter with stored counter n.
func (s *State) SelectCounter(n int) {
	if n < 0 || n >= gamedb.NumCounters {
		return
	}
	s.counter, s.counters[n] = s.counters[n], s.counter
}

// ItemLocation returns the location of item n, Destroyed for bad
// indices.
func (s *State) ItemLocation(n int) int {
	if n < 0 || n >= len(s.itemLoc) {
		return gamedb.Destroyed
	}
	return s.itemLoc[n]
}

// OriginalLocation returns item n's location at the start of the game.
func (s *State) OriginalLocation(n int) int {
	if n < 0 || n >= len(s.orig) {
		return gamedb.Destroyed
	}
	return s.orig[n]
}

// SetItemLocation moves item n, dirtying the room if the item left or
// entered the current room.
func (s *State) SetItemLocation(n, loc int) {
	if n < 0 || n >= len(s.itemLoc) || s.itemLoc[n] == loc {
		return
	}
	if s.itemLoc[n] == s.room || loc == s.room {
		s.roomChanged = true
	}
	s.itemLoc[n] = loc
}

// ItemInRoom reports whether item n lies in the current room.
func (s *State) ItemInRoom(n int) bool {
	return s.ItemLocation(n) == s.room
}

// ItemCarried reports whether item n is in the inventory.
func (s *State) ItemCarried(n int) bool {
	loc := s.ItemLocation(n)
	return loc == gamedb.Carried || loc == gamedb.CarriedAlt
}

// ItemDestroyed reports whether item n has been removed from play.
func (s *State) ItemDestroyed(n int) bool {
	return s.ItemLocation(n) == gamedb.Destroyed
}

// ItemHere reports whether item n is carried or in the current room.
func (s *State) ItemHere(n int) bool {
	return s.ItemCarried(n) || s.ItemInRoom(n)
}

// MoveItemHere drops item n into the current room.
func (s *State) MoveItemHere(n int) { s.SetItemLocation(n, s.room) }

// CarryItem puts item n into the inventory.
func (s *State) CarryItem(n int) { s.SetItemLocation(n, gamedb.Carried) }

// DestroyItem removes item n from play.
func (s *State) DestroyItem(n int) { s.SetItemLocation(n, gamedb.Destroyed) }

// SwapItems exchanges the locations of two items.
func (s *State) SwapItems(n1, n2 int) {
	if n1 < 0 || n1 >= len(s.itemLoc) || n2 < 0 || n2 >= len(s.itemLoc) {
		return
	}
	if s.itemLoc[n1] == s.itemLoc[n2] {
		return
	}
	if s.itemLoc[n1] == s.room || s.itemLoc[n2] == s.room {
		s.roomChanged = true
	}
	s.itemLoc[n1], s.itemLoc[n2] = s.itemLoc[n2], s.itemLoc[n1]
}

// Lamp helpers; the light source occupies a fixed item slot.
func (s *State) LampCarried() bool   { return s.ItemCarried(gamedb.Lamp) }
func (s *State) LampInRoom() bool    { return s.ItemInRoom(gamedb.Lamp) }
func (s *State) LampHere() bool      { return s.ItemHere(gamedb.Lamp) }
func (s *State) LampDestroyed() bool { return s.ItemDestroyed(gamedb.Lamp) }
func (s *State) CarryLamp()          { s.CarryItem(gamedb.Lamp) }

// LightTime returns the remaining light-source charge.
func (s *State) LightTime() int { return s.lightTime }

// SetLightTime sets the remaining charge, clamped at zero. Crossing
// zero in either direction dirties the room since visibility changes.
func (s *State) SetLightTime(t int) {
	if s.lightTime != t {
		if s.lightTime == 0 || t == 0 {
			s.roomChanged = true
		}
		s.lightTime = t
	}
	if s.lightTime < 0 {
		s.lightTime = 0
	}
}

// CountCarried returns the number of carried items.
func (s *State) CountCarried() int {
	n := 0
	for i := range s.itemLoc {
		if s.ItemCarried(i) {
			n++
		}
	}
	return n
}

// CanCarryMore reports whether inventory capacity remains.
func (s *State) CanCarryMore() bool {
	return s.CountCarried() < s.header.MaxCarry
}

// RoomChanged reports the dirty flag.
func (s *State) RoomChanged() bool { return s.roomChanged }

// SetRoomChanged forces a redraw on the next notification check.
func (s *State) SetRoomChanged() { s.roomChanged = true }

// ClearRoomChanged resets the dirty flag at the top of a dispatch pass.
func (s *State) ClearRoomChanged() { s.roomChanged = false }

// Ended reports whether the game is over.
func (s *State) Ended() bool { return s.endGame }

// End marks the game over.
func (s *State) End() { s.endGame = true }

// Save writes the state in the ScottFree-compatible save layout: 16
// counter/room-slot pairs, the packed flag word, the dark flag, room,
// counter, swap slot and light time, then one location per item.
func (s *State) Save(w io.Writer) error {
	tw := token.NewWriter(w)

	for i := 0; i < gamedb.NumCounters; i++ {
		if err := tw.Short(s.counters[i]); err != nil {
			return fmt.Errorf("saving counters: %w", err)
		}
		if err := tw.Short(s.roomSlots[i]); err != nil {
			return fmt.Errorf("saving room slots: %w", err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}

	flagWord := 0
	for i := 0; i < gamedb.NumFlags; i++ {
		if s.flags[i] {
			flagWord |= 1 << i
		}
	}
	dark := 0
	if s.IsDark() {
		dark = 1
	}
	for _, v := range []int{flagWord, dark, s.room, s.counter, s.roomSwap, s.lightTime} {
		if err := tw.Int(v); err != nil {
			return fmt.Errorf("saving state word: %w", err)
		}
	}
	if err := tw.EndLine(); err != nil {
		return err
	}

	for i := range s.itemLoc {
		if err := tw.Short(s.itemLoc[i]); err != nil {
			return fmt.Errorf("saving item %d: %w", i, err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return nil
}

// Load overwrites the whole state from a save stream. On a format error
// the state may be partially overwritten and is no longer trustworthy;
// the caller must reset it.
func (s *State) Load(r io.Reader) error {
	tr := token.NewReader(r)

	for i := 0; i < gamedb.NumCounters; i++ {
		c, err := tr.Short()
		if err != nil {
			return fmt.Errorf("loading counters: %w", err)
		}
		rs, err := tr.Short()
		if err != nil {
			return fmt.Errorf("loading room slots: %w", err)
		}
		s.counters[i] = c
		s.roomSlots[i] = rs
	}

	flagWord, err := tr.Int()
	if err != nil {
		return fmt.Errorf("loading flags: %w", err)
	}
	for i := 0; i < gamedb.NumFlags; i++ {
		s.flags[i] = flagWord&(1<<i) != 0
	}

	dark, err := tr.Int()
	if err != nil {
		return fmt.Errorf("loading dark flag: %w", err)
	}
	if dark != 0 {
		s.SetDark()
	} else {
		s.ClearDark()
	}

	for _, f := range []*int{&s.room, &s.counter, &s.roomSwap, &s.lightTime} {
		v, err := tr.Short()
		if err != nil {
			return fmt.Errorf("loading state word: %w", err)
		}
		*f = v
	}
	s.room = s.clampRoom(s.room)

	for i := range s.itemLoc {
		v, err := tr.Short()
		if err != nil {
			return fmt.Errorf("loading item %d: %w", i, err)
		}
		s.itemLoc[i] = v
	}

	s.roomChanged = true
	return nil
}
