// Package gamedb defines the record types of a Scott Adams format game
// database. Everything here is loaded once by pkg/dbfile and shared
// read-only with the interpreter for the life of a session.
package gamedb

import "strings"

// Item location sentinels.
const (
	Destroyed  = 0   // item removed from play (room 0)
	Carried    = 255 // item in the player's inventory
	CarriedAlt = -1  // alternate carried encoding seen in some files
)

// Well-known vocabulary indices. Index 0 is the AUTO verb / ANY noun
// sentinel; the rest are fixed by the format contract.
const (
	Auto     = 0 // verb 0: line fires on automatic passes
	Any      = 0 // noun 0: matches any noun
	VerbGo   = 1
	VerbGet  = 10
	VerbPut  = 18
	FirstDir = 1 // noun index of North
	LastDir  = 6 // noun index of Down

	NotFound = -1
)

// Fixed state sizes and reserved slots.
const (
	Lamp         = 9  // the light source is always item 9
	DarkFlag     = 15 // flag bit reserved for darkness
	NumFlags     = 16
	NumCounters  = 16
	NumRoomSlots = 16
)

// Header is the twelve-field record that opens every game database. The
// six count fields hold true values here; the on-disk encoding stores
// them one less (see dbfile).
type Header struct {
	Magic        int // unknown, carried verbatim
	NumItems     int
	NumActions   int
	NumWords     int // verbs and nouns; the shorter list is padded
	NumRooms     int
	MaxCarry     int
	StartRoom    int
	NumTreasures int
	WordLength   int // significant length for vocabulary matching
	LightTime    int // turns of light, -1 = never runs down
	NumMessages  int
	TreasureRoom int
}

// Action is one line of the condition/action table: up to five guarded
// conditions and four action codes. Condition slots with code 0 carry
// the action parameters instead; the loader collects those into Params
// in slot order.
type Action struct {
	Verb      int
	Noun      int
	Condition [5]int
	CondParam [5]int
	Act       [4]int
	Params    [5]int
}

// Param returns the n-th pass-through action parameter, or 0 when the
// line supplies fewer parameters than its actions consume.
func (a *Action) Param(n int) int {
	if n < 0 || n >= len(a.Params) {
		return 0
	}
	return a.Params[n]
}

// Room has six exits (0 = no exit) and a description. A description
// starting with '*' is printed verbatim, without the "You are in a"
// prefix.
type Room struct {
	Exits       [6]int
	Description string
}

// Exit returns the destination room for direction dir, 1=North .. 6=Down.
func (r *Room) Exit(dir int) int {
	if dir < FirstDir || dir > LastDir {
		return 0
	}
	return r.Exits[dir-1]
}

// Word is one vocabulary entry. Synonym entries stand for the nearest
// preceding canonical entry; the loader strips the leading '*' marker.
type Word struct {
	Text       string
	CompareLen int
	Synonym    bool
}

// Item is a portable object. AutoPick, when non-empty, is the noun GET
// and PUT accept for it (the /name/ suffix of the raw description).
type Item struct {
	Description string
	AutoPick    string
	Location    int // initial location
}

// IsTreasure reports whether the item counts toward the score.
func (i *Item) IsTreasure() bool {
	return strings.HasPrefix(i.Description, "*")
}

// Tail closes the database: version, adventure number and one more
// magic value nobody has ever explained.
type Tail struct {
	Version   int
	Adventure int
	Magic     int
}

// Database is the complete immutable game description.
type Database struct {
	Header   Header
	Actions  []Action
	Verbs    []Word
	Nouns    []Word
	Rooms    []Room
	Messages []string
	Items    []Item
	Comments []string // one per action line, inspection only
	Tail     Tail
}
