package game

import (
	"bytes"
	"io"
	"math/rand"
	"time"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
)

// Test verb indices beyond the fixed GO/GET/DROP contract.
const (
	verbScore = 19
	verbMagic = 20
	verbZap   = 21
	verbDie   = 22
	verbWave  = 23
	verbSub   = 24
	verbDec   = 25
)

const (
	nounLamp  = 7
	nounCrown = 8
)

const (
	itemSign  = 0
	itemCrown = 10
)

// testDB builds a small in-memory database: five rooms, a treasure, a
// lamp and a handful of scripted actions covering the interpreter
// paths.
func testDB() *gamedb.Database {
	db := &gamedb.Database{
		Header: gamedb.Header{
			NumItems:     11,
			NumActions:   8,
			NumWords:     26,
			NumRooms:     5,
			MaxCarry:     2,
			StartRoom:    1,
			NumTreasures: 1,
			WordLength:   3,
			LightTime:    10,
			NumMessages:  3,
			TreasureRoom: 3,
		},
		Messages: []string{"", "First.", "Second."},
	}

	db.Verbs = make([]gamedb.Word, db.Header.NumWords)
	db.Nouns = make([]gamedb.Word, db.Header.NumWords)
	for i := range db.Verbs {
		db.Verbs[i].CompareLen = db.Header.WordLength
		db.Nouns[i].CompareLen = db.Header.WordLength
	}
	setWord := func(tbl []gamedb.Word, i int, text string, syn bool) {
		tbl[i].Text = text
		tbl[i].Synonym = syn
	}
	setWord(db.Verbs, 0, "AUTO", false)
	setWord(db.Verbs, gamedb.VerbGo, "GO", false)
	setWord(db.Verbs, gamedb.VerbGet, "GET", false)
	setWord(db.Verbs, gamedb.VerbGet+1, "TAKE", true)
	setWord(db.Verbs, gamedb.VerbPut, "DROP", false)
	setWord(db.Verbs, verbScore, "SCORE", false)
	setWord(db.Verbs, verbMagic, "MAGIC", false)
	setWord(db.Verbs, verbZap, "ZAP", false)
	setWord(db.Verbs, verbDie, "DIE", false)
	setWord(db.Verbs, verbWave, "WAVE", false)
	setWord(db.Verbs, verbSub, "SUB", false)
	setWord(db.Verbs, verbDec, "DEC", false)

	setWord(db.Nouns, 0, "ANY", false)
	for i, d := range []string{"NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN"} {
		setWord(db.Nouns, i+1, d, false)
	}
	setWord(db.Nouns, nounLamp, "LAMP", false)
	setWord(db.Nouns, nounCrown, "CROWN", false)

	db.Rooms = make([]gamedb.Room, db.Header.NumRooms)
	db.Rooms[0].Description = "dead end"
	db.Rooms[1].Description = "forest"
	db.Rooms[1].Exits[0] = 2 // north
	db.Rooms[2].Description = "*I'm in a clearing"
	db.Rooms[2].Exits[1] = 1 // south
	db.Rooms[3].Description = "vault"
	db.Rooms[4].Description = "pit"

	db.Items = make([]gamedb.Item, db.Header.NumItems)
	db.Items[itemSign] = gamedb.Item{Description: "Sign", Location: 1}
	db.Items[gamedb.Lamp] = gamedb.Item{
		Description: "Lit lamp", AutoPick: "LAMP", Location: gamedb.Destroyed,
	}
	db.Items[itemCrown] = gamedb.Item{
		Description: "*Golden crown*", AutoPick: "CROWN", Location: 1,
	}

	db.Actions = []gamedb.Action{
		{Verb: verbScore, Act: [4]int{65, 0, 0, 0}},
		{Verb: verbMagic, Act: [4]int{1, 73, 0, 0}},
		{Act: [4]int{2, 0, 0, 0}}, // continuation target
		{Verb: verbZap, Act: [4]int{95, 0, 0, 0}},
		{Verb: verbDie, Act: [4]int{61, 0, 0, 0}},
		{
			Verb:      verbWave,
			Condition: [5]int{1, 0, 0, 0, 0},
			CondParam: [5]int{itemCrown, 0, 0, 0, 0},
			Act:       [4]int{54, 0, 0, 0},
			Params:    [5]int{3, 0, 0, 0, 0},
		},
		{Verb: verbSub, Act: [4]int{83, 0, 0, 0}, Params: [5]int{10, 0, 0, 0, 0}},
		{Verb: verbDec, Act: [4]int{77, 0, 0, 0}},
	}
	db.Comments = make([]string, len(db.Actions))
	return db
}

// fakeTerm captures everything a session prints and feeds scripted
// input lines.
type fakeTerm struct {
	out       bytes.Buffer
	inputs    []string
	saved     bytes.Buffer
	roomDraws int
	delays    []time.Duration
}

func (t *fakeTerm) NotifyRoomChanged() { t.roomDraws++ }
func (t *fakeTerm) Print(s string)     { t.out.WriteString(s) }
func (t *fakeTerm) ClearScreen()       {}
func (t *fakeTerm) Prompt(s string)    { t.out.WriteString(s) }

func (t *fakeTerm) ReadInput() string {
	if len(t.inputs) == 0 {
		return "#dump"
	}
	line := t.inputs[0]
	t.inputs = t.inputs[1:]
	return line
}

func (t *fakeTerm) Delay(d time.Duration) { t.delays = append(t.delays, d) }

type nopWriteCloser struct{ w io.Writer }

func (n nopWriteCloser) Write(p []byte) (int, error) { return n.w.Write(p) }
func (n nopWriteCloser) Close() error                { return nil }

func (t *fakeTerm) SaveStream() (io.WriteCloser, error) {
	t.saved.Reset()
	return nopWriteCloser{&t.saved}, nil
}

func (t *fakeTerm) LoadStream() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(t.saved.Bytes())), nil
}

func newTestAdventure(inputs ...string) (*Adventure, *fakeTerm) {
	term := &fakeTerm{inputs: inputs}
	adv := New(testDB(), nil, term, rand.New(rand.NewSource(1)))
	return adv, term
}
