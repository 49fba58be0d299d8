package dbfile

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
	"github.com/pforhan/scottFree2025/pkg/token"
)

// A tiny but complete database: 2 items, 2 actions, 3 vocabulary slots,
// 3 rooms, 2 messages. Counts in the header are stored one less.
const tinyDB = `
0 1 1 2 2 6 1 0 3 100 1 2
1701 42 40 0 0 0 204 0
0 0 0 0 0 0 0 0
"AUT" "ANY"
"GO" "NORTH"
"*ENTER" "*NOR"
0 0 0 0 0 0 "hole"
2 0 0 0 0 0 "forest"
0 0 0 0 0 0 "*I'm in a cave"
"Magic!"
"Nothing happens."
"*Golden crown*/CRO/" 1
"Sign" 2
"Teleport"
""
1 7 0
`

func TestParseTiny(t *testing.T) {
	db, err := Parse(strings.NewReader(tinyDB))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	h := db.Header
	if h.NumItems != 2 || h.NumActions != 2 || h.NumWords != 3 ||
		h.NumRooms != 3 || h.NumTreasures != 1 || h.NumMessages != 2 {
		t.Fatalf("header counts wrong: %+v", h)
	}
	if h.MaxCarry != 6 || h.StartRoom != 1 || h.WordLength != 3 ||
		h.LightTime != 100 || h.TreasureRoom != 2 {
		t.Fatalf("header fields wrong: %+v", h)
	}

	// 1701 = verb 11, noun 51; 42 = condition 2 param 2; 40 = pass-through
	// param 2; 204 = actions 1 and 54.
	a := db.Actions[0]
	if a.Verb != 11 || a.Noun != 51 {
		t.Errorf("action 0 verb/noun = %d/%d, want 11/51", a.Verb, a.Noun)
	}
	if a.Condition[0] != 2 || a.CondParam[0] != 2 {
		t.Errorf("action 0 condition 0 = %d/%d, want 2/2", a.Condition[0], a.CondParam[0])
	}
	if a.Act != [4]int{1, 54, 0, 0} {
		t.Errorf("action 0 acts = %v, want [1 54 0 0]", a.Act)
	}
	if a.Params[0] != 2 {
		t.Errorf("action 0 param 0 = %d, want 2", a.Params[0])
	}

	if db.Verbs[1].Text != "GO" || db.Verbs[1].Synonym {
		t.Errorf("verb 1 = %+v, want GO", db.Verbs[1])
	}
	if db.Verbs[2].Text != "ENTER" || !db.Verbs[2].Synonym {
		t.Errorf("verb 2 = %+v, want synonym ENTER", db.Verbs[2])
	}
	if db.Nouns[2].Text != "NOR" || !db.Nouns[2].Synonym {
		t.Errorf("noun 2 = %+v, want synonym NOR", db.Nouns[2])
	}
	if db.Verbs[1].CompareLen != 3 {
		t.Errorf("verb compare length = %d, want 3", db.Verbs[1].CompareLen)
	}

	if db.Rooms[1].Exit(gamedb.FirstDir) != 2 {
		t.Errorf("room 1 north exit = %d, want 2", db.Rooms[1].Exit(gamedb.FirstDir))
	}
	if db.Rooms[2].Description != "*I'm in a cave" {
		t.Errorf("room 2 description = %q", db.Rooms[2].Description)
	}

	if db.Items[0].Description != "*Golden crown*" || db.Items[0].AutoPick != "CRO" {
		t.Errorf("item 0 = %+v", db.Items[0])
	}
	if !db.Items[0].IsTreasure() {
		t.Error("item 0 should be a treasure")
	}
	if db.Items[1].AutoPick != "" || db.Items[1].Location != 2 {
		t.Errorf("item 1 = %+v", db.Items[1])
	}

	if db.Comments[0] != "Teleport" || db.Comments[1] != "" {
		t.Errorf("comments = %v", db.Comments)
	}
	if db.Tail.Version != 1 || db.Tail.Adventure != 7 {
		t.Errorf("tail = %+v", db.Tail)
	}
}

func TestParseTruncated(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(tinyDB), "\n")
	// Drop the tail line: the parser must report a format error, not EOF
	// silently.
	short := strings.Join(lines[:len(lines)-1], "\n")
	if _, err := Parse(strings.NewReader(short)); !errors.Is(err, token.ErrFormat) {
		t.Fatalf("truncated parse should fail with ErrFormat, got %v", err)
	}
}

func TestParseBadHeader(t *testing.T) {
	_, err := Parse(strings.NewReader(`0 1 notanumber`))
	if !errors.Is(err, token.ErrFormat) {
		t.Fatalf("bad header should fail with ErrFormat, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "header") {
		t.Fatalf("error should name the header: %v", err)
	}
}

func TestParseNegativeCount(t *testing.T) {
	// Stored counts are one less than true, so anything under -1 is
	// impossible and must not reach the table allocations.
	headers := []string{
		"0 1 -5 2 2 6 1 0 3 100 1 2",  // actions
		"0 -9 1 2 2 6 1 0 3 100 1 2",  // items
		"0 1 1 -3 2 6 1 0 3 100 1 2",  // words
		"0 1 1 2 -7 6 1 0 3 100 1 2",  // rooms
		"0 1 1 2 2 6 1 0 3 100 -4 2",  // messages
		"0 1 1 2 2 6 1 -6 3 100 1 2",  // treasures
	}
	for _, h := range headers {
		_, err := Parse(strings.NewReader(h))
		if !errors.Is(err, token.ErrFormat) {
			t.Errorf("header %q should fail with ErrFormat, got %v", h, err)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	db, err := Parse(strings.NewReader(tinyDB))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, db); err != nil {
		t.Fatalf("Write: %v", err)
	}

	db2, err := Parse(&buf)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(db, db2) {
		t.Fatalf("round trip mismatch:\n  first:  %+v\n  second: %+v", db, db2)
	}
}

func TestSave(t *testing.T) {
	db, err := Parse(strings.NewReader(tinyDB))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	path := t.TempDir() + "/tiny.dat"
	if err := Save(path, db); err != nil {
		t.Fatalf("Save: %v", err)
	}
	db2, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(db, db2) {
		t.Fatal("saved database does not load back identically")
	}
}
