package lang

import (
	"strings"
	"testing"
)

const frenchTable = `
"Tell me what to do ? " "Que dois-je faire ? "
NORTH NORD
"O.K.\n" "D'accord.\n"
`

func TestParseAndGet(t *testing.T) {
	db, err := Parse(strings.NewReader(frenchTable))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := db.Get("NORTH"); got != "NORD" {
		t.Errorf("Get(NORTH) = %q", got)
	}
	if got := db.Get("Tell me what to do ? "); got != "Que dois-je faire ? " {
		t.Errorf("Get(prompt) = %q", got)
	}
	if got := db.Get("O.K.\n"); got != "D'accord.\n" {
		t.Errorf("Get(O.K.) = %q", got)
	}
}

func TestGetFallsBackToKey(t *testing.T) {
	db, err := Parse(strings.NewReader("NORTH NORD"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := db.Get("SOUTH"); got != "SOUTH" {
		t.Errorf("missing key should fall back, got %q", got)
	}
}

func TestNilDB(t *testing.T) {
	var db *DB
	if got := db.Get("NORTH"); got != "NORTH" {
		t.Errorf("nil DB Get = %q", got)
	}
}

func TestParseEmpty(t *testing.T) {
	db, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := db.Get("NORTH"); got != "NORTH" {
		t.Errorf("empty table should translate nothing, got %q", got)
	}
}

func TestParseMissingValue(t *testing.T) {
	if _, err := Parse(strings.NewReader("NORTH")); err == nil {
		t.Fatal("a key without a value should fail")
	}
}
