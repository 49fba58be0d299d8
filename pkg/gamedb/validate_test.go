package gamedb

import (
	"strings"
	"testing"
)

// cleanDB builds a minimal database that passes every check.
func cleanDB() *Database {
	db := &Database{
		Header: Header{
			NumItems:     2,
			NumActions:   1,
			NumWords:     4,
			NumRooms:     3,
			StartRoom:    1,
			NumTreasures: 1,
			NumMessages:  2,
			TreasureRoom: 2,
		},
		Messages: []string{"", "Hello."},
	}
	db.Rooms = make([]Room, 3)
	db.Rooms[1].Exits[0] = 2
	db.Rooms[2].Exits[1] = 1
	db.Items = []Item{
		{Description: "Sign", Location: 1},
		{Description: "*Gold bar*", Location: 2},
	}
	db.Actions = []Action{{Verb: 1, Noun: 2, Act: [4]int{1, 0, 0, 0}}}
	db.Comments = []string{""}
	return db
}

func findingWith(findings []Finding, substr string) bool {
	for _, f := range findings {
		if strings.Contains(f.Description, substr) {
			return true
		}
	}
	return false
}

func TestValidateClean(t *testing.T) {
	if findings := Validate(cleanDB()); len(findings) != 0 {
		t.Errorf("clean database reported %v", findings)
	}
}

func TestValidateBadExit(t *testing.T) {
	db := cleanDB()
	db.Rooms[1].Exits[2] = 9
	findings := Validate(db)
	if !findingWith(findings, "nonexistent room 9") {
		t.Errorf("bad exit not reported: %v", findings)
	}
	if findings[0].Severity != SeverityError {
		t.Errorf("bad exit severity = %q", findings[0].Severity)
	}
}

func TestValidateBadStartRoom(t *testing.T) {
	db := cleanDB()
	db.Header.StartRoom = 5
	if !findingWith(Validate(db), "starting room 5") {
		t.Error("bad start room not reported")
	}
}

func TestValidateItemLocations(t *testing.T) {
	db := cleanDB()
	db.Items[0].Location = Carried
	db.Items[1].Location = CarriedAlt
	if findings := Validate(db); len(findings) != 0 {
		t.Errorf("carried items are legal, got %v", findings)
	}

	db.Items[0].Location = 7
	if !findingWith(Validate(db), "item 0 starts in nonexistent room 7") {
		t.Error("bad item location not reported")
	}
}

func TestValidateActionRefs(t *testing.T) {
	db := cleanDB()
	db.Actions[0].Verb = 99
	if !findingWith(Validate(db), "verb 99") {
		t.Error("out-of-range verb not reported")
	}

	db = cleanDB()
	db.Actions[0].Act[0] = 5 // message 5 does not exist
	if !findingWith(Validate(db), "nonexistent message 5") {
		t.Error("missing message not reported")
	}

	db = cleanDB()
	db.Actions[0].Act[0] = 153 // high-coded message 103
	if !findingWith(Validate(db), "nonexistent message 103") {
		t.Error("high-coded missing message not reported")
	}
}

func TestValidateWarnings(t *testing.T) {
	db := cleanDB()
	db.Comments = nil
	db.Header.NumTreasures = 2
	findings := Validate(db)
	if len(findings) != 2 {
		t.Fatalf("expected two warnings, got %v", findings)
	}
	for _, f := range findings {
		if f.Severity != SeverityWarning {
			t.Errorf("severity = %q, want warning", f.Severity)
		}
	}
}
