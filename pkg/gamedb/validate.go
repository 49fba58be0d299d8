package gamedb

import "fmt"

// Finding severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is one problem reported by Validate.
type Finding struct {
	Severity    string
	Description string
}

// Validate runs referential integrity checks over a loaded database:
// exits must point at real rooms, item locations must be legal, action
// verb/noun indices must fit the vocabulary and message references must
// resolve. Games in the wild bend some of these rules, so everything is
// reported rather than rejected.
func Validate(db *Database) []Finding {
	var findings []Finding
	errf := func(format string, args ...any) {
		findings = append(findings, Finding{Severity: SeverityError, Description: fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...any) {
		findings = append(findings, Finding{Severity: SeverityWarning, Description: fmt.Sprintf(format, args...)})
	}

	h := &db.Header
	if h.StartRoom < 0 || h.StartRoom >= h.NumRooms {
		errf("starting room %d outside room table (0..%d)", h.StartRoom, h.NumRooms-1)
	}
	if h.TreasureRoom < 0 || h.TreasureRoom >= h.NumRooms {
		errf("treasure room %d outside room table (0..%d)", h.TreasureRoom, h.NumRooms-1)
	}

	for i := range db.Rooms {
		for d := FirstDir; d <= LastDir; d++ {
			if dest := db.Rooms[i].Exit(d); dest < 0 || dest >= h.NumRooms {
				errf("room %d exit %d leads to nonexistent room %d", i, d, dest)
			}
		}
	}

	for i := range db.Items {
		loc := db.Items[i].Location
		if loc != Carried && loc != CarriedAlt && (loc < 0 || loc >= h.NumRooms) {
			errf("item %d starts in nonexistent room %d", i, loc)
		}
	}

	for i := range db.Actions {
		a := &db.Actions[i]
		if a.Verb < 0 || a.Verb >= h.NumWords {
			errf("action %d verb %d outside vocabulary (0..%d)", i, a.Verb, h.NumWords-1)
		}
		if a.Verb != Auto && (a.Noun < 0 || a.Noun >= h.NumWords) {
			errf("action %d noun %d outside vocabulary (0..%d)", i, a.Noun, h.NumWords-1)
		}
		for _, code := range a.Act {
			var msg int
			switch {
			case code >= 1 && code <= 51:
				msg = code
			case code > 101:
				msg = code - 50
			default:
				continue
			}
			if msg >= h.NumMessages {
				errf("action %d prints nonexistent message %d", i, msg)
			}
		}
	}

	if len(db.Comments) != len(db.Actions) {
		warnf("comment count %d does not match action count %d", len(db.Comments), len(db.Actions))
	}
	if h.NumTreasures > 0 {
		treasures := 0
		for i := range db.Items {
			if db.Items[i].IsTreasure() {
				treasures++
			}
		}
		if treasures != h.NumTreasures {
			warnf("header declares %d treasures, items table has %d", h.NumTreasures, treasures)
		}
	}

	return findings
}
