// Package dbfile reads and writes Scott Adams format game databases.
// The file is a flat token stream with no section markers: record
// boundaries are purely a function of counts in the header, so the
// parser consumes a fixed sequence of typed records and any arity or
// type mismatch aborts the whole load.
package dbfile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
	"github.com/pforhan/scottFree2025/pkg/token"
)

// Packing constants of the on-disk encoding: verb/noun and action pairs
// share one integer split at 150, condition code and parameter share one
// integer split at 20.
const (
	vocabPack = 150
	condPack  = 20
)

// Parser reads one game database from a token stream.
type Parser struct {
	tr *token.Reader
	db *gamedb.Database
}

// Load reads a game database from disk.
func Load(path string) (*gamedb.Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game database: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a game database from r. On any format error the returned
// database is nil; partial results are never exposed.
func Parse(r io.Reader) (*gamedb.Database, error) {
	p := &Parser{
		tr: token.NewReader(r),
		db: &gamedb.Database{},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.db, nil
}

func (p *Parser) parse() error {
	if err := p.parseHeader(); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	h := &p.db.Header

	p.db.Actions = make([]gamedb.Action, h.NumActions)
	for i := range p.db.Actions {
		if err := p.parseAction(&p.db.Actions[i]); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}

	// Vocabulary is interleaved: one verb then one noun per slot.
	p.db.Verbs = make([]gamedb.Word, h.NumWords)
	p.db.Nouns = make([]gamedb.Word, h.NumWords)
	for i := 0; i < h.NumWords; i++ {
		if err := p.parseWord(&p.db.Verbs[i]); err != nil {
			return fmt.Errorf("verb %d: %w", i, err)
		}
		if err := p.parseWord(&p.db.Nouns[i]); err != nil {
			return fmt.Errorf("noun %d: %w", i, err)
		}
	}

	p.db.Rooms = make([]gamedb.Room, h.NumRooms)
	for i := range p.db.Rooms {
		if err := p.parseRoom(&p.db.Rooms[i]); err != nil {
			return fmt.Errorf("room %d: %w", i, err)
		}
	}

	p.db.Messages = make([]string, h.NumMessages)
	for i := range p.db.Messages {
		s, err := p.tr.String()
		if err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
		p.db.Messages[i] = s
	}

	p.db.Items = make([]gamedb.Item, h.NumItems)
	for i := range p.db.Items {
		if err := p.parseItem(&p.db.Items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	// One comment per action line, order aligned with the action table.
	p.db.Comments = make([]string, h.NumActions)
	for i := range p.db.Comments {
		s, err := p.tr.String()
		if err != nil {
			return fmt.Errorf("comment %d: %w", i, err)
		}
		p.db.Comments[i] = s
	}

	if err := p.parseTail(); err != nil {
		return fmt.Errorf("tail: %w", err)
	}
	return nil
}

func (p *Parser) parseHeader() error {
	h := &p.db.Header
	fields := []*int{
		&h.Magic, &h.NumItems, &h.NumActions, &h.NumWords, &h.NumRooms,
		&h.MaxCarry, &h.StartRoom, &h.NumTreasures, &h.WordLength,
		&h.LightTime, &h.NumMessages, &h.TreasureRoom,
	}
	for _, f := range fields {
		v, err := p.tr.Short()
		if err != nil {
			return err
		}
		*f = v
	}
	// The original interpreter stored these counts one less than their
	// true value.
	h.NumItems++
	h.NumActions++
	h.NumWords++
	h.NumRooms++
	h.NumTreasures++
	h.NumMessages++

	// Every table length feeds an allocation, so a negative count is
	// rejected here rather than at the make site.
	counts := []struct {
		name string
		n    int
	}{
		{"items", h.NumItems},
		{"actions", h.NumActions},
		{"words", h.NumWords},
		{"rooms", h.NumRooms},
		{"treasures", h.NumTreasures},
		{"messages", h.NumMessages},
	}
	for _, c := range counts {
		if c.n < 0 {
			return fmt.Errorf("negative %s count %d: %w", c.name, c.n, token.ErrFormat)
		}
	}
	return nil
}

func (p *Parser) parseAction(a *gamedb.Action) error {
	packed, err := p.tr.Short()
	if err != nil {
		return err
	}
	a.Verb = packed / vocabPack
	a.Noun = packed % vocabPack

	// Slots with condition code 0 carry the parameters consumed by this
	// line's action codes, in slot order.
	params := 0
	for i := 0; i < 5; i++ {
		v, err := p.tr.Int()
		if err != nil {
			return err
		}
		a.Condition[i] = v % condPack
		a.CondParam[i] = v / condPack
		if a.Condition[i] == 0 {
			a.Params[params] = a.CondParam[i]
			params++
		}
	}

	for i := 0; i < 4; i += 2 {
		v, err := p.tr.Int()
		if err != nil {
			return err
		}
		a.Act[i] = v / vocabPack
		a.Act[i+1] = v % vocabPack
	}
	return nil
}

func (p *Parser) parseWord(w *gamedb.Word) error {
	s, err := p.tr.String()
	if err != nil {
		return err
	}
	w.CompareLen = p.db.Header.WordLength
	// A leading star marks a synonym of the preceding canonical entry.
	if strings.HasPrefix(s, "*") {
		w.Text = s[1:]
		w.Synonym = true
	} else {
		w.Text = s
	}
	return nil
}

func (p *Parser) parseRoom(r *gamedb.Room) error {
	for i := range r.Exits {
		v, err := p.tr.Short()
		if err != nil {
			return err
		}
		r.Exits[i] = v
	}
	s, err := p.tr.String()
	if err != nil {
		return err
	}
	r.Description = s
	return nil
}

func (p *Parser) parseItem(it *gamedb.Item) error {
	s, err := p.tr.String()
	if err != nil {
		return err
	}
	loc, err := p.tr.Short()
	if err != nil {
		return err
	}
	it.Description = s
	it.Location = loc
	// A trailing /NAME/ names the word GET and PUT accept for the item.
	if strings.HasSuffix(it.Description, "/") {
		start := strings.IndexByte(it.Description, '/')
		if start != -1 && start < len(it.Description)-2 {
			it.AutoPick = it.Description[start+1 : len(it.Description)-1]
			it.Description = it.Description[:start]
		}
	}
	return nil
}

func (p *Parser) parseTail() error {
	t := &p.db.Tail
	for _, f := range []*int{&t.Version, &t.Adventure, &t.Magic} {
		v, err := p.tr.Short()
		if err != nil {
			return err
		}
		*f = v
	}
	return nil
}
