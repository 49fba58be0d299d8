// Package lang holds the optional message-translation table: pairs of
// key and value strings in the shared token grammar. Every fixed player
// text the interpreter emits is looked up here first, so a single file
// localizes the whole driver.
package lang

import (
	"fmt"
	"io"
	"os"

	"github.com/pforhan/scottFree2025/pkg/token"
)

// DB maps message keys to translated values. A nil DB is valid and
// translates nothing.
type DB struct {
	keys []string
	vals []string
}

// Parse reads key/value pairs from r until the stream ends. Keys may be
// bare words or quoted strings; values likewise.
func Parse(r io.Reader) (*DB, error) {
	tr := token.NewReader(r)
	db := &DB{}
	for {
		tok, err := tr.Next()
		if err != nil {
			return nil, fmt.Errorf("language key %d: %w", len(db.keys), err)
		}
		if tok.Type != token.Word && tok.Type != token.String {
			return db, nil
		}
		val, err := tr.String()
		if err != nil {
			return nil, fmt.Errorf("language value for %q: %w", tok.Text, err)
		}
		db.keys = append(db.keys, tok.Text)
		db.vals = append(db.vals, val)
	}
}

// Load reads a translation file from disk.
func Load(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open language file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Get returns the translation for key, or the key itself when there is
// none. The table is scanned linearly; it only ever holds a few dozen
// entries.
func (d *DB) Get(key string) string {
	if d == nil {
		return key
	}
	for i, k := range d.keys {
		if k == key {
			return d.vals[i]
		}
	}
	return key
}
