package dbfile

import (
	"fmt"
	"io"
	"os"

	"github.com/pforhan/scottFree2025/pkg/gamedb"
	"github.com/pforhan/scottFree2025/pkg/token"
)

// Write serializes a database back into the packed on-disk format. A
// database written here parses back identically, which makes the writer
// useful for normalizing hand-edited game files.
func Write(w io.Writer, db *gamedb.Database) error {
	tw := token.NewWriter(w)
	h := &db.Header

	// Counts go back on disk one less than their true value.
	header := []int{
		h.Magic, h.NumItems - 1, h.NumActions - 1, h.NumWords - 1,
		h.NumRooms - 1, h.MaxCarry, h.StartRoom, h.NumTreasures - 1,
		h.WordLength, h.LightTime, h.NumMessages - 1, h.TreasureRoom,
	}
	for _, v := range header {
		if err := tw.Short(v); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := tw.EndLine(); err != nil {
		return err
	}

	for i := range db.Actions {
		if err := writeAction(tw, &db.Actions[i]); err != nil {
			return fmt.Errorf("writing action %d: %w", i, err)
		}
	}

	for i := 0; i < h.NumWords; i++ {
		if err := writeWord(tw, &db.Verbs[i]); err != nil {
			return fmt.Errorf("writing verb %d: %w", i, err)
		}
		if err := writeWord(tw, &db.Nouns[i]); err != nil {
			return fmt.Errorf("writing noun %d: %w", i, err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}

	for i := range db.Rooms {
		r := &db.Rooms[i]
		for _, e := range r.Exits {
			if err := tw.Short(e); err != nil {
				return fmt.Errorf("writing room %d: %w", i, err)
			}
		}
		if err := tw.String(r.Description); err != nil {
			return fmt.Errorf("writing room %d: %w", i, err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}

	for i, m := range db.Messages {
		if err := tw.String(m); err != nil {
			return fmt.Errorf("writing message %d: %w", i, err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}

	for i := range db.Items {
		it := &db.Items[i]
		desc := it.Description
		if it.AutoPick != "" {
			desc += "/" + it.AutoPick + "/"
		}
		if err := tw.String(desc); err != nil {
			return fmt.Errorf("writing item %d: %w", i, err)
		}
		if err := tw.Short(it.Location); err != nil {
			return fmt.Errorf("writing item %d: %w", i, err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}

	for i, c := range db.Comments {
		if err := tw.String(c); err != nil {
			return fmt.Errorf("writing comment %d: %w", i, err)
		}
		if err := tw.EndLine(); err != nil {
			return err
		}
	}

	for _, v := range []int{db.Tail.Version, db.Tail.Adventure, db.Tail.Magic} {
		if err := tw.Short(v); err != nil {
			return fmt.Errorf("writing tail: %w", err)
		}
	}
	return tw.EndLine()
}

func writeAction(tw *token.Writer, a *gamedb.Action) error {
	if err := tw.Short(a.Verb*vocabPack + a.Noun); err != nil {
		return err
	}
	for i := 0; i < 5; i++ {
		if err := tw.Int(a.CondParam[i]*condPack + a.Condition[i]); err != nil {
			return err
		}
	}
	for i := 0; i < 4; i += 2 {
		if err := tw.Int(a.Act[i]*vocabPack + a.Act[i+1]); err != nil {
			return err
		}
	}
	return tw.EndLine()
}

func writeWord(tw *token.Writer, w *gamedb.Word) error {
	text := w.Text
	if w.Synonym {
		text = "*" + text
	}
	return tw.String(text)
}

// Save writes the database to a file path, going through a temp file so
// a failed write never clobbers the original.
func Save(path string, db *gamedb.Database) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := Write(f, db); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
