// Package savestore keeps named saved games in a bbolt database, so a
// player can hold multiple save slots per adventure instead of a single
// flat file.
package savestore

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketSaves = []byte("saves")
	bucketMeta  = []byte("meta")
)

// Meta describes one save slot.
type Meta struct {
	Name      string
	Adventure int
	SavedAt   time.Time
	Size      int
}

// Store wraps a bbolt database of save slots.
type Store struct {
	bolt *bbolt.DB
}

// Open opens or creates a bbolt save database and ensures all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("savestore: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSaves, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("savestore: create buckets: %w", err)
	}

	return &Store{bolt: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	if s.bolt != nil {
		return s.bolt.Close()
	}
	return nil
}

// Put stores raw save data under name, replacing any existing slot.
func (s *Store) Put(name string, data []byte, adventure int) error {
	meta := Meta{
		Name:      name,
		Adventure: adventure,
		SavedAt:   time.Now(),
		Size:      len(data),
	}
	enc, err := encodeMeta(&meta)
	if err != nil {
		return fmt.Errorf("savestore: encode meta %q: %w", name, err)
	}
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSaves).Put([]byte(name), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(name), enc)
	})
}

// Get returns the raw save data stored under name, or nil when the slot
// does not exist.
func (s *Store) Get(name string) ([]byte, error) {
	var data []byte
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketSaves).Get([]byte(name)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("savestore: get %q: %w", name, err)
	}
	return data, nil
}

// Delete removes a save slot.
func (s *Store) Delete(name string) error {
	return s.bolt.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSaves).Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Delete([]byte(name))
	})
}

// List returns the metadata of every save slot, newest first.
func (s *Store) List() ([]Meta, error) {
	var out []Meta
	err := s.bolt.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		return b.ForEach(func(k, v []byte) error {
			meta, err := decodeMeta(v)
			if err != nil {
				return fmt.Errorf("decode meta %q: %w", string(k), err)
			}
			out = append(out, *meta)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("savestore: list: %w", err)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SavedAt.After(out[j].SavedAt)
	})
	return out, nil
}

// slotWriter buffers save data and commits the slot on Close.
type slotWriter struct {
	bytes.Buffer
	store     *Store
	name      string
	adventure int
}

func (w *slotWriter) Close() error {
	return w.store.Put(w.name, w.Bytes(), w.adventure)
}

// Writer returns a WriteCloser that commits the written bytes as slot
// name when closed.
func (s *Store) Writer(name string, adventure int) io.WriteCloser {
	return &slotWriter{store: s, name: name, adventure: adventure}
}

// ReaderFor returns a ReadCloser over slot name, or an error when the
// slot does not exist.
func (s *Store) ReaderFor(name string) (io.ReadCloser, error) {
	data, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("savestore: no save named %q", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
