package savestore

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := testStore(t)
	if err := s.Put("default", []byte("state"), 7); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := s.Get("default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "state" {
		t.Errorf("Get = %q", data)
	}

	data, err = s.Get("missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if data != nil {
		t.Errorf("missing slot should be nil, got %q", data)
	}
}

func TestPutReplaces(t *testing.T) {
	s := testStore(t)
	if err := s.Put("slot", []byte("old"), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put("slot", []byte("new"), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, err := s.Get("slot")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("Get = %q", data)
	}
}

func TestList(t *testing.T) {
	s := testStore(t)
	if err := s.Put("first", []byte("aaa"), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := s.Put("second", []byte("bb"), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}

	metas, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d slots", len(metas))
	}
	if metas[0].Name != "second" || metas[1].Name != "first" {
		t.Errorf("List order = %q, %q", metas[0].Name, metas[1].Name)
	}
	if metas[0].Size != 2 || metas[1].Size != 3 {
		t.Errorf("List sizes = %d, %d", metas[0].Size, metas[1].Size)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	if err := s.Put("gone", []byte("x"), 1); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	data, err := s.Get("gone")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Error("deleted slot should be gone")
	}
	metas, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("List after delete returned %d slots", len(metas))
	}
}

func TestWriterReader(t *testing.T) {
	s := testStore(t)
	w := s.Writer("slot", 3)
	if _, err := w.Write([]byte("saved ")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write([]byte("game")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := s.ReaderFor("slot")
	if err != nil {
		t.Fatalf("ReaderFor: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "saved game" {
		t.Errorf("round trip = %q", data)
	}
}

func TestReaderForMissing(t *testing.T) {
	s := testStore(t)
	if _, err := s.ReaderFor("nothing"); err == nil {
		t.Fatal("missing slot should error")
	}
}
