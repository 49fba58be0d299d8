package token

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNextClassification(t *testing.T) {
	tr := NewReader(strings.NewReader(`42 -17 hello "quoted text" 3x`))

	tok, err := tr.Next()
	if err != nil || tok.Type != Number || tok.Num != 42 {
		t.Fatalf("expected NUMBER 42, got %+v err=%v", tok, err)
	}
	tok, err = tr.Next()
	if err != nil || tok.Type != Number || tok.Num != -17 {
		t.Fatalf("expected NUMBER -17, got %+v err=%v", tok, err)
	}
	tok, err = tr.Next()
	if err != nil || tok.Type != Word || tok.Text != "hello" {
		t.Fatalf("expected WORD hello, got %+v err=%v", tok, err)
	}
	tok, err = tr.Next()
	if err != nil || tok.Type != String || tok.Text != "quoted text" {
		t.Fatalf("expected STRING, got %+v err=%v", tok, err)
	}
	// Digits followed by letters are a word, not a number.
	tok, err = tr.Next()
	if err != nil || tok.Type != Word || tok.Text != "3x" {
		t.Fatalf("expected WORD 3x, got %+v err=%v", tok, err)
	}
	tok, err = tr.Next()
	if err != nil || tok.Type != EOF {
		t.Fatalf("expected EOF, got %+v err=%v", tok, err)
	}
	// EOF repeats.
	tok, err = tr.Next()
	if err != nil || tok.Type != EOF {
		t.Fatalf("expected second EOF, got %+v err=%v", tok, err)
	}
}

func TestNextEscapes(t *testing.T) {
	// \n decodes to a newline in quoted strings and bare words alike;
	// any other escaped byte comes through literally.
	tr := NewReader(strings.NewReader(`"line one\nline two" a\nb x\"y`))

	tok, err := tr.Next()
	if err != nil || tok.Text != "line one\nline two" {
		t.Fatalf("quoted escape: got %q err=%v", tok.Text, err)
	}
	tok, err = tr.Next()
	if err != nil || tok.Type != Word || tok.Text != "a\nb" {
		t.Fatalf("word escape: got %+v err=%v", tok, err)
	}
	tok, err = tr.Next()
	if err != nil || tok.Type != Word || tok.Text != `x"y` {
		t.Fatalf("escaped quote: got %+v err=%v", tok, err)
	}
}

func TestShortRange(t *testing.T) {
	tr := NewReader(strings.NewReader("32767 -32768 32768"))
	if v, err := tr.Short(); err != nil || v != 32767 {
		t.Fatalf("Short(32767) = %d, %v", v, err)
	}
	if v, err := tr.Short(); err != nil || v != -32768 {
		t.Fatalf("Short(-32768) = %d, %v", v, err)
	}
	if _, err := tr.Short(); !errors.Is(err, ErrFormat) {
		t.Fatalf("Short(32768) should fail with ErrFormat, got %v", err)
	}
}

func TestShortTypeMismatch(t *testing.T) {
	tr := NewReader(strings.NewReader("word"))
	if _, err := tr.Short(); !errors.Is(err, ErrFormat) {
		t.Fatalf("Short(word) should fail with ErrFormat, got %v", err)
	}
}

func TestStringAcceptsBareWord(t *testing.T) {
	tr := NewReader(strings.NewReader(`bare "quoted" 12`))
	if s, err := tr.String(); err != nil || s != "bare" {
		t.Fatalf("String() = %q, %v", s, err)
	}
	if s, err := tr.String(); err != nil || s != "quoted" {
		t.Fatalf("String() = %q, %v", s, err)
	}
	if _, err := tr.String(); !errors.Is(err, ErrFormat) {
		t.Fatalf("String() on number should fail with ErrFormat, got %v", err)
	}
}

func TestZeroReaderFails(t *testing.T) {
	var tr Reader
	if _, err := tr.Next(); !errors.Is(err, ErrFormat) {
		t.Fatalf("zero Reader should fail with ErrFormat, got %v", err)
	}
}

func TestWriterSeparators(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Int(1)
	w.Int(2)
	w.String("hi there")
	w.EndLine()
	w.Int(3)
	w.EndLine()

	want := "1 2 \"hi there\"\n3\n"
	if buf.String() != want {
		t.Fatalf("writer output %q, want %q", buf.String(), want)
	}
}

func TestWriterEscapesEmbeddedNewline(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.String("two\nlines")
	w.EndLine()

	want := `"two\nlines"` + "\n"
	if buf.String() != want {
		t.Fatalf("writer output %q, want %q", buf.String(), want)
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Int(-5)
	w.String("a room\nwith a view")
	w.EndLine()
	w.Short(200)
	w.EndLine()

	tr := NewReader(&buf)
	if v, err := tr.Int(); err != nil || v != -5 {
		t.Fatalf("round trip int: %d, %v", v, err)
	}
	if s, err := tr.String(); err != nil || s != "a room\nwith a view" {
		t.Fatalf("round trip string: %q, %v", s, err)
	}
	if v, err := tr.Short(); err != nil || v != 200 {
		t.Fatalf("round trip short: %d, %v", v, err)
	}
	if tok, err := tr.Next(); err != nil || tok.Type != EOF {
		t.Fatalf("round trip tail: %+v, %v", tok, err)
	}
}
