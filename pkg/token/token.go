// Package token implements the textual token grammar shared by the game
// database, save files and language files. Tokens are whitespace separated
// numbers, bare words and double-quoted strings. The Writer produces the
// identical grammar, so anything written here reads back through Reader.
package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Type identifies what Next found in the stream.
type Type int

const (
	Number Type = iota + 1
	Word
	String
	EOF
)

func (t Type) String() string {
	switch t {
	case Number:
		return "NUMBER"
	case Word:
		return "WORD"
	case String:
		return "STRING"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// ErrFormat reports a malformed token stream: wrong token type, a numeric
// field out of range, or reading without an attached stream. Loaders wrap
// it with positional context.
var ErrFormat = errors.New("bad database format")

// Token is a single lexed value. Num is set for Number tokens, Text for
// Word and String tokens.
type Token struct {
	Type Type
	Num  int
	Text string
}

// Reader lexes an input stream into tokens. The zero value has no stream
// attached and fails every read with ErrFormat.
type Reader struct {
	br   *bufio.Reader
	peek int // lookahead byte, -1 at end of stream
}

// NewReader returns a Reader lexing from r.
func NewReader(r io.Reader) *Reader {
	tr := &Reader{br: bufio.NewReaderSize(r, 1024)}
	tr.advance()
	return tr
}

func (r *Reader) advance() {
	b, err := r.br.ReadByte()
	if err != nil {
		r.peek = -1
		return
	}
	r.peek = int(b)
}

// Next returns the next token from the stream. End of input yields an EOF
// token, not an error.
func (r *Reader) Next() (Token, error) {
	if r.br == nil {
		return Token{}, fmt.Errorf("no input stream: %w", ErrFormat)
	}

	for {
		switch r.peek {
		case ' ', '\n', '\r':
			r.advance()

		case -1:
			return Token{Type: EOF}, nil

		case '"':
			var sb strings.Builder
			r.advance()
			for r.peek != '"' && r.peek != -1 {
				if r.peek == '\\' {
					r.advance()
					if r.peek == 'n' {
						r.peek = '\n'
					}
					if r.peek == -1 {
						break
					}
				}
				sb.WriteByte(byte(r.peek))
				r.advance()
			}
			if r.peek == '"' {
				r.advance()
			}
			return Token{Type: String, Text: sb.String()}, nil

		default:
			var sb strings.Builder
			for r.peek != ' ' && r.peek != '\n' && r.peek != '\r' &&
				r.peek != '"' && r.peek != -1 {
				if r.peek == '\\' {
					r.advance()
					if r.peek == 'n' {
						r.peek = '\n'
					}
					if r.peek == -1 {
						break
					}
				}
				sb.WriteByte(byte(r.peek))
				r.advance()
			}
			text := sb.String()
			if n, err := strconv.Atoi(text); err == nil {
				return Token{Type: Number, Num: n, Text: text}, nil
			}
			return Token{Type: Word, Text: text}, nil
		}
	}
}

// Short reads a Number token and checks it fits a signed 16-bit value.
func (r *Reader) Short() (int, error) {
	tok, err := r.Next()
	if err != nil {
		return 0, err
	}
	if tok.Type != Number || tok.Num < -32768 || tok.Num > 32767 {
		return 0, fmt.Errorf("expected short, got %s %q: %w", tok.Type, tok.Text, ErrFormat)
	}
	return tok.Num, nil
}

// Int reads a Number token.
func (r *Reader) Int() (int, error) {
	tok, err := r.Next()
	if err != nil {
		return 0, err
	}
	if tok.Type != Number {
		return 0, fmt.Errorf("expected number, got %s %q: %w", tok.Type, tok.Text, ErrFormat)
	}
	return tok.Num, nil
}

// String reads a String or Word token. Bare words count as strings without
// spaces, which some game files use for short texts.
func (r *Reader) String() (string, error) {
	tok, err := r.Next()
	if err != nil {
		return "", err
	}
	if tok.Type != String && tok.Type != Word {
		return "", fmt.Errorf("expected string, got %s: %w", tok.Type, ErrFormat)
	}
	return tok.Text, nil
}

// Writer serializes values in the same grammar the Reader understands.
// Values on one line are space separated; EndLine terminates the line and
// resets the separator state.
type Writer struct {
	w         io.Writer
	sepNeeded bool
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Int writes a decimal integer token.
func (w *Writer) Int(val int) error {
	if w.sepNeeded {
		if err := w.raw(" "); err != nil {
			return err
		}
	}
	w.sepNeeded = true
	return w.raw(strconv.Itoa(val))
}

// Short writes a decimal integer token. Identical encoding to Int, kept as
// a separate entry point for symmetry with Reader.Short.
func (w *Writer) Short(val int) error {
	return w.Int(val)
}

// String writes a double-quoted string token.
func (w *Writer) String(val string) error {
	if w.sepNeeded {
		if err := w.raw(" "); err != nil {
			return err
		}
	}
	w.sepNeeded = true
	return w.raw("\"" + val + "\"")
}

// EndLine terminates the current line.
func (w *Writer) EndLine() error {
	w.sepNeeded = false
	_, err := io.WriteString(w.w, "\n")
	return err
}

// raw writes s with embedded newlines escaped as the two characters \n.
func (w *Writer) raw(s string) error {
	if w.w == nil {
		return fmt.Errorf("no output stream: %w", ErrFormat)
	}
	_, err := io.WriteString(w.w, strings.ReplaceAll(s, "\n", `\n`))
	return err
}
