package gamedb

import "strings"

// Match compares a vocabulary entry against an input word using the
// shared significant length n. An entry shorter than n must be equal to
// the input in full (same length, case-insensitive); otherwise only the
// first n characters are compared. Empty inputs never match.
func Match(entry, input string, n int) bool {
	if entry == "" || input == "" {
		return false
	}
	if len(entry) < n {
		return len(entry) == len(input) && strings.EqualFold(entry, input)
	}
	if len(input) < n {
		return false
	}
	return strings.EqualFold(entry[:n], input[:n])
}

// Matches reports whether the entry matches the given input word.
func (w *Word) Matches(input string) bool {
	return Match(w.Text, input, w.CompareLen)
}

// WhichWord resolves an input word against a vocabulary table. On a hit
// it walks back to the nearest non-synonym entry, which is how synonyms
// collapse to one canonical index. Returns NotFound for no match.
func WhichWord(input string, table []Word) int {
	if input == "" {
		return NotFound
	}
	for i := range table {
		if table[i].Matches(input) {
			for j := i; j >= 0; j-- {
				if !table[j].Synonym {
					return j
				}
			}
			return NotFound
		}
	}
	return NotFound
}
