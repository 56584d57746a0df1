// Package moderation censors forbidden words in message content before it
// is persisted. Matching is resilient to casing, punctuation noise, and
// common leet substitutions while the rewritten content keeps the original
// rune positions intact.
package moderation

import (
	"bufio"
	"os"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// textIndex is the normalized view of an input string plus, for every
// normalized rune, the index of the rune it came from.
type textIndex struct {
	normalized []rune
	origIdx    []int
}

// NewModerator builds the Aho-Corasick automaton over the normalized forms
// of the forbidden words.
func NewModerator(words []string, replacement rune) (*Moderator, error) {
	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = normalizeRunes([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, replacement: replacement}, nil
}

// NewModeratorFromFile reads one forbidden word per line; blank lines and
// lines starting with # are skipped.
func NewModeratorFromFile(path string, replacement rune) (*Moderator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewModerator(words, replacement)
}

// Censor replaces every rune of each matched span with the replacement
// character, preserving spacing and untouched text.
func (m *Moderator) Censor(original string) string {
	index := m.normalize(original)
	if len(index.normalized) == 0 {
		return original
	}

	spans := m.matcher.MultiPatternSearch(index.normalized, false)
	if len(spans) == 0 {
		return original
	}

	origRunes := []rune(original)
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(index.origIdx) {
			continue
		}

		origStart := index.origIdx[normStart]
		origEnd := index.origIdx[normEnd-1] + 1
		for i := origStart; i < origEnd; i++ {
			origRunes[i] = m.replacement
		}
	}
	return string(origRunes)
}

func (m *Moderator) normalize(input string) textIndex {
	origRunes := []rune(input)
	index := textIndex{
		normalized: make([]rune, 0, len(origRunes)),
		origIdx:    make([]int, 0, len(origRunes)),
	}
	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		index.normalized = append(index.normalized, unicode.ToLower(clean))
		index.origIdx = append(index.origIdx, i)
	}
	return index
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet speak characters back to their standard
// alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
