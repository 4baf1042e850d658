package almanac

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxBytes bounds how much of a document is scanned.
const DefaultMaxBytes = 2500000

// Normalize turns raw document bytes into plain text. Every byte becomes the
// character with the same code point (ISO 8859-1), so one source byte is one
// character; this is not real text decoding and must not become one, since the
// day and number matches depend on it.
//
// NUL bytes become spaces, runs of spaces and tabs collapse to one space,
// carriage returns become newlines and runs of newlines collapse to one.
// Bytes past maxBytes are dropped silently. A maxBytes <= 0 means
// DefaultMaxBytes.
func Normalize(raw []byte, maxBytes int) string {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(raw) > maxBytes {
		raw = raw[:maxBytes]
	}

	var b strings.Builder
	b.Grow(len(raw))
	var last rune = -1
	for _, c := range raw {
		switch c {
		case 0, ' ', '\t', '\v', '\f':
			if last != ' ' {
				b.WriteByte(' ')
				last = ' '
			}
		case '\r', '\n':
			if last != '\n' {
				b.WriteByte('\n')
				last = '\n'
			}
		default:
			r := rune(c)
			b.WriteRune(r)
			last = r
		}
	}
	return b.String()
}

// newFolder returns the search key transformer. Transformers carry state, so
// every caller gets its own.
func newFolder() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		cases.Upper(language.Und),
	)
}

// SearchKey folds s for matching anchors such as month names: accents are
// stripped and letters upper-cased, so "Março" and "MARCO" compare equal.
// It is never applied to the numbers being extracted.
func SearchKey(s string) string {
	folded, _, err := transform.String(newFolder(), s)
	if err != nil {
		return strings.ToUpper(s)
	}
	return folded
}

// keyedText is the search key of a text together with a map from every byte of
// the key back to the byte of the text it came from. Folding may change the
// length of a character, so indices found in key must go through offsets.
type keyedText struct {
	key     string
	offsets []int // len(key)+1 entries; the last is len(text)
}

func newKeyedText(text string) keyedText {
	folder := newFolder()
	memo := make(map[rune]string)

	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		if r < utf8.RuneSelf {
			c := byte(r)
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			b.WriteByte(c)
			offsets = append(offsets, i)
			continue
		}
		k, ok := memo[r]
		if !ok {
			var err error
			if k, _, err = transform.String(folder, string(r)); err != nil {
				k = string(r)
			}
			memo[r] = k
		}
		b.WriteString(k)
		for j := 0; j < len(k); j++ {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))
	return keyedText{key: b.String(), offsets: offsets}
}

// index finds needle in the key at or after from and returns its key offset,
// or -1.
func (k keyedText) index(needle string, from int) int {
	if from > len(k.key) || needle == "" {
		return -1
	}
	i := strings.Index(k.key[from:], needle)
	if i < 0 {
		return -1
	}
	return from + i
}

// textOffset maps a key offset to an offset in the original text.
func (k keyedText) textOffset(i int) int {
	return k.offsets[i]
}
