package almanac

import "time"

// MonthNames lists the month names of a document's language, January first.
type MonthNames [12]string

// Portuguese month names, as printed by the Brazilian Navy tide tables.
var Portuguese = MonthNames{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Name returns the name of month m, or "" when m is out of range.
func (n MonthNames) Name(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return n[m-1]
}

// Span is a half open byte range [Start, End) of a text. Spans index into the
// text they were computed from and are never copies of it.
type Span struct {
	Start, End int
}

// Of returns the part of text covered by s.
func (s Span) Of(text string) string {
	return text[s.Start:s.End]
}

// Len is the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// Document is normalized tide table text ready for segmentation. It is
// immutable once built.
type Document struct {
	Text string
	key  keyedText
}

// NewDocument normalizes raw (see Normalize) and prepares it for month lookups.
func NewDocument(raw []byte, maxBytes int) *Document {
	return newDocument(Normalize(raw, maxBytes))
}

func newDocument(text string) *Document {
	return &Document{
		Text: text,
		key:  newKeyedText(text),
	}
}

// Month locates the block of text belonging to month m. The block starts at
// the first occurrence of the month's name and ends right before the first
// occurrence of the following month's name, or at the end of the text for
// December or when the following name never appears. Names match regardless of
// case and accents. ok is false when the month's name is not in the text.
func (d *Document) Month(m time.Month, names MonthNames) (span Span, ok bool) {
	needle := SearchKey(names.Name(m))
	start := d.key.index(needle, 0)
	if start < 0 {
		return Span{}, false
	}

	span = Span{Start: d.key.textOffset(start), End: len(d.Text)}
	if m == time.December {
		return span, true
	}
	next := SearchKey(names.Name(m + 1))
	if end := d.key.index(next, start+len(needle)); end >= 0 {
		span.End = d.key.textOffset(end)
	}
	return span, true
}

// MonthSpan is Document.Month for a one-off lookup in already normalized text.
func MonthSpan(text string, m time.Month, names MonthNames) (Span, bool) {
	return newDocument(text).Month(m, names)
}
