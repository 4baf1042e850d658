package dhn

import (
	"fmt"
	"strconv"
	"strings"
)

// DocumentQuery identifies the tide table of a station for one year. URL and
// Path are templates where {station} and {year} are substituted; URL wins
// when both are set.
type DocumentQuery struct {
	Station string
	Year    int
	URL     string
	Path    string
}

// Error describes a failed document retrieval.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("document %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (q DocumentQuery) expand(template string) string {
	return strings.NewReplacer(
		"{station}", q.Station,
		"{year}", strconv.Itoa(q.Year),
	).Replace(template)
}

// Source is where the document will be read from: an expanded URL or path.
func (q DocumentQuery) Source() string {
	if q.URL != "" {
		return q.expand(q.URL)
	}
	return q.expand(q.Path)
}

func (q DocumentQuery) remote() bool {
	return q.URL != ""
}
