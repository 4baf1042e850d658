package almanac

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile describes a tide table location: how its documents are labelled and
// written, and the fixed offset its clock times are in. Daylight saving is
// never applied.
type Profile struct {
	Slug       string `yaml:"slug"`
	Name       string `yaml:"name"`
	Source     string `yaml:"source"`
	SourceName string `yaml:"source_name"`

	// UTCOffsetHours is the standing offset of the tables' clock times.
	UTCOffsetHours float64    `yaml:"utc_offset_hours"`
	MonthNames     MonthNames `yaml:"-"`

	// MaxDocumentBytes caps how much of a document is read; 0 means
	// DefaultMaxBytes.
	MaxDocumentBytes int `yaml:"max_document_bytes"`

	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`

	// DocumentURL may contain {station} and {year} placeholders.
	DocumentURL  string `yaml:"document_url"`
	DocumentPath string `yaml:"document_path"`
}

// Ilheus is the tide table of the port of Ilhéus, Bahia.
var Ilheus = Profile{
	Slug:           "ilheus",
	Name:           "Ilhéus - BA",
	Source:         "DHN/CHM",
	SourceName:     "Marinha do Brasil - CHM (Tábua de Marés)",
	UTCOffsetHours: -3,
	MonthNames:     Portuguese,
	Latitude:       -14.7936,
	Longitude:      -39.0464,
}

// Location is the fixed-offset zone of the profile's clock times.
func (p Profile) Location() *time.Location {
	offset := int(math.Round(p.UTCOffsetHours * 3600))
	return time.FixedZone(offsetName(offset), offset)
}

// MaxBytes is the document cap to use for the profile.
func (p Profile) MaxBytes() int {
	if p.MaxDocumentBytes <= 0 {
		return DefaultMaxBytes
	}
	return p.MaxDocumentBytes
}

// offsetName formats an offset in seconds as "-03:00".
func offsetName(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, seconds%3600/60)
}

// Validate reports the first problem that makes p unusable.
func (p Profile) Validate() error {
	if p.Slug == "" {
		return errors.New("profile slug is required")
	}
	if p.UTCOffsetHours < -14 || p.UTCOffsetHours > 14 {
		return fmt.Errorf("profile %q: utc_offset_hours %v out of range", p.Slug, p.UTCOffsetHours)
	}
	for i, name := range p.MonthNames {
		if strings.TrimSpace(SearchKey(name)) == "" {
			return fmt.Errorf("profile %q: missing name for %s", p.Slug, time.Month(i+1))
		}
	}
	if p.MaxDocumentBytes < 0 {
		return fmt.Errorf("profile %q: max_document_bytes must not be negative", p.Slug)
	}
	return nil
}

// LoadProfiles reads a YAML list of profiles. Profiles that leave month_names
// out get the Portuguese names.
func LoadProfiles(r io.Reader) ([]Profile, error) {
	var raw []struct {
		Profile    `yaml:",inline"`
		MonthNames []string `yaml:"month_names"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	profiles := make([]Profile, 0, len(raw))
	seen := make(map[string]bool)
	for _, entry := range raw {
		p := entry.Profile
		switch len(entry.MonthNames) {
		case 0:
			p.MonthNames = Portuguese
		case 12:
			copy(p.MonthNames[:], entry.MonthNames)
		default:
			return nil, fmt.Errorf("profile %q: want 12 month_names, got %d", p.Slug, len(entry.MonthNames))
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Slug] {
			return nil, fmt.Errorf("profile %q defined twice", p.Slug)
		}
		seen[p.Slug] = true
		profiles = append(profiles, p)
	}
	return profiles, nil
}
