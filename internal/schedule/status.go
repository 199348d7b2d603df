package schedule

import "fmt"

// Status is the kind of meeting held at a venue on a given day.
type Status int

const (
	Standard Status = iota
	Nighter
	DartGraded
	Substitute
	Closed
)

// Glyphs as printed in the day cells of the monthly schedule table.
const (
	GlyphStandard   = "●"
	GlyphNighter    = "☆"
	GlyphDartGraded = "Ｄ"
	GlyphSubstitute = "△"
)

var statusNames = [...]struct{ key, label string }{
	Standard:   {"standard", "通常開催"},
	Nighter:    {"nighter", "ナイター競馬"},
	DartGraded: {"dart_graded", "ダート交流重賞競走"},
	Substitute: {"substitute", "別の日に代替開催"},
	Closed:     {"closed", "開催なし"},
}

// Classify maps the text of a day cell to a Status. Only exact glyph matches
// count; anything else, including an empty cell, is Closed.
func Classify(glyph string) Status {
	switch glyph {
	case GlyphStandard:
		return Standard
	case GlyphNighter:
		return Nighter
	case GlyphDartGraded:
		return DartGraded
	case GlyphSubstitute:
		return Substitute
	default:
		return Closed
	}
}

// IsActive reports whether racing is scheduled.
func (s Status) IsActive() bool {
	return s != Closed
}

// Label returns the Japanese description of the status.
func (s Status) Label() string {
	if s < Standard || s > Closed {
		return ""
	}
	return statusNames[s].label
}

func (s Status) String() string {
	if s < Standard || s > Closed {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s].key
}

// MarshalText encodes the status as its key.
func (s Status) MarshalText() ([]byte, error) {
	if s < Standard || s > Closed {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(statusNames[s].key), nil
}

// UnmarshalText decodes a status key.
func (s *Status) UnmarshalText(text []byte) error {
	st, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", text)
	}
	*s = st
	return nil
}

// ParseStatus resolves a status key such as "nighter".
func ParseStatus(key string) (Status, bool) {
	for i, n := range statusNames {
		if n.key == key {
			return Status(i), true
		}
	}
	return Closed, false
}
