// Package calendar renders schedule entries as an iCalendar (RFC 5545) document.
//
// Each entry becomes one all-day VEVENT whose start and end are the entry's
// date. Output always uses CRLF line endings.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/nar-calendar/internal/schedule"
)

const (
	// ProductID is written as the calendar's PRODID.
	ProductID = "-//NAR Calendar//nar-calendar//JA"

	// UIDDomain is appended to each entry ID to form the VEVENT UID.
	UIDDomain = "keiba.go.jp"
)

// Options controls calendar-level properties.
type Options struct {
	// Name sets X-WR-CALNAME when non-empty.
	Name string

	// Now is used for CREATED, LAST-MODIFIED and DTSTAMP. Zero means time.Now().
	Now time.Time
}

// NewCalendar builds a calendar with one all-day event per entry. Closed
// entries are included; callers filter beforehand if they want otherwise.
func NewCalendar(entries []schedule.Entry, opts Options) *ics.Calendar {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for _, e := range entries {
		ev := cal.AddEvent(e.ID() + "@" + UIDDomain)
		ev.SetDtStampTime(now)
		ev.SetCreatedTime(now)
		ev.SetModifiedAt(now)
		// Start and end are the same date: a zero-length all-day event.
		ev.SetAllDayStartAt(e.Date)
		ev.SetAllDayEndAt(e.Date)
		ev.SetSummary(e.Summary())
		ev.SetDescription("")
		ev.SetStatus(ics.ObjectStatusConfirmed)
		ev.SetTimeTransparency(ics.TransparencyOpaque)
	}
	return cal
}

// WriteICS serializes entries as an iCalendar document to w.
func WriteICS(w io.Writer, entries []schedule.Entry, opts Options) error {
	return NewCalendar(entries, opts).SerializeTo(w, ics.WithNewLineWindows)
}

// GenerateBulkICS returns entries as an iCalendar document, or "" when there
// are no entries.
func GenerateBulkICS(entries []schedule.Entry, calendarName string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	var b strings.Builder
	if err := WriteICS(&b, entries, Options{Name: calendarName}); err != nil {
		return "", fmt.Errorf("serializing calendar: %w", err)
	}
	return b.String(), nil
}
