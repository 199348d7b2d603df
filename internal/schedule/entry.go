// Package schedule defines the per-day, per-venue schedule entries produced
// from the monthly NAR schedule pages.
package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/nar-calendar/internal/venue"
)

// SummarySuffix is appended to the venue name to form an event title.
const SummarySuffix = "競馬"

// uidNamespace scopes entry UIDs to the keiba.go.jp schedule.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.keiba.go.jp/KeibaWeb/MonthlyConveneInfo"))

// Entry is the status of one venue on one day. Entries are values and are
// not modified after NewEntry returns them.
type Entry struct {
	Venue  venue.Code
	Date   time.Time // midnight UTC
	Status Status

	// Occurrence is 0 for the first row of a venue on a month page and
	// counts up when the same venue is listed again (帯広 and 帯広ば).
	Occurrence int
}

// NewEntry builds an Entry for the given calendar day. It fails when the day
// does not exist in that month.
func NewEntry(code venue.Code, year int, month time.Month, day int, status Status) (Entry, error) {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return Entry{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, int(month), day)
	}
	return Entry{Venue: code, Date: date, Status: status}, nil
}

// WithOccurrence returns a copy of e listed as the n-th row of its venue.
func (e Entry) WithOccurrence(n int) Entry {
	e.Occurrence = n
	return e
}

// Summary returns the event title, e.g. "大井競馬".
func (e Entry) Summary() string {
	return e.Venue.Name() + SummarySuffix
}

// DateString formats the date as YYYY-MM-DD.
func (e Entry) DateString() string {
	return e.Date.Format("2006-01-02")
}

// IsWeekend reports whether the entry falls on a Saturday or Sunday.
func (e Entry) IsWeekend() bool {
	wd := e.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ID returns a deterministic identifier derived from venue, date and
// occurrence, so the same race day keeps its calendar UID across runs and a
// venue listed twice on one page does not produce duplicate UIDs.
func (e Entry) ID() string {
	name := e.Venue.Key() + "|" + e.DateString()
	if e.Occurrence > 0 {
		name += fmt.Sprintf("|%d", e.Occurrence)
	}
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s %s", e.DateString(), e.Venue.Name(), e.Status.Label())
}
