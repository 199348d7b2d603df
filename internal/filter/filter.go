// Package filter narrows a list of schedule entries.
//
// An empty filter matches everything, which is the default behavior: every
// entry of every venue, including closed days, is emitted. Criteria:
//   - Date range (from/to dates, inclusive)
//   - Venues (any of)
//   - Regions (any of)
//   - ActiveOnly (drop Closed days)
//   - Weekends only (Saturday/Sunday)
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Regions = []venue.Region{venue.MinamiKanto}
//	f.ActiveOnly = true
//	entries = f.Apply(entries)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/nar-calendar/internal/schedule"
	"github.com/pfrederiksen/nar-calendar/internal/venue"
)

// Filter represents entry filtering criteria
type Filter struct {
	DateFrom *time.Time
	DateTo   *time.Time

	Venues  []venue.Code
	Regions []venue.Region

	ActiveOnly   bool
	WeekendsOnly bool
}

// NewFilter creates a new empty filter with no active criteria.
func NewFilter() *Filter {
	return &Filter{
		Venues:  []venue.Code{},
		Regions: []venue.Region{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Venues) == 0 &&
		len(f.Regions) == 0 &&
		!f.ActiveOnly &&
		!f.WeekendsOnly
}

// Matches checks if an entry matches all active criteria.
func (f *Filter) Matches(e schedule.Entry) bool {
	if f.DateFrom != nil && e.Date.Before(truncateDay(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && e.Date.After(truncateDay(*f.DateTo)) {
		return false
	}

	if len(f.Venues) > 0 && !containsVenue(f.Venues, e.Venue) {
		return false
	}

	if len(f.Regions) > 0 && !containsRegion(f.Regions, venue.RegionOf(e.Venue)) {
		return false
	}

	if f.ActiveOnly && !e.Status.IsActive() {
		return false
	}

	if f.WeekendsOnly && !e.IsWeekend() {
		return false
	}

	return true
}

// Apply returns the entries that match, preserving order. An empty filter
// returns the input unchanged.
func (f *Filter) Apply(entries []schedule.Entry) []schedule.Entry {
	if f == nil || f.IsEmpty() {
		return entries
	}

	filtered := make([]schedule.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "From: 2024-03-01 | Venues: 大井, 川崎 | Active only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.DateFrom != nil {
		parts = append(parts, "From: "+f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		parts = append(parts, "To: "+f.DateTo.Format("2006-01-02"))
	}
	if len(f.Venues) > 0 {
		names := make([]string, len(f.Venues))
		for i, c := range f.Venues {
			names[i] = c.Name()
		}
		parts = append(parts, "Venues: "+strings.Join(names, ", "))
	}
	if len(f.Regions) > 0 {
		names := make([]string, len(f.Regions))
		for i, r := range f.Regions {
			names[i] = r.Name()
		}
		parts = append(parts, "Regions: "+strings.Join(names, ", "))
	}
	if f.ActiveOnly {
		parts = append(parts, "Active only")
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}
	return strings.Join(parts, " | ")
}

// ParseVenues resolves romanized keys ("oi") or Japanese names ("大井").
func ParseVenues(values []string) ([]venue.Code, error) {
	codes := make([]venue.Code, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if c, ok := venue.ParseKey(strings.ToLower(v)); ok {
			codes = append(codes, c)
			continue
		}
		if c, ok := venue.Resolve(v); ok {
			codes = append(codes, c)
			continue
		}
		return nil, fmt.Errorf("unknown venue: %s", v)
	}
	return codes, nil
}

// ParseRegions resolves romanized keys ("minamikanto") or Japanese names ("南関東").
func ParseRegions(values []string) ([]venue.Region, error) {
	regions := make([]venue.Region, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if r, ok := venue.ParseRegionKey(strings.ToLower(v)); ok {
			regions = append(regions, r)
			continue
		}
		if r, ok := venue.ResolveRegion(v); ok {
			regions = append(regions, r)
			continue
		}
		return nil, fmt.Errorf("unknown region: %s", v)
	}
	return regions, nil
}

func containsVenue(codes []venue.Code, c venue.Code) bool {
	for _, x := range codes {
		if x == c {
			return true
		}
	}
	return false
}

func containsRegion(regions []venue.Region, r venue.Region) bool {
	for _, x := range regions {
		if x == r {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
