package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/nar-calendar/internal/calendar"
	"github.com/pfrederiksen/nar-calendar/internal/schedule"
	"github.com/pfrederiksen/nar-calendar/internal/venue"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatICS  OutputFormat = "ics"
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

// Valid reports whether f is a supported format.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatICS, FormatJSON, FormatText:
		return true
	}
	return false
}

// OutputResult contains data to be output
type OutputResult struct {
	Year         int
	GeneratedAt  time.Time
	CalendarName string
	Entries      []schedule.Entry
}

type jsonEntry struct {
	Venue       string          `json:"venue"`
	VenueName   string          `json:"venue_name"`
	Region      string          `json:"region"`
	Date        string          `json:"date"`
	Status      schedule.Status `json:"status"`
	StatusLabel string          `json:"status_label"`
}

type jsonResult struct {
	Year        int         `json:"year"`
	GeneratedAt time.Time   `json:"generated_at"`
	EntryCount  int         `json:"entry_count"`
	Entries     []jsonEntry `json:"entries"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatICS:
		return calendar.WriteICS(w, result.Entries, calendar.Options{
			Name: result.CalendarName,
			Now:  result.GeneratedAt,
		})
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	out := jsonResult{
		Year:        result.Year,
		GeneratedAt: result.GeneratedAt,
		EntryCount:  len(result.Entries),
		Entries:     make([]jsonEntry, len(result.Entries)),
	}
	for i, e := range result.Entries {
		out.Entries[i] = jsonEntry{
			Venue:       e.Venue.Key(),
			VenueName:   e.Venue.Name(),
			Region:      venue.RegionOf(e.Venue).Key(),
			Date:        e.DateString(),
			Status:      e.Status,
			StatusLabel: e.Status.Label(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	if len(result.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries found.")
		return err
	}

	for _, e := range result.Entries {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", e.DateString(), e.Venue.Name(), e.Status.Label()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d entries for %d\n", len(result.Entries), result.Year)
	return err
}
