package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/nar-calendar/internal/schedule"
	"github.com/pfrederiksen/nar-calendar/internal/venue"
)

func mustEntry(t *testing.T, code venue.Code, year int, month time.Month, day int, status schedule.Status) schedule.Entry {
	t.Helper()
	e, err := schedule.NewEntry(code, year, month, day, status)
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}
	return e
}

// bareLineFeeds counts "\n" not preceded by "\r".
func bareLineFeeds(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\r') {
			n++
		}
	}
	return n
}

func TestWriteICS(t *testing.T) {
	entry := mustEntry(t, venue.Kawasaki, 2024, time.March, 15, schedule.Nighter)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteICS(&buf, []schedule.Entry{entry}, Options{Now: now}); err != nil {
		t.Fatalf("WriteICS() error = %v", err)
	}
	ics := buf.String()

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//NAR Calendar//nar-calendar//JA",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + entry.ID() + "@keiba.go.jp",
		"DTSTAMP:20240102T030405Z",
		"CREATED:20240102T030405Z",
		"LAST-MODIFIED:20240102T030405Z",
		"DTSTART;VALUE=DATE:20240315",
		"DTEND;VALUE=DATE:20240315",
		"SUMMARY:川崎競馬",
		"DESCRIPTION:",
		"STATUS:CONFIRMED",
		"TRANSP:OPAQUE",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
	if n := bareLineFeeds(ics); n > 0 {
		t.Errorf("ICS has %d lines ending in a bare \\n", n)
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("ICS should end with END:VCALENDAR\\r\\n")
	}
	if strings.Contains(ics, "X-WR-CALNAME") {
		t.Error("Should not include X-WR-CALNAME when name is empty")
	}
}

func TestWriteICS_MarchAtOi(t *testing.T) {
	var entries []schedule.Entry
	for day := 1; day <= 31; day++ {
		entries = append(entries, mustEntry(t, venue.Oi, 2024, time.March, day, schedule.Standard))
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, entries, Options{}); err != nil {
		t.Fatalf("WriteICS() error = %v", err)
	}
	ics := buf.String()

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 31 {
		t.Errorf("Expected 31 BEGIN:VEVENT, got %d", got)
	}
	if got := strings.Count(ics, "SUMMARY:大井競馬"); got != 31 {
		t.Errorf("Expected 31 大井競馬 summaries, got %d", got)
	}
	if got := strings.Count(ics, "STATUS:CONFIRMED"); got != 31 {
		t.Errorf("Expected 31 CONFIRMED, got %d", got)
	}
	if got := strings.Count(ics, "TRANSP:OPAQUE"); got != 31 {
		t.Errorf("Expected 31 OPAQUE, got %d", got)
	}
	if n := bareLineFeeds(ics); n > 0 {
		t.Errorf("ICS has %d lines ending in a bare \\n", n)
	}

	for day := 1; day <= 31; day++ {
		date := fmt.Sprintf("202403%02d", day)
		if !strings.Contains(ics, "DTSTART;VALUE=DATE:"+date) {
			t.Errorf("missing DTSTART for %s", date)
		}
		if !strings.Contains(ics, "DTEND;VALUE=DATE:"+date) {
			t.Errorf("missing DTEND for %s", date)
		}
	}
}

func TestWriteICS_ClosedEntriesAreEmitted(t *testing.T) {
	entries := []schedule.Entry{
		mustEntry(t, venue.Saga, 2024, time.May, 1, schedule.Closed),
		mustEntry(t, venue.Saga, 2024, time.May, 2, schedule.Standard),
	}

	var buf bytes.Buffer
	if err := WriteICS(&buf, entries, Options{}); err != nil {
		t.Fatalf("WriteICS() error = %v", err)
	}

	if got := strings.Count(buf.String(), "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 VEVENTs including the closed day, got %d", got)
	}
	if !strings.Contains(buf.String(), "DTSTART;VALUE=DATE:20240501") {
		t.Error("closed day should still produce an event")
	}
}

func TestWriteICS_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteICS(&buf, nil, Options{}); err != nil {
		t.Fatalf("WriteICS() error = %v", err)
	}

	if !strings.Contains(buf.String(), "BEGIN:VCALENDAR") {
		t.Error("empty schedule should still produce a calendar")
	}
	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("empty schedule should produce no events")
	}
}

func TestGenerateBulkICS(t *testing.T) {
	entries := []schedule.Entry{
		mustEntry(t, venue.Obihiro, 2024, time.January, 2, schedule.Standard),
		mustEntry(t, venue.Kochi, 2024, time.January, 2, schedule.Nighter),
		mustEntry(t, venue.Saga, 2024, time.January, 3, schedule.DartGraded),
	}

	ics, err := GenerateBulkICS(entries, "地方競馬 2024")
	if err != nil {
		t.Fatalf("GenerateBulkICS() error = %v", err)
	}

	if !strings.Contains(ics, "X-WR-CALNAME:地方競馬 2024") {
		t.Error("Missing calendar name")
	}

	beginCount := strings.Count(ics, "BEGIN:VEVENT")
	endCount := strings.Count(ics, "END:VEVENT")
	if beginCount != 3 {
		t.Errorf("Expected 3 BEGIN:VEVENT, got %d", beginCount)
	}
	if endCount != 3 {
		t.Errorf("Expected 3 END:VEVENT, got %d", endCount)
	}

	for _, e := range entries {
		uid := "UID:" + e.ID() + "@keiba.go.jp"
		if !strings.Contains(ics, uid) {
			t.Errorf("Missing UID for entry: %s", e)
		}
	}

	// Events keep input order.
	if strings.Index(ics, "帯広競馬") > strings.Index(ics, "高知競馬") {
		t.Error("events should appear in input order")
	}
}

func TestGenerateBulkICS_EmptyEntries(t *testing.T) {
	ics, err := GenerateBulkICS(nil, "Test Calendar")
	if err != nil {
		t.Fatalf("GenerateBulkICS() error = %v", err)
	}
	if ics != "" {
		t.Error("Empty entries should return empty string")
	}
}

func TestNewCalendar_StableUIDs(t *testing.T) {
	entries := []schedule.Entry{mustEntry(t, venue.Sonoda, 2024, time.June, 5, schedule.Standard)}

	a := NewCalendar(entries, Options{Now: time.Unix(0, 0)}).Events()[0].Id()
	b := NewCalendar(entries, Options{Now: time.Now()}).Events()[0].Id()
	if a != b {
		t.Errorf("UID changed between runs: %q vs %q", a, b)
	}
}
