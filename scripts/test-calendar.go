package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/nar-calendar/internal/calendar"
	"github.com/pfrederiksen/nar-calendar/internal/scraper"
)

// Renders the sample month fixture to an .ics file for a manual check in a
// calendar app. Run from the repository root.
func main() {
	fixture := "testdata/fixtures/sample_month.html"
	if len(os.Args) > 1 {
		fixture = os.Args[1]
	}

	f, err := os.Open(fixture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening fixture: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	page, err := scraper.ParseMonth(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fixture: %v\n", err)
		os.Exit(1)
	}

	name := fmt.Sprintf("地方競馬 %04d-%02d", page.Year, int(page.Month))
	icsContent, err := calendar.GenerateBulkICS(page.Entries, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating calendar: %v\n", err)
		os.Exit(1)
	}

	// Write to file (owner read/write only)
	filename := "test-nar-calendar.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s (%d events)\n\n", filename, len(page.Entries))
	if len(page.Unrecognized) > 0 {
		fmt.Printf("Skipped unrecognized venues: %v\n\n", page.Unrecognized)
	}
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
