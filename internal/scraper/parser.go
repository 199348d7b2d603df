package scraper

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/nar-calendar/internal/logger"
	"github.com/pfrederiksen/nar-calendar/internal/schedule"
	"github.com/pfrederiksen/nar-calendar/internal/venue"
)

// Selectors for the keiba.go.jp monthly schedule page.
const (
	selYearOption  = `select[name="k_year"] option[selected]`
	selMonthOption = `select[name="k_month"] option[selected]`
	selContainer   = "td.dbtbl"
	selRegionCell  = "td.dbtitle"
	selNameCell    = "td.dbitem"
	selDayCell     = "td.dbdata"
)

// MonthPage is the parsed content of one monthly schedule page.
type MonthPage struct {
	Year    int
	Month   time.Month
	Entries []schedule.Entry

	// Unrecognized holds venue names of rows that were skipped.
	Unrecognized []string
}

// ParseMonth reads one monthly schedule page. The year and month come from
// the page's own selectors, not from the request.
func ParseMonth(r io.Reader) (*MonthPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Reason: "reading HTML", Err: err}
	}

	year, err := selectedValue(doc, selYearOption, "year selector")
	if err != nil {
		return nil, err
	}
	month, err := selectedValue(doc, selMonthOption, "month selector")
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, &ParseError{Reason: fmt.Sprintf("month out of range: %d", month)}
	}

	table := doc.Find(selContainer).First().ChildrenFiltered("table").First()
	if table.Length() == 0 {
		return nil, missing("results table")
	}

	page := &MonthPage{Year: year, Month: time.Month(month)}

	// Rows of nested tables are excluded; goquery inserts a tbody, so rows
	// are not direct children of table.
	rows := table.Find("tr").FilterFunction(func(_ int, row *goquery.Selection) bool {
		return row.Closest("table").IsSelection(table) && row.ChildrenFiltered(selNameCell).Length() > 0
	})

	// The region cell spans several rows, so later rows of a region have no
	// leading cell. Cells are located by class, never by position.
	region := venue.NoRegion
	seen := make(map[venue.Code]int)
	var parseErr error
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if cell := row.ChildrenFiltered(selRegionCell).First(); cell.Length() > 0 {
			if r, ok := venue.ResolveRegion(cellText(cell)); ok {
				region = r
			}
		}

		name := cellText(row.ChildrenFiltered(selNameCell).First())
		code, ok := venue.Resolve(name)
		if !ok {
			page.Unrecognized = append(page.Unrecognized, name)
			return true
		}
		if region != venue.NoRegion && venue.RegionOf(code) != region {
			logger.Debug("Venue listed under unexpected region", logger.Fields{
				"venue":  code.Key(),
				"region": region.Key(),
			})
		}

		occurrence := seen[code]
		seen[code]++
		if occurrence > 0 {
			logger.Warn("Venue listed more than once", logger.Fields{
				"venue":      code.Key(),
				"venue_name": name,
				"occurrence": occurrence,
			})
		}

		row.ChildrenFiltered(selDayCell).EachWithBreak(func(i int, cell *goquery.Selection) bool {
			entry, err := schedule.NewEntry(code, year, time.Month(month), i+1, schedule.Classify(cellText(cell)))
			if err != nil {
				parseErr = &ParseError{Reason: fmt.Sprintf("row %s", name), Err: err}
				return false
			}
			page.Entries = append(page.Entries, entry.WithOccurrence(occurrence))
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return page, nil
}

func selectedValue(doc *goquery.Document, selector, what string) (int, error) {
	opt := doc.Find(selector).First()
	if opt.Length() == 0 {
		return 0, missing(what)
	}
	raw, ok := opt.Attr("value")
	if !ok {
		return 0, missing(what + " value")
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ParseError{Reason: what, Err: err}
	}
	return v, nil
}

// cellText returns the cell text with line breaks removed and surrounding
// whitespace trimmed.
func cellText(s *goquery.Selection) string {
	text := strings.NewReplacer("\r", "", "\n", "").Replace(s.Text())
	return strings.TrimSpace(text)
}
