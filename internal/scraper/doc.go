// Package scraper provides HTTP fetching and HTML parsing for the NAR monthly
// schedule pages.
//
// Each page lists one row per venue with one cell per day of the month. The
// scraper reads the page's selected year and month, resolves venue names and
// classifies the status glyph of every day cell. FetchYear fetches all twelve
// months concurrently and returns the entries in month, row and day order.
package scraper
