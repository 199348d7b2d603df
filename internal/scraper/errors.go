package scraper

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingElement is wrapped by ParseError when a required part of the
// page (year/month selector or results table) is absent.
var ErrMissingElement = errors.New("missing page element")

// FetchError reports a transport failure or non-200 response for a month.
type FetchError struct {
	Year       int
	Month      time.Month
	URL        string
	StatusCode int // zero for transport errors
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %04d-%02d: unexpected status code: %d", e.Year, int(e.Month), e.StatusCode)
	}
	return fmt.Sprintf("fetching %04d-%02d: %v", e.Year, int(e.Month), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a page that lacks the structure needed to read it.
// Year and Month are the requested month when known.
type ParseError struct {
	Year   int
	Month  time.Month
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "parsing schedule page"
	if e.Year != 0 {
		msg = fmt.Sprintf("parsing %04d-%02d", e.Year, int(e.Month))
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func missing(what string) *ParseError {
	return &ParseError{Reason: what, Err: ErrMissingElement}
}
