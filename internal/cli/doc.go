// Package cli implements the command-line interface for nar-calendar.
//
// The cli package provides the Cobra-based root command: it resolves the target
// year, loads configuration, drives the scraper, applies the entry filter and
// writes ICS, JSON or text output.
package cli
