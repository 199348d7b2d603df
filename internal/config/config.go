// Package config defines the runtime configuration for nar-calendar.
//
// Defaults reproduce the plain behavior: fetch from keiba.go.jp, write ICS,
// log at info. A YAML file and NARCAL_* environment variables may override
// them; see Load.
package config

import "time"

// Defaults.
const (
	DefaultBaseURL     = "http://www2.keiba.go.jp/KeibaWeb/MonthlyConveneInfo/MonthlyConveneInfoTop"
	DefaultUserAgent   = "nar-calendar/1.0 (github.com/pfrederiksen/nar-calendar)"
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
)

// Config contains process configuration.
type Config struct {
	// BaseURL is the monthly schedule page; k_year and k_month are appended.
	BaseURL string `koanf:"base_url"`

	// UserAgent is sent with every request.
	UserAgent string `koanf:"user_agent"`

	// Timeout bounds each page request. Zero disables the timeout.
	Timeout time.Duration `koanf:"timeout"`

	// Concurrency is the number of months fetched at once. 1 is sequential.
	Concurrency int `koanf:"concurrency"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// CalendarName sets X-WR-CALNAME on the ICS output when non-empty.
	CalendarName string `koanf:"calendar_name"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		LogLevel:    "info",
	}
}
