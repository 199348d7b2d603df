package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nar-calendar/internal/config"
	"github.com/pfrederiksen/nar-calendar/internal/filter"
	"github.com/pfrederiksen/nar-calendar/internal/logger"
	"github.com/pfrederiksen/nar-calendar/internal/metrics"
	"github.com/pfrederiksen/nar-calendar/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type options struct {
	format       string
	output       string
	venues       []string
	regions      []string
	dates        string
	activeOnly   bool
	weekendsOnly bool
	calendarName string
	configPath   string
	metricsFile  string
	verbose      bool

	// now is replaced in tests.
	now func() time.Time
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{now: time.Now}

	cmd := &cobra.Command{
		Use:   "nar-calendar [year]",
		Short: "Export the NAR regional racing schedule as an iCalendar file",
		Long: `Fetches the twelve monthly schedule pages of keiba.go.jp for a year and
writes one all-day event per venue and day to standard output.

The year defaults to the current year when omitted or not a number.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(FormatICS), "Output format: ics, json or text")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().StringArrayVar(&opts.venues, "venue", nil, "Only include this venue (key or name, repeatable)")
	cmd.Flags().StringArrayVar(&opts.regions, "region", nil, "Only include this region (key or name, repeatable)")
	cmd.Flags().StringVar(&opts.dates, "dates", "", "Only include dates in range (2024-03, 2024-03-10, 2024-03-01..2024-03-15)")
	cmd.Flags().BoolVar(&opts.activeOnly, "active-only", false, "Drop days without racing")
	cmd.Flags().BoolVar(&opts.weekendsOnly, "weekends-only", false, "Only include Saturdays and Sundays")
	cmd.Flags().StringVar(&opts.calendarName, "calendar-name", "", "Calendar display name (overrides config)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file (default $NARCAL_CONFIG)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write prometheus metrics to this textfile after the run")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// resolveYear returns the year given as the first argument, or the year of
// now when it is absent or not an integer.
func resolveYear(args []string, now time.Time) int {
	if year, ok := yearArg(args); ok {
		return year
	}
	return now.Year()
}

func yearArg(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, false
	}
	return year, true
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if !format.Valid() {
		return fmt.Errorf("invalid format: %s (must be 'ics', 'json' or 'text')", opts.format)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	f, err := buildFilter(opts)
	if err != nil {
		return err
	}

	year := resolveYear(args, opts.now())
	if _, ok := yearArg(args); len(args) > 0 && !ok {
		logger.Warn("Year argument is not a number, using current year", logger.Fields{
			"arg":  args[0],
			"year": year,
		})
	}
	if len(args) > 1 {
		logger.Debug("Ignoring extra arguments", logger.Fields{"args": args[1:]})
	}

	rec := metrics.New()
	sc := scraper.New(scraper.WithConfig(cfg), scraper.WithMetrics(rec))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	entries, err := sc.FetchYear(ctx, year)
	if err != nil {
		return fmt.Errorf("fetching schedule for %d: %w", year, err)
	}

	if !f.IsEmpty() {
		before := len(entries)
		entries = f.Apply(entries)
		logger.Info("Applied filter", logger.Fields{
			"filter": f.String(),
			"before": before,
			"after":  len(entries),
		})
	}

	name := cfg.CalendarName
	if opts.calendarName != "" {
		name = opts.calendarName
	}

	now := opts.now()
	result := &OutputResult{
		Year:         year,
		GeneratedAt:  now.UTC(),
		CalendarName: name,
		Entries:      entries,
	}

	if err := writeResult(cmd.OutOrStdout(), opts.output, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	rec.Finish(len(entries), now)
	if opts.metricsFile != "" {
		if err := rec.WriteTextfile(opts.metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

func buildFilter(opts *options) (*filter.Filter, error) {
	f := filter.NewFilter()
	f.ActiveOnly = opts.activeOnly
	f.WeekendsOnly = opts.weekendsOnly

	if len(opts.venues) > 0 {
		codes, err := filter.ParseVenues(opts.venues)
		if err != nil {
			return nil, err
		}
		f.Venues = codes
	}
	if len(opts.regions) > 0 {
		regions, err := filter.ParseRegions(opts.regions)
		if err != nil {
			return nil, err
		}
		f.Regions = regions
	}
	if opts.dates != "" {
		from, to, err := filter.ParseDateRange(opts.dates)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}
	return f, nil
}

// writeResult writes to path when set, otherwise to stdout.
func writeResult(stdout io.Writer, path string, result *OutputResult, format OutputFormat) error {
	if path == "" {
		return WriteOutput(stdout, result, format)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOutput(out, result, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
