package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ratedoc"
	"github.com/fwojciec/ratedoc/harvest"
	"github.com/fwojciec/ratedoc/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Records   ratedoc.RecordService
	Harvester *harvest.Harvester
	Metrics   *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load configuration from a TOML file"`
	DB      string          `name:"db" env:"RATEDOC_DB" default:"ratedoc.db" help:"SQLite database of harvested decisions"`
	Out     string          `env:"RATEDOC_OUT" default:"rentebeslutninger" help:"Output directory for reports and year logs"`
	Verbose bool            `short:"v" help:"Log every fetch, parse and extraction"`

	Harvest HarvestCmd `cmd:"" help:"Harvest rate decisions for a range of years"`
	Preview PreviewCmd `cmd:"" help:"Show the decisions of a year without fetching resources"`
	List    ListCmd    `cmd:"" help:"List recorded decisions"`
}

// SourceFlags configure how year pages are located and fetched.
type SourceFlags struct {
	ChronicleURL   string        `name:"chronicle-url" default:"${year_url}" help:"Year page URL template for the chronicle layout (%d is the year)"`
	ListURL        string        `name:"list-url" default:"${year_url}" help:"Year page URL template for the list layout (%d is the year)"`
	TransitionYear int           `default:"2007" help:"First year expected to use the list layout"`
	Timeout        time.Duration `default:"10s" help:"Timeout per page fetch"`
	RPS            float64       `name:"rps" default:"2" help:"Requests per second per host (0 disables pacing)"`
	Browser        bool          `help:"Render list pages with headless Chrome when they parse empty"`
	WaitSelector   string        `help:"CSS selector the browser waits for before reading a page"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	From int `arg:"" help:"First year to harvest"`
	To   int `arg:"" optional:"" help:"Last year to harvest (defaults to the first)"`

	SourceFlags `embed:""`

	Concurrency int           `short:"c" default:"3" help:"Concurrent resource fetches per decision"`
	YearDelay   time.Duration `default:"1s" help:"Pause between years"`
	Extractor   string        `enum:"goquery,trafilatura,readability" default:"goquery" help:"Content extractor (goquery, trafilatura, readability)"`
	Markdown    bool          `help:"Convert extracted content to Markdown"`
	Force       bool          `short:"f" help:"Harvest decisions that are already recorded"`
	MetricsFile string        `help:"Write Prometheus metrics to this textfile after the run"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	Year int `arg:"" help:"Year to preview"`

	SourceFlags `embed:""`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Year   int `help:"Only list decisions of this year"`
	Limit  int `help:"Maximum number of decisions to list"`
	Offset int `help:"Number of decisions to skip"`
}
