package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ratedoc"
	"github.com/fwojciec/ratedoc/fs"
	"github.com/fwojciec/ratedoc/goquery"
	"github.com/fwojciec/ratedoc/harvest"
	"github.com/fwojciec/ratedoc/htmltomarkdown"
	ratedochttp "github.com/fwojciec/ratedoc/http"
	"github.com/fwojciec/ratedoc/prometheus"
	"github.com/fwojciec/ratedoc/readability"
	"github.com/fwojciec/ratedoc/rod"
	ratedocslog "github.com/fwojciec/ratedoc/slog"
	"github.com/fwojciec/ratedoc/sqlite"
	"github.com/fwojciec/ratedoc/toml"
	"github.com/fwojciec/ratedoc/trafilatura"
)

// DefaultConfigPath is read for defaults when it exists.
const DefaultConfigPath = "~/.config/ratedoc/config.toml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher and Browser replace the HTTP and headless Chrome fetchers
	// when set. Used for end-to-end testing.
	Fetcher ratedoc.Fetcher
	Browser ratedoc.Fetcher

	// Now overrides the harvest clock when set.
	Now func() time.Time

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases everything opened by Run in reverse order.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i].Close())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ratedoc"),
		kong.Description("Harvest Norges Bank interest rate decisions into text reports."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"year_url": harvest.DefaultYearURL},
		kong.Configuration(toml.Loader, DefaultConfigPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ratedoc --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]
	logger := newLogger(stderr, cli.Verbose)

	defer m.Close()

	if cmd == "harvest" || cmd == "list" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set RATEDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		m.closers = append(m.closers, m.DB)
		deps.Records = sqlite.NewRecordService(m.DB)
	}

	switch cmd {
	case "harvest":
		h, err := m.newHarvester(&cli.Harvest.SourceFlags, logger, cli.Verbose, stderr)
		if err != nil {
			return err
		}

		extractor := newExtractor(cli.Harvest.Extractor, cli.Harvest.Markdown, cli.Harvest.ChronicleURL)
		if cli.Verbose {
			extractor = ratedocslog.NewLoggingExtractor(extractor, logger)
		}
		h.Extractor = extractor
		h.Store = fs.NewStore(cli.Out)
		h.Records = deps.Records
		h.Concurrency = cli.Harvest.Concurrency
		h.YearDelay = cli.Harvest.YearDelay
		h.Force = cli.Harvest.Force

		logs := fs.NewLogFiles(cli.Out)
		m.closers = append(m.closers, logs)
		h.YearLogs = logs

		if cli.Harvest.MetricsFile != "" {
			metrics := prometheus.NewMetrics()
			deps.Metrics = metrics
			h.Metrics = metrics
			h.Fetcher = prometheus.NewFetcher(h.Fetcher, metrics, "http")
			if h.Browser != nil {
				h.Browser = prometheus.NewFetcher(h.Browser, metrics, "browser")
			}
		}
		deps.Harvester = h

	case "preview":
		h, err := m.newHarvester(&cli.Preview.SourceFlags, logger, cli.Verbose, stderr)
		if err != nil {
			return err
		}
		deps.Harvester = h
	}

	return kongCtx.Run(deps)
}

// newHarvester wires the fetchers and parsers shared by harvest and preview.
func (m *Main) newHarvester(src *SourceFlags, logger *slog.Logger, verbose bool, stderr io.Writer) (*harvest.Harvester, error) {
	for _, tmpl := range []string{src.ChronicleURL, src.ListURL} {
		if err := harvest.ValidateTemplate(tmpl); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", ratedoc.ErrorMessage(err))
			return nil, err
		}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = ratedochttp.NewFetcher(ratedochttp.WithTimeout(src.Timeout))
	}

	browser := m.Browser
	if browser == nil && src.Browser {
		opts := []rod.Option{rod.WithFetchTimeout(src.Timeout)}
		if src.WaitSelector != "" {
			opts = append(opts, rod.WithWaitSelector(src.WaitSelector))
		}
		b, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, b)
		browser = b
	}

	detector := goquery.NewDetector()
	var chronicle, list ratedoc.YearParser = goquery.NewChronicleParser(), goquery.NewListParser()
	if verbose {
		fetcher = ratedocslog.NewLoggingFetcher(fetcher, logger)
		if browser != nil {
			browser = ratedocslog.NewLoggingFetcher(browser, logger)
		}
		chronicle = ratedocslog.NewLoggingParser(chronicle, logger)
		list = ratedocslog.NewLoggingParser(list, logger)
	}

	registry := goquery.NewRegistry(detector, chronicle)
	registry.Register(list)
	var parsers ratedoc.ParserRegistry = registry
	if verbose {
		parsers = ratedocslog.NewLoggingRegistry(registry, detector, logger)
	}

	return &harvest.Harvester{
		Fetcher:        fetcher,
		Browser:        browser,
		Parsers:        parsers,
		Detector:       detector,
		Resources:      goquery.NewListParser(),
		Limiter:        harvest.NewDomainLimiter(src.RPS),
		Logger:         logger,
		ChronicleURL:   src.ChronicleURL,
		ListURL:        src.ListURL,
		TransitionYear: src.TransitionYear,
		Now:            m.Now,
	}, nil
}

// newExtractor returns the named content extractor. With markdown set the
// extracted region is converted to Markdown with links resolved against
// the host of baseTemplate.
func newExtractor(name string, markdown bool, baseTemplate string) ratedoc.ContentExtractor {
	var conv ratedoc.Converter
	if markdown {
		host := harvest.Host(harvest.YearURL(baseTemplate, time.Now().Year()))
		conv = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://" + host))
	}

	switch name {
	case "trafilatura":
		var opts []trafilatura.Option
		if conv != nil {
			opts = append(opts, trafilatura.WithConverter(conv))
		}
		return trafilatura.NewExtractor(opts...)
	case "readability":
		var opts []readability.Option
		if conv != nil {
			opts = append(opts, readability.WithConverter(conv))
		}
		return readability.NewExtractor(opts...)
	default:
		var opts []goquery.ContentOption
		if conv != nil {
			opts = append(opts, goquery.WithConverter(conv))
		}
		return goquery.NewContentExtractor(opts...)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
