package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/relcards/enrich"
	"github.com/fwojciec/relcards/fs"
	relgoquery "github.com/fwojciec/relcards/goquery"
	relhttp "github.com/fwojciec/relcards/http"
	"github.com/fwojciec/relcards/rod"
	relslog "github.com/fwojciec/relcards/slog"
	"github.com/fwojciec/relcards/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("relcards"),
		kong.Description("Extract related-content cards from a rendered web page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	renderer, err := rod.NewRenderer(
		rod.WithSettleDelay(cli.Settle),
		rod.WithHeadingPhrase(cli.Heading),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer renderer.Close()
	deps.Renderer = rod.NewLoggingRenderer(renderer, logger)

	fetcher := relhttp.NewFetcher(relhttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	// One request per second per host keeps secondary fetches polite; the
	// burst matches the worker pool so same-host cards don't serialize the
	// other workers behind the first card's wait.
	limiter := enrich.NewHostLimiter(1.0, enrich.WithBurst(cli.Concurrency))
	metaImages := enrich.NewMetaImages(fetcher,
		enrich.WithTimeout(cli.Timeout),
		enrich.WithHostLimiter(limiter),
	)
	deps.MetaImages = relslog.NewLoggingMetaImages(metaImages, logger)

	deps.Extractor = relgoquery.NewExtractor()
	deps.Writer = fs.NewWriter(cli.Out)

	if cli.DB != "" {
		db := sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		deps.Snapshots = sqlite.NewSnapshotService(db)
	}

	cmd := &ScrapeCmd{
		URL:         cli.URL,
		Heading:     cli.Heading,
		Concurrency: cli.Concurrency,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Heading     string        `short:"H" default:"Related" help:"Heading phrase identifying the content section"`
	Out         string        `short:"o" default:"." help:"Output directory for the snapshot JSON"`
	DB          string        `help:"Optional SQLite database path for snapshot history"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent enrichment fetch limit"`
	Timeout     time.Duration `short:"t" default:"20s" help:"Timeout per secondary fetch"`
	Settle      time.Duration `default:"2s" help:"Settle delay after page load"`
	URL         string        `arg:"" required:"" help:"Page URL to extract cards from"`
}
