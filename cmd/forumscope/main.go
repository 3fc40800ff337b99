package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/config"
	forumslog "github.com/forumscope/forumscope/slog"
	"github.com/forumscope/forumscope/sqlite"
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
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService    forumscope.RunService
	RecordService forumscope.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("forumscope"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'forumscope --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: pass --config or set FORUMSCOPE_CONFIG")
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cfg.Logging.Level)

	// The scrape pipeline archives records; the file-based commands
	// work on exports and never touch the database.
	if cmd == "scrape" {
		m.DB = sqlite.NewDB(cfg.Database)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: set FORUMSCOPE_DATABASE to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cfg.Database, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		m.RecordService = forumslog.NewLoggingRecordService(sqlite.NewRecordService(m.DB), deps.Logger)
		deps.DB = m.DB
		deps.Runs = m.RunService
		deps.Records = m.RecordService
	}

	return kongCtx.Run(deps)
}

// newLogger builds the CLI logger at the configured level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
