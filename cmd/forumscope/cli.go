package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/config"
	"github.com/forumscope/forumscope/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	DB      *sqlite.DB
	Runs    forumscope.RunService
	Records forumscope.RecordService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"C" help:"Path to YAML config file" env:"FORUMSCOPE_CONFIG"`

	Scrape   ScrapeCmd   `cmd:"" help:"Scrape configured forum sections and export the records"`
	Report   ReportCmd   `cmd:"" help:"Build a business intelligence report from a JSON export"`
	Validate ValidateCmd `cmd:"" help:"Validate the most recent JSON export"`
	Sections SectionsCmd `cmd:"" help:"List configured forum sections"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Sections    []string `short:"s" help:"Scrape only these sections (default: all configured)"`
	MaxPages    int      `help:"Maximum pages per section (default from config)"`
	OutputDir   string   `short:"o" help:"Output directory (default from config)"`
	DryRun      bool     `help:"Show what would be scraped without fetching"`
	Backup      bool     `short:"b" help:"Back up the output directory before writing"`
	Concurrency int      `short:"c" help:"Concurrent section limit (default from config)"`
}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	Data   string `short:"d" help:"JSON export to analyze (default: most recent in output dir)"`
	Output string `short:"o" help:"Write the report to this file instead of stdout"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	OutputDir string `short:"o" help:"Directory holding exports (default from config)"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct{}
