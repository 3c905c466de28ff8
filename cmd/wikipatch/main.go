// Package main provides the wikipatch binary entry point.
// Wikipatch applies RDF patch documents to Wikidata items: it diffs the
// asserted triples against live entity state and submits only the
// statements that actually changed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/wikipatch/config"
	"github.com/c360studio/wikipatch/mediawiki"
	"github.com/c360studio/wikipatch/patch"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "wikipatch"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath     string
	inputPath      string
	username       string
	password       string
	blocklistTitle string
	dryRun         bool
	logLevel       string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "wikipatch",
		Short: "Apply RDF patch documents to Wikidata",
		Long: `Wikipatch reads a Turtle document describing desired statement
changes, compares it against live Wikidata entity state, and submits
only the statements that differ.

Supported operations include asserting truthy values, creating new
statements with qualifiers and references, editing existing statements
by GUID, setting ranks, and accumulating edit summaries. Entities with
no net change are never edited.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "-", "Patch document path (\"-\" for stdin)")
	cmd.Flags().StringVarP(&opts.username, "username", "u", os.Getenv("WIKIDATA_USERNAME"), "Bot username (env: WIKIDATA_USERNAME)")
	cmd.Flags().StringVarP(&opts.password, "password", "p", os.Getenv("WIKIDATA_PASSWORD"), "Bot password (env: WIKIDATA_PASSWORD)")
	cmd.Flags().StringVar(&opts.blocklistTitle, "blocklist", "", "Wiki page title listing blocked item ids")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print planned edits as JSON without submitting")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(ctx context.Context, opts options) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(opts.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(logger)
	if err := loader.EnsureUserConfig(); err != nil {
		logger.Warn("could not create user config", "error", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.configPath != "" {
		fileCfg, err := config.LoadFromFile(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		cfg.Merge(fileCfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if opts.blocklistTitle != "" {
		cfg.Edit.BlocklistTitle = opts.blocklistTitle
	}

	document, err := readInput(opts.inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	client := mediawiki.NewClient(cfg.API.Endpoint,
		mediawiki.WithUserAgent(cfg.API.UserAgent),
		mediawiki.WithLogger(logger),
		mediawiki.WithEditRetries(cfg.Edit.Retries),
		mediawiki.WithMaxLagWait(cfg.Edit.MaxLagWait),
		mediawiki.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)

	blocklist, err := client.PageItemIDs(ctx, cfg.Edit.BlocklistTitle)
	if err != nil {
		return fmt.Errorf("fetch blocklist: %w", err)
	}
	if len(blocklist) > 0 {
		logger.Info("loaded blocklist", "title", cfg.Edit.BlocklistTitle, "items", len(blocklist))
	}

	edits, err := patch.ProcessDocument(ctx, document, patch.Options{
		Lookup:    client,
		Blocklist: blocklist,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("process document: %w", err)
	}
	if len(edits) == 0 {
		logger.Info("no changes detected")
		return nil
	}

	if opts.dryRun {
		return printEdits(edits)
	}
	return submitEdits(ctx, logger, client, opts, cfg.Edit.Delay, edits)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printEdits(edits []patch.Edit) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, edit := range edits {
		if err := enc.Encode(edit); err != nil {
			return err
		}
	}
	return nil
}

func submitEdits(ctx context.Context, logger *slog.Logger, client *mediawiki.Client, opts options, delay time.Duration, edits []patch.Edit) error {
	if opts.username == "" || opts.password == "" {
		return fmt.Errorf("username and password are required to submit edits")
	}
	if err := client.Login(ctx, opts.username, opts.password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer func() {
		if err := client.Logout(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("logout failed", "error", err)
		}
	}()

	for i, edit := range edits {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		logger.Info("submitting edit",
			"entity", edit.EntityID,
			"statements", len(edit.Statements),
			"summary", edit.Summary)
		data := mediawiki.EditData{Claims: edit.Statements}
		if err := client.EditEntity(ctx, edit.EntityID, data, edit.BaseRevID, edit.Summary); err != nil {
			return fmt.Errorf("edit %s: %w", edit.EntityID, err)
		}
	}
	logger.Info("done", "edits", len(edits))
	return nil
}
