package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tracehq/traceindex/config"
	"github.com/tracehq/traceindex/ignore"
	"github.com/tracehq/traceindex/index"
	"github.com/tracehq/traceindex/scanner"
	"github.com/tracehq/traceindex/server"
	"github.com/tracehq/traceindex/tools"
	"github.com/tracehq/traceindex/watcher"
)

func main() {
	// Parse CLI flags
	var configPath string
	var logLevel string
	var logFile string
	var syncInterval time.Duration

	flag.StringVar(&configPath, "config", "", "Settings file path (default: $XDG_CONFIG_HOME/traceindex/config.yaml)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flag.DurationVar(&syncInterval, "sync-interval", 5*time.Minute, "Interval between index/filesystem reconciliation runs (0 disables)")
	flag.Parse()

	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving config path: %v\n", err)
			os.Exit(1)
		}
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}

	// Setup logger (always to file or stderr, never to stdout - stdout is for MCP stdio)
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting traceindex",
		"roots", strings.Join(settings.Roots, ", "),
		"maxResults", settings.MaxResults,
		"maxDepth", settings.MaxDepth,
	)

	startTime := time.Now()

	// Cancelled on SIGINT/SIGTERM so the watcher and sync loop can be
	// torn down deterministically.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Exclusion policy shared by the scanner and the watcher
	matcher := ignore.NewMatcher(settings.ExcludePatterns)
	for _, root := range settings.Roots {
		matcher.AddRoot(root)
	}

	store := index.NewStore()
	fileScanner := scanner.New(matcher, logger)
	fileScanner.MaxDepth = settings.MaxDepth

	// Populate the index off the serving goroutine; search works on
	// whatever has been loaded so far.
	go func() {
		entries := performIndexing(fileScanner, settings.Roots, logger)
		store.ReplaceAll(entries)
		logger.Info("initial indexing complete",
			"entries", store.Len(),
			"duration", time.Since(startTime),
		)
	}()

	// Start file watcher
	debounce := time.Duration(settings.DebounceMS) * time.Millisecond
	fileWatcher, err := watcher.NewWatcher(settings.Roots, matcher, debounce, logger)
	if err != nil {
		logger.Warn("failed to start file watcher, continuing without live updates", "error", err)
	} else {
		go fileWatcher.Run(ctx)
		go handleWatcherEvents(fileWatcher, store, logger)
		defer fileWatcher.Close()
	}

	// Periodic reconciliation repairs whatever the watcher missed
	if syncInterval > 0 {
		go runPeriodicSync(syncInterval, fileScanner, settings.Roots, store, logger, ctx.Done())
	}

	// Create tool handlers
	searchHandler := &tools.SearchHandler{
		Store:      store,
		MaxResults: settings.MaxResults,
		Logger:     logger,
	}
	statusHandler := &tools.StatusHandler{
		Store:     store,
		StartTime: startTime,
		Roots:     settings.Roots,
		Logger:    logger,
	}
	reindexHandler := &tools.ReindexHandler{
		Logger: logger,
		DoReindex: func() (int, string, error) {
			start := time.Now()
			// Pick up .gitignore edits made since the last build
			matcher.Reload()
			store.ReplaceAll(performIndexing(fileScanner, settings.Roots, logger))
			elapsed := time.Since(start).Round(time.Millisecond).String()
			return store.Len(), elapsed, nil
		},
	}

	// Setup and run MCP server on stdio
	mcpServer := server.Setup(searchHandler, statusHandler, reindexHandler)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
