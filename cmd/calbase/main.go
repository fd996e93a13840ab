package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"calbase/internal/calendar"
	"calbase/internal/config"
	"calbase/internal/importer"
	appLog "calbase/internal/log"
	"calbase/internal/markup"
	"calbase/internal/web"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	in         string
	out        string
	year       int
	listen     string
	serve      bool
	debug      bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override the config file where provided.
	if flags.year != 0 {
		conf.Year = flags.year
	}
	if flags.out != "" {
		conf.Snapshot = flags.out
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"year", conf.Year,
		"snapshot", conf.Snapshot,
		"listen", conf.Listen,
		"source_count", len(conf.Sources),
		"serve", flags.serve,
	)

	cal, err := buildTree(flags.in, conf.Year)
	if err != nil {
		appLog.Error("failed to build calendar tree", err, "year", conf.Year, "in", flags.in)
		os.Exit(1)
	}

	sources := make([]importer.Source, 0, len(conf.Sources))
	for _, sf := range conf.Sources {
		src, err := importer.FromFile(sf.Kind, sf.Path)
		if err != nil {
			appLog.Error("failed to load source file", err, "kind", sf.Kind, "path", sf.Path)
			os.Exit(1)
		}
		sources = append(sources, src)
	}

	if err := importer.Import(cal, sources...); err != nil {
		// Imports are fail-fast and non-transactional; the snapshot is
		// not written for a partially-imported tree.
		appLog.Error("import pipeline failed", err)
		os.Exit(1)
	}

	if err := markup.Save(conf.Snapshot, cal); err != nil {
		appLog.Error("failed to save snapshot", err, "path", conf.Snapshot)
		os.Exit(1)
	}
	appLog.Info("snapshot written", "path", conf.Snapshot)

	if !flags.serve {
		return
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if err := web.StartServer(ctx, conf.Listen, cal); err != nil {
		appLog.Error("HTTP server failed", err, "listen", conf.Listen)
		os.Exit(1)
	}
}

// buildTree either hydrates a previous snapshot or constructs a fresh
// year tree.
func buildTree(in string, year int) (*calendar.Calendar, error) {
	if in != "" {
		return markup.Load(in)
	}
	return calendar.New(year)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "calbase.yaml", "Path to config file")
	flag.StringVar(&cfg.in, "in", "", "Hydrate the tree from a previous snapshot instead of building it")
	flag.StringVar(&cfg.out, "out", "", "Snapshot output path (overrides config if set)")
	flag.IntVar(&cfg.year, "year", 0, "Calendar year (overrides config if set)")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.serve, "serve", false, "Serve the read-only HTTP view after importing")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
