package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/me/showcase/internal/config"
	"github.com/me/showcase/internal/content"
	"github.com/me/showcase/internal/logging"
	"github.com/me/showcase/internal/server"
	"github.com/me/showcase/internal/store"
)

func main() {
	cfg := config.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Database path (default ~/.showcase/showcase.db)")
	flag.StringVar(&cfg.SiteFile, "site", cfg.SiteFile, "YAML site definition (default: built-in collections)")
	flag.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "Content fixture (YAML or JSON) to load at startup")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logger := logging.FromFlags(cfg.LogLevel, cfg.LogFormat, false)

	site := config.DefaultSite()
	if cfg.SiteFile != "" {
		var err error
		if site, err = config.LoadSite(cfg.SiteFile); err != nil {
			fmt.Fprintf(os.Stderr, "load site: %v\n", err)
			os.Exit(1)
		}
		logger.Info("site loaded", "path", cfg.SiteFile, "collections", len(site.Collections))
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	if cfg.SeedFile != "" {
		b, err := content.Load(cfg.SeedFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load seed: %v\n", err)
			os.Exit(1)
		}
		if err := content.Apply(context.Background(), st, b); err != nil {
			fmt.Fprintf(os.Stderr, "apply seed: %v\n", err)
			os.Exit(1)
		}
		logger.Info("seed applied", "path", cfg.SeedFile, "categories", len(b.Categories), "items", len(b.Items))
	}

	srv := server.New(cfg, st, logger, server.WithSite(site))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
