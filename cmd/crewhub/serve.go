package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/config"
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/library"
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/modfetch"
	"github.com/EKINSOL-DEV/crewhub-sub011/internal/server"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/modkit"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the content catalog server",
		Long: `Start the content catalog server.

Seeds the catalog with built-in content, loads the personal prop
library and any configured mod packs, then serves the JSON API,
the WebSocket change feed and (optionally) Prometheus metrics.

Examples:
  crewhub serve
  crewhub serve --port=8080
  crewhub serve --host=0.0.0.0 --metrics=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port, host, metrics)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to bind to (default from crewhub.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from crewhub.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "Expose Prometheus metrics on /metrics")

	return cmd
}

func runServe(cmd *cobra.Command, port int, host string, metrics bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Metrics = metrics
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()

	catalog := content.NewCatalog()
	content.RegisterBuiltins(catalog)
	info("Seeded %d props, %d environments, %d blueprints",
		catalog.Len(content.KindProps),
		catalog.Len(content.KindEnvironments),
		catalog.Len(content.KindBlueprints))

	lib, err := library.Open(cfg.LibraryPath(), logger)
	if err != nil {
		return err
	}
	if n := lib.Seed(catalog); n > 0 {
		info("Loaded %d props from library %s", n, cfg.LibraryPath())
	}

	loader := modkit.NewLoader(catalog, logger)
	fetcher := newFetcher(cfg, logger)
	loadStartupMods(cfg, loader, fetcher, logger)

	srv := server.New(server.Options{
		Catalog: catalog,
		Loader:  loader,
		Library: lib,
		Fetcher: fetcher,
		Logger:  logger,
		Metrics: cfg.Metrics,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	success("Listening on http://%s", cfg.Address())

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		fmt.Println("\n\n  Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

// loadConfig loads crewhub.json from the working directory, falling
// back to defaults when no workspace config exists.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		if errors.CodeOf(err) == "E400" {
			return config.New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config, logger *slog.Logger) *modfetch.Fetcher {
	opts := []modfetch.Option{modfetch.WithLogger(logger)}
	if cfg.S3.Bucket != "" {
		opts = append(opts, modfetch.WithS3(s3.New(s3.Options{Region: cfg.S3.Region})))
	}
	return modfetch.New(opts...)
}

// loadStartupMods loads manifests from the local mods directory and the
// configured autoload sources. Failures are logged, not fatal; a broken
// pack should not keep the catalog offline.
func loadStartupMods(cfg *config.Config, loader *modkit.Loader, fetcher *modfetch.Fetcher, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sources := localManifests(cfg.ModsDir())
	sources = append(sources, cfg.Mods.Autoload...)

	for _, source := range sources {
		manifest, err := fetcher.FetchManifest(ctx, source, "")
		if err != nil {
			warn("Skipping mod %s: %s", source, err)
			continue
		}
		infoMod, warnings, err := loader.Load(manifest)
		if err != nil {
			warn("Skipping mod %s: %s", source, err)
			continue
		}
		for _, w := range warnings {
			warn("%s: %s", infoMod.ModID, w)
		}
		success("Loaded mod %s (%d entries)", infoMod.ModID, infoMod.Entries)
		logger.Info("mod loaded at startup", "mod", infoMod.ModID, "source", source)
	}
}

// localManifests lists the JSON manifests in the mods directory. A
// missing directory is fine.
func localManifests(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var sources []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		sources = append(sources, filepath.Join(dir, e.Name()))
	}
	return sources
}
