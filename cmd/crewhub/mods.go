package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/EKINSOL-DEV/crewhub-sub011/internal/errors"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/content"
	"github.com/EKINSOL-DEV/crewhub-sub011/pkg/modkit"
)

func modsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mods",
		Short: "Manage local mod packs",
		Long: `Manage the mod packs in the workspace mods directory.

Manifests placed there are loaded automatically when the server
starts. Add pulls a manifest from a URL, S3 or a local path;
remove deletes it again; list shows what is installed.`,
	}

	cmd.AddCommand(
		modsListCmd(),
		modsAddCmd(),
		modsRemoveCmd(),
		modsValidateCmd(),
	)
	return cmd
}

func modsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mod packs in the mods directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			sources := localManifests(cfg.ModsDir())
			if len(sources) == 0 {
				info("No mod packs in %s", cfg.ModsDir())
				return nil
			}
			for _, path := range sources {
				m, err := readManifest(path)
				if err != nil {
					warn("%s: %s", filepath.Base(path), err)
					continue
				}
				info("%-24s %-10s %3d entries  (%s)", m.ModID, m.Version, m.EntryCount(), filepath.Base(path))
			}
			return nil
		},
	}
}

func modsAddCmd() *cobra.Command {
	var checksum string

	cmd := &cobra.Command{
		Use:   "add <source>",
		Short: "Download a mod pack into the mods directory",
		Long: `Download a mod pack manifest into the mods directory.

The source may be an http(s) URL, an s3://bucket/key URL (requires
an s3 section in crewhub.json) or a local file path. The manifest
is validated before it is installed.

Examples:
  crewhub mods add https://example.com/packs/neon.json
  crewhub mods add s3://crewhub-packs/neon.json
  crewhub mods add ./neon.json --checksum=3e4f...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			fetcher := newFetcher(cfg, logger)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			manifest, err := fetcher.FetchManifest(ctx, args[0], checksum)
			if err != nil {
				return err
			}

			catalog := content.NewCatalog()
			content.RegisterBuiltins(catalog)
			warnings, err := manifest.Validate(catalog)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				warn("%s", w)
			}

			raw, err := fetcher.Fetch(ctx, args[0])
			if err != nil {
				return err
			}
			dest := filepath.Join(cfg.ModsDir(), manifest.ModID+".json")
			if err := os.MkdirAll(cfg.ModsDir(), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(dest, raw, 0o644); err != nil {
				return err
			}

			success("Installed %s (%d entries) to %s", manifest.ModID, manifest.EntryCount(), dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&checksum, "checksum", "", "Expected SHA-256 of the manifest")
	return cmd
}

func modsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <mod-id>",
		Short: "Remove a mod pack from the mods directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			modID := args[0]

			for _, path := range localManifests(cfg.ModsDir()) {
				m, err := readManifest(path)
				if err != nil || m.ModID != modID {
					continue
				}
				if err := os.Remove(path); err != nil {
					return err
				}
				success("Removed %s (%s)", modID, path)
				return nil
			}
			return errors.New("E303").WithDetail("No mod pack " + modID + " in " + cfg.ModsDir())
		},
	}
}

func modsValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate a mod pack manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readManifest(args[0])
			if err != nil {
				return err
			}

			catalog := content.NewCatalog()
			content.RegisterBuiltins(catalog)
			warnings, err := m.Validate(catalog)
			if err != nil {
				if he, ok := err.(*errors.HubError); ok {
					fmt.Print(he.Format())
					os.Exit(1)
				}
				return err
			}
			for _, w := range warnings {
				warn("%s", w)
			}
			success("%s is valid (%d entries, %d warnings)", m.ModID, m.EntryCount(), len(warnings))
			return nil
		},
	}
}

func readManifest(path string) (*modkit.Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E300").Wrap(err)
	}
	return modkit.ParseManifest(raw)
}
