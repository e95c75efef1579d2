package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┬─┐┌─┐┬ ┬╦ ╦┬ ┬┌┐
  ║  ├┬┘├┤ │││╠═╣│ │├┴┐
  ╚═╝┴└─└─┘└┴┘╩ ╩└─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewhub",
		Short: "Content catalog server for virtual office worlds",
		Long: `CrewHub serves the content catalog for virtual office worlds.

The catalog holds props, environments and room blueprints, seeded
with built-in content and extensible through mod packs. Features:

  • JSON API for reading and mutating catalog content
  • WebSocket change feed for live clients
  • Mod packs from HTTP, S3 or local files
  • Personal prop library persisted on disk
  • Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		modsCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the CrewHub ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
