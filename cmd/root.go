package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stackread/internal/cache"
	"stackread/internal/feed"
	"stackread/internal/store"
	"stackread/internal/substack"
	"stackread/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagRefresh bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "stackread",
	Short: "Terminal reader for The Pragmatic Engineer",
	Long:  "stackread fetches The Pragmatic Engineer newsletter archive and reads it in a two-pane terminal UI, with a day-long local cache.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging (headless commands only)")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "clear the cache before launching")

	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stackread %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func cachePath() string {
	return filepath.Join(xdg.CacheHome, "stackread", "stackread.db")
}

// logger returns a development logger for headless commands, a nop
// logger otherwise so nothing scribbles over the TUI.
func logger(headless bool) *zap.Logger {
	if headless && flagVerbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	return zap.NewNop()
}

// openFetcher wires store, cache, client and fetcher. The caller owns
// the returned store and must close it.
func openFetcher(headless bool) (*substack.Fetcher, *store.Store, error) {
	s, err := store.Open(cachePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}
	log := logger(headless)
	fetcher := substack.NewFetcher(substack.NewClient(log), cache.New(s), log)
	return fetcher, s, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	fetcher, s, err := openFetcher(false)
	if err != nil {
		return err
	}
	defer s.Close()

	if flagRefresh {
		if err := fetcher.InvalidateAll(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
	}

	probe := feed.NewProbe(substack.FeedURL())
	return tui.Run(fetcher, probe)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
