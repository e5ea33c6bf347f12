package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/launchpad/internal/config"
	"github.com/rogersnm/launchpad/internal/logging"
	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/status"
	"github.com/rogersnm/launchpad/internal/watchlist"
	"github.com/spf13/cobra"
)

const watchlistFile = "watchlist.json"

// openWatchlist builds the watchlist on the configured backend. The returned
// path is the backing file for the file backend and "" otherwise.
func openWatchlist(ctx context.Context) (*watchlist.Watchlist, func(), string, error) {
	wc := cfg.Watchlist
	noop := func() {}
	switch wc.Backend {
	case config.BackendSQLite:
		path := wc.SQLitePath
		if path == "" {
			path = filepath.Join(dataDir, "watchlist.db")
		}
		kv, err := watchlist.OpenSQLiteKV(path)
		if err != nil {
			return nil, noop, "", err
		}
		return watchlist.New(kv, wc.Key), func() { kv.Close() }, "", nil
	case config.BackendRedis:
		kv, err := watchlist.DialRedis(ctx, wc.RedisAddr, wc.RedisDB)
		if err != nil {
			return nil, noop, "", err
		}
		return watchlist.New(kv, wc.Key), func() { kv.Close() }, "", nil
	default:
		path := filepath.Join(dataDir, watchlistFile)
		return watchlist.New(watchlist.NewFileKV(path), wc.Key), noop, path, nil
	}
}

// watchedSet is the saved slugs for table markers. A backend that cannot be
// opened yields an empty set.
func watchedSet(cmd *cobra.Command) map[string]bool {
	wl, closeFn, _, err := openWatchlist(cmd.Context())
	if err != nil {
		logging.WithError(err).Warn("watchlist unavailable")
		return map[string]bool{}
	}
	defer closeFn()
	return wl.Set()
}

func withWatchlist(cmd *cobra.Command, fn func(*watchlist.Watchlist) error) error {
	wl, closeFn, _, err := openWatchlist(cmd.Context())
	if err != nil {
		return fmt.Errorf("opening watchlist: %w", err)
	}
	defer closeFn()
	return fn(wl)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage saved projects",
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := now()
		if err != nil {
			return err
		}
		return withWatchlist(cmd, func(wl *watchlist.Watchlist) error {
			slugs := wl.List()
			out := cmd.OutOrStdout()
			if len(slugs) == 0 {
				fmt.Fprintln(out, "Watchlist is empty.")
				return nil
			}
			snap, _, err := loadSnapshot(cmd.Context())
			if err != nil {
				// The slugs are still useful without content.
				logging.WithError(err).Warn("content unavailable")
				for _, s := range slugs {
					fmt.Fprintln(out, s)
				}
				return nil
			}
			var entries []status.Entry
			for _, s := range slugs {
				if p, ok := snap.Project(s); ok {
					entries = append(entries, status.Evaluate(*p, at))
				} else {
					logging.WithField("slug", s).Warn("saved project not in content")
				}
			}
			fmt.Fprintln(out, markdown.RenderEntryTable(entries, wl.Set()))
			return nil
		})
	},
}

func changeCmd(use, short string, apply func(*watchlist.Watchlist, string) watchlist.Change) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <slug>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWatchlist(cmd, func(wl *watchlist.Watchlist) error {
				switch apply(wl, args[0]) {
				case watchlist.Added:
					fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", args[0])
				case watchlist.Removed:
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "No change for %s\n", args[0])
				}
				return nil
			})
		},
	}
}

var (
	watchAddCmd    = changeCmd("add", "Save a project", (*watchlist.Watchlist).Add)
	watchRemoveCmd = changeCmd("remove", "Remove a saved project", (*watchlist.Watchlist).Remove)
	watchToggleCmd = changeCmd("toggle", "Save or remove a project", (*watchlist.Watchlist).Toggle)
)

var watchClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved project",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			confirmed, err := confirm("Clear the watchlist?")
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
		}
		return withWatchlist(cmd, func(wl *watchlist.Watchlist) error {
			wl.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Watchlist cleared")
			return nil
		})
	},
}

var watchFollowCmd = &cobra.Command{
	Use:   "follow",
	Short: "Print the watchlist whenever another process changes it",
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, closeFn, path, err := openWatchlist(cmd.Context())
		if err != nil {
			return fmt.Errorf("opening watchlist: %w", err)
		}
		defer closeFn()
		if path == "" {
			return errors.New("follow needs the file watchlist backend")
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		report := func() {
			fmt.Fprintf(out, "%s %v\n", time.Now().In(loc).Format("15:04:05"), wl.List())
		}
		report()
		return watchlist.Watch(ctx, path, debounce, report)
	},
}

// confirm asks a yes/no question; it fails when stdin is not interactive.
func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation required (use --force to skip): %w", err)
	}
	return ok, nil
}

func init() {
	watchClearCmd.Flags().Bool("force", false, "skip confirmation")
	watchFollowCmd.Flags().Duration("debounce", 200*time.Millisecond, "coalesce bursts of changes")
	watchCmd.AddCommand(watchListCmd, watchAddCmd, watchRemoveCmd, watchToggleCmd, watchClearCmd, watchFollowCmd)
	rootCmd.AddCommand(watchCmd)
}
