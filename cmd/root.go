package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/launchpad/internal/config"
	"github.com/rogersnm/launchpad/internal/content"
	"github.com/rogersnm/launchpad/internal/logging"
	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/model"
	"github.com/rogersnm/launchpad/internal/status"
	"github.com/spf13/cobra"
)

var (
	version     = "dev"
	dataDir     string
	contentFlag string
	nowFlag     string
	noColor     bool
	cfg         *config.Config
	loc         *time.Location
)

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".launchpad")
	}
	return filepath.Join(home, ".launchpad")
}

var rootCmd = &cobra.Command{
	Use:     "launchpad",
	Short:   "Track print-and-play crowdfunding campaigns",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}

		var err error
		cfg, err = config.Load(dataDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		env, err := config.LoadEnv(".env")
		if err != nil {
			return err
		}
		if err := cfg.ApplyEnv(env); err != nil {
			return fmt.Errorf("applying environment: %w", err)
		}
		// Config commands must still run to repair an invalid file.
		if err := cfg.Validate(); err != nil && !isConfigCmd(cmd) {
			return err
		}

		logging.Init(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
		markdown.Plain = noColor || os.Getenv("NO_COLOR") != ""

		loc, err = cfg.Location()
		return err
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory for config and watchlist")
	rootCmd.PersistentFlags().StringVar(&contentFlag, "content", "", "content snapshot path or URL")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "", "evaluate at this instant (RFC3339 or YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"status": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of projects with status badge and countdown",
				},
				Examples: []mtp.Example{
					{Description: "Show every project", Command: "launchpad status"},
					{Description: "Only live campaigns", Command: "launchpad status --status live"},
					{Description: "Evaluate on a given day", Command: "launchpad status --now 2025-03-01"},
				},
			},
			"board": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Live, upcoming, preview and archive sections",
				},
			},
			"show": {
				Examples: []mtp.Example{
					{Description: "Show one project with its credits", Command: "launchpad show tiny-engines"},
				},
			},
			"check": {
				Examples: []mtp.Example{
					{Description: "Validate the snapshot", Command: "launchpad check --content data/content.json"},
				},
			},
			"build": {
				Examples: []mtp.Example{
					{Description: "Compile markdown sources", Command: "launchpad build content -o data/content.json"},
				},
			},
			"new": {
				Examples: []mtp.Example{
					{Description: "Scaffold a project source file", Command: "launchpad new tiny-engines --dir content --title \"Tiny Engines\""},
				},
			},
			"watch add": {
				Examples: []mtp.Example{
					{Description: "Save a project", Command: "launchpad watch add tiny-engines"},
				},
			},
			"watch clear": {
				Examples: []mtp.Example{
					{Description: "Clear the watchlist (interactive confirm)", Command: "launchpad watch clear"},
					{Description: "Clear the watchlist (skip confirm)", Command: "launchpad watch clear --force"},
				},
			},
			"extract links": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Paths written and record counts",
				},
				Examples: []mtp.Example{
					{Description: "Extract campaign links from a page dump", Command: "launchpad extract links --input week/source_code.txt --csv week/links.csv"},
				},
			},
			"extract weekly": {
				Examples: []mtp.Example{
					{Description: "Extract links from weekly notes", Command: "launchpad extract weekly --input week/notes.md --xlsx week/notes.xlsx"},
				},
			},
			"bgg": {
				Examples: []mtp.Example{
					{Description: "Preview profile updates", Command: "launchpad bgg"},
					{Description: "Write profile updates", Command: "launchpad bgg --write"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

func isConfigCmd(cmd *cobra.Command) bool {
	return cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config")
}

func Execute() error {
	return rootCmd.Execute()
}

// now returns the evaluation instant: --now when given, else the wall clock,
// in the configured timezone.
func now() (time.Time, error) {
	if nowFlag == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, nowFlag); err == nil {
		return t.In(loc), nil
	}
	if status.HasISODate(nowFlag) {
		if t, ok := status.ParseDate(nowFlag, loc); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("--now %q: want RFC3339 or YYYY-MM-DD", nowFlag)
}

// contentLocation resolves the snapshot: --content, then config, then the
// nearest site root above the working directory.
func contentLocation() (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}
	if cfg != nil && cfg.Content != "" {
		return cfg.Content, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root, err := content.FindRoot(cwd)
	if err != nil {
		return "", err
	}
	if root == "" {
		return "", fmt.Errorf("no %s found (pass --content or set content in %s)", content.SnapshotPath, config.FileName)
	}
	return filepath.Join(root, content.SnapshotPath), nil
}

func loadSnapshot(ctx context.Context) (*model.Snapshot, string, error) {
	location, err := contentLocation()
	if err != nil {
		return nil, "", err
	}
	logging.Debugf("loading content from %s", location)
	snap, err := content.Open(location).Load(ctx)
	if err != nil {
		return nil, location, err
	}
	return snap, location, nil
}

func readStdin() string {
	info, err := os.Stdin.Stat()
	if err != nil {
		return ""
	}
	// Only read if stdin is explicitly a pipe (not a terminal, not a socket)
	if info.Mode()&os.ModeNamedPipe == 0 && info.Size() == 0 {
		return ""
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ""
	}
	return string(data)
}
