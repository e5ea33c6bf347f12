package cmd

import (
	"fmt"
	"time"

	"github.com/rogersnm/launchpad/internal/bgg"
	"github.com/rogersnm/launchpad/internal/content"
	"github.com/rogersnm/launchpad/internal/people"
	"github.com/spf13/cobra"
)

const defaultBGGDelay = 500 * time.Millisecond

var bggCmd = &cobra.Command{
	Use:   "bgg",
	Short: "Fill designer and publisher BGG links and bios",
	RunE: func(cmd *cobra.Command, args []string) error {
		write, _ := cmd.Flags().GetBool("write")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		force, _ := cmd.Flags().GetBool("force")

		delay := defaultBGGDelay
		if cfg.BGG.DelayMS > 0 {
			delay = time.Duration(cfg.BGG.DelayMS) * time.Millisecond
		}
		if cmd.Flags().Changed("delay-ms") {
			ms, _ := cmd.Flags().GetInt("delay-ms")
			delay = time.Duration(ms) * time.Millisecond
		}

		snap, location, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		client := bgg.NewClient(cfg.BGG.BaseURL)
		opts := bgg.UpdateOptions{Force: force, Delay: delay}
		designers, updated, err := client.UpdateEntries(cmd.Context(), snap.Designers, people.Designers, opts)
		if err != nil {
			return err
		}
		publishers, more, err := client.UpdateEntries(cmd.Context(), snap.Publishers, people.Publishers, opts)
		if err != nil {
			return err
		}
		updated = append(updated, more...)

		out := cmd.OutOrStdout()
		if len(updated) == 0 {
			fmt.Fprintln(out, "No entries updated.")
			return nil
		}
		fmt.Fprintln(out, "Updated entries:")
		for _, label := range updated {
			fmt.Fprintf(out, "- %s\n", label)
		}

		if !write || dryRun {
			fmt.Fprintln(out, "\nDry-run mode: no file changes written. Use --write to save.")
			return nil
		}
		if _, ok := content.Open(location).(*content.FileSource); !ok {
			return fmt.Errorf("cannot write to %s: not a local file", location)
		}
		snap.Designers = designers
		snap.Publishers = publishers
		if err := content.Save(location, snap); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote changes to: %s\n", location)
		return nil
	},
}

func init() {
	bggCmd.Flags().Bool("write", false, "write changes back to the snapshot")
	bggCmd.Flags().Bool("dry-run", false, "preview without writing (default)")
	bggCmd.Flags().Bool("force", false, "refetch entries that already have a link and bio")
	bggCmd.Flags().Int("delay-ms", int(defaultBGGDelay/time.Millisecond), "pause between lookups")
	rootCmd.AddCommand(bggCmd)
}
