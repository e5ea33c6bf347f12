package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogersnm/launchpad/internal/content"
	"github.com/rogersnm/launchpad/internal/editor"
	"github.com/rogersnm/launchpad/internal/logging"
	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/model"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Compile markdown sources into the content snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := content.Compile(args[0])
		if err != nil {
			return err
		}
		if err := snap.Validate(); err != nil {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return fmt.Errorf("compiled snapshot is invalid (use --force to write anyway):\n%w", err)
			}
			logging.WithError(err).Warn("writing invalid snapshot")
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(args[0], "..", content.SnapshotPath)
		}
		if err := content.Save(output, snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d projects, %d issues)\n", output, len(snap.Projects), len(snap.Issues))
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Scaffold a project source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		title, _ := cmd.Flags().GetString("title")
		platform, _ := cmd.Flags().GetString("platform")
		launch, _ := cmd.Flags().GetString("launch")
		end, _ := cmd.Flags().GetString("end")
		url, _ := cmd.Flags().GetString("url")
		image, _ := cmd.Flags().GetString("image")
		summary, _ := cmd.Flags().GetString("summary")
		preview, _ := cmd.Flags().GetBool("preview")
		edit, _ := cmd.Flags().GetBool("edit")

		path := content.ProjectSourcePath(dir, args[0])
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if title == "" {
			title = args[0]
		}
		if image == "" {
			image = "images/" + args[0] + ".jpg"
		}
		// A piped body becomes the summary at build time; otherwise the
		// title stands in so the scaffold compiles.
		body := readStdin()
		if summary == "" && strings.TrimSpace(body) == "" {
			summary = title
		}
		p := model.Project{
			Slug:       args[0],
			Title:      title,
			Summary:    summary,
			Image:      image,
			Platform:   platform,
			LaunchDate: launch,
			EndDate:    end,
			PrimaryURL: url,
			IsPreview:  preview,
		}
		if err := markdown.WriteFile(path, p, body); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		if edit {
			return editor.Open(path)
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <slug>",
	Short: "Edit a project source file in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		path := content.ProjectSourcePath(dir, args[0])
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("project source %s: %w", path, err)
		}
		return editor.Open(path)
	},
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "snapshot path (default: <dir>/../data/content.json)")
	buildCmd.Flags().Bool("force", false, "write even when validation fails")

	newCmd.Flags().String("dir", "content", "content source directory")
	newCmd.Flags().String("title", "", "project title (default: slug)")
	newCmd.Flags().String("platform", "Kickstarter", "crowdfunding platform")
	newCmd.Flags().String("launch", "", "launch date (YYYY-MM-DD)")
	newCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	newCmd.Flags().String("url", "", "campaign URL")
	newCmd.Flags().String("image", "", "cover image path (default: images/<slug>.jpg)")
	newCmd.Flags().String("summary", "", "one-line summary (default: piped body, else the title)")
	newCmd.Flags().Bool("preview", false, "mark as a preview")
	newCmd.Flags().Bool("edit", false, "open the new file in $EDITOR")

	editCmd.Flags().String("dir", "content", "content source directory")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
}
