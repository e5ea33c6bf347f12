package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/model"
	"github.com/rogersnm/launchpad/internal/people"
	"github.com/rogersnm/launchpad/internal/status"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [slug...]",
	Short: "List projects with their current status and countdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("status")
		var want model.Status
		if filter != "" {
			var err error
			if want, err = model.ParseStatus(filter); err != nil {
				return err
			}
		}
		at, err := now()
		if err != nil {
			return err
		}
		snap, _, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}

		projects := snap.Projects
		if len(args) > 0 {
			projects = nil
			for _, slug := range args {
				p, ok := snap.Project(slug)
				if !ok {
					return fmt.Errorf("project %q not found", slug)
				}
				projects = append(projects, *p)
			}
		}

		var entries []status.Entry
		for _, p := range projects {
			e := status.Evaluate(p, at)
			if want != "" && e.Status != want {
				continue
			}
			entries = append(entries, e)
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderEntryTable(entries, watchedSet(cmd)))
		return nil
	},
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the home page board: live, upcoming, previews and archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := now()
		if err != nil {
			return err
		}
		snap, _, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		board := status.NewBoard(snap.Projects, at)
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderBoard(board, watchedSet(cmd)))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := now()
		if err != nil {
			return err
		}
		snap, _, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		p, ok := snap.Project(args[0])
		if !ok {
			return fmt.Errorf("project %q not found", args[0])
		}

		ep := people.NewDirectory(snap.Designers, snap.Publishers).EnrichProject(*p)
		e := status.Evaluate(ep.Project, at)

		fields := []string{
			markdown.RenderField("Slug", p.Slug),
			markdown.RenderField("Status", markdown.RenderStatus(e.Status, e.JustLaunched)),
			markdown.RenderField("Countdown", e.Countdown.Text()),
			markdown.RenderField("Platform", p.Platform),
		}
		if p.LaunchDate != "" || p.EndDate != "" {
			fields = append(fields, markdown.RenderField("Dates", dash(p.LaunchDate)+" to "+dash(p.EndDate)))
		}
		if names := creditNames(ep.DesignerCredits); names != "" {
			fields = append(fields, markdown.RenderField("Designers", names))
		}
		if ep.PublisherCredit != nil {
			fields = append(fields, markdown.RenderField("Publisher", creditNames([]people.Credit{*ep.PublisherCredit})))
		}
		if len(p.Tags) > 0 {
			fields = append(fields, markdown.RenderField("Tags", strings.Join(p.Tags, ", ")))
		}
		fields = append(fields, markdown.RenderField("URL", p.PrimaryURL))
		if p.LatePledgeURL != "" {
			fields = append(fields, markdown.RenderField("Late pledge", p.LatePledgeURL))
		}
		if p.PreOrderURL != "" {
			fields = append(fields, markdown.RenderField("Pre-order", p.PreOrderURL))
		}
		if watchedSet(cmd)[p.Slug] {
			fields = append(fields, markdown.RenderField("Watchlist", "saved"))
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, markdown.RenderEntityHeader(p.Title, fields))
		if p.Summary != "" {
			rendered, err := markdown.RenderMarkdown(p.Summary)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, location, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := snap.Validate(); err != nil {
			fmt.Fprintf(out, "%s is invalid:\n", location)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "  - %s\n", line)
			}
			return errors.New("validation failed")
		}
		fmt.Fprintf(out, "%s: %d projects, %d designers, %d publishers, %d issues OK\n",
			location, len(snap.Projects), len(snap.Designers), len(snap.Publishers), len(snap.Issues))
		return nil
	},
}

func creditNames(credits []people.Credit) string {
	names := make([]string, 0, len(credits))
	for _, c := range credits {
		if c.Resolved {
			names = append(names, c.Name+" ("+c.Slug+")")
		} else {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, ", ")
}

func dash(v string) string {
	if v == "" {
		return "?"
	}
	return v
}

func init() {
	statusCmd.Flags().String("status", "", "only show projects with this status")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
}
