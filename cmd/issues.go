package cmd

import (
	"fmt"
	"strings"

	"github.com/rogersnm/launchpad/internal/markdown"
	"github.com/rogersnm/launchpad/internal/people"
	"github.com/rogersnm/launchpad/internal/status"
	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List weekly issues, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, _, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		issues := status.Sorted(snap.Issues, status.NewSorter(loc).ByWeekDesc)
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderIssueTable(issues))
		return nil
	},
}

var issuesShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a weekly issue and its projects",
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
		is, ok := snap.Issue(args[0])
		if !ok {
			return fmt.Errorf("issue %q not found", args[0])
		}

		out := cmd.OutOrStdout()
		fields := []string{
			markdown.RenderField("Slug", is.Slug),
			markdown.RenderField("Week", is.WeekStart+" to "+is.WeekEnd),
		}
		fmt.Fprint(out, markdown.RenderEntityHeader(is.Title, fields))
		if is.Intro != "" {
			rendered, err := markdown.RenderMarkdown(is.Intro)
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
		}

		var entries []status.Entry
		var missing []string
		for _, slug := range is.Projects {
			p, ok := snap.Project(slug)
			if !ok {
				missing = append(missing, slug)
				continue
			}
			entries = append(entries, status.Evaluate(*p, at))
		}
		fmt.Fprintln(out, markdown.RenderEntryTable(entries, watchedSet(cmd)))
		if len(missing) > 0 {
			fmt.Fprintf(out, "Unknown projects: %s\n", strings.Join(missing, ", "))
		}
		return nil
	},
}

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List designers or publishers with their credited projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := people.Designers
		if pub, _ := cmd.Flags().GetBool("publishers"); pub {
			kind = people.Publishers
		}
		snap, _, err := loadSnapshot(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderPeopleTable(people.Index(snap, kind)))
		return nil
	},
}

func init() {
	peopleCmd.Flags().Bool("publishers", false, "list publishers instead of designers")
	issuesCmd.AddCommand(issuesShowCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(peopleCmd)
}
