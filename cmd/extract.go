package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogersnm/launchpad/internal/extract"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Pull campaign links out of curation material",
}

type tabular interface {
	Table() extract.Table
}

// writeReport writes JSON to output and, when asked, the table as CSV and
// XLSX.
func writeReport(cmd *cobra.Command, r tabular, output, sheet string) error {
	out := cmd.OutOrStdout()
	if err := extract.WriteJSON(output, r); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote JSON: %s\n", output)

	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		if err := extract.WriteCSV(path, r.Table()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote CSV: %s\n", path)
	}
	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		if err := extract.WriteXLSX(path, sheet, r.Table()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote XLSX: %s\n", path)
	}
	return nil
}

var extractLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Extract campaign links from a saved page source dump",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = filepath.Join(filepath.Dir(input), "source_code_extracted.json")
		}

		r := extract.NewLinkReport(strings.ToValidUTF8(string(data), "�"), input)
		if err := writeReport(cmd, r, output, "links"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Counts: relevant_records=%d unique_urls=%d\n", r.Counts.RelevantRecords, r.Counts.UniqueURLs)
		return nil
	},
}

var extractWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Extract creator links from weekly markdown notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		data, err := os.ReadFile(input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		output, _ := cmd.Flags().GetString("output")

		r := extract.Weekly(string(data), input)
		if err := writeReport(cmd, r, output, "weekly"); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Counts: source_records=%d unique_source_urls=%d unique_all_urls=%d\n",
			r.Counts.SourceRecords, r.Counts.UniqueSourceURLs, r.Counts.UniqueAllURLs)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{extractLinksCmd, extractWeeklyCmd} {
		c.Flags().String("input", "", "input file")
		c.MarkFlagRequired("input")
		c.Flags().String("csv", "", "also write a CSV table")
		c.Flags().String("xlsx", "", "also write an XLSX workbook")
	}
	extractLinksCmd.Flags().String("output", "", "JSON report path (default: next to input)")
	extractWeeklyCmd.Flags().String("output", filepath.Join("data", "weekly_extracted.json"), "JSON report path")

	extractCmd.AddCommand(extractLinksCmd, extractWeeklyCmd)
	rootCmd.AddCommand(extractCmd)
}
