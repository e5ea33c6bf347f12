package cmd

import (
	"fmt"
	"strconv"

	"github.com/rogersnm/launchpad/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings in the data directory",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", dataDir)
		fmt.Fprint(out, string(data))
		return nil
	},
}

// configSetCmd edits the file on disk, not the environment-merged view.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Long: `Set a configuration key. Keys: content, timezone, log_level, log_format,
watchlist.backend, watchlist.key, watchlist.redis_addr, watchlist.redis_db,
watchlist.sqlite_path, bgg.base_url, bgg.delay_ms.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(dataDir)
		if err != nil {
			return err
		}
		if err := setConfigKey(c, args[0], args[1]); err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if _, err := c.Location(); err != nil {
			return err
		}
		if err := config.Save(dataDir, c); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func setConfigKey(c *config.Config, key, value string) error {
	strs := map[string]*string{
		"content":               &c.Content,
		"timezone":              &c.Timezone,
		"log_level":             &c.LogLevel,
		"log_format":            &c.LogFormat,
		"watchlist.backend":     &c.Watchlist.Backend,
		"watchlist.key":         &c.Watchlist.Key,
		"watchlist.redis_addr":  &c.Watchlist.RedisAddr,
		"watchlist.sqlite_path": &c.Watchlist.SQLitePath,
		"bgg.base_url":          &c.BGG.BaseURL,
	}
	if dst, ok := strs[key]; ok {
		*dst = value
		return nil
	}
	ints := map[string]*int{
		"watchlist.redis_db": &c.Watchlist.RedisDB,
		"bgg.delay_ms":       &c.BGG.DelayMS,
	}
	if dst, ok := ints[key]; ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}
	return fmt.Errorf("unknown config key %q", key)
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
