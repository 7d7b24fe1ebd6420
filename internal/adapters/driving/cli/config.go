package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Settings are stored in config.toml in the config directory. API keys
are never written there; they come from the environment.

PINECONE_INDEX_NAME and PINECONE_ENVIRONMENT override vector_store.index
and vector_store.region when set.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Validates and stores a single setting. An empty value restores the
default. Lists are comma-separated and durations use Go syntax, e.g. 2s.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	values, err := settingsService.Values()
	if err != nil {
		return err
	}

	if path := settingsService.Path(); path != "" {
		cmd.Printf("# %s\n", path)
	} else {
		cmd.Println("# not persisted")
	}
	for _, key := range settingsService.Keys() {
		cmd.Printf("%-24s = %s\n", key, values[key])
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	if value == "" {
		cmd.Printf("%s reset to default\n", key)
		return nil
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}
