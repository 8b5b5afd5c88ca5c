package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andy/journal/internal/config"
	"github.com/andy/journal/internal/crypto"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(appInstance.Config)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", configPath(), data)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the active configuration to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.SaveConfig(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config written to %s\n", configPath())
		return nil
	},
}

var configForgetKeyCmd = &cobra.Command{
	Use:   "forget-key",
	Short: "Remove the database key from the system keyring",
	Long: `Remove the stored encryption key. The next start of an encrypted journal
prompts for the password again (or reads JOURNAL_DB_KEY).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), out, "Remove the journal key from the keyring?") {
			fmt.Fprintln(out, "Cancelled")
			return nil
		}

		err := appInstance.Keys.DeleteKey()
		if errors.Is(err, crypto.ErrKeyNotFound) {
			fmt.Fprintln(out, "No key stored")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "✓ Key removed from keyring")
		return nil
	},
}

func configPath() string {
	if appInstance != nil && appInstance.ConfigPath != "" {
		return appInstance.ConfigPath
	}
	return config.DefaultConfigPath()
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configForgetKeyCmd)

	configForgetKeyCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}
