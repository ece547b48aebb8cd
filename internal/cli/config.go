package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/todo-cli/internal/core"
	"gopkg.in/yaml.v3"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the .todoconfig file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration in effect after merging defaults, the
.todoconfig file, and TODO_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil {
			return fmt.Errorf("configuration not loaded")
		}

		data, err := yaml.Marshal(Config)
		if err != nil {
			return fmt.Errorf("marshalling config: %w", err)
		}

		w := cmd.OutOrStdout()
		if ConfigMgr != nil {
			_, _ = fmt.Fprintf(w, "# %s\n", ConfigMgr.ConfigPath())
		}
		_, _ = w.Write(data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .todoconfig in the base directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := BasePath
		if base == "" {
			base = "."
		}
		path := filepath.Join(base, core.ConfigFileName)

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		data, err := yaml.Marshal(core.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshalling default config: %w", err)
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote "+path))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing .todoconfig")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
