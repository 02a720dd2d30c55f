package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tasknotes application
var rootCmd = &cobra.Command{
	Use:   "tasknotes",
	Short: "Renders Google Tasks as markdown checklists inside your notes",
	Long: `tasknotes is a thin client for Google Tasks. It reads fenced task
blocks out of markdown notes, fetches the referenced task lists, and
renders them as nested checklists with due dates.

Google Tasks stays the single source of truth; tasknotes never caches
tasks between render passes.`,
	SilenceUsage: true,
}

// Persistent flags shared across subcommands.
var (
	configPath string
	debugMode  bool
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tasknotes version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the settings file (default: $XDG_CONFIG_HOME/tasknotes/settings.json)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())
}
