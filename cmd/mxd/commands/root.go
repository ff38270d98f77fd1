// Package commands implements the mxd CLI's subcommands.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "mxd",
	Short: "mxd is a Hotline-protocol community server",
	Long: `mxd serves the Hotline wire protocol: file listing and transfer,
hierarchical news boards, and a privileged user/session model, over a
single TCP listener.

Use "mxd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for tests.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetConfigFile returns the --config flag's value.
func GetConfigFile() string {
	return cfgFile
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/mxd/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createUserCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
