package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "renderctl",
	Short: "Inspect and deploy Render.com services from the terminal or an MCP client",
	Long: `renderctl talks to the Render.com REST API on your behalf.

Run it as an MCP server ('renderctl serve') to give AI assistants a fixed
set of tools over your Render account, or use the CLI subcommands to list
services, read logs, inspect deploy history, and trigger deploys directly.

Authentication uses a Render API key from the RENDER_API_KEY environment
variable (a .env file in the working directory is honored).`,
	// SilenceUsage prevents printing usage on errors we already report
	// ourselves (missing credential, upstream failures).
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "renderctl version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
