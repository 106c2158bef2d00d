package cmd

import (
	"github.com/spf13/cobra"
)

var (
	accountOutputFormat string
	accountQuiet        bool
)

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the account that owns the configured API key",
	RunE:  runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)

	accountCmd.Flags().StringVarP(&accountOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	accountCmd.Flags().BoolVarP(&accountQuiet, "quiet", "q", false, "Suppress non-essential output")
}

func runAccount(cmd *cobra.Command, args []string) error {
	executor, err := newLocalExecutor(accountOutputFormat, accountQuiet)
	if err != nil {
		return err
	}
	return executor.Execute(cmd.Context(), "get_account_info", nil)
}
