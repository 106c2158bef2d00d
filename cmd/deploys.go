package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// deploysCmd looks up a single deploy by id. This is not part of the MCP
// tool table; it exists for checking on a deploy you triggered earlier.
var deploysCmd = &cobra.Command{
	Use:   "deploys <deploy-id>",
	Short: "Show the current status of a single deploy",
	Long: `Show the current status of a single deploy by its id (dep-...).

Useful after 'renderctl services deploy' to check whether the build
finished. Prints the deploy record as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeploys,
}

// envgroupCmd looks up an environment group by id. Also CLI-only.
var envgroupCmd = &cobra.Command{
	Use:   "envgroup <env-group-id>",
	Short: "Show an environment group",
	Long: `Show an environment group by its id (evm-...), including which
services it is linked to. Prints the record as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvgroup,
}

func init() {
	rootCmd.AddCommand(deploysCmd)
	rootCmd.AddCommand(envgroupCmd)
}

func runDeploys(cmd *cobra.Command, args []string) error {
	client, err := newRenderClient()
	if err != nil {
		return err
	}
	deploy, err := client.GetDeploy(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(deploy)
}

func runEnvgroup(cmd *cobra.Command, args []string) error {
	client, err := newRenderClient()
	if err != nil {
		return err
	}
	group, err := client.GetEnvGroup(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(group)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
