package cmd

import (
	"github.com/spf13/cobra"
)

var (
	servicesOutputFormat string
	servicesQuiet        bool
	serviceLogsLimit     int
)

// servicesCmd represents the services command
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Inspect and deploy Render services",
	Long: `Inspect and deploy Render services.

Available commands:
  list      - List all services in the account
  status    - Get detailed status of a specific service
  logs      - Fetch recent logs for a service
  deploys   - Show deploy history for a service
  deploy    - Trigger a new deploy for a service

These run the same tools the MCP server exposes, so output and error
behavior match what an MCP client would see.`,
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all services in the account",
	RunE:  runServicesList,
}

var servicesStatusCmd = &cobra.Command{
	Use:   "status <service-id>",
	Short: "Get detailed status of a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesStatus,
}

var servicesLogsCmd = &cobra.Command{
	Use:   "logs <service-id>",
	Short: "Fetch recent logs for a service",
	Long: `Fetch recent log entries for a service.

Entries are printed in the order the Render API returns them; no local
re-sorting is applied.`,
	Args: cobra.ExactArgs(1),
	RunE: runServicesLogs,
}

var servicesDeploysCmd = &cobra.Command{
	Use:   "deploys <service-id>",
	Short: "Show deploy history for a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesDeploys,
}

var servicesDeployCmd = &cobra.Command{
	Use:   "deploy <service-id>",
	Short: "Trigger a new deploy for a service",
	Long: `Trigger a new deploy for a service.

The deploy starts as soon as Render accepts the request. The request is
sent exactly once and never retried; interrupting the command after the
request is on the wire does not stop the deploy.`,
	Args: cobra.ExactArgs(1),
	RunE: runServicesDeploy,
}

func init() {
	rootCmd.AddCommand(servicesCmd)

	servicesCmd.AddCommand(servicesListCmd)
	servicesCmd.AddCommand(servicesStatusCmd)
	servicesCmd.AddCommand(servicesLogsCmd)
	servicesCmd.AddCommand(servicesDeploysCmd)
	servicesCmd.AddCommand(servicesDeployCmd)

	servicesCmd.PersistentFlags().StringVarP(&servicesOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	servicesCmd.PersistentFlags().BoolVarP(&servicesQuiet, "quiet", "q", false, "Suppress non-essential output")
	servicesLogsCmd.Flags().IntVar(&serviceLogsLimit, "limit", 0, "Number of log entries to fetch (default 100)")
}

func runServicesList(cmd *cobra.Command, args []string) error {
	executor, err := newLocalExecutor(servicesOutputFormat, servicesQuiet)
	if err != nil {
		return err
	}
	return executor.Execute(cmd.Context(), "list_services", nil)
}

func runServicesStatus(cmd *cobra.Command, args []string) error {
	executor, err := newLocalExecutor(servicesOutputFormat, servicesQuiet)
	if err != nil {
		return err
	}
	return executor.Execute(cmd.Context(), "get_service_status", map[string]interface{}{
		"service_id": args[0],
	})
}

func runServicesLogs(cmd *cobra.Command, args []string) error {
	executor, err := newLocalExecutor(servicesOutputFormat, servicesQuiet)
	if err != nil {
		return err
	}
	arguments := map[string]interface{}{
		"service_id": args[0],
	}
	if serviceLogsLimit > 0 {
		arguments["limit"] = serviceLogsLimit
	}
	return executor.Execute(cmd.Context(), "get_service_logs", arguments)
}

func runServicesDeploys(cmd *cobra.Command, args []string) error {
	executor, err := newLocalExecutor(servicesOutputFormat, servicesQuiet)
	if err != nil {
		return err
	}
	return executor.Execute(cmd.Context(), "get_deployments", map[string]interface{}{
		"service_id": args[0],
	})
}

func runServicesDeploy(cmd *cobra.Command, args []string) error {
	executor, err := newLocalExecutor(servicesOutputFormat, servicesQuiet)
	if err != nil {
		return err
	}
	return executor.Execute(cmd.Context(), "trigger_deploy", map[string]interface{}{
		"service_id": args[0],
	})
}
