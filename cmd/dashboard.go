package cmd

import (
	"fmt"

	"renderctl/internal/config"
	"renderctl/internal/render"
	"renderctl/internal/tui"
	"renderctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse services in an interactive terminal dashboard",
	Long: `Opens an interactive dashboard listing all Render services.

Navigate with the arrow keys; press enter for service detail and recent
deploys, 'l' for logs, 'c' to copy the service id to the clipboard,
'r' to refresh, and 'q' to quit.

The dashboard is read-only: it never triggers deploys.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	logCh := logging.InitForTUI(logging.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client := render.NewClient(cfg)

	program := tea.NewProgram(tui.New(client, logCh), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
