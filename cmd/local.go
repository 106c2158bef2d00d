package cmd

import (
	"os"

	"renderctl/internal/cli"
	"renderctl/internal/config"
	"renderctl/internal/render"
	"renderctl/internal/tools"
	"renderctl/pkg/logging"
)

// newDispatcher loads the configuration, builds the API client, and wires
// the tool table. Fails fast with the missing-credential error before any
// command logic runs.
func newDispatcher() (*tools.Dispatcher, error) {
	logging.InitForCLI(logging.LevelWarn, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := render.NewClient(cfg)
	return tools.NewDispatcher(tools.NewRegistry(client)), nil
}

// newLocalExecutor builds a formatter-equipped executor over a fresh
// dispatcher for one CLI command run.
func newLocalExecutor(format string, quiet bool) (*cli.ToolExecutor, error) {
	dispatcher, err := newDispatcher()
	if err != nil {
		return nil, err
	}
	return cli.NewToolExecutor(dispatcher, cli.ExecutorOptions{
		Format: cli.OutputFormat(format),
		Quiet:  quiet,
	})
}

// newRenderClient is for commands that bypass the tool table (deploy and
// env-group lookups that are not part of the MCP surface).
func newRenderClient() (*render.Client, error) {
	logging.InitForCLI(logging.LevelWarn, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return render.NewClient(cfg), nil
}
