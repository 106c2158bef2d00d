package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"renderctl/internal/config"
	"renderctl/internal/render"
	"renderctl/internal/tools"
	"renderctl/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server exposing the Render tools",
	Long: `Runs an MCP server exposing six tools over your Render account:

  list_services       - List all Render services
  get_service_status  - Get detailed status of one service
  get_service_logs    - Fetch recent logs for a service
  get_deployments     - Get deploy history for a service
  trigger_deploy      - Start a new deploy (not idempotent!)
  get_account_info    - Show the authenticated account

Transports:
  stdio (default) - for MCP clients that spawn the server as a child
                    process (Claude Desktop, Cursor, etc.)
  sse             - HTTP Server-Sent Events endpoint for clients that
                    connect over the network

RENDER_API_KEY must be set; the server refuses to start without it.

Note: trigger_deploy mutates upstream state the moment the request is
sent. Cancelling a call in flight does not undo the deploy.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "Transport to use (stdio, sse)")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind in sse mode")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to bind in sse mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Logs must never touch stdout in stdio mode; it carries JSON-RPC.
	logging.InitForCLI(logging.LevelInfo, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client := render.NewClient(cfg)
	dispatcher := tools.NewDispatcher(tools.NewRegistry(client))

	mcpServer := server.NewMCPServer(
		"renderctl",
		rootCmd.Version,
		server.WithToolCapabilities(true),
	)
	tools.RegisterAll(mcpServer, dispatcher)

	switch serveTransport {
	case "stdio":
		logging.Info("Serve", "Starting MCP server on stdio")
		return server.ServeStdio(mcpServer)
	case "sse":
		return serveSSE(cmd.Context(), mcpServer)
	default:
		return fmt.Errorf("unsupported transport %q (want stdio or sse)", serveTransport)
	}
}

func serveSSE(ctx context.Context, mcpServer *server.MCPServer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	baseURL := fmt.Sprintf("http://%s:%d", serveHost, servePort)
	sseServer := server.NewSSEServer(
		mcpServer,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	addr := fmt.Sprintf("%s:%d", serveHost, servePort)
	logging.Info("Serve", "Starting MCP server on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logging.Info("Serve", "Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return sseServer.Shutdown(shutdownCtx)
}
