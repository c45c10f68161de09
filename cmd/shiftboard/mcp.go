package main

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/dynoinc/shiftboard/internal/tools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the dashboard tools over MCP on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, cleanup, err := newService(ctx, nil)
		if err != nil {
			return fmt.Errorf("setting up dashboard: %w", err)
		}
		defer func() {
			if err := cleanup(ctx); err != nil {
				slog.Warn("error shutting down tracing", "error", err)
			}
		}()

		return server.ServeStdio(tools.Server(svc))
	},
}
