package tools

import (
	"context"

	"github.com/earthboundkid/versioninfo/v2"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dynoinc/shiftboard/internal/dashboard"
	"github.com/dynoinc/shiftboard/internal/otel/semconv"
	"github.com/dynoinc/shiftboard/internal/tools/overview_report"
	"github.com/dynoinc/shiftboard/internal/tools/shift_comparison"
	"github.com/dynoinc/shiftboard/internal/tools/shift_ytd"
	"github.com/dynoinc/shiftboard/internal/tools/weekly_trend"
)

// Server registers every dashboard tool on a new MCP server.
func Server(svc *dashboard.Service) *server.MCPServer {
	srv := server.NewMCPServer("shiftboard.tools", versioninfo.Short(), server.WithToolCapabilities(true))
	srv.AddTool(traced(overview_report.Tool(svc)))
	srv.AddTool(traced(shift_ytd.Tool(svc)))
	srv.AddTool(traced(shift_comparison.Tool(svc)))
	srv.AddTool(traced(weekly_trend.Tool(svc)))
	return srv
}

// traced runs each call of the tool inside a span named after it. Results
// flagged as errors mark the span failed.
func traced(tool mcp.Tool, handler server.ToolHandlerFunc) (mcp.Tool, server.ToolHandlerFunc) {
	tracer := otel.Tracer("github.com/dynoinc/shiftboard/internal/tools")
	return tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := tracer.Start(ctx, "tool."+tool.Name, trace.WithAttributes(semconv.ToolNameKey.String(tool.Name)))
		defer span.End()

		res, err := handler(ctx, request)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case res != nil && res.IsError:
			span.SetStatus(codes.Error, "tool returned an error")
		}
		return res, err
	}
}

// Client returns an initialized in-process client for the dashboard tools.
func Client(ctx context.Context, svc *dashboard.Service) (*client.Client, error) {
	c, err := client.NewInProcessClient(Server(svc))
	if err != nil {
		return nil, err
	}

	if err := c.Start(ctx); err != nil {
		return nil, err
	}

	_, err = c.Initialize(ctx, mcp.InitializeRequest{})
	if err != nil {
		return nil, err
	}

	return c, nil
}
