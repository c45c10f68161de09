package overview_report

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dynoinc/shiftboard/internal/dashboard"
	"github.com/dynoinc/shiftboard/internal/report"
)

func Tool(svc *dashboard.Service) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.Tool{
		Name: "overview_report",
		Description: `Summarise every shift for one month: safety incidents, average DPM, overtime hours,
goals met, alerts, successes, shift rankings and the fleet's year-to-date rollup.

Trends compare against the previous fiscal month (the fiscal year runs February to January).
Lower is better for DPM, Chase %, safety and overtime; higher is better for CPH metrics.`,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"month": map[string]string{
					"type":        "string",
					"description": "Full English month name, e.g. March",
				},
				"format": map[string]any{
					"type":        "string",
					"description": "json (default) or text for rendered tables",
					"enum":        []string{"json", "text"},
				},
			},
			Required: []string{"month"},
		},
	}

	reports := report.NewGenerator()
	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		month, err := request.RequireString("month")
		if err != nil {
			return mcp.NewToolResultErrorf("month parameter is required and must be a string: %v", err), nil
		}

		view, err := svc.Overview(ctx, month)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to build overview", err), nil
		}

		if request.GetString("format", "json") == "text" {
			return mcp.NewToolResultText(reports.Overview(view).String()), nil
		}

		jsonData, err := json.Marshal(view)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to marshal overview", err), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}

	return tool, handler
}
