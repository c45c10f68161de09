package shift_comparison

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
		Name: "shift_comparison",
		Description: `Compare two or three shifts side by side for one month.
A metric has a winner only when some but not all of the shifts met its goal; the first such shift wins.
The overall winner is the shift with the most metric wins.`,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"month": map[string]string{
					"type":        "string",
					"description": "Full English month name, e.g. March",
				},
				"shift_ids": map[string]any{
					"type":        "array",
					"description": "Two or three distinct shift codes, e.g. [\"dry-1st\", \"per-1st\"]",
					"items":       map[string]string{"type": "string"},
					"minItems":    dashboard.MinSelected,
					"maxItems":    dashboard.MaxSelected,
				},
				"format": map[string]any{
					"type":        "string",
					"description": "json (default) or text for rendered tables",
					"enum":        []string{"json", "text"},
				},
			},
			Required: []string{"month", "shift_ids"},
		},
	}

	reports := report.NewGenerator()
	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		month, err := request.RequireString("month")
		if err != nil {
			return mcp.NewToolResultErrorf("month parameter is required and must be a string: %v", err), nil
		}
		shiftIDs, err := request.RequireStringSlice("shift_ids")
		if err != nil {
			return mcp.NewToolResultErrorf("shift_ids parameter is required and must be a list of strings: %v", err), nil
		}

		res, err := svc.Compare(ctx, month, shiftIDs)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to compare shifts", err), nil
		}

		if request.GetString("format", "json") == "text" {
			return mcp.NewToolResultText(reports.Comparison(res).String()), nil
		}

		jsonData, err := json.Marshal(res)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to marshal comparison", err), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}

	return tool, handler
}
