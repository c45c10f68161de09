package weekly_trend

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dynoinc/shiftboard/internal/dashboard"
)

func Tool(svc *dashboard.Service) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.Tool{
		Name: "weekly_trend",
		Description: `Weekly breakdown of one metric for one shift and month.
Each week is marked green when it met the metric's goal and red otherwise; when no goal is recorded,
weeks take the colour of the monthly status.`,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"shift_id": map[string]string{
					"type":        "string",
					"description": "Shift code, e.g. dry-1st",
				},
				"month": map[string]string{
					"type":        "string",
					"description": "Full English month name, e.g. March",
				},
				"metric": map[string]string{
					"type":        "string",
					"description": "Metric name as it appears in the dataset, e.g. DPM",
				},
			},
			Required: []string{"shift_id", "month", "metric"},
		},
	}

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		shiftID, err := request.RequireString("shift_id")
		if err != nil {
			return mcp.NewToolResultErrorf("shift_id parameter is required and must be a string: %v", err), nil
		}
		month, err := request.RequireString("month")
		if err != nil {
			return mcp.NewToolResultErrorf("month parameter is required and must be a string: %v", err), nil
		}
		metric, err := request.RequireString("metric")
		if err != nil {
			return mcp.NewToolResultErrorf("metric parameter is required and must be a string: %v", err), nil
		}

		w, err := svc.Weekly(ctx, month, shiftID, metric)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to build weekly trend", err), nil
		}

		jsonData, err := json.Marshal(w)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to marshal weekly trend", err), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}

	return tool, handler
}
