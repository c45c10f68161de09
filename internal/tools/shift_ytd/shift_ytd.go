package shift_ytd

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dynoinc/shiftboard/internal/dashboard"
)

func Tool(svc *dashboard.Service) (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.Tool{
		Name: "shift_ytd",
		Description: `Roll one shift's metrics up from February through the given month.
Safety incidents and overtime are running totals; DPM, Chase %, CPH and turnover are averages
over the months that were measured. Each metric includes its best and worst month.
Not available for February, which opens the fiscal year.`,
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"shift_id": map[string]string{
					"type":        "string",
					"description": "Shift code, e.g. dry-1st",
				},
				"month": map[string]string{
					"type":        "string",
					"description": "Last month of the rollup, e.g. June",
				},
			},
			Required: []string{"shift_id", "month"},
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

		snap, err := svc.ShiftYTD(ctx, month, shiftID)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to roll up year to date", err), nil
		}

		jsonData, err := json.Marshal(snap)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to marshal year to date", err), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}

	return tool, handler
}
