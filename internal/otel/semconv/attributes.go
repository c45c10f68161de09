// Standardized attribute keys and values for use in all OpenTelemetry signals
// Before adding a new attribute, first check to see if an attribute is already defined
// in the OpenTelemetry spec (https://opentelemetry.io/docs/specs/semconv/)
package semconv

import "go.opentelemetry.io/otel/attribute"

const (
	// Dashboard-specific attributes
	ShiftIDKey   = attribute.Key("shiftboard.shift.id")
	ShiftIDsKey  = attribute.Key("shiftboard.shift.ids")
	MonthKey     = attribute.Key("shiftboard.month")
	MetricKey    = attribute.Key("shiftboard.metric")
	OperationKey = attribute.Key("shiftboard.operation")
	OutcomeKey   = attribute.Key("shiftboard.outcome")

	// Application-specific attributes
	ForceTraceKey = attribute.Key("force")
	ToolNameKey   = attribute.Key("mcp.tool.name")
)
