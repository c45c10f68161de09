// Package trend classifies the change between two readings of a metric.
package trend

import (
	"math"

	"github.com/dynoinc/shiftboard/internal/dataset"
)

type Direction string

const (
	Up     Direction = "up"
	Down   Direction = "down"
	Stable Direction = "stable"
)

type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Gray  Color = "gray"
)

// StableThreshold is the absolute percent change below which a move is
// reported as stable.
const StableThreshold = 5.0

type Trend struct {
	Direction Direction `json:"direction"`
	Arrow     string    `json:"arrow"`
	Color     Color     `json:"color"`
	Percent   float64   `json:"percent"`
}

var stable = Trend{Direction: Stable, Arrow: "→", Color: Gray}

// Calculate compares two readings of metric. Values that do not parse count
// as zero.
func Calculate(metric dataset.MetricName, previous, current dataset.Value) Trend {
	return Between(metric, previous.Float(), current.Float())
}

// Between is Calculate over already-numeric readings.
func Between(metric dataset.MetricName, previous, current float64) Trend {
	if previous == 0 && current == 0 {
		return stable
	}

	// Any movement off a zero baseline is flagged as a rise.
	if previous == 0 {
		return Trend{Direction: Up, Arrow: "↑", Color: Red, Percent: 100}
	}

	percent := (current - previous) / previous * 100
	if math.Abs(percent) < StableThreshold {
		t := stable
		t.Percent = percent
		return t
	}

	good := current > previous
	if metric.LowerIsBetter() {
		good = current < previous
	}

	t := Trend{Direction: Down, Arrow: "↓", Color: Red, Percent: percent}
	if current > previous {
		t.Direction = Up
		t.Arrow = "↑"
	}
	if good {
		t.Color = Green
	}
	return t
}
