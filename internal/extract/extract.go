// Package extract pulls single-month metric records out of shift trees.
//
// A metric that a shift does not carry is reported as absent (ok == false),
// which callers treat as "skip", never as a failure.
package extract

import (
	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/trend"
)

// Path addresses a metric through its category.
type Path struct {
	Category dataset.CategoryName `json:"category"`
	Metric   dataset.MetricName   `json:"metric"`
}

// Paths used by the year-to-date rollups.
var (
	DPMPath              = Path{dataset.Quality, dataset.DPM}
	ChasePath            = Path{dataset.Quality, dataset.ChasePercent}
	SafetyMedicalPath    = Path{dataset.Safety, dataset.SafetyMedical}
	SafetyNonMedicalPath = Path{dataset.Safety, dataset.SafetyNonMedical}
	OvertimePath         = Path{dataset.Cost, dataset.Overtime}
	TurnoverPath         = Path{dataset.Cost, dataset.TurnoverPercent}
	ReceivingCPHPath     = Path{dataset.Cost, dataset.ReceivingCPH}
	ShippingCPHPath      = Path{dataset.Cost, dataset.ShippingCPH}
)

// ByName finds metric anywhere in the shift, first category wins.
func ByName(shift *dataset.Shift, metric dataset.MetricName, month calendar.Month) (dataset.Record, bool) {
	if shift == nil {
		return dataset.Record{}, false
	}
	m, _, ok := shift.Metric(metric)
	if !ok {
		return dataset.Record{}, false
	}
	return m.At(month)
}

// ByPath finds a metric within the category named by path.
func ByPath(shift *dataset.Shift, path Path, month calendar.Month) (dataset.Record, bool) {
	if shift == nil {
		return dataset.Record{}, false
	}
	m, ok := shift.MetricIn(path.Category, path.Metric)
	if !ok {
		return dataset.Record{}, false
	}
	return m.At(month)
}

// Reading is a month's record annotated with its movement since the
// previous fiscal month. Trend and Previous are set together, and only
// when both months were measured.
type Reading struct {
	dataset.Record
	Category dataset.CategoryName `json:"category"`
	Metric   dataset.MetricName   `json:"metric"`
	Trend    *trend.Trend         `json:"trend,omitempty"`
	Previous *dataset.Value       `json:"previousValue,omitempty"`
}

// WithTrend is ByName plus the previous-month comparison.
func WithTrend(shift *dataset.Shift, metric dataset.MetricName, month calendar.Month) (Reading, bool) {
	if shift == nil {
		return Reading{}, false
	}
	m, category, ok := shift.Metric(metric)
	if !ok {
		return Reading{}, false
	}
	return read(m, category, month)
}

func read(m *dataset.Metric, category dataset.CategoryName, month calendar.Month) (Reading, bool) {
	current, ok := m.At(month)
	if !ok {
		return Reading{}, false
	}

	r := Reading{Record: current, Category: category, Metric: m.Name}
	prevMonth, ok := calendar.Previous(month)
	if !ok {
		return r, true
	}
	previous, _ := m.At(prevMonth)
	if previous.Value.IsNA() || current.Value.IsNA() {
		return r, true
	}

	t := trend.Calculate(m.Name, previous.Value, current.Value)
	prev := previous.Value
	r.Trend = &t
	r.Previous = &prev
	return r, true
}

// Month returns a reading for every metric of the shift, in category and
// metric order. An invalid month yields nothing.
func Month(shift *dataset.Shift, month calendar.Month) []Reading {
	if shift == nil || !month.Valid() {
		return nil
	}

	var readings []Reading
	for ci := range shift.Categories {
		c := &shift.Categories[ci]
		for mi := range c.Metrics {
			if r, ok := read(&c.Metrics[mi], c.Name, month); ok {
				readings = append(readings, r)
			}
		}
	}
	return readings
}

// Find returns the first reading for metric.
func Find(readings []Reading, metric dataset.MetricName) (Reading, bool) {
	for _, r := range readings {
		if r.Metric == metric {
			return r, true
		}
	}
	return Reading{}, false
}

// ShiftRecord pairs a record with the shift it came from.
type ShiftRecord struct {
	Shift  *dataset.Shift
	Record dataset.Record
}

// Across pulls one metric for many shifts. Shifts without the metric are
// skipped.
func Across(shifts []*dataset.Shift, path Path, month calendar.Month) []ShiftRecord {
	records := make([]ShiftRecord, 0, len(shifts))
	for _, s := range shifts {
		if r, ok := ByPath(s, path, month); ok {
			records = append(records, ShiftRecord{Shift: s, Record: r})
		}
	}
	return records
}
