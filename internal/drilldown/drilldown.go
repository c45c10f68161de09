// Package drilldown builds the views behind a single shift: the month's
// metrics grouped by category, a metric's weekly breakdown and the
// month-by-month history the dashboard navigates through.
package drilldown

import (
	"fmt"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/extract"
	"github.com/dynoinc/shiftboard/internal/overview"
	"github.com/dynoinc/shiftboard/internal/ytd"
)

type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
)

// Card is one metric tile within a category section.
type Card struct {
	extract.Reading
	GoalLabel string `json:"goalLabel,omitempty"`
	HasWeekly bool   `json:"hasWeekly"`
}

type Section struct {
	Category dataset.CategoryName `json:"category"`
	Cards    []Card               `json:"cards"`
}

// Detail is everything shown for one shift in one month.
type Detail struct {
	ShiftID   string         `json:"shiftId"`
	ShiftName string         `json:"shiftName"`
	Month     calendar.Month `json:"month"`
	Sections  []Section      `json:"sections"`
	YTD       *ytd.Snapshot  `json:"ytd,omitempty"`
}

// ShiftDetail groups the shift's readings for month by category, keeping
// the dataset's category and metric order. The year-to-date rollup is
// attached once the fiscal year is past its first month.
func ShiftDetail(shift *dataset.Shift, month calendar.Month) (Detail, bool) {
	if shift == nil || !month.Valid() {
		return Detail{}, false
	}

	d := Detail{
		ShiftID:   shift.ID,
		ShiftName: shift.Name,
		Month:     month,
		Sections:  []Section{},
	}
	for _, r := range extract.Month(shift, month) {
		card := Card{
			Reading:   r,
			GoalLabel: r.Metric.Goal(),
			HasWeekly: len(r.WeeklyRaw) > 0,
		}
		if n := len(d.Sections); n > 0 && d.Sections[n-1].Category == r.Category {
			d.Sections[n-1].Cards = append(d.Sections[n-1].Cards, card)
			continue
		}
		d.Sections = append(d.Sections, Section{Category: r.Category, Cards: []Card{card}})
	}

	if snap, ok := ytd.Shift(shift, month); ok {
		d.YTD = &snap
	}
	return d, true
}

type WeeklyPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color Color   `json:"color"`
}

// WeeklyTrend is a metric's weekly breakdown within one month.
type WeeklyTrend struct {
	ShiftID   string             `json:"shiftId"`
	ShiftName string             `json:"shiftName"`
	Metric    dataset.MetricName `json:"metric"`
	Month     calendar.Month     `json:"month"`
	Year      int                `json:"year"`
	Monthly   dataset.Value      `json:"monthly"`
	Status    dataset.Status     `json:"status,omitempty"`
	Goal      string             `json:"goal,omitempty"`
	Line      Color              `json:"line"`
	Points    []WeeklyPoint      `json:"points"`
}

// Weekly returns the weekly points for metric. ok is false when the shift
// lacks the metric or the month has no weekly values.
func Weekly(shift *dataset.Shift, metric dataset.MetricName, month calendar.Month, fiscalYear int) (WeeklyTrend, bool) {
	rec, ok := extract.ByName(shift, metric, month)
	if !ok || len(rec.WeeklyRaw) == 0 {
		return WeeklyTrend{}, false
	}

	line := ColorRed
	if rec.Status == dataset.StatusGreen {
		line = ColorGreen
	}

	w := WeeklyTrend{
		ShiftID:   shift.ID,
		ShiftName: shift.Name,
		Metric:    metric,
		Month:     month,
		Year:      calendar.DisplayYear(month, fiscalYear),
		Monthly:   rec.Value,
		Status:    rec.Status,
		Goal:      metric.Goal(),
		Line:      line,
		Points:    make([]WeeklyPoint, 0, len(rec.WeeklyRaw)),
	}
	for i, v := range rec.WeeklyRaw {
		w.Points = append(w.Points, WeeklyPoint{
			Label: weekLabel(rec.WeekNumbers, i),
			Value: v,
			Color: pointColor(rec, v, line),
		})
	}
	return w, true
}

// weekLabel prefers the recorded week number and falls back to the
// point's position when the numbers run out.
func weekLabel(numbers []int, i int) string {
	if i < len(numbers) {
		return fmt.Sprintf("Week %d", numbers[i])
	}
	return fmt.Sprintf("Week %d", i+1)
}

func pointColor(rec dataset.Record, v float64, fallback Color) Color {
	if rec.Goal == nil {
		return fallback
	}
	var met bool
	switch rec.GoalDirection {
	case dataset.GoalLower:
		met = v <= *rec.Goal
	case dataset.GoalHigher:
		met = v >= *rec.Goal
	default:
		return fallback
	}
	if met {
		return ColorGreen
	}
	return ColorRed
}

// MonthCard summarises the fleet for one month of the fiscal year.
type MonthCard struct {
	Month   calendar.Month `json:"month"`
	Shifts  []string       `json:"shifts"`
	Percent int            `json:"percent"`
	Tier    overview.Tier  `json:"tier,omitempty"`
}

// MonthCards lists every fiscal month with the shifts that reported any
// value in it. Percent and Tier stay empty for months nobody reported.
func MonthCards(shifts []*dataset.Shift) []MonthCard {
	cards := make([]MonthCard, 0, len(calendar.FiscalMonths))
	for _, m := range calendar.FiscalMonths {
		card := MonthCard{Month: m, Shifts: []string{}}
		for _, s := range shifts {
			if reported(s, m) {
				card.Shifts = append(card.Shifts, s.ID)
			}
		}
		if len(card.Shifts) > 0 {
			snap := overview.Aggregate(shifts, m)
			card.Percent = snap.GoalsMetPercent
			card.Tier = snap.Tier
		}
		cards = append(cards, card)
	}
	return cards
}

func reported(shift *dataset.Shift, month calendar.Month) bool {
	for _, r := range extract.Month(shift, month) {
		if !r.Value.IsNA() {
			return true
		}
	}
	return false
}

// HistoryEntry is one month of a metric's history.
type HistoryEntry struct {
	Month  calendar.Month `json:"month"`
	Value  dataset.Value  `json:"value"`
	Status dataset.Status `json:"status,omitempty"`
	Met    bool           `json:"met"`
}

// History returns the metric's records in fiscal order from February
// through upto, skipping months without a value.
func History(shift *dataset.Shift, metric dataset.MetricName, upto calendar.Month) []HistoryEntry {
	var entries []HistoryEntry
	for _, m := range calendar.FiscalWindow(upto) {
		rec, ok := extract.ByName(shift, metric, m)
		if !ok || rec.Value.IsNA() {
			continue
		}
		entries = append(entries, HistoryEntry{
			Month:  m,
			Value:  rec.Value,
			Status: rec.Status,
			Met:    rec.Status == dataset.StatusGreen,
		})
	}
	return entries
}
