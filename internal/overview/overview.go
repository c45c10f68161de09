// Package overview folds one month of every shift into fleet-wide totals,
// alerts and month-over-month trends.
package overview

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/extract"
	"github.com/dynoinc/shiftboard/internal/trend"
)

const (
	// DPMGoal is the defects-per-million ceiling a shift must stay under.
	DPMGoal = 1500
	// MaxSuccesses caps the success list.
	MaxSuccesses = 5
)

type Tier string

const (
	TierSuccess Tier = "success"
	TierWarning Tier = "warning"
	TierAlert   Tier = "alert"
)

// TierFor maps a goals-met percentage onto the three display tiers.
func TierFor(percent int) Tier {
	switch {
	case percent >= 75:
		return TierSuccess
	case percent >= 50:
		return TierWarning
	default:
		return TierAlert
	}
}

type Entry struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// ShiftMonth is one shift's readings for the month with its goal tally.
type ShiftMonth struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Metrics  []extract.Reading `json:"metrics"`
	GoalsMet int               `json:"goals_met"`
	Total    int               `json:"total_metrics"`
}

// Ratio is GoalsMet / Total, 0 when the shift has no metrics.
func (s ShiftMonth) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.GoalsMet) / float64(s.Total)
}

// Percent is Ratio as a rounded percentage.
func (s ShiftMonth) Percent() int {
	return percent(s.GoalsMet, s.Total)
}

// Reading returns the shift's reading for metric.
func (s ShiftMonth) Reading(metric dataset.MetricName) (extract.Reading, bool) {
	return extract.Find(s.Metrics, metric)
}

// Trends compare the snapshot with the previous fiscal month. A nil trend
// means the previous month had nothing to compare against.
type Trends struct {
	Safety   *trend.Trend `json:"safety,omitempty"`
	DPM      *trend.Trend `json:"dpm,omitempty"`
	Overtime *trend.Trend `json:"overtime,omitempty"`
	GoalsMet *trend.Trend `json:"goalsmet,omitempty"`
}

type Snapshot struct {
	Month           calendar.Month `json:"month"`
	Shifts          []ShiftMonth   `json:"shifts"`
	SafetyIncidents float64        `json:"safety_incidents"`
	AverageDPM      int            `json:"average_dpm"`
	DPMCount        int            `json:"dpm_count"`
	OvertimeHours   float64        `json:"overtime_hours"`
	GoalsMet        int            `json:"goals_met"`
	TotalGoals      int            `json:"total_goals"`
	GoalsMetPercent int            `json:"goals_met_percent"`
	Tier            Tier           `json:"tier"`
	Alerts          []Entry        `json:"alerts"`
	Successes       []Entry        `json:"successes"`
	Trends          Trends         `json:"trends"`
}

// Collect extracts every shift's readings for month and tallies goals met.
func Collect(shifts []*dataset.Shift, month calendar.Month) []ShiftMonth {
	out := make([]ShiftMonth, 0, len(shifts))
	for _, s := range shifts {
		if s == nil {
			continue
		}
		sm := ShiftMonth{ID: s.ID, Name: s.Name, Metrics: extract.Month(s, month)}
		for _, r := range sm.Metrics {
			sm.Total++
			if r.Status == dataset.StatusGreen {
				sm.GoalsMet++
			}
		}
		out = append(out, sm)
	}
	return out
}

// Aggregate builds the month overview for shifts, in the order given.
func Aggregate(shifts []*dataset.Shift, month calendar.Month) Snapshot {
	snap := Snapshot{
		Month:     month,
		Shifts:    Collect(shifts, month),
		Alerts:    []Entry{},
		Successes: []Entry{},
	}

	var dpmSum float64
	for _, s := range snap.Shifts {
		for _, metric := range []dataset.MetricName{dataset.SafetyMedical, dataset.SafetyNonMedical} {
			r, ok := s.Reading(metric)
			if !ok {
				continue
			}
			v := r.Value.Float()
			snap.SafetyIncidents += v
			if v > 0 {
				snap.Alerts = append(snap.Alerts, Entry{
					Text:  fmt.Sprintf("%s - %s", s.Name, incidentLabel(metric)),
					Value: incidents(v),
				})
			}
		}

		if r, ok := s.Reading(dataset.DPM); ok {
			if v, ok := r.Value.Number(); ok {
				dpmSum += v
				snap.DPMCount++
				if v > 0 && v <= DPMGoal {
					snap.Successes = append(snap.Successes, Entry{
						Text:  fmt.Sprintf("%s - DPM", s.Name),
						Value: fmt.Sprintf("%s (Met goal!)", humanize.Commaf(v)),
					})
				}
			}
		}

		if r, ok := s.Reading(dataset.Overtime); ok {
			if v, ok := r.Value.Number(); ok {
				snap.OvertimeHours += v
				if v > 0 {
					snap.Alerts = append(snap.Alerts, Entry{
						Text:  fmt.Sprintf("%s - Overtime", s.Name),
						Value: fmt.Sprintf("%.1f hours", v),
					})
				}
			}
		}

		snap.GoalsMet += s.GoalsMet
		snap.TotalGoals += s.Total
	}

	if snap.DPMCount > 0 {
		snap.AverageDPM = int(math.Round(dpmSum / float64(snap.DPMCount)))
	}
	if len(snap.Successes) > MaxSuccesses {
		snap.Successes = snap.Successes[:MaxSuccesses]
	}
	snap.GoalsMetPercent = percent(snap.GoalsMet, snap.TotalGoals)
	snap.Tier = TierFor(snap.GoalsMetPercent)
	snap.Trends = trends(shifts, snap)
	return snap
}

func trends(shifts []*dataset.Shift, snap Snapshot) Trends {
	prevMonth, ok := calendar.Previous(snap.Month)
	if !ok {
		return Trends{}
	}

	var t Trends
	var prevSafety, prevDPMSum, prevOT float64
	var haveSafety, haveOT bool
	var prevDPMCount int
	for _, s := range snap.Shifts {
		for _, metric := range []dataset.MetricName{dataset.SafetyMedical, dataset.SafetyNonMedical} {
			if r, ok := s.Reading(metric); ok && r.Previous != nil {
				prevSafety += r.Previous.Float()
				haveSafety = true
			}
		}
		if r, ok := s.Reading(dataset.DPM); ok && r.Previous != nil {
			if v, ok := r.Previous.Number(); ok {
				prevDPMSum += v
				prevDPMCount++
			}
		}
		if r, ok := s.Reading(dataset.Overtime); ok && r.Previous != nil {
			if v, ok := r.Previous.Number(); ok {
				prevOT += v
				haveOT = true
			}
		}
	}

	if haveSafety {
		t.Safety = ptr(trend.Between(dataset.SafetyMedical, prevSafety, snap.SafetyIncidents))
	}
	if prevDPMCount > 0 {
		prevAvg := math.Round(prevDPMSum / float64(prevDPMCount))
		t.DPM = ptr(trend.Between(dataset.DPM, prevAvg, float64(snap.AverageDPM)))
	}
	if haveOT {
		t.Overtime = ptr(trend.Between(dataset.Overtime, prevOT, snap.OvertimeHours))
	}

	// Goals met has no previous value on the readings, so the previous
	// month is tallied again. Months where nothing carried a status are
	// treated as having no data.
	var prevMet, prevTotal, prevRated int
	for _, s := range Collect(shifts, prevMonth) {
		prevMet += s.GoalsMet
		prevTotal += s.Total
		for _, r := range s.Metrics {
			if r.Status != dataset.StatusNone {
				prevRated++
			}
		}
	}
	if prevRated > 0 {
		t.GoalsMet = ptr(trend.Between("Goals Met", float64(percent(prevMet, prevTotal)), float64(snap.GoalsMetPercent)))
	}
	return t
}

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func incidentLabel(metric dataset.MetricName) string {
	if metric == dataset.SafetyMedical {
		return "Medical Incident"
	}
	return "Non-Medical Incident"
}

func incidents(v float64) string {
	unit := "incident"
	if v > 1 {
		unit = "incidents"
	}
	return fmt.Sprintf("%s %s", humanize.Ftoa(v), unit)
}

func ptr[T any](v T) *T {
	return &v
}
