package overview

import (
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/extract"
)

type GoalClass string

const (
	GoalExcellent GoalClass = "excellent"
	GoalGood      GoalClass = "good"
	GoalWarning   GoalClass = "warning"
	GoalPoor      GoalClass = "poor"
)

type Badge string

const (
	BadgeTrophy     Badge = "trophy"
	BadgeThreeStars Badge = "three-stars"
	BadgeTwoStars   Badge = "two-stars"
	BadgeOneStar    Badge = "one-star"
	BadgeAttention  Badge = "attention"
)

type MetricGoals struct {
	Metric     dataset.MetricName `json:"metric"`
	Goal       string             `json:"goal,omitempty"`
	Met        int                `json:"met"`
	Missed     int                `json:"missed"`
	NA         int                `json:"na"`
	MetPercent int                `json:"met_percent"`
	Class      GoalClass          `json:"class"`
}

type ShiftGoals struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Percent   int                  `json:"percent"`
	Badge     Badge                `json:"badge"`
	Met       int                  `json:"met"`
	Missed    int                  `json:"missed"`
	Total     int                  `json:"total"`
	Attention []dataset.MetricName `json:"attention"`
}

type GoalSummary struct {
	GoalsMet        int           `json:"goals_met"`
	TotalGoals      int           `json:"total_goals"`
	GoalsMetPercent int           `json:"goals_met_percent"`
	Metrics         []MetricGoals `json:"metrics"`
	Shifts          []ShiftGoals  `json:"shifts"`
}

// Goals breaks the snapshot's goal tally down by metric and by shift.
// Metrics with neither a met nor a missed reading are left out.
func Goals(snap Snapshot) GoalSummary {
	summary := GoalSummary{
		GoalsMet:        snap.GoalsMet,
		TotalGoals:      snap.TotalGoals,
		GoalsMetPercent: snap.GoalsMetPercent,
		Metrics:         []MetricGoals{},
		Shifts:          make([]ShiftGoals, 0, len(snap.Shifts)),
	}

	for _, metric := range dataset.GoalSummaryMetrics {
		mg := MetricGoals{Metric: metric, Goal: metric.Goal()}
		for _, s := range snap.Shifts {
			r, ok := s.Reading(metric)
			switch {
			case !ok:
				mg.NA++
			case r.Status == dataset.StatusGreen:
				mg.Met++
			case r.Status == dataset.StatusRed:
				mg.Missed++
			default:
				mg.NA++
			}
		}
		if mg.Met+mg.Missed == 0 {
			continue
		}
		mg.MetPercent = percent(mg.Met, mg.Met+mg.Missed)
		mg.Class = goalClass(mg.MetPercent)
		summary.Metrics = append(summary.Metrics, mg)
	}

	for _, s := range snap.Shifts {
		sg := ShiftGoals{
			ID:        s.ID,
			Name:      s.Name,
			Percent:   s.Percent(),
			Met:       s.GoalsMet,
			Missed:    s.Total - s.GoalsMet,
			Total:     s.Total,
			Attention: redMetrics(s.Metrics),
		}
		sg.Badge = badge(sg.Percent)
		summary.Shifts = append(summary.Shifts, sg)
	}
	return summary
}

func goalClass(p int) GoalClass {
	switch {
	case p == 100:
		return GoalExcellent
	case p >= 75:
		return GoalGood
	case p >= 50:
		return GoalWarning
	default:
		return GoalPoor
	}
}

func badge(p int) Badge {
	switch {
	case p == 100:
		return BadgeTrophy
	case p >= 90:
		return BadgeThreeStars
	case p >= 75:
		return BadgeTwoStars
	case p >= 50:
		return BadgeOneStar
	default:
		return BadgeAttention
	}
}

func redMetrics(readings []extract.Reading) []dataset.MetricName {
	red := []dataset.MetricName{}
	for _, r := range readings {
		if r.Status == dataset.StatusRed {
			red = append(red, r.Metric)
		}
	}
	return red
}
