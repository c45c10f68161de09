package drilldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	dt "github.com/dynoinc/shiftboard/internal/dataset/datasettest"
	"github.com/dynoinc/shiftboard/internal/overview"
)

func goal(f float64) *float64 { return &f }

func weekly(m calendar.Month, status dataset.Status, g *float64, dir dataset.GoalDirection, weeks []int, values ...float64) dataset.Record {
	r := dt.R(m, values[0], status)
	r.Goal = g
	r.GoalDirection = dir
	r.WeeklyRaw = values
	r.WeekNumbers = weeks
	return r
}

func TestWeeklyColors(t *testing.T) {
	tests := []struct {
		name   string
		record dataset.Record
		want   []Color
	}{
		{
			name:   "lower is better",
			record: weekly(calendar.June, dataset.StatusRed, goal(1500), dataset.GoalLower, nil, 1400, 1500, 1600),
			want:   []Color{ColorGreen, ColorGreen, ColorRed},
		},
		{
			name:   "higher is better",
			record: weekly(calendar.June, dataset.StatusGreen, goal(1100), dataset.GoalHigher, nil, 1099, 1100, 1200),
			want:   []Color{ColorRed, ColorGreen, ColorGreen},
		},
		{
			name:   "no goal falls back to green status",
			record: weekly(calendar.June, dataset.StatusGreen, nil, dataset.GoalLower, nil, 9, 99),
			want:   []Color{ColorGreen, ColorGreen},
		},
		{
			name:   "no direction falls back to red for yellow status",
			record: weekly(calendar.June, dataset.StatusYellow, goal(1), "", nil, 0, 5),
			want:   []Color{ColorRed, ColorRed},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shift := dt.Shift("dry-1st", "Dry 1st", dt.Metric(dataset.Quality, dataset.DPM, tc.record))
			w, ok := Weekly(shift, dataset.DPM, calendar.June, 2025)
			require.True(t, ok)

			var got []Color
			for _, p := range w.Points {
				got = append(got, p.Color)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWeeklyLabelsAndYear(t *testing.T) {
	shift := dt.Shift("dry-1st", "Dry 1st",
		dt.Metric(dataset.Quality, dataset.DPM,
			weekly(calendar.January, dataset.StatusGreen, nil, "", []int{1, 2, 3}, 10, 20, 30),
			weekly(calendar.March, dataset.StatusGreen, nil, "", nil, 10, 20),
		),
	)

	w, ok := Weekly(shift, dataset.DPM, calendar.January, 2025)
	require.True(t, ok)
	assert.Equal(t, 2026, w.Year)
	assert.Equal(t, "< 1,500", w.Goal)
	assert.Equal(t, ColorGreen, w.Line)
	assert.Equal(t, "10", w.Monthly.String())
	assert.Equal(t, []WeeklyPoint{
		{Label: "Week 1", Value: 10, Color: ColorGreen},
		{Label: "Week 2", Value: 20, Color: ColorGreen},
		{Label: "Week 3", Value: 30, Color: ColorGreen},
	}, w.Points)

	w, ok = Weekly(shift, dataset.DPM, calendar.March, 2025)
	require.True(t, ok)
	assert.Equal(t, 2025, w.Year)
	assert.Equal(t, "Week 1", w.Points[0].Label)
	assert.Equal(t, "Week 2", w.Points[1].Label)

	_, ok = Weekly(shift, dataset.DPM, calendar.April, 2025)
	assert.False(t, ok, "no weekly values")
	_, ok = Weekly(shift, dataset.Overtime, calendar.March, 2025)
	assert.False(t, ok, "unknown metric")
	_, ok = Weekly(nil, dataset.DPM, calendar.March, 2025)
	assert.False(t, ok)
}

func TestShiftDetail(t *testing.T) {
	shift := dt.Shift("per-1st", "Per 1st",
		dt.Series(dataset.Quality, dataset.DPM, []any{1600, 1400}, dataset.StatusGreen),
		dt.Metric(dataset.Safety, dataset.SafetyMedical, dt.R(calendar.March, 0, dataset.StatusGreen)),
		dt.Metric(dataset.Quality, dataset.ChasePercent,
			weekly(calendar.March, dataset.StatusRed, goal(3), dataset.GoalLower, nil, 2, 4)),
	)

	d, ok := ShiftDetail(shift, calendar.March)
	require.True(t, ok)
	assert.Equal(t, "per-1st", d.ShiftID)

	require.Len(t, d.Sections, 2)
	assert.Equal(t, dataset.Quality, d.Sections[0].Category)
	require.Len(t, d.Sections[0].Cards, 2)
	dpm := d.Sections[0].Cards[0]
	assert.Equal(t, dataset.DPM, dpm.Metric)
	assert.Equal(t, "< 1,500", dpm.GoalLabel)
	assert.False(t, dpm.HasWeekly)
	require.NotNil(t, dpm.Trend)
	assert.True(t, d.Sections[0].Cards[1].HasWeekly)
	assert.Equal(t, dataset.Safety, d.Sections[1].Category)

	require.NotNil(t, d.YTD)
	assert.Equal(t, 1500.0, d.YTD.DPM.Average)

	d, ok = ShiftDetail(shift, calendar.February)
	require.True(t, ok)
	assert.Nil(t, d.YTD, "february has no rollup")

	_, ok = ShiftDetail(shift, calendar.Month(0))
	assert.False(t, ok)
}

func TestMonthCards(t *testing.T) {
	shifts := []*dataset.Shift{
		dt.Shift("dry-1st", "Dry 1st",
			dt.Series(dataset.Quality, dataset.DPM, []any{1400, 1600}, dataset.StatusGreen),
		),
		dt.Shift("dry-2nd", "Dry 2nd",
			dt.Metric(dataset.Quality, dataset.DPM, dt.R(calendar.March, 1700, dataset.StatusRed)),
		),
	}

	cards := MonthCards(shifts)
	require.Len(t, cards, 12)
	assert.Equal(t, calendar.February, cards[0].Month)
	assert.Equal(t, []string{"dry-1st"}, cards[0].Shifts)
	assert.Equal(t, 50, cards[0].Percent, "dry-2nd carries DPM but left february unmeasured")
	assert.Equal(t, overview.TierWarning, cards[0].Tier)

	assert.Equal(t, []string{"dry-1st", "dry-2nd"}, cards[1].Shifts)
	assert.Equal(t, 50, cards[1].Percent)
	assert.Equal(t, overview.TierWarning, cards[1].Tier)

	assert.Empty(t, cards[2].Shifts)
	assert.Zero(t, cards[2].Percent)
	assert.Empty(t, cards[2].Tier)
	assert.Equal(t, calendar.January, cards[11].Month)
}

func TestHistory(t *testing.T) {
	shift := dt.Shift("dry-1st", "Dry 1st",
		dt.Series(dataset.Cost, dataset.Overtime, []any{0, nil, 2}, dataset.StatusGreen),
	)

	h := History(shift, dataset.Overtime, calendar.April)
	require.Len(t, h, 2)
	assert.Equal(t, calendar.February, h[0].Month)
	assert.True(t, h[0].Met)
	assert.Equal(t, calendar.April, h[1].Month)

	assert.Empty(t, History(shift, dataset.DPM, calendar.April))
	assert.Empty(t, History(shift, dataset.Overtime, calendar.Month(0)))
}

func TestWeeklyLabelsFallBackToPosition(t *testing.T) {
	shift := dt.Shift("dry-1st", "Dry 1st",
		dt.Metric(dataset.Quality, dataset.DPM,
			weekly(calendar.March, dataset.StatusGreen, nil, "", []int{9, 10}, 10, 20, 30),
		),
	)

	w, ok := Weekly(shift, dataset.DPM, calendar.March, 2025)
	require.True(t, ok)
	labels := make([]string, 0, len(w.Points))
	for _, p := range w.Points {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"Week 9", "Week 10", "Week 3"}, labels)
}
