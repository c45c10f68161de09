package comparison

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	dt "github.com/dynoinc/shiftboard/internal/dataset/datasettest"
)

const month = calendar.August

func shift(id string, dpm dataset.Status, others ...dt.MetricSpec) *dataset.Shift {
	metrics := append([]dt.MetricSpec{
		dt.Metric(dataset.Quality, dataset.DPM, dt.R(month, 1400, dpm)),
	}, others...)
	return dt.Shift(id, "Shift "+id, metrics...)
}

func TestWinnerByStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []dataset.Status
		want     string
	}{
		{name: "single green wins", statuses: []dataset.Status{dataset.StatusGreen, dataset.StatusRed, dataset.StatusRed}, want: "a"},
		{name: "first green of several", statuses: []dataset.Status{dataset.StatusRed, dataset.StatusGreen, dataset.StatusGreen}, want: "b"},
		{name: "all green", statuses: []dataset.Status{dataset.StatusGreen, dataset.StatusGreen, dataset.StatusGreen}},
		{name: "all red", statuses: []dataset.Status{dataset.StatusRed, dataset.StatusRed, dataset.StatusRed}},
		{name: "yellow does not win", statuses: []dataset.Status{dataset.StatusYellow, dataset.StatusRed}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var shifts []*dataset.Shift
			for i, st := range tc.statuses {
				shifts = append(shifts, shift(string(rune('a'+i)), st))
			}

			res := Compare(shifts, month)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, tc.want, res.Rows[0].Winner)
			if tc.want == "" {
				assert.Empty(t, res.Winners)
				assert.Nil(t, res.Overall)
				return
			}
			require.Len(t, res.Winners, 1)
			assert.Equal(t, tc.want, res.Winners[0].ShiftID)
			require.NotNil(t, res.Overall)
			assert.Equal(t, tc.want, res.Overall.ShiftID)
			assert.Equal(t, 1, res.Overall.Wins)
		})
	}
}

func TestCompare(t *testing.T) {
	a := shift("a", dataset.StatusGreen,
		dt.Metric(dataset.Cost, dataset.Overtime, dt.R(month, 2, dataset.StatusRed)),
	)
	b := shift("b", dataset.StatusRed,
		dt.Metric(dataset.Cost, dataset.Overtime, dt.R(month, 0, dataset.StatusGreen)),
		dt.Metric(dataset.Trending, dataset.FillRatePercent, dt.R(month, "96%", dataset.StatusGreen)),
		dt.Metric("Extra", "Dock Doors", dt.R(month, 4, dataset.StatusNone)),
	)

	res := Compare([]*dataset.Shift{a, b}, month)

	want := Result{
		Month: month,
		Shifts: []ShiftSummary{
			{ID: "a", Name: "Shift a", GoalsMet: 1, Rated: 2, Percent: 50, Wins: 1},
			{ID: "b", Name: "Shift b", GoalsMet: 2, Rated: 3, Percent: 67, Best: true, Wins: 2},
		},
		Rows: []Row{
			{
				Metric: dataset.DPM, Group: dataset.Quality, Goal: "< 1,500", Winner: "a",
				Cells: []Cell{
					{ShiftID: "a", ShiftName: "Shift a", Present: true, Value: dataset.Number(1400), Status: dataset.StatusGreen, Winner: true},
					{ShiftID: "b", ShiftName: "Shift b", Present: true, Value: dataset.Number(1400), Status: dataset.StatusRed},
				},
			},
			{
				Metric: dataset.Overtime, Group: dataset.Cost, Goal: "= 0", Winner: "b",
				Cells: []Cell{
					{ShiftID: "a", ShiftName: "Shift a", Present: true, Value: dataset.Number(2), Status: dataset.StatusRed},
					{ShiftID: "b", ShiftName: "Shift b", Present: true, Value: dataset.Number(0), Status: dataset.StatusGreen, Winner: true},
				},
			},
			{
				Metric: dataset.FillRatePercent, Group: dataset.Trending, Goal: "> 95%", Winner: "b",
				Cells: []Cell{
					{ShiftID: "a", ShiftName: "Shift a", Value: dataset.NA()},
					{ShiftID: "b", ShiftName: "Shift b", Present: true, Value: dataset.Text("96%"), Status: dataset.StatusGreen, Winner: true},
				},
			},
			{
				Metric: "Dock Doors", Group: "Extra",
				Cells: []Cell{
					{ShiftID: "a", ShiftName: "Shift a", Value: dataset.NA()},
					{ShiftID: "b", ShiftName: "Shift b", Present: true, Value: dataset.Number(4)},
				},
			},
		},
		Winners: []Win{
			{Metric: dataset.DPM, ShiftID: "a", ShiftName: "Shift a"},
			{Metric: dataset.Overtime, ShiftID: "b", ShiftName: "Shift b"},
			{Metric: dataset.FillRatePercent, ShiftID: "b", ShiftName: "Shift b"},
		},
		Overall: &Overall{ShiftID: "b", ShiftName: "Shift b", Wins: 2},
	}

	if diff := cmp.Diff(want, res, cmp.AllowUnexported(dataset.Value{})); diff != "" {
		t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
	}
}

func TestOverallTieGoesToFirstShift(t *testing.T) {
	a := shift("a", dataset.StatusGreen,
		dt.Metric(dataset.Cost, dataset.Overtime, dt.R(month, 2, dataset.StatusRed)),
	)
	b := shift("b", dataset.StatusRed,
		dt.Metric(dataset.Cost, dataset.Overtime, dt.R(month, 0, dataset.StatusGreen)),
	)

	res := Compare([]*dataset.Shift{b, a}, month)
	require.NotNil(t, res.Overall)
	assert.Equal(t, "b", res.Overall.ShiftID)
	assert.True(t, res.Shifts[0].Best)
	assert.True(t, res.Shifts[1].Best, "equal percentages are both best")
}

func TestCompareIDsSkipsUnknownShifts(t *testing.T) {
	ds := dt.Dataset(
		shift("dry-1st", dataset.StatusGreen),
		shift("dry-2nd", dataset.StatusRed),
	)

	res := CompareIDs(ds, []string{"dry-2nd", "ghost", "dry-1st"}, month)
	require.Len(t, res.Shifts, 2)
	assert.Equal(t, "dry-2nd", res.Shifts[0].ID)
	assert.Equal(t, "dry-1st", res.Shifts[1].ID)
	assert.Equal(t, "dry-1st", res.Rows[0].Winner)
}

func TestCompareUnmeasuredMonth(t *testing.T) {
	res := Compare([]*dataset.Shift{shift("a", dataset.StatusGreen), shift("b", dataset.StatusRed)}, calendar.September)
	require.Len(t, res.Rows, 1)
	assert.Empty(t, res.Rows[0].Winner)
	assert.Zero(t, res.Shifts[0].Rated)
	assert.Zero(t, res.Shifts[0].Percent)
	assert.True(t, res.Rows[0].Cells[0].Present)
	assert.True(t, res.Rows[0].Cells[0].Value.IsNA())
}
