package ytd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	dt "github.com/dynoinc/shiftboard/internal/dataset/datasettest"
	"github.com/dynoinc/shiftboard/internal/overview"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name  string
		upto  calendar.Month
		want  []calendar.Month
		valid bool
	}{
		{name: "february has no rollup", upto: calendar.February},
		{name: "unknown month", upto: calendar.Month(0)},
		{name: "march", upto: calendar.March, want: []calendar.Month{calendar.February, calendar.March}, valid: true},
		{name: "january closes the year", upto: calendar.January, want: calendar.FiscalMonths[:], valid: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Window(tc.upto)
			require.Equal(t, tc.valid, ok)
			require.Equal(t, tc.want, got)
		})
	}

	shift := dt.Shift("dry-1st", "Dry 1st")
	_, ok := Fleet([]*dataset.Shift{shift}, calendar.February)
	require.False(t, ok)
	_, ok = Shift(shift, calendar.February)
	require.False(t, ok)
	_, ok = Shift(nil, calendar.March)
	require.False(t, ok)
}

func TestCountedAverageSkipsUnmeasuredMonths(t *testing.T) {
	shift := dt.Shift("dry-1st", "Dry 1st",
		dt.Series(dataset.Quality, dataset.DPM, []any{nil, "1,400", "N/A", 1600}, dataset.StatusNone),
	)

	snap, ok := Shift(shift, calendar.May)
	require.True(t, ok)
	assert.Equal(t, "dry-1st", snap.ShiftID)
	assert.Equal(t, 1500.0, snap.DPM.Average)
	assert.Equal(t, []Point{{calendar.March, 1400}, {calendar.May, 1600}}, snap.DPM.Series)
	assert.Equal(t, &Point{calendar.March, 1400}, snap.DPM.Best)
	assert.Equal(t, &Point{calendar.May, 1600}, snap.DPM.Worst)
	assert.Equal(t, 200.0, snap.DPM.Trend)

	// Metrics the shift does not carry produce an empty series.
	assert.Empty(t, snap.ReceivingCPH.Series)
	assert.Nil(t, snap.ReceivingCPH.Best)
	assert.Zero(t, snap.ReceivingCPH.Average)
}

func TestTiesKeepEarliestMonth(t *testing.T) {
	shift := dt.Shift("dry-1st", "Dry 1st",
		dt.Series(dataset.Quality, dataset.DPM, []any{1400, 1400, 1500, 1500}, dataset.StatusNone),
		dt.Series(dataset.Cost, dataset.ReceivingCPH, []any{1200, 1100, 1200, 1100}, dataset.StatusNone),
		dt.Series(dataset.Cost, dataset.Overtime, []any{0, 2, 0, 2}, dataset.StatusNone),
	)

	snap, ok := Shift(shift, calendar.May)
	require.True(t, ok)

	assert.Equal(t, calendar.February, snap.DPM.Best.Month)
	assert.Equal(t, calendar.April, snap.DPM.Worst.Month)
	assert.Equal(t, calendar.February, snap.ReceivingCPH.Best.Month)
	assert.Equal(t, calendar.March, snap.ReceivingCPH.Worst.Month)
	assert.Equal(t, calendar.February, snap.Overtime.Best.Month)
	assert.Equal(t, calendar.March, snap.Overtime.Worst.Month)

	again, ok := Shift(shift, calendar.May)
	require.True(t, ok)
	if diff := cmp.Diff(snap, again); diff != "" {
		t.Errorf("rerun differs (-first +second):\n%s", diff)
	}
}

func TestRunningTotalsCountEveryMonth(t *testing.T) {
	shift := dt.Shift("per-1st", "Per 1st",
		dt.Series(dataset.Safety, dataset.SafetyMedical, []any{1, nil, 0, 2}, dataset.StatusNone),
		dt.Series(dataset.Safety, dataset.SafetyNonMedical, []any{0, 1, nil, nil}, dataset.StatusNone),
		dt.Series(dataset.Cost, dataset.Overtime, []any{"4.5", nil, 0, 1.5}, dataset.StatusNone),
	)

	snap, ok := Shift(shift, calendar.May)
	require.True(t, ok)

	assert.Equal(t, SafetyMetric, snap.Safety.Metric)
	assert.Equal(t, 4.0, snap.Safety.Total)
	assert.Equal(t, 1.0, snap.Safety.Average)
	assert.Equal(t, []Point{
		{calendar.February, 1}, {calendar.March, 1}, {calendar.April, 0}, {calendar.May, 2},
	}, snap.Safety.Series)
	assert.Equal(t, 1.0, snap.Safety.Trend)
	assert.Equal(t, calendar.April, snap.Safety.Best.Month)
	assert.Equal(t, calendar.May, snap.Safety.Worst.Month)

	assert.Equal(t, 6.0, snap.Overtime.Total)
	assert.Equal(t, 1.5, snap.Overtime.Average)
	assert.Len(t, snap.Overtime.Series, 4)
	assert.Equal(t, calendar.March, snap.Overtime.Best.Month)
	assert.Equal(t, -3.0, snap.Overtime.Trend)

	assert.Equal(t, 4, snap.Progress.MonthCount)
	assert.Equal(t, 8, snap.Progress.Remaining)
	assert.InDelta(t, 1.0/3, snap.Progress.Fraction, 1e-9)
	assert.InDelta(t, 100.0/3, snap.Progress.Percent, 1e-9)
	assert.Equal(t, calendar.February, snap.Start)
	assert.Equal(t, calendar.May, snap.End)
}

func TestFleetAveragesMonthlyFiguresFirst(t *testing.T) {
	shifts := []*dataset.Shift{
		dt.Shift("dry-1st", "Dry 1st",
			dt.Series(dataset.Quality, dataset.DPM, []any{1000, 1201}, dataset.StatusNone),
			dt.Series(dataset.Quality, dataset.ChasePercent, []any{"2.5%", nil}, dataset.StatusNone),
			dt.Series(dataset.Cost, dataset.ShippingCPH, []any{240, 210}, dataset.StatusNone),
		),
		dt.Shift("dry-2nd", "Dry 2nd",
			dt.Series(dataset.Quality, dataset.DPM, []any{2000, nil}, dataset.StatusNone),
			dt.Series(dataset.Quality, dataset.ChasePercent, []any{"3%", nil}, dataset.StatusNone),
			dt.Series(dataset.Cost, dataset.ShippingCPH, []any{231, 250}, dataset.StatusNone),
		),
	}

	snap, ok := Fleet(shifts, calendar.March)
	require.True(t, ok)
	assert.Empty(t, snap.ShiftID)

	assert.Equal(t, []Point{{calendar.February, 1500}, {calendar.March, 1201}}, snap.DPM.Series)
	assert.Equal(t, 1351.0, snap.DPM.Average)
	assert.Equal(t, calendar.March, snap.DPM.Best.Month)

	assert.Equal(t, []Point{{calendar.February, 2.75}}, snap.Chase.Series)
	assert.Equal(t, 2.75, snap.Chase.Average)
	assert.Zero(t, snap.Chase.Trend)

	// 235.5 rounds up to 236, 230 stays.
	assert.Equal(t, []Point{{calendar.February, 236}, {calendar.March, 230}}, snap.ShippingCPH.Series)
	assert.Equal(t, calendar.February, snap.ShippingCPH.Best.Month)
	assert.Equal(t, calendar.March, snap.ShippingCPH.Worst.Month)
	assert.Equal(t, 233.0, snap.ShippingCPH.Average)
}

func TestFleetTotalsMatchMonthlyOverviews(t *testing.T) {
	shifts := []*dataset.Shift{
		dt.Shift("dry-1st", "Dry 1st",
			dt.Series(dataset.Safety, dataset.SafetyMedical, []any{1, 0, 2}, dataset.StatusRed),
			dt.Series(dataset.Safety, dataset.SafetyNonMedical, []any{0, "N/A", 1}, dataset.StatusRed),
			dt.Series(dataset.Cost, dataset.Overtime, []any{3.25, 0, nil}, dataset.StatusRed),
		),
		dt.Shift("per-2nd", "Per 2nd",
			dt.Series(dataset.Safety, dataset.SafetyMedical, []any{0, 3, 0}, dataset.StatusRed),
			dt.Series(dataset.Cost, dataset.Overtime, []any{"1.5", 12, 2}, dataset.StatusRed),
		),
	}

	var safety, overtime float64
	for _, m := range []calendar.Month{calendar.February, calendar.March, calendar.April} {
		snap := overview.Aggregate(shifts, m)
		safety += snap.SafetyIncidents
		overtime += snap.OvertimeHours
	}

	ytd, ok := Fleet(shifts, calendar.April)
	require.True(t, ok)
	assert.Equal(t, safety, ytd.Safety.Total)
	assert.Equal(t, overtime, ytd.Overtime.Total)
	assert.Equal(t, 7.0, ytd.Safety.Total)
	assert.Equal(t, 18.75, ytd.Overtime.Total)
}
