package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	dt "github.com/dynoinc/shiftboard/internal/dataset/datasettest"
	"github.com/dynoinc/shiftboard/internal/trend"
)

func testShift() *dataset.Shift {
	return dt.Shift("dry-1st", "Dry 1st",
		dt.Metric(dataset.Quality, dataset.DPM,
			dt.R(calendar.February, "1,000", dataset.StatusGreen),
			dt.R(calendar.March, "1,200", dataset.StatusGreen),
			dt.R(calendar.December, 1300, dataset.StatusGreen),
			dt.R(calendar.January, 1400, dataset.StatusRed),
		),
		dt.Metric(dataset.Safety, dataset.SafetyMedical,
			dt.R(calendar.February, 0, dataset.StatusGreen),
			dt.R(calendar.March, 1, dataset.StatusRed),
		),
		dt.Metric(dataset.Cost, dataset.ReceivingCPH,
			dt.R(calendar.March, 1150, dataset.StatusGreen),
		),
	)
}

func TestByNameAndPath(t *testing.T) {
	shift := testShift()

	r, ok := ByName(shift, dataset.DPM, calendar.March)
	require.True(t, ok)
	require.Equal(t, "1,200", r.Value.String())

	r, ok = ByPath(shift, DPMPath, calendar.March)
	require.True(t, ok)
	require.Equal(t, 1200.0, r.Value.Float())

	_, ok = ByPath(shift, Path{dataset.Cost, dataset.DPM}, calendar.March)
	require.False(t, ok, "wrong category")

	_, ok = ByName(shift, dataset.FillRatePercent, calendar.March)
	require.False(t, ok, "missing metric")

	_, ok = ByName(shift, dataset.DPM, calendar.Month(13))
	require.False(t, ok, "invalid month")

	_, ok = ByName(nil, dataset.DPM, calendar.March)
	require.False(t, ok)
}

func TestWithTrend(t *testing.T) {
	shift := testShift()

	tests := []struct {
		name      string
		metric    dataset.MetricName
		month     calendar.Month
		wantTrend *trend.Trend
		wantPrev  string
	}{
		{
			name:      "rise against previous month",
			metric:    dataset.DPM,
			month:     calendar.March,
			wantTrend: &trend.Trend{Direction: trend.Up, Arrow: "↑", Color: trend.Red, Percent: 20},
			wantPrev:  "1,000",
		},
		{
			name:   "february has no previous month",
			metric: dataset.DPM,
			month:  calendar.February,
		},
		{
			name:   "previous month not measured",
			metric: dataset.ReceivingCPH,
			month:  calendar.March,
		},
		{
			name:   "current month not measured",
			metric: dataset.DPM,
			month:  calendar.April,
		},
		{
			name:      "january follows december",
			metric:    dataset.DPM,
			month:     calendar.January,
			wantTrend: &trend.Trend{Direction: trend.Up, Arrow: "↑", Color: trend.Red, Percent: 100.0 / 13},
			wantPrev:  "1300",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := WithTrend(shift, tc.metric, tc.month)
			require.True(t, ok)
			require.Equal(t, tc.metric, r.Metric)
			require.Equal(t, tc.month, r.Month)
			if tc.wantTrend == nil {
				require.Nil(t, r.Trend)
				require.Nil(t, r.Previous)
				return
			}
			require.NotNil(t, r.Trend)
			require.Equal(t, tc.wantTrend.Direction, r.Trend.Direction)
			require.Equal(t, tc.wantTrend.Color, r.Trend.Color)
			require.InDelta(t, tc.wantTrend.Percent, r.Trend.Percent, 1e-9)
			require.NotNil(t, r.Previous)
			require.Equal(t, tc.wantPrev, r.Previous.String())
		})
	}

	_, ok := WithTrend(shift, dataset.TurnoverPercent, calendar.March)
	require.False(t, ok)
}

func TestMonth(t *testing.T) {
	readings := Month(testShift(), calendar.March)
	require.Len(t, readings, 3)
	require.Equal(t, dataset.DPM, readings[0].Metric)
	require.Equal(t, dataset.Quality, readings[0].Category)
	require.Equal(t, dataset.SafetyMedical, readings[1].Metric)
	require.Equal(t, dataset.Safety, readings[1].Category)
	require.Equal(t, dataset.ReceivingCPH, readings[2].Metric)

	// Safety rose from zero.
	require.NotNil(t, readings[1].Trend)
	require.Equal(t, trend.Up, readings[1].Trend.Direction)
	require.EqualValues(t, 100, readings[1].Trend.Percent)

	r, ok := Find(readings, dataset.ReceivingCPH)
	require.True(t, ok)
	require.Equal(t, dataset.StatusGreen, r.Status)
	_, ok = Find(readings, dataset.Overtime)
	require.False(t, ok)

	require.Nil(t, Month(testShift(), calendar.Month(0)))
}

func TestAcross(t *testing.T) {
	other := dt.Shift("per-1st", "Per 1st",
		dt.Metric(dataset.Cost, dataset.Overtime, dt.R(calendar.March, 4, dataset.StatusRed)),
	)
	got := Across([]*dataset.Shift{testShift(), other, nil}, DPMPath, calendar.March)
	require.Len(t, got, 1)
	require.Equal(t, "dry-1st", got[0].Shift.ID)
	require.Equal(t, "1,200", got[0].Record.Value.String())
}
