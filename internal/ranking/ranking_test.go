package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	dt "github.com/dynoinc/shiftboard/internal/dataset/datasettest"
	"github.com/dynoinc/shiftboard/internal/overview"
)

func ids(ranked []Ranked) []string {
	var out []string
	for _, r := range ranked {
		out = append(out, r.ID)
	}
	return out
}

func positions(ranked []Ranked) []int {
	var out []int
	for _, r := range ranked {
		out = append(out, r.Position)
	}
	return out
}

func TestRankIsStable(t *testing.T) {
	snap := overview.Snapshot{Shifts: []overview.ShiftMonth{
		{ID: "c", GoalsMet: 5, Total: 10},
		{ID: "a", GoalsMet: 9, Total: 10},
		{ID: "d", GoalsMet: 2, Total: 10},
		{ID: "b", GoalsMet: 1, Total: 2},
	}}

	res := Rank(snap)
	assert.Equal(t, []string{"a", "c", "b", "d"}, ids(res.Ranked))
	assert.Equal(t, []string{"a", "c", "b"}, ids(res.Top))
	assert.Equal(t, []int{1, 2, 3}, positions(res.Top))
	assert.Equal(t, []string{"d", "b", "c"}, ids(res.Bottom))
	assert.Equal(t, []int{4, 3, 2}, positions(res.Bottom))
	assert.Equal(t, 90, res.Ranked[0].Percent)

	// Input order must not change.
	assert.Equal(t, "c", snap.Shifts[0].ID)
}

func TestRankFewShifts(t *testing.T) {
	res := Rank(overview.Snapshot{Shifts: []overview.ShiftMonth{
		{ID: "empty"},
		{ID: "half", GoalsMet: 1, Total: 2},
	}})
	assert.Equal(t, []string{"half", "empty"}, ids(res.Top))
	assert.Equal(t, []string{"empty", "half"}, ids(res.Bottom))
	assert.Zero(t, res.Ranked[1].Ratio)

	res = Rank(overview.Snapshot{})
	assert.Empty(t, res.Top)
	assert.Empty(t, res.Bottom)
	assert.Empty(t, res.Leaders)
	assert.Empty(t, res.Concerns)
}

func TestLeadersAndConcerns(t *testing.T) {
	m := calendar.July
	shifts := []*dataset.Shift{
		dt.Shift("dry-1st", "Dry 1st",
			dt.Metric(dataset.Quality, dataset.DPM, dt.R(m, "1,400", dataset.StatusGreen)),
			dt.Metric(dataset.Safety, dataset.SafetyMedical, dt.R(m, 0, dataset.StatusGreen)),
			dt.Metric(dataset.Cost, dataset.Overtime, dt.R(m, 2, dataset.StatusRed)),
			dt.Metric(dataset.Cost, dataset.ReceivingCPH, dt.R(m, 1150, dataset.StatusGreen)),
		),
		dt.Shift("dry-2nd", "Dry 2nd",
			dt.Metric(dataset.Quality, dataset.DPM, dt.R(m, "1,700", dataset.StatusRed)),
			dt.Metric(dataset.Safety, dataset.SafetyMedical, dt.R(m, 1, dataset.StatusRed)),
			dt.Metric(dataset.Cost, dataset.Overtime, dt.R(m, 0, dataset.StatusGreen)),
			dt.Metric(dataset.Cost, dataset.ReceivingCPH, dt.R(m, 1150, dataset.StatusGreen)),
			dt.Metric(dataset.Cost, dataset.ShippingCPH, dt.R(m, 240, dataset.StatusGreen)),
		),
		dt.Shift("per-1st", "Per 1st",
			dt.Metric(dataset.Quality, dataset.DPM, dt.R(m, "1,400", dataset.StatusGreen)),
			dt.Metric(dataset.Safety, dataset.SafetyNonMedical, dt.R(m, "N/A", dataset.StatusNone)),
			dt.Metric(dataset.Cost, dataset.Overtime, dt.R(m, "N/A", dataset.StatusNone)),
		),
	}

	res := Rank(overview.Aggregate(shifts, m))

	dpm := res.Leaders[dataset.DPM]
	require.NotNil(t, dpm.Best)
	assert.Equal(t, "dry-1st", dpm.Best.ID, "first of the tied lows")
	assert.Equal(t, "1,400", dpm.Best.Value.String())
	assert.Equal(t, "dry-2nd", dpm.Worst.ID)

	assert.Equal(t, []string{"Dry 1st", "Per 1st"}, res.Leaders[SafetyLeader].Spotless)

	ot := res.Leaders[dataset.Overtime]
	assert.Equal(t, "dry-2nd", ot.Best.ID)
	assert.Equal(t, "dry-1st", ot.Worst.ID)

	recv := res.Leaders[dataset.ReceivingCPH]
	assert.Equal(t, "dry-1st", recv.Best.ID)
	assert.Nil(t, recv.Worst)
	assert.Equal(t, "dry-2nd", res.Leaders[dataset.ShippingCPH].Best.ID)

	require.Len(t, res.Concerns, 2)
	assert.Equal(t, dataset.DPM, res.Concerns[0].Metric)
	assert.Equal(t, "dry-2nd", res.Concerns[0].Holder.ID)
	assert.Equal(t, dataset.Overtime, res.Concerns[1].Metric)
	assert.Equal(t, "dry-1st", res.Concerns[1].Holder.ID)
}

func TestConcernThresholds(t *testing.T) {
	m := calendar.July
	shifts := []*dataset.Shift{
		dt.Shift("dry-1st", "Dry 1st",
			dt.Metric(dataset.Quality, dataset.DPM, dt.R(m, 1500, dataset.StatusGreen)),
			dt.Metric(dataset.Cost, dataset.Overtime, dt.R(m, 0, dataset.StatusGreen)),
		),
	}
	res := Rank(overview.Aggregate(shifts, m))
	assert.Empty(t, res.Concerns)
	assert.Equal(t, "dry-1st", res.Leaders[dataset.DPM].Worst.ID)
}
