// Package ytd rolls monthly metrics up across the fiscal year to date.
package ytd

import (
	"math"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/extract"
)

// Point is one month's figure in a series.
type Point struct {
	Month calendar.Month `json:"month"`
	Value float64        `json:"value"`
}

// Average summarises a metric whose months are averaged. Only months with
// a measurement are included, so Series may be shorter than the window.
type Average struct {
	Metric  dataset.MetricName `json:"metric"`
	Average float64            `json:"average"`
	Best    *Point             `json:"best,omitempty"`
	Worst   *Point             `json:"worst,omitempty"`
	Trend   float64            `json:"trend"`
	Series  []Point            `json:"series"`
}

// Total summarises a metric that accumulates. Every month of the window
// contributes, unmeasured months as zero.
type Total struct {
	Metric  dataset.MetricName `json:"metric"`
	Total   float64            `json:"total"`
	Average float64            `json:"average"`
	Best    *Point             `json:"best,omitempty"`
	Worst   *Point             `json:"worst,omitempty"`
	Trend   float64            `json:"trend"`
	Series  []Point            `json:"series"`
}

type Progress struct {
	MonthCount int     `json:"month_count"`
	Remaining  int     `json:"remaining"`
	Fraction   float64 `json:"fraction"`
	Percent    float64 `json:"percent"`
}

type Snapshot struct {
	ShiftID      string           `json:"shift_id,omitempty"`
	ShiftName    string           `json:"shift_name,omitempty"`
	Start        calendar.Month   `json:"start"`
	End          calendar.Month   `json:"end"`
	Months       []calendar.Month `json:"months"`
	Progress     Progress         `json:"progress"`
	Safety       Total            `json:"safety"`
	Overtime     Total            `json:"overtime"`
	DPM          Average          `json:"dpm"`
	Chase        Average          `json:"chase"`
	ReceivingCPH Average          `json:"receiving_cph"`
	ShippingCPH  Average          `json:"shipping_cph"`
	Turnover     Average          `json:"turnover"`
}

// SafetyMetric names the combined medical and non-medical incident count.
const SafetyMetric dataset.MetricName = "Safety"

// Window is the fiscal window ending at upto. February opens the year and
// has nothing to roll up, so it reports false like an unknown month.
func Window(upto calendar.Month) ([]calendar.Month, bool) {
	if upto.FiscalIndex() <= 0 {
		return nil, false
	}
	return calendar.FiscalWindow(upto), true
}

// averaged lists the counted-average metrics; rounded ones are reported as
// whole numbers.
var averaged = []struct {
	path  extract.Path
	round bool
}{
	{extract.DPMPath, true},
	{extract.ChasePath, false},
	{extract.ReceivingCPHPath, true},
	{extract.ShippingCPHPath, true},
	{extract.TurnoverPath, false},
}

// Fleet rolls up every shift. Averaged metrics are averaged across shifts
// per month first, then across months.
func Fleet(shifts []*dataset.Shift, upto calendar.Month) (Snapshot, bool) {
	months, ok := Window(upto)
	if !ok {
		return Snapshot{}, false
	}

	safety := make([]Point, 0, len(months))
	overtime := make([]Point, 0, len(months))
	for _, m := range months {
		var s, o float64
		for _, shift := range shifts {
			s += safetyIn(shift, m)
			o += overtimeIn(shift, m)
		}
		safety = append(safety, Point{Month: m, Value: s})
		overtime = append(overtime, Point{Month: m, Value: o})
	}

	snap := newSnapshot(months, safety, overtime)
	avgs := make([]Average, len(averaged))
	for i, a := range averaged {
		avgs[i] = average(a.path.Metric, fleetSeries(shifts, a.path, months, a.round), a.round)
	}
	snap.setAverages(avgs)
	return snap, true
}

// Shift rolls up a single shift.
func Shift(shift *dataset.Shift, upto calendar.Month) (Snapshot, bool) {
	months, ok := Window(upto)
	if !ok || shift == nil {
		return Snapshot{}, false
	}

	safety := make([]Point, 0, len(months))
	overtime := make([]Point, 0, len(months))
	for _, m := range months {
		safety = append(safety, Point{Month: m, Value: safetyIn(shift, m)})
		overtime = append(overtime, Point{Month: m, Value: overtimeIn(shift, m)})
	}

	snap := newSnapshot(months, safety, overtime)
	snap.ShiftID = shift.ID
	snap.ShiftName = shift.Name
	avgs := make([]Average, len(averaged))
	for i, a := range averaged {
		avgs[i] = average(a.path.Metric, shiftSeries(shift, a.path, months), a.round)
	}
	snap.setAverages(avgs)
	return snap, true
}

func newSnapshot(months []calendar.Month, safety, overtime []Point) Snapshot {
	n := len(months)
	fraction := float64(n) / 12
	return Snapshot{
		Start:  months[0],
		End:    months[n-1],
		Months: months,
		Progress: Progress{
			MonthCount: n,
			Remaining:  12 - n,
			Fraction:   fraction,
			Percent:    fraction * 100,
		},
		Safety:   total(SafetyMetric, safety),
		Overtime: total(dataset.Overtime, overtime),
	}
}

func (s *Snapshot) setAverages(avgs []Average) {
	s.DPM, s.Chase, s.ReceivingCPH, s.ShippingCPH, s.Turnover = avgs[0], avgs[1], avgs[2], avgs[3], avgs[4]
}

func safetyIn(shift *dataset.Shift, m calendar.Month) float64 {
	var v float64
	for _, p := range []extract.Path{extract.SafetyMedicalPath, extract.SafetyNonMedicalPath} {
		if r, ok := extract.ByPath(shift, p, m); ok && !r.Value.IsNA() {
			v += r.Value.Float()
		}
	}
	return v
}

func overtimeIn(shift *dataset.Shift, m calendar.Month) float64 {
	r, ok := extract.ByPath(shift, extract.OvertimePath, m)
	if !ok {
		return 0
	}
	return r.Value.Float()
}

func fleetSeries(shifts []*dataset.Shift, path extract.Path, months []calendar.Month, round bool) []Point {
	points := []Point{}
	for _, m := range months {
		var sum float64
		var n int
		for _, sr := range extract.Across(shifts, path, m) {
			if v, ok := sr.Record.Value.Number(); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		avg := sum / float64(n)
		if round {
			avg = math.Round(avg)
		}
		points = append(points, Point{Month: m, Value: avg})
	}
	return points
}

func shiftSeries(shift *dataset.Shift, path extract.Path, months []calendar.Month) []Point {
	points := []Point{}
	for _, m := range months {
		r, ok := extract.ByPath(shift, path, m)
		if !ok {
			continue
		}
		if v, ok := r.Value.Number(); ok {
			points = append(points, Point{Month: m, Value: v})
		}
	}
	return points
}

func total(metric dataset.MetricName, series []Point) Total {
	t := Total{Metric: metric, Series: series}
	for _, p := range series {
		t.Total += p.Value
	}
	if len(series) > 0 {
		t.Average = t.Total / float64(len(series))
	}
	t.Best, t.Worst = extremes(series, true)
	t.Trend = since(series)
	return t
}

func average(metric dataset.MetricName, series []Point, round bool) Average {
	a := Average{Metric: metric, Series: series}
	if len(series) > 0 {
		var sum float64
		for _, p := range series {
			sum += p.Value
		}
		a.Average = sum / float64(len(series))
		if round {
			a.Average = math.Round(a.Average)
		}
	}
	a.Best, a.Worst = extremes(series, metric.LowerIsBetter())
	a.Trend = since(series)
	return a
}

// extremes scans in fiscal order with strict comparisons, so on a tie the
// earliest month keeps the title.
func extremes(series []Point, lowerIsBetter bool) (best, worst *Point) {
	if len(series) == 0 {
		return nil, nil
	}
	lo, hi := series[0], series[0]
	for _, p := range series[1:] {
		if p.Value < lo.Value {
			lo = p
		}
		if p.Value > hi.Value {
			hi = p
		}
	}
	if lowerIsBetter {
		return &lo, &hi
	}
	return &hi, &lo
}

func since(series []Point) float64 {
	if len(series) < 2 {
		return 0
	}
	return series[len(series)-1].Value - series[0].Value
}
