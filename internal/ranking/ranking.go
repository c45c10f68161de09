// Package ranking orders shifts by goal achievement and picks per-metric
// leaders out of a month overview.
package ranking

import (
	"slices"

	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/overview"
)

const (
	// PodiumSize is how many shifts the top and bottom lists hold.
	PodiumSize = 3

	// Thresholds that put the worst shift on the concern list.
	DPMConcernAbove      = 1500
	OvertimeConcernAbove = 0
)

type Ranked struct {
	Position int     `json:"position"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	GoalsMet int     `json:"goals_met"`
	Total    int     `json:"total"`
	Ratio    float64 `json:"ratio"`
	Percent  int     `json:"percent"`
}

// Holder is a shift holding a leader or laggard title, with the value as
// the feed reported it.
type Holder struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Value dataset.Value `json:"value"`
}

type Leader struct {
	Best  *Holder `json:"best,omitempty"`
	Worst *Holder `json:"worst,omitempty"`
	// Spotless lists every shift with no incidents. Only used for safety.
	Spotless []string `json:"spotless,omitempty"`
}

type Concern struct {
	Metric dataset.MetricName `json:"metric"`
	Holder Holder             `json:"holder"`
}

type Result struct {
	Ranked   []Ranked                      `json:"ranked"`
	Top      []Ranked                      `json:"top"`
	Bottom   []Ranked                      `json:"bottom"`
	Leaders  map[dataset.MetricName]Leader `json:"leaders"`
	Concerns []Concern                     `json:"concerns"`
}

// SafetyLeader keys the spotless-safety entry in Result.Leaders.
const SafetyLeader dataset.MetricName = "Safety"

// Rank orders the snapshot's shifts by goals met over total metrics,
// highest first. Ties keep snapshot order.
func Rank(snap overview.Snapshot) Result {
	shifts := slices.Clone(snap.Shifts)
	slices.SortStableFunc(shifts, func(a, b overview.ShiftMonth) int {
		ra, rb := a.Ratio(), b.Ratio()
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		default:
			return 0
		}
	})

	res := Result{
		Ranked:   make([]Ranked, len(shifts)),
		Top:      []Ranked{},
		Bottom:   []Ranked{},
		Leaders:  map[dataset.MetricName]Leader{},
		Concerns: []Concern{},
	}
	for i, s := range shifts {
		res.Ranked[i] = Ranked{
			Position: i + 1,
			ID:       s.ID,
			Name:     s.Name,
			GoalsMet: s.GoalsMet,
			Total:    s.Total,
			Ratio:    s.Ratio(),
			Percent:  s.Percent(),
		}
	}

	res.Top = append(res.Top, res.Ranked[:min(PodiumSize, len(res.Ranked))]...)
	for i := len(res.Ranked) - 1; i >= max(0, len(res.Ranked)-PodiumSize); i-- {
		res.Bottom = append(res.Bottom, res.Ranked[i])
	}

	leaders(snap.Shifts, &res)
	return res
}

type extreme struct {
	holder *Holder
	value  float64
}

// offer replaces the current holder only on a strict improvement, so the
// first shift keeps a tied title.
func (e *extreme) offer(s overview.ShiftMonth, v dataset.Value, n float64, better func(a, b float64) bool) {
	if e.holder == nil || better(n, e.value) {
		e.holder = &Holder{ID: s.ID, Name: s.Name, Value: v}
		e.value = n
	}
}

func less(a, b float64) bool    { return a < b }
func greater(a, b float64) bool { return a > b }

func leaders(shifts []overview.ShiftMonth, res *Result) {
	var dpmBest, dpmWorst, otBest, otWorst, recvBest, shipBest extreme
	spotless := []string{}

	for _, s := range shifts {
		if r, ok := s.Reading(dataset.DPM); ok {
			if n, ok := r.Value.Number(); ok {
				dpmBest.offer(s, r.Value, n, less)
				dpmWorst.offer(s, r.Value, n, greater)
			}
		}

		var incidents float64
		for _, metric := range []dataset.MetricName{dataset.SafetyMedical, dataset.SafetyNonMedical} {
			if r, ok := s.Reading(metric); ok {
				incidents += r.Value.Float()
			}
		}
		if incidents == 0 {
			spotless = append(spotless, s.Name)
		}

		if r, ok := s.Reading(dataset.Overtime); ok {
			if n, ok := r.Value.Number(); ok {
				otBest.offer(s, r.Value, n, less)
				otWorst.offer(s, r.Value, n, greater)
			}
		}
		if r, ok := s.Reading(dataset.ReceivingCPH); ok {
			if n, ok := r.Value.Number(); ok {
				recvBest.offer(s, r.Value, n, greater)
			}
		}
		if r, ok := s.Reading(dataset.ShippingCPH); ok {
			if n, ok := r.Value.Number(); ok {
				shipBest.offer(s, r.Value, n, greater)
			}
		}
	}

	if dpmBest.holder != nil {
		res.Leaders[dataset.DPM] = Leader{Best: dpmBest.holder, Worst: dpmWorst.holder}
	}
	if len(spotless) > 0 {
		res.Leaders[SafetyLeader] = Leader{Spotless: spotless}
	}
	if otBest.holder != nil {
		res.Leaders[dataset.Overtime] = Leader{Best: otBest.holder, Worst: otWorst.holder}
	}
	if recvBest.holder != nil {
		res.Leaders[dataset.ReceivingCPH] = Leader{Best: recvBest.holder}
	}
	if shipBest.holder != nil {
		res.Leaders[dataset.ShippingCPH] = Leader{Best: shipBest.holder}
	}

	if dpmWorst.holder != nil && dpmWorst.value > DPMConcernAbove {
		res.Concerns = append(res.Concerns, Concern{Metric: dataset.DPM, Holder: *dpmWorst.holder})
	}
	if otWorst.holder != nil && otWorst.value > OvertimeConcernAbove {
		res.Concerns = append(res.Concerns, Concern{Metric: dataset.Overtime, Holder: *otWorst.holder})
	}
}
