// Package comparison lines up two or three shifts metric by metric for one
// month and decides who won what.
package comparison

import (
	"math"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/extract"
)

// Cell is one shift's entry in a comparison row. Present is false when the
// shift does not carry the metric; Value is then N/A.
type Cell struct {
	ShiftID   string         `json:"shift_id"`
	ShiftName string         `json:"shift_name"`
	Present   bool           `json:"present"`
	Value     dataset.Value  `json:"value"`
	Status    dataset.Status `json:"status,omitempty"`
	Winner    bool           `json:"winner"`
}

type Row struct {
	Metric dataset.MetricName   `json:"metric"`
	Group  dataset.CategoryName `json:"group"`
	Goal   string               `json:"goal,omitempty"`
	Cells  []Cell               `json:"cells"`
	// Winner is the winning shift ID, empty when nobody or everybody met
	// the goal.
	Winner string `json:"winner,omitempty"`
}

type ShiftSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GoalsMet int    `json:"goals_met"`
	Rated    int    `json:"rated"`
	Percent  int    `json:"percent"`
	Best     bool   `json:"best"`
	Wins     int    `json:"wins"`
}

type Win struct {
	Metric    dataset.MetricName `json:"metric"`
	ShiftID   string             `json:"shift_id"`
	ShiftName string             `json:"shift_name"`
}

type Overall struct {
	ShiftID   string `json:"shift_id"`
	ShiftName string `json:"shift_name"`
	Wins      int    `json:"wins"`
}

type Result struct {
	Month   calendar.Month `json:"month"`
	Shifts  []ShiftSummary `json:"shifts"`
	Rows    []Row          `json:"rows"`
	Winners []Win          `json:"winners"`
	Overall *Overall       `json:"overall,omitempty"`
}

// CompareIDs resolves ids against ds, skipping unknown ones, and compares
// the rest.
func CompareIDs(ds *dataset.Dataset, ids []string, month calendar.Month) Result {
	return Compare(ds.Lookup(ids), month)
}

type flat struct {
	order   []dataset.MetricName
	records map[dataset.MetricName]extract.Reading
}

// flatten keys every reading by metric name. A name repeated under a later
// category keeps its first reading.
func flatten(shift *dataset.Shift, month calendar.Month) flat {
	f := flat{records: map[dataset.MetricName]extract.Reading{}}
	for _, r := range extract.Month(shift, month) {
		if _, ok := f.records[r.Metric]; ok {
			continue
		}
		f.order = append(f.order, r.Metric)
		f.records[r.Metric] = r
	}
	return f
}

// Compare does not police how many shifts it is given; with fewer than two
// the winners are meaningless.
func Compare(shifts []*dataset.Shift, month calendar.Month) Result {
	res := Result{
		Month:   month,
		Shifts:  make([]ShiftSummary, 0, len(shifts)),
		Rows:    []Row{},
		Winners: []Win{},
	}

	flats := make([]flat, 0, len(shifts))
	kept := make([]*dataset.Shift, 0, len(shifts))
	var metrics []dataset.MetricName
	seen := map[dataset.MetricName]bool{}
	for _, s := range shifts {
		if s == nil {
			continue
		}
		f := flatten(s, month)
		flats = append(flats, f)
		kept = append(kept, s)
		for _, m := range f.order {
			if !seen[m] {
				seen[m] = true
				metrics = append(metrics, m)
			}
		}

		sum := ShiftSummary{ID: s.ID, Name: s.Name}
		for _, m := range f.order {
			r := f.records[m]
			if r.Status == dataset.StatusNone {
				continue
			}
			sum.Rated++
			if r.Status == dataset.StatusGreen {
				sum.GoalsMet++
			}
		}
		if sum.Rated > 0 {
			sum.Percent = int(math.Round(float64(sum.GoalsMet) / float64(sum.Rated) * 100))
		}
		res.Shifts = append(res.Shifts, sum)
	}

	for _, m := range metrics {
		row := Row{Metric: m, Group: group(m, flats), Goal: m.Goal()}
		greens := 0
		first := -1
		for i, s := range kept {
			c := Cell{ShiftID: s.ID, ShiftName: s.Name, Value: dataset.NA()}
			if r, ok := flats[i].records[m]; ok {
				c.Present = true
				c.Value = r.Value
				c.Status = r.Status
			}
			if c.Status == dataset.StatusGreen {
				greens++
				if first < 0 {
					first = i
				}
			}
			row.Cells = append(row.Cells, c)
		}

		if greens > 0 && greens < len(kept) {
			row.Cells[first].Winner = true
			row.Winner = kept[first].ID
			res.Shifts[first].Wins++
			res.Winners = append(res.Winners, Win{Metric: m, ShiftID: kept[first].ID, ShiftName: kept[first].Name})
		}
		res.Rows = append(res.Rows, row)
	}

	best := -1
	for _, s := range res.Shifts {
		best = max(best, s.Percent)
	}
	for i := range res.Shifts {
		res.Shifts[i].Best = res.Shifts[i].Percent == best

		if res.Shifts[i].Wins == 0 {
			continue
		}
		if res.Overall == nil || res.Shifts[i].Wins > res.Overall.Wins {
			res.Overall = &Overall{ShiftID: res.Shifts[i].ID, ShiftName: res.Shifts[i].Name, Wins: res.Shifts[i].Wins}
		}
	}
	return res
}

// group is the catalog category for known metrics, else the category the
// first shift filed it under.
func group(m dataset.MetricName, flats []flat) dataset.CategoryName {
	if c := m.Category(); c != "" {
		return c
	}
	for _, f := range flats {
		if r, ok := f.records[m]; ok {
			return r.Category
		}
	}
	return ""
}
