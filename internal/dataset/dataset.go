// Package dataset holds the shift metrics the dashboard reads: one tree
// per shift of category -> metric -> twelve calendar-indexed month records.
package dataset

import (
	"context"

	"github.com/dynoinc/shiftboard/internal/calendar"
)

type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
	StatusNone   Status = ""
)

type GoalDirection string

const (
	GoalLower  GoalDirection = "lower"
	GoalHigher GoalDirection = "higher"
)

// Record is one metric's reading for one calendar month. Status is computed
// upstream and trusted as given.
type Record struct {
	Month         calendar.Month `json:"month"`
	Value         Value          `json:"value"`
	Status        Status         `json:"status,omitempty"`
	Goal          *float64       `json:"goal,omitempty"`
	GoalDirection GoalDirection  `json:"goalDirection,omitempty"`
	WeeklyRaw     []float64      `json:"weeklyRaw,omitempty"`
	WeekNumbers   []int          `json:"weekNumbers,omitempty"`
}

// Metric carries exactly one record per calendar month, January first.
type Metric struct {
	Name   MetricName `json:"name"`
	Months [12]Record `json:"months"`
}

// At returns the record for m. ok is false only for an invalid month.
func (m *Metric) At(month calendar.Month) (Record, bool) {
	idx := month.CalendarIndex()
	if idx < 0 {
		return Record{}, false
	}
	return m.Months[idx], true
}

type Category struct {
	Name    CategoryName `json:"name"`
	Metrics []Metric     `json:"metrics"`
}

type Shift struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Metric finds a metric by name, scanning categories in order.
func (s *Shift) Metric(name MetricName) (*Metric, CategoryName, bool) {
	for ci := range s.Categories {
		c := &s.Categories[ci]
		for mi := range c.Metrics {
			if c.Metrics[mi].Name == name {
				return &c.Metrics[mi], c.Name, true
			}
		}
	}
	return nil, "", false
}

// MetricIn finds a metric within a specific category.
func (s *Shift) MetricIn(category CategoryName, name MetricName) (*Metric, bool) {
	for ci := range s.Categories {
		c := &s.Categories[ci]
		if c.Name != category {
			continue
		}
		for mi := range c.Metrics {
			if c.Metrics[mi].Name == name {
				return &c.Metrics[mi], true
			}
		}
	}
	return nil, false
}

// Dataset is the loaded, read-only collection of shifts.
type Dataset struct {
	shifts []*Shift
	byID   map[string]*Shift
}

func New(shifts []*Shift) *Dataset {
	d := &Dataset{
		shifts: shifts,
		byID:   make(map[string]*Shift, len(shifts)),
	}
	for _, s := range shifts {
		d.byID[s.ID] = s
	}
	return d
}

// Shifts returns all shifts in file order.
func (d *Dataset) Shifts() []*Shift {
	return d.shifts
}

func (d *Dataset) Shift(id string) (*Shift, bool) {
	s, ok := d.byID[id]
	return s, ok
}

// Lookup resolves ids in order, silently skipping unknown ones.
func (d *Dataset) Lookup(ids []string) []*Shift {
	shifts := make([]*Shift, 0, len(ids))
	for _, id := range ids {
		if s, ok := d.byID[id]; ok {
			shifts = append(shifts, s)
		}
	}
	return shifts
}

// Fleet returns the known shifts present in the dataset, in ShiftIDs order.
func (d *Dataset) Fleet() []*Shift {
	return d.Lookup(ShiftIDs)
}

// Store serves a dataset that was loaded up front.
type Store struct {
	ds *Dataset
}

func NewStore(ds *Dataset) *Store {
	return &Store{ds: ds}
}

func (s *Store) Dataset(ctx context.Context) (*Dataset, error) {
	return s.ds, nil
}
