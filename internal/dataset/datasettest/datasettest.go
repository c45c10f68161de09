// Package datasettest builds small shift datasets for tests.
package datasettest

import (
	"fmt"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/dataset"
)

// MetricSpec is one metric of a test shift.
type MetricSpec struct {
	Category dataset.CategoryName
	Name     dataset.MetricName
	Records  []dataset.Record
}

// V converts strings and numbers to a metric value.
func V(v any) dataset.Value {
	switch x := v.(type) {
	case dataset.Value:
		return x
	case string:
		return dataset.Text(x)
	case int:
		return dataset.Number(float64(x))
	case float64:
		return dataset.Number(x)
	case nil:
		return dataset.NA()
	default:
		panic(fmt.Sprintf("unsupported value %T", v))
	}
}

// R builds a record for month m.
func R(m calendar.Month, v any, status dataset.Status) dataset.Record {
	return dataset.Record{Month: m, Value: V(v), Status: status}
}

// Metric builds a test metric from records.
func Metric(category dataset.CategoryName, name dataset.MetricName, records ...dataset.Record) MetricSpec {
	return MetricSpec{Category: category, Name: name, Records: records}
}

// Series builds one record per fiscal month starting in February, taking
// values and statuses pairwise; a nil value becomes N/A.
func Series(category dataset.CategoryName, name dataset.MetricName, values []any, status dataset.Status) MetricSpec {
	records := make([]dataset.Record, 0, len(values))
	for i, v := range values {
		records = append(records, R(calendar.FiscalMonths[i], v, status))
	}
	return Metric(category, name, records...)
}

// Shift assembles a shift. Categories keep first-appearance order and every
// month without a record holds N/A.
func Shift(id, name string, metrics ...MetricSpec) *dataset.Shift {
	s := &dataset.Shift{ID: id, Name: name}
	for _, ms := range metrics {
		var category *dataset.Category
		for i := range s.Categories {
			if s.Categories[i].Name == ms.Category {
				category = &s.Categories[i]
			}
		}
		if category == nil {
			s.Categories = append(s.Categories, dataset.Category{Name: ms.Category})
			category = &s.Categories[len(s.Categories)-1]
		}

		metric := dataset.Metric{Name: ms.Name}
		for i, m := range calendar.CalendarMonths {
			metric.Months[i] = dataset.Record{Month: m, Value: dataset.NA()}
		}
		for _, r := range ms.Records {
			metric.Months[r.Month.CalendarIndex()] = r
		}
		category.Metrics = append(category.Metrics, metric)
	}
	return s
}

// Dataset wraps shifts.
func Dataset(shifts ...*dataset.Shift) *dataset.Dataset {
	return dataset.New(shifts)
}
