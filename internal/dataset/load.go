package dataset

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/qri-io/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dynoinc/shiftboard/internal/calendar"
)

//go:embed schema.json
var schemaJSON []byte

var documentSchema = mustSchema(schemaJSON)

func mustSchema(b []byte) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(b, rs); err != nil {
		panic(fmt.Sprintf("invalid dataset schema: %v", err))
	}
	return rs
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// SchemaError lists every schema violation found in a dataset document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset does not match schema: %s", strings.Join(e.Problems, "; "))
}

type document struct {
	Shifts []documentShift `json:"shifts"`
}

type documentShift struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Categories []documentCategory `json:"categories"`
}

type documentCategory struct {
	Name    CategoryName     `json:"name"`
	Metrics []documentMetric `json:"metrics"`
}

type documentMetric struct {
	Name   MetricName `json:"name"`
	Months []Record   `json:"months"`
}

// Load reads a dataset file; .yaml and .yml files are parsed as YAML,
// anything else as JSON.
func Load(ctx context.Context, path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	ds, err := Parse(ctx, b, format)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset file %s: %w", path, err)
	}

	slog.InfoContext(ctx, "loaded dataset", "path", path, "shifts", len(ds.Shifts()))
	return ds, nil
}

// Parse validates a dataset document against the embedded schema and
// builds the in-memory tree.
func Parse(ctx context.Context, b []byte, format Format) (*Dataset, error) {
	data := b
	if format == FormatYAML {
		// Accept YAML for hand-edited files, but the schema is checked against JSON.
		parsedYaml := map[string]any{}
		if err := yaml.Unmarshal(b, &parsedYaml); err != nil {
			return nil, fmt.Errorf("unmarshalling yaml: %w", err)
		}
		marshaled, err := json.Marshal(parsedYaml)
		if err != nil {
			return nil, fmt.Errorf("converting yaml to json: %w", err)
		}
		data = marshaled
	}

	keyErrs, err := documentSchema.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("validating dataset: %w", err)
	}
	if len(keyErrs) > 0 {
		problems := make([]string, len(keyErrs))
		for i, ke := range keyErrs {
			problems[i] = ke.Error()
		}
		return nil, &SchemaError{Problems: problems}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	return build(doc)
}

func build(doc document) (*Dataset, error) {
	seen := make(map[string]bool, len(doc.Shifts))
	shifts := make([]*Shift, 0, len(doc.Shifts))
	for _, ds := range doc.Shifts {
		if seen[ds.ID] {
			return nil, fmt.Errorf("duplicate shift %s", ds.ID)
		}
		seen[ds.ID] = true

		shift := &Shift{ID: ds.ID, Name: ds.Name}
		for _, dc := range ds.Categories {
			category := Category{Name: dc.Name}
			for _, dm := range dc.Metrics {
				metric, err := buildMetric(dm)
				if err != nil {
					return nil, fmt.Errorf("shift %s, %s/%s: %w", ds.ID, dc.Name, dm.Name, err)
				}
				category.Metrics = append(category.Metrics, metric)
			}
			shift.Categories = append(shift.Categories, category)
		}
		shifts = append(shifts, shift)
	}
	return New(shifts), nil
}

var errDuplicateMonth = errors.New("duplicate month record")

// buildMetric places each record at its calendar slot and fills the months
// the feed left out with the NotAvailable sentinel.
func buildMetric(dm documentMetric) (Metric, error) {
	metric := Metric{Name: dm.Name}
	var filled [12]bool
	for _, r := range dm.Months {
		idx := r.Month.CalendarIndex()
		if idx < 0 {
			return Metric{}, fmt.Errorf("invalid month %d", int(r.Month))
		}
		if filled[idx] {
			return Metric{}, fmt.Errorf("%w: %s", errDuplicateMonth, r.Month)
		}
		filled[idx] = true
		metric.Months[idx] = r
	}
	for idx, ok := range filled {
		if !ok {
			metric.Months[idx] = Record{Month: calendar.CalendarMonths[idx], Value: NA()}
		}
	}
	return metric, nil
}
