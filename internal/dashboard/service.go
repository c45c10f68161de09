// Package dashboard answers the questions the dashboard asks of a loaded
// dataset. It resolves names and IDs coming from callers, runs the pure
// aggregations and records a span and a counter per call.
package dashboard

//go:generate go tool mockgen -destination=mocks/mock_source.go -package=mocks . Source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dynoinc/shiftboard/internal/calendar"
	"github.com/dynoinc/shiftboard/internal/comparison"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/drilldown"
	"github.com/dynoinc/shiftboard/internal/otel/semconv"
	tracing "github.com/dynoinc/shiftboard/internal/otel/trace"
	"github.com/dynoinc/shiftboard/internal/overview"
	"github.com/dynoinc/shiftboard/internal/ranking"
	"github.com/dynoinc/shiftboard/internal/ytd"
)

var (
	ErrUnknownMonth     = errors.New("unknown month")
	ErrUnknownShift     = errors.New("unknown shift")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNoYearToDate     = errors.New("no year-to-date data before march")
)

// Source hands out the dataset to serve.
type Source interface {
	Dataset(ctx context.Context) (*dataset.Dataset, error)
}

type Service struct {
	source     Source
	fiscalYear int

	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func New(source Source, fiscalYear int, tp trace.TracerProvider, mp metric.MeterProvider) (*Service, error) {
	meter := mp.Meter("github.com/dynoinc/shiftboard/internal/dashboard")
	calls, err := meter.Int64Counter(
		"shiftboard.dashboard.calls",
		metric.WithDescription("Dashboard queries by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating call counter: %w", err)
	}
	duration, err := meter.Float64Histogram(
		"shiftboard.dashboard.duration",
		metric.WithDescription("Time spent answering dashboard queries"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Service{
		source:     source,
		fiscalYear: fiscalYear,
		tracer:     tp.Tracer("github.com/dynoinc/shiftboard/internal/dashboard"),
		calls:      calls,
		duration:   duration,
	}, nil
}

// Overview is the full month page: totals, goal breakdown, shift cards,
// rankings and the fleet's year to date.
type Overview struct {
	overview.Snapshot
	Goals   overview.GoalSummary `json:"goals"`
	Cards   []overview.Card      `json:"cards"`
	Ranking ranking.Result       `json:"ranking"`
	YTD     *ytd.Snapshot        `json:"ytd,omitempty"`
}

func (s *Service) Months(ctx context.Context) (cards []drilldown.MonthCard, err error) {
	ctx, end := s.start(ctx, "months")
	defer func() { end(err) }()

	ds, err := s.source.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return drilldown.MonthCards(ds.Fleet()), nil
}

func (s *Service) Overview(ctx context.Context, monthName string) (view Overview, err error) {
	ctx, end := s.start(ctx, "overview", semconv.MonthKey.String(monthName))
	defer func() { end(err) }()

	ds, month, err := s.resolve(ctx, monthName)
	if err != nil {
		return Overview{}, err
	}

	fleet := ds.Fleet()
	snap := overview.Aggregate(fleet, month)
	view = Overview{
		Snapshot: snap,
		Goals:    overview.Goals(snap),
		Cards:    overview.Cards(snap),
		Ranking:  ranking.Rank(snap),
	}
	if y, ok := ytd.Fleet(fleet, month); ok {
		view.YTD = &y
	}
	return view, nil
}

func (s *Service) ShiftDetail(ctx context.Context, monthName, shiftID string) (detail drilldown.Detail, err error) {
	ctx, end := s.start(ctx, "shift_detail", semconv.MonthKey.String(monthName), semconv.ShiftIDKey.String(shiftID))
	defer func() { end(err) }()

	shift, month, err := s.resolveShift(ctx, monthName, shiftID)
	if err != nil {
		return drilldown.Detail{}, err
	}
	detail, _ = drilldown.ShiftDetail(shift, month)
	return detail, nil
}

func (s *Service) ShiftYTD(ctx context.Context, monthName, shiftID string) (snap ytd.Snapshot, err error) {
	ctx, end := s.start(ctx, "shift_ytd", semconv.MonthKey.String(monthName), semconv.ShiftIDKey.String(shiftID))
	defer func() { end(err) }()

	shift, month, err := s.resolveShift(ctx, monthName, shiftID)
	if err != nil {
		return ytd.Snapshot{}, err
	}
	snap, ok := ytd.Shift(shift, month)
	if !ok {
		return ytd.Snapshot{}, fmt.Errorf("%w: %s", ErrNoYearToDate, month)
	}
	return snap, nil
}

func (s *Service) Weekly(ctx context.Context, monthName, shiftID, metricName string) (w drilldown.WeeklyTrend, err error) {
	ctx, end := s.start(ctx, "weekly_trend",
		semconv.MonthKey.String(monthName),
		semconv.ShiftIDKey.String(shiftID),
		semconv.MetricKey.String(metricName),
	)
	defer func() { end(err) }()

	shift, month, err := s.resolveShift(ctx, monthName, shiftID)
	if err != nil {
		return drilldown.WeeklyTrend{}, err
	}
	w, ok := drilldown.Weekly(shift, dataset.MetricName(metricName), month, s.fiscalYear)
	if !ok {
		return drilldown.WeeklyTrend{}, fmt.Errorf("%w: %q has no weekly values for %s in %s", ErrUnknownMetric, metricName, shiftID, month)
	}
	return w, nil
}

// History lists a shift's readings of one metric from February through the
// month, skipping months that were not measured.
func (s *Service) History(ctx context.Context, monthName, shiftID, metricName string) (entries []drilldown.HistoryEntry, err error) {
	ctx, end := s.start(ctx, "history",
		semconv.MonthKey.String(monthName),
		semconv.ShiftIDKey.String(shiftID),
		semconv.MetricKey.String(metricName),
	)
	defer func() { end(err) }()

	shift, month, err := s.resolveShift(ctx, monthName, shiftID)
	if err != nil {
		return nil, err
	}
	if _, _, ok := shift.Metric(dataset.MetricName(metricName)); !ok {
		return nil, fmt.Errorf("%w: %q is not reported by %s", ErrUnknownMetric, metricName, shiftID)
	}
	entries = drilldown.History(shift, dataset.MetricName(metricName), month)
	if entries == nil {
		entries = []drilldown.HistoryEntry{}
	}
	return entries, nil
}

// Breadcrumb replays a navigation to view within the month on a fresh
// Session and returns its trail. ShiftIDs name the opened shift, or the
// selection when comparing.
func (s *Service) Breadcrumb(ctx context.Context, monthName string, view View, shiftIDs []string) (crumb Breadcrumb, err error) {
	ctx, end := s.start(ctx, "breadcrumb", semconv.MonthKey.String(monthName), semconv.ShiftIDsKey.StringSlice(shiftIDs))
	defer func() { end(err) }()

	ds, month, err := s.resolve(ctx, monthName)
	if err != nil {
		return Breadcrumb{}, err
	}

	var session Session
	if err := session.SelectMonth(month); err != nil {
		return Breadcrumb{}, err
	}

	switch view {
	case ViewShifts, "":
	case ViewOverview:
		if err := session.ShowOverview(); err != nil {
			return Breadcrumb{}, err
		}
	case ViewShift:
		if len(shiftIDs) != 1 {
			return Breadcrumb{}, fmt.Errorf("%w: open exactly one shift", ErrInvalidSelection)
		}
		if _, ok := ds.Shift(shiftIDs[0]); !ok {
			return Breadcrumb{}, fmt.Errorf("%w: %q", ErrUnknownShift, shiftIDs[0])
		}
		if err := session.SelectShift(shiftIDs[0]); err != nil {
			return Breadcrumb{}, err
		}
	case ViewComparison:
		session.StartComparison()
		for _, id := range shiftIDs {
			if _, ok := ds.Shift(id); !ok {
				return Breadcrumb{}, fmt.Errorf("%w: %q", ErrUnknownShift, id)
			}
			if err := session.Toggle(id); err != nil {
				return Breadcrumb{}, err
			}
		}
		if _, err := session.Compare(); err != nil {
			return Breadcrumb{}, err
		}
	default:
		return Breadcrumb{}, fmt.Errorf("%w: unknown view %q", ErrInvalidSelection, view)
	}
	return session.Breadcrumb(ds), nil
}

// Compare validates the selection before comparing. Unknown IDs that pass
// validation are skipped, but at least two shifts must remain.
func (s *Service) Compare(ctx context.Context, monthName string, shiftIDs []string) (res comparison.Result, err error) {
	ctx, end := s.start(ctx, "compare", semconv.MonthKey.String(monthName), semconv.ShiftIDsKey.StringSlice(shiftIDs))
	defer func() { end(err) }()

	if err := ValidateSelection(shiftIDs); err != nil {
		return comparison.Result{}, err
	}
	ds, month, err := s.resolve(ctx, monthName)
	if err != nil {
		return comparison.Result{}, err
	}
	shifts := ds.Lookup(shiftIDs)
	if len(shifts) < MinSelected {
		return comparison.Result{}, fmt.Errorf("%w: only %d of %d shifts are known", ErrUnknownShift, len(shifts), len(shiftIDs))
	}
	return comparison.Compare(shifts, month), nil
}

func (s *Service) resolve(ctx context.Context, monthName string) (*dataset.Dataset, calendar.Month, error) {
	month, ok := calendar.Parse(monthName)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownMonth, monthName)
	}
	ds, err := s.source.Dataset(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("loading dataset: %w", err)
	}
	return ds, month, nil
}

func (s *Service) resolveShift(ctx context.Context, monthName, shiftID string) (*dataset.Shift, calendar.Month, error) {
	ds, month, err := s.resolve(ctx, monthName)
	if err != nil {
		return nil, 0, err
	}
	shift, ok := ds.Shift(shiftID)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownShift, shiftID)
	}
	return shift, month, nil
}

func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	if tracing.IsForced(ctx) {
		attrs = append(attrs, semconv.ForceTraceKey.Bool(true))
	}
	ctx, span := s.tracer.Start(ctx, "dashboard."+op, trace.WithAttributes(attrs...))
	began := time.Now()
	return ctx, func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		labels := metric.WithAttributes(
			semconv.OperationKey.String(op),
			semconv.OutcomeKey.String(outcome),
		)
		s.calls.Add(ctx, 1, labels)
		s.duration.Record(ctx, time.Since(began).Seconds(), labels)
		span.End()
	}
}
