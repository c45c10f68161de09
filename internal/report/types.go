package report

import "strings"

// OverviewReport holds the rendered tables of a month overview.
type OverviewReport struct {
	Month      string
	Summary    string
	Shifts     string
	Goals      string
	Champions  string
	Concerns   string
	Alerts     string
	Successes  string
	YearToDate string
}

// ShiftReport holds the rendered tables of one shift's month.
type ShiftReport struct {
	Title      string
	Metrics    string
	YearToDate string
}

// ComparisonReport holds the rendered side-by-side table.
type ComparisonReport struct {
	Title   string
	Metrics string
	Shifts  string
	Winner  string
}

func (r OverviewReport) String() string {
	return join(
		r.Month+" overview",
		r.Summary,
		section("Shifts", r.Shifts),
		section("Goals", r.Goals),
		section("Metric champions", r.Champions),
		section("Areas of concern", r.Concerns),
		section("Alerts", r.Alerts),
		section("Successes", r.Successes),
		section("Year to date", r.YearToDate),
	)
}

func (r ShiftReport) String() string {
	return join(r.Title, r.Metrics, section("Year to date", r.YearToDate))
}

func (r ComparisonReport) String() string {
	return join(r.Title, r.Metrics, r.Shifts, r.Winner)
}

func section(title, body string) string {
	if body == "" {
		return ""
	}
	return title + "\n" + body
}

func join(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(p, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}
