package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/dynoinc/shiftboard/internal/comparison"
	"github.com/dynoinc/shiftboard/internal/dashboard"
	"github.com/dynoinc/shiftboard/internal/dataset"
	"github.com/dynoinc/shiftboard/internal/drilldown"
	"github.com/dynoinc/shiftboard/internal/overview"
	"github.com/dynoinc/shiftboard/internal/ranking"
	"github.com/dynoinc/shiftboard/internal/trend"
	"github.com/dynoinc/shiftboard/internal/ytd"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Overview(view dashboard.Overview) OverviewReport {
	r := OverviewReport{
		Month:   view.Month.String(),
		Summary: g.generateSummaryTable(view),
		Shifts:  g.generateRankingTable(view),
		Goals:   g.generateGoalsTable(view),
	}
	if len(view.Ranking.Leaders) > 0 {
		r.Champions = g.generateChampionsTable(view.Ranking)
	}
	if len(view.Ranking.Concerns) > 0 {
		r.Concerns = g.generateConcernsTable(view.Ranking.Concerns)
	}
	if len(view.Alerts) > 0 {
		r.Alerts = g.generateEntriesTable("ALERT", view.Alerts)
	}
	if len(view.Successes) > 0 {
		r.Successes = g.generateEntriesTable("SUCCESS", view.Successes)
	}
	if view.YTD != nil {
		r.YearToDate = g.generateYTDTable(*view.YTD)
	}
	return r
}

func (g *Generator) Shift(detail drilldown.Detail) ShiftReport {
	r := ShiftReport{
		Title:   fmt.Sprintf("%s - %s", detail.ShiftName, detail.Month),
		Metrics: g.generateMetricsTable(detail),
	}
	if detail.YTD != nil {
		r.YearToDate = g.generateYTDTable(*detail.YTD)
	}
	return r
}

func (g *Generator) Comparison(res comparison.Result) ComparisonReport {
	names := make([]string, 0, len(res.Shifts))
	for _, s := range res.Shifts {
		names = append(names, s.Name)
	}

	r := ComparisonReport{
		Title:   fmt.Sprintf("%s - %s", res.Month, strings.Join(names, " vs ")),
		Metrics: g.generateComparisonTable(res, names),
		Shifts:  g.generateComparisonSummaryTable(res),
		Winner:  "No overall winner",
	}
	if res.Overall != nil {
		r.Winner = fmt.Sprintf("Overall winner: %s (%d %s)", res.Overall.ShiftName, res.Overall.Wins, plural(res.Overall.Wins, "win"))
	}
	return r
}

func (g *Generator) Weekly(w drilldown.WeeklyTrend) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s - %s, %s %d\n", w.ShiftName, w.Metric, w.Month, w.Year)
	fmt.Fprintf(&buf, "Monthly average: %s", w.Monthly)
	if w.Goal != "" {
		fmt.Fprintf(&buf, " (goal %s)", w.Goal)
	}
	buf.WriteString("\n")

	table := newTable(&buf, []string{"WEEK", "VALUE", "GOAL"})
	for _, p := range w.Points {
		table.Append([]string{p.Label, humanize.Ftoa(p.Value), colorMark(p.Color)})
	}
	table.Render()
	return buf.String()
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorders(tablewriter.Border{Left: true, Top: true, Right: true, Bottom: true})
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	return table
}

func (g *Generator) generateSummaryTable(view dashboard.Overview) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"SAFETY INCIDENTS", "AVG DPM", "OVERTIME", "GOALS MET"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)

	dpm := "N/A"
	if view.DPMCount > 0 {
		dpm = humanize.Comma(int64(view.AverageDPM))
	}
	table.Append([]string{
		humanize.Ftoa(view.SafetyIncidents) + formatTrend(view.Trends.Safety),
		dpm + formatTrend(view.Trends.DPM),
		fmt.Sprintf("%.1f hours", view.OvertimeHours) + formatTrend(view.Trends.Overtime),
		fmt.Sprintf("%d/%d (%d%%)", view.GoalsMet, view.TotalGoals, view.GoalsMetPercent) + formatTrend(view.Trends.GoalsMet),
	})

	table.Render()
	return buf.String()
}

func (g *Generator) generateRankingTable(view dashboard.Overview) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"RANK", "SHIFT", "GOALS MET", "RATE"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
	})

	for _, r := range view.Ranking.Ranked {
		table.Append([]string{
			fmt.Sprintf("%d", r.Position),
			r.Name,
			fmt.Sprintf("%d/%d", r.GoalsMet, r.Total),
			fmt.Sprintf("%d%%", r.Percent),
		})
	}

	table.Render()
	return buf.String()
}

func (g *Generator) generateGoalsTable(view dashboard.Overview) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"METRIC", "GOAL", "MET", "MISSED", "N/A", "RATE"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
	})

	for _, m := range view.Goals.Metrics {
		table.Append([]string{
			string(m.Metric),
			m.Goal,
			fmt.Sprintf("%d", m.Met),
			fmt.Sprintf("%d", m.Missed),
			fmt.Sprintf("%d", m.NA),
			fmt.Sprintf("%d%%", m.MetPercent),
		})
	}

	table.Render()
	return buf.String()
}

// championOrder fixes the row order of the champions table.
var championOrder = []dataset.MetricName{
	dataset.DPM,
	ranking.SafetyLeader,
	dataset.Overtime,
	dataset.ReceivingCPH,
	dataset.ShippingCPH,
}

func (g *Generator) generateChampionsTable(res ranking.Result) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"METRIC", "BEST", "WORST"})

	for _, metric := range championOrder {
		leader, ok := res.Leaders[metric]
		if !ok {
			continue
		}
		if metric == ranking.SafetyLeader {
			table.Append([]string{"Safety", strings.Join(leader.Spotless, ", ") + " (no incidents)", ""})
			continue
		}
		table.Append([]string{string(metric), formatHolder(leader.Best), formatHolder(leader.Worst)})
	}

	table.Render()
	return buf.String()
}

func (g *Generator) generateConcernsTable(concerns []ranking.Concern) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"METRIC", "SHIFT", "VALUE"})

	for _, c := range concerns {
		table.Append([]string{string(c.Metric), c.Holder.Name, c.Holder.Value.String()})
	}

	table.Render()
	return buf.String()
}

func (g *Generator) generateEntriesTable(kind string, entries []overview.Entry) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{kind, "VALUE"})

	for _, e := range entries {
		table.Append([]string{e.Text, e.Value})
	}

	table.Render()
	return buf.String()
}

func (g *Generator) generateMetricsTable(detail drilldown.Detail) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"CATEGORY", "METRIC", "VALUE", "GOAL", "STATUS", "TREND"})

	for _, section := range detail.Sections {
		for _, c := range section.Cards {
			table.Append([]string{
				string(section.Category),
				string(c.Metric),
				c.Value.String(),
				c.GoalLabel,
				statusMark(c.Status),
				formatTrend(c.Trend),
			})
		}
	}

	table.Render()
	return buf.String()
}

func (g *Generator) generateYTDTable(snap ytd.Snapshot) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"METRIC", "YEAR TO DATE", "MONTHLY AVG", "BEST", "WORST", "CHANGE"})

	for _, t := range []ytd.Total{snap.Safety, snap.Overtime} {
		table.Append([]string{
			string(t.Metric),
			humanize.Ftoa(t.Total),
			formatNumber(t.Average),
			formatPoint(t.Best),
			formatPoint(t.Worst),
			formatChange(t.Trend),
		})
	}
	for _, a := range []ytd.Average{snap.DPM, snap.Chase, snap.ReceivingCPH, snap.ShippingCPH, snap.Turnover} {
		if len(a.Series) == 0 {
			continue
		}
		table.Append([]string{
			string(a.Metric),
			"",
			formatNumber(a.Average),
			formatPoint(a.Best),
			formatPoint(a.Worst),
			formatChange(a.Trend),
		})
	}

	table.SetFooter([]string{"", "", "", "", "MONTHS", fmt.Sprintf("%d/12", snap.Progress.MonthCount)})
	table.Render()
	return buf.String()
}

func (g *Generator) generateComparisonTable(res comparison.Result, names []string) string {
	var buf bytes.Buffer
	header := append([]string{"METRIC", "GOAL"}, names...)
	table := newTable(&buf, append(header, "WINNER"))

	for _, row := range res.Rows {
		line := []string{string(row.Metric), row.Goal}
		winner := ""
		for _, c := range row.Cells {
			line = append(line, c.Value.String()+" "+statusMark(c.Status))
			if c.Winner {
				winner = c.ShiftName
			}
		}
		table.Append(append(line, winner))
	}

	table.Render()
	return buf.String()
}

func (g *Generator) generateComparisonSummaryTable(res comparison.Result) string {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"SHIFT", "GOALS MET", "RATE", "WINS"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_CENTER,
	})

	for _, s := range res.Shifts {
		name := s.Name
		if s.Best {
			name += " *"
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d/%d", s.GoalsMet, s.Rated),
			fmt.Sprintf("%d%%", s.Percent),
			fmt.Sprintf("%d", s.Wins),
		})
	}

	table.Render()
	return buf.String()
}

func formatTrend(t *trend.Trend) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf(" %s %.1f%%", t.Arrow, math.Abs(t.Percent))
}

func formatHolder(h *ranking.Holder) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", h.Name, h.Value)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return humanize.Comma(int64(f))
	}
	return humanize.CommafWithDigits(f, 2)
}

func formatPoint(p *ytd.Point) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", formatNumber(p.Value), p.Month)
}

func formatChange(f float64) string {
	if f > 0 {
		return "+" + formatNumber(f)
	}
	return formatNumber(f)
}

func statusMark(s dataset.Status) string {
	switch s {
	case dataset.StatusGreen:
		return "✓"
	case dataset.StatusRed:
		return "✗"
	case dataset.StatusYellow:
		return "~"
	default:
		return ""
	}
}

func colorMark(c drilldown.Color) string {
	if c == drilldown.ColorGreen {
		return "✓"
	}
	return "✗"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
