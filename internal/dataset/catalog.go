package dataset

// CategoryName groups metrics on the dashboard.
type CategoryName string

const (
	Quality  CategoryName = "Quality"
	Safety   CategoryName = "Safety"
	Cost     CategoryName = "Cost"
	Trending CategoryName = "Trending"
)

// MetricName identifies a metric (a "subcategory" in the feed).
type MetricName string

const (
	DPM              MetricName = "DPM"
	DPMO             MetricName = "DPMO"
	ChasePercent     MetricName = "Chase %"
	SafetyMedical    MetricName = "Safety Medical"
	SafetyNonMedical MetricName = "Safety Non-Medical"
	Overtime         MetricName = "Overtime"
	TurnoverPercent  MetricName = "Turnover %"
	ReceivingCPH     MetricName = "Receiving CPH"
	ShippingCPH      MetricName = "Shipping CPH"
	FillRatePercent  MetricName = "Fill Rate %"
)

// MetricInfo is the fixed knowledge the dashboard has about a metric.
type MetricInfo struct {
	Name          MetricName   `json:"name"`
	Category      CategoryName `json:"category"`
	LowerIsBetter bool         `json:"lower_is_better"`
	Goal          string       `json:"goal,omitempty"`
}

var catalog = map[MetricName]MetricInfo{
	DPM:              {Name: DPM, Category: Quality, LowerIsBetter: true, Goal: "< 1,500"},
	DPMO:             {Name: DPMO, Category: Quality, LowerIsBetter: true},
	ChasePercent:     {Name: ChasePercent, Category: Quality, LowerIsBetter: true, Goal: "< 3%"},
	SafetyMedical:    {Name: SafetyMedical, Category: Safety, LowerIsBetter: true, Goal: "= 0"},
	SafetyNonMedical: {Name: SafetyNonMedical, Category: Safety, LowerIsBetter: true, Goal: "= 0"},
	Overtime:         {Name: Overtime, Category: Cost, LowerIsBetter: true, Goal: "= 0"},
	TurnoverPercent:  {Name: TurnoverPercent, Category: Cost, LowerIsBetter: true, Goal: "< 10%"},
	ReceivingCPH:     {Name: ReceivingCPH, Category: Cost, Goal: "> 1,100"},
	ShippingCPH:      {Name: ShippingCPH, Category: Cost, Goal: "> 230"},
	FillRatePercent:  {Name: FillRatePercent, Category: Trending, Goal: "> 95%"},
}

// Lookup returns the catalog entry for a known metric.
func Lookup(name MetricName) (MetricInfo, bool) {
	info, ok := catalog[name]
	return info, ok
}

// LowerIsBetter reports the metric's polarity. Unknown metrics are treated
// as higher-is-better.
func (n MetricName) LowerIsBetter() bool {
	return catalog[n].LowerIsBetter
}

// Goal is the human-readable goal, empty when none is defined.
func (n MetricName) Goal() string {
	return catalog[n].Goal
}

// Category is the catalog category, empty for unknown metrics.
func (n MetricName) Category() CategoryName {
	return catalog[n].Category
}

// ShiftIDs are the known shift codes in dashboard order.
var ShiftIDs = []string{
	"dry-1st", "dry-2nd", "dry-4th", "dry-5th",
	"per-1st", "per-2nd", "per-4th", "per-5th",
}

// GoalSummaryMetrics is the fixed metric list of the goal achievement
// breakdown.
var GoalSummaryMetrics = []MetricName{
	SafetyMedical, SafetyNonMedical, DPM, ChasePercent,
	Overtime, ReceivingCPH, ShippingCPH, DPMO, TurnoverPercent,
}

// KeyMetrics are shown on shift summary cards, in this order.
var KeyMetrics = []MetricName{
	DPM, SafetyMedical, Overtime, ChasePercent, ReceivingCPH, ShippingCPH,
}
