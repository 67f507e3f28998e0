package domain

import "time"

// ScenarioKind identifies one of the financing strategies.
type ScenarioKind int

const (
	// ScenarioExtraPayment reduces the loan with a one-time own contribution.
	ScenarioExtraPayment ScenarioKind = 1
	// ScenarioParallelETF takes the full loan and grows an ETF alongside it.
	ScenarioParallelETF ScenarioKind = 2
	// ScenarioDividendPaydown diverts taxed ETF dividends to the loan until it is repaid.
	ScenarioDividendPaydown ScenarioKind = 3
)

// AllScenarios lists every scenario in presentation order.
var AllScenarios = []ScenarioKind{
	ScenarioExtraPayment,
	ScenarioParallelETF,
	ScenarioDividendPaydown,
}

func (k ScenarioKind) Valid() bool {
	return k >= ScenarioExtraPayment && k <= ScenarioDividendPaydown
}

func (k ScenarioKind) String() string {
	switch k {
	case ScenarioExtraPayment:
		return "extra-payment"
	case ScenarioParallelETF:
		return "parallel-etf"
	case ScenarioDividendPaydown:
		return "dividend-paydown"
	}
	return "unknown"
}

// SimulationResult is the state of one scenario at the end of one reporting period.
type SimulationResult struct {
	Year           int
	PropertyValue  float64
	LoanBalance    float64
	MonthlyPayment float64
	AnnualInterest float64
	ETFValue       float64
	ETFGrowth      float64
	GrossDividend  float64
	DividendIncome float64
	NetEquity      float64

	// TotalInterest is only set on the final record of a run.
	TotalInterest *float64 `json:",omitempty"`
}

// ScenarioResult is the chronologically ordered output of one engine run.
type ScenarioResult struct {
	Scenario      ScenarioKind
	Records       []SimulationResult
	TotalInterest float64
}

// Final returns the last record, or false for an empty run.
func (r ScenarioResult) Final() (SimulationResult, bool) {
	if len(r.Records) == 0 {
		return SimulationResult{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// Clone returns a deep copy that shares no memory with r.
func (r ScenarioResult) Clone() ScenarioResult {
	out := r
	out.Records = make([]SimulationResult, len(r.Records))
	for i, rec := range r.Records {
		if rec.TotalInterest != nil {
			total := *rec.TotalInterest
			rec.TotalInterest = &total
		}
		out.Records[i] = rec
	}
	return out
}

// ProjectionInput carries the user supplied parameters of one projection run.
type ProjectionInput struct {
	PropertyValue          float64
	PropertyGrowthRate     float64
	OwnContribution        float64
	AdditionalContribution float64
	TermYears              int
	InterestRate           float64
	ETFInitialValue        float64
	ETFGrowthRateParallel  float64 // scenario 2
	ETFGrowthRatePaydown   float64 // scenario 3
	DividendYield          float64
	Scenarios              []ScenarioKind `json:",omitempty"`
}

// ScenarioOutcome is the result of one scenario inside a projection. Result is
// nil when the engine failed; Error explains why.
type ScenarioOutcome struct {
	Scenario ScenarioKind
	Name     string
	Result   *ScenarioResult `json:",omitempty"`
	Error    string          `json:",omitempty"`
}

func (o ScenarioOutcome) Failed() bool {
	return o.Result == nil
}

// RankedScenario is one entry of the final net equity ranking.
type RankedScenario struct {
	Scenario       ScenarioKind
	Name           string
	FinalNetEquity float64
	TotalInterest  float64
}

type Comparison struct {
	Best    ScenarioKind
	Ranking []RankedScenario
}

// ProjectionResult is one archived projection run.
type ProjectionResult struct {
	RunID       string
	CreatedAt   time.Time
	Input       ProjectionInput
	LoanAmount  float64
	Warnings    []string `json:",omitempty"`
	Scenarios   []ScenarioOutcome
	Comparison  *Comparison `json:",omitempty"`
	Explanation string      `json:",omitempty"`
}

// Clone returns a deep copy of p for archival or export.
func (p ProjectionResult) Clone() ProjectionResult {
	out := p
	out.Input.Scenarios = append([]ScenarioKind(nil), p.Input.Scenarios...)
	out.Warnings = append([]string(nil), p.Warnings...)
	out.Scenarios = make([]ScenarioOutcome, len(p.Scenarios))
	for i, o := range p.Scenarios {
		if o.Result != nil {
			res := o.Result.Clone()
			o.Result = &res
		}
		out.Scenarios[i] = o
	}
	if p.Comparison != nil {
		cmp := *p.Comparison
		cmp.Ranking = append([]RankedScenario(nil), p.Comparison.Ranking...)
		out.Comparison = &cmp
	}
	return out
}
