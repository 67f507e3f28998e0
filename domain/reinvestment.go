package domain

type ReinvestmentInput struct {
	InstrumentName string
	InitialSum     float64
	PeriodYears    int
	GrowthRate     float64 // percent per year
	DividendYield  float64 // percent per year
}

type ReinvestmentYear struct {
	Year                int
	StartValue          float64
	CapitalGrowth       float64
	GrossDividend       float64
	Reinvested          float64
	Withdrawn           float64
	CumulativeWithdrawn float64
	Gain                float64
	EndValue            float64
}

// ReinvestmentStrategy is one ETF position reinvesting a fixed share of its dividends.
type ReinvestmentStrategy struct {
	SharePercent            float64
	Years                   []ReinvestmentYear
	FinalValue              float64
	CumulativeGrossDividend float64
}

type ReinvestmentResult struct {
	InstrumentName string

	// CumulativeGrossDividend is the total dividend generated by the fully reinvested position.
	CumulativeGrossDividend float64
	Strategies              []ReinvestmentStrategy
}
