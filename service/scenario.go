package service

import (
	"mortgage-agent/domain"
)

// ScenarioParams is the parameter set shared by all scenario engines.
type ScenarioParams struct {
	PropertyValue          float64
	PropertyGrowthRate     float64
	LoanAmount             float64 // full loan before any extra payment
	AdditionalContribution float64
	TermYears              int
	InterestRate           float64
	ETFInitialValue        float64
	ETFGrowthRate          float64
	DividendYield          float64
	DividendTaxRate        float64 // fraction, e.g. 0.22
}

// etfYear returns the capital growth and gross dividend of one year. Both act
// on the same start value.
func etfYear(value, growthRate, dividendYield float64) (growth, dividend float64) {
	return value * growthRate / 100, value * dividendYield / 100
}

// withTotal stamps the summed annual interest on the final record.
func withTotal(kind domain.ScenarioKind, records []domain.SimulationResult) domain.ScenarioResult {
	var total float64
	for _, r := range records {
		total += r.AnnualInterest
	}
	if len(records) > 0 {
		t := total
		records[len(records)-1].TotalInterest = &t
	}
	return domain.ScenarioResult{
		Scenario:      kind,
		Records:       records,
		TotalInterest: total,
	}
}

// amortizedLoanYear reports the year-end balance, averaged annual interest and
// installment of a fixed-rate loan. Used by scenarios 1 and 2.
func amortizedLoanYear(principal, rate float64, term, year int, installment float64) (balance, interest, payment float64, err error) {
	begin, err := RemainingBalance(principal, rate, term, float64(year-1))
	if err != nil {
		return 0, 0, 0, err
	}
	end, err := RemainingBalance(principal, rate, term, float64(year))
	if err != nil {
		return 0, 0, 0, err
	}
	interest = (begin + end) / 2 * rate / 100
	if begin > BalanceTolerance {
		payment = installment
	}
	return end, interest, payment, nil
}

// runETFOnly projects a fully reinvested ETF with no loan for the given years.
func runETFOnly(p ScenarioParams, fromYear int, value float64, records []domain.SimulationResult) []domain.SimulationResult {
	for year := fromYear; year <= p.TermYears; year++ {
		growth, dividend := etfYear(value, p.ETFGrowthRate, p.DividendYield)
		value += growth + dividend
		property := CompoundedValue(p.PropertyValue, p.PropertyGrowthRate, float64(year))
		records = append(records, domain.SimulationResult{
			Year:          year,
			PropertyValue: property,
			ETFValue:      value,
			ETFGrowth:     growth,
			GrossDividend: dividend,
			NetEquity:     property + value,
		})
	}
	return records
}
