package service

import (
	"fmt"

	"mortgage-agent/domain"
)

// RunParallelETF projects scenario 2: the full loan is amortized while the ETF
// grows with all dividends reinvested.
func RunParallelETF(p ScenarioParams) (domain.ScenarioResult, error) {
	installment, err := Installment(p.InterestRate, p.TermYears, p.LoanAmount)
	if err != nil {
		return domain.ScenarioResult{}, fmt.Errorf("parallel etf scenario: %w", err)
	}

	etf := p.ETFInitialValue
	records := make([]domain.SimulationResult, 0, p.TermYears)
	for year := 1; year <= p.TermYears; year++ {
		balance, interest, payment, err := amortizedLoanYear(p.LoanAmount, p.InterestRate, p.TermYears, year, installment)
		if err != nil {
			return domain.ScenarioResult{}, fmt.Errorf("parallel etf scenario, year %d: %w", year, err)
		}

		growth, dividend := etfYear(etf, p.ETFGrowthRate, p.DividendYield)
		etf += growth + dividend

		property := CompoundedValue(p.PropertyValue, p.PropertyGrowthRate, float64(year))
		records = append(records, domain.SimulationResult{
			Year:           year,
			PropertyValue:  property,
			LoanBalance:    balance,
			MonthlyPayment: payment,
			AnnualInterest: interest,
			ETFValue:       etf,
			ETFGrowth:      growth,
			GrossDividend:  dividend,
			NetEquity:      property - balance + etf,
		})
	}

	return withTotal(domain.ScenarioParallelETF, records), nil
}
