package service

import (
	"fmt"
	"math"

	"mortgage-agent/domain"
)

// RunExtraPayment projects scenario 1: the loan is reduced up front by the
// additional own contribution and amortized over the full term. No ETF is held.
func RunExtraPayment(p ScenarioParams) (domain.ScenarioResult, error) {
	principal := math.Max(0, p.LoanAmount-p.AdditionalContribution)

	installment, err := Installment(p.InterestRate, p.TermYears, principal)
	if err != nil {
		return domain.ScenarioResult{}, fmt.Errorf("extra payment scenario: %w", err)
	}

	records := make([]domain.SimulationResult, 0, p.TermYears)
	for year := 1; year <= p.TermYears; year++ {
		balance, interest, payment, err := amortizedLoanYear(principal, p.InterestRate, p.TermYears, year, installment)
		if err != nil {
			return domain.ScenarioResult{}, fmt.Errorf("extra payment scenario, year %d: %w", year, err)
		}
		property := CompoundedValue(p.PropertyValue, p.PropertyGrowthRate, float64(year))
		records = append(records, domain.SimulationResult{
			Year:           year,
			PropertyValue:  property,
			LoanBalance:    balance,
			MonthlyPayment: payment,
			AnnualInterest: interest,
			NetEquity:      property - balance,
		})
	}

	return withTotal(domain.ScenarioExtraPayment, records), nil
}
