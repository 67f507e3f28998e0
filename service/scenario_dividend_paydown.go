package service

import (
	"fmt"
	"math"

	"mortgage-agent/domain"
)

// loanState is either repaying or paidOff. paidOff has no transitions, so a
// repaid loan can never become active again.
type loanState interface {
	balance() float64
}

type repaying struct {
	remaining float64
}

type paidOff struct{}

func (s repaying) balance() float64 { return s.remaining }
func (paidOff) balance() float64 { return 0 }

// reduce applies a principal reduction, capped at the remaining balance, and
// returns the next state together with the amount actually applied.
func (s repaying) reduce(amount float64) (loanState, float64) {
	applied := math.Min(math.Max(amount, 0), s.remaining)
	left := s.remaining - applied
	if left <= BalanceTolerance {
		return paidOff{}, applied
	}
	return repaying{remaining: left}, applied
}

// RunDividendPaydown projects scenario 3. The loan is amortized month by month
// and, at every year end, the ETF dividend net of withholding tax is applied to
// the remaining balance instead of being reinvested. Once the loan is repaid the
// ETF reinvests its full dividend for the rest of the term.
func RunDividendPaydown(p ScenarioParams) (domain.ScenarioResult, error) {
	records := make([]domain.SimulationResult, 0, p.TermYears)

	if p.LoanAmount <= BalanceTolerance {
		records = runETFOnly(p, 1, p.ETFInitialValue, records)
		return withTotal(domain.ScenarioDividendPaydown, records), nil
	}

	installment, err := Installment(p.InterestRate, p.TermYears, p.LoanAmount)
	if err != nil {
		return domain.ScenarioResult{}, fmt.Errorf("dividend paydown scenario: %w", err)
	}
	monthlyRate := p.InterestRate / 100 / monthsPerYear

	var state loanState = repaying{remaining: p.LoanAmount}
	etf := p.ETFInitialValue
	annualInterest := 0.0
	lastYear := 0

	totalMonths := p.TermYears * monthsPerYear
	for month := 1; month <= totalMonths; month++ {
		if loan, ok := state.(repaying); ok {
			interest := loan.remaining * monthlyRate
			annualInterest += interest
			state, _ = loan.reduce(installment - interest)
		}

		if month%monthsPerYear != 0 {
			continue
		}

		year := month / monthsPerYear
		growth, dividend := etfYear(etf, p.ETFGrowthRate, p.DividendYield)
		usedForLoan := 0.0

		switch loan := state.(type) {
		case repaying:
			net := dividend * (1 - p.DividendTaxRate)
			state, usedForLoan = loan.reduce(net)
			etf += growth
		case paidOff:
			etf += growth + dividend
		}

		payment := 0.0
		if _, ok := state.(repaying); ok {
			payment = installment
		}

		property := CompoundedValue(p.PropertyValue, p.PropertyGrowthRate, float64(year))
		records = append(records, domain.SimulationResult{
			Year:           year,
			PropertyValue:  property,
			LoanBalance:    state.balance(),
			MonthlyPayment: payment,
			AnnualInterest: annualInterest,
			ETFValue:       etf,
			ETFGrowth:      growth,
			GrossDividend:  dividend,
			DividendIncome: usedForLoan,
			NetEquity:      property - state.balance() + etf,
		})
		annualInterest = 0
		lastYear = year

		if _, done := state.(paidOff); done {
			break
		}
	}

	if lastYear < p.TermYears {
		records = runETFOnly(p, lastYear+1, etf, records)
	}

	return withTotal(domain.ScenarioDividendPaydown, records), nil
}
