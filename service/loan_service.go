package service

import (
	"math"

	"mortgage-agent/domain"
)

// roundTo2Decimals rounds a float64 to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanService struct{}

// NewLoanService creates a new LoanService.
func NewLoanService() *LoanService {
	return &LoanService{}
}

// Quote calculates the installment, totals and year-end balance schedule of a
// fixed-rate loan.
func (s *LoanService) Quote(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if math.IsNaN(input.Amount) || math.IsNaN(input.InterestRate) {
		return domain.LoanResult{}, invalid("input", "numbers must be finite")
	}
	if input.Amount <= 0 {
		return domain.LoanResult{}, invalid("Amount", "must be positive")
	}
	if input.Amount > MaxPropertyValue {
		return domain.LoanResult{}, invalid("Amount", "exceeds the maximum of %.2f", MaxPropertyValue)
	}
	if err := validateRate(input.InterestRate); err != nil {
		return domain.LoanResult{}, err
	}
	if err := validateTerm(input.TermYears); err != nil {
		return domain.LoanResult{}, err
	}

	installment, err := Installment(input.InterestRate, input.TermYears, input.Amount)
	if err != nil {
		return domain.LoanResult{}, err
	}

	schedule := make([]domain.YearBalance, 0, input.TermYears)
	for year := 1; year <= input.TermYears; year++ {
		balance, err := RemainingBalance(input.Amount, input.InterestRate, input.TermYears, float64(year))
		if err != nil {
			return domain.LoanResult{}, err
		}
		schedule = append(schedule, domain.YearBalance{
			Year:    year,
			Balance: roundTo2Decimals(balance),
		})
	}

	total := installment * float64(input.TermYears*monthsPerYear)
	interest := total - input.Amount

	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(installment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(interest),
		Schedule:       schedule,
	}, nil
}

func validateRate(rate float64) error {
	if rate < 0 {
		return invalid("InterestRate", "must not be negative")
	}
	if rate > MaxInterestRate {
		return invalid("InterestRate", "exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	return nil
}

func validateTerm(years int) error {
	if years < MinTermYears {
		return invalid("TermYears", "must be a positive whole number of years")
	}
	if years > MaxTermYears {
		return invalid("TermYears", "exceeds the maximum of %d years", MaxTermYears)
	}
	return nil
}
