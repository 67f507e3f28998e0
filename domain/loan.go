package domain

type LoanInput struct {
	Amount       float64
	InterestRate float64 // annual, percent
	TermYears    int
}

// YearBalance is the outstanding principal after a number of whole years.
type YearBalance struct {
	Year    int
	Balance float64
}

type LoanResult struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
	Schedule       []YearBalance
}
