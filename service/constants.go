package service

const (
	MaxPropertyValue = 1_000_000_000.0 // 1 billion
	MaxInterestRate  = 1000.0          // 1000% per year
	MaxTermYears     = 50
	MinTermYears     = 1
	MinGrowthRate    = -100.0

	// BalanceTolerance is the amount below which a loan balance counts as repaid.
	BalanceTolerance = 0.01

	monthsPerYear = 12

	// DefaultProcessingFee and DefaultDividendTaxRate apply when the service
	// is built without explicit ProjectionSettings.
	DefaultProcessingFee   = 500.0
	DefaultDividendTaxRate = 0.22
)

// ReinvestmentShares are the dividend shares compared by the reinvestment service, in percent.
var ReinvestmentShares = []float64{100, 75, 50, 25, 0}
