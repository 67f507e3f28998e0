package service

import (
	"math"

	"mortgage-agent/domain"
)

type ReinvestmentService struct{}

func NewReinvestmentService() *ReinvestmentService {
	return &ReinvestmentService{}
}

// Compare projects one ETF position under every share in ReinvestmentShares.
// Each strategy compounds on its own start value; the dividend share that is
// not reinvested is withdrawn.
func (s *ReinvestmentService) Compare(
	input domain.ReinvestmentInput,
) (domain.ReinvestmentResult, error) {

	for _, v := range []float64{input.InitialSum, input.GrowthRate, input.DividendYield} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.ReinvestmentResult{}, invalid("input", "numbers must be finite")
		}
	}
	if input.InitialSum < 0 {
		return domain.ReinvestmentResult{}, invalid("InitialSum", "must not be negative")
	}
	if input.PeriodYears <= 0 {
		return domain.ReinvestmentResult{}, invalid("PeriodYears", "must be a positive whole number of years")
	}
	if input.PeriodYears > MaxTermYears {
		return domain.ReinvestmentResult{}, invalid("PeriodYears", "exceeds the maximum of %d years", MaxTermYears)
	}
	if input.GrowthRate < MinGrowthRate {
		return domain.ReinvestmentResult{}, invalid("GrowthRate", "must be at least %.0f%%", MinGrowthRate)
	}
	if input.DividendYield < 0 {
		return domain.ReinvestmentResult{}, invalid("DividendYield", "must not be negative")
	}

	result := domain.ReinvestmentResult{InstrumentName: input.InstrumentName}
	for _, share := range ReinvestmentShares {
		strategy := projectReinvestment(input, share)
		if share == 100 {
			result.CumulativeGrossDividend = strategy.CumulativeGrossDividend
		}
		result.Strategies = append(result.Strategies, strategy)
	}
	return result, nil
}

func projectReinvestment(input domain.ReinvestmentInput, sharePercent float64) domain.ReinvestmentStrategy {
	share := sharePercent / 100
	value := input.InitialSum
	cumulative := 0.0
	grossTotal := 0.0

	years := make([]domain.ReinvestmentYear, 0, input.PeriodYears)
	for year := 1; year <= input.PeriodYears; year++ {
		growth, dividend := etfYear(value, input.GrowthRate, input.DividendYield)
		reinvested := dividend * share
		withdrawn := dividend - reinvested
		cumulative += withdrawn
		grossTotal += dividend
		gain := growth + reinvested

		years = append(years, domain.ReinvestmentYear{
			Year:                year,
			StartValue:          value,
			CapitalGrowth:       growth,
			GrossDividend:       dividend,
			Reinvested:          reinvested,
			Withdrawn:           withdrawn,
			CumulativeWithdrawn: cumulative,
			Gain:                gain,
			EndValue:            value + gain,
		})
		value += gain
	}

	return domain.ReinvestmentStrategy{
		SharePercent:            sharePercent,
		Years:                   years,
		FinalValue:              value,
		CumulativeGrossDividend: grossTotal,
	}
}
