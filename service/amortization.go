package service

import (
	"fmt"
	"math"
)

// Installment returns the fixed monthly payment that repays principal over
// termYears at the given annual rate in percent.
func Installment(annualRate float64, termYears int, principal float64) (float64, error) {
	if principal <= 0 || termYears <= 0 {
		return 0, nil
	}

	months := float64(termYears * monthsPerYear)
	monthlyRate := annualRate / 100 / monthsPerYear
	if monthlyRate == 0 {
		return principal / months, nil
	}

	growth, err := compound(monthlyRate, months)
	if err != nil {
		return 0, err
	}
	denominator := growth - 1
	if denominator == 0 {
		return 0, fmt.Errorf("installment at %.4f%% over %d years: %w", annualRate, termYears, ErrCalculationOverflow)
	}

	payment := principal * monthlyRate * growth / denominator
	if math.IsInf(payment, 0) || math.IsNaN(payment) {
		return 0, fmt.Errorf("installment at %.4f%% over %d years: %w", annualRate, termYears, ErrCalculationOverflow)
	}
	return payment, nil
}

// RemainingBalance returns the outstanding principal after elapsedYears of
// regular installments. The result is never negative.
func RemainingBalance(principal, annualRate float64, termYears int, elapsedYears float64) (float64, error) {
	if principal <= 0 || termYears <= 0 {
		return 0, nil
	}
	if elapsedYears >= float64(termYears) {
		return 0, nil
	}
	if elapsedYears <= 0 {
		return principal, nil
	}

	months := float64(termYears * monthsPerYear)
	paid := elapsedYears * monthsPerYear
	monthlyRate := annualRate / 100 / monthsPerYear
	if monthlyRate == 0 {
		return math.Max(0, principal*(1-paid/months)), nil
	}

	total, err := compound(monthlyRate, months)
	if err != nil {
		return 0, err
	}
	elapsed, err := compound(monthlyRate, paid)
	if err != nil {
		return 0, err
	}
	denominator := total - 1
	if denominator == 0 {
		return 0, fmt.Errorf("remaining balance at %.4f%% over %d years: %w", annualRate, termYears, ErrCalculationOverflow)
	}

	balance := principal * (total - elapsed) / denominator
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return 0, fmt.Errorf("remaining balance at %.4f%% over %d years: %w", annualRate, termYears, ErrCalculationOverflow)
	}
	return math.Max(0, balance), nil
}

// CompoundedValue grows initial by annualGrowth percent for the given number
// of periods. Negative periods leave the value unchanged.
func CompoundedValue(initial, annualGrowth float64, periods float64) float64 {
	if periods < 0 {
		return initial
	}
	return initial * math.Pow(1+annualGrowth/100, periods)
}

func compound(rate, periods float64) (float64, error) {
	v := math.Pow(1+rate, periods)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("(1+%g)^%g: %w", rate, periods, ErrCalculationOverflow)
	}
	return v, nil
}
