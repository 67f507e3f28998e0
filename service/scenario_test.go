package service

import (
	"errors"
	"math"
	"testing"

	"mortgage-agent/domain"
)

func baseParams() ScenarioParams {
	return ScenarioParams{
		PropertyValue:          300000,
		PropertyGrowthRate:     2,
		LoanAmount:             240000,
		AdditionalContribution: 40000,
		TermYears:              25,
		InterestRate:           4,
		ETFInitialValue:        40000,
		ETFGrowthRate:          6,
		DividendYield:          3,
		DividendTaxRate:        0.22,
	}
}

var engines = map[string]Engine{
	"extra payment":    RunExtraPayment,
	"parallel etf":     RunParallelETF,
	"dividend paydown": RunDividendPaydown,
}

func checkSequence(t *testing.T, res domain.ScenarioResult, term int) {
	t.Helper()

	if len(res.Records) != term {
		t.Fatalf("expected %d records, got %d", term, len(res.Records))
	}

	prevBalance := math.Inf(1)
	sum := 0.0
	for i, r := range res.Records {
		if r.Year != i+1 {
			t.Errorf("record %d: expected year %d, got %d", i, i+1, r.Year)
		}
		if r.LoanBalance < 0 {
			t.Errorf("year %d: negative balance %v", r.Year, r.LoanBalance)
		}
		if r.LoanBalance > prevBalance {
			t.Errorf("year %d: balance increased from %v to %v", r.Year, prevBalance, r.LoanBalance)
		}
		if i < len(res.Records)-1 && r.TotalInterest != nil {
			t.Errorf("year %d: total interest set on a non-final record", r.Year)
		}
		prevBalance = r.LoanBalance
		sum += r.AnnualInterest
	}

	final := res.Records[len(res.Records)-1]
	if final.TotalInterest == nil {
		t.Fatalf("expected total interest on final record")
	}
	if *final.TotalInterest != sum {
		t.Errorf("expected total interest %v, got %v", sum, *final.TotalInterest)
	}
	if res.TotalInterest != sum {
		t.Errorf("expected result total interest %v, got %v", sum, res.TotalInterest)
	}
}

func TestScenarios_SequenceInvariants(t *testing.T) {
	for name, run := range engines {
		t.Run(name, func(t *testing.T) {
			p := baseParams()
			res, err := run(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkSequence(t, res, p.TermYears)
		})
	}
}

func TestScenarios_Overflow(t *testing.T) {
	for name, run := range engines {
		t.Run(name, func(t *testing.T) {
			p := baseParams()
			p.InterestRate = 1_000_000
			p.TermYears = 50
			_, err := run(p)
			if !errors.Is(err, ErrCalculationOverflow) {
				t.Errorf("expected ErrCalculationOverflow, got %v", err)
			}
		})
	}
}

func TestExtraPayment_NoLoan(t *testing.T) {

	p := baseParams()
	p.LoanAmount = 0
	p.AdditionalContribution = 25000

	res, err := RunExtraPayment(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range res.Records {
		if r.LoanBalance != 0 || r.MonthlyPayment != 0 || r.AnnualInterest != 0 {
			t.Errorf("year %d: expected no loan activity, got %+v", r.Year, r)
		}
		if r.NetEquity != r.PropertyValue {
			t.Errorf("year %d: expected net equity %v, got %v", r.Year, r.PropertyValue, r.NetEquity)
		}
		if r.ETFValue != 0 || r.GrossDividend != 0 {
			t.Errorf("year %d: expected no etf component", r.Year)
		}
	}
}

func TestExtraPayment_ReducesPrincipal(t *testing.T) {

	p := baseParams()
	res, err := RunExtraPayment(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedInstallment, _ := Installment(p.InterestRate, p.TermYears, 200000)
	expectedBalance, _ := RemainingBalance(200000, p.InterestRate, p.TermYears, 1)

	first := res.Records[0]
	if first.MonthlyPayment != expectedInstallment {
		t.Errorf("expected installment %v, got %v", expectedInstallment, first.MonthlyPayment)
	}
	if first.LoanBalance != expectedBalance {
		t.Errorf("expected balance %v, got %v", expectedBalance, first.LoanBalance)
	}
	expectedInterest := (200000 + expectedBalance) / 2 * p.InterestRate / 100
	if !almostEqual(first.AnnualInterest, expectedInterest) {
		t.Errorf("expected interest %v, got %v", expectedInterest, first.AnnualInterest)
	}
	if !almostEqual(first.PropertyValue, 306000) {
		t.Errorf("expected property value 306000, got %v", first.PropertyValue)
	}
	if final, _ := res.Final(); final.LoanBalance != 0 {
		t.Errorf("expected loan repaid at term, got %v", final.LoanBalance)
	}
}

func TestExtraPayment_ContributionExceedsLoan(t *testing.T) {

	p := baseParams()
	p.AdditionalContribution = p.LoanAmount + 1

	res, err := RunExtraPayment(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalInterest != 0 {
		t.Errorf("expected no interest, got %v", res.TotalInterest)
	}
	for _, r := range res.Records {
		if r.MonthlyPayment != 0 {
			t.Errorf("year %d: expected no payment, got %v", r.Year, r.MonthlyPayment)
		}
	}
}

func TestParallelETF_NoLoanCompounding(t *testing.T) {

	p := baseParams()
	p.LoanAmount = 0
	p.ETFInitialValue = 100000
	p.ETFGrowthRate = 7
	p.DividendYield = 2

	res, err := RunParallelETF(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(res.Records[0].ETFValue, 109000) {
		t.Errorf("year 1: expected 109000, got %v", res.Records[0].ETFValue)
	}
	if !almostEqual(res.Records[1].ETFValue, 118810) {
		t.Errorf("year 2: expected 118810, got %v", res.Records[1].ETFValue)
	}
	if !almostEqual(res.Records[0].ETFGrowth, 7000) || !almostEqual(res.Records[0].GrossDividend, 2000) {
		t.Errorf("year 1: unexpected growth/dividend %v/%v", res.Records[0].ETFGrowth, res.Records[0].GrossDividend)
	}
	for _, r := range res.Records {
		if r.DividendIncome != 0 {
			t.Errorf("year %d: dividends must not be used for the loan", r.Year)
		}
		if !almostEqual(r.NetEquity, r.PropertyValue+r.ETFValue) {
			t.Errorf("year %d: unexpected net equity %v", r.Year, r.NetEquity)
		}
	}
}

func TestParallelETF_FullLoan(t *testing.T) {

	p := baseParams()
	res, err := RunParallelETF(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected, _ := Installment(p.InterestRate, p.TermYears, p.LoanAmount)
	if res.Records[0].MonthlyPayment != expected {
		t.Errorf("expected installment on the full loan %v, got %v", expected, res.Records[0].MonthlyPayment)
	}
	r := res.Records[3]
	if !almostEqual(r.NetEquity, r.PropertyValue-r.LoanBalance+r.ETFValue) {
		t.Errorf("unexpected net equity %v", r.NetEquity)
	}
}

func TestDividendPaydown_NoLoan(t *testing.T) {

	p := baseParams()
	p.LoanAmount = 0.005
	p.ETFInitialValue = 100000
	p.ETFGrowthRate = 7
	p.DividendYield = 2

	res, err := RunDividendPaydown(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkSequence(t, res, p.TermYears)

	for _, r := range res.Records {
		if r.LoanBalance != 0 || r.MonthlyPayment != 0 || r.DividendIncome != 0 {
			t.Errorf("year %d: expected no loan activity, got %+v", r.Year, r)
		}
	}
	if res.TotalInterest != 0 {
		t.Errorf("expected total interest 0, got %v", res.TotalInterest)
	}
	if !almostEqual(res.Records[1].ETFValue, 118810) {
		t.Errorf("year 2: expected 118810, got %v", res.Records[1].ETFValue)
	}
}

func TestDividendPaydown_FirstYear(t *testing.T) {

	p := ScenarioParams{
		PropertyValue:   100000,
		LoanAmount:      12000,
		TermYears:       10,
		ETFInitialValue: 10000,
		ETFGrowthRate:   10,
		DividendYield:   10,
		DividendTaxRate: 0.22,
	}

	res, err := RunDividendPaydown(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := res.Records[0]
	// 12 installments of 100 plus the taxed dividend of 780.
	if !almostEqual(first.LoanBalance, 10020) {
		t.Errorf("expected balance 10020, got %v", first.LoanBalance)
	}
	if !almostEqual(first.DividendIncome, 780) {
		t.Errorf("expected dividend income 780, got %v", first.DividendIncome)
	}
	if !almostEqual(first.ETFValue, 11000) {
		t.Errorf("expected etf value without the dividend, got %v", first.ETFValue)
	}
	if !almostEqual(first.GrossDividend, 1000) || !almostEqual(first.ETFGrowth, 1000) {
		t.Errorf("unexpected growth/dividend %v/%v", first.ETFGrowth, first.GrossDividend)
	}
	if !almostEqual(first.MonthlyPayment, 100) {
		t.Errorf("expected installment 100, got %v", first.MonthlyPayment)
	}
	if first.AnnualInterest != 0 {
		t.Errorf("expected no interest at 0%%, got %v", first.AnnualInterest)
	}
	if !almostEqual(first.NetEquity, 100000-10020+11000) {
		t.Errorf("unexpected net equity %v", first.NetEquity)
	}
}

func TestDividendPaydown_TaxRateIsApplied(t *testing.T) {

	p := ScenarioParams{
		PropertyValue:   100000,
		LoanAmount:      12000,
		TermYears:       10,
		ETFInitialValue: 10000,
		ETFGrowthRate:   10,
		DividendYield:   10,
		DividendTaxRate: 0.5,
	}

	res, err := RunDividendPaydown(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(res.Records[0].DividendIncome, 500) {
		t.Errorf("expected dividend income 500, got %v", res.Records[0].DividendIncome)
	}
}

func TestDividendPaydown_PaidOffByDividend(t *testing.T) {

	p := ScenarioParams{
		PropertyValue:   100000,
		LoanAmount:      1000,
		TermYears:       10,
		ETFInitialValue: 100000,
		ETFGrowthRate:   5,
		DividendYield:   2,
		DividendTaxRate: 0.22,
	}

	res, err := RunDividendPaydown(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkSequence(t, res, p.TermYears)

	first := res.Records[0]
	if first.LoanBalance != 0 {
		t.Fatalf("expected loan repaid in year 1, got %v", first.LoanBalance)
	}
	if math.Abs(first.DividendIncome-900) > 0.01 {
		t.Errorf("expected the remaining 900 to be paid from dividends, got %v", first.DividendIncome)
	}
	if first.MonthlyPayment != 0 {
		t.Errorf("expected no installment once repaid, got %v", first.MonthlyPayment)
	}
	if !almostEqual(first.ETFValue, 105000) {
		t.Errorf("expected only capital growth in the payoff year, got %v", first.ETFValue)
	}

	second := res.Records[1]
	if !almostEqual(second.ETFValue, 105000*1.07) {
		t.Errorf("expected full reinvestment after payoff, got %v", second.ETFValue)
	}
}

func TestDividendPaydown_PayoffIsPermanent(t *testing.T) {

	p := ScenarioParams{
		PropertyValue:      250000,
		PropertyGrowthRate: 1.5,
		LoanAmount:         100000,
		TermYears:          30,
		InterestRate:       3,
		ETFInitialValue:    200000,
		ETFGrowthRate:      5,
		DividendYield:      4,
		DividendTaxRate:    0.22,
	}

	res, err := RunDividendPaydown(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkSequence(t, res, p.TermYears)

	payoff := -1
	for i, r := range res.Records {
		if r.LoanBalance == 0 {
			payoff = i
			break
		}
	}
	if payoff < 0 || payoff >= p.TermYears-1 {
		t.Fatalf("expected early payoff, got index %d", payoff)
	}

	for _, r := range res.Records[payoff:] {
		if r.LoanBalance != 0 {
			t.Errorf("year %d: balance reappeared: %v", r.Year, r.LoanBalance)
		}
		if r.MonthlyPayment != 0 {
			t.Errorf("year %d: expected no installment after payoff", r.Year)
		}
	}
	for _, r := range res.Records[payoff+1:] {
		if r.DividendIncome != 0 {
			t.Errorf("year %d: expected no dividend income after payoff", r.Year)
		}
		if r.AnnualInterest != 0 {
			t.Errorf("year %d: expected no interest after payoff", r.Year)
		}
	}
	for _, r := range res.Records[:payoff] {
		if r.DividendIncome <= 0 {
			t.Errorf("year %d: expected dividend income while repaying", r.Year)
		}
	}
}

func TestDividendPaydown_RepaysFasterThanParallelETF(t *testing.T) {

	p := baseParams()
	paydown, err := RunDividendPaydown(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parallel, err := RunParallelETF(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paydown.TotalInterest >= parallel.TotalInterest {
		t.Errorf("expected less interest with dividend paydown: %v >= %v",
			paydown.TotalInterest, parallel.TotalInterest)
	}
}
