package service

import (
	"testing"

	"mortgage-agent/domain"
)

func TestQuote_WithInterest(t *testing.T) {

	service := NewLoanService()

	input := domain.LoanInput{
		Amount:       100000,
		InterestRate: 6,
		TermYears:    30,
	}

	result, err := service.Quote(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 599.55 {
		t.Errorf("expected 599.55, got %.2f", result.MonthlyPayment)
	}
	if result.TotalInterest <= 0 {
		t.Errorf("expected interest > 0")
	}
	if len(result.Schedule) != 30 {
		t.Fatalf("expected 30 schedule entries, got %d", len(result.Schedule))
	}
	if result.Schedule[29].Balance != 0 {
		t.Errorf("expected zero balance at term, got %v", result.Schedule[29].Balance)
	}
}

func TestQuote_ZeroInterest(t *testing.T) {

	service := NewLoanService()

	input := domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermYears:    1,
	}

	result, err := service.Quote(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := 100.0
	if result.MonthlyPayment != expected {
		t.Errorf("expected %.2f, got %.2f", expected, result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Errorf("expected no interest, got %.2f", result.TotalInterest)
	}
}

func TestQuote_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input domain.LoanInput
		field string
	}{
		{"amount", domain.LoanInput{Amount: 0, InterestRate: 10, TermYears: 12}, "Amount"},
		{"rate", domain.LoanInput{Amount: 1000, InterestRate: -1, TermYears: 12}, "InterestRate"},
		{"term", domain.LoanInput{Amount: 1000, InterestRate: 10, TermYears: 0}, "TermYears"},
		{"long term", domain.LoanInput{Amount: 1000, InterestRate: 10, TermYears: 51}, "TermYears"},
	}

	service := NewLoanService()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Quote(tc.input)
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, ve.Field)
			}
		})
	}
}
