package export

import (
	"fmt"
	"io"
	"strings"

	"mortgage-agent/domain"
)

const rowFormat = "%-5v %14v %14v %10v %12v %14v %12v %14v\n"

// WriteTable renders the selected records of every scenario as a fixed width
// text table. Failed scenarios are listed with their error.
func WriteTable(w io.Writer, result domain.ProjectionResult, view View) error {
	var b strings.Builder

	in := result.Input
	fmt.Fprintf(&b, "--- Projection %s ---\n", result.RunID)
	fmt.Fprintf(&b, "Property value: %s, growth %.2f %%\n", grouped(in.PropertyValue), in.PropertyGrowthRate)
	fmt.Fprintf(&b, "Loan: %s at %.2f %% over %d years\n", grouped(result.LoanAmount), in.InterestRate, in.TermYears)
	fmt.Fprintf(&b, "ETF start value: %s, dividend yield %.2f %%\n", grouped(in.ETFInitialValue), in.DividendYield)
	for _, warning := range result.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}

	for _, o := range result.Scenarios {
		fmt.Fprintf(&b, "\n[%d] %s\n", int(o.Scenario), o.Name)
		if o.Failed() {
			fmt.Fprintf(&b, "failed: %s\n", o.Error)
			continue
		}

		header := fmt.Sprintf(rowFormat,
			"Year", "Property", "Loan", "Payment", "Interest", "ETF", "Div.Loan", "Net Equity")
		b.WriteString(header)
		b.WriteString(strings.Repeat("-", len(strings.TrimRight(header, "\n"))) + "\n")

		for _, r := range SelectRecords(o.Result.Records, view, in.TermYears) {
			fmt.Fprintf(&b, rowFormat,
				r.Year,
				grouped(r.PropertyValue),
				grouped(r.LoanBalance),
				grouped(r.MonthlyPayment),
				grouped(r.AnnualInterest),
				grouped(r.ETFValue),
				grouped(r.DividendIncome),
				grouped(r.NetEquity),
			)
		}
		fmt.Fprintf(&b, "Total interest: %s\n", grouped(o.Result.TotalInterest))
	}

	if result.Explanation != "" {
		fmt.Fprintf(&b, "\n%s\n", result.Explanation)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
