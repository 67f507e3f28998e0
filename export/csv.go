package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"mortgage-agent/domain"
)

var csvHeader = []string{
	"Scenario", "Year", "PropertyValue", "LoanBalance", "MonthlyPayment", "AnnualInterest",
	"ETFValue", "ETFGrowth", "GrossDividend", "DividendIncome", "NetEquity",
}

// WriteCSV writes one row per period per successful scenario, followed by a
// "Total" row per scenario carrying its cumulative interest. Fields are
// separated by semicolons and rounded to whole units.
func WriteCSV(w io.Writer, outcomes []domain.ScenarioOutcome) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		for _, r := range o.Result.Records {
			row := []string{
				o.Name,
				strconv.Itoa(r.Year),
				whole(r.PropertyValue),
				whole(r.LoanBalance),
				whole(r.MonthlyPayment),
				whole(r.AnnualInterest),
				whole(r.ETFValue),
				whole(r.ETFGrowth),
				whole(r.GrossDividend),
				whole(r.DividendIncome),
				whole(r.NetEquity),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write %s year %d: %w", o.Name, r.Year, err)
			}
		}

		total := make([]string, len(csvHeader))
		total[0] = o.Name
		total[1] = "Total"
		total[5] = whole(o.Result.TotalInterest)
		if err := cw.Write(total); err != nil {
			return fmt.Errorf("write %s total: %w", o.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
