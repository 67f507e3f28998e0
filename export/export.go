// Package export renders projection results as delimited files and text tables.
package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"mortgage-agent/domain"
)

// View selects which records of a scenario are rendered.
type View string

const (
	ViewFinal      View = "final"
	ViewMilestones View = "milestones"
	ViewAll        View = "all"
)

var milestoneYears = []int{1, 5, 10, 20}

func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewAll:
		return ViewAll, nil
	case ViewFinal:
		return ViewFinal, nil
	case ViewMilestones:
		return ViewMilestones, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// SelectRecords returns the records of records that belong to view, in
// chronological order. Milestones are years 1, 5, 10, 20, the term and the
// last record, when present.
func SelectRecords(records []domain.SimulationResult, view View, termYears int) []domain.SimulationResult {
	if len(records) == 0 {
		return nil
	}
	switch view {
	case ViewFinal:
		return records[len(records)-1:]
	case ViewMilestones:
		wanted := map[int]bool{termYears: true, records[len(records)-1].Year: true}
		for _, y := range milestoneYears {
			wanted[y] = true
		}
		var out []domain.SimulationResult
		for _, r := range records {
			if wanted[r.Year] {
				out = append(out, r)
			}
		}
		return out
	}
	return records
}

// whole rounds v half away from zero to a whole unit.
func whole(v float64) string {
	return decimal.NewFromFloat(v).Round(0).String()
}

// grouped formats v as a whole number with space separated thousands.
func grouped(v float64) string {
	s := whole(v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	return sign + b.String()
}
