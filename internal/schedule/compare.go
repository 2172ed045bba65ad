package schedule

import (
	"fjacquet/creditcalc/internal/loan"

	"github.com/shopspring/decimal"
)

// Comparison sets the annuity and differential tables of the same loan side by side.
type Comparison struct {
	Annuity      Summary               `json:"annuity" yaml:"annuity"`
	Differential Summary               `json:"differential" yaml:"differential"`
	TotalPaidGap decimal.Decimal       `json:"total_paid_difference" yaml:"total_paid_difference"`
	Cheaper      loan.AmortizationType `json:"cheaper,omitempty" yaml:"cheaper,omitempty"`
}

// Compare builds both tables and reports which one costs less in total.
// Cheaper is empty when both cost the same.
func Compare(principal, annualRatePercent float64, months int) (*Comparison, error) {
	annuity, err := Annuity(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}
	differential, err := Differential(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}

	gap := annuity.Summary.TotalPaid.Sub(differential.Summary.TotalPaid)
	c := &Comparison{
		Annuity:      annuity.Summary,
		Differential: differential.Summary,
		TotalPaidGap: gap.Abs(),
	}
	switch gap.Sign() {
	case 1:
		c.Cheaper = loan.Differential
	case -1:
		c.Cheaper = loan.Annuity
	}
	return c, nil
}
