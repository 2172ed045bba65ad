package loan

import (
	"fmt"
	"math"

	"fjacquet/creditcalc/internal/loanerror"
)

// The functions below model an interest free loan split into equal whole
// installments. They are unrelated to the annuity formulas.

// FlatInstallments splits principal into periods whole payments. Every
// payment but the last equals regular; last absorbs the remainder.
func FlatInstallments(principal int64, periods int) (regular, last int64, err error) {
	if err := positive(input{"principal", float64(principal)}, input{"periods", float64(periods)}); err != nil {
		return 0, 0, err
	}
	regular = int64(math.Ceil(float64(principal) / float64(periods)))
	last = principal - int64(periods-1)*regular
	if last <= 0 {
		// e.g. 10 over 7 periods: six payments of 2 already exceed the loan
		return 0, 0, &loanerror.ValidationError{
			Kind:   loanerror.NonPositiveValue,
			Field:  "periods",
			Reason: fmt.Sprintf("%d cannot be split into %d whole installments: %d payments of %d already repay %d",
				principal, periods, periods-1, regular, principal-last),
		}
	}
	return regular, last, nil
}

// FlatPeriods returns how many payments of size payment repay principal
// without interest.
func FlatPeriods(principal, payment int64) (int, error) {
	if err := positive(input{"principal", float64(principal)}, input{"payment", float64(payment)}); err != nil {
		return 0, err
	}
	return int(math.Ceil(float64(principal) / float64(payment))), nil
}

// FlatResult is the outcome of a zero-interest calculation. Periods is set
// when the number of payments was solved for, Regular and Last otherwise.
type FlatResult struct {
	Periods int   `csv:"periods" json:"periods,omitempty" yaml:"periods,omitempty"`
	Regular int64 `csv:"payment" json:"payment,omitempty" yaml:"payment,omitempty"`
	Last    int64 `csv:"last_payment" json:"last_payment,omitempty" yaml:"last_payment,omitempty"`
}
