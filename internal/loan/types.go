// Package loan implements the repayment math: solving an annuity loan for
// its principal, payment or number of periods, and building differential
// payment schedules.
package loan

import (
	"fmt"
	"strings"

	"fjacquet/creditcalc/internal/loanerror"
)

// AmortizationType selects the repayment model.
type AmortizationType string

const (
	// Annuity is a fixed payment for the life of the loan.
	Annuity AmortizationType = "annuity"
	// Differential is a constant principal part plus interest on the declining balance.
	Differential AmortizationType = "diff"
)

// ParseAmortizationType converts a user supplied value into an AmortizationType.
func ParseAmortizationType(s string) (AmortizationType, error) {
	switch AmortizationType(strings.ToLower(strings.TrimSpace(s))) {
	case Annuity:
		return Annuity, nil
	case Differential:
		return Differential, nil
	case "":
		return "", loanerror.Missing("type", "")
	}
	return "", &loanerror.ValidationError{
		Kind:   loanerror.MissingRequiredField,
		Field:  "type",
		Reason: fmt.Sprintf("unknown amortization type %q, expected %q or %q", s, Annuity, Differential),
	}
}

// Parameters is the raw set of inputs for one calculation. Absent values are nil.
type Parameters struct {
	Type                      AmortizationType
	AnnualInterestRatePercent *float64
	Principal                 *float64
	Payment                   *float64
	Periods                   *int
}

// MonthlyRate converts a nominal annual percentage into a monthly fraction.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / 12 / 100
}

// PeriodsResult is the outcome of solving for the number of periods.
type PeriodsResult struct {
	Periods     int   `json:"periods" yaml:"periods"`
	Overpayment int64 `json:"overpayment" yaml:"overpayment"`
}

// PaymentResult is the outcome of solving for the annuity payment.
type PaymentResult struct {
	Payment     int64 `json:"payment" yaml:"payment"`
	Overpayment int64 `json:"overpayment" yaml:"overpayment"`
}

// PrincipalResult is the outcome of solving for the loan principal.
type PrincipalResult struct {
	Principal   int64 `json:"principal" yaml:"principal"`
	Overpayment int64 `json:"overpayment" yaml:"overpayment"`
}

// DifferentialResult holds every monthly payment of a differential loan, in order.
type DifferentialResult struct {
	Payments         []int64 `json:"payments" yaml:"payments"`
	TotalOverpayment int64   `json:"overpayment" yaml:"overpayment"`
}

// Result is the union of the calculator outputs. Exactly one field is set,
// matching the Request variant that produced it.
type Result struct {
	Solved       SolveFor            `json:"solved" yaml:"solved"`
	Periods      *PeriodsResult      `json:"periods_result,omitempty" yaml:"periods_result,omitempty"`
	Payment      *PaymentResult      `json:"payment_result,omitempty" yaml:"payment_result,omitempty"`
	Principal    *PrincipalResult    `json:"principal_result,omitempty" yaml:"principal_result,omitempty"`
	Differential *DifferentialResult `json:"differential_result,omitempty" yaml:"differential_result,omitempty"`
}

// Overpayment returns the overpayment of whichever result is set.
func (r Result) Overpayment() int64 {
	switch {
	case r.Periods != nil:
		return r.Periods.Overpayment
	case r.Payment != nil:
		return r.Payment.Overpayment
	case r.Principal != nil:
		return r.Principal.Overpayment
	case r.Differential != nil:
		return r.Differential.TotalOverpayment
	}
	return 0
}
