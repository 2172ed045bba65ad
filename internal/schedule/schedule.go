// Package schedule builds month-by-month repayment tables that split each
// payment into interest and principal. Amounts are kept in shopspring/decimal
// and rounded to cents.
package schedule

import (
	"math"

	"fjacquet/creditcalc/internal/loan"

	"github.com/shopspring/decimal"
)

// Entry is one month of a repayment table
type Entry struct {
	Month         int             `csv:"month" json:"month" yaml:"month"`
	Payment       decimal.Decimal `csv:"payment" json:"payment" yaml:"payment"`
	Interest      decimal.Decimal `csv:"interest" json:"interest" yaml:"interest"`
	PrincipalPart decimal.Decimal `csv:"principal_part" json:"principal_part" yaml:"principal_part"`
	Remaining     decimal.Decimal `csv:"remaining" json:"remaining" yaml:"remaining"`
}

// Summary totals a repayment table
type Summary struct {
	Type              loan.AmortizationType `csv:"type" json:"type" yaml:"type"`
	Principal         decimal.Decimal       `csv:"principal" json:"principal" yaml:"principal"`
	AnnualRatePercent float64               `csv:"annual_rate_percent" json:"annual_rate_percent" yaml:"annual_rate_percent"`
	Months            int                   `csv:"months" json:"months" yaml:"months"`
	FirstPayment      decimal.Decimal       `csv:"first_payment" json:"first_payment" yaml:"first_payment"`
	LastPayment       decimal.Decimal       `csv:"last_payment" json:"last_payment" yaml:"last_payment"`
	TotalPaid         decimal.Decimal       `csv:"total_paid" json:"total_paid" yaml:"total_paid"`
	TotalInterest     decimal.Decimal       `csv:"total_interest" json:"total_interest" yaml:"total_interest"`
}

// Table is a repayment table with its totals
type Table struct {
	Summary Summary `json:"summary" yaml:"summary"`
	Entries []Entry `json:"schedule" yaml:"schedule"`
}

// Build dispatches to Annuity or Differential.
func Build(t loan.AmortizationType, principal, annualRatePercent float64, months int) (*Table, error) {
	if t == loan.Differential {
		return Differential(principal, annualRatePercent, months)
	}
	return Annuity(principal, annualRatePercent, months)
}

// Annuity builds the table for a fixed monthly payment. The payment is the
// whole-unit value from loan.PaymentFromPrincipalAndPeriods; the final month
// pays off whatever balance is left.
func Annuity(principal, annualRatePercent float64, months int) (*Table, error) {
	rate := loan.MonthlyRate(annualRatePercent)
	res, err := loan.PaymentFromPrincipalAndPeriods(principal, months, rate)
	if err != nil {
		return nil, err
	}

	payment := decimal.NewFromInt(res.Payment)
	r := decimal.NewFromFloat(rate)
	remaining := decimal.NewFromFloat(principal).Round(2)
	entries := make([]Entry, 0, months)

	for m := 1; m <= months && remaining.IsPositive(); m++ {
		interest := remaining.Mul(r).Round(2)
		principalPart := payment.Sub(interest)
		monthly := payment
		if m == months || principalPart.GreaterThanOrEqual(remaining) {
			principalPart = remaining
			monthly = principalPart.Add(interest)
		}
		remaining = remaining.Sub(principalPart)

		entries = append(entries, Entry{
			Month:         m,
			Payment:       monthly,
			Interest:      interest,
			PrincipalPart: principalPart,
			Remaining:     remaining,
		})
	}

	return &Table{Summary: summarize(loan.Annuity, principal, annualRatePercent, entries), Entries: entries}, nil
}

// Differential builds the table for a constant principal part plus interest
// on the balance at the start of each month.
func Differential(principal, annualRatePercent float64, months int) (*Table, error) {
	rate := loan.MonthlyRate(annualRatePercent)
	if _, err := loan.DifferentialSchedule(principal, months, rate); err != nil {
		return nil, err
	}

	r := decimal.NewFromFloat(rate)
	remaining := decimal.NewFromFloat(principal).Round(2)
	part := remaining.Div(decimal.NewFromInt(int64(months))).Round(2)
	entries := make([]Entry, 0, months)

	for m := 1; m <= months; m++ {
		interest := remaining.Mul(r).Round(2)
		principalPart := part
		if m == months || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		entries = append(entries, Entry{
			Month:         m,
			Payment:       principalPart.Add(interest),
			Interest:      interest,
			PrincipalPart: principalPart,
			Remaining:     remaining,
		})
	}

	return &Table{Summary: summarize(loan.Differential, principal, annualRatePercent, entries), Entries: entries}, nil
}

func summarize(t loan.AmortizationType, principal, annualRatePercent float64, entries []Entry) Summary {
	s := Summary{
		Type:              t,
		Principal:         decimal.NewFromFloat(principal).Round(2),
		AnnualRatePercent: math.Round(annualRatePercent*100) / 100,
		Months:            len(entries),
		TotalPaid:         decimal.Zero,
		TotalInterest:     decimal.Zero,
	}
	for _, e := range entries {
		s.TotalPaid = s.TotalPaid.Add(e.Payment)
		s.TotalInterest = s.TotalInterest.Add(e.Interest)
	}
	if len(entries) > 0 {
		s.FirstPayment = entries[0].Payment
		s.LastPayment = entries[len(entries)-1].Payment
	}
	return s
}
