package loan

import (
	"fmt"

	"fjacquet/creditcalc/internal/loanerror"
)

// SolveFor names the value a Request computes.
type SolveFor string

const (
	SolvePrincipal            SolveFor = "principal"
	SolvePayment              SolveFor = "payment"
	SolvePeriods              SolveFor = "periods"
	SolveDifferentialSchedule SolveFor = "differential_schedule"
)

// Request is a validated calculation. Only the inputs used by Solve are
// meaningful; the others are zero.
type Request struct {
	Solve       SolveFor
	MonthlyRate float64
	Principal   float64
	Payment     float64
	Periods     int
}

// NewRequest classifies a parameter set into exactly one calculation.
// It never guesses: an ambiguous or incomplete set is rejected.
func NewRequest(p Parameters) (Request, error) {
	if p.Type == "" {
		return Request{}, loanerror.Missing("type", "")
	}
	if p.AnnualInterestRatePercent == nil {
		return Request{}, loanerror.Missing("interest", "")
	}
	if err := checkPositive(p); err != nil {
		return Request{}, err
	}

	req := Request{MonthlyRate: MonthlyRate(*p.AnnualInterestRatePercent)}
	if p.Principal != nil {
		req.Principal = *p.Principal
	}
	if p.Payment != nil {
		req.Payment = *p.Payment
	}
	if p.Periods != nil {
		req.Periods = *p.Periods
	}

	switch p.Type {
	case Differential:
		if p.Payment != nil {
			return Request{}, loanerror.Missing("payment", "payment cannot be combined with the differential model")
		}
		if p.Principal == nil {
			return Request{}, loanerror.Missing("principal", "")
		}
		if p.Periods == nil {
			return Request{}, loanerror.Missing("periods", "")
		}
		req.Solve = SolveDifferentialSchedule
		return req, nil

	case Annuity:
		var absent []SolveFor
		if p.Principal == nil {
			absent = append(absent, SolvePrincipal)
		}
		if p.Payment == nil {
			absent = append(absent, SolvePayment)
		}
		if p.Periods == nil {
			absent = append(absent, SolvePeriods)
		}
		if len(absent) != 1 {
			return Request{}, loanerror.Missing("", fmt.Sprintf(
				"exactly one of principal, payment, periods must be absent, got %d absent", len(absent)))
		}
		req.Solve = absent[0]
		return req, nil
	}

	return Request{}, loanerror.Missing("type", fmt.Sprintf("unknown amortization type %q", p.Type))
}

func checkPositive(p Parameters) error {
	if *p.AnnualInterestRatePercent <= 0 {
		return loanerror.NonPositive("interest", *p.AnnualInterestRatePercent)
	}
	if p.Principal != nil && *p.Principal <= 0 {
		return loanerror.NonPositive("principal", *p.Principal)
	}
	if p.Payment != nil && *p.Payment <= 0 {
		return loanerror.NonPositive("payment", *p.Payment)
	}
	if p.Periods != nil && *p.Periods <= 0 {
		return loanerror.NonPositive("periods", float64(*p.Periods))
	}
	return nil
}

// Calculate runs the operation selected by the request.
func Calculate(req Request) (Result, error) {
	res := Result{Solved: req.Solve}
	switch req.Solve {
	case SolvePeriods:
		r, err := PeriodsFromPrincipalAndPayment(req.Principal, req.Payment, req.MonthlyRate)
		if err != nil {
			return Result{}, &loanerror.CalculationError{Operation: string(req.Solve), Err: err}
		}
		res.Periods = &r
	case SolvePayment:
		r, err := PaymentFromPrincipalAndPeriods(req.Principal, req.Periods, req.MonthlyRate)
		if err != nil {
			return Result{}, &loanerror.CalculationError{Operation: string(req.Solve), Err: err}
		}
		res.Payment = &r
	case SolvePrincipal:
		r, err := PrincipalFromPaymentAndPeriods(req.Payment, req.Periods, req.MonthlyRate)
		if err != nil {
			return Result{}, &loanerror.CalculationError{Operation: string(req.Solve), Err: err}
		}
		res.Principal = &r
	case SolveDifferentialSchedule:
		r, err := DifferentialSchedule(req.Principal, req.Periods, req.MonthlyRate)
		if err != nil {
			return Result{}, &loanerror.CalculationError{Operation: string(req.Solve), Err: err}
		}
		res.Differential = &r
	default:
		return Result{}, loanerror.Missing("", fmt.Sprintf("unknown calculation %q", req.Solve))
	}
	return res, nil
}
