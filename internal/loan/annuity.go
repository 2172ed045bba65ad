package loan

import (
	"fmt"
	"math"

	"fjacquet/creditcalc/internal/loanerror"
)

// PeriodsFromPrincipalAndPayment returns the number of monthly payments of
// size payment needed to repay principal. The count is rounded up, so the
// last real installment may be smaller than payment.
func PeriodsFromPrincipalAndPayment(principal, payment, monthlyRate float64) (PeriodsResult, error) {
	if err := positive(input{"principal", principal}, input{"payment", payment}, input{"interest", monthlyRate}); err != nil {
		return PeriodsResult{}, err
	}
	interest := monthlyRate * principal
	if payment <= interest {
		return PeriodsResult{}, &loanerror.ValidationError{
			Kind:   loanerror.PaymentTooLowForInterest,
			Field:  "payment",
			Reason: fmt.Sprintf("payment %g does not exceed monthly interest %.2f", payment, interest),
		}
	}

	// log1p keeps both logarithms meaningful when the rate is far below 1/2^52.
	n := math.Ceil(math.Log1p(interest/(payment-interest)) / math.Log1p(monthlyRate))
	if !(n >= 1) {
		return PeriodsResult{}, loanerror.Unrepresentable("periods", n)
	}
	periods, err := wholeUnits("periods", n)
	if err != nil {
		return PeriodsResult{}, err
	}
	over, err := overpayment(payment*float64(periods), principal)
	if err != nil {
		return PeriodsResult{}, err
	}
	return PeriodsResult{Periods: int(periods), Overpayment: over}, nil
}

// PaymentFromPrincipalAndPeriods returns the fixed annuity payment, rounded up.
func PaymentFromPrincipalAndPeriods(principal float64, periods int, monthlyRate float64) (PaymentResult, error) {
	if err := positive(input{"principal", principal}, input{"periods", float64(periods)}, input{"interest", monthlyRate}); err != nil {
		return PaymentResult{}, err
	}
	ratio, err := annuityRatio(periods, monthlyRate)
	if err != nil {
		return PaymentResult{}, err
	}
	payment, err := wholeUnits("payment", math.Ceil(principal*monthlyRate*ratio))
	if err != nil {
		return PaymentResult{}, err
	}
	over, err := overpayment(float64(payment)*float64(periods), principal)
	if err != nil {
		return PaymentResult{}, err
	}
	return PaymentResult{Payment: payment, Overpayment: over}, nil
}

// PrincipalFromPaymentAndPeriods returns the loan that periods payments of
// size payment repay, rounded up.
func PrincipalFromPaymentAndPeriods(payment float64, periods int, monthlyRate float64) (PrincipalResult, error) {
	if err := positive(input{"payment", payment}, input{"periods", float64(periods)}, input{"interest", monthlyRate}); err != nil {
		return PrincipalResult{}, err
	}
	ratio, err := annuityRatio(periods, monthlyRate)
	if err != nil {
		return PrincipalResult{}, err
	}
	principal, err := wholeUnits("principal", math.Ceil(payment/(monthlyRate*ratio)))
	if err != nil {
		return PrincipalResult{}, err
	}
	over, err := overpayment(payment*float64(periods), float64(principal))
	if err != nil {
		return PrincipalResult{}, err
	}
	return PrincipalResult{Principal: principal, Overpayment: over}, nil
}

// annuityRatio returns (1+i)^n / ((1+i)^n - 1) computed as 1 + 1/expm1(n*log1p(i)).
// The ratio tends to 1 once the growth factor overflows, so it stays finite
// for long loans at high rates.
func annuityRatio(periods int, monthlyRate float64) (float64, error) {
	growth := math.Expm1(float64(periods) * math.Log1p(monthlyRate))
	if !(growth > 0) {
		return 0, loanerror.Unrepresentable("interest", monthlyRate)
	}
	ratio := 1 + 1/growth
	if math.IsInf(ratio, 0) {
		return 0, loanerror.Unrepresentable("interest", monthlyRate)
	}
	return ratio, nil
}

// overpayment truncates total paid minus principal to a whole unit. Rounding
// can leave the difference a fraction below zero, which counts as no overpayment.
func overpayment(totalPaid, principal float64) (int64, error) {
	return wholeUnits("overpayment", math.Max(0, math.Floor(totalPaid-principal)))
}

// wholeUnits converts an already rounded amount to int64, rejecting NaN,
// infinities, negatives and anything at or beyond 2^63.
func wholeUnits(field string, v float64) (int64, error) {
	if !(v >= 0 && v < math.MaxInt64) {
		return 0, loanerror.Unrepresentable(field, v)
	}
	return int64(v), nil
}

type input struct {
	name  string
	value float64
}

// positive reports the first input that is not a finite value > 0.
func positive(inputs ...input) error {
	for _, in := range inputs {
		if !(in.value > 0) || math.IsInf(in.value, 0) {
			return loanerror.NonPositive(in.name, in.value)
		}
	}
	return nil
}
