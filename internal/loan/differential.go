package loan

import (
	"iter"
	"math"
)

// DifferentialPayment returns the payment due in month m (1-based) of a
// differential loan. Interest is charged on the balance at the start of the month.
func DifferentialPayment(principal float64, periods, m int, monthlyRate float64) int64 {
	n := float64(periods)
	remaining := principal - principal*float64(m-1)/n
	return int64(math.Ceil(principal/n + monthlyRate*remaining))
}

// DifferentialPayments yields (month, payment) pairs for months 1..periods.
// The sequence is finite and can be ranged over any number of times.
func DifferentialPayments(principal float64, periods int, monthlyRate float64) iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		for m := 1; m <= periods; m++ {
			if !yield(m, DifferentialPayment(principal, periods, m, monthlyRate)) {
				return
			}
		}
	}
}

// DifferentialSchedule computes every payment of a differential loan and the
// total overpayment.
func DifferentialSchedule(principal float64, periods int, monthlyRate float64) (DifferentialResult, error) {
	if err := positive(input{"principal", principal}, input{"periods", float64(periods)}, input{"interest", monthlyRate}); err != nil {
		return DifferentialResult{}, err
	}

	// The first payment is the largest, so it bounds every payment and the total.
	first := math.Ceil(principal/float64(periods) + monthlyRate*principal)
	if _, err := wholeUnits("payment", first*float64(periods)); err != nil {
		return DifferentialResult{}, err
	}

	payments := make([]int64, 0, periods)
	var total int64
	for _, p := range DifferentialPayments(principal, periods, monthlyRate) {
		payments = append(payments, p)
		total += p
	}

	over, err := overpayment(float64(total), principal)
	if err != nil {
		return DifferentialResult{}, err
	}
	return DifferentialResult{Payments: payments, TotalOverpayment: over}, nil
}
