package report

import "fjacquet/creditcalc/internal/loan"

// resultRow is the CSV shape of a loan.Result: one row per payment for a
// differential schedule, a single row otherwise.
type resultRow struct {
	Solved      loan.SolveFor `csv:"solved"`
	Month       int           `csv:"month"`
	Periods     int           `csv:"periods"`
	Payment     int64         `csv:"payment"`
	Principal   int64         `csv:"principal"`
	Overpayment int64         `csv:"overpayment"`
}

func resultRows(res loan.Result) []resultRow {
	switch {
	case res.Periods != nil:
		return []resultRow{{Solved: res.Solved, Periods: res.Periods.Periods, Overpayment: res.Periods.Overpayment}}
	case res.Payment != nil:
		return []resultRow{{Solved: res.Solved, Payment: res.Payment.Payment, Overpayment: res.Payment.Overpayment}}
	case res.Principal != nil:
		return []resultRow{{Solved: res.Solved, Principal: res.Principal.Principal, Overpayment: res.Principal.Overpayment}}
	case res.Differential != nil:
		rows := make([]resultRow, 0, len(res.Differential.Payments))
		for i, p := range res.Differential.Payments {
			rows = append(rows, resultRow{
				Solved:      res.Solved,
				Month:       i + 1,
				Payment:     p,
				Overpayment: res.Differential.TotalOverpayment,
			})
		}
		return rows
	}
	return nil
}
