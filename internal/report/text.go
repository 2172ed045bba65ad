package report

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/creditcalc/internal/batch"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/schedule"
)

func writeResultText(w io.Writer, res loan.Result) error {
	var b strings.Builder
	switch {
	case res.Periods != nil:
		fmt.Fprintf(&b, "It will take %s to repay this loan!\n", loan.FormatDuration(res.Periods.Periods))
	case res.Payment != nil:
		fmt.Fprintf(&b, "Your annuity payment = %d!\n", res.Payment.Payment)
	case res.Principal != nil:
		fmt.Fprintf(&b, "Your loan principal = %d!\n", res.Principal.Principal)
	case res.Differential != nil:
		for i, p := range res.Differential.Payments {
			fmt.Fprintf(&b, "Month %d: payment is %d\n", i+1, p)
		}
		b.WriteString("\n")
	default:
		return fmt.Errorf("empty result")
	}
	fmt.Fprintf(&b, "Overpayment = %d\n", res.Overpayment())

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFlatText(w io.Writer, res loan.FlatResult) error {
	var line string
	switch {
	case res.Periods > 0:
		line = fmt.Sprintf("It will take %s to repay the loan", loan.FormatDuration(res.Periods))
	case res.Regular == res.Last:
		line = fmt.Sprintf("Your monthly payment = %d", res.Regular)
	default:
		line = fmt.Sprintf("Your monthly payment = %d and the last payment = %d.", res.Regular, res.Last)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func writeTableText(w io.Writer, table *schedule.Table) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%5s %14s %14s %14s %16s\n", "Month", "Payment", "Interest", "Principal", "Remaining")
	for _, e := range table.Entries {
		fmt.Fprintf(&b, "%5d %14s %14s %14s %16s\n", e.Month,
			e.Payment.StringFixed(2), e.Interest.StringFixed(2),
			e.PrincipalPart.StringFixed(2), e.Remaining.StringFixed(2))
	}
	s := table.Summary
	fmt.Fprintf(&b, "\nTotal paid = %s\nTotal interest = %s\n", s.TotalPaid.StringFixed(2), s.TotalInterest.StringFixed(2))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeComparisonText(w io.Writer, c *schedule.Comparison) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Annuity: monthly payment = %s, total paid = %s, interest = %s\n",
		c.Annuity.FirstPayment.StringFixed(2), c.Annuity.TotalPaid.StringFixed(2), c.Annuity.TotalInterest.StringFixed(2))
	fmt.Fprintf(&b, "Differential: first payment = %s, last payment = %s, total paid = %s, interest = %s\n",
		c.Differential.FirstPayment.StringFixed(2), c.Differential.LastPayment.StringFixed(2),
		c.Differential.TotalPaid.StringFixed(2), c.Differential.TotalInterest.StringFixed(2))
	if c.Cheaper == "" {
		b.WriteString("Both schedules cost the same\n")
	} else {
		fmt.Fprintf(&b, "The %s schedule is cheaper by %s\n", c.Cheaper, c.TotalPaidGap.StringFixed(2))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBatchText(w io.Writer, outcomes []batch.Outcome) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%5s %-8s %-22s %12s %10s %8s %12s\n", "Line", "Type", "Solved", "Principal", "Payment", "Periods", "Overpayment")
	for _, o := range outcomes {
		if o.Status != batch.StatusOK {
			fmt.Fprintf(&b, "%5d %-8s %s\n", o.Line, o.Type, o.Error)
			continue
		}
		fmt.Fprintf(&b, "%5d %-8s %-22s %12d %10d %8d %12d\n",
			o.Line, o.Type, o.Solved, o.Principal, o.Payment, o.Periods, o.Overpayment)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
