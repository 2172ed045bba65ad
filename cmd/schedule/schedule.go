// Package schedule implements the schedule command, which prints the full
// month-by-month amortization table of a loan.
package schedule

import (
	"fmt"
	"io"

	"fjacquet/creditcalc/cmd/common"
	"fjacquet/creditcalc/cmd/root"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/logging"
	"fjacquet/creditcalc/internal/schedule"

	"github.com/spf13/cobra"
)

// Options are the schedule command flags.
type Options struct {
	Type      string
	Principal float64
	Periods   int
	Interest  float64
}

// Cmd represents the schedule command
var Cmd = NewCommand()

// NewCommand builds the schedule command with its own flag set.
func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the amortization table of a loan",
		Long: `Print every monthly payment of a loan split into interest and principal,
with the balance left after each month. Amounts are computed to the cent.`,
		Example: `  creditcalc schedule --principal=1000000 --periods=60 --interest=10
  creditcalc schedule --type=diff --principal=500000 --periods=8 --interest=7.8 -o csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", string(loan.Annuity), `Repayment schedule: "annuity" or "diff"`)
	cmd.Flags().Float64Var(&opts.Principal, "principal", 0, "Loan principal")
	cmd.Flags().IntVar(&opts.Periods, "periods", 0, "Number of monthly payments")
	cmd.Flags().Float64Var(&opts.Interest, "interest", 0, "Annual interest rate in percent")

	return cmd
}

func run(cmd *cobra.Command, opts *Options) error {
	c := root.GetContainer()
	out := root.Output(cmd)
	log := c.GetLogger().WithFields(
		logging.F(logging.FieldOperation, "schedule"),
		logging.F(logging.FieldAmortizationType, opts.Type),
	)

	if err := common.RequireFlags(cmd.Flags(), "principal", "periods", "interest"); err != nil {
		return common.Reject(out, log, err)
	}
	t, err := loan.ParseAmortizationType(opts.Type)
	if err != nil {
		return common.Reject(out, log, err)
	}
	params := loan.Parameters{
		Type:                      t,
		AnnualInterestRatePercent: &opts.Interest,
		Principal:                 &opts.Principal,
		Periods:                   &opts.Periods,
	}
	if err := c.GetConfig().Limits.Check(params); err != nil {
		return common.Reject(out, log, err)
	}

	table, err := schedule.Build(t, opts.Principal, opts.Interest, opts.Periods)
	if err != nil {
		return common.Reject(out, log, err)
	}
	log.Info("Schedule built",
		logging.F(logging.FieldPeriods, len(table.Entries)),
		logging.F(logging.FieldOverpayment, table.Summary.TotalInterest.String()))

	if err := out.Write(func(dst io.Writer) error {
		return c.GetGenerator().WriteTable(dst, table)
	}); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}
