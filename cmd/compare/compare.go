// Package compare implements the compare command
package compare

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

// Options are the compare command flags.
type Options struct {
	Principal float64
	Periods   int
	Interest  float64
}

// Cmd represents the compare command
var Cmd = NewCommand()

// NewCommand builds the compare command with its own flag set.
func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare annuity and differential repayment of the same loan",
		Long: `Build both amortization tables for the same principal, term and rate
and report their payments, total cost and which one is cheaper.`,
		Example: `  creditcalc compare --principal=1000000 --periods=120 --interest=5.6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := root.GetContainer()
			out := root.Output(cmd)
			log := c.GetLogger().WithField(logging.FieldOperation, "compare")

			if err := common.RequireFlags(cmd.Flags(), "principal", "periods", "interest"); err != nil {
				return common.Reject(out, log, err)
			}
			params := loan.Parameters{
				Type:                      loan.Annuity,
				AnnualInterestRatePercent: &opts.Interest,
				Principal:                 &opts.Principal,
				Periods:                   &opts.Periods,
			}
			if err := c.GetConfig().Limits.Check(params); err != nil {
				return common.Reject(out, log, err)
			}

			comparison, err := schedule.Compare(opts.Principal, opts.Interest, opts.Periods)
			if err != nil {
				return common.Reject(out, log, err)
			}
			log.Info("Comparison completed",
				logging.F(logging.FieldStatus, string(comparison.Cheaper)),
				logging.F(logging.FieldOverpayment, comparison.TotalPaidGap.String()))

			if err := out.Write(func(dst io.Writer) error {
				return c.GetGenerator().WriteComparison(dst, comparison)
			}); err != nil {
				return fmt.Errorf("failed to write comparison: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.Principal, "principal", 0, "Loan principal")
	cmd.Flags().IntVar(&opts.Periods, "periods", 0, "Number of monthly payments")
	cmd.Flags().Float64Var(&opts.Interest, "interest", 0, "Annual interest rate in percent")

	return cmd
}
