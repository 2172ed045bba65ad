// Package flat implements the flat command: an interest free loan repaid in
// equal whole installments.
package flat

import (
	"fmt"
	"io"

	"fjacquet/creditcalc/cmd/common"
	"fjacquet/creditcalc/cmd/root"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/loanerror"
	"fjacquet/creditcalc/internal/logging"

	"github.com/spf13/cobra"
)

// Options are the flat command flags.
type Options struct {
	Principal int64
	Payment   int64
	Periods   int
}

// Cmd represents the flat command
var Cmd = NewCommand()

// NewCommand builds the flat command with its own flag set.
func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "flat",
		Short: "Split an interest free loan into equal installments",
		Long: `Without interest, either count the months needed to repay --principal
with a fixed --payment, or split --principal over --periods months. The last
installment absorbs the remainder.`,
		Example: `  creditcalc flat --principal=1000 --payment=150
  creditcalc flat --principal=1000 --periods=9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.Principal, "principal", 0, "Loan principal")
	cmd.Flags().Int64Var(&opts.Payment, "payment", 0, "Monthly payment")
	cmd.Flags().IntVar(&opts.Periods, "periods", 0, "Number of monthly payments")

	return cmd
}

func run(cmd *cobra.Command, opts *Options) error {
	c := root.GetContainer()
	out := root.Output(cmd)
	log := c.GetLogger().WithFields(
		logging.F(logging.FieldOperation, "flat"),
		logging.F(logging.FieldPrincipal, opts.Principal),
	)

	fs := cmd.Flags()
	if err := common.RequireFlags(fs, "principal"); err != nil {
		return common.Reject(out, log, err)
	}
	if fs.Changed("payment") == fs.Changed("periods") {
		return common.Reject(out, log, loanerror.Missing("", "exactly one of payment, periods must be given"))
	}

	limits := c.GetConfig().Limits
	principal := float64(opts.Principal)
	params := loan.Parameters{Principal: &principal}
	if fs.Changed("periods") {
		params.Periods = &opts.Periods
	}
	if err := limits.Check(params); err != nil {
		return common.Reject(out, log, err)
	}

	var res loan.FlatResult
	if fs.Changed("payment") {
		periods, err := loan.FlatPeriods(opts.Principal, opts.Payment)
		if err != nil {
			return common.Reject(out, log, err)
		}
		res.Periods = periods
		log = log.WithField(logging.FieldPayment, opts.Payment)
	} else {
		regular, last, err := loan.FlatInstallments(opts.Principal, opts.Periods)
		if err != nil {
			return common.Reject(out, log, err)
		}
		res.Regular, res.Last = regular, last
		log = log.WithField(logging.FieldPeriods, opts.Periods)
	}
	log.Info("Flat calculation completed")

	if err := out.Write(func(dst io.Writer) error {
		return c.GetGenerator().WriteFlat(dst, res)
	}); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
