// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/loanerror"
	"fjacquet/creditcalc/internal/logging"
	"fjacquet/creditcalc/internal/report"
)

// IncorrectParametersMessage is printed on stdout whenever the inputs
// cannot describe a loan.
const IncorrectParametersMessage = "Incorrect parameters"

// ErrIncorrectParameters marks errors caused by user input rather than by
// the environment.
var ErrIncorrectParameters = errors.New("incorrect parameters")

// Calculate validates p against limits, solves for the missing value and
// writes the result to out.
func Calculate(p loan.Parameters, limits config.Limits, gen *report.Generator, out Output, log logging.Logger) error {
	log = log.WithFields(parameterFields(p)...)

	if err := limits.Check(p); err != nil {
		return Reject(out, log, err)
	}

	req, err := loan.NewRequest(p)
	if err != nil {
		return Reject(out, log, err)
	}
	log = log.WithField(logging.FieldOperation, string(req.Solve))
	log.Debug("Request classified")

	res, err := loan.Calculate(req)
	if err != nil {
		return Reject(out, log, err)
	}

	log.Info("Calculation completed", logging.F(logging.FieldOverpayment, res.Overpayment()))
	if err := out.Write(func(dst io.Writer) error { return gen.WriteResult(dst, res) }); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// Reject reports err. Validation failures print the incorrect parameters
// line on out.Stdout, name the failure on out.Stderr and are wrapped with
// ErrIncorrectParameters; anything else is returned unchanged.
func Reject(out Output, log logging.Logger, err error) error {
	var verr *loanerror.ValidationError
	if !errors.As(err, &verr) {
		log.WithError(err).Error("Calculation failed")
		return err
	}
	log.WithError(err).Warn("Rejected parameters", logging.F(logging.FieldStatus, string(verr.Kind)))
	if _, werr := fmt.Fprintln(out.Stdout, IncorrectParametersMessage); werr != nil {
		return werr
	}
	if out.Stderr != nil {
		_, _ = fmt.Fprintln(out.Stderr, "Error:", verr)
	}
	return fmt.Errorf("%w: %w", ErrIncorrectParameters, err)
}

func parameterFields(p loan.Parameters) []logging.Field {
	fields := []logging.Field{logging.F(logging.FieldAmortizationType, string(p.Type))}
	if p.AnnualInterestRatePercent != nil {
		fields = append(fields, logging.F(logging.FieldInterest, *p.AnnualInterestRatePercent))
	}
	if p.Principal != nil {
		fields = append(fields, logging.F(logging.FieldPrincipal, *p.Principal))
	}
	if p.Payment != nil {
		fields = append(fields, logging.F(logging.FieldPayment, *p.Payment))
	}
	if p.Periods != nil {
		fields = append(fields, logging.F(logging.FieldPeriods, *p.Periods))
	}
	return fields
}
