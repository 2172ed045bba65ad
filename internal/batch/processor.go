// Package batch solves many loans read from a CSV file in one run.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/loanerror"
	"fjacquet/creditcalc/internal/logging"

	"github.com/gocarina/gocsv"
)

// Outcome statuses
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
)

// LoanRow is one input line. Empty cells are absent values.
type LoanRow struct {
	Type      string `csv:"type"`
	Principal string `csv:"principal"`
	Payment   string `csv:"payment"`
	Periods   string `csv:"periods"`
	Interest  string `csv:"interest"`
}

// Outcome is the solved form of one LoanRow. For a differential loan
// Payment is the first, and largest, monthly payment.
type Outcome struct {
	Line        int           `csv:"line" json:"line" yaml:"line"`
	Type        string        `csv:"type" json:"type" yaml:"type"`
	Solved      loan.SolveFor `csv:"solved" json:"solved,omitempty" yaml:"solved,omitempty"`
	Principal   int64         `csv:"principal" json:"principal" yaml:"principal"`
	Payment     int64         `csv:"payment" json:"payment" yaml:"payment"`
	Periods     int           `csv:"periods" json:"periods" yaml:"periods"`
	Overpayment int64         `csv:"overpayment" json:"overpayment" yaml:"overpayment"`
	Status      string        `csv:"status" json:"status" yaml:"status"`
	Error       string        `csv:"error" json:"error,omitempty" yaml:"error,omitempty"`
}

// Processor solves loan rows against configured limits.
type Processor struct {
	limits config.Limits
	logger logging.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(limits config.Limits, logger logging.Logger) *Processor {
	return &Processor{
		limits: limits,
		logger: logger.WithField(logging.FieldComponent, "batch"),
	}
}

// ReadRows decodes a CSV with a header line using delimiter.
func ReadRows(r io.Reader, delimiter rune) ([]LoanRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []LoanRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}
	return rows, nil
}

// Process solves every row. Invalid rows are reported as rejected outcomes
// and do not stop the run; only non-validation failures are returned.
func (p *Processor) Process(rows []LoanRow) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(rows))
	rejected := 0

	for i, row := range rows {
		// line 1 is the header
		line := i + 2
		out, err := p.solve(row)
		out.Line = line
		out.Type = strings.ToLower(strings.TrimSpace(row.Type))

		var verr *loanerror.ValidationError
		switch {
		case err == nil:
			out.Status = StatusOK
		case errors.As(err, &verr):
			rejected++
			out.Status = StatusRejected
			out.Error = err.Error()
			p.logger.WithError(err).Warn("Rejected loan", logging.F(logging.FieldLine, line))
		default:
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		outcomes = append(outcomes, out)
	}

	p.logger.Info("Batch processed",
		logging.F(logging.FieldRows, len(rows)),
		logging.F(logging.FieldRejected, rejected))
	return outcomes, nil
}

func (p *Processor) solve(row LoanRow) (Outcome, error) {
	params, err := row.Parameters()
	if err != nil {
		return Outcome{}, err
	}
	if err := p.limits.Check(params); err != nil {
		return Outcome{}, err
	}
	req, err := loan.NewRequest(params)
	if err != nil {
		return Outcome{}, err
	}
	res, err := loan.Calculate(req)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Solved:      res.Solved,
		Principal:   wholeUnits(req.Principal),
		Payment:     wholeUnits(req.Payment),
		Periods:     req.Periods,
		Overpayment: res.Overpayment(),
	}
	switch {
	case res.Periods != nil:
		out.Periods = res.Periods.Periods
	case res.Payment != nil:
		out.Payment = res.Payment.Payment
	case res.Principal != nil:
		out.Principal = res.Principal.Principal
	case res.Differential != nil && len(res.Differential.Payments) > 0:
		out.Payment = res.Differential.Payments[0]
	}
	return out, nil
}

// wholeUnits rounds an input amount half away from zero for the report
// columns. The calculation itself uses the unrounded value.
func wholeUnits(v float64) int64 {
	return int64(math.Round(v))
}

// Parameters parses the row into loan parameters.
func (r LoanRow) Parameters() (loan.Parameters, error) {
	t, err := loan.ParseAmortizationType(r.Type)
	if err != nil {
		return loan.Parameters{}, err
	}
	p := loan.Parameters{Type: t}

	for _, f := range []struct {
		name string
		raw  string
		dst  **float64
	}{
		{"interest", r.Interest, &p.AnnualInterestRatePercent},
		{"principal", r.Principal, &p.Principal},
		{"payment", r.Payment, &p.Payment},
	} {
		v, ok, err := parseFloat(f.name, f.raw)
		if err != nil {
			return loan.Parameters{}, err
		}
		if ok {
			*f.dst = &v
		}
	}

	if raw := strings.TrimSpace(r.Periods); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return loan.Parameters{}, loanerror.Malformed("periods", raw)
		}
		p.Periods = &n
	}
	return p, nil
}

func parseFloat(name, raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, loanerror.Malformed(name, raw)
	}
	return v, true, nil
}
