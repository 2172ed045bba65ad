// Package report writes calculator results to an output stream as the
// classic text lines, JSON, YAML or CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/creditcalc/internal/batch"
	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/logging"
	"fjacquet/creditcalc/internal/schedule"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Generator renders results in one output format.
type Generator struct {
	format         string
	delimiter      rune
	includeHeaders bool
	logger         logging.Logger
}

// NewGenerator creates a Generator from the output and csv sections of cfg.
func NewGenerator(cfg *config.Config, logger logging.Logger) *Generator {
	delim := ','
	if r := []rune(cfg.CSV.Delimiter); len(r) > 0 {
		delim = r[0]
	}
	return &Generator{
		format:         strings.ToLower(cfg.Output.Format),
		delimiter:      delim,
		includeHeaders: cfg.CSV.IncludeHeaders,
		logger:         logger.WithField(logging.FieldComponent, "report"),
	}
}

// WithFormat returns a copy of g using another output format.
func (g *Generator) WithFormat(format string) *Generator {
	c := *g
	c.format = strings.ToLower(format)
	return &c
}

// Format returns the active output format.
func (g *Generator) Format() string {
	return g.format
}

// WriteResult renders the outcome of loan.Calculate.
func (g *Generator) WriteResult(w io.Writer, res loan.Result) error {
	switch g.format {
	case config.FormatText:
		return writeResultText(w, res)
	case config.FormatCSV:
		return g.writeCSV(w, resultRows(res))
	}
	return g.encode(w, res)
}

// WriteTable renders a month-by-month repayment table.
func (g *Generator) WriteTable(w io.Writer, table *schedule.Table) error {
	switch g.format {
	case config.FormatText:
		return writeTableText(w, table)
	case config.FormatCSV:
		return g.writeCSV(w, table.Entries)
	}
	return g.encode(w, table)
}

// WriteComparison renders an annuity/differential comparison.
func (g *Generator) WriteComparison(w io.Writer, c *schedule.Comparison) error {
	switch g.format {
	case config.FormatText:
		return writeComparisonText(w, c)
	case config.FormatCSV:
		return g.writeCSV(w, []schedule.Summary{c.Annuity, c.Differential})
	}
	return g.encode(w, c)
}

// WriteFlat renders a zero-interest result.
func (g *Generator) WriteFlat(w io.Writer, res loan.FlatResult) error {
	switch g.format {
	case config.FormatText:
		return writeFlatText(w, res)
	case config.FormatCSV:
		return g.writeCSV(w, []loan.FlatResult{res})
	}
	return g.encode(w, res)
}

// WriteBatch renders the outcomes of a batch run.
func (g *Generator) WriteBatch(w io.Writer, outcomes []batch.Outcome) error {
	switch g.format {
	case config.FormatText:
		return writeBatchText(w, outcomes)
	case config.FormatCSV:
		return g.writeCSV(w, outcomes)
	}
	return g.encode(w, outcomes)
}

func (g *Generator) encode(w io.Writer, v interface{}) error {
	switch g.format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON output")
			return fmt.Errorf("failed to marshal JSON output: %w", err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML output")
			return fmt.Errorf("failed to marshal YAML output: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format: %s", g.format)
}

func (g *Generator) writeCSV(w io.Writer, rows interface{}) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter
	out := gocsv.NewSafeCSVWriter(csvWriter)

	var err error
	if g.includeHeaders {
		err = gocsv.MarshalCSV(rows, out)
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(rows, out)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to write CSV output")
		return fmt.Errorf("failed to write CSV output: %w", err)
	}
	return nil
}
