// Package batch handles batch processing of loan files
package batch

import (
	"fmt"
	"io"
	"os"

	"fjacquet/creditcalc/cmd/root"
	"fjacquet/creditcalc/internal/batch"
	"fjacquet/creditcalc/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = NewCommand()

// NewCommand builds the batch command with its own flag set.
func NewCommand() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Solve every loan listed in a CSV file",
		Long: `Read loans from a CSV file with the header
type,principal,payment,periods,interest and solve each line as the root
command would. Leave a cell empty for the value to compute. Lines that
cannot be solved are reported with their error; they do not stop the run.

The file uses csv.delimiter from the configuration. Use -i - to read stdin.`,
		Example: `  creditcalc batch -i loans.csv
  creditcalc batch -i loans.csv -o csv -f results.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file of loans, or - for stdin")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func run(cmd *cobra.Command, input string) error {
	c := root.GetContainer()
	log := c.GetLogger().WithFields(
		logging.F(logging.FieldOperation, "batch"),
		logging.F(logging.FieldInput, input),
	)

	var in io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	delimiter := ','
	if r := []rune(c.GetConfig().CSV.Delimiter); len(r) > 0 {
		delimiter = r[0]
	}
	rows, err := batch.ReadRows(in, delimiter)
	if err != nil {
		return err
	}
	log.Debug("Loans read", logging.F(logging.FieldRows, len(rows)))

	outcomes, err := batch.NewProcessor(c.GetConfig().Limits, c.GetLogger()).Process(rows)
	if err != nil {
		return err
	}

	return root.Output(cmd).Write(func(dst io.Writer) error {
		return c.GetGenerator().WriteBatch(dst, outcomes)
	})
}
