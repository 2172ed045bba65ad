// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/creditcalc/cmd/common"
	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/container"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// PersistentFlags are the options shared by every command.
type PersistentFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Output     string
	File       string
}

// LoanFlags are the raw loan inputs of the root command.
type LoanFlags struct {
	Type      string
	Principal float64
	Payment   float64
	Periods   int
	Interest  float64
}

var (
	// AppConfig is the configuration loaded for the running command
	AppConfig *config.Config

	// AppContainer holds the dependencies built for the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd *cobra.Command
)

func init() {
	Cmd = NewCommand()
}

// NewCommand builds a root command with its own flag set. Subcommands are
// attached by the caller.
func NewCommand() *cobra.Command {
	shared := &PersistentFlags{}
	flags := &LoanFlags{}

	cmd := &cobra.Command{
		Use:   "creditcalc",
		Short: "A loan repayment calculator for annuity and differential schedules.",
		Long: `creditcalc computes the missing parameter of a loan.

Given the interest rate and all but one of principal, payment and periods,
it solves for the remaining value using annuity amortization. With
--type=diff it prints the monthly payments of a differential schedule.
Every calculation also reports the overpayment.`,
		Example: `  creditcalc --type=annuity --principal=1000000 --periods=60 --interest=10
  creditcalc --type=diff --principal=500000 --periods=8 --interest=7.8
  creditcalc --type=annuity --payment=8722 --periods=120 --interest=5.6 -o json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize(cmd, shared)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.Parameters(cmd.Flags())
			if err != nil {
				return common.Reject(Output(cmd), GetLogger(), err)
			}
			c := GetContainer()
			return common.Calculate(params, c.GetConfig().Limits, c.GetGenerator(), Output(cmd), c.GetLogger())
		},
	}

	cmd.PersistentFlags().StringVar(&shared.ConfigFile, "config", "", "Config file (default searches creditcalc.yaml)")
	cmd.PersistentFlags().StringVar(&shared.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&shared.LogFormat, "log-format", "", "Log format (text, json)")
	cmd.PersistentFlags().StringVarP(&shared.Output, "output", "o", "", "Output format (text, json, yaml, csv)")
	cmd.PersistentFlags().StringVarP(&shared.File, "file", "f", "", "Write results to this file instead of stdout")

	cmd.Flags().StringVar(&flags.Type, "type", "", `Repayment schedule: "annuity" or "diff"`)
	cmd.Flags().Float64Var(&flags.Principal, "principal", 0, "Loan principal")
	cmd.Flags().Float64Var(&flags.Payment, "payment", 0, "Monthly payment (annuity only)")
	cmd.Flags().IntVar(&flags.Periods, "periods", 0, "Number of monthly payments")
	cmd.Flags().Float64Var(&flags.Interest, "interest", 0, "Annual interest rate in percent")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if _, werr := fmt.Fprintln(c.OutOrStdout(), common.IncorrectParametersMessage); werr != nil {
			return werr
		}
		_, _ = fmt.Fprintln(c.ErrOrStderr(), "Error:", err)
		return fmt.Errorf("%w: %w", common.ErrIncorrectParameters, err)
	})

	return cmd
}

// Parameters converts the flags that were actually set into loan parameters.
func (f *LoanFlags) Parameters(fs *pflag.FlagSet) (loan.Parameters, error) {
	t, err := loan.ParseAmortizationType(f.Type)
	if err != nil {
		return loan.Parameters{}, err
	}
	p := loan.Parameters{Type: t}
	if fs.Changed("interest") {
		p.AnnualInterestRatePercent = &f.Interest
	}
	if fs.Changed("principal") {
		p.Principal = &f.Principal
	}
	if fs.Changed("payment") {
		p.Payment = &f.Payment
	}
	if fs.Changed("periods") {
		p.Periods = &f.Periods
	}
	return p, nil
}

func initialize(cmd *cobra.Command, shared *PersistentFlags) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(shared.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	fs := cmd.Flags()
	if fs.Changed("log-level") {
		cfg.Log.Level = shared.LogLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = shared.LogFormat
	}
	if fs.Changed("output") {
		cfg.Output.Format = shared.Output
	}
	if fs.Changed("file") {
		cfg.Output.File = shared.File
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	c, err := container.NewContainer(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create container: %w", err)
	}

	AppConfig = cfg
	AppContainer = c

	c.GetLogger().Debug("Configuration loaded",
		logging.F(logging.FieldConfigFile, shared.ConfigFile),
		logging.F(logging.FieldOperation, cmd.Name()))
	return nil
}

// GetContainer returns the container built for the running command. It
// falls back to the default configuration when no command has run yet.
func GetContainer() *container.Container {
	if AppContainer == nil {
		c, err := container.NewContainer(GetConfig(), Cmd.ErrOrStderr())
		if err != nil {
			panic(err)
		}
		AppContainer = c
	}
	return AppContainer
}

// Output returns the result destination for cmd.
func Output(cmd *cobra.Command) common.Output {
	return common.Output{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr(), File: GetConfig().Output.File}
}

// GetConfig returns the loaded configuration, or the defaults.
func GetConfig() *config.Config {
	if AppConfig == nil {
		return config.Default()
	}
	return AppConfig
}

// GetLogger returns the logger of the current container.
func GetLogger() logging.Logger {
	return GetContainer().GetLogger()
}
