package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/creditcalc/cmd/common"
	"fjacquet/creditcalc/cmd/root"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/loanerror"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps user config files and CREDITCALC_* variables out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, env := range []string{"CREDITCALC_LOG_LEVEL", "CREDITCALC_LOG_FORMAT", "CREDITCALC_OUTPUT_FORMAT", "LOG_LEVEL"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	originalConfig, originalContainer := root.AppConfig, root.AppContainer
	t.Cleanup(func() {
		root.AppConfig, root.AppContainer = originalConfig, originalContainer
	})
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := root.NewCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "creditcalc", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "loan repayment calculator")
	assert.Contains(t, root.Cmd.Long, "differential")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := root.NewCommand()

	for _, name := range []string{"type", "principal", "payment", "periods", "interest"} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.NotEmpty(t, f.Usage)
	}
	for _, name := range []string{"config", "log-level", "log-format", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)
}

func TestRootCommand_Calculations(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "periods",
			args:     []string{"--type=annuity", "--principal=500000", "--payment=23000", "--interest=7.8"},
			expected: "It will take 2 years to repay this loan!\nOverpayment = 52000\n",
		},
		{
			name:     "periods with years and months",
			args:     []string{"--type=annuity", "--principal=1000000", "--payment=8722", "--interest=10"},
			expected: "It will take 31 years and 3 months to repay this loan!\nOverpayment = 2270750\n",
		},
		{
			name:     "payment",
			args:     []string{"--type=annuity", "--principal=1000000", "--periods=60", "--interest=10"},
			expected: "Your annuity payment = 21248!\nOverpayment = 274880\n",
		},
		{
			name:     "principal",
			args:     []string{"--type=annuity", "--payment=8722", "--periods=120", "--interest=5.6"},
			expected: "Your loan principal = 800019!\nOverpayment = 246621\n",
		},
		{
			name: "differential",
			args: []string{"--type=diff", "--principal=1000000", "--periods=10", "--interest=10"},
			expected: "Month 1: payment is 108334\nMonth 2: payment is 107500\nMonth 3: payment is 106667\n" +
				"Month 4: payment is 105834\nMonth 5: payment is 105000\nMonth 6: payment is 104167\n" +
				"Month 7: payment is 103334\nMonth 8: payment is 102500\nMonth 9: payment is 101667\n" +
				"Month 10: payment is 100834\n\nOverpayment = 45837\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestRootCommand_IncorrectParameters(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no flags", args: nil},
		{name: "unknown type", args: []string{"--type=balloon", "--principal=1000", "--periods=10", "--interest=10"}},
		{name: "differential with payment", args: []string{"--type=diff", "--principal=1000000", "--payment=104000", "--periods=10", "--interest=10"}},
		{name: "missing interest", args: []string{"--type=annuity", "--principal=100000", "--payment=10400"}},
		{name: "too few values", args: []string{"--type=annuity", "--principal=100000", "--interest=10"}},
		{name: "negative periods", args: []string{"--type=diff", "--principal=30000", "--periods=-14", "--interest=10"}},
		{name: "not a number", args: []string{"--type=annuity", "--principal=abc", "--periods=10", "--interest=10"}},
		{name: "payment below interest", args: []string{"--type=annuity", "--principal=100000", "--payment=500", "--interest=12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			stdout, stderr, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrIncorrectParameters)
			assert.Equal(t, "Incorrect parameters\n", stdout)
			assert.Contains(t, stderr, "Error: ")
		})
	}
}

func TestRootCommand_RateBelowFloatPrecision(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "payment",
			args:     []string{"--type=annuity", "--principal=1000", "--periods=10", "--interest=1e-15"},
			expected: `^Your annuity payment = 10[01]!\nOverpayment = \d+\n$`,
		},
		{
			name:     "periods",
			args:     []string{"--type=annuity", "--principal=1000", "--payment=100", "--interest=1e-15"},
			expected: `^It will take 1[01] months to repay this loan!\nOverpayment = \d+\n$`,
		},
		{
			name:     "principal",
			args:     []string{"--type=annuity", "--payment=100", "--periods=10", "--interest=1e-15"},
			expected: `^Your loan principal = (999|1000|1001)!\nOverpayment = \d+\n$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			stdout, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Regexp(t, tt.expected, stdout)
			assert.NotContains(t, stdout, "-")
		})
	}
}

func TestRootCommand_OutputFormatFlag(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "--type=annuity", "--principal=1000000", "--periods=60", "--interest=10", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"solved": "payment"`)
	assert.Contains(t, stdout, `"payment": 21248`)
	assert.Equal(t, "json", root.AppConfig.Output.Format)
}

func TestRootCommand_InvalidOutputFormat(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "--type=annuity", "--principal=1000", "--periods=6", "--interest=10", "--output=pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
	assert.NotErrorIs(t, err, common.ErrIncorrectParameters)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n  format: json\nlimits:\n  max_periods: 12\n"), 0o600))

	_, stderr, err := execute(t, "--config", path, "--type=annuity", "--principal=1000", "--periods=24", "--interest=10")
	require.Error(t, err)
	assert.ErrorIs(t, err, loanerror.ErrOutOfRange)
	assert.Contains(t, stderr, `"msg":"Configuration loaded"`)
	assert.Equal(t, 12, root.AppConfig.Limits.MaxPeriods)
}

func TestRootCommand_LogLevelFlagOverridesConfig(t *testing.T) {
	isolate(t)
	t.Setenv("CREDITCALC_LOG_LEVEL", "error")

	_, stderr, err := execute(t, "--log-level=info", "--type=annuity", "--principal=1000000", "--periods=60", "--interest=10")
	require.NoError(t, err)
	assert.Equal(t, "info", root.AppConfig.Log.Level)
	assert.Contains(t, stderr, "Calculation completed")
}

func TestLoanFlags_Parameters(t *testing.T) {
	cmd := &cobra.Command{}
	flags := &root.LoanFlags{}
	cmd.Flags().StringVar(&flags.Type, "type", "", "")
	cmd.Flags().Float64Var(&flags.Principal, "principal", 0, "")
	cmd.Flags().Float64Var(&flags.Payment, "payment", 0, "")
	cmd.Flags().IntVar(&flags.Periods, "periods", 0, "")
	cmd.Flags().Float64Var(&flags.Interest, "interest", 0, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--type=Annuity", "--principal=0", "--interest=10"}))

	p, err := flags.Parameters(cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, loan.Annuity, p.Type)
	require.NotNil(t, p.Principal)
	assert.Zero(t, *p.Principal)
	assert.Nil(t, p.Payment)
	assert.Nil(t, p.Periods)
	require.NotNil(t, p.AnnualInterestRatePercent)
	assert.Equal(t, 10.0, *p.AnnualInterestRatePercent)
}

func TestGetConfig_Defaults(t *testing.T) {
	isolate(t)
	root.AppConfig = nil
	assert.Equal(t, "warn", root.GetConfig().Log.Level)
}

func TestGetContainer_Lazy(t *testing.T) {
	isolate(t)
	root.AppConfig, root.AppContainer = nil, nil
	c := root.GetContainer()
	require.NotNil(t, c)
	assert.Same(t, c, root.GetContainer())
	assert.NotNil(t, root.GetLogger())
}

func TestRootCommand_FileOutput(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "results", "payment.yaml")

	stdout, _, err := execute(t, "--type=annuity", "--principal=1000000", "--periods=60", "--interest=10", "-o", "yaml", "--file", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "solved: payment")
	assert.Contains(t, string(data), "payment: 21248")
}

func TestRootCommand_FileOutputKeepsRejectionOnStdout(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "payment.txt")

	stdout, _, err := execute(t, "--type=annuity", "--principal=1000000", "--interest=10", "--file", path)
	require.Error(t, err)
	assert.Equal(t, "Incorrect parameters\n", stdout)
	assert.NoFileExists(t, path)
}
