package batch

import (
	"strings"
	"testing"

	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/loan"
	"fjacquet/creditcalc/internal/loanerror"
	"fjacquet/creditcalc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loansCSV = `type,principal,payment,periods,interest
annuity,500000,23000,,7.8
annuity,1000000,,60,10
annuity,,8722,120,5.6
diff,1000000,,10,10
diff,1000000,104000,10,10
annuity,abc,,60,10
annuity,100000,500,,12
`

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(loansCSV), ',')
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, LoanRow{Type: "annuity", Principal: "500000", Payment: "23000", Interest: "7.8"}, rows[0])
	assert.Equal(t, "abc", rows[5].Principal)
}

func TestReadRows_Delimiter(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("type;principal;periods;interest\ndiff; 1000; 2; 12\n"), ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, LoanRow{Type: "diff", Principal: "1000", Periods: "2", Interest: "12"}, rows[0])
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProcessor_Process(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(loansCSV), ',')
	require.NoError(t, err)

	logger := logging.NewMockLogger()
	outcomes, err := NewProcessor(config.Default().Limits, logger).Process(rows)
	require.NoError(t, err)
	require.Len(t, outcomes, 7)

	expected := []Outcome{
		{Line: 2, Type: "annuity", Solved: loan.SolvePeriods, Principal: 500000, Payment: 23000, Periods: 24, Overpayment: 52000, Status: StatusOK},
		{Line: 3, Type: "annuity", Solved: loan.SolvePayment, Principal: 1000000, Payment: 21248, Periods: 60, Overpayment: 274880, Status: StatusOK},
		{Line: 4, Type: "annuity", Solved: loan.SolvePrincipal, Principal: 800019, Payment: 8722, Periods: 120, Overpayment: 246621, Status: StatusOK},
		{Line: 5, Type: "diff", Solved: loan.SolveDifferentialSchedule, Principal: 1000000, Payment: 108334, Periods: 10, Overpayment: 45837, Status: StatusOK},
	}
	assert.Equal(t, expected, outcomes[:4])

	for _, out := range outcomes[4:] {
		assert.Equal(t, StatusRejected, out.Status, "line %d", out.Line)
		assert.NotEmpty(t, out.Error)
	}
	assert.Contains(t, outcomes[5].Error, `"abc" is not a number`)
	assert.Contains(t, outcomes[6].Error, string(loanerror.PaymentTooLowForInterest))

	assert.Len(t, logger.EntriesByLevel("WARN"), 3)
	assert.True(t, logger.HasEntry("INFO", "Batch processed"))
}

func TestProcessor_Limits(t *testing.T) {
	limits := config.Default().Limits
	limits.MaxPeriods = 12

	outcomes, err := NewProcessor(limits, logging.NewMockLogger()).Process([]LoanRow{
		{Type: "annuity", Principal: "1000", Periods: "24", Interest: "10"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusRejected, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Error, string(loanerror.OutOfRange))
}

func TestProcessor_FractionalAmountsAreRounded(t *testing.T) {
	outcomes, err := NewProcessor(config.Default().Limits, logging.NewMockLogger()).Process([]LoanRow{
		{Type: "diff", Principal: "1000.5", Periods: "2", Interest: "12"},
		{Type: "annuity", Principal: "1000.4", Payment: "100.5", Interest: "12"},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	assert.Equal(t, StatusOK, outcomes[0].Status)
	assert.Equal(t, int64(1001), outcomes[0].Principal)

	assert.Equal(t, StatusOK, outcomes[1].Status)
	assert.Equal(t, int64(1000), outcomes[1].Principal)
	assert.Equal(t, int64(101), outcomes[1].Payment)
}

func TestProcessor_LogFields(t *testing.T) {
	logger := logging.NewMockLogger()
	_, err := NewProcessor(config.Default().Limits, logger).Process([]LoanRow{
		{Type: "annuity", Principal: "1000", Periods: "12", Interest: "10"},
		{Type: "annuity", Principal: "-1", Periods: "12", Interest: "10"},
	})
	require.NoError(t, err)

	fields := func(e logging.LogEntry) map[string]interface{} {
		m := map[string]interface{}{}
		for _, f := range e.Fields {
			m[f.Key] = f.Value
		}
		return m
	}

	warns := logger.EntriesByLevel("WARN")
	require.Len(t, warns, 1)
	assert.Equal(t, "batch", fields(warns[0])[logging.FieldComponent])
	assert.Equal(t, 3, fields(warns[0])[logging.FieldLine])

	infos := logger.EntriesByLevel("INFO")
	require.NotEmpty(t, infos)
	summary := fields(infos[len(infos)-1])
	assert.Equal(t, 2, summary[logging.FieldRows])
	assert.Equal(t, 1, summary[logging.FieldRejected])
}

func TestLoanRow_Parameters(t *testing.T) {
	tests := []struct {
		name        string
		row         LoanRow
		expectedErr error
		check       func(t *testing.T, p loan.Parameters)
	}{
		{
			name: "absent cells stay nil",
			row:  LoanRow{Type: " Annuity ", Principal: "1000", Periods: "12", Interest: "10"},
			check: func(t *testing.T, p loan.Parameters) {
				assert.Equal(t, loan.Annuity, p.Type)
				require.NotNil(t, p.Principal)
				assert.Equal(t, 1000.0, *p.Principal)
				assert.Nil(t, p.Payment)
				require.NotNil(t, p.Periods)
				assert.Equal(t, 12, *p.Periods)
			},
		},
		{
			name:        "fractional periods",
			row:         LoanRow{Type: "diff", Principal: "1000", Periods: "1.5", Interest: "10"},
			expectedErr: loanerror.ErrMalformedValue,
		},
		{
			name:        "bad interest",
			row:         LoanRow{Type: "diff", Principal: "1000", Periods: "2", Interest: "ten"},
			expectedErr: loanerror.ErrMalformedValue,
		},
		{
			name:        "missing type",
			row:         LoanRow{Principal: "1000", Periods: "2", Interest: "10"},
			expectedErr: loanerror.ErrMissingRequiredField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.row.Parameters()
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}
