package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		periods int
		want    string
	}{
		{periods: 1, want: "1 month"},
		{periods: 8, want: "8 months"},
		{periods: 12, want: "1 year"},
		{periods: 13, want: "1 year and 1 month"},
		{periods: 24, want: "2 years"},
		{periods: 98, want: "8 years and 2 months"},
		{periods: 375, want: "31 years and 3 months"},
		{periods: 0, want: "0 months"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.periods))
		})
	}
}

func TestSplitPeriods(t *testing.T) {
	years, months := SplitPeriods(98)
	assert.Equal(t, 8, years)
	assert.Equal(t, 2, months)
}
