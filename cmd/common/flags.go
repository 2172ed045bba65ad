package common

import (
	"fjacquet/creditcalc/internal/loanerror"

	"github.com/spf13/pflag"
)

// RequireFlags fails with a missing field error for the first name that was
// not set on the command line.
func RequireFlags(fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		if !fs.Changed(name) {
			return loanerror.Missing(name, "flag is required")
		}
	}
	return nil
}
