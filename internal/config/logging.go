package config

import (
	"io"

	"fjacquet/creditcalc/internal/logging"
)

// NewLogger builds the application logger from the log section.
func (c *Config) NewLogger(out io.Writer) logging.Logger {
	return logging.NewLogrusAdapterWithOutput(c.Log.Level, c.Log.Format, out)
}
