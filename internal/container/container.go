// Package container wires the logger, configuration and report generator
// that the commands share.
package container

import (
	"fmt"
	"io"

	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/logging"
	"fjacquet/creditcalc/internal/report"
)

// Container holds the application dependencies. It is immutable after creation.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies. Logs are
// written to logOut.
func NewContainer(cfg *config.Config, logOut io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logOut == nil {
		return nil, fmt.Errorf("log output cannot be nil")
	}

	logger := cfg.NewLogger(logOut)
	generator := report.NewGenerator(cfg, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldOutputFormat, generator.Format()))

	return &Container{
		logger:    logger,
		config:    cfg,
		generator: generator,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetGenerator returns the report generator configured for output.format.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}
