package main

import (
	"errors"
	"os"
	"strings"

	"fjacquet/creditcalc/cmd/batch"
	"fjacquet/creditcalc/cmd/common"
	"fjacquet/creditcalc/cmd/compare"
	"fjacquet/creditcalc/cmd/flat"
	"fjacquet/creditcalc/cmd/root"
	"fjacquet/creditcalc/cmd/schedule"
	"fjacquet/creditcalc/internal/config"
	"fjacquet/creditcalc/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env must be loaded before LOG_LEVEL is read
	config.LoadEnv()
	configureLogLevelDirectly()

	root.Cmd.AddCommand(schedule.Cmd)
	root.Cmd.AddCommand(compare.Cmd)
	root.Cmd.AddCommand(flat.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// configureLogLevelDirectly sets the level of the standard logrus logger,
// which reports command failures, from LOG_LEVEL.
func configureLogLevelDirectly() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.ErrorLevel
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		log := logging.NewLogrusAdapterFromLogger(logrus.StandardLogger()).WithError(err)
		if errors.Is(err, common.ErrIncorrectParameters) {
			// already reported on stdout
			log.Debug("Rejected parameters")
		} else {
			log.Error("creditcalc failed")
		}
		os.Exit(1)
	}
}
