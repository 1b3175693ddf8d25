package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging sets the level and format of the standard logrus logger.
// Lambda output goes to CloudWatch Logs as JSON, terminals get text.
func ConfigureLogging(level string, json bool) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(lvl)
	logger.SetOutput(os.Stderr)
	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logrus.NewEntry(logger), nil
}
