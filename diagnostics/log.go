package diagnostics

import "github.com/sirupsen/logrus"

// NewLogger returns a logrus.Logger configured the way the CLI wants
// diagnostics rendered: plain text to stderr, level controlled by the
// caller (cmd/cvm wires --log-level into this).
func NewLogger(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return logger
}
