package rsa

import "github.com/sirupsen/logrus"

// NewLogger returns a logrus.Logger gated by enableLogging, scoped to a
// single Kernel instance instead of mutating a package-level logger — the
// Kernel must not depend on global state.
func NewLogger(enableLogging bool) *logrus.Logger {
	logger := logrus.New()
	if enableLogging {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.PanicLevel)
	}
	return logger
}
