// Package logging centralizes logger construction. Components log through
// hclog.Logger so callers can plug in their own sink; the default is a
// discard logger, keeping the library silent unless asked otherwise.
package logging

import (
	"github.com/hashicorp/go-hclog"
)

// New builds a named logger at the given level, writing to stderr.
func New(name string, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.LevelFromString(level),
	})
}

// Discard returns a logger that drops everything. Used as the default for
// clients constructed without an explicit logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
