package common

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	baseOnce   sync.Once
	baseLogger *log.Logger
)

func base() *log.Logger {
	baseOnce.Do(func() {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stagehand",
		})
	})
	return baseLogger
}

// Logger returns a logger scoped to a component. Scoped loggers copy the base
// level at creation, so call SetLogLevel before building components.
func Logger(prefix string) *log.Logger {
	return base().WithPrefix(prefix)
}

// SetLogLevel sets the process-wide log level. Unknown names fall back to info.
func SetLogLevel(level string) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	base().SetLevel(lvl)
}
