// Package logs provides per-component trace loggers for the harness.
// All log output goes to stderr; stdout is reserved for report output
// and must never carry anything but the scenario results.
package logs

import (
	"fmt"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	mu    sync.Mutex
	level = log.WarnLevel
	made  []*log.Logger
)

// formatter adds the owning component to each log entry.
type formatter struct {
	owner string
	lf    log.Formatter
}

// Format satisfies the log.Formatter interface.
func (f *formatter) Format(e *log.Entry) ([]byte, error) {
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)

	return f.lf.Format(e)
}

// NewLogger returns a logger tagged with the owning component name.
func NewLogger(owner string) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})

	mu.Lock()
	defer mu.Unlock()
	logger.SetLevel(level)
	made = append(made, logger)

	return logger
}

// SetVerbose switches every harness logger to debug level, enabling
// per-frame wire traces.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()

	level = log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	for _, l := range made {
		l.SetLevel(level)
	}
}
