// Package logfile appends log events to a line-oriented file, one line
// per event: `{timestamp} [{LEVEL}] | {message}`.
package logfile

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the layout of the line timestamps.
const TimestampFormat = "01/02/2006 15:04:05"

// A Hook writes every logrus event to the configured file.
type Hook struct {
	mu   sync.Mutex
	path string
}

// New returns a Hook appending to the file at path.
func New(path string) *Hook {
	return &Hook{path: path}
}

// Levels implements logrus.Hook.
func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *Hook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s [%s] | %s\n",
		entry.Time.UTC().Format(TimestampFormat),
		level(entry.Level),
		entry.Message,
	)
	return err
}

func level(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}
