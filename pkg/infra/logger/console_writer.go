package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// ConsoleHook mirrors every entry to the console while the async writer
// owns the log file. Errors and above go to stderr.
type ConsoleHook struct{}

func NewConsoleHook() *ConsoleHook {
	return &ConsoleHook{}
}

func (h *ConsoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	out := os.Stdout
	if entry.Level <= logrus.ErrorLevel {
		out = os.Stderr
	}
	_, err = out.Write(line)
	return err
}

func (h *ConsoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
