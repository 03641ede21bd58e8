package logsvc

import (
	"log"

	"github.com/trezcool/darasa/core"
)

// consoleLogger writes everything to the std logger; used in DEV|TEST mode
// where shipping to Rollbar makes no sense.
type consoleLogger struct {
	std           *log.Logger
	disableOutput bool
}

var _ core.Logger = (*consoleLogger)(nil)

func NewConsoleLogger(std *log.Logger) core.Logger {
	return &consoleLogger{std: std}
}

// NewConsoleLoggerMock swallows all output; for tests.
func NewConsoleLoggerMock() core.Logger {
	return &consoleLogger{std: log.New(new(nopWriter), "", 0), disableOutput: true}
}

type nopWriter struct{}

func (w nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func (l consoleLogger) Enable(bool) {}

func (l consoleLogger) print(level, msg string, args []interface{}) {
	if l.disableOutput {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l consoleLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l consoleLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l consoleLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l consoleLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l consoleLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
