package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level controls logger verbosity.
type Level logging.Level

// The levels that can be passed to SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logger used by every package of the tracer.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a logger tagged with the given module name.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to w.
func SetSink(w io.Writer) {
	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of all loggers.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLogging(level), "")
}

// GetLevel returns the current verbosity.
func GetLevel() Level {
	switch leveledBackend.GetLevel("") {
	case logging.DEBUG:
		return Debug
	case logging.INFO:
		return Info
	case logging.NOTICE:
		return Notice
	case logging.WARNING:
		return Warning
	default:
		return Error
	}
}

func toLogging(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Notice:
		return logging.NOTICE
	case Warning:
		return logging.WARNING
	default:
		return logging.ERROR
	}
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
