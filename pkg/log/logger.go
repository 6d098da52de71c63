package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Level is a logging verbosity threshold
type Level logging.Level

// Verbosity thresholds, most verbose first
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// Logger is the leveled logger handed out to each package
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Notice(v ...interface{})
	Noticef(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

const layout = `[%{time:15:04:05.000}] [%{module}] [%{level}]`

var (
	colorFormatter = logging.MustStringFormatter(`%{color}` + layout + `%{color:reset} %{message}`)
	plainFormatter = logging.MustStringFormatter(layout + ` %{message}`)

	backendLevels = map[Level]logging.Level{
		Debug:   logging.DEBUG,
		Info:    logging.INFO,
		Notice:  logging.NOTICE,
		Warning: logging.WARNING,
		Error:   logging.ERROR,
	}

	active logging.LeveledBackend
)

// New returns a logger tagged with module
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink sends all output to sink at Notice level. Terminals get colors.
func SetSink(sink io.Writer) {
	formatter := plainFormatter
	if sink == os.Stdout || sink == os.Stderr {
		formatter = colorFormatter
	}

	backend := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), formatter)
	active = logging.AddModuleLevel(backend)
	active.SetLevel(logging.NOTICE, "")
	logging.SetBackend(active)
}

// SetLevel changes the threshold for every module
func SetLevel(level Level) {
	backendLevel, ok := backendLevels[level]
	if !ok {
		backendLevel = logging.NOTICE
	}
	active.SetLevel(backendLevel, "")
}

func init() {
	SetSink(os.Stderr)
}
