package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	levelStyles    = map[LogLevel]lipgloss.Style{
		DEBUG: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		INFO:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		WARN:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		ERROR: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		FATAL: lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	}
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// MultiWriter fans a single log line out to several writers, e.g. the
// terminal and a --logfile.
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter(writers ...io.Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

func (mw *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range mw.writers {
		if _, err := w.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func (mw *MultiWriter) Add(writer io.Writer) {
	mw.writers = append(mw.writers, writer)
}

type ColoredLogger struct {
	verbose bool
	mu      sync.RWMutex
	writers map[LogLevel]io.Writer
	loggers map[LogLevel]*log.Logger
	exit    func(code int)
}

var globalLogger *ColoredLogger

func init() {
	globalLogger = &ColoredLogger{
		writers: make(map[LogLevel]io.Writer),
		loggers: make(map[LogLevel]*log.Logger),
		exit:    os.Exit,
	}

	for level := DEBUG; level <= FATAL; level++ {
		globalLogger.writers[level] = os.Stdout
		globalLogger.loggers[level] = log.New(os.Stdout, "", 0)
	}
}

func SetVerbose(verbose bool) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.verbose = verbose
}

func IsVerbose() bool {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.verbose
}

func SetWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.writers[level] = writer
	globalLogger.loggers[level] = log.New(writer, "", 0)
}

func SetWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= FATAL; level++ {
		SetWriter(level, writer)
	}
}

func AddWriter(level LogLevel, writer io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	currentWriter := globalLogger.writers[level]

	if mw, ok := currentWriter.(*MultiWriter); ok {
		mw.Add(writer)
	} else {
		multiWriter := NewMultiWriter(currentWriter, writer)
		globalLogger.writers[level] = multiWriter
		globalLogger.loggers[level] = log.New(multiWriter, "", 0)
	}
}

func AddWriterForAll(writer io.Writer) {
	for level := DEBUG; level <= FATAL; level++ {
		AddWriter(level, writer)
	}
}

// SetErrorWriter routes WARN and above to stderr so piped stdout stays clean.
func SetErrorWriter() {
	SetWriter(WARN, os.Stderr)
	SetWriter(ERROR, os.Stderr)
	SetWriter(FATAL, os.Stderr)
}

func (cl *ColoredLogger) formatMessage(level LogLevel, message string) string {
	timestamp := time.Now().Format("06-01-02 15:04:05")
	return fmt.Sprintf(
		"%s %s %s",
		timestampStyle.Render("["+timestamp+"]"),
		levelStyles[level].Render(fmt.Sprintf("%-5s", level.String())),
		message,
	)
}

func (cl *ColoredLogger) log(level LogLevel, format string, args ...interface{}) {
	cl.mu.RLock()
	if level == DEBUG && !cl.verbose {
		cl.mu.RUnlock()
		return
	}

	logger := cl.loggers[level]
	exit := cl.exit
	cl.mu.RUnlock()

	message := fmt.Sprintf(format, args...)
	logger.Println(cl.formatMessage(level, message))

	if level == FATAL {
		exit(1)
	}
}

func Debug(format string, args ...interface{}) {
	globalLogger.log(DEBUG, format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.log(INFO, format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.log(WARN, format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.log(ERROR, format, args...)
}

func Fatal(format string, args ...interface{}) {
	globalLogger.log(FATAL, format, args...)
}

func GetLogFromLevel(level LogLevel) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		globalLogger.log(level, format, args...)
	}
}
