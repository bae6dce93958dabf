package providers

import (
	"fmt"
	"io"
	"mcstatus/internal/structures"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeProbe
	TypeStorage
	TypeHttp
)

func (t TypeEnum) String() string {
	switch t {
	case TypeProbe:
		return "probe"
	case TypeStorage:
		return "storage"
	case TypeHttp:
		return "http"
	default:
		return "app"
	}
}

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

const logFileName = "mcstatus.log"

type LogProvider struct {
	logger zerolog.Logger
	file   *os.File
}

// GetLogTypeByRequestType maps an HTTP method to a log category.
func GetLogTypeByRequestType(method string) TypeEnum {
	switch method {
	case http.MethodGet, http.MethodHead:
		return TypeHttp
	default:
		return TypeApp
	}
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	path := filepath.Join(conf.Logger.Dir, logFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
	if err != nil {
		return nil, fmt.Errorf("unable to open log file %s: %w", path, err)
	}

	var out io.Writer = file
	if conf.Debug {
		level = zerolog.DebugLevel
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return &LogProvider{
		logger: zerolog.New(out).Level(level).With().Timestamp().Str("app", conf.AppName).Logger(),
		file:   file,
	}, nil
}

func (l *LogProvider) log(e *zerolog.Event, t TypeEnum, format string, args ...interface{}) {
	e.Str("type", t.String()).Msgf(format, args...)
}

func (l *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	l.log(l.logger.Error(), t, format, args...)
}

func (l *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	l.log(l.logger.Warn(), t, format, args...)
}

func (l *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	l.log(l.logger.Debug(), t, format, args...)
}

func (l *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	l.log(l.logger.Info(), t, format, args...)
}

func (l *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	l.log(l.logger.Fatal(), t, format, args...)
}

func (l *LogProvider) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
	}
}

// NewNopLogger discards everything.
func NewNopLogger() Logger {
	return &LogProvider{logger: zerolog.Nop()}
}

// NewConsoleLogger writes human readable lines to stderr. The one-shot CLI
// uses it so stdout stays clean JSON.
func NewConsoleLogger(debug bool) Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return &LogProvider{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger(),
	}
}
