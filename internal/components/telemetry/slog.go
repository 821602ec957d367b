package telemetry

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
)

// SlogAPI implements API on top of a slog.Logger, params are logged as
// p0, p1, ...
type SlogAPI struct {
	logger *slog.Logger
}

// NewSlogAPI returns an API that writes to whatever slog.Default() is at
// the time of each report.
func NewSlogAPI() SlogAPI {
	return SlogAPI{}
}

func NewSlogAPIWithLogger(logger *slog.Logger) SlogAPI {
	return SlogAPI{logger: logger}
}

func (s SlogAPI) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

func withParams(attrs []any, params []any) []any {
	for i, p := range params {
		attrs = append(attrs, "p"+strconv.Itoa(i), p)
	}
	return attrs
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.log().Error(id, withParams([]any{"kind", "broken"}, params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.log().Warn(id, withParams(nil, params)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.log().Debug(message, withParams(nil, params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.log().Info(id, "count", count)
}

// InitSlog installs a tint handler on stderr as the default slog logger.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}
