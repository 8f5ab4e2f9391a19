package llm

import (
	"context"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Fields are structured attributes attached to a log line.
type Fields map[string]any

// Logger is what the completion clients log through.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, err error, fields Fields)
}

var levels = map[string]uint32{
	"debug":  logx.DebugLevel,
	"info":   logx.InfoLevel,
	"error":  logx.ErrorLevel,
	"severe": logx.SevereLevel,
	"fatal":  logx.SevereLevel,
}

func parseLevel(level string) uint32 {
	if lv, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lv
	}
	return logx.InfoLevel
}

type logxLogger struct{}

// NewLogger sets the logx level and returns a logx-backed Logger.
func NewLogger(level string) Logger {
	logx.SetLevel(parseLevel(level))
	return logxLogger{}
}

func (logxLogger) Debug(ctx context.Context, msg string, f Fields) {
	logx.WithContext(ctx).Debugw(msg, logFields(f)...)
}

func (logxLogger) Info(ctx context.Context, msg string, f Fields) {
	logx.WithContext(ctx).Infow(msg, logFields(f)...)
}

// Warn maps to logx's slow channel, its only level between info and error.
func (logxLogger) Warn(ctx context.Context, msg string, f Fields) {
	logx.WithContext(ctx).Sloww(msg, logFields(f)...)
}

func (logxLogger) Error(ctx context.Context, err error, f Fields) {
	logx.WithContext(ctx).Errorw(err.Error(), logFields(f)...)
}

// logFields flattens f into logx fields sorted by key.
func logFields(f Fields) []logx.LogField {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]logx.LogField, len(keys))
	for i, k := range keys {
		out[i] = logx.Field(k, f[k])
	}
	return out
}

type nopLogger struct{}

// NopLogger discards everything.
func NopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(context.Context, string, Fields) {}
func (nopLogger) Info(context.Context, string, Fields)  {}
func (nopLogger) Warn(context.Context, string, Fields)  {}
func (nopLogger) Error(context.Context, error, Fields)  {}
