//go:build unit
// +build unit

package persistence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordedEntry struct {
	level   string
	message string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (l *recordingLogger) add(level string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, recordedEntry{level: level, message: fmt.Sprint(args...)})
}

func (l *recordingLogger) Debug(args ...interface{}) { l.add("debug", args...) }
func (l *recordingLogger) Info(args ...interface{})  { l.add("info", args...) }
func (l *recordingLogger) Warn(args ...interface{})  { l.add("warn", args...) }
func (l *recordingLogger) Error(args ...interface{}) { l.add("error", args...) }
func (l *recordingLogger) Fatal(args ...interface{}) { l.add("fatal", args...) }
func (l *recordingLogger) Panic(args ...interface{}) { l.add("panic", args...) }

func (l *recordingLogger) levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, len(l.entries))
	for i, entry := range l.entries {
		levels[i] = entry.level
	}
	return levels
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM user_submissions", 0 }
	now := time.Now()
	slow := now.Add(-time.Second)

	tests := []struct {
		name     string
		logLevel string
		begin    time.Time
		err      error
		expected []string
	}{
		{"record not found is silent", config.LogLevelDebug, now, gorm.ErrRecordNotFound, []string{}},
		{"wrapped record not found is silent", config.LogLevelInfo, now, fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), []string{}},
		{"failure logged as error", config.LogLevelInfo, now, errors.New("syntax error"), []string{"error"}},
		{"failure logged at error level", config.LogLevelError, now, errors.New("syntax error"), []string{"error"}},
		{"slow query warns at info", config.LogLevelInfo, slow, nil, []string{"warn"}},
		{"slow query hidden at error", config.LogLevelError, slow, nil, []string{}},
		{"statements traced at debug", config.LogLevelDebug, now, nil, []string{"debug"}},
		{"statements hidden at info", config.LogLevelInfo, now, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &recordingLogger{}
			dbLogger := NewGormLogger(recorder, tt.logLevel)

			dbLogger.Trace(context.Background(), tt.begin, query, tt.err)

			assert.Equal(t, tt.expected, recorder.levels())
		})
	}
}

func TestGormLogger_LogMode(t *testing.T) {
	recorder := &recordingLogger{}
	dbLogger := NewGormLogger(recorder, config.LogLevelDebug)

	silent := dbLogger.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 1 }, errors.New("boom"))
	silent.Error(context.Background(), "failed %s", "query")
	assert.Empty(t, recorder.levels())

	dbLogger.Warn(context.Background(), "pool %s", "exhausted")
	assert.Equal(t, []string{"warn"}, recorder.levels())
}
