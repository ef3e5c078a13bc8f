package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/observability/logging"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &record))

	return record
}

func TestGormLoggerTrace(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		begin     time.Time
		err       error
		wantEvent string
		wantLevel string
	}{
		{
			name:      "unexpected error",
			level:     gormlogger.Warn,
			begin:     time.Now(),
			err:       errors.New("connection reset"),
			wantEvent: "db.query.fail",
			wantLevel: "ERROR",
		},
		{
			name:      "duplicate key is expected",
			level:     gormlogger.Warn,
			begin:     time.Now(),
			err:       gorm.ErrDuplicatedKey,
			wantEvent: "db.query.rejected",
			wantLevel: "DEBUG",
		},
		{
			name:      "slow query",
			level:     gormlogger.Warn,
			begin:     time.Now().Add(-time.Second),
			wantEvent: "db.query.slow",
			wantLevel: "WARN",
		},
		{
			name:      "info level logs every query",
			level:     gormlogger.Info,
			begin:     time.Now(),
			wantEvent: "db.query",
			wantLevel: "DEBUG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefault(t)

			l := logging.NewGormLogger(100 * time.Millisecond).LogMode(tt.level)
			l.Trace(context.Background(), tt.begin, sqlFn, tt.err)

			record := lastRecord(t, buf)
			assert.Equal(t, tt.wantEvent, record["event"])
			assert.Equal(t, tt.wantLevel, record["level"])
			assert.Equal(t, "SELECT 1", record["sql"])
		})
	}
}

func TestGormLoggerSilent(t *testing.T) {
	buf := captureDefault(t)

	l := logging.NewGormLogger(time.Millisecond).LogMode(gormlogger.Silent)
	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	l.Error(context.Background(), "ignored %d", 1)

	assert.Empty(t, buf.String())
}
