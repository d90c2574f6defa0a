package logging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("loud"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel(" error "))
}

func TestNewFileLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	fileLogger := newFileLogger(LoggerSetupParams{LogFileName: filepath.Join(dir, "dashboard")})
	assert.Equal(t, filepath.Join(dir, "dashboard.log"), fileLogger.Filename)
	assert.Equal(t, defaultMaxSizeMB, fileLogger.MaxSize)
	assert.Equal(t, defaultMaxBackups, fileLogger.MaxBackups)

	stat, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	fileLogger = newFileLogger(LoggerSetupParams{
		LogFileName: filepath.Join(dir, "dashboard.log"),
		MaxSizeMB:   5,
		MaxBackups:  2,
	})
	assert.Equal(t, filepath.Join(dir, "dashboard.log"), fileLogger.Filename)
	assert.Equal(t, 5, fileLogger.MaxSize)
	assert.Equal(t, 2, fileLogger.MaxBackups)
}

type recordingTransport struct {
	events []*sentry.Event
}

func (t *recordingTransport) Flush(time.Duration) bool { return true }
func (t *recordingTransport) FlushWithContext(_ context.Context) bool { return true }
func (t *recordingTransport) Configure(sentry.ClientOptions) {}
func (t *recordingTransport) SendEvent(event *sentry.Event) {
	t.events = append(t.events, event)
}
func (t *recordingTransport) Close() {}

func TestSentryHook_Fire(t *testing.T) {
	transport := &recordingTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	require.NoError(t, err)

	hook := &SentryHook{
		levels: []logrus.Level{logrus.ErrorLevel},
		hub:    sentry.NewHub(client, sentry.NewScope()),
	}
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	entry := logrus.NewEntry(logrus.New()).WithField("err", errors.New("boom"))
	entry.Level = logrus.ErrorLevel
	entry.Message = "refresh failed"
	require.NoError(t, hook.Fire(entry))

	require.Len(t, transport.events, 1)
	assert.Equal(t, "refresh failed", transport.events[0].Message)
	assert.Equal(t, sentry.LevelError, transport.events[0].Level)
	assert.Equal(t, "boom", transport.events[0].Extra["err"])
}
