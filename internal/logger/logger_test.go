package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainFormatter_Format(t *testing.T) {
	entry := &log.Entry{
		Time:    time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "provider returned no observations",
		Data:    log.Fields{"symbol": "USDILS=X", "request_id": "abc"},
	}
	out, err := (&PlainFormatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05 14:07:09 [WARNING] provider returned no observations request_id=abc symbol=USDILS=X\n", string(out))
}

func TestSetup_File(t *testing.T) {
	t.Cleanup(func() { log.SetOutput(os.Stderr); log.SetLevel(log.InfoLevel) })

	path := filepath.Join(t.TempDir(), "analyzer.log")
	closer, err := Setup("debug", path)
	require.NoError(t, err)

	log.Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] hello")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetup_BadLevel(t *testing.T) {
	_, err := Setup("loud", "")
	assert.Error(t, err)
}
