package providers

import (
	"mcstatus/internal/structures"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeHttp, GetLogTypeByRequestType("GET"))
	assert.Equal(t, TypeHttp, GetLogTypeByRequestType("HEAD"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeApp, GetLogTypeByRequestType("POST"))
	assert.Equal(t, TypeApp, GetLogTypeByRequestType("DELETE"))
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "probe", TypeProbe.String())
	assert.Equal(t, "storage", TypeStorage.String())
}

func TestNewLogProvider_WritesLogFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		AppName: "mcstatus",
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message %d", 1)
	logger.Debugf(TypeProbe, "debug message")
	logger.Warnf(TypeStorage, "storage message")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"message":"test message 1"`)
	assert.Contains(t, out, `"type":"storage"`)
	assert.NotContains(t, out, "debug message")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "loud",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNopAndConsoleLoggers(t *testing.T) {
	for _, logger := range []Logger{NewNopLogger(), NewConsoleLogger(false)} {
		logger.Debugf(TypeApp, "ignored")
		logger.Close()
	}
}
