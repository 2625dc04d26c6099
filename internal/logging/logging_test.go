// internal/logging/logging_test.go
package logging

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abinexis/homepage-admin/internal/config"
)

func TestFormatterSelection(t *testing.T) {
	assert.IsType(t, &logrus.JSONFormatter{}, formatter("", "production"))
	assert.IsType(t, &logrus.TextFormatter{}, formatter("", "development"))
	assert.IsType(t, &logrus.JSONFormatter{}, formatter("JSON", "development"))
	assert.IsType(t, &logrus.TextFormatter{}, formatter("text", "production"))
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(config.LogConfig{Level: "loud"}, "development")
	assert.Error(t, err)
}

func TestSetupWithFile(t *testing.T) {
	defer logrus.SetOutput(logrus.StandardLogger().Out)

	path := filepath.Join(t.TempDir(), "admin.log")
	closer, err := Setup(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1}, "development")
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.Info("written")
	assert.FileExists(t, path)

	logrus.SetLevel(logrus.InfoLevel)
}
