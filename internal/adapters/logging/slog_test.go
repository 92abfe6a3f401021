package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/internal/adapters/logging"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/config"
)

func TestSlogLogger_JSONIncludesMetadata(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger, err := logging.NewSlogLoggerFromWriter(&buf, config.LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)

	// Act
	logger.Log("INFO", "[Mediator] Handled Ping", map[string]interface{}{"request": "Ping"})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "[Mediator] Handled Ping", record["msg"])
	assert.Equal(t, "Ping", record["request"])
}

func TestSlogLogger_FiltersBelowLevel(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger, err := logging.NewSlogLoggerFromWriter(&buf, config.LoggingConfig{Level: "warn", Format: "text"})
	require.NoError(t, err)

	// Act
	logger.Log("DEBUG", "hidden", nil)
	logger.Log("WARNING", "shown", nil)

	// Assert
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewSlogLogger_RejectsUnknownFormat(t *testing.T) {
	_, err := logging.NewSlogLogger(config.LoggingConfig{Output: "stderr", Format: "xml"})

	assert.Error(t, err)
}
