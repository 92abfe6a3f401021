package behaviors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/internal/application/behaviors"
	"github.com/andrescamacho/mediator-go/internal/application/logging"
)

func TestLogging_Success(t *testing.T) {
	// Arrange
	logger := &capturingLogger{}
	ctx := logging.WithLogger(behaviors.WithDispatchID(context.Background(), "send-CreateOrder-1234abcd"), logger)
	h := &countingHandler{response: "ok"}

	// Act
	response, err := behaviors.Logging()(ctx, &CreateOrder{}, h.handle)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	assert.Equal(t, []string{logging.LevelDebug, logging.LevelDebug}, logger.levels())
	assert.Equal(t, "[Mediator] Handling CreateOrder", logger.entries[0].message)
	assert.Equal(t, "[Mediator] Handled CreateOrder", logger.entries[1].message)
	assert.Equal(t, "send-CreateOrder-1234abcd", logger.entries[1].metadata["dispatch_id"])
	assert.Contains(t, logger.entries[1].metadata, "duration_ms")
}

func TestLogging_FailureIsLoggedAndReturnedUnchanged(t *testing.T) {
	// Arrange
	logger := &capturingLogger{}
	ctx := logging.WithLogger(context.Background(), logger)
	boom := errors.New("boom")
	h := &countingHandler{results: []error{boom}}

	// Act
	_, err := behaviors.Logging()(ctx, &CreateOrder{}, h.handle)

	// Assert
	assert.Same(t, boom, err)
	assert.Equal(t, []string{logging.LevelDebug, logging.LevelError}, logger.levels())
	assert.Equal(t, "boom", logger.entries[1].metadata["error"])
}

func TestLogging_CancellationIsAWarning(t *testing.T) {
	// Arrange
	logger := &capturingLogger{}
	ctx := logging.WithLogger(context.Background(), logger)
	h := &countingHandler{results: []error{context.DeadlineExceeded}}

	// Act
	_, err := behaviors.Logging()(ctx, &CreateOrder{}, h.handle)

	// Assert
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{logging.LevelDebug, logging.LevelWarning}, logger.levels())
}

func TestLogging_WithoutLoggerInContext(t *testing.T) {
	h := &countingHandler{response: "ok"}

	response, err := behaviors.Logging()(context.Background(), &CreateOrder{}, h.handle)

	require.NoError(t, err)
	assert.Equal(t, "ok", response)
}
