package mediator_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mediator-go/internal/application/logging"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
)

func setupPing(t *testing.T, log *callLog, handlers map[string]string, order ...string) (mediator.Registry, *tableResolver) {
	t.Helper()
	reg := mediator.NewRegistry()
	res := newTableResolver()
	for _, name := range order {
		id, err := mediator.RegisterRequest[*Ping, string](reg, name)
		require.NoError(t, err)
		res.bind(id, answering(log, name, handlers[name]))
	}
	return reg, res
}

func TestSend_SingleHandlerReturnsResultUnchanged(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong"}, "PingHandler")
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	response, err := d.Send(context.Background(), &Ping{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Pong", response)
	assert.Equal(t, []string{"PingHandler"}, log.all())
}

func TestSend_NoHandler(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	res := newTableResolver()
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	_, err := d.Send(context.Background(), &Unregistered{})

	// Assert
	var noHandler *mediator.NoHandlerError
	require.ErrorAs(t, err, &noHandler)
	assert.Equal(t, reflect.TypeOf(&Unregistered{}), noHandler.PayloadType)
	assert.ErrorIs(t, err, mediator.ErrNoHandler)
	assert.Empty(t, res.resolved)
}

func TestSend_NotificationHandlersDoNotAnswerRequests(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	id := mediator.NotificationIdentity[*Ping]("Listener")
	require.NoError(t, reg.Register(id.PayloadType, id))
	d := mediator.NewRequestDispatcher(reg, newTableResolver())

	// Act
	_, err := d.Send(context.Background(), &Ping{})

	// Assert
	assert.ErrorIs(t, err, mediator.ErrNoHandler)
}

func TestSend_AmbiguousByDefault(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong", "PongHandler": "Pong2"}, "PingHandler", "PongHandler")
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	_, err := d.Send(context.Background(), &Ping{})

	// Assert
	var ambiguous *mediator.AmbiguousHandlerError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.CandidateCount)
	assert.Equal(t, reflect.TypeOf(&Ping{}), ambiguous.PayloadType)
	assert.ErrorIs(t, err, mediator.ErrAmbiguousHandler)
	assert.Contains(t, err.Error(), "[PingHandler, PongHandler]")
	assert.Empty(t, log.all())
	assert.Empty(t, res.resolved)
}

func TestSend_AmbiguityPolicies(t *testing.T) {
	tests := []struct {
		policy   mediator.AmbiguityPolicy
		expected string
	}{
		{mediator.AmbiguityFirstRegistered, "Pong"},
		{mediator.AmbiguityLastRegistered, "Pong2"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			// Arrange
			log := &callLog{}
			reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong", "PongHandler": "Pong2"}, "PingHandler", "PongHandler")
			d := mediator.NewRequestDispatcher(reg, res, mediator.WithAmbiguityPolicy(tt.policy))

			// Act
			response, err := d.Send(context.Background(), &Ping{})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, response)
			assert.Len(t, log.all(), 1)
		})
	}
}

type recordingLogger struct {
	levels   []string
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.levels = append(l.levels, level)
	l.messages = append(l.messages, message)
}

func TestSend_AmbiguityPolicyIsLogged(t *testing.T) {
	// Arrange
	log := &callLog{}
	logger := &recordingLogger{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong", "PongHandler": "Pong2"}, "PingHandler", "PongHandler")
	d := mediator.NewRequestDispatcher(reg, res, mediator.WithAmbiguityPolicy(mediator.AmbiguityFirstRegistered))

	// Act
	_, err := d.Send(logging.WithLogger(context.Background(), logger), &Ping{})

	// Assert
	require.NoError(t, err)
	require.Len(t, logger.levels, 1)
	assert.Equal(t, logging.LevelWarning, logger.levels[0])
	assert.Contains(t, logger.messages[0], "selected PingHandler")
}

func TestSend_VoidHandlerReturnsUnit(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	res := newTableResolver()
	calls := 0
	id, err := mediator.RegisterVoidRequest[*OneWay](reg, "OneWayHandler")
	require.NoError(t, err)
	res.bind(id, mediator.VoidHandlerOf(func(ctx context.Context, r *OneWay) error {
		calls++
		return nil
	}))
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	response, err := d.Send(context.Background(), &OneWay{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, mediator.Unit{}, response)
	assert.Equal(t, 1, calls)
}

func TestSend_VoidHandlerRunsInsidePipeline(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg := mediator.NewRegistry()
	res := newTableResolver()
	id, _ := mediator.RegisterVoidRequest[*OneWay](reg, "OneWayHandler")
	res.bind(id, mediator.VoidHandlerOf(func(ctx context.Context, r *OneWay) error {
		log.add("handler")
		return nil
	}))
	d := mediator.NewRequestDispatcher(reg, res, mediator.WithPipeline(mediator.NewPipeline(tracing(log, "A"))))

	// Act
	_, err := d.Send(context.Background(), &OneWay{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"A:before", "handler", "A:after"}, log.all())
}

func TestSend_HandlerErrorPropagatesUnchanged(t *testing.T) {
	// Arrange
	boom := errors.New("boom")
	reg := mediator.NewRegistry()
	res := newTableResolver()
	id, _ := mediator.RegisterRequest[*Ping, string](reg, "Failing")
	res.bind(id, mediator.HandlerOf(func(ctx context.Context, p *Ping) (string, error) {
		return "", boom
	}))
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	_, err := d.Send(context.Background(), &Ping{})

	// Assert
	assert.Same(t, boom, err)
}

func TestSend_ResolutionError(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	_, err := mediator.RegisterRequest[*Ping, string](reg, "Unbound")
	require.NoError(t, err)
	d := mediator.NewRequestDispatcher(reg, newTableResolver())

	// Act
	_, err = d.Send(context.Background(), &Ping{})

	// Assert
	var resErr *mediator.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "Unbound", resErr.Identity.Name)
	assert.ErrorIs(t, err, mediator.ErrResolution)
	assert.Contains(t, resErr.Err.Error(), "no binding for Unbound")
}

func TestSend_ResolvedInstanceMustMatchCapability(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	res := newTableResolver()
	id, _ := mediator.RegisterRequest[*Ping, string](reg, "WrongShape")
	res.bind(id, recording(&callLog{}, "listener", nil))
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	_, err := d.Send(context.Background(), &Ping{})

	// Assert
	assert.ErrorIs(t, err, mediator.ErrResolution)
	assert.Contains(t, err.Error(), "does not implement RequestHandler")
}

func TestSend_NilRequest(t *testing.T) {
	d := mediator.NewRequestDispatcher(mediator.NewRegistry(), newTableResolver())

	_, err := d.Send(context.Background(), nil)

	assert.ErrorIs(t, err, mediator.ErrNilRequest)
}

func TestSend_CancelledContextInvokesNothing(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong"}, "PingHandler")
	d := mediator.NewRequestDispatcher(reg, res)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := d.Send(ctx, &Ping{})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, log.all())
	assert.Empty(t, res.resolved)
}

func TestSend_CancellationInsidePipelineStopsBeforeHandler(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong"}, "PingHandler")
	ctx, cancel := context.WithCancel(context.Background())
	cancelling := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		cancel()
		return next(ctx, request)
	}
	d := mediator.NewRequestDispatcher(reg, res, mediator.WithPipeline(mediator.NewPipeline(cancelling)))

	// Act
	_, err := d.Send(ctx, &Ping{})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, log.all())
}

func TestSend_PanicIsRecovered(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	res := newTableResolver()
	id, _ := mediator.RegisterRequest[*Ping, string](reg, "Panicking")
	res.bind(id, mediator.HandlerOf(func(ctx context.Context, p *Ping) (string, error) {
		panic("kaboom")
	}))
	d := mediator.NewRequestDispatcher(reg, res)

	// Act
	response, err := d.Send(context.Background(), &Ping{})

	// Assert
	assert.Nil(t, response)
	var panicErr *mediator.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

func TestSend_PanicRecoveryDisabled(t *testing.T) {
	reg := mediator.NewRegistry()
	res := newTableResolver()
	id, _ := mediator.RegisterRequest[*Ping, string](reg, "Panicking")
	res.bind(id, mediator.HandlerOf(func(ctx context.Context, p *Ping) (string, error) {
		panic("kaboom")
	}))
	d := mediator.NewRequestDispatcher(reg, res, mediator.WithPanicRecovery(false))

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = d.Send(context.Background(), &Ping{})
	})
}

func TestSend_RepeatedSendsAreEqualAndLeaveRegistryUntouched(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong"}, "PingHandler")
	d := mediator.NewRequestDispatcher(reg, res)
	before := reg.Lookup(reflect.TypeOf(&Ping{}))

	// Act
	first, err1 := d.Send(context.Background(), &Ping{Message: "hi"})
	second, err2 := d.Send(context.Background(), &Ping{Message: "hi"})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, before, reg.Lookup(reflect.TypeOf(&Ping{})))
	assert.Equal(t, []string{"PingHandler", "PingHandler"}, res.resolved)
}

func TestTypedSend(t *testing.T) {
	// Arrange
	log := &callLog{}
	reg, res := setupPing(t, log, map[string]string{"PingHandler": "Pong"}, "PingHandler")
	m := mediator.New(reg, res)

	// Act
	pong, err := mediator.Send[string](context.Background(), m, &Ping{})
	_, mismatch := mediator.Send[int](context.Background(), m, &Ping{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Pong", pong)
	var typeErr *mediator.ResponseTypeError
	require.ErrorAs(t, mismatch, &typeErr)
	assert.Equal(t, reflect.TypeOf(0), typeErr.Expected)
	assert.Equal(t, reflect.TypeOf(""), typeErr.Actual)
}

func TestSend_ResolverFunc(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	_, err := mediator.RegisterRequest[*Ping, string](reg, "PingHandler")
	require.NoError(t, err)
	var seen []string
	res := mediator.ResolverFunc(func(ctx context.Context, id mediator.HandlerIdentity) (any, error) {
		seen = append(seen, id.String())
		return answering(&callLog{}, id.Name, "Pong"), nil
	})

	// Act
	got, err := mediator.Send[string](context.Background(), mediator.NewRequestDispatcher(reg, res), &Ping{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Pong", got)
	assert.Equal(t, []string{"PingHandler(RequestHandler<*mediator_test.Ping, string>)"}, seen)
}

func TestSend_ResolverPanicIsRecovered(t *testing.T) {
	// Arrange
	reg := mediator.NewRegistry()
	_, err := mediator.RegisterRequest[*Ping, string](reg, "PingHandler")
	require.NoError(t, err)
	res := mediator.ResolverFunc(func(ctx context.Context, id mediator.HandlerIdentity) (any, error) {
		panic("resolver boom")
	})

	// Act
	response, err := mediator.NewRequestDispatcher(reg, res).Send(context.Background(), &Ping{})

	// Assert
	assert.Nil(t, response)
	var panicErr *mediator.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "resolver boom", panicErr.Value)
}
