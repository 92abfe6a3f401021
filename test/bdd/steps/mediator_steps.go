package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/mediator-go/internal/application/demo"
	"github.com/andrescamacho/mediator-go/internal/application/mediator"
	"github.com/andrescamacho/mediator-go/internal/infrastructure/resolver"
	"github.com/andrescamacho/mediator-go/test/helpers"
)

type mediatorContext struct {
	binder   *resolver.Binder
	pipeline *mediator.Pipeline
	opts     []mediator.Option
	log      *helpers.CallLog

	response   mediator.Response
	sendErr    error
	publishErr error
}

func (ctx *mediatorContext) reset() {
	ctx.binder = resolver.NewBinder()
	ctx.pipeline = mediator.NewPipeline()
	ctx.opts = nil
	ctx.log = helpers.NewCallLog()
	ctx.response = nil
	ctx.sendErr = nil
	ctx.publishErr = nil
}

// build creates a mediator from everything the scenario has registered so far
func (ctx *mediatorContext) build() mediator.Mediator {
	opts := append([]mediator.Option{mediator.WithPipeline(ctx.pipeline)}, ctx.opts...)
	return mediator.New(ctx.binder.Registry, ctx.binder.Container, opts...)
}

// InitializeMediatorScenario registers the send, publish and pipeline steps
func InitializeMediatorScenario(sc *godog.ScenarioContext) {
	medCtx := &mediatorContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		medCtx.reset()
		return ctx, nil
	})

	sc.Step(`^a fresh mediator$`, medCtx.aFreshMediator)

	// Send
	sc.Step(`^a request handler "([^"]*)" for Ping answering "([^"]*)"$`, medCtx.aRequestHandlerForPingAnswering)
	sc.Step(`^a request handler "([^"]*)" for Ping failing with "([^"]*)"$`, medCtx.aRequestHandlerForPingFailingWith)
	sc.Step(`^a no-result handler "([^"]*)" for OneWay$`, medCtx.aNoResultHandlerForOneWay)
	sc.Step(`^the ambiguity policy is "([^"]*)"$`, medCtx.theAmbiguityPolicyIs)
	sc.Step(`^I send Ping$`, medCtx.iSendPing)
	sc.Step(`^I send OneWay$`, medCtx.iSendOneWay)
	sc.Step(`^the response should be "([^"]*)"$`, medCtx.theResponseShouldBe)
	sc.Step(`^the response should be Unit$`, medCtx.theResponseShouldBeUnit)
	sc.Step(`^the send should fail with a no handler error$`, medCtx.theSendShouldFailWithNoHandlerError)
	sc.Step(`^the send should fail with an ambiguous handler error listing (\d+) candidates$`, medCtx.theSendShouldFailWithAmbiguousHandlerError)
	sc.Step(`^the send should fail with "([^"]*)"$`, medCtx.theSendShouldFailWith)
	sc.Step(`^(\d+) handlers? should be registered for Ping$`, medCtx.handlersShouldBeRegisteredForPing)

	// Publish
	sc.Step(`^a notification handler "([^"]*)" for PingNotification$`, medCtx.aNotificationHandler)
	sc.Step(`^a notification handler "([^"]*)" for PingNotification failing with "([^"]*)"$`, medCtx.aFailingNotificationHandler)
	sc.Step(`^the publish strategy is "([^"]*)"$`, medCtx.thePublishStrategyIs)
	sc.Step(`^I publish PingNotification$`, medCtx.iPublishPingNotification)
	sc.Step(`^the publish should succeed$`, medCtx.thePublishShouldSucceed)
	sc.Step(`^the publish should fail with (\d+) handler failures?:$`, medCtx.thePublishShouldFailWithHandlerFailures)

	// Pipeline
	sc.Step(`^a behavior "([^"]*)"$`, medCtx.aBehavior)
	sc.Step(`^a behavior "([^"]*)" that short-circuits with "([^"]*)"$`, medCtx.aShortCircuitBehavior)
	sc.Step(`^a behavior "([^"]*)" scoped to OneWay$`, medCtx.aBehaviorScopedToOneWay)

	// Call log
	sc.Step(`^the call log should be:$`, medCtx.theCallLogShouldBe)
	sc.Step(`^the call log should contain:$`, medCtx.theCallLogShouldContain)
	sc.Step(`^the call log should be empty$`, medCtx.theCallLogShouldBeEmpty)
	sc.Step(`^"([^"]*)" should have been invoked (\d+) times?$`, medCtx.shouldHaveBeenInvokedTimes)
}

func (ctx *mediatorContext) aFreshMediator() error {
	ctx.reset()
	return nil
}

// ============================================================================
// Send
// ============================================================================

func (ctx *mediatorContext) aRequestHandlerForPingAnswering(name, response string) error {
	return resolver.BindRequest[*demo.Ping, string](ctx.binder, name, func() mediator.RequestHandler {
		return helpers.AnsweringHandler(ctx.log, name, response, "")
	})
}

func (ctx *mediatorContext) aRequestHandlerForPingFailingWith(name, failure string) error {
	return resolver.BindRequest[*demo.Ping, string](ctx.binder, name, func() mediator.RequestHandler {
		return helpers.AnsweringHandler(ctx.log, name, nil, failure)
	})
}

func (ctx *mediatorContext) aNoResultHandlerForOneWay(name string) error {
	return resolver.BindVoidRequest[*demo.OneWay](ctx.binder, name, func() mediator.VoidRequestHandler {
		return helpers.SideEffectHandler(ctx.log, name)
	})
}

func (ctx *mediatorContext) theAmbiguityPolicyIs(policy string) error {
	p, err := mediator.ParseAmbiguityPolicy(policy)
	if err != nil {
		return err
	}
	ctx.opts = append(ctx.opts, mediator.WithAmbiguityPolicy(p))
	return nil
}

func (ctx *mediatorContext) iSendPing() error {
	ctx.response, ctx.sendErr = ctx.build().Send(context.Background(), &demo.Ping{})
	return nil
}

func (ctx *mediatorContext) iSendOneWay() error {
	ctx.response, ctx.sendErr = ctx.build().Send(context.Background(), &demo.OneWay{})
	return nil
}

func (ctx *mediatorContext) theResponseShouldBe(expected string) error {
	if ctx.sendErr != nil {
		return fmt.Errorf("expected response %q but send failed: %w", expected, ctx.sendErr)
	}
	if ctx.response != expected {
		return fmt.Errorf("expected response %q, got %v", expected, ctx.response)
	}
	return nil
}

func (ctx *mediatorContext) theResponseShouldBeUnit() error {
	if ctx.sendErr != nil {
		return fmt.Errorf("expected Unit but send failed: %w", ctx.sendErr)
	}
	if _, ok := ctx.response.(mediator.Unit); !ok {
		return fmt.Errorf("expected Unit, got %T", ctx.response)
	}
	return nil
}

func (ctx *mediatorContext) theSendShouldFailWithNoHandlerError() error {
	var noHandler *mediator.NoHandlerError
	if !errors.As(ctx.sendErr, &noHandler) {
		return fmt.Errorf("expected NoHandlerError, got %v", ctx.sendErr)
	}
	return nil
}

func (ctx *mediatorContext) theSendShouldFailWithAmbiguousHandlerError(candidates int) error {
	var ambiguous *mediator.AmbiguousHandlerError
	if !errors.As(ctx.sendErr, &ambiguous) {
		return fmt.Errorf("expected AmbiguousHandlerError, got %v", ctx.sendErr)
	}
	if ambiguous.CandidateCount != candidates {
		return fmt.Errorf("expected %d candidates, got %d", candidates, ambiguous.CandidateCount)
	}
	return nil
}

func (ctx *mediatorContext) theSendShouldFailWith(message string) error {
	if ctx.sendErr == nil {
		return fmt.Errorf("expected send to fail with %q, but it succeeded", message)
	}
	if ctx.sendErr.Error() != message {
		return fmt.Errorf("expected error %q, got %q", message, ctx.sendErr.Error())
	}
	return nil
}

func (ctx *mediatorContext) handlersShouldBeRegisteredForPing(count int) error {
	ids := ctx.binder.Registry.Lookup(reflect.TypeOf(&demo.Ping{}))
	if len(ids) != count {
		return fmt.Errorf("expected %d registrations for Ping, got %d", count, len(ids))
	}
	return nil
}

// ============================================================================
// Publish
// ============================================================================

func (ctx *mediatorContext) aNotificationHandler(name string) error {
	return ctx.aFailingNotificationHandler(name, "")
}

func (ctx *mediatorContext) aFailingNotificationHandler(name, failure string) error {
	return resolver.BindNotification[*demo.PingNotification](ctx.binder, name, func() mediator.NotificationHandler {
		return helpers.RecordingNotificationHandler(ctx.log, name, failure)
	})
}

func (ctx *mediatorContext) thePublishStrategyIs(strategy string) error {
	s, err := mediator.ParsePublishStrategy(strategy)
	if err != nil {
		return err
	}
	ctx.opts = append(ctx.opts, mediator.WithPublishStrategy(s))
	return nil
}

func (ctx *mediatorContext) iPublishPingNotification() error {
	ctx.publishErr = ctx.build().Publish(context.Background(), &demo.PingNotification{})
	return nil
}

func (ctx *mediatorContext) thePublishShouldSucceed() error {
	if ctx.publishErr != nil {
		return fmt.Errorf("expected publish to succeed, got %w", ctx.publishErr)
	}
	return nil
}

func (ctx *mediatorContext) thePublishShouldFailWithHandlerFailures(count int, table *godog.Table) error {
	var aggregate *mediator.AggregateNotificationError
	if !errors.As(ctx.publishErr, &aggregate) {
		return fmt.Errorf("expected AggregateNotificationError, got %v", ctx.publishErr)
	}
	if len(aggregate.Failures) != count {
		return fmt.Errorf("expected %d failures, got %d: %v", count, len(aggregate.Failures), aggregate)
	}

	for _, row := range table.Rows[1:] {
		handler := getCellValue(table, row, "handler")
		expected := getCellValue(table, row, "error")

		err, ok := aggregate.FailureFor(handler)
		if !ok {
			return fmt.Errorf("expected a failure for %s", handler)
		}
		if err.Error() != expected {
			return fmt.Errorf("expected %s to fail with %q, got %q", handler, expected, err.Error())
		}
	}
	return nil
}

// ============================================================================
// Pipeline
// ============================================================================

func (ctx *mediatorContext) aBehavior(name string) error {
	ctx.pipeline.Use(helpers.TracingBehavior(ctx.log, name))
	return nil
}

func (ctx *mediatorContext) aShortCircuitBehavior(name, response string) error {
	ctx.pipeline.Use(helpers.ShortCircuitBehavior(ctx.log, name, response))
	return nil
}

func (ctx *mediatorContext) aBehaviorScopedToOneWay(name string) error {
	ctx.pipeline.UseFor(helpers.TracingBehavior(ctx.log, name), reflect.TypeOf(&demo.OneWay{}))
	return nil
}

// ============================================================================
// Call log
// ============================================================================

func (ctx *mediatorContext) theCallLogShouldBe(table *godog.Table) error {
	expected, err := columnValues(table, "entry")
	if err != nil {
		return err
	}
	actual := ctx.log.Entries()
	if strings.Join(actual, ",") != strings.Join(expected, ",") {
		return fmt.Errorf("expected call log %v, got %v", expected, actual)
	}
	return nil
}

func (ctx *mediatorContext) theCallLogShouldContain(table *godog.Table) error {
	expected, err := columnValues(table, "entry")
	if err != nil {
		return err
	}
	actual := ctx.log.Entries()
	sort.Strings(expected)
	sort.Strings(actual)
	if strings.Join(actual, ",") != strings.Join(expected, ",") {
		return fmt.Errorf("expected call log to contain exactly %v, got %v", expected, actual)
	}
	return nil
}

func (ctx *mediatorContext) theCallLogShouldBeEmpty() error {
	if entries := ctx.log.Entries(); len(entries) != 0 {
		return fmt.Errorf("expected nothing to be invoked, got %v", entries)
	}
	return nil
}

func (ctx *mediatorContext) shouldHaveBeenInvokedTimes(name string, times int) error {
	if n := ctx.log.Count(name); n != times {
		return fmt.Errorf("expected %s to be invoked %d times, got %d", name, times, n)
	}
	return nil
}
