package outbox

import (
	"context"
	"fmt"
	"runtime/debug"

	domoutbox "github.com/Zhima-Mochi/minishop-inventory/internal/domain/outbox"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability/logctx"
)

const componentOutbox = "outbox"

// Bus is an in-process event bus. Publish runs every subscribed handler
// inline, in subscription order, before returning. Handler failures are
// logged and counted but never reported to the publisher.
type Bus struct {
	subs      map[string][]domoutbox.Handler
	log       observability.Logger
	published observability.Counter
	failed    observability.Counter
}

func NewBus(tel observability.Observability) *Bus {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Bus{
		subs:      make(map[string][]domoutbox.Handler),
		log:       tel.Logger().With(observability.F("component", componentOutbox)),
		published: tel.Metrics().Counter(observability.MEventsPublished),
		failed:    tel.Metrics().Counter(observability.MEventHandlerErrs),
	}
}

func (b *Bus) Subscribe(eventName string, h domoutbox.Handler) {
	if h == nil {
		return
	}
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Publish(ctx context.Context, e domoutbox.Event) error {
	if e == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		logctx.FromOr(ctx, b.log).Warn("event_publish_aborted",
			observability.F("event", e.EventName()),
			observability.Err(err),
		)
		return err
	}

	name := e.EventName()
	b.published.Add(1, observability.L("event", name))

	handlers := b.subs[name]
	logger := logctx.FromOr(ctx, b.log).With(observability.F("event", name))
	if len(handlers) == 0 {
		logger.Debug("event_dropped_no_subscriber")
		return nil
	}

	hctx := logctx.With(ctx, logger)
	for _, h := range handlers {
		if err := b.dispatch(hctx, h, e); err != nil {
			b.failed.Add(1, observability.L("event", name))
			logger.Warn("event_handler_error",
				observability.Err(err),
			)
		}
	}

	logger.Debug("event_fanned_out",
		observability.F("handlers", len(handlers)),
	)
	return nil
}

func (b *Bus) dispatch(ctx context.Context, h domoutbox.Handler, e domoutbox.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logctx.FromOr(ctx, b.log).Error("event_handler_panic",
				observability.F("panic", r),
				observability.F("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("outbox: handler panicked: %v", r)
		}
	}()
	return h(ctx, e)
}
