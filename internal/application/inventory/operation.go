package inventory

import (
	"context"
	"strings"
	"time"

	dominv "github.com/Zhima-Mochi/minishop-inventory/internal/domain/inventory"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability"
	"github.com/Zhima-Mochi/minishop-inventory/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanPrefix     = "UC."
	useCasePrefix  = "inventory."
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// operation carries the span, logger and timer of one instrumented Store call.
type operation struct {
	s       *Store
	ctx     context.Context
	useCase string
	span    trace.Span
	logger  observability.Logger
	start   time.Time
}

func (s *Store) begin(ctx context.Context, name string, fields ...observability.Field) *operation {
	useCase := useCasePrefix + strings.ToLower(name)

	attrs := []attribute.KeyValue{attribute.String("use_case", useCase)}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			attrs = append(attrs, attribute.String("inventory."+f.Key, v))
		case int:
			attrs = append(attrs, attribute.Int("inventory."+f.Key, v))
		}
	}
	ctx, span := s.tracer.Start(ctx, spanPrefix+name, attrs...)

	logFields := append([]observability.Field{observability.F("use_case", useCase)}, fields...)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logFields = append(logFields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	ctx, logger := logctx.Enrich(ctx, s.log, logFields...)

	return &operation{
		s:       s,
		ctx:     ctx,
		useCase: useCase,
		span:    span,
		logger:  logger,
		start:   time.Now(),
	}
}

func (o *operation) end(err error, fields ...observability.Field) {
	outcome, status := outcomeSuccess, "OK"
	if err != nil {
		outcome = outcomeError
		status = strings.ToUpper(dominv.Kind(err))
	}

	if o.span != nil {
		if err != nil {
			o.span.RecordError(err)
			o.span.SetStatus(codes.Error, status)
		} else {
			o.span.SetStatus(codes.Ok, status)
		}
		o.span.End()
	}

	latency := time.Since(o.start).Seconds()
	if o.s.reqCounter != nil {
		o.s.reqCounter.Add(1,
			observability.L("use_case", o.useCase),
			observability.L("outcome", outcome),
		)
	}
	if o.s.durHistogram != nil {
		o.s.durHistogram.Observe(latency,
			observability.L("use_case", o.useCase),
		)
	}

	fields = append(fields,
		observability.F("outcome", outcome),
		observability.F("status", status),
		observability.F("latency_seconds", latency),
	)
	if err != nil {
		fields = append(fields,
			observability.F("failure_reason", dominv.Kind(err)),
			observability.F("error", err.Error()),
		)
	}

	o.logger.Info("use_case_done", fields...)
}
