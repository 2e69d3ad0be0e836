// Package telemetry wraps service operations with a span, operation metrics,
// panic recovery, and outcome logging.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/xp-bot/app/shared/attr"
	"github.com/Black-And-White-Club/xp-bot/app/shared/opmetrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Observer carries the collaborators shared by one service's operations.
type Observer struct {
	Service string
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics opmetrics.OperationMetrics

	// Expected reports errors that are normal business outcomes (not found,
	// conflict, validation). They are logged at WARN and do not mark the span
	// as failed.
	Expected func(error) bool
}

// Run executes op inside a span named operation. The returned error wraps
// op's error with the operation name, so errors.Is still matches sentinels.
func Run[T any](ctx context.Context, o Observer, operation string, attrs []attribute.KeyValue, op func(ctx context.Context) (T, error)) (result T, err error) {
	ctx, span := o.Tracer.Start(ctx, operation, trace.WithAttributes(
		append([]attribute.KeyValue{attribute.String("operation", operation)}, attrs...)...,
	))
	defer span.End()

	logAttrs := make([]any, 0, len(attrs)+3)
	logAttrs = append(logAttrs, attr.ExtractCorrelationID(ctx), attr.String("operation", operation))
	for _, kv := range attrs {
		logAttrs = append(logAttrs, slog.Any(string(kv.Key), kv.Value.AsInterface()))
	}

	o.Metrics.RecordOperationAttempt(ctx, operation, o.Service)

	startTime := time.Now()
	defer func() {
		o.Metrics.RecordOperationDuration(ctx, operation, o.Service, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operation, r)
			o.Logger.ErrorContext(ctx, "Critical panic recovered", append(logAttrs, attr.Error(err))...)
			o.Metrics.RecordOperationFailure(ctx, operation, o.Service)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operation, err)
		if o.Expected != nil && o.Expected(err) {
			o.Logger.WarnContext(ctx, "Operation returned business failure", append(logAttrs, attr.Error(err))...)
			o.Metrics.RecordOperationSuccess(ctx, operation, o.Service)
			return result, wrappedErr
		}
		o.Logger.ErrorContext(ctx, "Operation failed with error", append(logAttrs, attr.Error(wrappedErr))...)
		o.Metrics.RecordOperationFailure(ctx, operation, o.Service)
		span.RecordError(wrappedErr)
		span.SetStatus(codes.Error, wrappedErr.Error())
		return result, wrappedErr
	}

	o.Logger.InfoContext(ctx, "Operation completed successfully", logAttrs...)
	o.Metrics.RecordOperationSuccess(ctx, operation, o.Service)
	return result, nil
}
