package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Operation statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// OperationContext tracks one terminal operation of a chain: its span, its
// timing and the metrics it records.
type OperationContext struct {
	ChainID   string
	Operation string
	StartTime time.Time
	Metrics   *Metrics
}

// NewOperationContext starts timing an operation. A nil metrics skips
// metric recording.
func NewOperationContext(chainID, operation string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ChainID:   chainID,
		Operation: operation,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// Start opens the operation span and stores the operation in the returned context.
func (oc *OperationContext) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrChainID, oc.ChainID),
		attribute.String(AttrOperation, oc.Operation),
	)
	return WithOperationContext(ctx, oc), span
}

// End closes the span and records the outcome. code is the error code of err
// and is ignored when err is nil.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, code string, err error) {
	duration := time.Since(oc.StartTime)
	status := StatusOK
	if err != nil {
		status = StatusError
		markFailed(span, err)
		span.SetAttributes(attribute.String(AttrErrorCode, code))
		oc.Metrics.RecordError(ctx, code, oc.Operation)
	}
	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()
	oc.Metrics.RecordOperation(ctx, oc.Operation, status, duration)
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
