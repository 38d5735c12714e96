// Package observability provides OpenTelemetry tracing and metrics for chain
// operations.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("groupchain")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("groupchain")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("groupchain"))
//	metrics.RecordGroup(ctx, 3)
//
// Operations:
//
//	oc := observability.NewOperationContext(chainID, "concat", metrics)
//	ctx, span := oc.Start(ctx, observability.SpanConcat)
//	defer func() { oc.End(ctx, span, code, err) }()
package observability
