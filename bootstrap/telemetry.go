package bootstrap

import (
	"context"

	"github.com/kbukum/groupchain/observability"
)

// initTelemetry installs the OTLP tracer and, when enabled, the meter
// provider. Provider shutdown is registered as a stop hook.
func (a *App) initTelemetry(ctx context.Context) error {
	tc := a.Cfg.Tracing
	if !tc.Enabled {
		a.Summary.TrackInfrastructure("tracing", "disabled", true)
		return nil
	}

	tracerCfg := observability.DefaultTracerConfig(a.Name)
	tracerCfg.ServiceVersion = a.Version
	tracerCfg.Environment = a.Cfg.Environment
	tracerCfg.Endpoint = tc.Endpoint
	tracerCfg.Insecure = tc.Insecure
	tracerCfg.SampleRate = tc.SampleRate

	tp, err := observability.InitTracer(ctx, &tracerCfg)
	if err != nil {
		a.Summary.TrackInfrastructure("tracing", tc.Endpoint, false)
		return err
	}
	a.OnStop(tp.Shutdown)
	a.Summary.TrackInfrastructure("tracing", tc.Endpoint, true)

	if !tc.Metrics {
		return nil
	}

	meterCfg := observability.DefaultMeterConfig(a.Name)
	meterCfg.ServiceVersion = a.Version
	meterCfg.Environment = a.Cfg.Environment
	meterCfg.Endpoint = tc.Endpoint
	meterCfg.Insecure = tc.Insecure
	meterCfg.Interval = tc.MetricsInterval

	mp, err := observability.InitMeter(ctx, &meterCfg)
	if err != nil {
		a.Summary.TrackInfrastructure("metrics", tc.Endpoint, false)
		return err
	}
	a.OnStop(mp.Shutdown)
	a.Metrics = observability.DefaultMetrics()
	a.Summary.TrackInfrastructure("metrics", tc.Endpoint, true)
	return nil
}
