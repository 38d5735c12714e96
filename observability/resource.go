package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const instrumentationName = "github.com/kbukum/groupchain"

// ServiceInfo identifies the process in exported telemetry.
type ServiceInfo struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// Exporter locates the OTLP/HTTP collector.
type Exporter struct {
	// Endpoint is the collector's host:port, e.g. "localhost:4318".
	Endpoint string
	// Insecure disables TLS.
	Insecure bool
}

func defaultService(name string) ServiceInfo {
	return ServiceInfo{ServiceName: name, ServiceVersion: "dev", Environment: "development"}
}

func defaultExporter() Exporter {
	return Exporter{Endpoint: "localhost:4318", Insecure: true}
}

// resource merges the service attributes into the SDK default resource.
// The attributes are schemaless so the merge works whatever schema the SDK
// default carries.
func (s ServiceInfo) resource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(s.ServiceName),
			semconv.ServiceVersion(s.ServiceVersion),
			attribute.String("environment", s.Environment),
		),
	)
}
