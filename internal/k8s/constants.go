package k8s

import "time"

// Kubernetes client constants
const (
	// OpenAPIFetchTimeout bounds each request to the /openapi/v3 endpoints.
	// Aggregated documents for large API groups can take a few seconds to
	// render on the API server.
	OpenAPIFetchTimeout = 30 * time.Second

	// OpenAPIContentType is requested from the server; protobuf schemas are
	// not supported by the parser.
	OpenAPIContentType = "application/json"
)
