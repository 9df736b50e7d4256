// Package http implements the REST API of the registry server.
//
// Routes are served by a chi router. Every request passes through panic
// recovery, trace id propagation, access logging, Prometheus instrumentation
// and response compression before it reaches a handler, which delegates to
// the service layer and maps service and store errors to HTTP statuses.
package http
