// Package handlers provides middleware for routekit routers: structured
// request logging, request ID propagation, panic recovery, and Prometheus
// metrics.
package handlers
