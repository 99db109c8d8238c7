// Package server hosts the Fiber HTTP service, request middleware chain, and
// the log registry glue that maps /webseed/<log>/ mounts onto proxy handlers.
// It bootstraps Fiber, attaches recovery and request-ID middlewares, injects
// the LogRegistry built from config, and exposes the shared upstream HTTP
// client that all log fetches reuse. Keep exports narrow and accept explicit
// dependencies so tests can inject fakes for every collaborator.
package server
