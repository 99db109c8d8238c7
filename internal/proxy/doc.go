// Package proxy implements the webseed request pipeline: path sanitization,
// per-log cache lookup, upstream fetch-and-populate, HTTP Range resolution,
// and the README.md metadata diversion. The dispatcher resolves every failure
// locally into an HTTP status (400/404/416/502); only the stats registry and
// the per-log cache are mutated, both behind their own locks.
package proxy
