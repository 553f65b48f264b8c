// Package api contains the HTTP boundary: request/response models, handlers
// that translate requests into service calls, and the mapping from service
// errors onto status codes. Handlers validate request shape before any
// service call and never leak raw internal errors to clients.
package api
