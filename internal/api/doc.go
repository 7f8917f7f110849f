// Package api handles incoming HTTP requests, routing, request decoding,
// and response formatting. It is the only layer that translates errors into
// HTTP status codes.
package api
