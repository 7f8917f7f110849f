// Package middleware provides HTTP middleware shared by every route.
package middleware
