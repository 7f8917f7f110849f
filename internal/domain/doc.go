// Package domain contains the core business entities of the books API.
// It has no knowledge of HTTP, SQL or configuration; the other layers
// translate to and from the types defined here.
package domain
