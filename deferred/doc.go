// Package deferred provides a scope-bound deferred-computation primitive.
// Load runs one unit of work on a background executor and delivers its
// outcome to at most one consumer, exactly once; ending the bound scope
// cancels any pending delivery automatically.
package deferred
