// Package redis provides Redis-backed notification and locking adapters.
package redis
