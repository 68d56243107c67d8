// Package dto holds the wire shapes exchanged with the AI REST backend.
package dto
