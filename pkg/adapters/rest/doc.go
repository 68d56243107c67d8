// Package rest implements the AI service over the backend REST API.
package rest
