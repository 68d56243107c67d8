// Package prompt cleans user-written prompts before they are sent to the AI service.
package prompt
