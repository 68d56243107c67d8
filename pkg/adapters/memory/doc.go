// Package memory provides in-process collaborators: a scripted AI service
// and a recording notifier. They back tests, demos and the CLI's offline mode.
package memory
