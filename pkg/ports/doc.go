/*
Package ports defines the driven ports (interfaces) of the Lumina assistant.

These interfaces decouple the session core from the AI backend, the global
notification channel and cross-replica locking.

# Key Interfaces

  - AIService: the six AI-assisted operations, one request/response pair each.
  - Notifier: process-wide channel for transport failures.
  - DistributedLocker: distributed locking for owners served by several replicas.
*/
package ports
