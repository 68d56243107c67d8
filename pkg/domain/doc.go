/*
Package domain contains the core models shared by the formatter and the AI session layer.

It is kept pure and free of I/O: adapters translate wire formats into these types and
back, following Hexagonal Architecture principles.

# Key Entities

  - DisplayValue: closed union (Scalar, Sequence, Mapping) rendered by package format.
  - Attribute, Constraint, ConstraintContext: how raw document values are interpreted.
  - Request/Response models for the six AI-assisted operations.
  - Result: Ok(payload) or Err(message), decoded once at the service boundary.
  - RequestEvent and LifecycleHooks: observable session transitions.
*/
package domain
