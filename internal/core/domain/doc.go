// Package domain defines the core business entities for boardpack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Period: A calendar month ("YYYY-MM"), the unit of agenda generation
//   - Artefact: An uploaded or authored document scoped to one period
//   - Extraction: Canonical structured facts derived from an artefact
//   - ActionItem: A tracked task that carries over while open
//   - Agenda: A versioned, evidence-referenced agenda document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
