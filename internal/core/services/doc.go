// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The agenda pipeline lives here: the identity joiner (join.go), the
// cross-period aggregator (aggregate.go), the request payload builder
// (payload.go), the evidence ledger (evidence.go) and the assembler that
// drives them (agenda.go).
package services
