// Package mcp provides an MCP (Model Context Protocol) server adapter for
// boardpack. It lets AI assistants list periods, generate and read agendas
// and review carried-over actions.
package mcp

import "errors"

var (
	// ErrMissingPeriodService is returned when the period service is not provided.
	ErrMissingPeriodService = errors.New("mcp: period service is required")

	// ErrMissingAgendaService is returned when the agenda service is not provided.
	ErrMissingAgendaService = errors.New("mcp: agenda service is required")
)
