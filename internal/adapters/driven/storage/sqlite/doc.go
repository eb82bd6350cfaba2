// Package sqlite provides a SQLite-based implementation of the boardpack
// persistence ports.
//
// It uses modernc.org/sqlite, a pure Go SQLite that needs no CGO. One
// database connection pool backs every store:
//
//   - PeriodStore: months of board governance
//   - ArtefactStore: uploaded documents and authored notes
//   - ExtractionStore: canonical payloads, one per artefact and kind
//   - ActionStore: action items and their carry-over state
//   - AgendaStore: versioned agendas, UNIQUE(period_id, version)
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Applied versions are recorded in schema_migrations. Foreign
// keys cascade from artefacts to their extractions and sourced actions, and
// from periods to their agendas; a period with artefacts cannot be deleted.
//
// # Data Location
//
// By default, the database is stored at ~/.boardpack/data/boardpack.db
package sqlite
