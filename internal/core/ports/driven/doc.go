// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PeriodStore, ArtefactStore, ExtractionStore: Per-period persistence
//   - ActionStore: Action item persistence
//   - AgendaStore: Versioned agenda persistence
//   - TextExtractor / TextExtractorRegistry: Raw file bytes to plain text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, extraction and
//     drafting return domain.ErrLLMUnavailable.
//   - StructuredExtractor, AgendaDrafter: LLM-backed collaborators.
//   - PromptStore: User-editable prompt templates.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
