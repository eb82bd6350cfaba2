// Package extraction is the normalisation boundary between untyped AI
// extraction output and the canonical payloads in the domain package.
//
// Each extraction kind has one pure function that reads a loosely keyed
// JSON object (camelCase or snake_case field names, plus a few aliases)
// and returns a strict record together with the entries it had to drop.
// Untyped data never crosses this package.
//
// Failures come in two tiers. A payload that is not a JSON object is a hard
// failure for its artefact and is returned as *domain.ExtractionParseError.
// A malformed entry inside an otherwise valid payload is soft: it is
// removed and reported as a Drop in the Result, never as an error.
package extraction
