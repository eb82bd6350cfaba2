// Package normalisers provides the TextExtractor implementations that turn
// uploaded board-pack files into plain text, and the registry that selects
// between them by MIME type and priority.
package normalisers
