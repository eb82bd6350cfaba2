// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.boardpack/config.toml
//   - PromptStore: user-editable prompt templates in ~/.boardpack/prompts/
package file
