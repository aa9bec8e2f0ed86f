// Package cli defines the Cobra command tree for the modgen CLI. Each file
// in this package registers one top-level command with the root command.
// Command implementations delegate to internal packages for the generation
// logic and only handle flag parsing, prompting and output formatting.
package cli
