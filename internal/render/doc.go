// Package render fills the bundled source templates. Substitution is limited
// to a fixed pair of ##-delimited tokens; anything else in a template is
// copied through unchanged.
package render
