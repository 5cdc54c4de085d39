// Package mapper implements a declarative, JSON-driven data transformation
// engine: given a library of named mappings and an input document, it
// evaluates the descriptor tree and produces an output document together
// with a list of validation errors.
package mapper
