// Package shell provides the interactive line-oriented frontend to a
// Store: a tiny verb grammar, a parser, and a readline-backed session
// loop with history and tab completion.
//
// The grammar is one command per line. Keys are single tokens; a set
// value is everything after the key, so values may contain spaces. Keys
// with spaces and empty values are expressible through the Store API but
// not through the shell.
package shell
