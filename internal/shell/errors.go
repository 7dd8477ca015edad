package shell

import "errors"

// Parse errors, inspectable with errors.Is.
var (
	// ErrEmptyCommand is returned for blank or whitespace-only lines.
	ErrEmptyCommand = errors.New("empty command")
	// ErrUnknownCommand is returned when the verb is not part of the
	// grammar.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a verb lacks a required key or
	// value.
	ErrMissingArgument = errors.New("missing argument")
	// ErrTooManyArguments is returned when a verb receives more tokens
	// than its grammar allows.
	ErrTooManyArguments = errors.New("too many arguments")
)
