package shell

import (
	"fmt"
	"strings"
)

// Verb identifies a shell command.
type Verb string

// The verbs of the shell grammar. "quit" parses as VerbExit.
const (
	VerbGet    Verb = "get"
	VerbSet    Verb = "set"
	VerbDelete Verb = "delete"
	VerbLen    Verb = "len"
	VerbEmpty  Verb = "empty"
	VerbHelp   Verb = "help"
	VerbExit   Verb = "exit"
)

// exitAlias is accepted in place of VerbExit.
const exitAlias = "quit"

// Command is one parsed shell line. Key and Value are set only for the
// verbs that carry them.
type Command struct {
	Verb  Verb
	Key   string
	Value string
}

// Parse turns one input line into a Command.
//
// General notes:
//   - Matching is case-insensitive on the verb; keys and values keep
//     their case.
//   - get and delete take exactly one key token.
//   - set takes a key token followed by the value, which runs to the end
//     of the line with its inner spacing preserved.
//   - len, empty, help, and exit take no arguments.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Command{}, ErrEmptyCommand
	}

	fields := strings.Fields(trimmed)

	verbToken := strings.ToLower(fields[0])
	if verbToken == exitAlias {
		verbToken = string(VerbExit)
	}

	verb := Verb(verbToken)

	switch verb {
	case VerbGet, VerbDelete:
		if len(fields) < 2 {
			return Command{}, fmt.Errorf("%w: %s needs a key", ErrMissingArgument, verb)
		}

		if len(fields) > 2 {
			return Command{}, fmt.Errorf("%w: %s takes a single key", ErrTooManyArguments, verb)
		}

		return Command{Verb: verb, Key: fields[1]}, nil
	case VerbSet:
		if len(fields) < 3 {
			return Command{}, fmt.Errorf("%w: set needs a key and a value", ErrMissingArgument)
		}

		// The value is the remainder of the line after the key token,
		// with outer whitespace trimmed and inner spacing preserved.
		afterVerb := strings.TrimSpace(trimmed[len(fields[0]):])
		value := strings.TrimSpace(afterVerb[len(fields[1]):])

		return Command{Verb: verb, Key: fields[1], Value: value}, nil
	case VerbLen, VerbEmpty, VerbHelp, VerbExit:
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrTooManyArguments, verb)
		}

		return Command{Verb: verb}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}
