package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/andyeko/memkv/store"
)

const (
	prompt          = "memkv> "
	historyFileName = ".memkv_history"
)

const usage = `Commands:
  get <key>          print the value stored under key
  set <key> <value>  store value under key (value may contain spaces)
  delete <key>       remove key and print the removed value
  len                print the number of entries
  empty              print whether the store is empty
  help               print this help
  exit               leave the shell (quit works too)
`

// notFound is printed when get or delete misses; absence is an ordinary
// answer here, not an error.
const notFound = "(not found)"

// Session wires a Store to an interactive line editor.
type Session struct {
	store store.Store
	rl    *readline.Instance
	out   io.Writer
}

// NewSession builds a session around st with history kept in the system
// temp directory and tab completion for every verb.
func NewSession(st store.Store) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       filepath.Join(os.TempDir(), historyFileName),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		AutoComplete:      completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("init line editor: %w", err)
	}

	return &Session{
		store: st,
		rl:    rl,
		out:   os.Stdout,
	}, nil
}

// Run reads and executes lines until exit, end of input, or an interrupt
// on an empty line.
func (s *Session) Run() error {
	defer s.rl.Close()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if strings.TrimSpace(line) == "" {
					return nil
				}

				continue
			}

			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read line: %w", err)
		}

		cmd, err := Parse(line)
		if err != nil {
			if errors.Is(err, ErrEmptyCommand) {
				continue
			}

			fmt.Fprintf(s.out, "error: %v\n", err)

			continue
		}

		if quit := s.execute(cmd); quit {
			return nil
		}
	}
}

// execute runs one parsed command and reports whether the session should
// end.
func (s *Session) execute(cmd Command) bool {
	switch cmd.Verb {
	case VerbGet:
		if value, ok := s.store.Get(cmd.Key); ok {
			fmt.Fprintln(s.out, value)
		} else {
			fmt.Fprintln(s.out, notFound)
		}
	case VerbSet:
		s.store.Set(cmd.Key, cmd.Value)
		fmt.Fprintln(s.out, "OK")
	case VerbDelete:
		if value, ok := s.store.Delete(cmd.Key); ok {
			fmt.Fprintln(s.out, value)
		} else {
			fmt.Fprintln(s.out, notFound)
		}
	case VerbLen:
		fmt.Fprintln(s.out, s.store.Len())
	case VerbEmpty:
		fmt.Fprintln(s.out, s.store.IsEmpty())
	case VerbHelp:
		fmt.Fprint(s.out, usage)
	case VerbExit:
		return true
	}

	return false
}

// completer lists every verb for tab completion.
func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(string(VerbGet)),
		readline.PcItem(string(VerbSet)),
		readline.PcItem(string(VerbDelete)),
		readline.PcItem(string(VerbLen)),
		readline.PcItem(string(VerbEmpty)),
		readline.PcItem(string(VerbHelp)),
		readline.PcItem(string(VerbExit)),
		readline.PcItem(exitAlias),
	)
}
