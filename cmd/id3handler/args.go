package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/id3handler/internal/model"
	"github.com/handiism/id3handler/internal/tagging"
)

const commandWatch = "watch"

// invocation is the classified positional command line.
type invocation struct {
	command  string
	path     string
	override string
	fields   []string
	dirs     []string
	verbose  bool
}

// classifyArgs sorts positional arguments the way users have always typed
// them: the command word and -v may appear anywhere, the first argument
// naming an existing file or directory is the target, an argument holding
// a slash is the override string and anything else is the next field.
// Flags other than -v must come before the first positional argument.
func classifyArgs(args []string, exists func(string) bool) (invocation, error) {
	var inv invocation

	for _, arg := range args {
		switch {
		case inv.command == "" && isCommand(arg):
			inv.command = arg
		case arg == "-v":
			inv.verbose = true
		case len(arg) > 1 && strings.HasPrefix(arg, "-") && !exists(arg):
			return inv, fmt.Errorf("flag %s must come before the other arguments", arg)
		case inv.command == commandWatch:
			inv.dirs = append(inv.dirs, arg)
		case inv.path == "" && exists(arg):
			inv.path = arg
		case strings.Contains(arg, "/"):
			inv.override = arg
		default:
			inv.fields = append(inv.fields, arg)
		}
	}

	switch {
	case inv.command == "":
		return inv, errors.New("unknown or missing command")
	case inv.command == commandWatch:
		// Arguments given before the command word are directories too.
		if inv.path != "" {
			inv.dirs = append([]string{inv.path}, inv.dirs...)
			inv.path = ""
		}
		if len(inv.dirs) == 0 {
			return inv, errors.New("no directory to watch")
		}
	case len(inv.fields) > model.FieldCount:
		return inv, fmt.Errorf("%w! Aborting", tagging.ErrTooManyFields)
	case inv.path == "":
		return inv, errors.New("file doesn't exist")
	}
	return inv, nil
}

func isCommand(arg string) bool {
	if arg == commandWatch {
		return true
	}
	_, ok := tagging.ParseCommand(arg)
	return ok
}

// request converts a non-watch invocation into a tagging request.
func (inv invocation) request() tagging.Request {
	cmd, _ := tagging.ParseCommand(inv.command)
	return tagging.Request{
		Command:  cmd,
		Paths:    []string{inv.path},
		Override: inv.override,
		Fields:   inv.fields,
	}
}
