package tagging

import (
	"errors"
	"fmt"

	"github.com/handiism/id3handler/internal/model"
	"github.com/handiism/id3handler/internal/pathmeta"
)

var (
	// ErrIncomplete is reported when the inferred record has an unknown or
	// out-of-range field and is therefore not written.
	ErrIncomplete = errors.New("some input values are incorrect")

	// ErrUnchanged is reported when the file already carries the inferred record.
	ErrUnchanged = errors.New("information already matches")

	// ErrEmpty is reported by remove when the file carries no tag data.
	ErrEmpty = errors.New("item is already empty")

	// ErrTooManyFields is returned when more than five forced fields are given.
	ErrTooManyFields = errors.New("too many inputs")

	// ErrAmbiguousOverride is returned when an override string or forced
	// fields would be applied to more than one file.
	ErrAmbiguousOverride = errors.New("override values require a single target file")
)

// Command is the operation applied to each file.
type Command int

const (
	CommandPrint Command = iota
	CommandUpdate
	CommandRemove
)

// ParseCommand maps a command-line word to a Command.
func ParseCommand(s string) (Command, bool) {
	switch s {
	case "print":
		return CommandPrint, true
	case "update":
		return CommandUpdate, true
	case "remove":
		return CommandRemove, true
	}
	return 0, false
}

func (c Command) String() string {
	switch c {
	case CommandPrint:
		return "print"
	case CommandUpdate:
		return "update"
	case CommandRemove:
		return "remove"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Source selects where an update takes its values from.
type Source int

const (
	// SourcePath infers the record from each file's own path.
	SourcePath Source = iota
	// SourceOverride parses Request.Override as if it were a path.
	SourceOverride
	// SourceFields uses Request.Fields verbatim.
	SourceFields
)

// Request describes one batch of work.
//
// Example:
//
//	// id3handler update "/music/Song.mp3" "Artist - 2001 - Album / 03 - Title"
//	req := Request{
//	    Command:  CommandUpdate,
//	    Paths:    []string{"/music/Song.mp3"},
//	    Override: "Artist - 2001 - Album / 03 - Title",
//	}
type Request struct {
	Command Command
	Paths   []string

	// Override is parsed instead of the file path when non-empty.
	Override string

	// Fields holds up to five values in the order artist, year, album,
	// track, title. Missing trailing values are unknown.
	Fields []string
}

// Source reports which inference source the request uses. Forced fields
// win over an override string.
func (r Request) Source() Source {
	switch {
	case len(r.Fields) > 0:
		return SourceFields
	case r.Override != "":
		return SourceOverride
	}
	return SourcePath
}

// Validate checks the request for argument errors.
func (r Request) Validate() error {
	if len(r.Paths) == 0 {
		return errors.New("no input path given")
	}
	if len(r.Fields) > model.FieldCount {
		return fmt.Errorf("%w: got %d fields, want at most %d", ErrTooManyFields, len(r.Fields), model.FieldCount)
	}
	return nil
}

// forced builds the record for SourceFields. Absent values keep their
// sentinel so the update policy rejects a partial record.
func (r Request) forced() model.Metadata {
	values := [model.FieldCount]string{model.Unknown, "0", model.Unknown, "0", model.Unknown}
	for i, v := range r.Fields {
		values[i] = v
	}
	return pathmeta.Force(values[0], values[1], values[2], values[3], values[4])
}
