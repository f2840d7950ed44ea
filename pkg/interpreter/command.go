package interpreter

import (
	"errors"
)

// Kind identifies a command variant.
type Kind string

// Command kinds for every statement of the language.
const (
	KindMoveTo          Kind = "MoveTo"
	KindDrawTo          Kind = "DrawTo"
	KindSetPen          Kind = "SetPen"
	KindSetColour       Kind = "SetColour"
	KindDrawRectangle   Kind = "DrawRectangle"
	KindDrawCircle      Kind = "DrawCircle"
	KindDrawTriangle    Kind = "DrawTriangle"
	KindSetFill         Kind = "SetFill"
	KindReset           Kind = "Reset"
	KindClear           Kind = "Clear"
	KindDeclareVariable Kind = "DeclareVariable"
	KindAssign          Kind = "Assign"
	KindDeclareIntArray Kind = "DeclareIntArray"
	KindIf              Kind = "If"
	KindWhile           Kind = "While"
	KindDefineMethod    Kind = "DefineMethod"
	KindCallMethod      Kind = "CallMethod"
)

// Command is one validated unit of work.
//
// The set of variants is closed: only types in this package implement it.
// Commands are immutable once built and may be executed any number of times.
type Command interface {
	Kind() Kind
	Execute(r Renderer, ctx *Context) error
	// Source returns the 1-indexed line and raw text the command was parsed from.
	Source() (int, string)

	setSource(line int, text string)
}

// source records where a command came from. Line is 0 for commands built
// outside the parser.
type source struct {
	line int
	text string
}

func (s *source) Source() (int, string) {
	return s.line, s.text
}

func (s *source) setSource(line int, text string) {
	s.line = line
	s.text = text
}

// Execute runs cmds in order against ctx, stopping at the first error.
// The failing command is recorded in an *ExecError unless a nested command
// already was.
func Execute(cmds []Command, r Renderer, ctx *Context) error {
	for _, cmd := range cmds {
		if err := cmd.Execute(r, ctx); err != nil {
			var execErr *ExecError
			if errors.As(err, &execErr) {
				return err
			}
			line, text := cmd.Source()
			return &ExecError{Line: line, Text: text, Kind: cmd.Kind(), Err: err}
		}
	}
	return nil
}

// Walk calls fn for cmd and every command nested inside it, depth first.
func Walk(cmds []Command, fn func(Command)) {
	for _, cmd := range cmds {
		fn(cmd)
		switch c := cmd.(type) {
		case *If:
			Walk(c.Body, fn)
		case *While:
			Walk(c.Body, fn)
		case *DefineMethod:
			Walk(c.Body, fn)
		}
	}
}

// CountCommands returns the number of commands in cmds including every
// command nested inside blocks.
func CountCommands(cmds []Command) int {
	n := 0
	Walk(cmds, func(Command) { n++ })
	return n
}
