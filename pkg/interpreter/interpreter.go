// Package interpreter implements the pendraw drawing language.
//
// A script is parsed line by line into a tree of Commands: leaf commands
// come from the Factory, and the Parser groups while/if/method blocks into
// compound commands. Commands run against a Context holding variables,
// arrays, procedures and the pen cursor, and draw through a Renderer.
// Syntax errors carry the failing line (*CommandError, *UnclosedBlockError);
// runtime errors carry the innermost failing command (*ExecError).
package interpreter

import (
	"fmt"
	"log/slog"
	"time"
)

// Interpreter parses and runs pendraw scripts.
// It holds no per-run state, so one Interpreter may serve concurrent runs
// as long as each run has its own Context.
type Interpreter struct {
	parser *Parser
	log    *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// New creates an Interpreter.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.parser = NewParser(in.log)
	return in
}

// Parse converts script text into top-level commands without executing them.
func (in *Interpreter) Parse(src string) ([]Command, error) {
	return in.parser.Parse(src)
}

// CheckSyntax parses the script and reports the first syntax error.
// Nothing is executed and no renderer is involved.
func (in *Interpreter) CheckSyntax(src string) error {
	_, err := in.parser.Parse(src)
	return err
}

// Run parses the script and executes it against ctx.
// Mutations applied before a failing command are kept.
func (in *Interpreter) Run(src string, r Renderer, ctx *Context) error {
	cmds, err := in.parser.Parse(src)
	if err != nil {
		return fmt.Errorf("syntax error: %w", err)
	}

	in.log.Info("Script parsed", "commands", len(cmds), "total", CountCommands(cmds))
	start := time.Now()

	if err := Execute(cmds, r, ctx); err != nil {
		in.log.Debug("Script execution stopped", "elapsed", time.Since(start), "error", err)
		return fmt.Errorf("runtime error: %w", err)
	}

	in.log.Info("Script finished", "elapsed", time.Since(start), "position", ctx.Position)
	return nil
}
