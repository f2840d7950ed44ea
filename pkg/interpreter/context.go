package interpreter

import (
	"image"
	"image/color"
	"maps"
	"slices"
)

// DefaultColor is the pen colour of a freshly created context.
var DefaultColor = color.RGBA{0, 0, 0, 255}

// Procedure is a user-defined method registered by a DefineMethod command.
type Procedure struct {
	Name       string
	Parameters []string
	Body       []Command
}

// Context is the mutable interpreter state for one script run or one
// procedure call frame.
//
// A Context is owned by the single call stack executing it and must not be
// shared between goroutines.
type Context struct {
	variables  map[string]int
	arrays     map[string][]int
	procedures map[string]*Procedure

	// Cursor state
	Position image.Point
	Color    color.RGBA
	Fill     bool
}

// NewContext creates an empty top-level context with the cursor at the origin.
func NewContext() *Context {
	return &Context{
		variables:  make(map[string]int),
		arrays:     make(map[string][]int),
		procedures: make(map[string]*Procedure),
		Color:      DefaultColor,
	}
}

// SetVariable binds name to value, overwriting any previous binding.
func (c *Context) SetVariable(name string, value int) {
	c.variables[name] = value
}

// Variable returns the value bound to name.
func (c *Context) Variable(name string) (int, bool) {
	v, ok := c.variables[name]
	return v, ok
}

// Variables returns a copy of the variable table.
func (c *Context) Variables() map[string]int {
	return maps.Clone(c.variables)
}

// DeclareArray binds an integer array. Arrays are write-once.
func (c *Context) DeclareArray(name string, values []int) error {
	if _, exists := c.arrays[name]; exists {
		return NewError(ErrorDuplicateArray, "array '%s' already exists", name)
	}
	c.arrays[name] = slices.Clone(values)
	return nil
}

// Array returns the array bound to name.
func (c *Context) Array(name string) ([]int, bool) {
	v, ok := c.arrays[name]
	return v, ok
}

// ArrayElement returns name[index].
func (c *Context) ArrayElement(name string, index int) (int, error) {
	values, ok := c.arrays[name]
	if !ok {
		return 0, NewError(ErrorUnresolvedOperand, "array '%s' is not defined", name)
	}
	if index < 0 || index >= len(values) {
		return 0, NewIndexOutOfRangeError(name, index, len(values))
	}
	return values[index], nil
}

// DefineProcedure registers a procedure. Redefinition is an error.
func (c *Context) DefineProcedure(p *Procedure) error {
	if _, exists := c.procedures[p.Name]; exists {
		return NewError(ErrorDuplicateProcedure, "a method with the name '%s' is already defined", p.Name)
	}
	c.procedures[p.Name] = p
	return nil
}

// Procedure looks up a registered procedure.
func (c *Context) Procedure(name string) (*Procedure, error) {
	p, ok := c.procedures[name]
	if !ok {
		return nil, NewUndefinedProcedureError(name)
	}
	return p, nil
}

// NewCallFrame builds the context a procedure body runs in.
// The caller's variables are copied by value and the formal parameters are
// then bound to args. Cursor state is copied as well and is written back
// by CallMethod when the body returns. Arrays and
// procedures are not inherited, so a procedure body can neither read the
// caller's arrays nor call other procedures.
func (c *Context) NewCallFrame(p *Procedure, args []int) (*Context, error) {
	if len(args) != len(p.Parameters) {
		return nil, NewError(ErrorArgumentCount, "method '%s' expects %d argument(s) but received %d",
			p.Name, len(p.Parameters), len(args))
	}

	frame := NewContext()
	maps.Copy(frame.variables, c.variables)
	for i, name := range p.Parameters {
		frame.variables[name] = args[i]
	}
	frame.Position = c.Position
	frame.Color = c.Color
	frame.Fill = c.Fill
	return frame, nil
}
