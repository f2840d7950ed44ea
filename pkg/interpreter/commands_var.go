package interpreter

import (
	"slices"
)

// DeclareVariable binds a variable to the value of an expression.
// Declaring an existing variable again overwrites it.
type DeclareVariable struct {
	source
	Name string
	Expr string
}

func (c *DeclareVariable) Kind() Kind { return KindDeclareVariable }

func (c *DeclareVariable) Execute(r Renderer, ctx *Context) error {
	v, err := EvaluateExpression(c.Expr, ctx)
	if err != nil {
		return err
	}
	ctx.SetVariable(c.Name, v)
	return nil
}

// Assign stores the value of an expression into a variable.
type Assign struct {
	source
	Name string
	Expr string
}

func (c *Assign) Kind() Kind { return KindAssign }

func (c *Assign) Execute(r Renderer, ctx *Context) error {
	v, err := EvaluateExpression(c.Expr, ctx)
	if err != nil {
		return err
	}
	ctx.SetVariable(c.Name, v)
	return nil
}

// DeclareIntArray binds a read-only integer array.
type DeclareIntArray struct {
	source
	Name   string
	Values []int
}

func (c *DeclareIntArray) Kind() Kind { return KindDeclareIntArray }

func (c *DeclareIntArray) Execute(r Renderer, ctx *Context) error {
	return ctx.DeclareArray(c.Name, slices.Clone(c.Values))
}
