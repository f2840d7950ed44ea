package interpreter

// If runs its body once when the condition holds. There is no else branch
// and the body shares the enclosing context.
type If struct {
	source
	Condition string
	Body      []Command
}

func (c *If) Kind() Kind { return KindIf }

func (c *If) Execute(r Renderer, ctx *Context) error {
	ok, err := EvaluateCondition(c.Condition, ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return Execute(c.Body, r, ctx)
}

// While re-evaluates its condition before every pass and runs the body
// until the condition is false. A condition that never becomes false
// never terminates.
type While struct {
	source
	Condition string
	Body      []Command
}

func (c *While) Kind() Kind { return KindWhile }

func (c *While) Execute(r Renderer, ctx *Context) error {
	for {
		ok, err := EvaluateCondition(c.Condition, ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := Execute(c.Body, r, ctx); err != nil {
			return err
		}
	}
}

// DefineMethod registers a procedure when executed. Calls reached before
// the definition is executed fail with UNDEFINED_PROCEDURE.
type DefineMethod struct {
	source
	Name       string
	Parameters []string
	Body       []Command
}

func (c *DefineMethod) Kind() Kind { return KindDefineMethod }

func (c *DefineMethod) Execute(r Renderer, ctx *Context) error {
	return ctx.DefineProcedure(&Procedure{
		Name:       c.Name,
		Parameters: c.Parameters,
		Body:       c.Body,
	})
}

// CallMethod runs a procedure body in a fresh call frame.
// Variable changes made by the body stay in the frame. The cursor, pen
// colour and fill flag are shared with the renderer, so their final values
// are handed back to the caller, even when the body fails.
type CallMethod struct {
	source
	Name      string
	Arguments []string
}

func (c *CallMethod) Kind() Kind { return KindCallMethod }

func (c *CallMethod) Execute(r Renderer, ctx *Context) error {
	proc, err := ctx.Procedure(c.Name)
	if err != nil {
		return err
	}

	args := make([]int, len(c.Arguments))
	for i, ref := range c.Arguments {
		v, err := ResolveOperand(ref, ctx)
		if err != nil {
			return err
		}
		args[i] = v
	}

	frame, err := ctx.NewCallFrame(proc, args)
	if err != nil {
		return err
	}
	err = Execute(proc.Body, r, frame)
	ctx.Position = frame.Position
	ctx.Color = frame.Color
	ctx.Fill = frame.Fill
	return err
}
