package interpreter

import (
	"log/slog"
	"strconv"
	"strings"
)

// keywords are the reserved words of the language. They cannot be used as
// variable, array or method names.
var keywords = map[string]bool{
	"moveto": true, "drawto": true, "pen": true, "colour": true, "color": true,
	"rect": true, "circle": true, "tri": true, "fill": true, "reset": true,
	"clear": true, "var": true, "int": true,
	"while": true, "endloop": true, "if": true, "endif": true,
	"method": true, "endmethod": true,
}

var arithmeticOperators = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

// IsKeyword reports whether word (case-insensitive) is reserved.
func IsKeyword(word string) bool {
	return keywords[strings.ToLower(word)]
}

// Factory builds leaf commands from single source lines.
// It validates syntax only; operands are resolved when the command runs.
type Factory struct {
	log *slog.Logger
}

// NewFactory creates a Factory.
func NewFactory(log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{log: log}
}

// CreateCommand builds the leaf command for one line.
// It returns an INVALID_COMMAND error for an unknown leading keyword and an
// INVALID_PARAMETER (or INVALID_COLOR) error for malformed arguments.
func (f *Factory) CreateCommand(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return nil, NewError(ErrorInvalidCommand, "empty command")
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]
	raw := strings.Join(args, " ")

	var cmd Command
	var err error

	switch name {
	case "moveto":
		cmd, err = f.pointCommand(name, args, func(x, y string) Command { return &MoveTo{X: x, Y: y} })
	case "drawto":
		cmd, err = f.pointCommand(name, args, func(x, y string) Command { return &DrawTo{X: x, Y: y} })
	case "pen":
		cmd, err = f.penCommand(args)
	case "colour", "color":
		cmd, err = f.colourCommand(name, args)
	case "rect":
		cmd, err = f.rectCommand(args)
	case "circle":
		var radius string
		radius, err = f.positiveArg(name, "radius", args)
		cmd = &DrawCircle{Radius: radius}
	case "tri":
		var side string
		side, err = f.positiveArg(name, "side length", args)
		cmd = &DrawTriangle{Side: side}
	case "fill":
		if len(args) != 1 || (strings.ToLower(args[0]) != "on" && strings.ToLower(args[0]) != "off") {
			return nil, NewInvalidParameterError("invalid parameter for 'fill'. Expected 'on' or 'off' but received: %q", raw)
		}
		cmd = &SetFill{On: strings.ToLower(args[0]) == "on"}
	case "reset":
		if len(args) > 0 {
			return nil, NewInvalidParameterError("the 'reset' command does not expect any parameters but received: %q", raw)
		}
		cmd = &Reset{}
	case "clear":
		if len(args) > 0 {
			return nil, NewInvalidParameterError("the 'clear' command does not expect any parameters but received: %q", raw)
		}
		cmd = &Clear{}
	case "var":
		cmd, err = f.declareCommand(strings.TrimSpace(trimmed[len(fields[0]):]))
	default:
		cmd, err = f.assignCommand(trimmed)
	}
	if err != nil {
		return nil, err
	}

	f.log.Debug("Command created", "kind", cmd.Kind(), "line", trimmed)
	return cmd, nil
}

// splitArgs joins the argument tokens and splits them on commas, so that
// "10,20", "10, 20" and "10 ,20" are equivalent. Whitespace inside a single
// argument ("1 0") is rejected.
func splitArgs(name string, args []string) ([]string, error) {
	joined := strings.Join(args, " ")
	if strings.TrimSpace(joined) == "" {
		return nil, nil
	}
	parts := strings.Split(joined, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if strings.ContainsAny(parts[i], " \t") {
			return nil, NewInvalidParameterError("invalid argument %q for '%s'. Arguments must be separated by commas", parts[i], name)
		}
	}
	return parts, nil
}

func (f *Factory) pointCommand(name string, args []string, build func(x, y string) Command) (Command, error) {
	raw := strings.Join(args, " ")
	parts, err := splitArgs(name, args)
	if err != nil {
		return nil, err
	}
	if len(parts) < 2 {
		return nil, NewInvalidParameterError("invalid parameters for '%s'. Expected format: x,y but received: %q", name, raw)
	}
	if len(parts) != 2 {
		return nil, NewInvalidParameterError("invalid number of parameters for '%s'. Expected 2 but received %d", name, len(parts))
	}
	if !isOperandToken(parts[0]) || !isOperandToken(parts[1]) {
		return nil, NewInvalidParameterError("invalid coordinates provided for '%s'. Expected two numbers or variables but received: %q", name, raw)
	}
	return build(parts[0], parts[1]), nil
}

func (f *Factory) penCommand(args []string) (Command, error) {
	if len(args) != 1 || args[0] == "" {
		return nil, NewInvalidParameterError("invalid colour provided for 'pen' command: %q", strings.Join(args, " "))
	}
	c, ok := LookupPenColor(args[0])
	if !ok {
		return nil, NewError(ErrorInvalidColor, "invalid colour %q provided for 'pen' command. Supported colours are: %s",
			args[0], strings.Join(PenColorNames(), ", "))
	}
	return &SetPen{Name: strings.ToLower(args[0]), Color: c}, nil
}

func (f *Factory) colourCommand(name string, args []string) (Command, error) {
	raw := strings.Join(args, " ")
	parts, err := splitArgs(name, args)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, NewInvalidParameterError("invalid parameters for '%s'. Expected format: r,g,b but received: %q", name, raw)
	}
	for _, p := range parts {
		if !isOperandToken(p) {
			return nil, NewInvalidParameterError("invalid colour channel %q for '%s'", p, name)
		}
		if v, err := strconv.Atoi(p); err == nil && (v < 0 || v > 255) {
			return nil, NewInvalidParameterError("colour channel %d for '%s' is out of range, expected 0-255", v, name)
		}
	}
	return &SetColour{R: parts[0], G: parts[1], B: parts[2]}, nil
}

func (f *Factory) rectCommand(args []string) (Command, error) {
	raw := strings.Join(args, " ")
	parts, err := splitArgs("rect", args)
	if err != nil {
		return nil, err
	}
	if len(parts) != 2 {
		return nil, NewInvalidParameterError("invalid parameters for 'rect'. Expected format: width,height but received: %q", raw)
	}
	for _, p := range parts {
		if err := checkPositiveLiteral(p, "rect", "width and height"); err != nil {
			return nil, err
		}
	}
	return &DrawRectangle{Width: parts[0], Height: parts[1]}, nil
}

// positiveArg validates the single argument of circle and tri.
func (f *Factory) positiveArg(name, what string, args []string) (string, error) {
	if len(args) != 1 {
		return "", NewInvalidParameterError("invalid %s provided for '%s'. Expected one number or variable but received: %q",
			what, name, strings.Join(args, " "))
	}
	if err := checkPositiveLiteral(args[0], name, what); err != nil {
		return "", err
	}
	return args[0], nil
}

// checkPositiveLiteral rejects malformed operands and literals that are not
// strictly positive. Variables are checked when the command runs.
func checkPositiveLiteral(token, name, what string) error {
	if !isOperandToken(token) {
		return NewInvalidParameterError("invalid %s provided for '%s'. Expected number or variable but received: %q", what, name, token)
	}
	if v, err := strconv.Atoi(token); err == nil && v <= 0 {
		return NewInvalidParameterError("%s for '%s' must be positive but received: %d", what, name, v)
	}
	return nil
}

// declareCommand parses "name = expr" (or a bare "name", which declares zero).
func (f *Factory) declareCommand(rest string) (Command, error) {
	name, expr, hasValue := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	if !hasValue {
		expr = "0"
	}
	if err := checkVariableName(name, "var"); err != nil {
		return nil, err
	}
	if err := checkExpression(expr); err != nil {
		return nil, err
	}
	return &DeclareVariable{Name: name, Expr: strings.TrimSpace(expr)}, nil
}

// assignCommand recognises "name = expr". Anything else is an unknown command.
func (f *Factory) assignCommand(line string) (Command, error) {
	name, expr, ok := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if !ok || !isIdentifier(name) {
		word := strings.ToLower(strings.Fields(line)[0])
		return nil, NewError(ErrorInvalidCommand, "unknown command %q", word)
	}
	if err := checkVariableName(name, "assignment"); err != nil {
		return nil, err
	}
	if err := checkExpression(expr); err != nil {
		return nil, err
	}
	return &Assign{Name: name, Expr: strings.TrimSpace(expr)}, nil
}

func checkVariableName(name, context string) error {
	if !isIdentifier(name) {
		return NewInvalidParameterError("invalid variable name %q in %s", name, context)
	}
	if IsKeyword(name) {
		return NewInvalidParameterError("%q is a reserved word and cannot be used as a variable name", name)
	}
	return nil
}

// checkExpression validates the shape "operand" or "operand op operand".
func checkExpression(expr string) error {
	parts := strings.Fields(expr)
	switch len(parts) {
	case 1:
		if isOperandToken(parts[0]) {
			return nil
		}
	case 3:
		if !arithmeticOperators[parts[1]] {
			return NewInvalidParameterError("unsupported operator %q in expression %q", parts[1], strings.TrimSpace(expr))
		}
		if isOperandToken(parts[0]) && isOperandToken(parts[2]) {
			return nil
		}
	}
	return NewInvalidParameterError("invalid expression %q. Expected 'value' or 'value op value'", strings.TrimSpace(expr))
}
