package interpreter

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var (
	// int[] name = {1,2,3}
	arrayDeclPattern = regexp.MustCompile(`^(?i:int)\s*\[\s*\]\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*\{(.*)\}$`)
	// method name(p1, p2) / method name
	methodHeaderPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\((.*)\))?$`)
	// name(a1, a2)
	callPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)$`)
)

// frameKind identifies an open block while parsing.
type frameKind int

const (
	frameLoop frameKind = iota
	frameIf
	frameMethod
)

func (k frameKind) construct() string {
	switch k {
	case frameLoop:
		return "loop"
	case frameIf:
		return "if block"
	default:
		return "method block"
	}
}

// frame is one pending block. The body is owned by the frame until the
// closing keyword wraps it into a compound command.
type frame struct {
	kind      frameKind
	line      int
	text      string
	condition string   // while / if
	name      string   // method
	params    []string // method
	body      []Command
}

// Parser turns script text into top-level commands.
//
// Blocks are tracked with an explicit stack of frames instead of a
// recursive grammar: the language only has the paired keywords
// while/endloop, if/endif and method/endmethod.
type Parser struct {
	factory *Factory
	log     *slog.Logger
}

// NewParser creates a Parser.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{
		factory: NewFactory(log),
		log:     log,
	}
}

// parseState is the working state of a single Parse call.
type parseState struct {
	top    []Command
	frames []frame
}

// emit appends cmd to the innermost open block, or to the top level.
func (s *parseState) emit(cmd Command) {
	if n := len(s.frames); n > 0 {
		s.frames[n-1].body = append(s.frames[n-1].body, cmd)
		return
	}
	s.top = append(s.top, cmd)
}

func (s *parseState) push(f frame) {
	s.frames = append(s.frames, f)
}

// pop removes the innermost frame, which must be of the given kind.
func (s *parseState) pop(kind frameKind, closer string) (frame, error) {
	n := len(s.frames)
	if n == 0 {
		return frame{}, NewError(ErrorUnmatchedBlock, "'%s' without a matching opening block", closer)
	}
	f := s.frames[n-1]
	if f.kind != kind {
		return frame{}, NewError(ErrorUnmatchedBlock, "'%s' found but the innermost open block is the %s opened at line %d",
			closer, f.kind.construct(), f.line)
	}
	s.frames = s.frames[:n-1]
	return f, nil
}

func (s *parseState) inLoop() (frame, bool) {
	for _, f := range s.frames {
		if f.kind == frameLoop {
			return f, true
		}
	}
	return frame{}, false
}

// Parse converts the whole script into top-level commands.
// Each failing line is reported as a *CommandError carrying its 1-indexed
// line number; blocks left open produce an *UnclosedBlockError.
func (p *Parser) Parse(src string) ([]Command, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyScript
	}

	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	state := &parseState{}
	lastLine := 0

	for i, raw := range lines {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lineNo := i + 1
		lastLine = lineNo

		if err := p.parseLine(state, lineNo, text); err != nil {
			p.log.Debug("Parse failed", "line", lineNo, "text", text, "error", err)
			return nil, &CommandError{Line: lineNo, Text: text, Err: err}
		}
	}

	for _, kind := range []frameKind{frameLoop, frameIf, frameMethod} {
		for _, f := range state.frames {
			if f.kind == kind {
				return nil, &UnclosedBlockError{
					Construct: kind.construct(),
					Header:    f.text,
					OpenedAt:  f.line,
					LastLine:  lastLine,
				}
			}
		}
	}

	p.log.Debug("Script parsed", "commands", len(state.top), "lines", lastLine)
	return state.top, nil
}

// parseLine handles one non-blank trimmed line.
func (p *Parser) parseLine(s *parseState, lineNo int, text string) error {
	if m := arrayDeclPattern.FindStringSubmatch(text); m != nil {
		values, err := parseArrayLiteral(m[2])
		if err != nil {
			return err
		}
		s.emit(located(&DeclareIntArray{Name: m[1], Values: values}, lineNo, text))
		return nil
	}

	keyword, rest := splitKeyword(text)

	switch keyword {
	case "while":
		if open, ok := s.inLoop(); ok {
			return NewError(ErrorUnmatchedBlock, "nested while is not supported (loop opened at line %d is still open)", open.line)
		}
		if err := checkCondition(rest); err != nil {
			return err
		}
		s.push(frame{kind: frameLoop, line: lineNo, text: text, condition: rest})
		return nil

	case "endloop":
		if rest != "" {
			return NewInvalidParameterError("'endloop' does not expect any parameters but received: %q", rest)
		}
		f, err := s.pop(frameLoop, "endloop")
		if err != nil {
			return err
		}
		s.emit(located(&While{Condition: f.condition, Body: f.body}, f.line, f.text))
		return nil

	case "if":
		if err := checkCondition(rest); err != nil {
			return err
		}
		s.push(frame{kind: frameIf, line: lineNo, text: text, condition: rest})
		return nil

	case "endif":
		if rest != "" {
			return NewInvalidParameterError("'endif' does not expect any parameters but received: %q", rest)
		}
		f, err := s.pop(frameIf, "endif")
		if err != nil {
			return err
		}
		s.emit(located(&If{Condition: f.condition, Body: f.body}, f.line, f.text))
		return nil

	case "method":
		name, params, err := parseMethodHeader(rest)
		if err != nil {
			return err
		}
		s.push(frame{kind: frameMethod, line: lineNo, text: text, name: name, params: params})
		return nil

	case "endmethod":
		if rest != "" {
			return NewInvalidParameterError("'endmethod' does not expect any parameters but received: %q", rest)
		}
		f, err := s.pop(frameMethod, "endmethod")
		if err != nil {
			return err
		}
		// Definitions always land at the top level, in the order their
		// endmethod lines appear.
		s.top = append(s.top, located(&DefineMethod{Name: f.name, Parameters: f.params, Body: f.body}, f.line, f.text))
		return nil
	}

	if m := callPattern.FindStringSubmatch(text); m != nil && !IsKeyword(m[1]) {
		args, err := parseCallArguments(m[2])
		if err != nil {
			return err
		}
		s.emit(located(&CallMethod{Name: m[1], Arguments: args}, lineNo, text))
		return nil
	}

	cmd, err := p.factory.CreateCommand(text)
	if err != nil {
		return err
	}
	s.emit(located(cmd, lineNo, text))
	return nil
}

func located(cmd Command, line int, text string) Command {
	cmd.setSource(line, text)
	return cmd
}

// splitKeyword returns the lower-cased first word and the trimmed remainder.
func splitKeyword(text string) (string, string) {
	word, rest, _ := strings.Cut(text, " ")
	if i := strings.IndexAny(word, "\t("); i >= 0 {
		rest = word[i:] + " " + rest
		word = word[:i]
	}
	return strings.ToLower(word), strings.TrimSpace(rest)
}

// checkCondition validates the shape of a while/if condition.
func checkCondition(cond string) error {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return NewInvalidParameterError("invalid condition %q. Expected format: value < value or value > value", cond)
	}
	if parts[1] != "<" && parts[1] != ">" {
		return NewInvalidParameterError("unsupported operator %q in condition %q", parts[1], cond)
	}
	if !isOperandToken(parts[0]) || !isOperandToken(parts[2]) {
		return NewInvalidParameterError("invalid operand in condition %q", cond)
	}
	return nil
}

func parseArrayLiteral(body string) ([]int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return []int{}, nil
	}
	parts := strings.Split(body, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, NewInvalidParameterError("invalid array element %q. Expected an integer literal", strings.TrimSpace(part))
		}
		values = append(values, v)
	}
	return values, nil
}

func parseMethodHeader(rest string) (string, []string, error) {
	m := methodHeaderPattern.FindStringSubmatch(rest)
	if m == nil {
		return "", nil, NewInvalidParameterError("invalid method definition %q. Expected format: method name(p1, p2)", rest)
	}
	if IsKeyword(m[1]) {
		return "", nil, NewInvalidParameterError("%q is a reserved word and cannot be used as a method name", m[1])
	}

	var params []string
	if strings.TrimSpace(m[2]) != "" {
		seen := make(map[string]bool)
		for _, p := range strings.Split(m[2], ",") {
			p = strings.TrimSpace(p)
			if !isIdentifier(p) || IsKeyword(p) {
				return "", nil, NewInvalidParameterError("invalid parameter name %q in method '%s'", p, m[1])
			}
			if seen[p] {
				return "", nil, NewInvalidParameterError("duplicate parameter name %q in method '%s'", p, m[1])
			}
			seen[p] = true
			params = append(params, p)
		}
	}
	return m[1], params, nil
}

func parseCallArguments(body string) ([]string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	parts := strings.Split(body, ",")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if !isOperandToken(part) {
			return nil, NewInvalidParameterError("invalid argument %q. Expected a number or variable", part)
		}
		args = append(args, part)
	}
	return args, nil
}
