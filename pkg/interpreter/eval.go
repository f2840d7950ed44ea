package interpreter

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	identifierPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	arrayAccessPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[([^\[\]]+)\]$`)
)

// isIdentifier reports whether s is a valid variable, array or method name.
func isIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// isOperandToken reports whether s has the shape of an operand reference:
// an integer literal, an identifier or name[index].
// It does not check that the operand can be resolved.
func isOperandToken(s string) bool {
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	if isIdentifier(s) {
		return true
	}
	m := arrayAccessPattern.FindStringSubmatch(s)
	return m != nil && isOperandToken(m[2])
}

// ResolveOperand resolves token to an integer.
// Resolution order: integer literal, variable, array element.
func ResolveOperand(token string, ctx *Context) (int, error) {
	token = strings.TrimSpace(token)

	if v, err := strconv.Atoi(token); err == nil {
		return v, nil
	}
	if v, ok := ctx.Variable(token); ok {
		return v, nil
	}
	if m := arrayAccessPattern.FindStringSubmatch(token); m != nil {
		index, err := ResolveOperand(m[2], ctx)
		if err != nil {
			return 0, err
		}
		return ctx.ArrayElement(m[1], index)
	}
	return 0, NewUnresolvedOperandError(token)
}

// EvaluateArithmetic applies one of + - * / % to left and right.
func EvaluateArithmetic(left int, op string, right int) (int, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, NewDivisionByZeroError()
		}
		return left / right, nil
	case "%":
		if right == 0 {
			return 0, NewDivisionByZeroError()
		}
		return left % right, nil
	default:
		return 0, NewError(ErrorUnsupportedOperator, "unsupported operator '%s' in expression", op)
	}
}

// CompareValues applies one of < > to left and right.
// Only strict comparisons exist in the language.
func CompareValues(left int, op string, right int) (bool, error) {
	switch op {
	case "<":
		return left < right, nil
	case ">":
		return left > right, nil
	default:
		return false, NewError(ErrorUnsupportedOperator, "unsupported operator '%s' in condition", op)
	}
}

// EvaluateCondition evaluates "operand op operand".
func EvaluateCondition(condition string, ctx *Context) (bool, error) {
	parts := strings.Fields(condition)
	if len(parts) != 3 {
		return false, NewError(ErrorInvalidConditionFormat, "invalid condition format %q: expected 'operand < operand' or 'operand > operand'", condition)
	}

	left, err := ResolveOperand(parts[0], ctx)
	if err != nil {
		return false, err
	}
	right, err := ResolveOperand(parts[2], ctx)
	if err != nil {
		return false, err
	}
	return CompareValues(left, parts[1], right)
}

// EvaluateExpression evaluates either a single operand or "operand op operand".
func EvaluateExpression(expr string, ctx *Context) (int, error) {
	parts := strings.Fields(expr)
	switch len(parts) {
	case 1:
		return ResolveOperand(parts[0], ctx)
	case 3:
		left, err := ResolveOperand(parts[0], ctx)
		if err != nil {
			return 0, err
		}
		right, err := ResolveOperand(parts[2], ctx)
		if err != nil {
			return 0, err
		}
		return EvaluateArithmetic(left, parts[1], right)
	default:
		return 0, NewError(ErrorInvalidExpression, "invalid expression format %q", expr)
	}
}
