package interpreter

import (
	"testing"
)

func TestResolveOperand(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("x", 42)
	ctx.SetVariable("i", 1)
	if err := ctx.DeclareArray("nums", []int{10, 20, 30}); err != nil {
		t.Fatalf("DeclareArray failed: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		want    int
		wantErr ErrorType
	}{
		{"literal", "15", 15, ""},
		{"negative literal", "-7", -7, ""},
		{"variable", "x", 42, ""},
		{"array literal index", "nums[2]", 30, ""},
		{"array variable index", "nums[i]", 20, ""},
		{"unknown variable", "y", 0, ErrorUnresolvedOperand},
		{"unknown array", "other[0]", 0, ErrorUnresolvedOperand},
		{"index too large", "nums[3]", 0, ErrorIndexOutOfRange},
		{"negative index", "nums[-1]", 0, ErrorIndexOutOfRange},
		{"garbage", "1x", 0, ErrorUnresolvedOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveOperand(tt.token, ctx)
			if tt.wantErr != "" {
				if !IsErrorType(err, tt.wantErr) {
					t.Fatalf("expected %s error, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestResolveOperand_LiteralBeforeVariable(t *testing.T) {
	ctx := NewContext()
	got, err := ResolveOperand("+5", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	tests := []struct {
		left, right int
		op          string
		want        int
		wantErr     ErrorType
	}{
		{7, 3, "+", 10, ""},
		{7, 3, "-", 4, ""},
		{7, 3, "*", 21, ""},
		{7, 3, "/", 2, ""},
		{7, 3, "%", 1, ""},
		{7, 0, "/", 0, ErrorDivisionByZero},
		{7, 0, "%", 0, ErrorDivisionByZero},
		{7, 3, "^", 0, ErrorUnsupportedOperator},
	}

	for _, tt := range tests {
		got, err := EvaluateArithmetic(tt.left, tt.op, tt.right)
		if tt.wantErr != "" {
			if !IsErrorType(err, tt.wantErr) {
				t.Errorf("%d %s %d: expected %s error, got %v", tt.left, tt.op, tt.right, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d %s %d: unexpected error: %v", tt.left, tt.op, tt.right, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%d %s %d: expected %d, got %d", tt.left, tt.op, tt.right, tt.want, got)
		}
	}
}

func TestEvaluateCondition(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("x", 3)

	tests := []struct {
		cond    string
		want    bool
		wantErr ErrorType
	}{
		{"x < 5", true, ""},
		{"x > 5", false, ""},
		{"5 > x", true, ""},
		{"x  <   4", true, ""},
		{"x <= 5", false, ErrorUnsupportedOperator},
		{"x == 3", false, ErrorUnsupportedOperator},
		{"x < ", false, ErrorInvalidConditionFormat},
		{"x < 5 < 6", false, ErrorInvalidConditionFormat},
		{"", false, ErrorInvalidConditionFormat},
		{"y < 5", false, ErrorUnresolvedOperand},
	}

	for _, tt := range tests {
		got, err := EvaluateCondition(tt.cond, ctx)
		if tt.wantErr != "" {
			if !IsErrorType(err, tt.wantErr) {
				t.Errorf("%q: expected %s error, got %v", tt.cond, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.cond, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.cond, tt.want, got)
		}
	}
}

func TestEvaluateExpression(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("x", 10)

	tests := []struct {
		expr    string
		want    int
		wantErr ErrorType
	}{
		{"20", 20, ""},
		{"x", 10, ""},
		{"x + 15", 25, ""},
		{"x - 50", -40, ""},
		{"x * x", 100, ""},
		{"x / 0", 0, ErrorDivisionByZero},
		{"x +", 0, ErrorInvalidExpression},
		{"x + 1 + 2", 0, ErrorInvalidExpression},
		{"y + 1", 0, ErrorUnresolvedOperand},
	}

	for _, tt := range tests {
		got, err := EvaluateExpression(tt.expr, ctx)
		if tt.wantErr != "" {
			if !IsErrorType(err, tt.wantErr) {
				t.Errorf("%q: expected %s error, got %v", tt.expr, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.expr, tt.want, got)
		}
	}
}

func TestIsOperandToken(t *testing.T) {
	valid := []string{"10", "-3", "x", "_tmp", "arr[0]", "arr[i]"}
	invalid := []string{"", "1x", "x-1", "arr[]", "arr[0", "[0]", "a b", "a[b[1]]"}

	for _, s := range valid {
		if !isOperandToken(s) {
			t.Errorf("expected %q to be a valid operand token", s)
		}
	}
	for _, s := range invalid {
		if isOperandToken(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
