package interpreter

import (
	"errors"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) []Command {
	t.Helper()
	cmds, err := NewParser(nil).Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return cmds
}

func TestParse_EmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n\t\n"} {
		_, err := NewParser(nil).Parse(src)
		if !errors.Is(err, ErrEmptyScript) {
			t.Errorf("%q: expected ErrEmptyScript, got %v", src, err)
		}
	}
}

func TestParse_FlatScript(t *testing.T) {
	src := "moveto 10,20\n\ndrawto 30,40\r\npen red\ncircle 5"
	cmds := parse(t, src)

	want := []Kind{KindMoveTo, KindDrawTo, KindSetPen, KindDrawCircle}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(cmds))
	}
	for i, k := range want {
		if cmds[i].Kind() != k {
			t.Errorf("command %d: expected %s, got %s", i, k, cmds[i].Kind())
		}
	}

	// Blank lines still count towards line numbers.
	line, text := cmds[1].Source()
	if line != 3 || text != "drawto 30,40" {
		t.Errorf("expected source (3, \"drawto 30,40\"), got (%d, %q)", line, text)
	}
}

func TestParse_ArrayDeclaration(t *testing.T) {
	cmds := parse(t, "int[] points = {10, 20,30}\nINT [] empty = {}")

	arr, ok := cmds[0].(*DeclareIntArray)
	if !ok {
		t.Fatalf("expected *DeclareIntArray, got %T", cmds[0])
	}
	if arr.Name != "points" || len(arr.Values) != 3 || arr.Values[2] != 30 {
		t.Errorf("unexpected array declaration: %+v", arr)
	}

	empty := cmds[1].(*DeclareIntArray)
	if empty.Name != "empty" || len(empty.Values) != 0 {
		t.Errorf("unexpected empty array declaration: %+v", empty)
	}
}

func TestParse_WhileLoop(t *testing.T) {
	src := `var x = 0
while x < 5
  circle 10
  x = x + 1
endloop
reset`
	cmds := parse(t, src)

	if len(cmds) != 3 {
		t.Fatalf("expected 3 top-level commands, got %d", len(cmds))
	}
	loop, ok := cmds[1].(*While)
	if !ok {
		t.Fatalf("expected *While, got %T", cmds[1])
	}
	if loop.Condition != "x < 5" {
		t.Errorf("expected condition %q, got %q", "x < 5", loop.Condition)
	}
	if len(loop.Body) != 2 {
		t.Errorf("expected 2 body commands, got %d", len(loop.Body))
	}
	if line, _ := loop.Source(); line != 2 {
		t.Errorf("expected while at line 2, got %d", line)
	}
}

func TestParse_NestedIf(t *testing.T) {
	src := `if x > 1
  if y < 2
    circle 5
  endif
  rect 1,2
endif`
	cmds := parse(t, src)

	if len(cmds) != 1 {
		t.Fatalf("expected 1 top-level command, got %d", len(cmds))
	}
	outer := cmds[0].(*If)
	if len(outer.Body) != 2 {
		t.Fatalf("expected 2 commands in outer if, got %d", len(outer.Body))
	}
	inner, ok := outer.Body[0].(*If)
	if !ok {
		t.Fatalf("expected nested *If, got %T", outer.Body[0])
	}
	if len(inner.Body) != 1 || inner.Body[0].Kind() != KindDrawCircle {
		t.Errorf("unexpected inner body: %v", inner.Body)
	}
	if outer.Body[1].Kind() != KindDrawRectangle {
		t.Errorf("expected rect after nested if, got %s", outer.Body[1].Kind())
	}
}

func TestParse_IfInsideWhile(t *testing.T) {
	src := `while x < 10
  if x > 5
    circle x
  endif
  x = x + 1
endloop`
	cmds := parse(t, src)

	loop := cmds[0].(*While)
	if len(loop.Body) != 2 {
		t.Fatalf("expected 2 loop body commands, got %d", len(loop.Body))
	}
	cond := loop.Body[0].(*If)
	if len(cond.Body) != 1 {
		t.Errorf("expected if body of 1 command, got %d", len(cond.Body))
	}
}

func TestParse_MethodDefinitionAndCall(t *testing.T) {
	src := `method square(size, offset)
  rect size,size
  moveto offset,offset
endmethod
square(10, 5)
method dot
  circle 1
endmethod
dot()`
	cmds := parse(t, src)

	if len(cmds) != 4 {
		t.Fatalf("expected 4 top-level commands, got %d", len(cmds))
	}

	def := cmds[0].(*DefineMethod)
	if def.Name != "square" || len(def.Parameters) != 2 || def.Parameters[1] != "offset" {
		t.Errorf("unexpected method definition: %+v", def)
	}
	if len(def.Body) != 2 {
		t.Errorf("expected 2 body commands, got %d", len(def.Body))
	}

	call := cmds[1].(*CallMethod)
	if call.Name != "square" || len(call.Arguments) != 2 || call.Arguments[1] != "5" {
		t.Errorf("unexpected call: %+v", call)
	}

	dot := cmds[2].(*DefineMethod)
	if dot.Name != "dot" || len(dot.Parameters) != 0 {
		t.Errorf("unexpected parameterless method: %+v", dot)
	}

	noArgs := cmds[3].(*CallMethod)
	if len(noArgs.Arguments) != 0 {
		t.Errorf("expected no arguments, got %v", noArgs.Arguments)
	}
}

func TestParse_MethodInsideIfIsHoisted(t *testing.T) {
	src := `if 1 < 2
method inner
  circle 1
endmethod
endif`
	cmds := parse(t, src)

	if len(cmds) != 2 {
		t.Fatalf("expected 2 top-level commands, got %d", len(cmds))
	}
	if cmds[0].Kind() != KindDefineMethod {
		t.Errorf("expected hoisted DefineMethod first, got %s", cmds[0].Kind())
	}
	if body := cmds[1].(*If).Body; len(body) != 0 {
		t.Errorf("expected empty if body, got %d commands", len(body))
	}
}

func TestParse_ErrorReportsLine(t *testing.T) {
	_, err := NewParser(nil).Parse("unknownCommand 10,20\nmoveto 1,1")

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T (%v)", err, err)
	}
	if cmdErr.Line != 1 {
		t.Errorf("expected line 1, got %d", cmdErr.Line)
	}
	if cmdErr.Text != "unknownCommand 10,20" {
		t.Errorf("expected raw text to be kept, got %q", cmdErr.Text)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected message to reference line 1, got %q", err.Error())
	}
	if !IsErrorType(err, ErrorInvalidCommand) {
		t.Errorf("expected INVALID_COMMAND, got %v", err)
	}
}

func TestParse_ErrorOnLaterLine(t *testing.T) {
	_, err := NewParser(nil).Parse("moveto 1,1\n\ncircle -4")

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %v", err)
	}
	if cmdErr.Line != 3 {
		t.Errorf("expected line 3, got %d", cmdErr.Line)
	}
}

func TestParse_UnclosedBlocks(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		construct string
		openedAt  int
		lastLine  int
	}{
		{"loop", "while x < 3\ncircle 1", "loop", 1, 2},
		{"if", "moveto 1,1\nif x < 3\ncircle 1", "if block", 2, 3},
		{"method", "method m\ncircle 1\n\n", "method block", 1, 2},
		{"loop reported first", "method m\nwhile x < 1\ncircle 1", "loop", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).Parse(tt.src)
			var unclosed *UnclosedBlockError
			if !errors.As(err, &unclosed) {
				t.Fatalf("expected *UnclosedBlockError, got %v", err)
			}
			if unclosed.Construct != tt.construct {
				t.Errorf("expected construct %q, got %q", tt.construct, unclosed.Construct)
			}
			if unclosed.OpenedAt != tt.openedAt || unclosed.LastLine != tt.lastLine {
				t.Errorf("expected opened at %d / last line %d, got %d / %d",
					tt.openedAt, tt.lastLine, unclosed.OpenedAt, unclosed.LastLine)
			}
			if !strings.Contains(err.Error(), "unclosed "+tt.construct) {
				t.Errorf("expected message to name the construct, got %q", err.Error())
			}
		})
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		wantErr ErrorType
	}{
		{"stray endloop", "circle 1\nendloop", 2, ErrorUnmatchedBlock},
		{"stray endif", "endif", 1, ErrorUnmatchedBlock},
		{"stray endmethod", "endmethod", 1, ErrorUnmatchedBlock},
		{"crossed blocks", "if x < 1\nwhile x < 2\nendif", 3, ErrorUnmatchedBlock},
		{"nested while", "while x < 1\nwhile y < 1", 2, ErrorUnmatchedBlock},
		{"bad condition", "while x", 1, ErrorInvalidParameter},
		{"bad condition operator", "if x == 1", 1, ErrorInvalidParameter},
		{"bad method header", "method 9lives()", 1, ErrorInvalidParameter},
		{"duplicate parameter", "method m(a, a)", 1, ErrorInvalidParameter},
		{"bad call argument", "m(a+1)", 1, ErrorInvalidParameter},
		{"bad array literal", "int[] a = {1, x}", 1, ErrorInvalidParameter},
		{"endloop with argument", "while x < 1\nendloop now", 2, ErrorInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).Parse(tt.src)
			var cmdErr *CommandError
			if !errors.As(err, &cmdErr) {
				t.Fatalf("expected *CommandError, got %v", err)
			}
			if cmdErr.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, cmdErr.Line)
			}
			if !IsErrorType(err, tt.wantErr) {
				t.Errorf("expected %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParse_KeywordsMatchWholeWords(t *testing.T) {
	// "iffy" and "whilex" are ordinary names, not block keywords.
	cmds := parse(t, "iffy = 1\nwhilex = 2\nmethods(1)")

	if cmds[0].Kind() != KindAssign || cmds[1].Kind() != KindAssign {
		t.Errorf("expected assignments, got %s and %s", cmds[0].Kind(), cmds[1].Kind())
	}
	if cmds[2].Kind() != KindCallMethod {
		t.Errorf("expected call, got %s", cmds[2].Kind())
	}
}
