package sri

import (
	"bytes"
	"testing"

	"github.com/edipofederle/sri-sub002/source/object"
)

func TestEvaluate(t *testing.T) {
	result, e := Evaluate(`2 + 2`, nil)
	if e != nil {
		t.Fatalf("evaluation failed: %s", e.Message)
	}
	if got := result.Inspect(object.ViewRubyLiteral); got != "4" {
		t.Fatalf("expected=4, got=%s", got)
	}
}

func TestEvaluateReportsParseErrors(t *testing.T) {
	_, e := Evaluate(`def broken`, nil)
	if e == nil {
		t.Fatalf("expected a parse error")
	}
	if e.ErrorId != "parse/end" {
		t.Fatalf("wrong error id: %s", e.ErrorId)
	}
}

// Errors handed back to an embedder quote the program they arose in.
func TestErrorCarriesSource(t *testing.T) {
	tests := []struct {
		input   string
		errorId string
	}{
		{`1 / 0`, "eval/arith/div/int"},
		{`def broken`, "parse/end"},
	}
	for i, test := range tests {
		_, e := Evaluate(test.input, nil)
		if e == nil {
			t.Fatalf("tests[%d] - expected an error", i)
		}
		if e.ErrorId != test.errorId {
			t.Fatalf("tests[%d] - wrong error id: expected=%s, got=%s", i, test.errorId, e.ErrorId)
		}
		if e.Source != test.input {
			t.Fatalf("tests[%d] - wrong source: expected=%q, got=%q", i, test.input, e.Source)
		}
	}
}

func TestNamespaceSeeding(t *testing.T) {
	opts := &Options{Namespaces: map[string]object.Object{
		"limit": &object.Integer{Value: 10},
	}}
	result, e := Evaluate(`limit * 2`, opts)
	if e != nil {
		t.Fatalf("evaluation failed: %s", e.Message)
	}
	if got := result.Inspect(object.ViewRubyLiteral); got != "20" {
		t.Fatalf("expected=20, got=%s", got)
	}
}

// A Service keeps locals, methods and classes alive from one Do to the
// next, which is what the REPL is built on.
func TestServiceStatePersists(t *testing.T) {
	svc := NewService(nil)
	steps := []struct {
		input string
		want  string
	}{
		{`x = 5`, `5`},
		{`def double(n) n * 2 end`, `:double`},
		{`double(x)`, `10`},
		{`class Pair
  def initialize(a, b)
    @a = a
    @b = b
  end
  def sum
    @a + @b
  end
end`, `nil`},
		{`Pair.new(1, 2).sum`, `3`},
		{`x`, `5`},
	}
	for i, step := range steps {
		result, e := svc.Do(step.input)
		if e != nil {
			t.Fatalf("steps[%d] - %q failed: %s", i, step.input, e.Message)
		}
		if got := result.Inspect(object.ViewRubyLiteral); got != step.want {
			t.Fatalf("steps[%d] - %q evaluated wrong. expected=%s, got=%s",
				i, step.input, step.want, got)
		}
	}
}

func TestServicesAreIsolated(t *testing.T) {
	a := NewService(nil)
	b := NewService(nil)
	if _, e := a.Do(`def only_here; 1; end`); e != nil {
		t.Fatalf("definition failed: %s", e.Message)
	}
	if _, e := b.Do(`only_here`); e == nil {
		t.Fatalf("a method defined in one service leaked into another")
	}
}

func TestOutputGoesToTheConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	_, e := Evaluate(`puts "over here"`, &Options{Output: &buf})
	if e != nil {
		t.Fatalf("evaluation failed: %s", e.Message)
	}
	if buf.String() != "over here\n" {
		t.Fatalf("expected output %q, got %q", "over here\n", buf.String())
	}
}
