package evaluator_test

import (
	"bytes"
	"os"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/settings"
	"github.com/edipofederle/sri-sub002/source/sri"
	"github.com/edipofederle/sri-sub002/source/text"
)

type programTest struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Want   string `yaml:"want"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

type programGroup struct {
	Group string        `yaml:"group"`
	Tests []programTest `yaml:"tests"`
}

// The bulk of the evaluator's coverage lives in testdata/programs.yaml:
// whole programs paired with the literal rendering of their final value,
// the error id they must fail with, or what they must print.
func TestPrograms(t *testing.T) {
	raw, err := os.ReadFile("testdata/programs.yaml")
	if err != nil {
		t.Fatalf("could not read the program fixtures: %v", err)
	}
	groups := []programGroup{}
	if err := yaml.Unmarshal(raw, &groups); err != nil {
		t.Fatalf("could not unmarshal the program fixtures: %v", err)
	}
	for _, group := range groups {
		t.Run(group.Group, func(t *testing.T) {
			for _, test := range group.Tests {
				runProgram(t, test)
			}
		})
	}
}

func runProgram(t *testing.T, test programTest) {
	if settings.SHOW_TESTS {
		println(text.BULLET + "Running test " + text.Emph(test.Input))
	}
	var buf bytes.Buffer
	result, e := sri.Evaluate(test.Input, &sri.Options{Output: &buf, SourceName: "test"})
	if test.Error != "" {
		if e == nil {
			t.Fatalf("input %q should have failed with %s, evaluated to %s instead",
				test.Input, test.Error, result.Inspect(object.ViewRubyLiteral))
		}
		if e.ErrorId != test.Error {
			t.Fatalf("input %q failed with the wrong error. expected=%s, got=%s",
				test.Input, test.Error, e.ErrorId)
		}
		return
	}
	if e != nil {
		t.Fatalf("input %q failed unexpectedly: %s", test.Input, e.Message)
	}
	if got := result.Inspect(object.ViewRubyLiteral); got != test.Want {
		t.Fatalf("input %q evaluated wrong. expected=%s, got=%s", test.Input, test.Want, got)
	}
	if test.Output != "" && buf.String() != test.Output {
		t.Fatalf("input %q printed wrong. expected=%q, got=%q", test.Input, test.Output, buf.String())
	}
}

// Redefining a method mid-run must invalidate call sites that have already
// dispatched through their inline caches, including ones cached against an
// ancestor's implementation.
func TestRedefinitionInvalidatesCaches(t *testing.T) {
	program := `
class Base
  def greeting
    "base"
  end
end
class Sub < Base
end
def poke(obj)
  obj.greeting
end
results = []
s = Sub.new
results.push(poke(s))
results.push(poke(s))
class Sub
  def greeting
    "sub"
  end
end
results.push(poke(s))
results
`
	result, e := sri.Evaluate(program, &sri.Options{SourceName: "test"})
	if e != nil {
		t.Fatalf("program failed: %s", e.Message)
	}
	want := `["base", "base", "sub"]`
	if got := result.Inspect(object.ViewRubyLiteral); got != want {
		t.Fatalf("expected=%s, got=%s", want, got)
	}
}

func TestDispatchErrorNamesTheClass(t *testing.T) {
	_, e := sri.Evaluate(`class Cat; end; Cat.new.quack`, &sri.Options{SourceName: "test"})
	if e == nil {
		t.Fatalf("expected a dispatch error")
	}
	if e.ErrorId != "eval/dispatch/method" {
		t.Fatalf("wrong error id: %s", e.ErrorId)
	}
}
