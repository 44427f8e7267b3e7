package object

import (
	"math/big"
	"testing"
)

func TestInspect(t *testing.T) {
	pair := NewHash()
	pair.Set(&Symbol{Value: "a"}, &Integer{Value: 1})
	pair.Set(&Symbol{Value: "b"}, &Integer{Value: 2})

	tests := []struct {
		obj  Object
		want string
	}{
		{&Integer{Value: 42}, "42"},
		{&Integer{Value: -7}, "-7"},
		{&Float{Value: 2.5}, "2.5"},
		{&Float{Value: 4.0}, "4.0"},
		{&Float{Value: 0.0012}, "0.0012"},
		{&Rational{Value: big.NewRat(1, 2)}, "(1/2)"},
		{&Complex{Value: complex(0, 5)}, "(0+5i)"},
		{&Complex{Value: complex(3, -4)}, "(3-4i)"},
		{&String{Value: "hi"}, `"hi"`},
		{&Symbol{Value: "sym"}, ":sym"},
		{TRUE, "true"},
		{FALSE, "false"},
		{NIL, "nil"},
		{ArrayFromSlice([]Object{&Integer{Value: 1}, &String{Value: "x"}}), `[1, "x"]`},
		{pair, "{:a => 1, :b => 2}"},
		{&Range{Start: &Integer{Value: 1}, End: &Integer{Value: 5}, Inclusive: true}, "1..5"},
		{&Range{Start: &Integer{Value: 1}, End: &Integer{Value: 5}}, "1...5"},
		{NewInstance("Dog"), "#<Dog>"},
	}
	for i, test := range tests {
		if got := test.obj.Inspect(ViewRubyLiteral); got != test.want {
			t.Fatalf("tests[%d] - inspect wrong. expected=%s, got=%s", i, test.want, got)
		}
	}
}

func TestStringViews(t *testing.T) {
	s := &String{Value: "a\nb"}
	if got := s.Inspect(ViewStdOut); got != "a\nb" {
		t.Fatalf("stdout view should be raw, got %q", got)
	}
	if got := s.Inspect(ViewRubyLiteral); got != `"a\nb"` {
		t.Fatalf("literal view should be escaped, got %q", got)
	}
}

func TestEquals(t *testing.T) {
	tests := []struct {
		lhs, rhs Object
		want     bool
	}{
		{&Integer{Value: 2}, &Integer{Value: 2}, true},
		{&Integer{Value: 2}, &Float{Value: 2.0}, true},
		{&Integer{Value: 2}, &Rational{Value: big.NewRat(2, 1)}, true},
		{&Integer{Value: 2}, &Integer{Value: 3}, false},
		{&Integer{Value: 1}, &String{Value: "1"}, false},
		{&String{Value: "a"}, &String{Value: "a"}, true},
		{&Symbol{Value: "a"}, &String{Value: "a"}, false},
		{NIL, NIL, true},
		{ArrayFromSlice([]Object{&Integer{Value: 1}, &Integer{Value: 2}}),
			ArrayFromSlice([]Object{&Integer{Value: 1}, &Integer{Value: 2}}), true},
		{ArrayFromSlice([]Object{&Integer{Value: 1}}),
			ArrayFromSlice([]Object{&Integer{Value: 2}}), false},
	}
	for i, test := range tests {
		if got := Equals(test.lhs, test.rhs); got != test.want {
			t.Fatalf("tests[%d] - equality wrong. expected=%v, got=%v", i, test.want, got)
		}
	}
}

func TestTruthy(t *testing.T) {
	if Truthy(FALSE) || Truthy(NIL) {
		t.Fatalf("false and nil must be falsy")
	}
	for _, obj := range []Object{&Integer{Value: 0}, &String{Value: ""}, TRUE, ArrayFromSlice(nil)} {
		if !Truthy(obj) {
			t.Fatalf("%s should be truthy", obj.Inspect(ViewRubyLiteral))
		}
	}
}

func TestRangeElements(t *testing.T) {
	tests := []struct {
		r    *Range
		want []string
	}{
		{&Range{Start: &Integer{Value: 1}, End: &Integer{Value: 4}, Inclusive: true},
			[]string{"1", "2", "3", "4"}},
		{&Range{Start: &Integer{Value: 1}, End: &Integer{Value: 4}},
			[]string{"1", "2", "3"}},
		{&Range{Start: &Integer{Value: 5}, End: &Integer{Value: 1}, Inclusive: true},
			[]string{}},
		{&Range{Start: &String{Value: "a"}, End: &String{Value: "c"}, Inclusive: true},
			[]string{`"a"`, `"b"`, `"c"`}},
	}
	for i, test := range tests {
		elements, ok := RangeElements(test.r)
		if !ok {
			t.Fatalf("tests[%d] - range should enumerate", i)
		}
		if len(elements) != len(test.want) {
			t.Fatalf("tests[%d] - length wrong. expected=%d, got=%d", i, len(test.want), len(elements))
		}
		for j, el := range elements {
			if got := el.Inspect(ViewRubyLiteral); got != test.want[j] {
				t.Fatalf("tests[%d] - element %d wrong. expected=%s, got=%s", i, j, test.want[j], got)
			}
		}
	}
	if _, ok := RangeElements(&Range{Start: &Integer{Value: 1}, End: &String{Value: "z"}}); ok {
		t.Fatalf("mixed-type range should not enumerate")
	}
}

func TestRangeCovers(t *testing.T) {
	incl := &Range{Start: &Integer{Value: 1}, End: &Integer{Value: 10}, Inclusive: true}
	excl := &Range{Start: &Integer{Value: 1}, End: &Integer{Value: 10}}
	if !RangeCovers(incl, &Integer{Value: 10}) {
		t.Fatalf("inclusive range should cover its end")
	}
	if RangeCovers(excl, &Integer{Value: 10}) {
		t.Fatalf("exclusive range should not cover its end")
	}
	if !RangeCovers(incl, &Float{Value: 5.5}) {
		t.Fatalf("integer range should cover a float between its bounds")
	}
	if RangeCovers(incl, &String{Value: "5"}) {
		t.Fatalf("integer range should not cover a string")
	}
}

// Assignment walks out to the frame that already binds the name, but never
// crosses a method activation.
func TestEnvironmentAssign(t *testing.T) {
	outer := NewEnvironment()
	outer.Set("x", &Integer{Value: 1})

	block := NewEnclosedEnvironment(outer)
	block.Assign("x", &Integer{Value: 2})
	if v, _ := outer.Get("x"); v.(*Integer).Value != 2 {
		t.Fatalf("assignment in a nested scope should update the outer binding")
	}

	frame := NewMethodFrame(outer, nil)
	frame.Assign("x", &Integer{Value: 3})
	if v, _ := outer.Get("x"); v.(*Integer).Value != 2 {
		t.Fatalf("a method frame must not reach the caller's locals")
	}
	if v, _ := frame.Store["x"]; v.(*Integer).Value != 3 {
		t.Fatalf("the assignment should have created a binding in the frame")
	}
}

func TestBlockLookupStopsAtMethodFrame(t *testing.T) {
	blk := &Block{}
	frame := NewMethodFrame(nil, blk)
	inner := NewEnclosedEnvironment(frame)
	if inner.Block() != blk {
		t.Fatalf("a nested scope should see its method's block")
	}
	next := NewMethodFrame(inner, nil)
	if next.Block() != nil {
		t.Fatalf("a fresh method frame must not see the caller's block")
	}
}
