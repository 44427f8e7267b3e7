package parser

import (
	"testing"

	"github.com/edipofederle/sri-sub002/source/settings"
	"github.com/edipofederle/sri-sub002/source/text"
)

type testItem struct {
	input string
	want  string
}

func TestArithmeticPrecedence(t *testing.T) {
	tests := []testItem{
		{`2 + 2`, `(2 + 2)`},
		{`2 + 3 * 4`, `(2 + (3 * 4))`},
		{`2 * 3 + 4`, `((2 * 3) + 4)`},
		{`-5`, `(- 5)`},
		{`-5 + 3`, `((- 5) + 3)`},
		{`a + b - c`, `((a + b) - c)`},
		{`a * b / c`, `((a * b) / c)`},
		{`a + b % c`, `(a + (b % c))`},
		{`2 ** 3 ** 2`, `(2 ** (3 ** 2))`},
		{`2 * 3 ** 2`, `(2 * (3 ** 2))`},
		{`1 < 2 == 3 < 4`, `((1 < 2) == (3 < 4))`},
		{`1 + 2 < 3 + 4`, `((1 + 2) < (3 + 4))`},
		{`1 <=> 2`, `(1 <=> 2)`},
		{`a << 1 << 2`, `((a << 1) << 2)`},
		{`a << 1 + 2`, `(a << (1 + 2))`},
		{`(2 + 3) * 4`, `((2 + 3) * 4)`},
	}
	runParserTest(t, tests, parseToString)
}

func TestLogicPrecedence(t *testing.T) {
	tests := []testItem{
		{`a && b || c`, `((a && b) || c)`},
		{`a || b && c`, `(a || (b && c))`},
		{`1 == 2 && 3 == 4`, `((1 == 2) && (3 == 4))`},
		{`x and y or z`, `((x && y) || z)`},
		{`not x and not y`, `((! x) && (! y))`},
		{`not 1 == 2`, `(! (1 == 2))`},
		{`a = 1 and b = 2`, `((a = 1) && (b = 2))`},
	}
	runParserTest(t, tests, parseToString)
}

func TestAssignmentForms(t *testing.T) {
	tests := []testItem{
		{`a = 1 + 2`, `(a = (1 + 2))`},
		{`a = b = 1`, `(a = (b = 1))`},
		{`@x = 5`, `(@x = 5)`},
		{`@@count = 0`, `(@@count = 0)`},
		{`a[1] = 2`, `(a[1] = 2)`},
		{`p.x = 1`, `(p.x=(1))`},
	}
	runParserTest(t, tests, parseToString)
}

func TestLiteralsAndCollections(t *testing.T) {
	tests := []testItem{
		{`3.14`, `3.14`},
		{`3r`, `3r`},
		{`5i`, `5i`},
		{`:sym`, `:sym`},
		{`nil`, `nil`},
		{`self`, `self`},
		{`1..10`, `(1 .. 10)`},
		{`1...10`, `(1 ... 10)`},
		{`1..n + 1`, `(1 .. (n + 1))`},
		{`[1, 2, 3]`, `[1, 2, 3]`},
		{`[]`, `[]`},
		{`{:a => 1, :b => 2}`, `{:a => 1, :b => 2}`},
		{`{}`, `{}`},
		{`"a#{b}c"`, `interp("a" . b . "c")`},
		{`"#{x + 1}"`, `interp((x + 1))`},
		{`"a#{x} \#{y}"`, `interp("a" . x . " #{y}")`},
	}
	runParserTest(t, tests, parseToString)
}

func TestMethodCalls(t *testing.T) {
	tests := []testItem{
		{`foo.bar`, `(foo.bar)`},
		{`foo.bar(1, 2)`, `(foo.bar(1, 2))`},
		{`puts "hi"`, `(puts("hi"))`},
		{`a[1]`, `(a.[](1))`},
		{`a + b[c]`, `(a + (b.[](c)))`},
		{`1.upto(3)`, `(1.upto(3))`},
		{`Foo.new(1)`, `(Foo.new(1))`},
		{`x.even?`, `(x.even?)`},
		{`[1, 2].each { |x| puts x }`, `([1, 2].each { |x| (puts(x)) })`},
		{`3.times do |i| puts i end`, `(3.times { |i| (puts(i)) })`},
		{`yield`, `yield`},
		{`yield 1, 2`, `(yield 1, 2)`},
	}
	runParserTest(t, tests, parseToString)
}

func TestControlFlow(t *testing.T) {
	tests := []testItem{
		{`if x then 1 else 2 end`, `(if x : 1 else : 2)`},
		{`if a then 1 elsif b then 2 else 3 end`, `(if a : 1 else : (if b : 2 else : 3))`},
		{`if x then 1 end`, `(if x : 1)`},
		{`while x do y end`, `(while x : y)`},
		{`until x do y end`, `(until x : y)`},
		{`for i in 1..3 do p i end`, `(for i in (1 .. 3) : (p(i)))`},
		{`loop do break end`, `(loop : break)`},
		{`case x when 1, 2 then "lo" else "hi" end`, `(case x (when 1, 2 : "lo") else : "hi")`},
		{`break 42`, `(break 42)`},
		{`next`, `next`},
		{`return 1 + 2`, `(return (1 + 2))`},
		{`1; 2`, `1; 2`},
	}
	runParserTest(t, tests, parseToString)
}

func TestDefinitions(t *testing.T) {
	tests := []testItem{
		{`def add(a, b) a + b end`, `(def add(a, b) : (a + b))`},
		{`def nop; end`, `(def nop() : )`},
		{`def name=(v); @name = v; end`, `(def name=(v) : (@name = v))`},
		{`def <=>(other) 0 end`, `(def <=>(other) : 0)`},
		{`class Dog < Animal; def bark; "woof"; end; end`,
			`(class Dog < Animal : (def bark() : "woof"))`},
		{`class Empty; end`, `(class Empty : )`},
		{`module Greeting; def hi; "hi"; end; end`,
			`(module Greeting : (def hi() : "hi"))`},
	}
	runParserTest(t, tests, parseToString)
}

func TestParserErrors(t *testing.T) {
	tests := []testItem{
		{`1 +`, `parse/prefix`},
		{`(1`, `parse/expect`},
		{`1 2`, `parse/expect`},
		{`a = `, `parse/prefix`},
		{`3 = 4`, `parse/expect`},
		{`def foo`, `parse/end`},
		{`if x then 1`, `parse/end`},
		{`while x do y`, `parse/end`},
		{`class Foo`, `parse/end`},
		{`def 3; end`, `parse/methodname`},
	}
	runParserTest(t, tests, parseToErrorId)
}

func parseToString(p *Parser) string {
	root := p.ParseProgram()
	if len(p.Ers) > 0 {
		return p.Ers[0].ErrorId
	}
	return p.arena.String(root)
}

func parseToErrorId(p *Parser) string {
	p.ParseProgram()
	if len(p.Ers) == 0 {
		return "unexpected successful parsing"
	}
	return p.Ers[0].ErrorId
}

func runParserTest(t *testing.T, tests []testItem, f func(p *Parser) string) {
	for _, test := range tests {
		if settings.SHOW_TESTS {
			println(text.BULLET + "Running test " + text.Emph(test.input))
		}
		got := f(New("test", test.input))
		if got != test.want {
			t.Fatalf(`Test failed with input %s | Wanted : %s | Got : %s.`, test.input, test.want, got)
		}
	}
}
