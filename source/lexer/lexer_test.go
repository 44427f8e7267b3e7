package lexer

import (
	"testing"

	"github.com/edipofederle/sri-sub002/source/token"
)

type testItem struct {
	expectedType    token.TokenType
	expectedLiteral string
	expectedLine    int
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := `x = 1 + 2 - 3 * 4 / 5 % 6 ** 7
a == b != c < d > e <= f >= g <=> h
p && q || r << s
foo.bar, (1), [2], {3}, 1..2, 1...3, :k => v, A::B`
	items := []testItem{
		{token.IDENT, "x", 1},
		{token.ASSIGN, "=", 1},
		{token.INT, "1", 1},
		{token.PLUS, "+", 1},
		{token.INT, "2", 1},
		{token.MINUS, "-", 1},
		{token.INT, "3", 1},
		{token.ASTERISK, "*", 1},
		{token.INT, "4", 1},
		{token.SLASH, "/", 1},
		{token.INT, "5", 1},
		{token.PERCENT, "%", 1},
		{token.INT, "6", 1},
		{token.POWER, "**", 1},
		{token.INT, "7", 1},
		{token.NEWLINE, ";", 1},
		{token.IDENT, "a", 2},
		{token.EQ, "==", 2},
		{token.IDENT, "b", 2},
		{token.NOT_EQ, "!=", 2},
		{token.IDENT, "c", 2},
		{token.LT, "<", 2},
		{token.IDENT, "d", 2},
		{token.GT, ">", 2},
		{token.IDENT, "e", 2},
		{token.LT_EQ, "<=", 2},
		{token.IDENT, "f", 2},
		{token.GT_EQ, ">=", 2},
		{token.IDENT, "g", 2},
		{token.SPACESHIP, "<=>", 2},
		{token.IDENT, "h", 2},
		{token.NEWLINE, ";", 2},
		{token.IDENT, "p", 3},
		{token.AMP_AMP, "&&", 3},
		{token.IDENT, "q", 3},
		{token.PIPE_PIPE, "||", 3},
		{token.IDENT, "r", 3},
		{token.SHOVEL, "<<", 3},
		{token.IDENT, "s", 3},
		{token.NEWLINE, ";", 3},
		{token.IDENT, "foo", 4},
		{token.DOT, ".", 4},
		{token.IDENT, "bar", 4},
		{token.COMMA, ",", 4},
		{token.LPAREN, "(", 4},
		{token.INT, "1", 4},
		{token.RPAREN, ")", 4},
		{token.COMMA, ",", 4},
		{token.LBRACK, "[", 4},
		{token.INT, "2", 4},
		{token.RBRACK, "]", 4},
		{token.COMMA, ",", 4},
		{token.LBRACE, "{", 4},
		{token.INT, "3", 4},
		{token.RBRACE, "}", 4},
		{token.COMMA, ",", 4},
		{token.INT, "1", 4},
		{token.DOTDOT, "..", 4},
		{token.INT, "2", 4},
		{token.COMMA, ",", 4},
		{token.INT, "1", 4},
		{token.DOTDOTDOT, "...", 4},
		{token.INT, "3", 4},
		{token.COMMA, ",", 4},
		{token.SYMBOL, "k", 4},
		{token.HASHROCKET, "=>", 4},
		{token.IDENT, "v", 4},
		{token.COMMA, ",", 4},
		{token.CONST, "A", 4},
		{token.SCOPE, "::", 4},
		{token.CONST, "B", 4},
		{token.EOF, "EOF", 4},
	}
	testLexingString(t, input, items)
}

func TestNumberLiterals(t *testing.T) {
	input := `42 1_000_000 0x1F 0b1010 017 3.14 1e3 6.02e23 1.5e-3 3r 0.5r 5i 1.2i`
	items := []testItem{
		{token.INT, "42", 1},
		{token.INT, "1000000", 1},
		{token.INT, "31", 1},
		{token.INT, "10", 1},
		{token.INT, "15", 1},
		{token.FLOAT, "3.14", 1},
		{token.FLOAT, "1e3", 1},
		{token.FLOAT, "6.02e23", 1},
		{token.FLOAT, "1.5e-3", 1},
		{token.RATIONAL, "3", 1},
		{token.RATIONAL, "0.5", 1},
		{token.COMPLEX, "5", 1},
		{token.COMPLEX, "1.2", 1},
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, input, items)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := `def empty? shout! if elsif else then while until for in do loop case when end
class module and or not return break next yield self true false nil
Foo @name @@count :sym`
	items := []testItem{
		{token.DEF, "def", 1},
		{token.IDENT, "empty?", 1},
		{token.IDENT, "shout!", 1},
		{token.IF, "if", 1},
		{token.ELSIF, "elsif", 1},
		{token.ELSE, "else", 1},
		{token.THEN, "then", 1},
		{token.WHILE, "while", 1},
		{token.UNTIL, "until", 1},
		{token.FOR, "for", 1},
		{token.IN, "in", 1},
		{token.DO, "do", 1},
		{token.LOOP, "loop", 1},
		{token.CASE, "case", 1},
		{token.WHEN, "when", 1},
		{token.END, "end", 1},
		{token.NEWLINE, ";", 1},
		{token.CLASS, "class", 2},
		{token.MODULE, "module", 2},
		{token.AND, "and", 2},
		{token.OR, "or", 2},
		{token.NOT, "not", 2},
		{token.RETURN, "return", 2},
		{token.BREAK, "break", 2},
		{token.NEXT, "next", 2},
		{token.YIELD, "yield", 2},
		{token.SELF, "self", 2},
		{token.TRUE, "true", 2},
		{token.FALSE, "false", 2},
		{token.NIL, "nil", 2},
		{token.NEWLINE, ";", 2},
		{token.CONST, "Foo", 3},
		{token.IVAR, "name", 3},
		{token.CVAR, "count", 3},
		{token.SYMBOL, "sym", 3},
		{token.EOF, "EOF", 3},
	}
	testLexingString(t, input, items)
}

func TestStrings(t *testing.T) {
	input := `"hello" 'raw \n text' "tab\there" "say #{name}!"`
	items := []testItem{
		{token.STRING, "hello", 1},
		{token.STRING, `raw \n text`, 1},
		{token.STRING, "tab\there", 1},
		{token.ISTRING, "say #{name}!", 1},
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, input, items)
}

// An escaped '#{' is plain text. It stays backslashed inside an ISTRING
// literal so the parser can tell it apart from the real spans, and is
// decoded on the spot when the string has no real span at all.
func TestEscapedInterpolation(t *testing.T) {
	input := `"\#{x}" "a\\b" "a#{x} \#{y}"`
	items := []testItem{
		{token.STRING, "#{x}", 1},
		{token.STRING, `a\b`, 1},
		{token.ISTRING, `a#{x} \#{y}`, 1},
		{token.EOF, "EOF", 1},
	}
	testLexingString(t, input, items)
}

func TestNewlineSignificance(t *testing.T) {
	input := `a = 1 +
2
b = 3
c = a +  # a comment doesn't end the statement either
b`
	items := []testItem{
		{token.IDENT, "a", 1},
		{token.ASSIGN, "=", 1},
		{token.INT, "1", 1},
		{token.PLUS, "+", 1},
		{token.INT, "2", 2},
		{token.NEWLINE, ";", 2},
		{token.IDENT, "b", 3},
		{token.ASSIGN, "=", 3},
		{token.INT, "3", 3},
		{token.NEWLINE, ";", 3},
		{token.IDENT, "c", 4},
		{token.ASSIGN, "=", 4},
		{token.IDENT, "a", 4},
		{token.PLUS, "+", 4},
		{token.IDENT, "b", 5},
		{token.EOF, "EOF", 5},
	}
	testLexingString(t, input, items)
}

func TestComments(t *testing.T) {
	input := `x = 1 # trailing comment
# a whole line of comment
y = 2`
	items := []testItem{
		{token.IDENT, "x", 1},
		{token.ASSIGN, "=", 1},
		{token.INT, "1", 1},
		{token.NEWLINE, ";", 1},
		{token.IDENT, "y", 3},
		{token.ASSIGN, "=", 3},
		{token.INT, "2", 3},
		{token.EOF, "EOF", 3},
	}
	testLexingString(t, input, items)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input   string
		errorId string
	}{
		{`x = 1 ?`, "lex/ill"},
		{`a & b`, "lex/ill"},
		{`0b102`, "lex/num"},
		{`12abc`, "lex/num"},
		{`"no closing quote`, "lex/quote"},
		{`@ = 1`, "lex/sigil"},
		{`@@ = 1`, "lex/sigil"},
	}
	for i, tt := range tests {
		l := New("test", tt.input)
		for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		}
		if len(l.Ers) == 0 {
			t.Fatalf("tests[%d] - expected error %q, got none", i, tt.errorId)
		}
		if l.Ers[0].ErrorId != tt.errorId {
			t.Fatalf("tests[%d] - error wrong. expected=%q, got=%q",
				i, tt.errorId, l.Ers[0].ErrorId)
		}
	}
}

func testLexingString(t *testing.T, input string, items []testItem) {
	l := New("test", input)
	for i, tt := range items {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q with literal %q, got=%q with literal %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d",
				i, tt.expectedLine, tok.Line)
		}
	}
}
