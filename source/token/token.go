package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT    = "IDENT" // x, greet, empty?, shout!
	CONST    = "CONST" // Foo, a class or module name
	INT      = "int"
	FLOAT    = "float"
	RATIONAL = "rational" // 3r, 0x10r
	COMPLEX  = "complex"  // 5i, 1.2i
	STRING   = "string"
	ISTRING  = "interpolated string" // "a#{b}c"; the spans are re-lexed by the parser
	SYMBOL   = "symbol"              // :name
	IVAR     = "@ident"              // @name
	CVAR     = "@@ident"             // @@name

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	POWER    = "**"

	EQ        = "=="
	NOT_EQ    = "!="
	LT        = "<"
	GT        = ">"
	LT_EQ     = "<="
	GT_EQ     = ">="
	SPACESHIP = "<=>"

	AMP_AMP   = "&&"
	PIPE_PIPE = "||"
	BANG      = "!"
	SHOVEL    = "<<"

	DOT        = "."
	COMMA      = ","
	COLON      = ":"
	SCOPE      = "::"
	DOTDOT     = ".."
	DOTDOTDOT  = "..."
	HASHROCKET = "=>"
	PIPE       = "|"

	NEWLINE   = "\n"
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
	LBRACK = "["
	RBRACK = "]"

	// Keywords
	DEF    = "def"
	END    = "end"
	IF     = "if"
	ELSIF  = "elsif"
	ELSE   = "else"
	THEN   = "then"
	WHILE  = "while"
	UNTIL  = "until"
	FOR    = "for"
	IN     = "in"
	DO     = "do"
	LOOP   = "loop"
	CASE   = "case"
	WHEN   = "when"
	CLASS  = "class"
	MODULE = "module"
	RETURN = "return"
	BREAK  = "break"
	NEXT   = "next"
	YIELD  = "yield"
	SELF   = "self"
	TRUE   = "true"
	FALSE  = "false"
	NIL    = "nil"
	AND    = "and"
	OR     = "or"
	NOT    = "not"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

var keywords = map[string]TokenType{
	"def":    DEF,
	"end":    END,
	"if":     IF,
	"elsif":  ELSIF,
	"else":   ELSE,
	"then":   THEN,
	"while":  WHILE,
	"until":  UNTIL,
	"for":    FOR,
	"in":     IN,
	"do":     DO,
	"loop":   LOOP,
	"case":   CASE,
	"when":   WHEN,
	"class":  CLASS,
	"module": MODULE,
	"return": RETURN,
	"break":  BREAK,
	"next":   NEXT,
	"yield":  YIELD,
	"self":   SELF,
	"true":   TRUE,
	"false":  FALSE,
	"nil":    NIL,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident[0] >= 'A' && ident[0] <= 'Z' {
		return CONST
	}
	return IDENT
}

// Says whether a newline after a token of this type should terminate the
// statement, or whether the expression must be continued on the next line.
func TokenTypeEndsStatement(t TokenType) bool {
	switch TokenType(t) {
	case IDENT, CONST, INT, FLOAT, RATIONAL, COMPLEX, STRING, ISTRING, SYMBOL, IVAR, CVAR,
		TRUE, FALSE, NIL, SELF, END, RPAREN, RBRACK, RBRACE, BREAK, NEXT, RETURN, YIELD:
		return true
	}
	return false
}
