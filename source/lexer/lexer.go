package lexer

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/token"
)

type Lexer struct {
	reader strings.Reader
	input  string
	ch     rune // current rune under examination
	line   int  // the line number
	char   int  // the character number, 1-based
	tstart int  // the value of char at the start of a token
	Ers    object.Errors
	source string

	lastType token.TokenType // the last token emitted, for newline significance
}

func New(source, input string) *Lexer {
	r := *strings.NewReader(input)
	l := &Lexer{reader: r,
		input:  input,
		line:   1,
		char:   0,
		Ers:    []*object.Error{},
		source: source,
	}
	l.readChar()
	return l
}

func LexDump(input string) {
	fmt.Print("\nLexer output: \n\n")
	l := New("", input)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		fmt.Printf("%+v\n", tok)
	}
	fmt.Println()
}

func (l *Lexer) NextToken() token.Token {
	tok := l.nextToken()
	l.lastType = tok.Type
	return tok
}

func (l *Lexer) nextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	for l.ch == '#' { // comments produce no token
		l.skipComment()
		l.skipWhitespace()
	}

	l.tstart = l.char

	switch l.ch {
	case '\n':
		tok = l.NewToken(token.NEWLINE, ";")
		l.readChar()
		l.line++
		l.char = 0
		// A newline after a token that can't end a statement is just a
		// line continuation: `a +` at end of line carries on.
		if !token.TokenTypeEndsStatement(l.lastType) {
			return l.nextToken()
		}
		return tok
	case ';':
		tok = l.NewToken(token.SEMICOLON, ";")
	case '=':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = l.NewToken(token.EQ, "==")
		case '>':
			l.readChar()
			tok = l.NewToken(token.HASHROCKET, "=>")
		default:
			tok = l.NewToken(token.ASSIGN, "=")
		}
	case '+':
		tok = l.NewToken(token.PLUS, "+")
	case '-':
		tok = l.NewToken(token.MINUS, "-")
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = l.NewToken(token.POWER, "**")
		} else {
			tok = l.NewToken(token.ASTERISK, "*")
		}
	case '/':
		tok = l.NewToken(token.SLASH, "/")
	case '%':
		tok = l.NewToken(token.PERCENT, "%")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				tok = l.NewToken(token.SPACESHIP, "<=>")
			} else {
				tok = l.NewToken(token.LT_EQ, "<=")
			}
		case '<':
			l.readChar()
			tok = l.NewToken(token.SHOVEL, "<<")
		default:
			tok = l.NewToken(token.LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.NewToken(token.GT_EQ, ">=")
		} else {
			tok = l.NewToken(token.GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.NewToken(token.NOT_EQ, "!=")
		} else {
			tok = l.NewToken(token.ILLEGAL, "lex/ill")
			l.Throw("lex/ill", tok, l.ch)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.NewToken(token.AMP_AMP, "&&")
		} else {
			tok = l.NewToken(token.ILLEGAL, "lex/ill")
			l.Throw("lex/ill", tok, l.ch)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.NewToken(token.PIPE_PIPE, "||")
		} else {
			tok = l.NewToken(token.PIPE, "|")
		}
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				tok = l.NewToken(token.DOTDOTDOT, "...")
			} else {
				tok = l.NewToken(token.DOTDOT, "..")
			}
		} else {
			tok = l.NewToken(token.DOT, ".")
		}
	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			tok = l.NewToken(token.SCOPE, "::")
		} else if isLetter(l.peekChar()) {
			l.readChar()
			name := l.readIdentifier()
			return l.NewToken(token.SYMBOL, name)
		} else {
			tok = l.NewToken(token.COLON, ":")
		}
	case ',':
		tok = l.NewToken(token.COMMA, ",")
	case '(':
		tok = l.NewToken(token.LPAREN, "(")
	case ')':
		tok = l.NewToken(token.RPAREN, ")")
	case '{':
		tok = l.NewToken(token.LBRACE, "{")
	case '}':
		tok = l.NewToken(token.RBRACE, "}")
	case '[':
		tok = l.NewToken(token.LBRACK, "[")
	case ']':
		tok = l.NewToken(token.RBRACK, "]")
	case '@':
		sigil := "@"
		if l.peekChar() == '@' {
			l.readChar()
			sigil = "@@"
		}
		if !isLetter(l.peekChar()) {
			tok = l.NewToken(token.ILLEGAL, "lex/sigil")
			l.Throw("lex/sigil", tok, sigil)
			break
		}
		l.readChar()
		name := l.readIdentifier()
		if sigil == "@" {
			return l.NewToken(token.IVAR, name)
		}
		return l.NewToken(token.CVAR, name)
	case '"':
		s, interpolated, ok := l.readDoubleQuotedString()
		if interpolated {
			tok = l.NewToken(token.ISTRING, s)
		} else {
			tok = l.NewToken(token.STRING, DecodeEscapes(s))
		}
		if !ok {
			l.Throw("lex/quote", tok)
			tok = l.NewToken(token.ILLEGAL, "lex/quote")
		}
	case '\'':
		s, ok := l.readSingleQuotedString()
		tok = l.NewToken(token.STRING, s)
		if !ok {
			l.Throw("lex/quote", tok)
			tok = l.NewToken(token.ILLEGAL, "lex/quote")
		}
	case 0:
		tok = l.NewToken(token.EOF, "EOF")
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return l.NewToken(token.LookupIdent(lit), lit)
		}
		tok = l.NewToken(token.ILLEGAL, "lex/ill")
		l.Throw("lex/ill", tok, l.ch)
	}
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readChar() {
	l.char++
	if l.reader.Len() == 0 {
		l.ch = 0
	} else {
		l.ch, _, _ = l.reader.ReadRune()
	}
}

func (l *Lexer) peekChar() rune {
	if l.reader.Len() == 0 {
		return 0
	}
	ru, _, _ := l.reader.ReadRune()
	l.reader.UnreadRune()
	return ru
}

// Reads an identifier starting at the current rune, leaving the lexer just
// past its final rune. A trailing '?' or '!' is part of the name.
func (l *Lexer) readIdentifier() string {
	result := string(l.ch)
	for isLetter(l.peekChar()) || isDigit(l.peekChar()) {
		l.readChar()
		result = result + string(l.ch)
	}
	if l.peekChar() == '?' || l.peekChar() == '!' {
		l.readChar()
		result = result + string(l.ch)
	}
	l.readChar()
	return result
}

// Scans a numeric literal: decimal, hex, binary or octal integers with '_'
// separators, decimal floats with an optional exponent, and a trailing 'r'
// or 'i' suffix reinterpreting the magnitude as rational or complex. The
// token literal is normalized to decimal.
func (l *Lexer) readNumber() token.Token {
	raw := ""
	base := 10
	isFloat := false

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
			l.readChar()
			l.readChar()
		case 'b', 'B':
			base = 2
			l.readChar()
			l.readChar()
		default:
			if isOctalDigit(l.peekChar()) || l.peekChar() == '_' {
				base = 8
				l.readChar()
			}
		}
	}

	for isBaseDigit(l.ch, base) || l.ch == '_' {
		if l.ch != '_' {
			raw = raw + string(l.ch)
		}
		l.readChar()
	}
	if base == 10 && l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		raw = raw + "."
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			if l.ch != '_' {
				raw = raw + string(l.ch)
			}
			l.readChar()
		}
	}
	if base == 10 && (l.ch == 'e' || l.ch == 'E') {
		isFloat = true
		raw = raw + "e"
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			raw = raw + string(l.ch)
			l.readChar()
		}
		for isDigit(l.ch) {
			raw = raw + string(l.ch)
			l.readChar()
		}
	}

	suffix := rune(0)
	if l.ch == 'r' || l.ch == 'i' {
		suffix = l.ch
		l.readChar()
	}

	// A number directly followed by a letter or digit is malformed,
	// e.g. '0b102' or '12abc'.
	if isLetter(l.ch) || isDigit(l.ch) || raw == "" {
		for isLetter(l.ch) || isDigit(l.ch) {
			raw = raw + string(l.ch)
			l.readChar()
		}
		tok := l.NewToken(token.ILLEGAL, "lex/num")
		l.Throw("lex/num", tok, raw)
		return tok
	}

	if isFloat {
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			tok := l.NewToken(token.ILLEGAL, "lex/num")
			l.Throw("lex/num", tok, raw)
			return tok
		}
		switch suffix {
		case 'r':
			return l.NewToken(token.RATIONAL, raw)
		case 'i':
			return l.NewToken(token.COMPLEX, raw)
		}
		return l.NewToken(token.FLOAT, raw)
	}

	// Any-base integer magnitudes may exceed 64 bits, so they go through
	// big.Int on the way to their decimal spelling.
	num := new(big.Int)
	if _, ok := num.SetString(raw, base); !ok {
		tok := l.NewToken(token.ILLEGAL, "lex/num")
		l.Throw("lex/num", tok, raw)
		return tok
	}
	switch suffix {
	case 'r':
		return l.NewToken(token.RATIONAL, num.String())
	case 'i':
		return l.NewToken(token.COMPLEX, num.String())
	}
	return l.NewToken(token.INT, num.String())
}

// Reads a double-quoted string, noting '#{...}' interpolation spans,
// which are kept verbatim for the parser. Whitespace escapes are decoded
// here; '\#' and '\\' stay escaped so that an escaped '#{' can't be
// mistaken for a real interpolation span, and are decoded last, by
// DecodeEscapes, once the spans have been cut out.
func (l *Lexer) readDoubleQuotedString() (string, bool, bool) {
	result := ""
	interpolated := false
	for {
		l.readChar()
		if l.ch == '"' {
			return result, interpolated, true
		}
		if l.ch == 0 {
			return result, interpolated, false
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = result + "\n"
			case 't':
				result = result + "\t"
			case 'r':
				result = result + "\r"
			case '"':
				result = result + "\""
			default:
				result = result + "\\" + string(l.ch)
			}
			continue
		}
		if l.ch == '#' && l.peekChar() == '{' {
			interpolated = true
			result = result + "#{"
			l.readChar() // the '{'
			braces := 1
			for braces > 0 {
				l.readChar()
				if l.ch == 0 || l.ch == '"' {
					return result, interpolated, false
				}
				if l.ch == '{' {
					braces++
				}
				if l.ch == '}' {
					braces--
				}
				result = result + string(l.ch)
			}
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.char = 0
		}
		result = result + string(l.ch)
	}
}

// DecodeEscapes resolves the '\\' and '\#' escapes a double-quoted
// string keeps in reserve until its interpolation spans are known. It is
// applied to plain STRING literals here, and to the literal chunks of an
// ISTRING by the parser after splitting.
func DecodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '#') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Single-quoted strings are plaintext: only \' and \\ are decoded.
func (l *Lexer) readSingleQuotedString() (string, bool) {
	result := ""
	for {
		l.readChar()
		if l.ch == '\'' {
			return result, true
		}
		if l.ch == 0 {
			return result, false
		}
		if l.ch == '\\' && (l.peekChar() == '\'' || l.peekChar() == '\\') {
			l.readChar()
		}
		if l.ch == '\n' {
			l.line++
			l.char = 0
		}
		result = result + string(l.ch)
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isOctalDigit(ch rune) bool {
	return '0' <= ch && ch <= '7'
}

func isBaseDigit(ch rune, base int) bool {
	switch base {
	case 2:
		return ch == '0' || ch == '1'
	case 8:
		return isOctalDigit(ch)
	case 16:
		return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
	}
	return isDigit(ch)
}

func (l *Lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	return token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.line, ChStart: l.tstart, ChEnd: l.char}
}

func (l *Lexer) Throw(errorID string, tok token.Token, args ...any) {
	l.Ers = object.Throw(errorID, l.Ers, tok, args...)
}
