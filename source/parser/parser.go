// Package parser turns a token stream into an arena-allocated syntax tree.
// It is a Pratt parser: each token type can register a prefix parselet, an
// infix parselet, or both, and a precedence table arbitrates between them.
package parser

import (
	"strings"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/dtypes"
	"github.com/edipofederle/sri-sub002/source/lexer"
	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/settings"
	"github.com/edipofederle/sri-sub002/source/token"
)

const (
	_ int = iota
	LOWEST
	ANDOR       // and, or
	ASSIGNMENT  // =
	RANGE       // .. and ...
	OR          // ||
	AND         // &&
	EQUALS      // == != <=>
	LESSGREATER // < > <= >=
	SHOVEL      // <<
	SUM         // + -
	PRODUCT     // * / %
	POWER       // ** (right-associative)
	PREFIX      // -x, not x
	CALL        // foo.bar, foo(...), foo[...]
)

var precedences = map[token.TokenType]int{
	token.AND:       ANDOR,
	token.OR:        ANDOR,
	token.ASSIGN:    ASSIGNMENT,
	token.DOTDOT:    RANGE,
	token.DOTDOTDOT: RANGE,
	token.PIPE_PIPE: OR,
	token.AMP_AMP:   AND,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.SPACESHIP: EQUALS,
	token.LT:        LESSGREATER,
	token.GT:        LESSGREATER,
	token.LT_EQ:     LESSGREATER,
	token.GT_EQ:     LESSGREATER,
	token.SHOVEL:    SHOVEL,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.PERCENT:   PRODUCT,
	token.POWER:     POWER,
	token.DOT:       CALL,
	token.LPAREN:    CALL,
	token.LBRACK:    CALL,
}

type (
	prefixParseFn func() ast.NodeID
	infixParseFn  func(ast.NodeID) ast.NodeID
)

type Parser struct {
	l     *lexer.Lexer
	arena *ast.Arena

	curToken  token.Token
	peekToken token.Token

	Ers object.Errors

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	// Opening tokens of constructs still waiting for their 'end', so an
	// unterminated block can be reported at the line that opened it.
	nesting *dtypes.Stack[token.Token]

	source string
	input  string
}

func New(source, input string) *Parser {
	return NewWithArena(source, input, ast.NewArena())
}

// NewWithArena parses into an existing arena, so that several parses can
// share one id space. The REPL leans on this: every line goes into the
// session's arena.
func NewWithArena(source, input string, arena *ast.Arena) *Parser {
	p := &Parser{
		l:       lexer.New(source, input),
		arena:   arena,
		Ers:     []*object.Error{},
		nesting: dtypes.NewStack[token.Token](),
		source:  source,
		input:   input,
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.infixParseFns = make(map[token.TokenType]infixParseFn)

	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.RATIONAL, p.parseRationalLiteral)
	p.registerPrefix(token.COMPLEX, p.parseComplexLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.ISTRING, p.parseInterpolatedString)
	p.registerPrefix(token.SYMBOL, p.parseSymbolLiteral)
	p.registerPrefix(token.TRUE, p.parseBooleanLiteral)
	p.registerPrefix(token.FALSE, p.parseBooleanLiteral)
	p.registerPrefix(token.NIL, p.parseNilLiteral)
	p.registerPrefix(token.SELF, p.parseSelfLiteral)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.CONST, p.parseConstant)
	p.registerPrefix(token.IVAR, p.parseInstanceVariable)
	p.registerPrefix(token.CVAR, p.parseClassVariable)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.NOT, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACK, p.parseArrayLiteral)
	p.registerPrefix(token.LBRACE, p.parseHashLiteral)
	p.registerPrefix(token.YIELD, p.parseYield)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.CASE, p.parseCaseExpression)

	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.PERCENT, p.parseInfixExpression)
	p.registerInfix(token.POWER, p.parsePowerExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.LT_EQ, p.parseInfixExpression)
	p.registerInfix(token.GT_EQ, p.parseInfixExpression)
	p.registerInfix(token.SPACESHIP, p.parseInfixExpression)
	p.registerInfix(token.SHOVEL, p.parseInfixExpression)
	p.registerInfix(token.AMP_AMP, p.parseInfixExpression)
	p.registerInfix(token.PIPE_PIPE, p.parseInfixExpression)
	p.registerInfix(token.AND, p.parseKeywordLogic)
	p.registerInfix(token.OR, p.parseKeywordLogic)
	p.registerInfix(token.DOTDOT, p.parseRangeLiteral)
	p.registerInfix(token.DOTDOTDOT, p.parseRangeLiteral)
	p.registerInfix(token.ASSIGN, p.parseAssignment)
	p.registerInfix(token.DOT, p.parseMethodCall)
	p.registerInfix(token.LBRACK, p.parseIndexExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseProgram consumes the whole input and returns the root of the tree,
// a SEQUENCE node over the top-level statements.
func (p *Parser) ParseProgram() ast.NodeID {
	root := p.parseSequence(token.EOF)
	if opener, ok := p.nesting.HeadValue(); ok {
		p.Throw("parse/end", opener, opener.Literal, opener.Line)
	}
	p.Ers = append(p.Ers, p.l.Ers...)
	if settings.SHOW_PARSER {
		println(p.arena.String(root))
	}
	return root
}

func (p *Parser) Arena() *ast.Arena {
	return p.arena
}

// parseSequence reads statements until it sits on one of the given
// terminators (or EOF), which it does not consume.
func (p *Parser) parseSequence(terminators ...token.TokenType) ast.NodeID {
	tok := p.curToken
	stmts := []ast.NodeID{}
	p.skipTerminators()
	for !p.curTokenIn(terminators) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != ast.None {
			stmts = append(stmts, stmt)
		}
		if !p.peekTokenEndsStatement() && !p.peekTokenIn(terminators) && !p.peekTokenIs(token.EOF) {
			p.Throw("parse/expect", p.peekToken, "end of statement", p.peekToken.Literal)
			return p.add(ast.Node{Kind: ast.SEQUENCE, Token: tok, Parts: stmts})
		}
		p.nextToken()
		p.skipTerminators()
	}
	return p.add(ast.Node{Kind: ast.SEQUENCE, Token: tok, Parts: stmts})
}

func (p *Parser) parseStatement() ast.NodeID {
	switch p.curToken.Type {
	case token.WHILE, token.UNTIL:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.LOOP:
		return p.parseLoopStatement()
	case token.DEF:
		return p.parseMethodDef()
	case token.CLASS:
		return p.parseClassDef()
	case token.MODULE:
		return p.parseModuleDef()
	case token.RETURN:
		return p.parseJumpStatement(ast.RETURN_STMT)
	case token.BREAK:
		return p.parseJumpStatement(ast.BREAK_STMT)
	case token.NEXT:
		return p.parseJumpStatement(ast.NEXT_STMT)
	}
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseExpression(precedence int) ast.NodeID {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.Throw("parse/prefix", p.curToken, p.curToken.Literal)
		return ast.None
	}
	left := prefix()
	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// --- LITERALS ---------------------------------------------------------------

func (p *Parser) parseIntegerLiteral() ast.NodeID {
	n, err := parseInt64(p.curToken.Literal)
	if err != nil {
		p.Throw("parse/prefix", p.curToken, p.curToken.Literal)
		return ast.None
	}
	return p.add(ast.Node{Kind: ast.INT_LIT, Token: p.curToken, Int: n})
}

func (p *Parser) parseFloatLiteral() ast.NodeID {
	f, err := parseFloat64(p.curToken.Literal)
	if err != nil {
		p.Throw("parse/prefix", p.curToken, p.curToken.Literal)
		return ast.None
	}
	return p.add(ast.Node{Kind: ast.FLOAT_LIT, Token: p.curToken, Float: f})
}

func (p *Parser) parseRationalLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.RATIONAL_LIT, Token: p.curToken, Str: p.curToken.Literal})
}

func (p *Parser) parseComplexLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.COMPLEX_LIT, Token: p.curToken, Str: p.curToken.Literal})
}

func (p *Parser) parseStringLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.STRING_LIT, Token: p.curToken, Str: p.curToken.Literal})
}

func (p *Parser) parseSymbolLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.SYMBOL_LIT, Token: p.curToken, Str: p.curToken.Literal})
}

func (p *Parser) parseBooleanLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.BOOL_LIT, Token: p.curToken, Flag: p.curTokenIs(token.TRUE)})
}

func (p *Parser) parseNilLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.NIL_LIT, Token: p.curToken})
}

func (p *Parser) parseSelfLiteral() ast.NodeID {
	return p.add(ast.Node{Kind: ast.SELF_LIT, Token: p.curToken})
}

// An interpolated string's token still carries its `#{...}` spans verbatim,
// and keeps '\#' and '\\' escaped so that an escaped '#{' in the text can't
// be mistaken for a span. The literal chunks become STRING_LIT nodes, decoded
// here, and each span is handed to a fresh sub-parser sharing this parser's
// arena, so its ids slot straight into the Parts list.
func (p *Parser) parseInterpolatedString() ast.NodeID {
	tok := p.curToken
	raw := tok.Literal
	parts := []ast.NodeID{}
	for {
		open := nextInterp(raw)
		if open == -1 {
			break
		}
		if open > 0 {
			parts = append(parts, p.add(ast.Node{Kind: ast.STRING_LIT, Token: tok, Str: lexer.DecodeEscapes(raw[:open])}))
		}
		depth := 1
		i := open + 2
		for ; i < len(raw) && depth > 0; i++ {
			switch raw[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		if depth != 0 {
			p.Throw("parse/interp", tok, raw[open:])
			return ast.None
		}
		code := raw[open+2 : i-1]
		sub := NewWithArena(tok.Source, code, p.arena)
		expr := sub.parseExpression(LOWEST)
		sub.Ers = append(sub.Ers, sub.l.Ers...)
		if len(sub.Ers) > 0 {
			p.Throw("parse/interp", tok, code)
			p.Ers = append(p.Ers, sub.Ers...)
			return ast.None
		}
		parts = append(parts, expr)
		raw = raw[i:]
	}
	if raw != "" {
		parts = append(parts, p.add(ast.Node{Kind: ast.STRING_LIT, Token: tok, Str: lexer.DecodeEscapes(raw)}))
	}
	return p.add(ast.Node{Kind: ast.INTERP_STRING, Token: tok, Parts: parts})
}

// nextInterp finds the first '#{' in the literal that isn't hidden behind
// a backslash escape, or -1 if none remains.
func nextInterp(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '#' && i+1 < len(s) && s[i+1] == '{' {
			return i
		}
	}
	return -1
}

func (p *Parser) parseArrayLiteral() ast.NodeID {
	tok := p.curToken
	elements := p.parseExpressionList(token.RBRACK)
	return p.add(ast.Node{Kind: ast.ARRAY_LIT, Token: tok, Parts: elements})
}

func (p *Parser) parseHashLiteral() ast.NodeID {
	tok := p.curToken
	parts := []ast.NodeID{}
	p.skipPeekNewlines()
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return p.add(ast.Node{Kind: ast.HASH_LIT, Token: tok})
	}
	for {
		p.nextToken()
		p.skipCurNewlines()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.HASHROCKET) {
			return ast.None
		}
		p.nextToken()
		p.skipCurNewlines()
		value := p.parseExpression(LOWEST)
		parts = append(parts, key, value)
		p.skipPeekNewlines()
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		p.skipPeekNewlines()
	}
	if !p.expectPeek(token.RBRACE) {
		return ast.None
	}
	return p.add(ast.Node{Kind: ast.HASH_LIT, Token: tok, Parts: parts})
}

// --- NAMES AND CALLS --------------------------------------------------------

// An identifier in expression position may be a plain name, a call with
// parentheses, or a command-style call whose arguments just follow it.
// Which one it is can't be known until evaluation for the bare case:
// resolution there falls back from variable lookup to a zero-argument
// method call.
func (p *Parser) parseIdentifier() ast.NodeID {
	tok := p.curToken
	name := tok.Literal

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args := p.parseExpressionList(token.RPAREN)
		blk := p.parseOptionalBlock()
		return p.add(ast.Node{Kind: ast.METHOD_CALL, Token: tok, Name: name, Left: ast.None, Parts: args, Right: blk})
	}

	if p.peekStartsArgument() {
		args := p.parseCommandArguments()
		blk := p.parseOptionalBlock()
		return p.add(ast.Node{Kind: ast.METHOD_CALL, Token: tok, Name: name, Left: ast.None, Parts: args, Right: blk})
	}

	if p.peekTokenIs(token.LBRACE) || p.peekTokenIs(token.DO) {
		blk := p.parseOptionalBlock()
		return p.add(ast.Node{Kind: ast.METHOD_CALL, Token: tok, Name: name, Left: ast.None, Right: blk})
	}

	return p.add(ast.Node{Kind: ast.IDENT, Token: tok, Name: name})
}

func (p *Parser) parseConstant() ast.NodeID {
	tok := p.curToken
	name := tok.Literal
	for p.peekTokenIs(token.SCOPE) {
		p.nextToken()
		if !p.expectPeek(token.CONST) {
			return ast.None
		}
		name = name + "::" + p.curToken.Literal
	}
	return p.add(ast.Node{Kind: ast.IDENT, Token: tok, Name: name})
}

func (p *Parser) parseInstanceVariable() ast.NodeID {
	return p.add(ast.Node{Kind: ast.IVAR_GET, Token: p.curToken, Name: p.curToken.Literal})
}

func (p *Parser) parseClassVariable() ast.NodeID {
	return p.add(ast.Node{Kind: ast.CVAR_GET, Token: p.curToken, Name: p.curToken.Literal})
}

func (p *Parser) parsePrefixExpression() ast.NodeID {
	tok := p.curToken
	op := tok.Literal
	prec := PREFIX
	if tok.Type == token.NOT {
		// Keyword not binds looser than the symbolic operators, so
		// not a == b negates the comparison.
		op = "!"
		prec = ANDOR
	}
	p.nextToken()
	operand := p.parseExpression(prec)
	return p.add(ast.Node{Kind: ast.PREFIX, Token: tok, Name: op, Left: operand})
}

func (p *Parser) parseInfixExpression(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	p.skipCurNewlines()
	right := p.parseExpression(precedence)
	return p.add(ast.Node{Kind: ast.INFIX, Token: tok, Name: tok.Literal, Left: left, Right: right})
}

// ** binds tighter on the right: 2 ** 3 ** 2 is 2 ** (3 ** 2).
func (p *Parser) parsePowerExpression(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	p.nextToken()
	p.skipCurNewlines()
	right := p.parseExpression(POWER - 1)
	return p.add(ast.Node{Kind: ast.INFIX, Token: tok, Name: tok.Literal, Left: left, Right: right})
}

// and/or read the same as &&/|| but bind loosest of all.
func (p *Parser) parseKeywordLogic(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	name := "&&"
	if tok.Type == token.OR {
		name = "||"
	}
	p.nextToken()
	p.skipCurNewlines()
	right := p.parseExpression(ANDOR)
	return p.add(ast.Node{Kind: ast.INFIX, Token: tok, Name: name, Left: left, Right: right})
}

func (p *Parser) parseRangeLiteral(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	inclusive := tok.Type == token.DOTDOT
	p.nextToken()
	right := p.parseExpression(RANGE)
	return p.add(ast.Node{Kind: ast.RANGE_LIT, Token: tok, Flag: inclusive, Left: left, Right: right})
}

func (p *Parser) parseGroupedExpression() ast.NodeID {
	p.nextToken()
	p.skipCurNewlines()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return ast.None
	}
	return expr
}

// Assignment is an infix on `=`; what it means depends on the shape of its
// left-hand side. a[i] = v becomes an INDEX_SET, p.x = v becomes a call to
// the setter method x=.
func (p *Parser) parseAssignment(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	p.nextToken()
	p.skipCurNewlines()
	value := p.parseExpression(ASSIGNMENT - 1)
	target := p.arena.Get(left)
	switch target.Kind {
	case ast.IDENT:
		return p.add(ast.Node{Kind: ast.ASSIGN, Token: tok, Name: target.Name, Left: value})
	case ast.IVAR_GET:
		return p.add(ast.Node{Kind: ast.IVAR_SET, Token: tok, Name: target.Name, Left: value})
	case ast.CVAR_GET:
		return p.add(ast.Node{Kind: ast.CVAR_SET, Token: tok, Name: target.Name, Left: value})
	case ast.METHOD_CALL:
		if target.Name == "[]" && target.Left != ast.None && len(target.Parts) == 1 {
			return p.add(ast.Node{Kind: ast.INDEX_SET, Token: tok, Left: target.Left,
				Parts: []ast.NodeID{target.Parts[0], value}})
		}
		if target.Left != ast.None && len(target.Parts) == 0 && target.Right == ast.None {
			return p.add(ast.Node{Kind: ast.METHOD_CALL, Token: tok, Name: target.Name + "=",
				Left: target.Left, Parts: []ast.NodeID{value}, Right: ast.None})
		}
	}
	p.Throw("parse/expect", tok, "assignable expression", tok.Literal)
	return ast.None
}

func (p *Parser) parseMethodCall(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	p.nextToken()
	name, ok := p.methodName()
	if !ok {
		p.Throw("parse/methodname", p.curToken, p.curToken.Literal)
		return ast.None
	}
	args := []ast.NodeID{}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args = p.parseExpressionList(token.RPAREN)
	} else if p.peekStartsArgument() {
		args = p.parseCommandArguments()
	}
	blk := p.parseOptionalBlock()
	return p.add(ast.Node{Kind: ast.METHOD_CALL, Token: tok, Name: name, Left: left, Parts: args, Right: blk})
}

// After a dot, keywords are ordinary method names: 5.class, x.nil?.
func (p *Parser) methodName() (string, bool) {
	switch p.curToken.Type {
	case token.IDENT, token.CLASS, token.NIL, token.LOOP, token.THEN, token.CONST:
		return p.curToken.Literal, true
	}
	return "", false
}

func (p *Parser) parseIndexExpression(left ast.NodeID) ast.NodeID {
	tok := p.curToken
	args := p.parseExpressionList(token.RBRACK)
	return p.add(ast.Node{Kind: ast.METHOD_CALL, Token: tok, Name: "[]", Left: left, Parts: args, Right: ast.None})
}

func (p *Parser) parseYield() ast.NodeID {
	tok := p.curToken
	args := []ast.NodeID{}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		args = p.parseExpressionList(token.RPAREN)
	} else if p.peekStartsArgument() {
		args = p.parseCommandArguments()
	}
	return p.add(ast.Node{Kind: ast.YIELD, Token: tok, Parts: args})
}

// parseExpressionList is called with the opening bracket current; it
// consumes through the closing token.
func (p *Parser) parseExpressionList(closer token.TokenType) []ast.NodeID {
	list := []ast.NodeID{}
	p.skipPeekNewlines()
	if p.peekTokenIs(closer) {
		p.nextToken()
		return list
	}
	p.nextToken()
	p.skipCurNewlines()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		p.skipCurNewlines()
		list = append(list, p.parseExpression(LOWEST))
	}
	p.skipPeekNewlines()
	if !p.expectPeek(closer) {
		return list
	}
	return list
}

// Arguments of a command-style call, read until the end of the line.
func (p *Parser) parseCommandArguments() []ast.NodeID {
	args := []ast.NodeID{}
	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}
	return args
}

// The token class that may open a command-style argument list. Only tokens
// that can't continue the current expression qualify, so `puts "hi"` is a
// call while `a - b` stays arithmetic.
var argStarters = dtypes.MakeFromSlice([]token.TokenType{
	token.INT, token.FLOAT, token.RATIONAL, token.COMPLEX,
	token.STRING, token.ISTRING, token.SYMBOL,
	token.IVAR, token.CVAR, token.IDENT, token.CONST,
	token.TRUE, token.FALSE, token.NIL, token.SELF,
})

func (p *Parser) peekStartsArgument() bool {
	return argStarters.Contains(p.peekToken.Type)
}

// A block argument attached to a call: { |x| ... } or do |x| ... end.
func (p *Parser) parseOptionalBlock() ast.NodeID {
	var closer token.TokenType
	switch p.peekToken.Type {
	case token.LBRACE:
		closer = token.RBRACE
	case token.DO:
		closer = token.END
	default:
		return ast.None
	}
	p.nextToken()
	tok := p.curToken
	p.nesting.Push(tok)
	params := []string{}
	p.skipPeekNewlines()
	if p.peekTokenIs(token.PIPE) {
		p.nextToken()
		for !p.peekTokenIs(token.PIPE) {
			if !p.expectPeek(token.IDENT) {
				p.Throw("parse/blockparam", p.peekToken, p.peekToken.Literal)
				return ast.None
			}
			params = append(params, p.curToken.Literal)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken()
	}
	p.nextToken()
	body := p.parseSequence(closer)
	if !p.curTokenIs(closer) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.BLOCK_ARG, Token: tok, Strings: params, Left: body})
}

// --- STATEMENTS -------------------------------------------------------------

// if cond ... elsif cond ... else ... end. The elsif arms nest: each one
// becomes the alternative of the arm before it.
func (p *Parser) parseIfExpression() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	p.skipThen()
	p.nextToken()
	consequence := p.parseSequence(token.ELSIF, token.ELSE, token.END)
	id := p.parseIfTail(tok, cond, consequence)
	p.popNesting()
	return id
}

func (p *Parser) parseIfTail(tok token.Token, cond, consequence ast.NodeID) ast.NodeID {
	alternative := ast.None
	switch p.curToken.Type {
	case token.ELSIF:
		elsifTok := p.curToken
		p.nextToken()
		elsifCond := p.parseExpression(LOWEST)
		p.skipThen()
		p.nextToken()
		elsifBody := p.parseSequence(token.ELSIF, token.ELSE, token.END)
		alternative = p.parseIfTail(elsifTok, elsifCond, elsifBody)
		return p.add(ast.Node{Kind: ast.IF_STMT, Token: tok, Left: cond, Right: consequence,
			Parts: []ast.NodeID{alternative}})
	case token.ELSE:
		p.nextToken()
		alternative = p.parseSequence(token.END)
	}
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	return p.add(ast.Node{Kind: ast.IF_STMT, Token: tok, Left: cond, Right: consequence,
		Parts: []ast.NodeID{alternative}})
}

func (p *Parser) parseWhileStatement() ast.NodeID {
	tok := p.curToken
	until := tok.Type == token.UNTIL
	p.nesting.Push(tok)
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.DO) {
		p.nextToken()
	}
	p.nextToken()
	body := p.parseSequence(token.END)
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.WHILE_STMT, Token: tok, Flag: until, Left: cond, Right: body})
}

func (p *Parser) parseForStatement() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	if !p.expectPeek(token.IDENT) {
		return ast.None
	}
	name := p.curToken.Literal
	if !p.expectPeek(token.IN) {
		return ast.None
	}
	p.nextToken()
	collection := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.DO) {
		p.nextToken()
	}
	p.nextToken()
	body := p.parseSequence(token.END)
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.FOR_STMT, Token: tok, Name: name, Left: collection, Right: body})
}

func (p *Parser) parseLoopStatement() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	closer := token.TokenType(token.END)
	switch p.peekToken.Type {
	case token.DO:
		p.nextToken()
	case token.LBRACE:
		p.nextToken()
		closer = token.RBRACE
	default:
		p.Throw("parse/expect", p.peekToken, "do", p.peekToken.Literal)
		return ast.None
	}
	p.nextToken()
	body := p.parseSequence(closer)
	if !p.curTokenIs(closer) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.LOOP_STMT, Token: tok, Left: body})
}

func (p *Parser) parseCaseExpression() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	p.nextToken()
	subject := p.parseExpression(LOWEST)
	p.nextToken()
	p.skipTerminators()
	clauses := []ast.NodeID{}
	for p.curTokenIs(token.WHEN) {
		whenTok := p.curToken
		candidates := []ast.NodeID{}
		p.nextToken()
		candidates = append(candidates, p.parseExpression(LOWEST))
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			candidates = append(candidates, p.parseExpression(LOWEST))
		}
		p.skipThen()
		p.nextToken()
		body := p.parseSequence(token.WHEN, token.ELSE, token.END)
		clauses = append(clauses, p.add(ast.Node{Kind: ast.WHEN_CLAUSE, Token: whenTok,
			Parts: candidates, Left: body}))
	}
	if len(clauses) == 0 {
		p.Throw("parse/expect", p.curToken, "when", p.curToken.Literal)
		return ast.None
	}
	elseBody := ast.None
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		elseBody = p.parseSequence(token.END)
	}
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.CASE_STMT, Token: tok, Left: subject, Parts: clauses, Right: elseBody})
}

func (p *Parser) parseJumpStatement(kind ast.NodeKind) ast.NodeID {
	tok := p.curToken
	value := ast.None
	if !p.peekTokenEndsStatement() && !p.peekTokenIs(token.END) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}
	return p.add(ast.Node{Kind: kind, Token: tok, Left: value})
}

func (p *Parser) parseMethodDef() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	name, ok := p.defName()
	if !ok {
		p.Throw("parse/methodname", p.peekToken, p.peekToken.Literal)
		return ast.None
	}
	params := []string{}
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		for !p.peekTokenIs(token.RPAREN) {
			if !p.expectPeek(token.IDENT) {
				return ast.None
			}
			params = append(params, p.curToken.Literal)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken()
	} else if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		params = append(params, p.curToken.Literal)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return ast.None
			}
			params = append(params, p.curToken.Literal)
		}
	}
	p.nextToken()
	body := p.parseSequence(token.END)
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.METHOD_DEF, Token: tok, Name: name, Strings: params, Left: body})
}

// The name after def: an ordinary identifier, a setter like name=, or one
// of the operators that user classes may define.
func (p *Parser) defName() (string, bool) {
	switch p.peekToken.Type {
	case token.IDENT:
		p.nextToken()
		name := p.curToken.Literal
		if p.peekTokenIs(token.ASSIGN) && !strings.HasSuffix(name, "?") && !strings.HasSuffix(name, "!") {
			// Only a setter definition if the = is glued to the name.
			if p.peekToken.ChStart == p.curToken.ChEnd {
				p.nextToken()
				return name + "=", true
			}
		}
		return name, true
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT, token.POWER,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ, token.GT_EQ,
		token.SPACESHIP, token.SHOVEL:
		p.nextToken()
		return p.curToken.Literal, true
	case token.LBRACK:
		p.nextToken()
		if !p.expectPeek(token.RBRACK) {
			return "", false
		}
		name := "[]"
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			name = "[]="
		}
		return name, true
	}
	return "", false
}

func (p *Parser) parseClassDef() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	if !p.expectPeek(token.CONST) {
		return ast.None
	}
	name := p.curToken.Literal
	parent := ""
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		if !p.expectPeek(token.CONST) {
			return ast.None
		}
		parent = p.curToken.Literal
	}
	p.nextToken()
	body := p.parseSequence(token.END)
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.CLASS_DEF, Token: tok, Name: name, Name2: parent, Left: body})
}

func (p *Parser) parseModuleDef() ast.NodeID {
	tok := p.curToken
	p.nesting.Push(tok)
	if !p.expectPeek(token.CONST) {
		return ast.None
	}
	name := p.curToken.Literal
	for p.peekTokenIs(token.SCOPE) {
		p.nextToken()
		if !p.expectPeek(token.CONST) {
			return ast.None
		}
		name = name + "::" + p.curToken.Literal
	}
	p.nextToken()
	body := p.parseSequence(token.END)
	if !p.curTokenIs(token.END) {
		p.Throw("parse/end", tok, tok.Literal, tok.Line)
		return ast.None
	}
	p.popNesting()
	return p.add(ast.Node{Kind: ast.MODULE_DEF, Token: tok, Name: name, Left: body})
}

// --- PLUMBING ---------------------------------------------------------------

func (p *Parser) add(n ast.Node) ast.NodeID {
	return p.arena.Add(n)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) curTokenIn(types []token.TokenType) bool {
	for _, t := range types {
		if p.curToken.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) peekTokenIn(types []token.TokenType) bool {
	for _, t := range types {
		if p.peekToken.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) peekTokenEndsStatement() bool {
	return p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON)
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.Throw("parse/expect", p.peekToken, string(t), p.peekToken.Literal)
	return false
}

func (p *Parser) skipTerminators() {
	for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) skipCurNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// skipThen steps over an optional `then` (or newline) after a condition.
func (p *Parser) skipThen() {
	if p.peekTokenIs(token.THEN) {
		p.nextToken()
	}
}

func (p *Parser) popNesting() {
	p.nesting.Pop()
}

func (p *Parser) peekPrecedence() int {
	if precedence, ok := precedences[p.peekToken.Type]; ok {
		return precedence
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if precedence, ok := precedences[p.curToken.Type]; ok {
		return precedence
	}
	return LOWEST
}

func (p *Parser) Throw(errorID string, tok token.Token, args ...any) {
	p.Ers = object.Throw(errorID, p.Ers, tok, args...)
}
