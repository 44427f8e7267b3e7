package object

import (
	"fmt"
	"strings"

	"github.com/edipofederle/sri-sub002/source/text"
	"github.com/edipofederle/sri-sub002/source/token"
)

// A map from error identifiers to functions that supply the corresponding
// error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Major categories are lex, parse, and eval; within eval, the sub-category
// gives the taxonomy kind: eval/ident is a NameError, eval/dispatch a
// NoMethodError, eval/flow a LocalJumpError, eval/arith a ZeroDivisionError.
//
// Two otherwise identical errors thrown in different places in the Go code
// must be assigned different identifiers, if only by suffixing /a, /b, etc
// to the identifier.

type ErrorCreator struct {
	Message     func(tok token.Token, args ...any) string
	Explanation func(errors Errors, pos int, tok token.Token, args ...any) string
}

type Errors = []*Error

var ErrorCreatorMap = map[string]ErrorCreator{

	"eval/args": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("wrong number of arguments for '%v' (given %v, expected %v)", args[0], args[1], args[2])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A method must be called with exactly as many arguments as its definition declares parameters."
		},
	},

	"eval/arith/div/float": {
		Message: func(tok token.Token, args ...any) string {
			return "divided by 0"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Division by zero has no defined result, so asking for one is treated as an error."
		},
	},

	"eval/arith/div/int": {
		Message: func(tok token.Token, args ...any) string {
			return "divided by 0"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Division by zero has no defined result, so asking for one is treated as an error."
		},
	},

	"eval/arith/operand": {
		Message: func(tok token.Token, args ...any) string {
			return emph(args[0]) + " can't be coerced into " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Arithmetic is defined between numbers: integers, floats, rationals and complexes " +
				"promote to one another, but nothing else promotes to a number."
		},
	},

	"eval/array/index": {
		Message: func(tok token.Token, args ...any) string {
			return "no implicit conversion of " + emph(args[0]) + " into Integer"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Arrays are indexed by integers, counting from zero, or from the end of the " +
				"array when the index is negative."
		},
	},

	"eval/class/parent": {
		Message: func(tok token.Token, args ...any) string {
			return "undefined superclass " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The parent named in 'class Child < Parent' must have been defined by the time " +
				"the class definition is evaluated."
		},
	},

	"eval/dispatch/method": {
		Message: func(tok token.Token, args ...any) string {
			return "undefined method " + emph(args[0]) + " for " + emph(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The method was looked up on the receiver's class and then on each of its " +
				"ancestors in order, and none of them defines it."
		},
	},

	"eval/flow/break": {
		Message: func(tok token.Token, args ...any) string {
			return "break outside of a loop"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'break' makes sense only inside a loop or an iteration block, which it terminates."
		},
	},

	"eval/flow/next": {
		Message: func(tok token.Token, args ...any) string {
			return "next outside of a loop"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'next' makes sense only inside a loop or an iteration block, where it skips to " +
				"the next iteration."
		},
	},

	"eval/flow/return": {
		Message: func(tok token.Token, args ...any) string {
			return "return outside of a method"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'return' leaves the enclosing method, so at the top level there is nothing for " +
				"it to leave."
		},
	},

	"eval/flow/yield": {
		Message: func(tok token.Token, args ...any) string {
			return "no block given (yield)"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'yield' invokes the block supplied to the current method call, and this call " +
				"didn't supply one."
		},
	},

	"eval/for/collection": {
		Message: func(tok token.Token, args ...any) string {
			return "can't iterate over " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A 'for' loop iterates over an array, a hash or a range."
		},
	},

	"eval/hash/key": {
		Message: func(tok token.Token, args ...any) string {
			return "objects of type " + emph(args[0]) + " cannot be used as hash keys"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Hash keys must be strings, symbols, integers, floats or booleans."
		},
	},

	"eval/ident/found": {
		Message: func(tok token.Token, args ...any) string {
			return "undefined local variable or method " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The name is not bound in any enclosing scope, and doesn't match any " +
				"zero-argument method either, so there is nothing it could mean."
		},
	},

	"eval/ivar/self": {
		Message: func(tok token.Token, args ...any) string {
			return "instance variable " + emph("@"+args[0].(string)) + " referenced outside of an instance"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "'@name' reads a field of the current object, so it needs a current object: it " +
				"can only appear inside an instance method."
		},
	},

	"eval/range/bounds": {
		Message: func(tok token.Token, args ...any) string {
			return "bad value for range"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A range runs over integers or over single-character strings, and both of its " +
				"endpoints must be of the same kind."
		},
	},

	"eval/string/mult": {
		Message: func(tok token.Token, args ...any) string {
			return "negative argument"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A string can be repeated zero or more times, but not a negative number of times."
		},
	},

	"lex/ill": {
		Message: func(tok token.Token, args ...any) string {
			return "unexpected character " + emph(fmt.Sprintf("%c", args[0]))
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "This character can't begin any token of the language."
		},
	},

	"lex/num": {
		Message: func(tok token.Token, args ...any) string {
			return "malformed numeric literal " + emph(args[0])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Numbers are decimal, hex ('0x'), binary ('0b') or octal (leading '0') integers, " +
				"possibly with '_' separators, or decimal floats with an optional exponent, " +
				"optionally suffixed with 'r' for a rational or 'i' for a complex."
		},
	},

	"lex/quote": {
		Message: func(tok token.Token, args ...any) string {
			return "unterminated string literal"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The closing quote of the string is missing: a string must be closed before the " +
				"end of the file."
		},
	},

	"lex/sigil": {
		Message: func(tok token.Token, args ...any) string {
			return emph(args[0]) + " without an identifier"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The '@' and '@@' sigils introduce instance and class variables, so an " +
				"identifier must follow directly."
		},
	},

	"parse/args": {
		Message: func(tok token.Token, args ...any) string {
			return "malformed argument list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The arguments of a call are expressions separated by commas, with no trailing comma."
		},
	},

	"parse/blockparam": {
		Message: func(tok token.Token, args ...any) string {
			return "malformed block parameter list"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Block parameters are identifiers between pipes: '{ |x, y| ... }'."
		},
	},

	"parse/end": {
		Message: func(tok token.Token, args ...any) string {
			return "missing 'end' for " + emph(args[0]) + " opened at line " + fmt.Sprint(args[1])
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "Every 'def', 'class', 'module', 'if', 'while', 'until', 'for', 'case' and 'do' " +
				"must be closed by a matching 'end'."
		},
	},

	"parse/expect": {
		Message: func(tok token.Token, args ...any) string {
			return "expected " + emph(args[0]) + ", found " + emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "The syntax of the construct being parsed requires a particular token here."
		},
	},

	"parse/interp": {
		Message: func(tok token.Token, args ...any) string {
			return "unterminated interpolation in string literal"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A '#{' inside a double-quoted string must be closed by a matching '}' before " +
				"the string ends."
		},
	},

	"parse/methodname": {
		Message: func(tok token.Token, args ...any) string {
			return "missing method name after '.'"
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "A dot must be followed by the name of the method to call on the receiver."
		},
	},

	"parse/prefix": {
		Message: func(tok token.Token, args ...any) string {
			return "unexpected token " + emph(tok.Literal)
		},
		Explanation: func(errors Errors, pos int, tok token.Token, args ...any) string {
			return "An expression was required here, and this token can't begin one."
		},
	},
}

func CreateErr(errorId string, tok token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[errorId]
	if !ok {
		return &Error{ErrorId: errorId, Message: "can't find errorId " + errorId, Token: tok}
	}
	return &Error{
		ErrorId: errorId,
		Message: creator.Message(tok, args...),
		Info:    args,
		Token:   tok,
	}
}

func Throw(errorId string, ers Errors, tok token.Token, args ...any) Errors {
	return append(ers, CreateErr(errorId, tok, args...))
}

// The broad family of an error, recovered from its identifier.
func (e *Error) Kind() string {
	switch {
	case strings.HasPrefix(e.ErrorId, "lex/"):
		return "LexError"
	case strings.HasPrefix(e.ErrorId, "parse/"):
		return "ParseError"
	case strings.HasPrefix(e.ErrorId, "eval/ident/"):
		return "NameError"
	case strings.HasPrefix(e.ErrorId, "eval/dispatch/"):
		return "DispatchError"
	case strings.HasPrefix(e.ErrorId, "eval/flow/"):
		return "ControlFlowError"
	case strings.HasPrefix(e.ErrorId, "eval/arith/"):
		return "ArithmeticError"
	}
	return "RuntimeError"
}

func emph(s any) string {
	return text.Emph(fmt.Sprint(s))
}
