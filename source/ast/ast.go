package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/edipofederle/sri-sub002/source/token"
)

// The AST is stored in an arena: nodes are records in an append-only slice
// and refer to one another by index, never by pointer. This makes the tree
// acyclic by construction, and a (NodeID, *Arena) pair is all the parser
// hands to the evaluator.

type NodeID int32

// The id used wherever a child is optional: an elided receiver, a missing
// else branch, a call without a block.
const None NodeID = -1

type NodeKind int

const (
	UNDEFINED NodeKind = iota // so that the zero value is never a real node

	INT_LIT
	FLOAT_LIT
	RATIONAL_LIT
	COMPLEX_LIT
	STRING_LIT
	INTERP_STRING // Parts alternates string-literal ids and expression ids
	SYMBOL_LIT
	BOOL_LIT
	NIL_LIT
	SELF_LIT
	RANGE_LIT // Left..Right, Flag set means inclusive
	ARRAY_LIT
	HASH_LIT // Parts is key, value, key, value ...

	IDENT
	IVAR_GET
	IVAR_SET // Name, Left = value
	CVAR_GET
	CVAR_SET

	PREFIX // Name = operator, Left = operand
	INFIX  // Name = operator, Left, Right

	ASSIGN      // Name = variable, Left = value
	INDEX_SET   // Left = collection expr, Parts[0] = index, Parts[1] = value
	METHOD_CALL // Left = receiver or None, Name, Parts = args, Right = block or None
	BLOCK_ARG   // Strings = parameter names, Left = body
	YIELD       // Parts = args

	SEQUENCE // Parts = statement ids

	IF_STMT     // Left = condition, Right = consequence, Parts[0] = alternative or None
	WHILE_STMT  // Left = condition, Right = body, Flag set means 'until'
	FOR_STMT    // Name = loop variable, Left = collection, Right = body
	LOOP_STMT   // Left = body
	CASE_STMT   // Left = subject, Parts = when-clause ids, Right = else body or None
	WHEN_CLAUSE // Parts = candidate ids, Left = body

	RETURN_STMT // Left = value or None
	BREAK_STMT  // Left = value or None
	NEXT_STMT   // Left = value or None

	METHOD_DEF // Name, Strings = parameter names, Left = body
	CLASS_DEF  // Name, Name2 = parent or "", Left = body
	MODULE_DEF // Name, Left = body
)

type Node struct {
	Kind    NodeKind
	Token   token.Token
	Name    string
	Name2   string
	Int     int64
	Float   float64
	Str     string
	Flag    bool
	Left    NodeID
	Right   NodeID
	Parts   []NodeID
	Strings []string
}

type Arena struct {
	nodes []Node
}

func NewArena() *Arena {
	return &Arena{nodes: []Node{}}
}

// Appends a node and returns its id. Ids are assigned monotonically;
// nothing is ever removed.
func (a *Arena) Add(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

func (a *Arena) Get(id NodeID) *Node {
	return &a.nodes[id]
}

func (a *Arena) Size() int {
	return len(a.nodes)
}

// Produces the bracketed dump of a subtree that the parser tests compare
// against, e.g. `(2 + (3 * 4))`.
func (a *Arena) String(id NodeID) string {
	if id == None {
		return ""
	}
	n := a.Get(id)
	switch n.Kind {
	case INT_LIT:
		return strconv.FormatInt(n.Int, 10)
	case FLOAT_LIT:
		return n.Token.Literal
	case RATIONAL_LIT:
		return n.Str + "r"
	case COMPLEX_LIT:
		return n.Str + "i"
	case STRING_LIT:
		return "\"" + n.Str + "\""
	case INTERP_STRING:
		var out bytes.Buffer
		out.WriteString("interp(")
		out.WriteString(a.joinParts(n, " . "))
		out.WriteString(")")
		return out.String()
	case SYMBOL_LIT:
		return ":" + n.Str
	case BOOL_LIT:
		if n.Flag {
			return "true"
		}
		return "false"
	case NIL_LIT:
		return "nil"
	case SELF_LIT:
		return "self"
	case RANGE_LIT:
		op := "..."
		if n.Flag {
			op = ".."
		}
		return "(" + a.String(n.Left) + " " + op + " " + a.String(n.Right) + ")"
	case ARRAY_LIT:
		return "[" + a.joinParts(n, ", ") + "]"
	case HASH_LIT:
		var pairs []string
		for i := 0; i+1 < len(n.Parts); i += 2 {
			pairs = append(pairs, a.String(n.Parts[i])+" => "+a.String(n.Parts[i+1]))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	case IDENT:
		return n.Name
	case IVAR_GET:
		return "@" + n.Name
	case IVAR_SET:
		return "(@" + n.Name + " = " + a.String(n.Left) + ")"
	case CVAR_GET:
		return "@@" + n.Name
	case CVAR_SET:
		return "(@@" + n.Name + " = " + a.String(n.Left) + ")"
	case PREFIX:
		return "(" + n.Name + " " + a.String(n.Left) + ")"
	case INFIX:
		return "(" + a.String(n.Left) + " " + n.Name + " " + a.String(n.Right) + ")"
	case ASSIGN:
		return "(" + n.Name + " = " + a.String(n.Left) + ")"
	case INDEX_SET:
		return "(" + a.String(n.Left) + "[" + a.String(n.Parts[0]) + "] = " + a.String(n.Parts[1]) + ")"
	case METHOD_CALL:
		var out bytes.Buffer
		out.WriteString("(")
		if n.Left != None {
			out.WriteString(a.String(n.Left))
			out.WriteString(".")
		}
		out.WriteString(n.Name)
		if len(n.Parts) > 0 {
			out.WriteString("(")
			out.WriteString(a.joinParts(n, ", "))
			out.WriteString(")")
		}
		if n.Right != None {
			out.WriteString(" ")
			out.WriteString(a.String(n.Right))
		}
		out.WriteString(")")
		return out.String()
	case BLOCK_ARG:
		var out bytes.Buffer
		out.WriteString("{ |")
		out.WriteString(strings.Join(n.Strings, ", "))
		out.WriteString("| ")
		out.WriteString(a.String(n.Left))
		out.WriteString(" }")
		return out.String()
	case YIELD:
		if len(n.Parts) == 0 {
			return "yield"
		}
		return "(yield " + a.joinParts(n, ", ") + ")"
	case SEQUENCE:
		return a.joinParts(n, "; ")
	case IF_STMT:
		result := "(if " + a.String(n.Left) + " : " + a.String(n.Right)
		if n.Parts[0] != None {
			result = result + " else : " + a.String(n.Parts[0])
		}
		return result + ")"
	case WHILE_STMT:
		op := "while"
		if n.Flag {
			op = "until"
		}
		return "(" + op + " " + a.String(n.Left) + " : " + a.String(n.Right) + ")"
	case FOR_STMT:
		return "(for " + n.Name + " in " + a.String(n.Left) + " : " + a.String(n.Right) + ")"
	case LOOP_STMT:
		return "(loop : " + a.String(n.Left) + ")"
	case CASE_STMT:
		result := "(case " + a.String(n.Left)
		for _, id := range n.Parts {
			result = result + " " + a.String(id)
		}
		if n.Right != None {
			result = result + " else : " + a.String(n.Right)
		}
		return result + ")"
	case WHEN_CLAUSE:
		return "(when " + a.joinParts(n, ", ") + " : " + a.String(n.Left) + ")"
	case RETURN_STMT:
		if n.Left == None {
			return "return"
		}
		return "(return " + a.String(n.Left) + ")"
	case BREAK_STMT:
		if n.Left == None {
			return "break"
		}
		return "(break " + a.String(n.Left) + ")"
	case NEXT_STMT:
		if n.Left == None {
			return "next"
		}
		return "(next " + a.String(n.Left) + ")"
	case METHOD_DEF:
		return "(def " + n.Name + "(" + strings.Join(n.Strings, ", ") + ") : " + a.String(n.Left) + ")"
	case CLASS_DEF:
		result := "(class " + n.Name
		if n.Name2 != "" {
			result = result + " < " + n.Name2
		}
		return result + " : " + a.String(n.Left) + ")"
	case MODULE_DEF:
		return "(module " + n.Name + " : " + a.String(n.Left) + ")"
	}
	return "?"
}

func (a *Arena) joinParts(n *Node, sep string) string {
	strs := []string{}
	for _, id := range n.Parts {
		strs = append(strs, a.String(id))
	}
	return strings.Join(strs, sep)
}
