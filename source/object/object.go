package object

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math/big"
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/text"
	"github.com/edipofederle/sri-sub002/source/token"
)

type View int

const (
	ViewStdOut = iota
	ViewRubyLiteral
)

type ObjectType string

const (
	ERROR_OBJ = "error"

	// The unwind signals. These propagate up through the evaluator until the
	// enclosing loop or call frame absorbs them; they are never results.
	BREAK_OBJ  = "break signal"
	NEXT_OBJ   = "next signal"
	RETURN_OBJ = "return signal"

	INTEGER_OBJ  = "Integer"
	FLOAT_OBJ    = "Float"
	RATIONAL_OBJ = "Rational"
	COMPLEX_OBJ  = "Complex"
	STRING_OBJ   = "String"
	SYMBOL_OBJ   = "Symbol"
	TRUE_OBJ     = "TrueClass"
	FALSE_OBJ    = "FalseClass"
	NIL_OBJ      = "NilClass"
	ARRAY_OBJ    = "Array"
	HASH_OBJ     = "Hash"
	RANGE_OBJ    = "Range"
	BLOCK_OBJ    = "Proc"
	INSTANCE_OBJ = "instance"
)

type Object interface {
	Type() ObjectType
	Inspect(view View) string
}

// The Ruby class an object belongs to: same as its ObjectType except for
// instances of guest-defined classes.
func TrueType(o Object) string {
	if o.Type() != INSTANCE_OBJ {
		return string(o.Type())
	}
	return o.(*Instance).Class
}

// Ruby truthiness: everything but false and nil.
func Truthy(o Object) bool {
	return o != FALSE && o != NIL
}

type HashKey struct {
	Type  ObjectType
	Value uint64
}

type Hashable interface {
	Object
	HashKey() HashKey
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType         { return INTEGER_OBJ }
func (i *Integer) Inspect(view View) string { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) HashKey() HashKey {
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect(view View) string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s = s + ".0"
	}
	return s
}
func (f *Float) HashKey() HashKey {
	return HashKey{Type: f.Type(), Value: uint64(f.Value)}
}

type Rational struct {
	Value *big.Rat
}

func (r *Rational) Type() ObjectType { return RATIONAL_OBJ }
func (r *Rational) Inspect(view View) string {
	return "(" + r.Value.Num().String() + "/" + r.Value.Denom().String() + ")"
}

type Complex struct {
	Value complex128
}

func (c *Complex) Type() ObjectType { return COMPLEX_OBJ }
func (c *Complex) Inspect(view View) string {
	re := strconv.FormatFloat(real(c.Value), 'g', -1, 64)
	im := strconv.FormatFloat(imag(c.Value), 'g', -1, 64)
	if imag(c.Value) >= 0 {
		im = "+" + im
	}
	return "(" + re + im + "i)"
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect(view View) string {
	if view == ViewStdOut {
		return s.Value
	}
	return text.ToEscapedText(s.Value)
}
func (s *String) HashKey() HashKey {
	h := fnv.New64a()
	h.Write([]byte(s.Value))
	return HashKey{Type: s.Type(), Value: h.Sum64()}
}

type Symbol struct {
	Value string
}

func (sy *Symbol) Type() ObjectType         { return SYMBOL_OBJ }
func (sy *Symbol) Inspect(view View) string { return ":" + sy.Value }
func (sy *Symbol) HashKey() HashKey {
	h := fnv.New64a()
	h.Write([]byte(sy.Value))
	return HashKey{Type: sy.Type(), Value: h.Sum64()}
}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType {
	if b.Value {
		return TRUE_OBJ
	}
	return FALSE_OBJ
}
func (b *Boolean) Inspect(view View) string { return strconv.FormatBool(b.Value) }
func (b *Boolean) HashKey() HashKey {
	var value uint64
	if b.Value {
		value = 1
	}
	return HashKey{Type: b.Type(), Value: value}
}

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect(view View) string {
	if view == ViewStdOut {
		return ""
	}
	return "nil"
}

// Guest arrays are backed by a persistent vector, so that taking a value
// out of an environment or instance never aliases live mutable state.
type Array struct {
	Elements vector.Vector
}

func (ao *Array) Type() ObjectType { return ARRAY_OBJ }
func (ao *Array) Inspect(view View) string {
	var out bytes.Buffer
	elements := []string{}
	for i := 0; i < ao.Elements.Len(); i++ {
		el, _ := ao.Elements.Index(i)
		elements = append(elements, el.(Object).Inspect(ViewRubyLiteral))
	}
	out.WriteString("[")
	out.WriteString(strings.Join(elements, ", "))
	out.WriteString("]")
	return out.String()
}

func (ao *Array) Len() int {
	return ao.Elements.Len()
}

func (ao *Array) At(i int) Object {
	el, ok := ao.Elements.Index(i)
	if !ok {
		return NIL
	}
	return el.(Object)
}

func ArrayFromSlice(slice []Object) *Array {
	vec := vector.Empty
	for _, v := range slice {
		vec = vec.Conj(v)
	}
	return &Array{Elements: vec}
}

func (ao *Array) Slice() []Object {
	result := make([]Object, 0, ao.Elements.Len())
	for i := 0; i < ao.Elements.Len(); i++ {
		el, _ := ao.Elements.Index(i)
		result = append(result, el.(Object))
	}
	return result
}

type HashPair struct {
	Key   Object
	Value Object
}

type Hash struct {
	Pairs map[HashKey]HashPair
	Order []HashKey // insertion order, so inspection is deterministic
}

func NewHash() *Hash {
	return &Hash{Pairs: make(map[HashKey]HashPair)}
}

func (h *Hash) Set(key Hashable, value Object) {
	hk := key.HashKey()
	if _, ok := h.Pairs[hk]; !ok {
		h.Order = append(h.Order, hk)
	}
	h.Pairs[hk] = HashPair{Key: key, Value: value}
}

func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return NIL, false
	}
	return pair.Value, true
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect(view View) string {
	var out bytes.Buffer
	pairs := []string{}
	for _, hk := range h.Order {
		pair := h.Pairs[hk]
		pairs = append(pairs, fmt.Sprintf("%s => %s",
			pair.Key.Inspect(ViewRubyLiteral), pair.Value.Inspect(ViewRubyLiteral)))
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}

// A range over integers or single-character strings. Immutable once made.
type Range struct {
	Start     Object
	End       Object
	Inclusive bool
}

func (r *Range) Type() ObjectType { return RANGE_OBJ }
func (r *Range) Inspect(view View) string {
	op := "..."
	if r.Inclusive {
		op = ".."
	}
	return r.Start.Inspect(ViewRubyLiteral) + op + r.End.Inspect(ViewRubyLiteral)
}

// A block is a deferred body plus the environment it closed over. The
// captured environment is shared, not copied: assignment inside the block
// is visible to its defining scope and to sibling blocks.
type Block struct {
	Params []string
	Body   ast.NodeID
	Env    *Environment
}

func (b *Block) Type() ObjectType         { return BLOCK_OBJ }
func (b *Block) Inspect(view View) string { return "#<Proc>" }

// An instance of a guest-defined class.
type Instance struct {
	Class string
	IVars map[string]Object
}

func NewInstance(class string) *Instance {
	return &Instance{Class: class, IVars: make(map[string]Object)}
}

func (in *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (in *Instance) Inspect(view View) string {
	if len(in.IVars) == 0 {
		return "#<" + in.Class + ">"
	}
	fields := []string{}
	for k, v := range in.IVars {
		fields = append(fields, "@"+k+"="+v.Inspect(ViewRubyLiteral))
	}
	return "#<" + in.Class + " " + strings.Join(fields, ", ") + ">"
}

type BreakSignal struct {
	Value Object
}

func (bs *BreakSignal) Type() ObjectType         { return BREAK_OBJ }
func (bs *BreakSignal) Inspect(view View) string { return "break" }

type NextSignal struct {
	Value Object
}

func (ns *NextSignal) Type() ObjectType         { return NEXT_OBJ }
func (ns *NextSignal) Inspect(view View) string { return "next" }

type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType         { return RETURN_OBJ }
func (rv *ReturnValue) Inspect(view View) string { return "return" }

type Error struct {
	ErrorId string
	Message string
	Info    []any
	Trace   []token.Token
	Token   token.Token
	// The program text the error arose in, filled in at the service
	// boundary so embedders can quote it back.
	Source string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect(view View) string {
	if view == ViewStdOut {
		return text.ERROR + e.Message + text.DescribePos(e.Token) + "."
	}
	return "error " + text.ToEscapedText(e.Message)
}

// Value equality, the semantics of guest '=='. Identity is checked by the
// 'equal?' builtin, not here.
func Equals(lhs, rhs Object) bool {
	if isNumeric(lhs) && isNumeric(rhs) {
		return numericEquals(lhs, rhs)
	}
	if TrueType(lhs) != TrueType(rhs) {
		return false
	}
	if lhs == rhs {
		return true
	}
	switch lhs.Type() {
	case INTEGER_OBJ:
		return lhs.(*Integer).Value == rhs.(*Integer).Value
	case FLOAT_OBJ:
		return lhs.(*Float).Value == rhs.(*Float).Value
	case STRING_OBJ:
		return lhs.(*String).Value == rhs.(*String).Value
	case SYMBOL_OBJ:
		return lhs.(*Symbol).Value == rhs.(*Symbol).Value
	case TRUE_OBJ, FALSE_OBJ:
		return lhs.(*Boolean).Value == rhs.(*Boolean).Value
	case NIL_OBJ:
		return true
	case ARRAY_OBJ:
		lArr, rArr := lhs.(*Array), rhs.(*Array)
		if lArr.Len() != rArr.Len() {
			return false
		}
		for i := 0; i < lArr.Len(); i++ {
			if !Equals(lArr.At(i), rArr.At(i)) {
				return false
			}
		}
		return true
	case HASH_OBJ:
		lHash, rHash := lhs.(*Hash), rhs.(*Hash)
		if len(lHash.Pairs) != len(rHash.Pairs) {
			return false
		}
		for hk, pair := range lHash.Pairs {
			other, ok := rHash.Pairs[hk]
			if !ok || !Equals(pair.Value, other.Value) {
				return false
			}
		}
		return true
	case RANGE_OBJ:
		lRange, rRange := lhs.(*Range), rhs.(*Range)
		return lRange.Inclusive == rRange.Inclusive &&
			Equals(lRange.Start, rRange.Start) && Equals(lRange.End, rRange.End)
	case INSTANCE_OBJ:
		lInst, rInst := lhs.(*Instance), rhs.(*Instance)
		if len(lInst.IVars) != len(rInst.IVars) {
			return false
		}
		for k, v := range lInst.IVars {
			w, ok := rInst.IVars[k]
			if !ok || !Equals(v, w) {
				return false
			}
		}
		return true
	}
	return false
}

func isNumeric(o Object) bool {
	switch o.Type() {
	case INTEGER_OBJ, FLOAT_OBJ, RATIONAL_OBJ, COMPLEX_OBJ:
		return true
	}
	return false
}

// 1 == 1.0 == 1r == (1+0i), as in the reference language.
func numericEquals(lhs, rhs Object) bool {
	if lc, ok := lhs.(*Complex); ok {
		return lc.Value == toComplex(rhs)
	}
	if rc, ok := rhs.(*Complex); ok {
		return toComplex(lhs) == rc.Value
	}
	if _, ok := lhs.(*Float); ok {
		return toFloat(lhs) == toFloat(rhs)
	}
	if _, ok := rhs.(*Float); ok {
		return toFloat(lhs) == toFloat(rhs)
	}
	return toRat(lhs).Cmp(toRat(rhs)) == 0
}

func toFloat(o Object) float64 {
	switch o := o.(type) {
	case *Integer:
		return float64(o.Value)
	case *Float:
		return o.Value
	case *Rational:
		f, _ := o.Value.Float64()
		return f
	}
	return 0
}

func toRat(o Object) *big.Rat {
	switch o := o.(type) {
	case *Integer:
		return big.NewRat(o.Value, 1)
	case *Rational:
		return o.Value
	case *Float:
		r := new(big.Rat)
		r.SetFloat64(o.Value)
		return r
	}
	return new(big.Rat)
}

func toComplex(o Object) complex128 {
	if c, ok := o.(*Complex); ok {
		return c.Value
	}
	return complex(toFloat(o), 0)
}

func MakeBool(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

func MakeInverseBool(input bool) *Boolean {
	if input {
		return FALSE
	}
	return TRUE
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NIL   = &Nil{}
)
