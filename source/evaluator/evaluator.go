// Package evaluator walks the syntax tree and computes values. One
// Evaluator serves one run: it owns a fork of the base registry, the
// inline caches for that run's call sites, and the run's output writer.
package evaluator

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/registry"
	"github.com/edipofederle/sri-sub002/source/token"
)

type Evaluator struct {
	arena *ast.Arena
	reg   *registry.Registry
	out   io.Writer

	// The class whose body is currently being evaluated: method
	// definitions land there. Empty at the top level, where definitions
	// land on Object.
	class string

	caches map[ast.NodeID][]cacheEntry

	// The top-level self, an anonymous Object instance. Top-level
	// instance variables live on it.
	main *object.Instance
}

func New(arena *ast.Arena, reg *registry.Registry, out io.Writer) *Evaluator {
	return &Evaluator{
		arena:  arena,
		reg:    reg,
		out:    out,
		caches: make(map[ast.NodeID][]cacheEntry),
		main:   object.NewInstance("Object"),
	}
}

func (e *Evaluator) Registry() *registry.Registry {
	return e.reg
}

func (e *Evaluator) Arena() *ast.Arena {
	return e.arena
}

// NewTopEnvironment makes the environment a program runs in, with self
// bound to the top-level object.
func (e *Evaluator) NewTopEnvironment() *object.Environment {
	env := object.NewEnvironment()
	env.Set("self", e.main)
	return env
}

// EvalProgram evaluates a whole program. An unwind signal that reaches the
// top is a control-flow error: there is nothing left for it to unwind.
func (e *Evaluator) EvalProgram(root ast.NodeID, env *object.Environment) object.Object {
	result := e.Eval(root, env)
	switch result.(type) {
	case *object.BreakSignal:
		return e.err("eval/flow/break", e.arena.Get(root).Token)
	case *object.NextSignal:
		return e.err("eval/flow/next", e.arena.Get(root).Token)
	case *object.ReturnValue:
		return e.err("eval/flow/return", e.arena.Get(root).Token)
	}
	return result
}

func (e *Evaluator) Eval(id ast.NodeID, env *object.Environment) object.Object {
	if id == ast.None {
		return object.NIL
	}
	node := e.arena.Get(id)
	switch node.Kind {

	case ast.INT_LIT:
		return &object.Integer{Value: node.Int}
	case ast.FLOAT_LIT:
		return &object.Float{Value: node.Float}
	case ast.RATIONAL_LIT:
		return e.evalRationalLiteral(node)
	case ast.COMPLEX_LIT:
		return e.evalComplexLiteral(node)
	case ast.STRING_LIT:
		return &object.String{Value: node.Str}
	case ast.INTERP_STRING:
		return e.evalInterpolation(node, env)
	case ast.SYMBOL_LIT:
		return &object.Symbol{Value: node.Str}
	case ast.BOOL_LIT:
		return object.MakeBool(node.Flag)
	case ast.NIL_LIT:
		return object.NIL
	case ast.SELF_LIT:
		return e.self(env)
	case ast.RANGE_LIT:
		return e.evalRangeLiteral(node, env)
	case ast.ARRAY_LIT:
		return e.evalArrayLiteral(node, env)
	case ast.HASH_LIT:
		return e.evalHashLiteral(node, env)

	case ast.IDENT:
		return e.evalIdentifier(id, node, env)
	case ast.IVAR_GET:
		return e.evalIVarGet(node, env)
	case ast.IVAR_SET:
		return e.evalIVarSet(node, env)
	case ast.CVAR_GET:
		return e.evalCVarGet(node, env)
	case ast.CVAR_SET:
		return e.evalCVarSet(node, env)

	case ast.PREFIX:
		return e.evalPrefix(node, env)
	case ast.INFIX:
		return e.evalInfix(id, node, env)

	case ast.ASSIGN:
		value := e.Eval(node.Left, env)
		if isUnwind(value) {
			return value
		}
		return env.Assign(node.Name, value)
	case ast.INDEX_SET:
		return e.evalIndexSet(id, node, env)
	case ast.METHOD_CALL:
		return e.evalMethodCall(id, node, env)
	case ast.YIELD:
		return e.evalYield(node, env)

	case ast.SEQUENCE:
		return e.evalSequence(node, env)

	case ast.IF_STMT:
		return e.evalIf(node, env)
	case ast.WHILE_STMT:
		return e.evalWhile(node, env)
	case ast.FOR_STMT:
		return e.evalFor(node, env)
	case ast.LOOP_STMT:
		return e.evalLoop(node, env)
	case ast.CASE_STMT:
		return e.evalCase(node, env)

	case ast.RETURN_STMT:
		value := e.Eval(node.Left, env)
		if isUnwind(value) {
			return value
		}
		return &object.ReturnValue{Value: value}
	case ast.BREAK_STMT:
		value := e.Eval(node.Left, env)
		if isUnwind(value) {
			return value
		}
		return &object.BreakSignal{Value: value}
	case ast.NEXT_STMT:
		value := e.Eval(node.Left, env)
		if isUnwind(value) {
			return value
		}
		return &object.NextSignal{Value: value}

	case ast.METHOD_DEF:
		return e.evalMethodDef(node)
	case ast.CLASS_DEF:
		return e.evalClassDef(node, env)
	case ast.MODULE_DEF:
		return e.evalModuleDef(node, env)
	}
	return e.err("eval/dispatch/method", node.Token, node.Token.Literal, "?")
}

// --- LITERALS ---------------------------------------------------------------

func (e *Evaluator) evalRationalLiteral(node *ast.Node) object.Object {
	rat, ok := new(big.Rat).SetString(node.Str)
	if !ok {
		return e.err("eval/arith/operand", node.Token, node.Str, "Rational")
	}
	return &object.Rational{Value: rat}
}

func (e *Evaluator) evalComplexLiteral(node *ast.Node) object.Object {
	im, err := strconv.ParseFloat(node.Str, 64)
	if err != nil {
		return e.err("eval/arith/operand", node.Token, node.Str, "Complex")
	}
	return &object.Complex{Value: complex(0, im)}
}

func (e *Evaluator) evalInterpolation(node *ast.Node, env *object.Environment) object.Object {
	var out strings.Builder
	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isUnwind(value) {
			return value
		}
		out.WriteString(value.Inspect(object.ViewStdOut))
	}
	return &object.String{Value: out.String()}
}

func (e *Evaluator) evalRangeLiteral(node *ast.Node, env *object.Environment) object.Object {
	start := e.Eval(node.Left, env)
	if isUnwind(start) {
		return start
	}
	end := e.Eval(node.Right, env)
	if isUnwind(end) {
		return end
	}
	switch start.(type) {
	case *object.Integer:
		if _, ok := end.(*object.Integer); !ok {
			return e.err("eval/range/bounds", node.Token)
		}
	case *object.String:
		if _, ok := end.(*object.String); !ok {
			return e.err("eval/range/bounds", node.Token)
		}
	default:
		return e.err("eval/range/bounds", node.Token)
	}
	return &object.Range{Start: start, End: end, Inclusive: node.Flag}
}

func (e *Evaluator) evalArrayLiteral(node *ast.Node, env *object.Environment) object.Object {
	elements := make([]object.Object, 0, len(node.Parts))
	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isUnwind(value) {
			return value
		}
		elements = append(elements, value)
	}
	return object.ArrayFromSlice(elements)
}

func (e *Evaluator) evalHashLiteral(node *ast.Node, env *object.Environment) object.Object {
	hash := object.NewHash()
	for i := 0; i+1 < len(node.Parts); i += 2 {
		key := e.Eval(node.Parts[i], env)
		if isUnwind(key) {
			return key
		}
		hashable, ok := key.(object.Hashable)
		if !ok {
			return e.err("eval/hash/key", e.arena.Get(node.Parts[i]).Token, object.TrueType(key))
		}
		value := e.Eval(node.Parts[i+1], env)
		if isUnwind(value) {
			return value
		}
		hash.Set(hashable, value)
	}
	return hash
}

// --- NAMES ------------------------------------------------------------------

func (e *Evaluator) self(env *object.Environment) object.Object {
	if obj, ok := env.Get("self"); ok {
		return obj
	}
	return e.main
}

// A bare name is, in order of preference: a local variable, a class or
// module, or a call to a zero-argument method visible on self.
func (e *Evaluator) evalIdentifier(id ast.NodeID, node *ast.Node, env *object.Environment) object.Object {
	if value, ok := env.Get(node.Name); ok {
		return value
	}
	if isConstName(node.Name) {
		if e.reg.Exists(node.Name) {
			return &object.String{Value: node.Name}
		}
		return e.err("eval/ident/found", node.Token, node.Name)
	}
	recv := e.self(env)
	if m, owner, ok := e.lookup(id, object.TrueType(recv), node.Name); ok {
		return e.invoke(m, owner, recv, nil, nil, node.Token)
	}
	return e.err("eval/ident/found", node.Token, node.Name)
}

func (e *Evaluator) evalIVarGet(node *ast.Node, env *object.Environment) object.Object {
	inst, ok := e.self(env).(*object.Instance)
	if !ok {
		return e.err("eval/ivar/self", node.Token, node.Name)
	}
	if value, ok := inst.IVars[node.Name]; ok {
		return value
	}
	return object.NIL
}

func (e *Evaluator) evalIVarSet(node *ast.Node, env *object.Environment) object.Object {
	inst, ok := e.self(env).(*object.Instance)
	if !ok {
		return e.err("eval/ivar/self", node.Token, node.Name)
	}
	value := e.Eval(node.Left, env)
	if isUnwind(value) {
		return value
	}
	inst.IVars[node.Name] = value
	return value
}

// The class a class variable belongs to: the defining class when we are
// inside a class body, otherwise the class of self.
func (e *Evaluator) cvarClass(env *object.Environment) string {
	if e.class != "" {
		return e.class
	}
	return object.TrueType(e.self(env))
}

func (e *Evaluator) evalCVarGet(node *ast.Node, env *object.Environment) object.Object {
	class := e.cvarClass(env)
	if value, ok := e.reg.GetClassVar(class, node.Name); ok {
		return value
	}
	return e.err("eval/ident/found", node.Token, "@@"+node.Name)
}

func (e *Evaluator) evalCVarSet(node *ast.Node, env *object.Environment) object.Object {
	value := e.Eval(node.Left, env)
	if isUnwind(value) {
		return value
	}
	e.reg.SetClassVar(e.cvarClass(env), node.Name, value)
	return value
}

// --- OPERATORS --------------------------------------------------------------

func (e *Evaluator) evalPrefix(node *ast.Node, env *object.Environment) object.Object {
	operand := e.Eval(node.Left, env)
	if isUnwind(operand) {
		return operand
	}
	switch node.Name {
	case "!":
		return object.MakeInverseBool(object.Truthy(operand))
	case "-":
		switch n := operand.(type) {
		case *object.Integer:
			return &object.Integer{Value: -n.Value}
		case *object.Float:
			return &object.Float{Value: -n.Value}
		case *object.Rational:
			return &object.Rational{Value: new(big.Rat).Neg(n.Value)}
		case *object.Complex:
			return &object.Complex{Value: -n.Value}
		}
		return e.err("eval/arith/operand", node.Token, object.TrueType(operand), "Numeric")
	}
	return e.err("eval/dispatch/method", node.Token, node.Name, object.TrueType(operand))
}

// Binary operators are method calls in disguise, except for the two
// short-circuiting logical forms, which can't be: their right side must
// not always be evaluated.
func (e *Evaluator) evalInfix(id ast.NodeID, node *ast.Node, env *object.Environment) object.Object {
	left := e.Eval(node.Left, env)
	if isUnwind(left) {
		return left
	}
	switch node.Name {
	case "&&":
		if !object.Truthy(left) {
			return left
		}
		return e.Eval(node.Right, env)
	case "||":
		if object.Truthy(left) {
			return left
		}
		return e.Eval(node.Right, env)
	}
	right := e.Eval(node.Right, env)
	if isUnwind(right) {
		return right
	}
	return e.dispatch(id, left, node.Name, []object.Object{right}, nil, node.Token)
}

// --- CALLS ------------------------------------------------------------------

func (e *Evaluator) evalIndexSet(id ast.NodeID, node *ast.Node, env *object.Environment) object.Object {
	collection := e.Eval(node.Left, env)
	if isUnwind(collection) {
		return collection
	}
	index := e.Eval(node.Parts[0], env)
	if isUnwind(index) {
		return index
	}
	value := e.Eval(node.Parts[1], env)
	if isUnwind(value) {
		return value
	}
	return e.dispatch(id, collection, "[]=", []object.Object{index, value}, nil, node.Token)
}

func (e *Evaluator) evalMethodCall(id ast.NodeID, node *ast.Node, env *object.Environment) object.Object {
	// attr_accessor and friends are definitions, not calls.
	if node.Left == ast.None {
		switch node.Name {
		case "attr_accessor", "attr_reader", "attr_writer":
			return e.evalAttrDecl(node, env)
		}
	}

	var recv object.Object
	recvClass := ""
	if node.Left == ast.None {
		recv = e.self(env)
	} else {
		ln := e.arena.Get(node.Left)
		if ln.Kind == ast.IDENT && isConstName(ln.Name) && !env.Exists(ln.Name) {
			if !e.reg.Exists(ln.Name) {
				return e.err("eval/ident/found", ln.Token, ln.Name)
			}
			recvClass = ln.Name
			recv = &object.String{Value: ln.Name}
		} else {
			recv = e.Eval(node.Left, env)
			if isUnwind(recv) {
				return recv
			}
		}
	}

	args := make([]object.Object, 0, len(node.Parts))
	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isUnwind(value) {
			return value
		}
		args = append(args, value)
	}

	var blk *object.Block
	if node.Right != ast.None {
		bn := e.arena.Get(node.Right)
		blk = &object.Block{Params: bn.Strings, Body: bn.Left, Env: env}
	}

	if recvClass != "" {
		// A class or module is the receiver: Point.new, Greeter.greet.
		if node.Name == "new" {
			return e.instantiate(recvClass, args, blk, node.Token)
		}
		if m, owner, ok := e.lookup(id, recvClass, node.Name); ok {
			return e.invoke(m, owner, recv, args, blk, node.Token)
		}
		return e.err("eval/dispatch/method", node.Token, node.Name, recvClass)
	}

	if m, owner, ok := e.lookup(id, object.TrueType(recv), node.Name); ok {
		return e.invoke(m, owner, recv, args, blk, node.Token)
	}
	return e.err("eval/dispatch/method", node.Token, node.Name, object.TrueType(recv))
}

func (e *Evaluator) dispatch(id ast.NodeID, recv object.Object, name string, args []object.Object, blk *object.Block, tok token.Token) object.Object {
	if m, owner, ok := e.lookup(id, object.TrueType(recv), name); ok {
		return e.invoke(m, owner, recv, args, blk, tok)
	}
	return e.err("eval/dispatch/method", tok, name, object.TrueType(recv))
}

func (e *Evaluator) instantiate(class string, args []object.Object, blk *object.Block, tok token.Token) object.Object {
	inst := object.NewInstance(class)
	if m, owner, ok := e.reg.Resolve(class, "initialize"); ok {
		result := e.invoke(m, owner, inst, args, blk, tok)
		if result.Type() == object.ERROR_OBJ {
			return result
		}
	} else if len(args) > 0 {
		return e.err("eval/args", tok, "initialize", len(args), 0)
	}
	return inst
}

func (e *Evaluator) invoke(m *registry.Method, owner string, recv object.Object, args []object.Object, blk *object.Block, tok token.Token) object.Object {
	if m.Attr {
		return e.invokeAttr(m, recv, args, tok)
	}
	if m.Native != nil {
		return m.Native(&registry.Call{
			Receiver: recv,
			Args:     args,
			Block:    blk,
			Token:    tok,
			Out:      e.out,
			Yield:    e.Yield,
		})
	}
	if len(args) != len(m.Params) {
		return e.err("eval/args", tok, m.Name, len(args), len(m.Params))
	}
	frame := object.NewMethodFrame(nil, blk)
	frame.Set("self", recv)
	for i, param := range m.Params {
		frame.Set(param, args[i])
	}
	result := e.Eval(m.Body, frame)
	switch sig := result.(type) {
	case *object.ReturnValue:
		return sig.Value
	case *object.BreakSignal:
		return e.err("eval/flow/break", tok)
	case *object.NextSignal:
		return e.err("eval/flow/next", tok)
	}
	return result
}

func (e *Evaluator) invokeAttr(m *registry.Method, recv object.Object, args []object.Object, tok token.Token) object.Object {
	inst, ok := recv.(*object.Instance)
	if !ok {
		return e.err("eval/ivar/self", tok, strings.TrimSuffix(m.Name, "="))
	}
	if name, isSetter := strings.CutSuffix(m.Name, "="); isSetter {
		if len(args) != 1 {
			return e.err("eval/args", tok, m.Name, len(args), 1)
		}
		inst.IVars[name] = args[0]
		return args[0]
	}
	if len(args) != 0 {
		return e.err("eval/args", tok, m.Name, len(args), 0)
	}
	if value, ok := inst.IVars[m.Name]; ok {
		return value
	}
	return object.NIL
}

// Yield runs a block with the given arguments. Missing arguments bind to
// nil, extras are dropped. A 'next' inside the block ends this invocation
// with its value; a 'break' is passed through raw for the yielding
// construct to unwind.
func (e *Evaluator) Yield(blk *object.Block, args []object.Object) object.Object {
	frame := object.NewEnclosedEnvironment(blk.Env)
	for i, param := range blk.Params {
		if i < len(args) {
			frame.Set(param, args[i])
		} else {
			frame.Set(param, object.NIL)
		}
	}
	result := e.Eval(blk.Body, frame)
	if sig, ok := result.(*object.NextSignal); ok {
		return sig.Value
	}
	return result
}

func (e *Evaluator) evalYield(node *ast.Node, env *object.Environment) object.Object {
	blk := env.Block()
	if blk == nil {
		return e.err("eval/flow/yield", node.Token)
	}
	args := make([]object.Object, 0, len(node.Parts))
	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isUnwind(value) {
			return value
		}
		args = append(args, value)
	}
	result := e.Yield(blk, args)
	if sig, ok := result.(*object.BreakSignal); ok {
		// break in the block returns from the method that yielded.
		return &object.ReturnValue{Value: sig.Value}
	}
	return result
}

// --- CONTROL FLOW -----------------------------------------------------------

func (e *Evaluator) evalSequence(node *ast.Node, env *object.Environment) object.Object {
	var result object.Object = object.NIL
	for _, part := range node.Parts {
		result = e.Eval(part, env)
		if isUnwind(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIf(node *ast.Node, env *object.Environment) object.Object {
	cond := e.Eval(node.Left, env)
	if isUnwind(cond) {
		return cond
	}
	if object.Truthy(cond) {
		return e.Eval(node.Right, env)
	}
	return e.Eval(node.Parts[0], env)
}

func (e *Evaluator) evalWhile(node *ast.Node, env *object.Environment) object.Object {
	for {
		cond := e.Eval(node.Left, env)
		if isUnwind(cond) {
			return cond
		}
		test := object.Truthy(cond)
		if node.Flag {
			test = !test
		}
		if !test {
			return object.NIL
		}
		result := e.Eval(node.Right, env)
		switch sig := result.(type) {
		case *object.BreakSignal:
			return sig.Value
		case *object.NextSignal:
			continue
		}
		if isUnwind(result) {
			return result
		}
	}
}

func (e *Evaluator) evalFor(node *ast.Node, env *object.Environment) object.Object {
	collection := e.Eval(node.Left, env)
	if isUnwind(collection) {
		return collection
	}
	var elements []object.Object
	switch coll := collection.(type) {
	case *object.Array:
		elements = coll.Slice()
	case *object.Range:
		var ok bool
		elements, ok = object.RangeElements(coll)
		if !ok {
			return e.err("eval/range/bounds", node.Token)
		}
	case *object.Hash:
		for _, hk := range coll.Order {
			pair := coll.Pairs[hk]
			elements = append(elements, object.ArrayFromSlice([]object.Object{pair.Key, pair.Value}))
		}
	default:
		return e.err("eval/for/collection", node.Token, object.TrueType(collection))
	}
	// The loop variable shares the enclosing scope: it survives the loop,
	// as does whatever was assigned to it last.
	for _, el := range elements {
		env.Assign(node.Name, el)
		result := e.Eval(node.Right, env)
		switch sig := result.(type) {
		case *object.BreakSignal:
			return sig.Value
		case *object.NextSignal:
			continue
		}
		if isUnwind(result) {
			return result
		}
	}
	return collection
}

func (e *Evaluator) evalLoop(node *ast.Node, env *object.Environment) object.Object {
	for {
		result := e.Eval(node.Left, env)
		switch sig := result.(type) {
		case *object.BreakSignal:
			return sig.Value
		case *object.NextSignal:
			continue
		}
		if isUnwind(result) {
			return result
		}
	}
}

func (e *Evaluator) evalCase(node *ast.Node, env *object.Environment) object.Object {
	subject := e.Eval(node.Left, env)
	if isUnwind(subject) {
		return subject
	}
	for _, clauseID := range node.Parts {
		clause := e.arena.Get(clauseID)
		for _, candID := range clause.Parts {
			matched, err := e.whenMatches(candID, subject, env)
			if err != nil {
				return err
			}
			if matched {
				return e.Eval(clause.Left, env)
			}
		}
	}
	return e.Eval(node.Right, env)
}

// Case equality, approximately Ruby's ===: a range matches what it covers,
// a class name matches instances of the class and its descendants, and
// anything else matches by value equality.
func (e *Evaluator) whenMatches(candID ast.NodeID, subject object.Object, env *object.Environment) (bool, object.Object) {
	cand := e.arena.Get(candID)
	if cand.Kind == ast.IDENT && isConstName(cand.Name) && e.reg.Exists(cand.Name) && !env.Exists(cand.Name) {
		for _, ancestor := range e.reg.Ancestors(object.TrueType(subject)) {
			if ancestor == cand.Name {
				return true, nil
			}
		}
		return false, nil
	}
	value := e.Eval(candID, env)
	if isUnwind(value) {
		return false, value
	}
	if rng, ok := value.(*object.Range); ok {
		return object.RangeCovers(rng, subject), nil
	}
	return object.Equals(value, subject), nil
}

// --- DEFINITIONS ------------------------------------------------------------

func (e *Evaluator) defTarget() string {
	if e.class == "" {
		return "Object"
	}
	return e.class
}

func (e *Evaluator) evalMethodDef(node *ast.Node) object.Object {
	e.reg.Register(e.defTarget(), &registry.Method{
		Name:   node.Name,
		Params: node.Strings,
		Body:   node.Left,
	})
	return &object.Symbol{Value: node.Name}
}

func (e *Evaluator) evalAttrDecl(node *ast.Node, env *object.Environment) object.Object {
	target := e.defTarget()
	for _, part := range node.Parts {
		value := e.Eval(part, env)
		if isUnwind(value) {
			return value
		}
		var name string
		switch v := value.(type) {
		case *object.Symbol:
			name = v.Value
		case *object.String:
			name = v.Value
		default:
			return e.err("eval/arith/operand", node.Token, object.TrueType(value), "Symbol")
		}
		if node.Name != "attr_writer" {
			e.reg.Register(target, &registry.Method{Name: name, Attr: true})
		}
		if node.Name != "attr_reader" {
			e.reg.Register(target, &registry.Method{Name: name + "=", Params: []string{"value"}, Attr: true})
		}
	}
	return object.NIL
}

func (e *Evaluator) evalClassDef(node *ast.Node, env *object.Environment) object.Object {
	if node.Name2 != "" && !e.reg.Exists(node.Name2) {
		return e.err("eval/class/parent", node.Token, node.Name2)
	}
	e.reg.DefineClass(node.Name, node.Name2)
	saved := e.class
	e.class = node.Name
	result := e.Eval(node.Left, object.NewEnvironment())
	e.class = saved
	if result.Type() == object.ERROR_OBJ {
		return result
	}
	return object.NIL
}

func (e *Evaluator) evalModuleDef(node *ast.Node, env *object.Environment) object.Object {
	e.reg.DefineModule(node.Name)
	saved := e.class
	e.class = node.Name
	result := e.Eval(node.Left, object.NewEnvironment())
	e.class = saved
	if result.Type() == object.ERROR_OBJ {
		return result
	}
	return object.NIL
}

// --- PLUMBING ---------------------------------------------------------------

func isUnwind(o object.Object) bool {
	switch o.Type() {
	case object.ERROR_OBJ, object.BREAK_OBJ, object.NEXT_OBJ, object.RETURN_OBJ:
		return true
	}
	return false
}

func isConstName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func (e *Evaluator) err(errorId string, tok token.Token, args ...any) *object.Error {
	return object.CreateErr(errorId, tok, args...)
}
