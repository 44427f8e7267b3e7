package initializer

import (
	"strings"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/registry"
)

// yieldEach runs a block over each element, handling the unwind signals
// the way Ruby does: break stops iteration and becomes the value of the
// whole call, next has already been absorbed at the yield boundary.
// The second return is non-nil when iteration was cut short.
func yieldEach(c *registry.Call, elements []object.Object) (object.Object, object.Object) {
	for _, el := range elements {
		result := c.Yield(c.Block, []object.Object{el})
		if bs, ok := result.(*object.BreakSignal); ok {
			return nil, bs.Value
		}
		if yieldUnwound(result) {
			return nil, result
		}
	}
	return nil, nil
}

// yieldUnwound reports whether a yield result must cut the iteration
// short and pass through the native call untouched: an error, or a
// 'return' that is unwinding the method the block came from.
func yieldUnwound(result object.Object) bool {
	if result == nil {
		return false
	}
	switch result.Type() {
	case object.ERROR_OBJ, object.RETURN_OBJ:
		return true
	}
	return false
}

func requireBlock(c *registry.Call) *object.Error {
	if c.Block == nil {
		return makeErr(c, "eval/flow/yield")
	}
	return nil
}

func addArrayMethods(r *registry.Registry) {
	arr := func(c *registry.Call) *object.Array {
		return c.Receiver.(*object.Array)
	}

	push := func(c *registry.Call) object.Object {
		a := arr(c)
		vec := a.Elements
		for _, el := range c.Args {
			vec = vec.Conj(el)
		}
		a.Elements = vec
		return a
	}
	r.RegisterNative("Array", "push", []string{"obj"}, push)
	r.RegisterNative("Array", "<<", []string{"obj"}, push)

	r.RegisterNative("Array", "pop", nil, func(c *registry.Call) object.Object {
		a := arr(c)
		n := a.Len()
		if n == 0 {
			return object.NIL
		}
		last := a.At(n - 1)
		a.Elements = a.Elements.SubVector(0, n-1)
		return last
	})
	r.RegisterNative("Array", "first", nil, func(c *registry.Call) object.Object {
		return arr(c).At(0)
	})
	r.RegisterNative("Array", "last", nil, func(c *registry.Call) object.Object {
		return arr(c).At(arr(c).Len() - 1)
	})
	length := func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(arr(c).Len())}
	}
	r.RegisterNative("Array", "length", nil, length)
	r.RegisterNative("Array", "size", nil, length)
	r.RegisterNative("Array", "empty?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(arr(c).Len() == 0)
	})
	r.RegisterNative("Array", "include?", []string{"obj"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "include?", len(c.Args), 1)
		}
		for _, el := range arr(c).Slice() {
			if object.Equals(el, c.Args[0]) {
				return object.TRUE
			}
		}
		return object.FALSE
	})
	r.RegisterNative("Array", "reverse", nil, func(c *registry.Call) object.Object {
		elements := arr(c).Slice()
		out := make([]object.Object, len(elements))
		for i, el := range elements {
			out[len(elements)-1-i] = el
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("Array", "join", nil, func(c *registry.Call) object.Object {
		sep := ""
		if len(c.Args) == 1 {
			s, ok := c.Args[0].(*object.String)
			if !ok {
				return makeErr(c, "eval/arith/operand", object.TrueType(c.Args[0]), "String")
			}
			sep = s.Value
		}
		parts := make([]string, 0, arr(c).Len())
		for _, el := range arr(c).Slice() {
			parts = append(parts, el.Inspect(object.ViewStdOut))
		}
		return &object.String{Value: strings.Join(parts, sep)}
	})
	r.RegisterNative("Array", "sum", nil, func(c *registry.Call) object.Object {
		var acc object.Object = &object.Integer{Value: 0}
		for _, el := range arr(c).Slice() {
			acc = numericArith(c, "+", acc, el)
			if acc.Type() == object.ERROR_OBJ {
				return acc
			}
		}
		return acc
	})
	r.RegisterNative("Array", "min", nil, func(c *registry.Call) object.Object {
		return arrayExtremum(c, arr(c).Slice(), "<")
	})
	r.RegisterNative("Array", "max", nil, func(c *registry.Call) object.Object {
		return arrayExtremum(c, arr(c).Slice(), ">")
	})
	r.RegisterNative("Array", "each", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		if _, stop := yieldEach(c, arr(c).Slice()); stop != nil {
			return stop
		}
		return c.Receiver
	})
	r.RegisterNative("Array", "each_with_index", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		for i, el := range arr(c).Slice() {
			result := c.Yield(c.Block, []object.Object{el, &object.Integer{Value: int64(i)}})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
		}
		return c.Receiver
	})
	r.RegisterNative("Array", "map", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		out := make([]object.Object, 0, arr(c).Len())
		for _, el := range arr(c).Slice() {
			result := c.Yield(c.Block, []object.Object{el})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
			out = append(out, result)
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("Array", "select", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		var out []object.Object
		for _, el := range arr(c).Slice() {
			result := c.Yield(c.Block, []object.Object{el})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
			if object.Truthy(result) {
				out = append(out, el)
			}
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("Array", "reject", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		var out []object.Object
		for _, el := range arr(c).Slice() {
			result := c.Yield(c.Block, []object.Object{el})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
			if !object.Truthy(result) {
				out = append(out, el)
			}
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("Array", "[]", []string{"index"}, func(c *registry.Call) object.Object {
		a := arr(c)
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "[]", len(c.Args), 1)
		}
		switch idx := c.Args[0].(type) {
		case *object.Integer:
			i := normalizeIndex(idx.Value, a.Len())
			if i < 0 || i >= a.Len() {
				return object.NIL
			}
			return a.At(i)
		case *object.Range:
			lo, hi, ok := rangeBounds(idx, a.Len())
			if !ok {
				return object.NIL
			}
			out := make([]object.Object, 0, hi-lo)
			for i := lo; i < hi; i++ {
				out = append(out, a.At(i))
			}
			return object.ArrayFromSlice(out)
		}
		return makeErr(c, "eval/array/index", object.TrueType(c.Args[0]))
	})
	r.RegisterNative("Array", "[]=", []string{"index", "value"}, func(c *registry.Call) object.Object {
		a := arr(c)
		if len(c.Args) != 2 {
			return makeErr(c, "eval/args", "[]=", len(c.Args), 2)
		}
		idx, ok := c.Args[0].(*object.Integer)
		if !ok {
			return makeErr(c, "eval/array/index", object.TrueType(c.Args[0]))
		}
		i := normalizeIndex(idx.Value, a.Len())
		if i < 0 {
			return makeErr(c, "eval/array/index", idx.Inspect(object.ViewRubyLiteral))
		}
		vec := a.Elements
		for vec.Len() <= i {
			vec = vec.Conj(object.NIL)
		}
		a.Elements = vec.Assoc(i, c.Args[1])
		return c.Args[1]
	})
}

func arrayExtremum(c *registry.Call, elements []object.Object, op string) object.Object {
	if len(elements) == 0 {
		return object.NIL
	}
	best := elements[0]
	for _, el := range elements[1:] {
		cmp := numericCompare(c, op, el, best)
		if cmp.Type() == object.ERROR_OBJ {
			return cmp
		}
		if cmp == object.TRUE {
			best = el
		}
	}
	return best
}

func addHashMethods(r *registry.Registry) {
	hsh := func(c *registry.Call) *object.Hash {
		return c.Receiver.(*object.Hash)
	}
	hashKey := func(c *registry.Call, o object.Object) (object.Hashable, *object.Error) {
		k, ok := o.(object.Hashable)
		if !ok {
			return nil, makeErr(c, "eval/hash/key", object.TrueType(o))
		}
		return k, nil
	}

	r.RegisterNative("Hash", "[]", []string{"key"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "[]", len(c.Args), 1)
		}
		k, err := hashKey(c, c.Args[0])
		if err != nil {
			return err
		}
		v, _ := hsh(c).Get(k)
		return v
	})
	r.RegisterNative("Hash", "[]=", []string{"key", "value"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 2 {
			return makeErr(c, "eval/args", "[]=", len(c.Args), 2)
		}
		k, err := hashKey(c, c.Args[0])
		if err != nil {
			return err
		}
		hsh(c).Set(k, c.Args[1])
		return c.Args[1]
	})
	r.RegisterNative("Hash", "keys", nil, func(c *registry.Call) object.Object {
		h := hsh(c)
		out := make([]object.Object, 0, len(h.Order))
		for _, hk := range h.Order {
			out = append(out, h.Pairs[hk].Key)
		}
		return object.ArrayFromSlice(out)
	})
	r.RegisterNative("Hash", "values", nil, func(c *registry.Call) object.Object {
		h := hsh(c)
		out := make([]object.Object, 0, len(h.Order))
		for _, hk := range h.Order {
			out = append(out, h.Pairs[hk].Value)
		}
		return object.ArrayFromSlice(out)
	})
	hlength := func(c *registry.Call) object.Object {
		return &object.Integer{Value: int64(len(hsh(c).Order))}
	}
	r.RegisterNative("Hash", "length", nil, hlength)
	r.RegisterNative("Hash", "size", nil, hlength)
	r.RegisterNative("Hash", "empty?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(len(hsh(c).Order) == 0)
	})
	hasKey := func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "key?", len(c.Args), 1)
		}
		k, err := hashKey(c, c.Args[0])
		if err != nil {
			return err
		}
		_, ok := hsh(c).Get(k)
		return object.MakeBool(ok)
	}
	r.RegisterNative("Hash", "key?", []string{"key"}, hasKey)
	r.RegisterNative("Hash", "has_key?", []string{"key"}, hasKey)
	r.RegisterNative("Hash", "include?", []string{"key"}, hasKey)
	r.RegisterNative("Hash", "delete", []string{"key"}, func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "delete", len(c.Args), 1)
		}
		k, err := hashKey(c, c.Args[0])
		if err != nil {
			return err
		}
		h := hsh(c)
		hk := k.HashKey()
		pair, ok := h.Pairs[hk]
		if !ok {
			return object.NIL
		}
		delete(h.Pairs, hk)
		for i, o := range h.Order {
			if o == hk {
				h.Order = append(h.Order[:i], h.Order[i+1:]...)
				break
			}
		}
		return pair.Value
	})
	r.RegisterNative("Hash", "each", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		h := hsh(c)
		for _, hk := range h.Order {
			pair := h.Pairs[hk]
			result := c.Yield(c.Block, []object.Object{pair.Key, pair.Value})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
		}
		return c.Receiver
	})
}

func addRangeMethods(r *registry.Registry) {
	rng := func(c *registry.Call) *object.Range {
		return c.Receiver.(*object.Range)
	}
	elements := func(c *registry.Call) ([]object.Object, *object.Error) {
		out, ok := object.RangeElements(rng(c))
		if !ok {
			return nil, makeErr(c, "eval/range/bounds", rng(c).Inspect(object.ViewRubyLiteral))
		}
		return out, nil
	}

	r.RegisterNative("Range", "to_a", nil, func(c *registry.Call) object.Object {
		els, err := elements(c)
		if err != nil {
			return err
		}
		return object.ArrayFromSlice(els)
	})
	r.RegisterNative("Range", "first", nil, func(c *registry.Call) object.Object {
		return rng(c).Start
	})
	r.RegisterNative("Range", "last", nil, func(c *registry.Call) object.Object {
		return rng(c).End
	})
	sizeFn := func(c *registry.Call) object.Object {
		els, err := elements(c)
		if err != nil {
			return err
		}
		return &object.Integer{Value: int64(len(els))}
	}
	r.RegisterNative("Range", "size", nil, sizeFn)
	r.RegisterNative("Range", "count", nil, sizeFn)
	includeFn := func(c *registry.Call) object.Object {
		if len(c.Args) != 1 {
			return makeErr(c, "eval/args", "include?", len(c.Args), 1)
		}
		return object.MakeBool(object.RangeCovers(rng(c), c.Args[0]))
	}
	r.RegisterNative("Range", "include?", []string{"obj"}, includeFn)
	r.RegisterNative("Range", "member?", []string{"obj"}, includeFn)
	r.RegisterNative("Range", "min", nil, func(c *registry.Call) object.Object {
		els, err := elements(c)
		if err != nil {
			return err
		}
		if len(els) == 0 {
			return object.NIL
		}
		return els[0]
	})
	r.RegisterNative("Range", "max", nil, func(c *registry.Call) object.Object {
		els, err := elements(c)
		if err != nil {
			return err
		}
		if len(els) == 0 {
			return object.NIL
		}
		return els[len(els)-1]
	})
	r.RegisterNative("Range", "sum", nil, func(c *registry.Call) object.Object {
		els, err := elements(c)
		if err != nil {
			return err
		}
		var acc object.Object = &object.Integer{Value: 0}
		for _, el := range els {
			acc = numericArith(c, "+", acc, el)
			if acc.Type() == object.ERROR_OBJ {
				return acc
			}
		}
		return acc
	})
	r.RegisterNative("Range", "each", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		els, rerr := elements(c)
		if rerr != nil {
			return rerr
		}
		if _, stop := yieldEach(c, els); stop != nil {
			return stop
		}
		return c.Receiver
	})
	r.RegisterNative("Range", "map", nil, func(c *registry.Call) object.Object {
		if err := requireBlock(c); err != nil {
			return err
		}
		els, rerr := elements(c)
		if rerr != nil {
			return rerr
		}
		out := make([]object.Object, 0, len(els))
		for _, el := range els {
			result := c.Yield(c.Block, []object.Object{el})
			if bs, ok := result.(*object.BreakSignal); ok {
				return bs.Value
			}
			if yieldUnwound(result) {
				return result
			}
			out = append(out, result)
		}
		return object.ArrayFromSlice(out)
	})
}
