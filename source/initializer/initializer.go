// Package initializer builds the registry of built-in classes and methods.
// It runs once: the resulting base table is immutable, and every
// evaluation run forks its own mutable copy from it, so isolated runs can
// proceed concurrently without sharing state.
package initializer

import (
	"sync"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/registry"
)

var (
	base     *registry.Registry
	baseOnce sync.Once
)

// BaseRegistry returns the shared immutable table of built-ins. Callers
// must Fork it before defining anything; the base itself is never written
// to after construction.
func BaseRegistry() *registry.Registry {
	baseOnce.Do(func() {
		base = buildBase()
	})
	return base
}

func buildBase() *registry.Registry {
	r := registry.New()

	// The fixed hierarchy. Everything bottoms out in
	// Object → Kernel → BasicObject.
	r.DefineClass("BasicObject", "")
	r.DefineClass("Kernel", "BasicObject")
	r.DefineClass("Object", "Kernel")
	r.DefineClass("Numeric", "Object")
	r.DefineClass("Integer", "Numeric")
	r.DefineClass("Float", "Numeric")
	r.DefineClass("Rational", "Numeric")
	r.DefineClass("Complex", "Numeric")
	r.DefineClass("String", "Object")
	r.DefineClass("Symbol", "Object")
	r.DefineClass("TrueClass", "Object")
	r.DefineClass("FalseClass", "Object")
	r.DefineClass("NilClass", "Object")
	r.DefineClass("Array", "Object")
	r.DefineClass("Hash", "Object")
	r.DefineClass("Range", "Object")
	r.DefineClass("Proc", "Object")

	addObjectMethods(r)
	addKernelMethods(r)
	addNumericMethods(r)
	addStringMethods(r)
	addArrayMethods(r)
	addHashMethods(r)
	addRangeMethods(r)

	// Seeding the table shouldn't look like user redefinition to the
	// inline caches.
	r.Generation = 0
	return r
}

func makeErr(c *registry.Call, errorId string, args ...any) *object.Error {
	return object.CreateErr(errorId, c.Token, args...)
}

func noMethod(c *registry.Call, name string) *object.Error {
	return makeErr(c, "eval/dispatch/method", name, object.TrueType(c.Receiver))
}

func addObjectMethods(r *registry.Registry) {
	r.RegisterNative("BasicObject", "==", []string{"other"}, func(c *registry.Call) object.Object {
		return object.MakeBool(object.Equals(c.Receiver, c.Args[0]))
	})
	r.RegisterNative("BasicObject", "!=", []string{"other"}, func(c *registry.Call) object.Object {
		return object.MakeInverseBool(object.Equals(c.Receiver, c.Args[0]))
	})
	r.RegisterNative("BasicObject", "equal?", []string{"other"}, func(c *registry.Call) object.Object {
		return object.MakeBool(c.Receiver == c.Args[0])
	})
	r.RegisterNative("Object", "class", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: object.TrueType(c.Receiver)}
	})
	r.RegisterNative("Object", "nil?", nil, func(c *registry.Call) object.Object {
		return object.MakeBool(c.Receiver == object.NIL)
	})
	r.RegisterNative("Object", "inspect", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: c.Receiver.Inspect(object.ViewRubyLiteral)}
	})
	r.RegisterNative("Object", "to_s", nil, func(c *registry.Call) object.Object {
		return &object.String{Value: c.Receiver.Inspect(object.ViewStdOut)}
	})
}

func addKernelMethods(r *registry.Registry) {
	r.RegisterNative("Kernel", "puts", nil, func(c *registry.Call) object.Object {
		if len(c.Args) == 0 {
			c.Out.Write([]byte("\n"))
		}
		for _, arg := range c.Args {
			putsOne(c, arg)
		}
		return object.NIL
	})
	r.RegisterNative("Kernel", "print", nil, func(c *registry.Call) object.Object {
		for _, arg := range c.Args {
			c.Out.Write([]byte(arg.Inspect(object.ViewStdOut)))
		}
		return object.NIL
	})
	r.RegisterNative("Kernel", "p", nil, func(c *registry.Call) object.Object {
		for _, arg := range c.Args {
			c.Out.Write([]byte(arg.Inspect(object.ViewRubyLiteral) + "\n"))
		}
		if len(c.Args) == 1 {
			return c.Args[0]
		}
		return object.NIL
	})
}

// puts prints arrays one element per line, everything else on its own line.
func putsOne(c *registry.Call, arg object.Object) {
	if arr, ok := arg.(*object.Array); ok {
		for _, el := range arr.Slice() {
			putsOne(c, el)
		}
		if arr.Len() == 0 {
			c.Out.Write([]byte("\n"))
		}
		return
	}
	c.Out.Write([]byte(arg.Inspect(object.ViewStdOut) + "\n"))
}
