// Package registry holds the table of classes and methods that the
// evaluator dispatches through: a mapping from class name to descriptor,
// where each descriptor carries its parent and its own method table.
// Resolution walks the ancestor chain most-derived first. The table for
// the built-in classes is constructed once and then forked per evaluation
// run, so concurrent runs share nothing mutable.
package registry

import (
	"io"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/token"
)

// A native method implementation. The evaluator supplies the call context;
// natives that iterate call c.Yield to run the attached block.
type NativeFn func(c *Call) object.Object

type Call struct {
	Receiver object.Object
	Args     []object.Object
	Block    *object.Block
	Token    token.Token
	Out      io.Writer
	Yield    func(blk *object.Block, args []object.Object) object.Object
}

// A method is either native or interpreted: exactly one of Native and
// Body is meaningful.
type Method struct {
	Name   string
	Params []string
	Body   ast.NodeID
	Native NativeFn
	// Generated by attr_accessor and friends rather than written out.
	Attr bool
}

type ClassDescriptor struct {
	Name      string
	Parent    string // "" for BasicObject and for modules
	Methods   map[string]*Method
	ClassVars map[string]object.Object
	Module    bool
}

func NewClassDescriptor(name, parent string) *ClassDescriptor {
	return &ClassDescriptor{
		Name:      name,
		Parent:    parent,
		Methods:   make(map[string]*Method),
		ClassVars: make(map[string]object.Object),
	}
}

type Registry struct {
	classes map[string]*ClassDescriptor

	// Bumped on every definition or redefinition. Inline caches stamp
	// themselves with the generation they were filled under and treat a
	// mismatch as a cold cache, so redefinition can never serve stale
	// implementations.
	Generation uint64
}

func New() *Registry {
	return &Registry{classes: make(map[string]*ClassDescriptor)}
}

// A shallow-enough copy for isolation: descriptors and method tables are
// duplicated, method implementations (immutable) are shared.
func (r *Registry) Fork() *Registry {
	result := New()
	for name, cd := range r.classes {
		copied := NewClassDescriptor(cd.Name, cd.Parent)
		copied.Module = cd.Module
		for mName, m := range cd.Methods {
			copied.Methods[mName] = m
		}
		for vName, v := range cd.ClassVars {
			copied.ClassVars[vName] = v
		}
		result.classes[name] = copied
	}
	return result
}

func (r *Registry) Exists(class string) bool {
	_, ok := r.classes[class]
	return ok
}

func (r *Registry) Get(class string) (*ClassDescriptor, bool) {
	cd, ok := r.classes[class]
	return cd, ok
}

// Defines a class, or re-opens it: defining the same name twice merges
// methods into the existing table rather than replacing it.
func (r *Registry) DefineClass(name, parent string) *ClassDescriptor {
	if cd, ok := r.classes[name]; ok {
		if parent != "" {
			cd.Parent = parent
		}
		r.Generation++
		return cd
	}
	if parent == "" && name != "BasicObject" {
		parent = "Object"
	}
	cd := NewClassDescriptor(name, parent)
	r.classes[name] = cd
	r.Generation++
	return cd
}

func (r *Registry) DefineModule(name string) *ClassDescriptor {
	if cd, ok := r.classes[name]; ok && cd.Module {
		r.Generation++
		return cd
	}
	cd := NewClassDescriptor(name, "")
	cd.Module = true
	r.classes[name] = cd
	r.Generation++
	return cd
}

func (r *Registry) Register(class string, m *Method) {
	cd, ok := r.classes[class]
	if !ok {
		cd = r.DefineClass(class, "")
	}
	cd.Methods[m.Name] = m
	r.Generation++
}

func (r *Registry) RegisterNative(class, method string, params []string, fn NativeFn) {
	r.Register(class, &Method{Name: method, Params: params, Body: ast.None, Native: fn})
}

// The method resolution order of a class: the class itself, then each
// parent in turn. Built-in classes bottom out in the fixed chain
// Object → Kernel → BasicObject.
func (r *Registry) Ancestors(class string) []string {
	result := []string{}
	seen := map[string]bool{}
	for class != "" && !seen[class] {
		seen[class] = true
		result = append(result, class)
		cd, ok := r.classes[class]
		if !ok {
			break
		}
		class = cd.Parent
	}
	return result
}

// Walks the ancestor chain and returns the first implementation found,
// together with the name of the class that owns it.
func (r *Registry) Resolve(class, method string) (*Method, string, bool) {
	for _, ancestor := range r.Ancestors(class) {
		if cd, ok := r.classes[ancestor]; ok {
			if m, ok := cd.Methods[method]; ok {
				return m, ancestor, true
			}
		}
	}
	return nil, "", false
}

// Class-variable lookup per Ruby semantics: a subclass reading @@x sees
// the nearest ancestor that has set it, unless it has shadowed it.
func (r *Registry) GetClassVar(class, name string) (object.Object, bool) {
	for _, ancestor := range r.Ancestors(class) {
		if cd, ok := r.classes[ancestor]; ok {
			if v, ok := cd.ClassVars[name]; ok {
				return v, true
			}
		}
	}
	return object.NIL, false
}

func (r *Registry) SetClassVar(class, name string, val object.Object) {
	// Assignment goes to the ancestor that already holds the variable,
	// so that subclasses share rather than shadow by default.
	for _, ancestor := range r.Ancestors(class) {
		if cd, ok := r.classes[ancestor]; ok {
			if _, ok := cd.ClassVars[name]; ok {
				cd.ClassVars[name] = val
				return
			}
		}
	}
	if cd, ok := r.classes[class]; ok {
		cd.ClassVars[name] = val
	}
}
