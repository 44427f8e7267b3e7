package object

// A frame of lexical scope: a mapping from names to values plus a link to
// the enclosing frame. A fresh frame is pushed for every method invocation;
// a block invocation chains its frame to the block's captured defining
// frame, which is what makes blocks closures.
type Environment struct {
	Store map[string]Object
	Ext   *Environment

	// The implicit block binding of a method activation, retrieved by
	// 'yield'. Nil when the method was called without a block.
	block *Block
	// Marks a method activation frame, so that the block lookup doesn't
	// leak across call boundaries into the caller.
	methodFrame bool
}

func NewEnvironment() *Environment {
	return &Environment{Store: make(map[string]Object)}
}

func NewEnclosedEnvironment(ext *Environment) *Environment {
	env := NewEnvironment()
	env.Ext = ext
	return env
}

// The frame for a method activation. The supplied block, if any, becomes
// the frame's implicit block binding.
func NewMethodFrame(ext *Environment, blk *Block) *Environment {
	env := NewEnclosedEnvironment(ext)
	env.block = blk
	env.methodFrame = true
	return env
}

func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.Store[name]
	if ok || e.Ext == nil {
		return obj, ok
	}
	return e.Ext.Get(name)
}

func (e *Environment) Exists(name string) bool {
	_, ok := e.Get(name)
	return ok
}

func (e *Environment) Set(name string, val Object) Object {
	e.Store[name] = val
	return val
}

// Assigns to the nearest frame that already binds the name, creating the
// binding locally when none does.
func (e *Environment) Assign(name string, val Object) Object {
	for scope := e; scope != nil; scope = scope.Ext {
		if _, ok := scope.Store[name]; ok {
			scope.Store[name] = val
			return val
		}
		if scope.methodFrame {
			break
		}
	}
	e.Store[name] = val
	return val
}

// The block of the nearest enclosing method activation. A block's frame
// chains to its captured environment, which lies inside the defining
// method's activation, so yield inside a block finds that method's block.
func (e *Environment) Block() *Block {
	for scope := e; scope != nil; scope = scope.Ext {
		if scope.methodFrame {
			return scope.block
		}
	}
	return nil
}
