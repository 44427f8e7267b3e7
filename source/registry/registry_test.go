package registry

import (
	"reflect"
	"testing"

	"github.com/edipofederle/sri-sub002/source/ast"
	"github.com/edipofederle/sri-sub002/source/object"
)

func TestAncestors(t *testing.T) {
	r := New()
	r.DefineClass("BasicObject", "")
	r.DefineClass("Object", "BasicObject")
	r.DefineClass("Numeric", "Object")
	r.DefineClass("Integer", "Numeric")

	tests := []struct {
		class string
		want  []string
	}{
		{"Integer", []string{"Integer", "Numeric", "Object", "BasicObject"}},
		{"Numeric", []string{"Numeric", "Object", "BasicObject"}},
		{"BasicObject", []string{"BasicObject"}},
		{"NoSuchClass", []string{"NoSuchClass"}},
	}
	for i, test := range tests {
		got := r.Ancestors(test.class)
		if !reflect.DeepEqual(got, test.want) {
			t.Fatalf("tests[%d] - ancestors wrong. expected=%v, got=%v", i, test.want, got)
		}
	}
}

func TestResolveWalksTheChain(t *testing.T) {
	r := New()
	r.DefineClass("Object", "")
	r.DefineClass("Animal", "Object")
	r.DefineClass("Dog", "Animal")
	r.RegisterNative("Animal", "speak", []string{}, func(c *Call) object.Object {
		return object.NIL
	})
	r.RegisterNative("Dog", "fetch", []string{}, func(c *Call) object.Object {
		return object.NIL
	})

	if _, owner, ok := r.Resolve("Dog", "speak"); !ok || owner != "Animal" {
		t.Fatalf("speak should resolve on Animal, got owner=%q ok=%v", owner, ok)
	}
	if _, owner, ok := r.Resolve("Dog", "fetch"); !ok || owner != "Dog" {
		t.Fatalf("fetch should resolve on Dog, got owner=%q ok=%v", owner, ok)
	}
	if _, _, ok := r.Resolve("Animal", "fetch"); ok {
		t.Fatalf("fetch should not be visible from Animal")
	}
	if _, _, ok := r.Resolve("Dog", "quack"); ok {
		t.Fatalf("quack should not resolve at all")
	}
}

func TestOverrideShadowsParent(t *testing.T) {
	r := New()
	r.DefineClass("Object", "")
	r.DefineClass("Animal", "Object")
	r.DefineClass("Dog", "Animal")
	r.Register("Animal", &Method{Name: "speak", Body: ast.NodeID(1)})
	r.Register("Dog", &Method{Name: "speak", Body: ast.NodeID(2)})

	m, owner, ok := r.Resolve("Dog", "speak")
	if !ok || owner != "Dog" || m.Body != ast.NodeID(2) {
		t.Fatalf("override not found first: owner=%q body=%v", owner, m.Body)
	}
	m, owner, _ = r.Resolve("Animal", "speak")
	if owner != "Animal" || m.Body != ast.NodeID(1) {
		t.Fatalf("parent method clobbered: owner=%q body=%v", owner, m.Body)
	}
}

func TestGenerationBumpsOnDefinition(t *testing.T) {
	r := New()
	g0 := r.Generation
	r.DefineClass("Object", "")
	if r.Generation == g0 {
		t.Fatalf("DefineClass should bump the generation")
	}
	g1 := r.Generation
	r.RegisterNative("Object", "foo", []string{}, func(c *Call) object.Object {
		return object.NIL
	})
	if r.Generation == g1 {
		t.Fatalf("Register should bump the generation")
	}
	g2 := r.Generation
	r.RegisterNative("Object", "foo", []string{}, func(c *Call) object.Object {
		return object.TRUE
	})
	if r.Generation == g2 {
		t.Fatalf("redefinition should bump the generation")
	}
	g3 := r.Generation
	r.DefineModule("Greeting")
	if r.Generation == g3 {
		t.Fatalf("DefineModule should bump the generation")
	}
}

func TestReopeningMergesMethods(t *testing.T) {
	r := New()
	r.DefineClass("Object", "")
	r.DefineClass("Dog", "Object")
	r.Register("Dog", &Method{Name: "bark", Body: ast.NodeID(1)})
	r.DefineClass("Dog", "")
	r.Register("Dog", &Method{Name: "sit", Body: ast.NodeID(2)})

	if _, _, ok := r.Resolve("Dog", "bark"); !ok {
		t.Fatalf("re-opening Dog lost method bark")
	}
	if _, _, ok := r.Resolve("Dog", "sit"); !ok {
		t.Fatalf("method added on re-opened class not found")
	}
	if cd, _ := r.Get("Dog"); cd.Parent != "Object" {
		t.Fatalf("re-opening without a parent clause should keep the parent, got %q", cd.Parent)
	}
}

func TestForkIsolation(t *testing.T) {
	base := New()
	base.DefineClass("Object", "")
	base.Register("Object", &Method{Name: "base_method", Body: ast.NodeID(1)})

	fork := base.Fork()
	fork.DefineClass("Widget", "Object")
	fork.Register("Widget", &Method{Name: "spin", Body: ast.NodeID(2)})
	fork.Register("Object", &Method{Name: "extra", Body: ast.NodeID(3)})

	if _, _, ok := fork.Resolve("Widget", "base_method"); !ok {
		t.Fatalf("fork should inherit the base's methods")
	}
	if base.Exists("Widget") {
		t.Fatalf("class defined in a fork leaked into the base")
	}
	if _, _, ok := base.Resolve("Object", "extra"); ok {
		t.Fatalf("method registered in a fork leaked into the base")
	}
}

func TestClassVariablesShareDownTheChain(t *testing.T) {
	r := New()
	r.DefineClass("Object", "")
	r.DefineClass("Counter", "Object")
	r.DefineClass("FastCounter", "Counter")

	r.SetClassVar("Counter", "count", &object.Integer{Value: 1})
	if v, ok := r.GetClassVar("FastCounter", "count"); !ok || v.(*object.Integer).Value != 1 {
		t.Fatalf("subclass should see the ancestor's class variable")
	}

	// Assignment through the subclass updates the ancestor's slot.
	r.SetClassVar("FastCounter", "count", &object.Integer{Value: 2})
	if v, _ := r.GetClassVar("Counter", "count"); v.(*object.Integer).Value != 2 {
		t.Fatalf("assignment through a subclass should reach the owning ancestor")
	}

	// A variable never set above lands on the class itself.
	r.SetClassVar("FastCounter", "own", object.TRUE)
	if _, ok := r.GetClassVar("Counter", "own"); ok {
		t.Fatalf("variable first set on a subclass should not be visible above it")
	}
}
