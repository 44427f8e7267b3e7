package initializer

import (
	"reflect"
	"testing"

	"github.com/edipofederle/sri-sub002/source/object"
	"github.com/edipofederle/sri-sub002/source/registry"
)

func TestBaseHierarchy(t *testing.T) {
	r := BaseRegistry()
	tests := []struct {
		class string
		want  []string
	}{
		{"Integer", []string{"Integer", "Numeric", "Object", "Kernel", "BasicObject"}},
		{"Float", []string{"Float", "Numeric", "Object", "Kernel", "BasicObject"}},
		{"Rational", []string{"Rational", "Numeric", "Object", "Kernel", "BasicObject"}},
		{"Complex", []string{"Complex", "Numeric", "Object", "Kernel", "BasicObject"}},
		{"String", []string{"String", "Object", "Kernel", "BasicObject"}},
		{"Array", []string{"Array", "Object", "Kernel", "BasicObject"}},
		{"NilClass", []string{"NilClass", "Object", "Kernel", "BasicObject"}},
	}
	for i, test := range tests {
		if got := r.Ancestors(test.class); !reflect.DeepEqual(got, test.want) {
			t.Fatalf("tests[%d] - ancestors wrong. expected=%v, got=%v", i, test.want, got)
		}
	}
}

func TestBaseMethodsResolve(t *testing.T) {
	r := BaseRegistry()
	tests := []struct {
		class, method, owner string
	}{
		{"Integer", "+", "Numeric"},
		{"Integer", "times", "Integer"},
		{"Integer", "==", "BasicObject"},
		{"Integer", "puts", "Kernel"},
		{"Float", "floor", "Float"},
		{"String", "upcase", "String"},
		{"Array", "map", "Array"},
		{"Hash", "keys", "Hash"},
		{"Range", "to_a", "Range"},
	}
	for i, test := range tests {
		_, owner, ok := r.Resolve(test.class, test.method)
		if !ok {
			t.Fatalf("tests[%d] - %s#%s should resolve", i, test.class, test.method)
		}
		if owner != test.owner {
			t.Fatalf("tests[%d] - %s#%s owner wrong. expected=%s, got=%s",
				i, test.class, test.method, test.owner, owner)
		}
	}
}

func TestBaseStartsAtGenerationZero(t *testing.T) {
	if g := BaseRegistry().Generation; g != 0 {
		t.Fatalf("seeding the base should not leave a nonzero generation, got %d", g)
	}
}

func TestForksDoNotTouchTheBase(t *testing.T) {
	fork := BaseRegistry().Fork()
	fork.RegisterNative("Integer", "halve", nil, func(c *registry.Call) object.Object {
		return object.NIL
	})
	if _, _, ok := BaseRegistry().Resolve("Integer", "halve"); ok {
		t.Fatalf("a method defined on a fork leaked into the shared base")
	}
	if fork.Generation == 0 {
		t.Fatalf("definitions on a fork should bump its generation")
	}
}
