package env

import (
	"testing"

	"github.com/cwbudde/mjc/internal/labels"
	"github.com/cwbudde/mjc/internal/types"
)

func TestNewRootEnvironmentSeedsIntrinsics(t *testing.T) {
	root := NewRootEnvironment(labels.NewCounter())

	tests := []struct {
		name       string
		returnType types.Type
		params     []types.Type
	}{
		{"printInt", types.VoidType, []types.Type{types.IntType}},
		{"printString", types.VoidType, []types.Type{types.StringType}},
		{"error", types.VoidType, nil},
		{"readInt", types.IntType, nil},
		{"readString", types.StringType, nil},
	}
	for _, tt := range tests {
		sig, ok := root.LookupFunc(tt.name)
		if !ok {
			t.Fatalf("intrinsic %q not registered", tt.name)
		}
		if !sig.ReturnType.Equal(tt.returnType) {
			t.Errorf("%s return type = %v, want %v", tt.name, sig.ReturnType, tt.returnType)
		}
		if len(sig.Params) != len(tt.params) {
			t.Errorf("%s params = %v, want %v", tt.name, sig.Params, tt.params)
		}
	}

	if _, ok := root.LookupFunc("top_printInt"); ok {
		t.Error("intrinsics must be registered without the top_ prefix")
	}
}

func TestCloneSharesFunctionsAndClassesButCopiesVars(t *testing.T) {
	root := NewRootEnvironment(labels.NewCounter())
	root.DeclareVar("x", &VarBinding{Type: types.IntType, Level: 0})

	child := root.Clone()
	child.DeclareVar("y", &VarBinding{Type: types.IntType, Level: 1})

	if _, ok := root.LookupVar("y"); ok {
		t.Error("declaring in a clone must not leak back to the parent scope")
	}
	if _, ok := child.LookupVar("x"); !ok {
		t.Error("a clone must still see the parent's existing bindings")
	}

	// Functions/Classes are the same underlying map, not a copy.
	root.Functions["helper"] = &FuncSignature{Name: "helper", ReturnType: types.VoidType}
	if _, ok := child.LookupFunc("helper"); !ok {
		t.Error("Functions must be shared by reference across clones")
	}
	root.Classes["Animal"] = &ClassInfo{Name: "Animal"}
	if _, ok := child.LookupClass("Animal"); !ok {
		t.Error("Classes must be shared by reference across clones")
	}
}

func TestEnterScopeBumpsLevel(t *testing.T) {
	root := NewRootEnvironment(labels.NewCounter())
	root.Level = 1
	child := root.EnterScope()
	if child.Level != 2 {
		t.Errorf("EnterScope() Level = %d, want 2", child.Level)
	}
}

func TestStringsPropagateOutwardThroughClones(t *testing.T) {
	root := NewRootEnvironment(labels.NewCounter())
	child := root.Clone()

	label := child.Strings.Intern("hello")
	if got := root.Strings.Intern("hello"); got != label {
		t.Errorf("interning the same literal from the parent scope got a different label: %q vs %q", got, label)
	}
}

func TestParentOf(t *testing.T) {
	root := NewRootEnvironment(labels.NewCounter())
	root.Classes["Animal"] = &ClassInfo{Name: "Animal"}
	root.Classes["Dog"] = &ClassInfo{Name: "Dog", ParentName: "Animal"}

	if parent, ok := root.ParentOf("Dog"); !ok || parent != "Animal" {
		t.Errorf("ParentOf(Dog) = (%q, %v), want (Animal, true)", parent, ok)
	}
	if _, ok := root.ParentOf("Animal"); ok {
		t.Error("ParentOf(Animal) should report no parent")
	}
	if _, ok := root.ParentOf("Bogus"); ok {
		t.Error("ParentOf on an undeclared class should report no parent")
	}
}

func TestStringTableInterningAndOrder(t *testing.T) {
	st := NewStringTable(labels.NewCounter())

	first := st.Intern("a")
	second := st.Intern("b")
	again := st.Intern("a")

	if again != first {
		t.Errorf("re-interning %q got a new label %q, want the original %q", "a", again, first)
	}
	if first == second {
		t.Error("distinct literals must get distinct labels")
	}

	entries := st.Entries()
	if len(entries) != 2 || entries[0].Value != "a" || entries[1].Value != "b" {
		t.Errorf("Entries() = %+v, want [a b] in first-occurrence order", entries)
	}
}
