package layout

import (
	"errors"
	"testing"

	"github.com/cwbudde/mjc/internal/ast"
	"github.com/cwbudde/mjc/internal/env"
)

func typeName(name string) *ast.TypeName { return &ast.TypeName{Name: name} }

func method(name, ret string, params ...string) *ast.FunctionDecl {
	fn := &ast.FunctionDecl{Name: name, ReturnType: typeName(ret), Body: &ast.Block{}}
	for _, p := range params {
		fn.Params = append(fn.Params, &ast.Parameter{Name: p, Type: typeName("int")})
	}
	return fn
}

func TestBuildFlattensFieldsAndVTable(t *testing.T) {
	animal := &ast.ClassDefinition{
		Name: "Animal",
		Fields: []*ast.Field{
			{Name: "age", Type: typeName("int")},
		},
		Methods: []*ast.FunctionDecl{
			method("speak", "void"),
			method("age_years", "int"),
		},
	}
	dog := &ast.ClassDefinition{
		Name:       "Dog",
		ParentName: "Animal",
		Fields: []*ast.Field{
			{Name: "breed", Type: typeName("string")},
		},
		Methods: []*ast.FunctionDecl{
			method("speak", "void"), // overrides Animal.speak
			method("fetch", "void"),
		},
	}

	classes := map[string]*env.ClassInfo{}

	animalInfo, err := Build(animal, classes)
	if err != nil {
		t.Fatalf("Build(Animal) error = %v", err)
	}
	classes["Animal"] = animalInfo

	dogInfo, err := Build(dog, classes)
	if err != nil {
		t.Fatalf("Build(Dog) error = %v", err)
	}
	classes["Dog"] = dogInfo

	if animalInfo.Size != 16 { // 8 header + 8 age
		t.Errorf("Animal.Size = %d, want 16", animalInfo.Size)
	}
	if dogInfo.Size != 24 { // 8 header + 8 age + 8 breed
		t.Errorf("Dog.Size = %d, want 24", dogInfo.Size)
	}

	if len(dogInfo.Fields) != 2 {
		t.Fatalf("Dog should have 2 flattened fields, got %d", len(dogInfo.Fields))
	}
	if dogInfo.Fields[0].Name != "age" || dogInfo.Fields[0].Offset != 8 {
		t.Errorf("inherited field age should be at offset 8, got %+v", dogInfo.Fields[0])
	}
	if dogInfo.Fields[1].Name != "breed" || dogInfo.Fields[1].Offset != 16 {
		t.Errorf("own field breed should be at offset 16, got %+v", dogInfo.Fields[1])
	}

	// speak must override in place (same slot as Animal's), fetch is new.
	if len(dogInfo.VTable) != 3 {
		t.Fatalf("Dog vtable should have 3 slots (age_years, speak, fetch), got %d", len(dogInfo.VTable))
	}
	// Animal's layer is sorted by name, so age_years is slot 0 and speak slot 1.
	speakSlot := dogInfo.VTable[1]
	if speakSlot.Method != "speak" || speakSlot.DefiningClass != "Dog" || speakSlot.Label != "cls_Dog_speak" {
		t.Errorf("speak should be overridden in place by Dog, got %+v", speakSlot)
	}
	if dogInfo.VTable[0].Method != "age_years" || dogInfo.VTable[0].DefiningClass != "Animal" {
		t.Errorf("age_years should remain inherited from Animal, got %+v", dogInfo.VTable[0])
	}
	if dogInfo.VTable[2].Method != "fetch" {
		t.Errorf("fetch should be appended as a new slot, got %+v", dogInfo.VTable[2])
	}
}

func TestBuildRejectsDuplicateInheritedField(t *testing.T) {
	base := &ast.ClassDefinition{
		Name:   "Base",
		Fields: []*ast.Field{{Name: "x", Type: typeName("int")}},
	}
	classes := map[string]*env.ClassInfo{}
	baseInfo, err := Build(base, classes)
	if err != nil {
		t.Fatalf("Build(Base) error = %v", err)
	}
	classes["Base"] = baseInfo

	derived := &ast.ClassDefinition{
		Name:       "Derived",
		ParentName: "Base",
		Fields:     []*ast.Field{{Name: "x", Type: typeName("int")}},
	}
	_, err = Build(derived, classes)
	if err == nil {
		t.Fatal("expected an error for redeclaring an inherited field")
	}
	var dupErr *DuplicateFieldError
	if !errors.As(err, &dupErr) {
		t.Errorf("expected a *DuplicateFieldError, got %T: %v", err, err)
	}
}

func TestBuildRejectsOverrideSignatureMismatch(t *testing.T) {
	base := &ast.ClassDefinition{
		Name:    "Base",
		Methods: []*ast.FunctionDecl{method("speak", "void")},
	}
	classes := map[string]*env.ClassInfo{}
	baseInfo, err := Build(base, classes)
	if err != nil {
		t.Fatalf("Build(Base) error = %v", err)
	}
	classes["Base"] = baseInfo

	derived := &ast.ClassDefinition{
		Name:       "Derived",
		ParentName: "Base",
		Methods:    []*ast.FunctionDecl{method("speak", "int")},
	}
	_, err = Build(derived, classes)
	if err == nil {
		t.Fatal("expected an error for a signature-mismatched override")
	}
	var mismatchErr *OverrideMismatchError
	if !errors.As(err, &mismatchErr) {
		t.Errorf("expected an *OverrideMismatchError, got %T: %v", err, err)
	}
}

func TestProcessingOrderRootFirst(t *testing.T) {
	a := &ast.ClassDefinition{Name: "A"}
	b := &ast.ClassDefinition{Name: "B", ParentName: "A"}
	c := &ast.ClassDefinition{Name: "C", ParentName: "B"}

	order, err := ProcessingOrder([]*ast.ClassDefinition{c, b, a})
	if err != nil {
		t.Fatalf("ProcessingOrder error = %v", err)
	}
	if len(order) != 3 || order[0].Name != "A" || order[1].Name != "B" || order[2].Name != "C" {
		names := make([]string, len(order))
		for i, c := range order {
			names[i] = c.Name
		}
		t.Errorf("order = %v, want [A B C]", names)
	}
}

func TestProcessingOrderDetectsCycle(t *testing.T) {
	a := &ast.ClassDefinition{Name: "A", ParentName: "B"}
	b := &ast.ClassDefinition{Name: "B", ParentName: "A"}

	_, err := ProcessingOrder([]*ast.ClassDefinition{a, b})
	if err == nil {
		t.Fatal("expected an inheritance-cycle error")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Errorf("expected a *CycleError, got %T: %v", err, err)
	}
}

func TestProcessingOrderDetectsUndeclaredParent(t *testing.T) {
	a := &ast.ClassDefinition{Name: "A", ParentName: "Missing"}
	_, err := ProcessingOrder([]*ast.ClassDefinition{a})
	if err == nil {
		t.Fatal("expected an error for an undeclared parent class")
	}
	var undefinedErr *UndefinedParentError
	if !errors.As(err, &undefinedErr) {
		t.Errorf("expected an *UndefinedParentError, got %T: %v", err, err)
	}
}
