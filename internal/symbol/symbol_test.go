// SPDX-License-Identifier: Apache-2.0
package symbol

import "testing"

func TestDistinctIds(t *testing.T) {
	counter := NewCounter()
	x := NewVariable(counter, "X")
	y := NewVariable(counter, "X")
	//
	if x.Id() == y.Id() {
		t.Errorf("two distinct variables sharing a name received the same id")
	}
}

func TestSyntheticNaming(t *testing.T) {
	counter := NewCounter()
	a := NewSynthetic(counter, "x")
	b := NewSynthetic(counter, "x")
	//
	if a.Name() == b.Name() {
		t.Errorf("two synthetic variables received the same name: %s", a.Name())
	}

	if !a.IsSynthetic() || !b.IsSynthetic() {
		t.Errorf("synthetic variable not marked synthetic")
	}
}

func TestOwnerSetOnce(t *testing.T) {
	counter := NewCounter()
	x := NewVariable(counter, "X")
	//
	if x.Owner() != NoAbstraction {
		t.Errorf("fresh variable should have no owner")
	}

	x.SetOwner(AbstractionID(3))

	if x.Owner() != AbstractionID(3) {
		t.Errorf("owner not recorded")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on re-assigning owner")
		}
	}()

	x.SetOwner(AbstractionID(4))
}

func TestNoSymbolIsNotDefined(t *testing.T) {
	if NoSymbol.IsDefined() {
		t.Errorf("NoSymbol should report IsDefined() == false")
	}
}

func TestBuiltinArity(t *testing.T) {
	counter := NewCounter()
	b := NewBuiltin(counter, "Show", "OzValues::Boot::show", []ParamKind{In}, false, 0)
	//
	if b.Arity() != 1 {
		t.Errorf("expected arity 1, got %d", b.Arity())
	}

	if !b.IsDefined() {
		t.Errorf("builtin symbol should be defined")
	}
}
