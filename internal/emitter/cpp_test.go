// SPDX-License-Identifier: Apache-2.0
package emitter

import (
	"strings"
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/codegen"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func zero() source.Span { return source.NewSpan(0, 0) }

func noGlobals(*symbol.VariableSymbol) uint { return 0 }

func TestEmitAbstractionRendersOneFunctionPerCodeArea(t *testing.T) {
	prog := program.New()
	abs := prog.NewAbstraction(nil)

	alloc := codegen.NewAllocator(noGlobals)
	area := codegen.NewCodeArea(abs.Id(), alloc)

	x0 := alloc.NextX()
	kReg := alloc.RegisterForConstant(ast.ConstantInt{Value: 42})
	area.Emit(codegen.Opcode{Code: "move", Size: 3, Regs: []codegen.Register{x0, kReg}})

	abs.SetCodeArea(area)

	var w strings.Builder
	EmitAbstraction(&w, abs)

	out := w.String()

	wantFunc := "UnstableNode createCodeArea0(VM vm) {"
	if !strings.Contains(out, wantFunc) {
		t.Fatalf("expected function signature %q, got:\n%s", wantFunc, out)
	}

	if !strings.Contains(out, "OpMove, regX(0), regK(0),") {
		t.Errorf("expected a rendered move opcode, got:\n%s", out)
	}

	if !strings.Contains(out, "area.initConstant(0, trivialBuild(vm, SmallInt::build(vm, 42)));") {
		t.Errorf("expected the constant pool entry to be initialized, got:\n%s", out)
	}
}

func TestEmitAbstractionPanicsWithoutCodeGen(t *testing.T) {
	prog := program.New()
	abs := prog.NewAbstraction(nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an abstraction with no CodeArea")
		}
	}()

	var w strings.Builder
	EmitAbstraction(&w, abs)
}

func TestConstantInitializerArityTupleVsExplicit(t *testing.T) {
	var w strings.Builder

	tuple := ast.ConstantArity{Label: "tuple", Features: []ast.Feature{{IsInt: true, Int: 1}, {IsInt: true, Int: 2}}}
	constantInitializer(&w, "area", 0, tuple)

	if !strings.Contains(w.String(), `buildArity(vm, "tuple", 2)`) {
		t.Errorf("expected the tuple-shaped path, got: %s", w.String())
	}

	w.Reset()

	record := ast.ConstantArity{Label: "point", Features: []ast.Feature{{IsInt: false, Atom: "x"}, {IsInt: false, Atom: "y"}}}
	constantInitializer(&w, "area", 1, record)

	if !strings.Contains(w.String(), `buildArity(vm, "point", {OZ_newAtom(vm, "x"), OZ_newAtom(vm, "y")})`) {
		t.Errorf("expected the explicit-feature-list path, got: %s", w.String())
	}
}

func TestEmitModuleRegistersFunctorUnderURL(t *testing.T) {
	out := EmitModule(3, "Demo", "Demo.ozf")

	if !strings.Contains(out, "createCodeArea3(vm)") {
		t.Errorf("expected EmitModule to reference the functor's own abstraction id, got:\n%s", out)
	}

	if !strings.Contains(out, `BootMM::registerFunctor(vm, "Demo.ozf", functor);`) {
		t.Errorf("expected a registerFunctor call with the given URL, got:\n%s", out)
	}
}

func TestEmitLinkerSequencesBaseEnvModulesAndTwoRuns(t *testing.T) {
	out := EmitLinker([]string{"A", "B"}, "A.ozf")

	wantOrder := []string{
		"createBaseEnv(vm);",
		"createFunctor_A(vm);",
		"createFunctor_B(vm);",
		"vm->run();",
		"createRunThread(vm);",
	}

	last := -1

	for _, want := range wantOrder {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("expected linker output to contain %q, got:\n%s", want, out)
		}

		if idx < last {
			t.Fatalf("expected %q to appear after the previous step, got:\n%s", want, out)
		}

		last = idx
	}

	if strings.Count(out, "vm->run();") != 2 {
		t.Errorf("expected exactly two vm->run() calls per the generated C++ contract, got:\n%s", out)
	}
}
