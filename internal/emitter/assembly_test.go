// SPDX-License-Identifier: Apache-2.0
package emitter

import (
	"strings"
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func makeBaseFunctor(prog *program.Program, name, feature string) ast.FunctorExpression {
	owner := prog.NewAbstraction(nil)

	local := symbol.NewVariable(prog.Counter(), "Local")
	local.SetOwner(owner.Id())

	define := ast.NewLocal(zero(), []*symbol.VariableSymbol{local},
		ast.NewBind(zero(), ast.NewVariable(zero(), local), ast.NewConstantInt(zero(), 1)))

	exports := []ast.ExportSpec{{Feature: ast.Feature{IsInt: false, Atom: feature}, Variable: local}}

	return ast.NewFunctor(zero(), owner.Id(), name, nil, nil, nil, define, exports)
}

func TestMergeBaseFunctorsConcatenatesExportsInOrder(t *testing.T) {
	prog := program.New()

	fnA := makeBaseFunctor(prog, "A", "a")
	fnB := makeBaseFunctor(prog, "B", "b")

	merged := emitMergeAndCheck(t, prog, fnA, fnB)

	if len(merged.Exports) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(merged.Exports))
	}

	if merged.Exports[0].Feature.Atom != "a" || merged.Exports[1].Feature.Atom != "b" {
		t.Fatalf("expected exports in operand order [a, b], got [%s, %s]",
			merged.Exports[0].Feature.Atom, merged.Exports[1].Feature.Atom)
	}
}

func TestMergeBaseFunctorsReownsLocalsUnderTargetAbstraction(t *testing.T) {
	prog := program.New()

	fnA := makeBaseFunctor(prog, "A", "a")
	fnB := makeBaseFunctor(prog, "B", "b")

	merged := emitMergeAndCheck(t, prog, fnA, fnB)

	for _, exp := range merged.Exports {
		if exp.Variable.Owner() != merged.Abstraction {
			t.Errorf("expected export variable %q to be owned by the merged abstraction %d, got %d",
				exp.Variable.Name(), merged.Abstraction, exp.Variable.Owner())
		}
	}

	if merged.Exports[0].Variable == fnA.Exports[0].Variable {
		t.Error("expected the merged functor's export variable to be a freshly minted symbol, not the operand's original")
	}
}

func TestMergeBaseFunctorsSequencesDefinesInOperandOrder(t *testing.T) {
	prog := program.New()

	fnA := makeBaseFunctor(prog, "A", "a")
	fnB := makeBaseFunctor(prog, "B", "b")

	merged := emitMergeAndCheck(t, prog, fnA, fnB)

	seq, ok := merged.Define.(ast.SequenceStatement)
	if !ok {
		t.Fatalf("expected merged.Define to be a sequence, got %T", merged.Define)
	}

	if len(seq.Stmts) != 2 {
		t.Fatalf("expected 2 sequenced define bodies, got %d", len(seq.Stmts))
	}

	firstLocal, ok := seq.Stmts[0].(ast.LocalStatement)
	if !ok {
		t.Fatalf("expected the first sequenced statement to be a local, got %T", seq.Stmts[0])
	}

	if firstLocal.Decls[0] != merged.Exports[0].Variable {
		t.Error("expected the first operand's reowned local to be the same symbol referenced by its reowned export")
	}
}

func emitMergeAndCheck(t *testing.T, prog *program.Program, functors ...ast.FunctorExpression) ast.FunctorExpression {
	t.Helper()

	merged := MergeBaseFunctors(prog, functors)

	if merged.Name != functors[0].Name {
		t.Errorf("expected merged functor to take the first operand's name %q, got %q", functors[0].Name, merged.Name)
	}

	return merged
}

func TestEmitBaseEnvBuildsImportRecordFromRequire(t *testing.T) {
	prog := program.New()
	owner := prog.NewAbstraction(nil)

	osVar := symbol.NewVariable(prog.Counter(), "OS")
	osVar.SetOwner(owner.Id())

	fn := ast.NewFunctor(zero(), owner.Id(), "Base",
		[]ast.ImportSpec{{Variable: osVar, URL: "x-oz://boot/OS", Feature: ast.Feature{IsInt: false, Atom: "OS"}}},
		nil, nil, ast.NewSequence(zero()), nil)

	out := EmitBaseEnv(fn, map[string]string{"OS": "x-oz://boot/OS"})

	if !strings.Contains(out, `BootMM::lookup(vm, "x-oz://boot/OS")`) {
		t.Errorf("expected a BootMM::lookup call for the require entry, got:\n%s", out)
	}

	if !strings.Contains(out, `BootMM::registerModule(vm, "x-oz://boot/OS", "OS");`) {
		t.Errorf("expected a registerModule call for the boot module, got:\n%s", out)
	}
}
