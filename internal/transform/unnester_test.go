package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func TestUnnesterHoistsNestedRecordIntoCallArgument(t *testing.T) {
	prog := program.New()

	proc := symbol.NewVariable(prog.Counter(), "P")
	proc.SetOwner(0)

	nested := ast.NewRecord(zero(), ast.NewConstantAtom(zero(), "pair"), []ast.FieldValue{
		{Feature: ast.NewConstantInt(zero(), 1), Value: ast.NewConstantInt(zero(), 1)},
	})

	call := ast.NewCall(zero(), ast.NewVariable(zero(), proc), nested)
	setTop(prog, call)

	NewUnnester(prog).Run()

	local, ok := prog.TopLevel().Body().(ast.LocalStatement)
	if !ok {
		t.Fatalf("expected the hoisted record to introduce a LocalStatement, got %T", prog.TopLevel().Body())
	}

	if len(local.Decls) != 1 || !local.Decls[0].IsSynthetic() {
		t.Fatalf("expected exactly one synthetic local, got %#v", local.Decls)
	}

	seq := local.Body.(ast.SequenceStatement)
	if len(seq.Stmts) != 2 {
		t.Fatalf("expected a bind followed by the flattened call, got %d statements", len(seq.Stmts))
	}

	bind := seq.Stmts[0].(ast.BindStatement)
	if _, ok := bind.Rhs.(ast.RecordExpression); !ok {
		t.Errorf("expected the synthetic bind's value to be the hoisted record, got %T", bind.Rhs)
	}

	flatCall := seq.Stmts[1].(ast.CallStatement)
	if _, ok := flatCall.Args[0].(ast.Variable); !ok {
		t.Errorf("expected the call's argument to have been replaced by the synthetic variable, got %T", flatCall.Args[0])
	}
}

func TestUnnesterLeavesAlreadyFlatCallsUntouched(t *testing.T) {
	prog := program.New()

	proc := symbol.NewVariable(prog.Counter(), "P")
	proc.SetOwner(0)

	arg := symbol.NewVariable(prog.Counter(), "X")
	arg.SetOwner(0)

	call := ast.NewCall(zero(), ast.NewVariable(zero(), proc), ast.NewVariable(zero(), arg))
	setTop(prog, call)

	NewUnnester(prog).Run()

	if _, ok := prog.TopLevel().Body().(ast.CallStatement); !ok {
		t.Errorf("expected an already-flat call to pass through unchanged, got %T", prog.TopLevel().Body())
	}
}
