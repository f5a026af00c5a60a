package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func setTop(prog *program.Program, body ast.Statement) {
	top := prog.NewAbstraction(nil)
	top.SetBody(body)
	prog.SetTopLevel(top.Id(), body)
}

func TestDesugarLowersFunToProcBindingResult(t *testing.T) {
	prog := program.New()

	result := symbol.NewFormal(prog.Counter(), "R")
	fn := ast.NewFun(zero(), symbol.AbstractionID(7), nil, result, ast.NewSkip(zero()))

	x := symbol.NewVariable(prog.Counter(), "X")
	x.SetOwner(0)

	setTop(prog, ast.NewBind(zero(), ast.NewVariable(zero(), x), fn))

	Desugar(prog)

	bind := prog.TopLevel().Body().(ast.BindStatement)
	proc, ok := bind.Rhs.(ast.ProcExpression)
	if !ok {
		t.Fatalf("expected FunExpression to lower into ProcExpression, got %T", bind.Rhs)
	}

	if len(proc.Formals) != 1 || proc.Formals[0] != result {
		t.Errorf("expected the fun's Result to become its trailing formal")
	}
}

func TestDesugarLowersTupleToRecordWithOrdinalFeatures(t *testing.T) {
	prog := program.New()

	tup := ast.NewTuple(zero(), ast.NewConstantAtom(zero(), "point"),
		[]ast.Expression{ast.NewConstantInt(zero(), 1), ast.NewConstantInt(zero(), 2)})

	y := symbol.NewVariable(prog.Counter(), "Y")
	y.SetOwner(0)

	setTop(prog, ast.NewBind(zero(), ast.NewVariable(zero(), y), tup))

	Desugar(prog)

	bind := prog.TopLevel().Body().(ast.BindStatement)
	rec, ok := bind.Rhs.(ast.RecordExpression)
	if !ok {
		t.Fatalf("expected TupleExpression to lower into RecordExpression, got %T", bind.Rhs)
	}

	if len(rec.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(rec.Fields))
	}

	f0 := rec.Fields[0].Feature.(ast.ConstantInt)
	f1 := rec.Fields[1].Feature.(ast.ConstantInt)

	if f0.Value != 1 || f1.Value != 2 {
		t.Errorf("expected ordinal features 1, 2; got %d, %d", f0.Value, f1.Value)
	}
}
