package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func TestDesugarFunctorLowersToSingleFormalFun(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	req := ast.ImportSpec{Variable: symbol.NewVariable(prog.Counter(), "OS"), URL: "x-oz://boot/OS",
		Feature: ast.Feature{IsInt: false, Atom: "OS"}}

	define := ast.NewCall(zero(), ast.NewRawVariable(zero(), "OS"), ast.NewRawVariable(zero(), "Result"))

	raw := ast.NewFunctor(zero(), symbol.NoAbstraction, "Demo",
		[]ast.ImportSpec{req}, nil, nil,
		ast.NewRawLocal(zero(), []string{"Result"}, define),
		nil)

	outer := ast.NewRawLocal(zero(), []string{"F"}, ast.NewBind(zero(), ast.NewRawVariable(zero(), "F"), raw))

	named := NewNamer(prog, file).Name(outer)
	top := prog.TopLevel()
	top.SetBody(named)

	if prog.HasErrors() {
		t.Fatalf("unexpected namer errors: %v", prog.Errors())
	}

	DesugarFunctor(prog)

	local := top.Body().(ast.LocalStatement)
	bind := local.Body.(ast.BindStatement)
	fn, ok := bind.Rhs.(ast.FunExpression)
	if !ok {
		t.Fatalf("expected FunctorExpression to lower into FunExpression, got %T", bind.Rhs)
	}

	if len(fn.Formals) != 1 {
		t.Fatalf("expected the lowered functor to take exactly one import-record formal, got %d", len(fn.Formals))
	}

	if fn.Result.Owner() != fn.Abstraction {
		t.Errorf("export formal's owner should be the functor's own abstraction")
	}
}
