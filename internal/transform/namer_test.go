package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func zero() source.Span { return source.NewSpan(0, 0) }

func testFile(t *testing.T) *source.File {
	t.Helper()
	return source.NewFile("test.oz", nil)
}

func TestNamerResolvesLocalDeclaration(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	raw := ast.NewRawLocal(zero(), []string{"X"}, ast.NewBind(zero(), ast.NewRawVariable(zero(), "X"), ast.NewConstantInt(zero(), 1)))

	body := NewNamer(prog, file).Name(raw)

	local, ok := body.(ast.LocalStatement)
	if !ok {
		t.Fatalf("expected LocalStatement, got %T", body)
	}

	if len(local.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(local.Decls))
	}

	bind := local.Body.(ast.BindStatement)
	lhs := bind.Lhs.(ast.Variable)

	if lhs.Symbol != local.Decls[0] {
		t.Errorf("reference did not resolve to the declared symbol")
	}

	if prog.HasErrors() {
		t.Errorf("unexpected errors: %v", prog.Errors())
	}
}

func TestNamerReportsUnresolvedReference(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	raw := ast.NewCall(zero(), ast.NewRawVariable(zero(), "Undeclared"))
	NewNamer(prog, file).Name(raw)

	if !prog.HasErrors() {
		t.Fatalf("expected an unresolved-reference error")
	}
}

func TestNamerReportsDuplicateDeclaration(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	raw := ast.NewRawLocal(zero(), []string{"X", "X"}, ast.NewSkip(zero()))
	NewNamer(prog, file).Name(raw)

	if !prog.HasErrors() {
		t.Fatalf("expected a duplicate-declaration error")
	}
}

func TestNamerAssignsOwnerToEveryDeclaration(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	raw := ast.NewRawLocal(zero(), []string{"X", "Y"}, ast.NewSkip(zero()))
	body := NewNamer(prog, file).Name(raw)

	local := body.(ast.LocalStatement)
	for _, d := range local.Decls {
		if d.Owner() == symbol.NoAbstraction {
			t.Errorf("decl %s has no owner", d.Name())
		}
	}
}

func TestNamerAllocatesAbstractionForNestedProc(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	inner := ast.NewRawProc(zero(), []string{"Y"}, ast.NewSkip(zero()))
	outer := ast.NewRawLocal(zero(), []string{"P"},
		ast.NewBind(zero(), ast.NewRawVariable(zero(), "P"), inner))

	body := NewNamer(prog, file).Name(outer)

	local := body.(ast.LocalStatement)
	bind := local.Body.(ast.BindStatement)
	proc := bind.Rhs.(ast.ProcExpression)

	if proc.Formals[0].Owner() != proc.Abstraction {
		t.Errorf("formal's owner does not match the proc's own abstraction id")
	}

	if len(prog.Abstractions()) != 2 {
		t.Fatalf("expected top-level + nested abstraction, got %d", len(prog.Abstractions()))
	}
}
