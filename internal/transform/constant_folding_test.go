package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func TestConstantFoldingSortsKnownFeaturesAscending(t *testing.T) {
	prog := program.New()

	target := symbol.NewVariable(prog.Counter(), "R")
	target.SetOwner(0)

	rec := ast.NewRecord(zero(), ast.NewConstantAtom(zero(), "point"), []ast.FieldValue{
		{Feature: ast.NewConstantAtom(zero(), "y"), Value: ast.NewConstantInt(zero(), 2)},
		{Feature: ast.NewConstantInt(zero(), 1), Value: ast.NewConstantInt(zero(), 1)},
		{Feature: ast.NewConstantAtom(zero(), "x"), Value: ast.NewConstantInt(zero(), 3)},
	})

	setTop(prog, ast.NewBind(zero(), ast.NewVariable(zero(), target), rec))

	NewConstantFolding(prog).Run()

	bind := prog.TopLevel().Body().(ast.BindStatement)
	folded := bind.Rhs.(ast.RecordExpression)

	if len(folded.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(folded.Fields))
	}

	first := folded.Fields[0].Feature.(ast.ConstantInt)
	second := folded.Fields[1].Feature.(ast.ConstantAtom)
	third := folded.Fields[2].Feature.(ast.ConstantAtom)

	if first.Value != 1 {
		t.Errorf("expected the integer feature first, got %v", first)
	}

	if second.Value != "x" || third.Value != "y" {
		t.Errorf("expected atom features in lexical order x, y; got %s, %s", second.Value, third.Value)
	}
}

func TestConstantFoldingLeavesUnknownFeaturesAlone(t *testing.T) {
	prog := program.New()

	target := symbol.NewVariable(prog.Counter(), "R")
	target.SetOwner(0)

	feat := symbol.NewVariable(prog.Counter(), "F")
	feat.SetOwner(0)

	rec := ast.NewRecord(zero(), ast.NewConstantAtom(zero(), "point"), []ast.FieldValue{
		{Feature: ast.NewVariable(zero(), feat), Value: ast.NewConstantInt(zero(), 1)},
	})

	setTop(prog, ast.NewBind(zero(), ast.NewVariable(zero(), target), rec))

	NewConstantFolding(prog).Run()

	bind := prog.TopLevel().Body().(ast.BindStatement)
	folded := bind.Rhs.(ast.RecordExpression)

	if _, ok := folded.Fields[0].Feature.(ast.Variable); !ok {
		t.Errorf("expected the dynamic feature to be left untouched, got %T", folded.Fields[0].Feature)
	}
}
