package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func findCreateAbstractions(owner symbol.AbstractionID, body ast.Statement) []ast.CreateAbstraction {
	var found []ast.CreateAbstraction

	w := &abstractionWalker{
		Expr: func(_ symbol.AbstractionID, e ast.Expression) ast.Expression {
			if c, ok := e.(ast.CreateAbstraction); ok {
				found = append(found, c)
			}

			return e
		},
	}

	w.walkStatement(owner, body)

	return found
}

func TestFlattenerCapturesOuterLocalAsSingleGlobal(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	show := symbol.NewBuiltin(prog.Counter(), "Show", "OzValues::show", []symbol.ParamKind{symbol.In}, false, 0)

	innerCall := ast.NewCall(zero(), ast.NewConstantBuiltin(zero(), show), ast.NewRawVariable(zero(), "X"))
	procVal := ast.NewRawProc(zero(), nil, innerCall)

	raw := ast.NewRawLocal(zero(), []string{"X", "P"}, ast.NewSequence(zero(),
		ast.NewBind(zero(), ast.NewRawVariable(zero(), "X"), ast.NewConstantInt(zero(), 1)),
		ast.NewBind(zero(), ast.NewRawVariable(zero(), "P"), procVal),
		ast.NewCall(zero(), ast.NewRawVariable(zero(), "P")),
	))

	errs := NewPipeline(prog, file).Run(raw)
	if errs != nil {
		t.Fatalf("unexpected pipeline errors: %v", errs)
	}

	created := findCreateAbstractions(prog.TopLevel().Id(), prog.TopLevel().Body())
	if len(created) != 1 {
		t.Fatalf("expected exactly one hoisted closure, found %d", len(created))
	}

	abs := prog.Abstraction(created[0].Abstraction)
	if len(abs.Globals()) != 1 {
		t.Fatalf("expected the nested proc to capture exactly one global (X), got %d", len(abs.Globals()))
	}

	if abs.Globals()[0].Name() != "X" {
		t.Errorf("expected the captured global to be X, got %s", abs.Globals()[0].Name())
	}

	if len(created[0].Captured) != 1 {
		t.Fatalf("expected CreateAbstraction to carry exactly one captured value, got %d", len(created[0].Captured))
	}

	if !abs.Globals()[0].IsGlobal() {
		t.Errorf("expected the captured variable to be marked global")
	}
}
