package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
)

func TestPipelineCompilesEndToEndWithoutErrors(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	raw := ast.NewRawLocal(zero(), []string{"X"},
		ast.NewBind(zero(), ast.NewRawVariable(zero(), "X"), ast.NewConstantInt(zero(), 1)))

	errs := NewPipeline(prog, file).Run(raw)
	if errs != nil {
		t.Fatalf("unexpected pipeline errors: %v", errs)
	}

	area := prog.TopLevel().CodeArea()
	if area == nil {
		t.Fatalf("expected CodeGen to have installed a CodeArea on the top-level abstraction")
	}

	if len(area.Ops) == 0 {
		t.Errorf("expected at least one opcode to have been emitted")
	}
}

func TestPipelineAbortsBeforeCodeGenOnUnresolvedReference(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	raw := ast.NewCall(zero(), ast.NewRawVariable(zero(), "Undeclared"))

	errs := NewPipeline(prog, file).Run(raw)
	if errs == nil {
		t.Fatalf("expected the unresolved reference to be reported")
	}

	if prog.TopLevel().CodeArea() != nil {
		t.Errorf("expected the pipeline to abort before CodeGen ran")
	}
}
