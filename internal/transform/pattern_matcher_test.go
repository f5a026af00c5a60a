package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func TestPatternMatcherCompilesLiteralArmIntoGuardedIf(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	scrutinee := symbol.NewVariable(prog.Counter(), "N")
	scrutinee.SetOwner(0)

	c := ast.NewCase(zero(), ast.NewVariable(zero(), scrutinee),
		[]ast.CaseArm{
			{Pattern: ast.NewLiteralPattern(zero(), ast.NewConstantInt(zero(), 0)), Body: ast.NewSkip(zero())},
		},
		nil)

	setTop(prog, c)

	NewPatternMatcher(prog, file).Run()

	if prog.HasErrors() {
		t.Fatalf("unexpected errors: %v", prog.Errors())
	}

	local, ok := prog.TopLevel().Body().(ast.LocalStatement)
	if !ok {
		t.Fatalf("expected the compiled case to wrap its equality test in a LocalStatement, got %T", prog.TopLevel().Body())
	}

	seq, ok := local.Body.(ast.SequenceStatement)
	if !ok || len(seq.Stmts) != 2 {
		t.Fatalf("expected a two-statement sequence (test call, branch), got %#v", local.Body)
	}

	if _, ok := seq.Stmts[0].(ast.CallStatement); !ok {
		t.Errorf("expected the first statement to be the equality-test call, got %T", seq.Stmts[0])
	}

	if _, ok := seq.Stmts[1].(ast.IfStatement); !ok {
		t.Errorf("expected the second statement to branch on the test result, got %T", seq.Stmts[1])
	}
}

func TestPatternMatcherFallsThroughToDefaultOnNoArms(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	scrutinee := symbol.NewVariable(prog.Counter(), "N")
	scrutinee.SetOwner(0)

	deflt := ast.NewSkip(zero())
	c := ast.NewCase(zero(), ast.NewVariable(zero(), scrutinee), nil, deflt)

	setTop(prog, c)
	NewPatternMatcher(prog, file).Run()

	if prog.TopLevel().Body() != deflt {
		t.Errorf("expected an arm-less case to reduce to its Default statement unchanged")
	}
}

func TestPatternMatcherRejectsMatchExpression(t *testing.T) {
	prog := program.New()
	file := testFile(t)

	scrutinee := symbol.NewVariable(prog.Counter(), "N")
	scrutinee.SetOwner(0)

	m := ast.NewMatchExpression(zero(), ast.NewVariable(zero(), scrutinee), nil, ast.NewConstantInt(zero(), 1))
	setTop(prog, ast.NewCall(zero(), ast.NewConstantBuiltin(zero(), nil), m))

	NewPatternMatcher(prog, file).Run()

	if !prog.HasErrors() {
		t.Fatalf("expected a MatchExpression to be reported as unsupported")
	}
}
