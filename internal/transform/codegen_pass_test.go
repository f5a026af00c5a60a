package transform

import (
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func TestCodeGenEmitsMoveForConstantBind(t *testing.T) {
	prog := program.New()

	x := symbol.NewVariable(prog.Counter(), "X")
	x.SetOwner(0)

	setTop(prog, ast.NewBind(zero(), ast.NewVariable(zero(), x), ast.NewConstantInt(zero(), 42)))

	NewCodeGen(prog).Run()

	area := prog.TopLevel().CodeArea()
	if area == nil {
		t.Fatalf("expected a CodeArea to have been installed")
	}

	if len(area.Ops) != 1 || area.Ops[0].Code != "move" {
		t.Fatalf("expected a single move opcode, got %#v", area.Ops)
	}

	if area.KCount() != 1 {
		t.Errorf("expected the constant 42 to have been pooled, got %d entries", area.KCount())
	}
}

func TestCodeGenDedupesRepeatedConstant(t *testing.T) {
	prog := program.New()

	x := symbol.NewVariable(prog.Counter(), "X")
	x.SetOwner(0)

	y := symbol.NewVariable(prog.Counter(), "Y")
	y.SetOwner(0)

	body := ast.NewSequence(zero(),
		ast.NewBind(zero(), ast.NewVariable(zero(), x), ast.NewConstantInt(zero(), 7)),
		ast.NewBind(zero(), ast.NewVariable(zero(), y), ast.NewConstantInt(zero(), 7)),
	)

	setTop(prog, body)
	NewCodeGen(prog).Run()

	area := prog.TopLevel().CodeArea()
	if area.KCount() != 1 {
		t.Errorf("expected the repeated constant 7 to share one pool slot, got %d", area.KCount())
	}
}

func TestCodeGenIfBranchesBackpatchBothHoles(t *testing.T) {
	prog := program.New()

	cond := symbol.NewVariable(prog.Counter(), "B")
	cond.SetOwner(0)

	x := symbol.NewVariable(prog.Counter(), "X")
	x.SetOwner(0)

	ifStmt := ast.NewIf(zero(), ast.NewVariable(zero(), cond),
		ast.NewBind(zero(), ast.NewVariable(zero(), x), ast.NewConstantInt(zero(), 1)),
		ast.NewBind(zero(), ast.NewVariable(zero(), x), ast.NewConstantInt(zero(), 2)))

	setTop(prog, ifStmt)
	NewCodeGen(prog).Run()

	area := prog.TopLevel().CodeArea()

	var sawBranch, sawJump bool

	for _, op := range area.Ops {
		switch op.Code {
		case "branchUnless":
			sawBranch = true
			if op.Imm[0] <= 0 {
				t.Errorf("expected the branch hole to be filled with a positive forward offset, got %d", op.Imm[0])
			}
		case "jump":
			sawJump = true
			if op.Imm[0] <= 0 {
				t.Errorf("expected the jump hole to be filled with a positive forward offset, got %d", op.Imm[0])
			}
		}
	}

	if !sawBranch || !sawJump {
		t.Fatalf("expected both a branchUnless and a jump opcode, got %#v", area.Ops)
	}
}

func TestCodeGenComputesXCountFromCallArguments(t *testing.T) {
	prog := program.New()

	proc := symbol.NewVariable(prog.Counter(), "P")
	proc.SetOwner(0)

	a := symbol.NewVariable(prog.Counter(), "A")
	a.SetOwner(0)

	b := symbol.NewVariable(prog.Counter(), "B")
	b.SetOwner(0)

	setTop(prog, ast.NewCall(zero(), ast.NewVariable(zero(), proc), ast.NewVariable(zero(), a), ast.NewVariable(zero(), b)))
	NewCodeGen(prog).Run()

	area := prog.TopLevel().CodeArea()
	if area.ComputeXCount() != area.XCount() {
		t.Errorf("allocator's X high-water mark (%d) disagrees with a scan of emitted opcodes (%d)",
			area.XCount(), area.ComputeXCount())
	}

	if area.XCount() == 0 {
		t.Errorf("expected at least one X register to have been used to stage the call")
	}
}
