// SPDX-License-Identifier: Apache-2.0
package inspect

import (
	"strings"
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/codegen"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func noGlobals(*symbol.VariableSymbol) uint { return 0 }

func TestHeaderReportsNotYetCodeGeneratedWithoutCodeArea(t *testing.T) {
	prog := program.New()
	abs := prog.NewAbstraction(nil)

	if !strings.Contains(Header(abs), "not yet code-generated") {
		t.Errorf("expected a not-yet-code-generated message, got %q", Header(abs))
	}
}

func TestHeaderReportsRegisterCounts(t *testing.T) {
	prog := program.New()
	abs := prog.NewAbstraction(nil)

	alloc := codegen.NewAllocator(noGlobals)
	area := codegen.NewCodeArea(abs.Id(), alloc)

	x0 := alloc.NextX()
	kReg := alloc.RegisterForConstant(ast.ConstantInt{Value: 7})
	area.Emit(codegen.Opcode{Code: "move", Size: 3, Regs: []codegen.Register{x0, kReg}})

	abs.SetCodeArea(area)

	header := Header(abs)

	if !strings.Contains(header, "X=1") {
		t.Errorf("expected the header to report X=1, got %q", header)
	}

	if !strings.Contains(header, "K=1") {
		t.Errorf("expected the header to report K=1, got %q", header)
	}

	if !strings.Contains(header, "1 opcodes") {
		t.Errorf("expected the header to report one opcode, got %q", header)
	}
}

func TestDisassembleEmptyCodeAreaReturnsEmptyTable(t *testing.T) {
	prog := program.New()
	abs := prog.NewAbstraction(nil)

	table := Disassemble(abs)

	if table.Height() != 0 {
		t.Fatalf("expected an abstraction with no code area to disassemble to 0 rows, got %d", table.Height())
	}
}

func TestDisassembleRendersOneRowPerOpcodeWithOperands(t *testing.T) {
	prog := program.New()
	abs := prog.NewAbstraction(nil)

	alloc := codegen.NewAllocator(noGlobals)
	area := codegen.NewCodeArea(abs.Id(), alloc)

	x0 := alloc.NextX()
	x1 := alloc.NextX()
	area.Emit(codegen.Opcode{Code: "move", Size: 3, Regs: []codegen.Register{x0, x1}})
	area.Emit(codegen.Opcode{Code: "jump", Size: 5, Imm: []int32{12}})

	abs.SetCodeArea(area)

	rows := Disassemble(abs).Render(false)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rendered rows, got %d", len(rows))
	}

	if !strings.Contains(rows[0], "move") || !strings.Contains(rows[0], "X0 X1") {
		t.Errorf("expected the first row to show the move opcode and its register operands, got %q", rows[0])
	}

	if !strings.Contains(rows[1], "jump") || !strings.Contains(rows[1], "#12") {
		t.Errorf("expected the second row to show the jump opcode and its immediate operand, got %q", rows[1])
	}
}
