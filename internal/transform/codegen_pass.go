// Copyright Mozart2 Bootcompiler Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package transform

import (
	"fmt"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/codegen"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// CodeGen is the final pass of the pipeline: it walks each abstraction's
// flattened, A-normal-form body and emits opcodes into a codegen.CodeArea
// (spec.md section 4.3).  By the time it runs, every abstraction in
// prog.Abstractions() already carries its final Formals/Body (installed by
// Flattener), so CodeGen can process the arena in any order - each
// abstraction's code area is independent of every other's, aside from a
// ConstantCodeArea/CreateAbstraction reference naming a sibling by id
// rather than embedding it.
type CodeGen struct {
	prog *program.Program
}

// NewCodeGen constructs a CodeGen pass over prog.
func NewCodeGen(prog *program.Program) *CodeGen {
	return &CodeGen{prog: prog}
}

// Run emits a CodeArea for every abstraction in the program's arena,
// including the top-level abstraction.
func (cg *CodeGen) Run() {
	for _, abs := range cg.prog.Abstractions() {
		cg.emitAbstraction(abs)
	}
}

func (cg *CodeGen) emitAbstraction(abs *program.Abstraction) {
	alloc := codegen.NewAllocator(abs.GlobalIndex)
	area := codegen.NewCodeArea(abs.Id(), alloc)

	for _, f := range abs.Formals() {
		alloc.RegisterForLocal(f)
	}

	cg.statement(area, alloc, abs.Id(), abs.Body())

	abs.SetCodeArea(area)
}

// statement emits opcodes for s into area, assuming owner is the
// abstraction s belongs to.  X-registers are scratch for the duration of a
// single top-level operation; ResetX is called before each one so that two
// sibling statements in a sequence never fight over the same X index.
func (cg *CodeGen) statement(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, s ast.Statement) {
	switch n := s.(type) {
	case ast.SequenceStatement:
		for _, c := range n.Stmts {
			cg.statement(area, alloc, owner, c)
		}

	case ast.LocalStatement:
		for _, d := range n.Decls {
			alloc.RegisterForLocal(d)
		}

		cg.statement(area, alloc, owner, n.Body)

	case ast.BindStatement:
		alloc.ResetX()
		cg.emitBind(area, alloc, owner, n)

	case ast.CallStatement:
		alloc.ResetX()
		cg.emitCall(area, alloc, owner, n)

	case ast.IfStatement:
		alloc.ResetX()
		cg.emitIf(area, alloc, owner, n)

	case ast.RecordStatement:
		alloc.ResetX()
		cg.emitRecordStatement(area, alloc, owner, n)

	case ast.SkipStatement:
		// Nothing to emit.

	case ast.ThreadStatement:
		area.Emit(codegen.Opcode{Code: "threadBegin", Size: 4})
		cg.statement(area, alloc, owner, n.Body)
		area.Emit(codegen.Opcode{Code: "threadEnd", Size: 4})

	case ast.TryStatement:
		cg.emitTry(area, alloc, owner, n)

	case ast.RaiseStatement:
		alloc.ResetX()

		reg := cg.loadValue(area, alloc, owner, n.Value)
		area.Emit(codegen.Opcode{Code: "raise", Size: 8, Regs: []codegen.Register{reg}})

	case ast.FunctorApplyStatement:
		alloc.ResetX()
		cg.emitFunctorApply(area, alloc, owner, n)

	case ast.CaseStatement:
		panic("internal error: CaseStatement reached CodeGen; PatternMatcher should have eliminated it")

	default:
		panic(fmt.Sprintf("internal error: unhandled statement variant %T reached CodeGen", s))
	}
}

// loadValue resolves e - a Variable or Constant, the only shapes the
// Unnester leaves in operand position - to the register holding its value.
func (cg *CodeGen) loadValue(_ *codegen.CodeArea, alloc *codegen.Allocator, _ symbol.AbstractionID, e ast.Expression) codegen.Register {
	switch n := e.(type) {
	case ast.Variable:
		if n.Symbol.IsGlobal() {
			return alloc.RegisterForGlobal(n.Symbol)
		}

		return alloc.RegisterForLocal(n.Symbol)

	case ast.Constant:
		return alloc.RegisterForConstant(n)

	default:
		panic(fmt.Sprintf("internal error: %T is not a flattened operand", e))
	}
}

// targetRegister resolves the Lhs of a BindStatement, always a Variable
// after the Unnester, to the register its value should be written into.
func (cg *CodeGen) targetRegister(alloc *codegen.Allocator, e ast.Expression) codegen.Register {
	v, ok := e.(ast.Variable)
	if !ok {
		panic(fmt.Sprintf("internal error: bind target %T is not a resolved variable", e))
	}

	if v.Symbol.IsGlobal() {
		return alloc.RegisterForGlobal(v.Symbol)
	}

	return alloc.RegisterForLocal(v.Symbol)
}

func (cg *CodeGen) emitBind(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, n ast.BindStatement) {
	dst := cg.targetRegister(alloc, n.Lhs)

	switch rhs := n.Rhs.(type) {
	case ast.Variable, ast.Constant:
		src := cg.loadValue(area, alloc, owner, rhs)
		area.Emit(codegen.Opcode{Code: "move", Size: 8, Regs: []codegen.Register{src, dst}})

	case ast.RecordExpression:
		cg.emitRecord(area, alloc, owner, dst, rhs)

	case ast.FeatureAccess:
		record := cg.loadValue(area, alloc, owner, rhs.Record)
		feature := cg.loadValue(area, alloc, owner, rhs.Feature)

		area.Emit(codegen.Opcode{Code: "getFeature", Size: 12, Regs: []codegen.Register{dst, record, feature}})

	case ast.CreateAbstraction:
		regs := make([]codegen.Register, 0, len(rhs.Captured)+1)
		regs = append(regs, dst)

		for _, c := range rhs.Captured {
			regs = append(regs, cg.loadValue(area, alloc, owner, c))
		}

		area.Emit(codegen.Opcode{
			Code: "allocC", Size: uint(8 + 4*len(rhs.Captured)), Regs: regs,
			Imm: []int32{int32(rhs.Abstraction)},
		})

	default:
		panic(fmt.Sprintf("internal error: unhandled bind source %T reached CodeGen", rhs))
	}
}

// emitRecord emits the record allocation for lbl/fields directly into dst,
// shared between a BindStatement whose Rhs is a bare RecordExpression and
// a RecordStatement.
func (cg *CodeGen) emitRecord(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID,
	dst codegen.Register, rec ast.RecordExpression) {
	label := cg.loadValue(area, alloc, owner, rec.Label)

	regs := make([]codegen.Register, 0, 2+2*len(rec.Fields))
	regs = append(regs, dst, label)

	for _, f := range rec.Fields {
		regs = append(regs, cg.loadValue(area, alloc, owner, f.Feature), cg.loadValue(area, alloc, owner, f.Value))
	}

	area.Emit(codegen.Opcode{
		Code: "makeRecord", Size: uint(12 + 8*len(rec.Fields)), Regs: regs,
		Imm: []int32{int32(len(rec.Fields))},
	})
}

func (cg *CodeGen) emitRecordStatement(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, n ast.RecordStatement) {
	dst := cg.targetRegister(alloc, n.Target)
	cg.emitRecord(area, alloc, owner, dst, ast.NewRecord(n.Pos(), n.Label, n.Fields))
}

// stageIntoX moves val's value into a fresh X-register, the calling
// convention every call site and functor application stages its operands
// through (spec.md section 4.3): X is scratch, live only until the call
// opcode that follows consumes it.
func (cg *CodeGen) stageIntoX(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, val ast.Expression) codegen.Register {
	src := cg.loadValue(area, alloc, owner, val)
	dst := alloc.NextX()

	area.Emit(codegen.Opcode{Code: "move", Size: 8, Regs: []codegen.Register{src, dst}})

	return dst
}

func (cg *CodeGen) emitCall(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, n ast.CallStatement) {
	proc := cg.stageIntoX(area, alloc, owner, n.Proc)

	regs := make([]codegen.Register, 0, len(n.Args)+1)
	regs = append(regs, proc)

	for _, a := range n.Args {
		regs = append(regs, cg.stageIntoX(area, alloc, owner, a))
	}

	area.Emit(codegen.Opcode{
		Code: "call", Size: uint(8 + 4*len(n.Args)), Regs: regs,
		Imm: []int32{int32(len(n.Args))},
	})
}

func (cg *CodeGen) emitFunctorApply(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, n ast.FunctorApplyStatement) {
	target := cg.targetRegister(alloc, n.Target)
	functor := cg.stageIntoX(area, alloc, owner, n.Functor)
	imp := cg.stageIntoX(area, alloc, owner, n.Import)

	area.Emit(codegen.Opcode{Code: "applyFunctor", Size: 12, Regs: []codegen.Register{target, functor, imp}})
}

// emitIf emits a two-armed conditional as a conditional branch over the
// then-arm's size followed by an unconditional jump over the else-arm's
// size, using CodeArea.Counting to measure each arm without having to
// track byte offsets by hand.
func (cg *CodeGen) emitIf(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, n ast.IfStatement) {
	cond := cg.loadValue(area, alloc, owner, n.Cond)

	_, branchHole := area.EmitHole("branchUnless", 8, []codegen.Register{cond}, 1, 0)

	var jumpHole *codegen.Hole

	thenSize := area.Counting(func() {
		cg.statement(area, alloc, owner, n.Then)
		_, jumpHole = area.EmitHole("jump", 4, nil, 1, 0)
	})
	branchHole.Fill(int32(thenSize))

	elseSize := area.Counting(func() {
		cg.statement(area, alloc, owner, n.Else)
	})
	jumpHole.Fill(int32(elseSize))
}

// emitTry emits a push/pop-handler pair bracketing Body, with Catch laid out
// after it and any Finally after Catch, where both the normal path's jump
// and the catch path's fall-through reach it; the handler's reach is
// backpatched the same way emitIf backpatches its branch.
func (cg *CodeGen) emitTry(area *codegen.CodeArea, alloc *codegen.Allocator, owner symbol.AbstractionID, n ast.TryStatement) {
	_, handlerHole := area.EmitHole("pushHandler", 4, nil, 1, 0)

	var jumpHole *codegen.Hole

	bodySize := area.Counting(func() {
		cg.statement(area, alloc, owner, n.Body)
		area.Emit(codegen.Opcode{Code: "popHandler", Size: 4})
		_, jumpHole = area.EmitHole("jump", 4, nil, 1, 0)
	})
	handlerHole.Fill(int32(bodySize))

	catchSize := area.Counting(func() {
		excSym, ok := bindingSymbolOf(n.Pattern)
		if ok {
			reg := alloc.RegisterForLocal(excSym)
			area.Emit(codegen.Opcode{Code: "loadException", Size: 4, Regs: []codegen.Register{reg}})
		}

		cg.statement(area, alloc, owner, n.Catch)
	})
	jumpHole.Fill(int32(catchSize))

	if n.Finally != nil {
		cg.statement(area, alloc, owner, n.Finally)
	}
}

// bindingSymbolOf reports the symbol a try-catch's pattern binds the raised
// exception value to, if it is a simple binding pattern (the common case;
// a structured catch pattern is compiled the same way a case arm's pattern
// would be, which this pass does not attempt).
func bindingSymbolOf(p ast.Pattern) (*symbol.VariableSymbol, bool) {
	b, ok := p.(ast.BindingPattern)
	if !ok {
		return nil, false
	}

	return b.Symbol, true
}
