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

// Package emitter renders a finished Program (every abstraction's flattened
// body, reduced by CodeGen to a codegen.CodeArea) into C++ source: one
// createCodeArea<id> function per abstraction plus the top-level entry
// function selected by the driver's assembly strategy (spec.md sections 4.4
// and 4.5).  The emitter is a pure transformation: it never mutates the
// Program or any AST node it reads from (spec.md section 9, "Emitter").
package emitter

import (
	"fmt"
	"strings"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/codegen"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
)

// regToken renders a register operand the way the generated C++ reads it
// back out of a ByteCode word.
func regToken(r codegen.Register) string {
	switch r.Kind {
	case codegen.XRegister:
		return fmt.Sprintf("regX(%d)", r.Index)
	case codegen.YRegister:
		return fmt.Sprintf("regY(%d)", r.Index)
	case codegen.GRegister:
		return fmt.Sprintf("regG(%d)", r.Index)
	case codegen.KRegister:
		return fmt.Sprintf("regK(%d)", r.Index)
	default:
		panic("internal error: unhandled register kind in emitter")
	}
}

// opMnemonics maps a CodeGen opcode mnemonic to the C++ enumerator the
// runtime's ByteCode interpreter switches on.
var opMnemonics = map[string]string{
	"move":          "OpMove",
	"call":          "OpCallBuiltin",
	"branchUnless":  "OpBranchUnless",
	"jump":          "OpJump",
	"makeRecord":    "OpMakeRecord",
	"getFeature":    "OpGetFeature",
	"allocC":        "OpAllocC",
	"raise":         "OpRaise",
	"threadBegin":   "OpThreadBegin",
	"threadEnd":     "OpThreadEnd",
	"pushHandler":   "OpPushHandler",
	"popHandler":    "OpPopHandler",
	"loadException": "OpLoadException",
	"applyFunctor":  "OpApplyFunctor",
}

// emitOpcode writes one codeBlock entry: its C++ enumerator followed by its
// register and immediate operands, in argument order.
func emitOpcode(w *strings.Builder, op codegen.Opcode) {
	mnemonic, ok := opMnemonics[op.Code]
	if !ok {
		panic(fmt.Sprintf("internal error: no C++ enumerator registered for opcode %q", op.Code))
	}

	fmt.Fprintf(w, "\t%s", mnemonic)

	for _, r := range op.Regs {
		fmt.Fprintf(w, ", %s", regToken(r))
	}

	for _, imm := range op.Imm {
		fmt.Fprintf(w, ", %d", imm)
	}

	w.WriteString(",\n")
}

// constantInitializer writes the statement that builds the K-register at
// index idx and installs it into the code area under construction, per
// spec.md section 4.4, point 3.  Every ast.Constant variant is handled
// explicitly; CodeGen never pools anything else.
func constantInitializer(w *strings.Builder, areaVar string, idx int, c ast.Constant) {
	switch v := c.(type) {
	case ast.ConstantAtom:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, OZ_newAtom(vm, %q)));\n", areaVar, idx, v.Value)
	case ast.ConstantInt:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, SmallInt::build(vm, %d)));\n", areaVar, idx, v.Value)
	case ast.ConstantFloat:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, Float::build(vm, %g)));\n", areaVar, idx, v.Value)
	case ast.ConstantBool:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, %s));\n", areaVar, idx, boolLiteral(v.Value))
	case ast.ConstantUnit:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, Unit::build(vm)));\n", areaVar, idx)
	case ast.ConstantBuiltin:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, BuiltinProcedure::build(vm, %s)));\n",
			areaVar, idx, v.Symbol.CppName())
	case ast.ConstantCodeArea:
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, createCodeArea%d(vm)));\n", areaVar, idx, v.Abstraction)
	case ast.ConstantArity:
		emitArityInitializer(w, areaVar, idx, v)
	default:
		panic(fmt.Sprintf("internal error: unhandled constant variant %T in emitter", c))
	}
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}

	return "false"
}

// emitArityInitializer builds either a tuple arity (features 1..n) or a
// general record arity via buildArity, per spec.md section 9's "open
// question" resolution: tuple-shapedness is exactly ConstantArity's own
// IsTupleShaped check, preserved unchanged from ConstantFolding/Flattener.
func emitArityInitializer(w *strings.Builder, areaVar string, idx int, a ast.ConstantArity) {
	if a.IsTupleShaped() {
		fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, buildArity(vm, %q, %d)));\n",
			areaVar, idx, a.Label, len(a.Features))
		return
	}

	features := make([]string, len(a.Features))

	for i, f := range a.Features {
		if f.IsInt {
			features[i] = fmt.Sprintf("OZ_newInt(vm, %d)", f.Int)
		} else {
			features[i] = fmt.Sprintf("OZ_newAtom(vm, %q)", f.Atom)
		}
	}

	fmt.Fprintf(w, "\t%s.initConstant(%d, trivialBuild(vm, buildArity(vm, %q, {%s})));\n",
		areaVar, idx, a.Label, strings.Join(features, ", "))
}

// EmitAbstraction writes the createCodeArea<id> function for one abstraction
// into w (spec.md section 4.4).
func EmitAbstraction(w *strings.Builder, abs *program.Abstraction) {
	area := abs.CodeArea()
	if area == nil {
		panic(fmt.Sprintf("internal error: abstraction %d has no CodeArea; CodeGen did not run", abs.Id()))
	}

	fmt.Fprintf(w, "UnstableNode createCodeArea%d(VM vm) {\n", abs.Id())
	fmt.Fprintf(w, "\tstatic ByteCode codeBlock[] = {\n")

	for _, op := range area.Ops {
		emitOpcode(w, op)
	}

	w.WriteString("\t};\n\n")

	fmt.Fprintf(w, "\tUnstableNode area;\n")
	fmt.Fprintf(w, "\tCodeAreaSpace::build(vm, area, %d, codeBlock, sizeof(codeBlock), %d);\n\n",
		area.KCount(), area.XCount())

	constants := area.Alloc.Constants()
	for i, c := range constants {
		constantInitializer(w, "area", i, c)
	}

	w.WriteString("\n\treturn area;\n}\n\n")
}

// EmitAbstractions writes every abstraction in the program's arena, in
// arena order, which (after the Flattener runs) is also valid C++ emission
// order: a nested abstraction's ConstantCodeArea reference always names an
// already-allocated arena slot, but C++ function declarations are emitted
// up front precisely so forward references between createCodeArea functions
// never matter.
func EmitAbstractions(w *strings.Builder, prog *program.Program) {
	abstractions := prog.Abstractions()

	for _, abs := range abstractions {
		fmt.Fprintf(w, "UnstableNode createCodeArea%d(VM vm);\n", abs.Id())
	}

	w.WriteString("\n")

	for _, abs := range abstractions {
		EmitAbstraction(w, abs)
	}
}

// Headers renders the `#include` directives for the extra headers the
// driver was asked to add (spec.md section 6, `-h/--header`), in the order
// they were supplied.
func Headers(extra []string) string {
	var w strings.Builder

	w.WriteString("#include \"mozart.hh\"\n")

	for _, h := range extra {
		fmt.Fprintf(&w, "#include %q\n", h)
	}

	w.WriteString("\n")

	return w.String()
}

// Defines renders the `-D/--define` conditional-compilation symbols as
// leading #define directives, in the order they were supplied.
func Defines(symbols []string) string {
	var w strings.Builder

	for _, d := range symbols {
		fmt.Fprintf(&w, "#define %s\n", d)
	}

	if len(symbols) > 0 {
		w.WriteString("\n")
	}

	return w.String()
}
