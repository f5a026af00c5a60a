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

// Package codegen provides the register model (X/Y/G/K), the constant pool,
// and the opcode representation shared by every abstraction's code area
// (spec.md section 4.3).  It knows nothing of the AST transform pipeline
// itself; the pass that walks a flattened abstraction body and emits
// opcodes into a CodeArea lives in package transform, which imports this
// package and internal/program.
package codegen

import (
	"fmt"
	"strconv"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// RegisterKind distinguishes the four register files an opcode argument can
// draw from.
type RegisterKind uint8

const (
	// XRegister is a scratch temporary, live for a single call site or
	// expression.
	XRegister RegisterKind = iota
	// YRegister is a local variable (formal or declared local).
	YRegister
	// GRegister is a captured (closed-over) variable.
	GRegister
	// KRegister is a constant-pool slot.
	KRegister
)

// String renders a register kind's single-letter VM mnemonic.
func (k RegisterKind) String() string {
	switch k {
	case XRegister:
		return "X"
	case YRegister:
		return "Y"
	case GRegister:
		return "G"
	case KRegister:
		return "K"
	default:
		return "?"
	}
}

// Register identifies a single register: its file and its index within that
// file.
type Register struct {
	Kind  RegisterKind
	Index uint
}

// String renders a register as the VM disassembler would, e.g. "X3".
func (r Register) String() string {
	return fmt.Sprintf("%s%d", r.Kind, r.Index)
}

// Allocator assigns registers for a single abstraction's code area.  Y, G,
// and K assignments are memoized by key: "the first registerFor(key) call
// decides a register; subsequent calls return the same one" (spec.md
// section 4.3).  X assignments are a bump allocator, reset between
// statements by the CodeGen pass; the high-water mark becomes the code
// area's final X-count.
type Allocator struct {
	// yOf maps a local/formal variable's symbol id to its assigned
	// Y-register index.
	yOf map[uint64]uint
	// nextY is the next unused Y-register index.
	nextY uint
	// gIndex resolves a captured variable to its G-register index; this is
	// delegated to the abstraction's global list (see program.Abstraction),
	// supplied as a callback so this package stays independent of the
	// program package.
	gIndex func(*symbol.VariableSymbol) uint
	// pool is the ordered constant pool; pool[i] was assigned K(i).
	pool []ast.Constant
	// kOf maps a constant's structural-identity key to its K-register
	// index.
	kOf map[string]uint
	// xNext is the bump pointer for X-register allocation within the
	// statement currently being emitted.
	xNext uint
	// xMax is the highest X-register index ever handed out.
	xMax uint
}

// NewAllocator constructs an allocator for one abstraction.  gIndex
// resolves a captured variable to its G-register index (ordinarily
// (*program.Abstraction).GlobalIndex).
func NewAllocator(gIndex func(*symbol.VariableSymbol) uint) *Allocator {
	return &Allocator{
		yOf:    make(map[uint64]uint),
		gIndex: gIndex,
		kOf:    make(map[string]uint),
	}
}

// RegisterForLocal returns the Y-register assigned to v, allocating a fresh
// one on first use.
func (a *Allocator) RegisterForLocal(v *symbol.VariableSymbol) Register {
	if idx, ok := a.yOf[v.Id()]; ok {
		return Register{YRegister, idx}
	}

	idx := a.nextY
	a.nextY++
	a.yOf[v.Id()] = idx

	return Register{YRegister, idx}
}

// RegisterForGlobal returns the G-register assigned to a captured variable.
func (a *Allocator) RegisterForGlobal(v *symbol.VariableSymbol) Register {
	return Register{GRegister, a.gIndex(v)}
}

// RegisterForConstant returns the K-register assigned to c, appending it to
// the constant pool on first use.  The constant pool is a set (no duplicate
// keys) in insertion order (spec.md section 8, invariant 7).
func (a *Allocator) RegisterForConstant(c ast.Constant) Register {
	key := constantKey(c)
	if idx, ok := a.kOf[key]; ok {
		return Register{KRegister, idx}
	}

	idx := uint(len(a.pool))
	a.pool = append(a.pool, c)
	a.kOf[key] = idx

	return Register{KRegister, idx}
}

// NextX allocates a fresh X-register from the current bump pointer.
func (a *Allocator) NextX() Register {
	idx := a.xNext
	a.xNext++

	if a.xNext > a.xMax {
		a.xMax = a.xNext
	}

	return Register{XRegister, idx}
}

// ResetX rewinds the X-register bump pointer to zero, as done between
// statements; the high-water mark (XCount) is unaffected.
func (a *Allocator) ResetX() {
	a.xNext = 0
}

// XCount returns 1 + the maximum X-register index ever handed out (0 if
// none were), satisfying the ComputeXCount invariant (spec.md section 8,
// invariant 5).
func (a *Allocator) XCount() uint {
	return a.xMax
}

// YCount returns the number of Y-registers (formals + locals) assigned.
func (a *Allocator) YCount() uint {
	return a.nextY
}

// Constants returns the constant pool built up so far, in insertion order.
func (a *Allocator) Constants() []ast.Constant {
	return a.pool
}

// constantKey computes a comparable structural-identity key for a constant,
// per spec.md section 4.3: "deep equality for atoms, literal equality for
// primitives, object identity for builtins and code areas".
func constantKey(c ast.Constant) string {
	switch v := c.(type) {
	case ast.ConstantAtom:
		return "A:" + v.Value
	case ast.ConstantInt:
		return "I:" + strconv.FormatInt(v.Value, 10)
	case ast.ConstantFloat:
		return "F:" + strconv.FormatFloat(v.Value, 'g', -1, 64)
	case ast.ConstantBool:
		return "B:" + strconv.FormatBool(v.Value)
	case ast.ConstantUnit:
		return "U"
	case ast.ConstantBuiltin:
		return "BI:" + fmt.Sprintf("%p", v.Symbol)
	case ast.ConstantCodeArea:
		return "C:" + strconv.Itoa(int(v.Abstraction))
	case ast.ConstantArity:
		key := "AR:" + v.Label + "|"

		for _, f := range v.Features {
			if f.IsInt {
				key += "i" + strconv.FormatInt(f.Int, 10) + ","
			} else {
				key += "a" + f.Atom + ","
			}
		}

		return key
	default:
		panic("internal error: unhandled constant variant")
	}
}
