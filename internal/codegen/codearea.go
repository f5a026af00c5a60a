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

package codegen

import "github.com/yjaradin/mozart2-bootcompiler/internal/symbol"

// CodeArea is the per-abstraction output of CodeGen: an emitted opcode
// stream plus the register allocator that produced it.  The constant pool
// is append-only; no opcode is ever removed once emitted (spec.md
// section 5, "Shared resources").
type CodeArea struct {
	// Owner identifies which abstraction this code area belongs to.
	Owner symbol.AbstractionID
	// Alloc is the register allocator used while emitting this code area.
	Alloc *Allocator
	// Ops is the emitted instruction stream, in program order.
	Ops []Opcode
}

// NewCodeArea constructs an empty code area for the given abstraction,
// ready for CodeGen to emit into.
func NewCodeArea(owner symbol.AbstractionID, alloc *Allocator) *CodeArea {
	return &CodeArea{Owner: owner, Alloc: alloc}
}

// Emit appends op to this code area's instruction stream and returns its
// index.
func (c *CodeArea) Emit(op Opcode) int {
	c.Ops = append(c.Ops, op)
	return len(c.Ops) - 1
}

// EmitHole appends an opcode with nImm immediate slots, one of which
// (holeSlot) is left for a later backpatch, and returns both the opcode's
// index and a Hole that fills that slot.
func (c *CodeArea) EmitHole(code string, size uint, regs []Register, nImm, holeSlot int) (int, *Hole) {
	idx := c.Emit(Opcode{Code: code, Size: size, Regs: regs, Imm: make([]int32, nImm)})
	return idx, &Hole{area: c, opIndex: idx, slot: holeSlot}
}

// TotalSize returns the sum, in bytes, of every opcode emitted so far.
func (c *CodeArea) TotalSize() uint {
	var total uint
	for _, op := range c.Ops {
		total += op.Size
	}

	return total
}

// Counting runs f and returns the sum of the sizes of whatever opcodes it
// emitted, used to compute a forward jump's offset (spec.md section 4.3).
func (c *CodeArea) Counting(f func()) uint {
	before := c.TotalSize()
	f()

	return c.TotalSize() - before
}

// ComputeXCount scans every emitted opcode's register operands and returns
// 1 + the maximum X-register index referenced (0 if none is), independent
// of whatever the allocator's own bookkeeping claims.  Used to verify
// invariant 5 of spec.md section 8.
func (c *CodeArea) ComputeXCount() uint {
	var max uint

	var any bool

	for _, op := range c.Ops {
		for _, r := range op.Regs {
			if r.Kind == XRegister {
				any = true
				if r.Index+1 > max {
					max = r.Index + 1
				}
			}
		}
	}

	if !any {
		return 0
	}

	return max
}

// KCount returns the number of entries in the constant pool.
func (c *CodeArea) KCount() uint {
	return uint(len(c.Alloc.Constants()))
}

// YCount returns the number of Y-registers (formals + locals) used.
func (c *CodeArea) YCount() uint {
	return c.Alloc.YCount()
}

// XCount returns the allocator's recorded X-register high-water mark.
func (c *CodeArea) XCount() uint {
	return c.Alloc.XCount()
}

// AssertAllFilled panics if any hole in holes has not been filled; it is a
// programming error for a pass to finish with an unfilled hole (spec.md
// section 9, "Placeholder opcodes").  Holes are tracked by the emitting pass
// itself (each EmitHole call returns the only reference to its Hole), so a
// pass that wants this check keeps its own slice of holes and passes it here.
func AssertAllFilled(holes []*Hole) {
	for _, h := range holes {
		if !h.Filled() {
			panic("internal error: unfilled hole at end of pass")
		}
	}
}
