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

package inspect

import (
	"fmt"

	"github.com/yjaradin/mozart2-bootcompiler/internal/codegen"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
)

// Header returns the one-line summary for an abstraction: its id and its
// Y/G/X/K register counts (spec.md section 4.3's register files).
func Header(abs *program.Abstraction) string {
	area := abs.CodeArea()
	if area == nil {
		return fmt.Sprintf("abstraction %d: not yet code-generated", abs.Id())
	}

	return fmt.Sprintf("abstraction %d: Y=%d G=%d X=%d K=%d, %d opcodes",
		abs.Id(), area.YCount(), len(abs.Globals()), area.XCount(), area.KCount(), len(area.Ops))
}

// Disassemble renders one abstraction's code area as a table: one row per
// opcode, columns for its index, mnemonic and operands.
func Disassemble(abs *program.Abstraction) *FormattedTable {
	area := abs.CodeArea()

	table := NewFormattedTable(3)
	if area == nil {
		return table
	}

	for i, op := range area.Ops {
		table.AddRow(
			NewText(fmt.Sprintf("%d", i)),
			NewFormattedText(op.Code, NewAnsiEscape().FgColour(ColourCyan)),
			NewText(operandsText(op)),
		)
	}

	return table
}

func operandsText(op codegen.Opcode) string {
	var s string

	for i, r := range op.Regs {
		if i > 0 || len(op.Imm) > 0 {
			s += " "
		}

		s += r.String()
	}

	for i, imm := range op.Imm {
		if i > 0 {
			s += " "
		}

		s += fmt.Sprintf("#%d", imm)
	}

	return s
}
