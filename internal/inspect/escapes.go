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

// Package inspect renders a compiled Program's code areas as a disassembly
// table, paged interactively when stdout is a terminal (spec.md section 6
// names the inspect subcommand's existence only in passing; this package
// supplies the actual rendering, grounded in the teacher's pkg/util/termio).
package inspect

import "fmt"

// Foreground colour codes, matching the teacher's termio.TERM_* constants.
const (
	ColourRed    = uint(1)
	ColourGreen  = uint(2)
	ColourYellow = uint(3)
	ColourCyan   = uint(6)
)

// AnsiEscape builds up an ANSI SGR escape sequence one attribute at a time.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetEscape constructs the "clear all attributes" escape.
func ResetEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// Bold sets the bold attribute.
func (e AnsiEscape) Bold() AnsiEscape {
	return e.append(1)
}

// FgColour sets the foreground colour.
func (e AnsiEscape) FgColour(col uint) AnsiEscape {
	return e.append(30 + col)
}

func (e AnsiEscape) append(code uint) AnsiEscape {
	if e.count > 0 {
		return AnsiEscape{fmt.Sprintf("%s;%d", e.escape, code), e.count + 1}
	}

	return AnsiEscape{fmt.Sprintf("%s[%d", e.escape, code), e.count + 1}
}

// Build renders the final escape sequence.
func (e AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", e.escape)
}
