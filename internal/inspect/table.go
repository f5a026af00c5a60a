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
	"strings"
)

// FormattedText is a chunk of text with an optional ANSI format applied to
// it when rendered.
type FormattedText struct {
	format *AnsiEscape
	text   []rune
}

// NewText constructs an unformatted chunk of text.
func NewText(text string) FormattedText {
	return FormattedText{nil, []rune(text)}
}

// NewFormattedText constructs a chunk of text carrying format.
func NewFormattedText(text string, format AnsiEscape) FormattedText {
	return FormattedText{&format, []rune(text)}
}

// Len returns the number of runes in this chunk, excluding any formatting
// escape.
func (t FormattedText) Len() uint {
	return uint(len(t.text))
}

// Pad right-pads t with spaces up to width, returning it unchanged if it is
// already at least that wide.
func (t FormattedText) Pad(width uint) FormattedText {
	if t.Len() >= width {
		return t
	}

	padded := make([]rune, width)
	copy(padded, t.text)

	for i := t.Len(); i < width; i++ {
		padded[i] = ' '
	}

	return FormattedText{t.format, padded}
}

// Clip truncates t to width runes.
func (t FormattedText) Clip(width uint) FormattedText {
	if t.Len() <= width {
		return t
	}

	return FormattedText{t.format, t.text[:width]}
}

// Bytes renders t with its ANSI format applied, if any.
func (t FormattedText) Bytes() []byte {
	if t.format == nil {
		return []byte(string(t.text))
	}

	var b []byte

	b = append(b, []byte(t.format.Build())...)
	b = append(b, []byte(string(t.text))...)
	b = append(b, []byte(ResetEscape().Build())...)

	return b
}

// FormattedTable holds a grid of FormattedText cells for tabular output, as
// used by the disassembly view (spec.md section 4.3's opcode listing
// rendered one row per instruction).
type FormattedTable struct {
	widths []uint
	rows   [][]FormattedText
}

// NewFormattedTable constructs a table of the given column count with no
// rows; rows are appended with AddRow.
func NewFormattedTable(columns uint) *FormattedTable {
	return &FormattedTable{widths: make([]uint, columns)}
}

// AddRow appends a row to the table, widening columns as needed.
func (t *FormattedTable) AddRow(cells ...FormattedText) {
	if uint(len(cells)) != uint(len(t.widths)) {
		panic("inspect: wrong number of columns in table row")
	}

	for i, c := range cells {
		if c.Len() > t.widths[i] {
			t.widths[i] = c.Len()
		}
	}

	t.rows = append(t.rows, cells)
}

// Height returns the number of rows in the table.
func (t *FormattedTable) Height() uint {
	return uint(len(t.rows))
}

// Render returns the table's rows as plain strings, one per row, formatted
// with ANSI escapes when colour is true.
func (t *FormattedTable) Render(colour bool) []string {
	lines := make([]string, len(t.rows))

	for i, row := range t.rows {
		var b strings.Builder

		for j, cell := range row {
			padded := cell.Pad(t.widths[j])

			if colour {
				fmt.Fprintf(&b, " %s |", padded.Bytes())
			} else {
				fmt.Fprintf(&b, " %s |", string(padded.text))
			}
		}

		lines[i] = b.String()
	}

	return lines
}
