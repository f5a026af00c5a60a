// SPDX-License-Identifier: Apache-2.0
package inspect

import (
	"strings"
	"testing"
)

func TestFormattedTextPadRightPadsToWidth(t *testing.T) {
	padded := NewText("ab").Pad(5)

	if padded.Len() != 5 {
		t.Fatalf("expected padded length 5, got %d", padded.Len())
	}

	if string(padded.Bytes()) != "ab   " {
		t.Fatalf("expected \"ab   \", got %q", string(padded.Bytes()))
	}
}

func TestFormattedTextPadLeavesWiderTextUnchanged(t *testing.T) {
	text := NewText("abcdef")

	padded := text.Pad(3)

	if padded.Len() != 6 {
		t.Fatalf("expected Pad to leave text already wider than width unchanged, got length %d", padded.Len())
	}
}

func TestFormattedTextClipTruncates(t *testing.T) {
	clipped := NewText("abcdef").Clip(3)

	if string(clipped.Bytes()) != "abc" {
		t.Fatalf("expected \"abc\", got %q", string(clipped.Bytes()))
	}
}

func TestFormattedTextClipLeavesShorterTextUnchanged(t *testing.T) {
	clipped := NewText("ab").Clip(5)

	if string(clipped.Bytes()) != "ab" {
		t.Fatalf("expected Clip to leave shorter text unchanged, got %q", string(clipped.Bytes()))
	}
}

func TestFormattedTextBytesWrapsFormatWithReset(t *testing.T) {
	text := NewFormattedText("x", NewAnsiEscape().FgColour(ColourRed))

	out := string(text.Bytes())

	if !strings.HasPrefix(out, NewAnsiEscape().FgColour(ColourRed).Build()) {
		t.Errorf("expected rendered text to start with the format escape, got %q", out)
	}

	if !strings.HasSuffix(out, ResetEscape().Build()) {
		t.Errorf("expected rendered text to end with the reset escape, got %q", out)
	}
}

func TestFormattedTableAddRowPanicsOnWrongColumnCount(t *testing.T) {
	table := NewFormattedTable(2)

	defer func() {
		if recover() == nil {
			t.Fatal("expected AddRow to panic on a mismatched column count")
		}
	}()

	table.AddRow(NewText("one"))
}

func TestFormattedTableRenderPadsColumnsToWidestCell(t *testing.T) {
	table := NewFormattedTable(2)
	table.AddRow(NewText("a"), NewText("longer"))
	table.AddRow(NewText("bb"), NewText("x"))

	lines := table.Render(false)

	if len(lines) != 2 {
		t.Fatalf("expected 2 rendered rows, got %d", len(lines))
	}

	if lines[0] != " a  | longer |" {
		t.Errorf("expected first column padded to width 2, got %q", lines[0])
	}

	if lines[1] != " bb | x      |" {
		t.Errorf("expected second column padded to width 6, got %q", lines[1])
	}
}

func TestFormattedTableHeightCountsRows(t *testing.T) {
	table := NewFormattedTable(1)

	if table.Height() != 0 {
		t.Fatalf("expected a fresh table to have height 0, got %d", table.Height())
	}

	table.AddRow(NewText("x"))

	if table.Height() != 1 {
		t.Fatalf("expected height 1 after one AddRow, got %d", table.Height())
	}
}
