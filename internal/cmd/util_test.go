// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
)

func fixtureCommand(t *testing.T) *cobra.Command {
	t.Helper()

	c := &cobra.Command{Use: "fixture"}
	c.Flags().Bool("flag", false, "")
	c.Flags().String("str", "", "")
	c.Flags().StringArray("arr", nil, "")

	return c
}

func TestGetFlagReadsRegisteredBoolFlag(t *testing.T) {
	c := fixtureCommand(t)

	if err := c.Flags().Set("flag", "true"); err != nil {
		t.Fatal(err)
	}

	if !GetFlag(c, "flag") {
		t.Error("expected GetFlag to return true after Set(\"true\")")
	}
}

func TestGetStringReadsRegisteredStringFlag(t *testing.T) {
	c := fixtureCommand(t)

	if err := c.Flags().Set("str", "hello"); err != nil {
		t.Fatal(err)
	}

	if got := GetString(c, "str"); got != "hello" {
		t.Errorf("expected GetString to return %q, got %q", "hello", got)
	}
}

func TestGetStringArrayPreservesOrder(t *testing.T) {
	c := fixtureCommand(t)

	if err := c.Flags().Set("arr", "one"); err != nil {
		t.Fatal(err)
	}

	if err := c.Flags().Set("arr", "two"); err != nil {
		t.Fatal(err)
	}

	got := GetStringArray(c, "arr")

	want := []string{"one", "two"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v in supplied order, got %v", want, got)
	}
}

func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}

	old := os.Stdout
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}

	return buf.String()
}

func TestPrintSyntaxErrorPointsCaretAtSpan(t *testing.T) {
	file := source.NewFile("demo.oz", []byte("let x = bogus in skip end\n"))
	span := source.NewSpan(8, 13)
	err := file.SyntaxError(span, "unresolved name")

	out := captureStdout(t, func() { printSyntaxError(err) })

	if !strings.Contains(out, "demo.oz:1:9") {
		t.Errorf("expected the column-annotated file:line:col prefix, got:\n%s", out)
	}

	if !strings.Contains(out, "unresolved name") {
		t.Errorf("expected the error message, got:\n%s", out)
	}

	if !strings.Contains(out, "^^^^^") {
		t.Errorf("expected a caret line under the offending span, got:\n%s", out)
	}
}

func TestPrintSyntaxErrorsRendersEachInOrder(t *testing.T) {
	file := source.NewFile("demo.oz", []byte("abc\n"))
	e1 := file.SyntaxError(source.NewSpan(0, 1), "first")
	e2 := file.SyntaxError(source.NewSpan(1, 2), "second")

	out := captureStdout(t, func() { printSyntaxErrors([]*source.SyntaxError{e1, e2}) })

	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("expected errors rendered in order, got:\n%s", out)
	}
}
