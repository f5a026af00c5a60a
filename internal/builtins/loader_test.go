// SPDX-License-Identifier: Apache-2.0
package builtins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

const sampleDescriptor = `{
	"name": "Dictionary",
	"builtins": [
		{
			"fullCppName": "OzValues::Boot::Dictionary::get",
			"name": "get",
			"inlineable": false,
			"params": [ { "kind": "In" }, { "kind": "In" }, { "kind": "Out" } ]
		}
	]
}`

func writeDescriptor(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing descriptor: %v", err)
	}

	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, "dictionary-builtin.json", sampleDescriptor)

	reg := NewRegistry(symbol.NewCounter())

	mod, err := reg.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if mod.URL != "x-oz://boot/Dictionary" {
		t.Errorf("unexpected module URL: %s", mod.URL)
	}

	if len(mod.Builtins) != 1 {
		t.Fatalf("expected 1 builtin, got %d", len(mod.Builtins))
	}

	get := mod.Builtins[0]
	if get.Arity() != 3 {
		t.Errorf("expected arity 3, got %d", get.Arity())
	}

	sym, ok := reg.Lookup("get")
	if !ok || sym != get {
		t.Errorf("registry lookup did not return the loaded builtin")
	}

	rec, ok := mod.Export.(ast.RecordExpression)
	if !ok {
		t.Fatalf("expected export record, got %T", mod.Export)
	}

	if len(rec.Fields) != 1 {
		t.Fatalf("expected 1 export field, got %d", len(rec.Fields))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDescriptor(t, dir, "dictionary-builtin.json", sampleDescriptor)
	writeDescriptor(t, dir, "not-a-builtin.txt", "ignored")

	reg := NewRegistry(symbol.NewCounter())

	mods, err := reg.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if len(mods) != 1 {
		t.Fatalf("expected 1 module, got %d", len(mods))
	}
}
