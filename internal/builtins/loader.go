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

package builtins

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// BootURLPrefix is the fixed scheme under which every boot module is
// exposed, per spec.md section 6 ("URL conventions").
const BootURLPrefix = "x-oz://boot/"

// Module is a single loaded builtin module: its name, its boot URL, the
// builtin symbols it contributes to the registry, and the synthetic
// functor-export record the loader yields for it.
type Module struct {
	Name     string
	URL      string
	Builtins []*symbol.BuiltinSymbol
	// Export is a synthetic functor-export record: one field per builtin,
	// keyed by the builtin's unqualified name, whose value is a
	// ConstantBuiltin referencing that builtin's symbol.
	Export ast.Expression
}

// Registry indexes every builtin loaded so far by its unqualified name, and
// keeps the list of modules loaded (each contributing an entry to a boot
// module's URL -> export-record map for BaseEnv assembly).
type Registry struct {
	counter *symbol.Counter
	byName  map[string]*symbol.BuiltinSymbol
	modules []*Module
}

// NewRegistry constructs an empty registry.  counter must be the same
// symbol.Counter used for the rest of the compilation, so builtin symbol
// ids interleave with variable symbol ids from a single monotonic source.
func NewRegistry(counter *symbol.Counter) *Registry {
	return &Registry{counter: counter, byName: make(map[string]*symbol.BuiltinSymbol)}
}

// Lookup resolves a builtin by its unqualified name.
func (r *Registry) Lookup(name string) (*symbol.BuiltinSymbol, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Modules returns every module loaded so far.
func (r *Registry) Modules() []*Module {
	return r.modules
}

// LoadFile parses a single `*-builtin.json` descriptor and registers its
// builtins.
func (r *Registry) LoadFile(path string) (*Module, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading builtin descriptor %s: %w", path, err)
	}

	var desc Descriptor
	if err := json.Unmarshal(raw, &desc); err != nil {
		return nil, fmt.Errorf("parsing builtin descriptor %s: %w", path, err)
	}

	mod := r.install(desc)
	log.Debugf("loaded builtin module %q (%d builtins) from %s", mod.Name, len(mod.Builtins), path)

	return mod, nil
}

// LoadDir loads every `*-builtin.json` file found by a recursive walk of
// dir (spec.md section 6, extended per SPEC_FULL.md D.5 to accept a
// directory in addition to a single file).
func (r *Registry) LoadDir(dir string) ([]*Module, error) {
	var mods []*Module

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), "-builtin.json") {
			return nil
		}

		mod, err := r.LoadFile(path)
		if err != nil {
			return err
		}

		mods = append(mods, mod)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return mods, nil
}

// Load dispatches to LoadFile or LoadDir depending on whether path names a
// directory, matching the `-m/--module` flag's "file-or-dir" contract
// (spec.md section 6).
func (r *Registry) Load(path string) ([]*Module, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return r.LoadDir(path)
	}

	mod, err := r.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return []*Module{mod}, nil
}

func (r *Registry) install(desc Descriptor) *Module {
	zero := source.NewSpan(0, 0)
	builtinSymbols := make([]*symbol.BuiltinSymbol, 0, len(desc.Builtins))
	fields := make([]ast.FieldValue, 0, len(desc.Builtins))

	for _, b := range desc.Builtins {
		params := make([]symbol.ParamKind, len(b.Params))

		for i, p := range b.Params {
			if p.Kind == "Out" {
				params[i] = symbol.Out
			} else {
				params[i] = symbol.In
			}
		}

		sym := symbol.NewBuiltin(r.counter, b.Name, b.FullCppName, params, b.Inlineable, b.InlineOpCode)
		r.byName[b.Name] = sym
		builtinSymbols = append(builtinSymbols, sym)

		fields = append(fields, ast.FieldValue{
			Feature: ast.NewConstantAtom(zero, b.Name),
			Value:   ast.NewConstantBuiltin(zero, sym),
		})
	}

	export := ast.NewRecord(zero, ast.NewConstantAtom(zero, "export"), fields)
	mod := &Module{
		Name:     desc.Name,
		URL:      BootURLPrefix + desc.Name,
		Builtins: builtinSymbols,
		Export:   export,
	}
	r.modules = append(r.modules, mod)

	return mod
}
