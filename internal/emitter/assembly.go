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

package emitter

import (
	"fmt"
	"strings"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// EmitModule renders the module-mode entry point (spec.md section 4.5):
// createFunctor_<name> builds the functor's own abstraction (functorAbs,
// the arena slot the Namer allocated for its require/imports/define scope,
// distinct from whatever abstraction wraps the compilation unit as a
// whole) into a procedure value and registers it under url.
func EmitModule(functorAbs symbol.AbstractionID, name, url string) string {
	var w strings.Builder

	fmt.Fprintf(&w, "void createFunctor_%s(VM vm) {\n", name)
	fmt.Fprintf(&w, "\tUnstableNode area = createCodeArea%d(vm);\n", functorAbs)
	fmt.Fprintf(&w, "\tUnstableNode functor = Abstraction::build(vm, area, 1, nullptr);\n")
	fmt.Fprintf(&w, "\tBootMM::registerFunctor(vm, %q, functor);\n", url)
	w.WriteString("}\n")

	return w.String()
}

// EmitLinker renders the linker-mode entry point: createRunThread plus
// main(), which constructs the VM, builds the base environment, creates
// every functor, runs the VM, invokes createRunThread, and runs again
// (spec.md section 6, "Generated C++ contract").
func EmitLinker(moduleNames []string, mainURL string) string {
	var w strings.Builder

	w.WriteString("void createRunThread(VM vm) {\n")
	fmt.Fprintf(&w, "\tBootMM::run(vm, %q);\n", mainURL)
	w.WriteString("}\n\n")

	w.WriteString("int main(int argc, char** argv) {\n")
	w.WriteString("\tVM vm = VirtualMachine::build();\n")
	w.WriteString("\tcreateBaseEnv(vm);\n")

	for _, m := range moduleNames {
		fmt.Fprintf(&w, "\tcreateFunctor_%s(vm);\n", m)
	}

	w.WriteString("\tvm->run();\n")
	w.WriteString("\tcreateRunThread(vm);\n")
	w.WriteString("\tvm->run();\n")
	w.WriteString("\treturn 0;\n")
	w.WriteString("}\n")

	return w.String()
}

// EmitBaseEnv renders createBaseEnv: it builds the import record from
// bootURLs, applies the merged base functor to it, binds the result to the
// base-env variable, binds the conventional Base feature to itself, fetches
// $BootMM, and registers each boot module (spec.md section 4.5, "BaseEnv
// mode").
func EmitBaseEnv(merged ast.FunctorExpression, bootModules map[string]string) string {
	var w strings.Builder

	w.WriteString("void createBaseEnv(VM vm) {\n")
	fmt.Fprintf(&w, "\tUnstableNode area = createCodeArea%d(vm);\n", merged.Abstraction)
	w.WriteString("\tUnstableNode functor = Abstraction::build(vm, area, 1, nullptr);\n\n")

	w.WriteString("\tUnstableNode import_ = Record::build(vm, \"import\");\n")

	for _, req := range merged.Require {
		fmt.Fprintf(&w, "\tOZ_addFeature(vm, import_, %s, BootMM::lookup(vm, %q));\n",
			featureLiteral(req.Feature), req.URL)
	}

	w.WriteString("\n\tUnstableNode base;\n")
	w.WriteString("\tApply::build(vm, base, functor, import_);\n\n")

	w.WriteString("\tOZ_addFeature(vm, base, OZ_newAtom(vm, \"Base\"), base);\n\n")

	w.WriteString("\tUnstableNode bootMM = OZ_getFeature(vm, base, OZ_newAtom(vm, \"$BootMM\"));\n")
	w.WriteString("\tBootMM::install(vm, bootMM);\n\n")

	for name, url := range bootModules {
		fmt.Fprintf(&w, "\tBootMM::registerModule(vm, %q, %q);\n", url, name)
	}

	w.WriteString("}\n")

	return w.String()
}

func featureLiteral(f ast.Feature) string {
	if f.IsInt {
		return fmt.Sprintf("OZ_newInt(vm, %d)", f.Int)
	}

	return fmt.Sprintf("OZ_newAtom(vm, %q)", f.Atom)
}

// MergeBaseFunctors concatenates require/imports/exports and sequences
// prepare/define across operands into a single functor owned by a freshly
// allocated abstraction, per spec.md section 4.5's "BaseEnv mode" and
// section 8, invariant 8 ("given two base functors with disjoint exports,
// mergeBaseFunctors yields a functor whose exports equal the
// concatenation"). Every declared local of every operand is re-minted under
// the merged abstraction so a single later DesugarFunctor/Flattener pass
// over the merged body sees one consistent owner throughout (spec.md
// section 9, "cyclic ownership"); mergeBaseFunctors is the one place that
// reaches past the ordinary pass pipeline to reconcile two independently
// named abstractions into one.
func MergeBaseFunctors(prog *program.Program, functors []ast.FunctorExpression) ast.FunctorExpression {
	if len(functors) == 0 {
		panic("internal error: MergeBaseFunctors called with no operands")
	}

	target := prog.NewAbstraction(nil)

	var (
		name     string
		require  []ast.ImportSpec
		imports  []ast.ImportSpec
		exports  []ast.ExportSpec
		prepares []ast.Statement
		defines  []ast.Statement
	)

	for _, fn := range functors {
		if name == "" {
			name = fn.Name
		}

		remap := collectLocals(prog, target.Id(), fn)

		subst := make(map[uint64]ast.Expression, len(remap))
		for old, fresh := range remap {
			subst[old] = ast.NewVariable(fn.Pos(), fresh)
		}

		reownSite := func(s ast.Statement) ast.Statement {
			return reownDecls(remap, s)
		}

		for _, req := range fn.Require {
			require = append(require, ast.ImportSpec{Variable: reownSymbol(remap, req.Variable), URL: req.URL, Feature: req.Feature})
		}

		for _, imp := range fn.Imports {
			imports = append(imports, ast.ImportSpec{Variable: reownSymbol(remap, imp.Variable), URL: imp.URL, Feature: imp.Feature})
		}

		if fn.Prepare != nil {
			prepares = append(prepares, ast.Substitute(reownSite(fn.Prepare), subst))
		}

		defines = append(defines, ast.Substitute(reownSite(fn.Define), subst))

		for _, exp := range fn.Exports {
			exports = append(exports, ast.ExportSpec{Feature: exp.Feature, Variable: reownSymbol(remap, exp.Variable)})
		}
	}

	var prepare ast.Statement
	if len(prepares) > 0 {
		prepare = ast.NewSequence(functors[0].Pos(), prepares...)
	}

	define := ast.NewSequence(functors[0].Pos(), defines...)

	return ast.NewFunctor(functors[0].Pos(), target.Id(), name, require, prepare, imports, define, exports)
}

// collectLocals walks fn's prepare/define bodies, minting a fresh
// VariableSymbol (owned by newOwner) for every locally declared symbol
// (LocalStatement.Decls, BindingPattern.Symbol), and likewise for every
// require/imports/exports variable, which lives on a FunctorExpression field
// rather than inside the statement tree.
func collectLocals(prog *program.Program, newOwner symbol.AbstractionID, fn ast.FunctorExpression) map[uint64]*symbol.VariableSymbol {
	remap := make(map[uint64]*symbol.VariableSymbol)

	ensure := func(old *symbol.VariableSymbol) {
		if _, ok := remap[old.Id()]; ok {
			return
		}

		fresh := symbol.NewVariable(prog.Counter(), old.Name())
		fresh.SetOwner(newOwner)
		remap[old.Id()] = fresh
	}

	for _, req := range fn.Require {
		ensure(req.Variable)
	}

	for _, imp := range fn.Imports {
		ensure(imp.Variable)
	}

	for _, exp := range fn.Exports {
		ensure(exp.Variable)
	}

	collector := &ast.Rewriter{
		Stmt: func(s ast.Statement) ast.Statement {
			if l, ok := s.(ast.LocalStatement); ok {
				for _, d := range l.Decls {
					ensure(d)
				}
			}

			return s
		},
		Pat: func(p ast.Pattern) ast.Pattern {
			if b, ok := p.(ast.BindingPattern); ok {
				ensure(b.Symbol)
			}

			return p
		},
	}

	if fn.Prepare != nil {
		collector.RewriteStatement(fn.Prepare)
	}

	collector.RewriteStatement(fn.Define)

	return remap
}

// reownSymbol returns remap's replacement for old, or old unchanged if
// collectLocals never registered it (e.g. it was never itself declared within this
// functor's own scope).
func reownSymbol(remap map[uint64]*symbol.VariableSymbol, old *symbol.VariableSymbol) *symbol.VariableSymbol {
	if fresh, ok := remap[old.Id()]; ok {
		return fresh
	}

	return old
}

// reownDecls rewrites every LocalStatement.Decls entry and BindingPattern
// symbol in s to its remapped replacement; Variable reference sites are
// handled separately by ast.Substitute.
func reownDecls(remap map[uint64]*symbol.VariableSymbol, s ast.Statement) ast.Statement {
	rw := &ast.Rewriter{
		Stmt: func(s ast.Statement) ast.Statement {
			l, ok := s.(ast.LocalStatement)
			if !ok {
				return s
			}

			decls := make([]*symbol.VariableSymbol, len(l.Decls))
			for i, d := range l.Decls {
				decls[i] = reownSymbol(remap, d)
			}

			l.Decls = decls

			return l
		},
		Pat: func(p ast.Pattern) ast.Pattern {
			b, ok := p.(ast.BindingPattern)
			if !ok {
				return p
			}

			b.Symbol = reownSymbol(remap, b.Symbol)

			return b
		},
	}

	return rw.RewriteStatement(s)
}
