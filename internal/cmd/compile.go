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

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/builtins"
	"github.com/yjaradin/mozart2-bootcompiler/internal/emitter"
	"github.com/yjaradin/mozart2-bootcompiler/internal/parser"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
	"github.com/yjaradin/mozart2-bootcompiler/internal/transform"
)

var compileCmd = &cobra.Command{
	Use:   "compile [files...]",
	Short: "Compile Oz source into a C++ virtual-machine program",
	Run:   runCompile,
}

func init() {
	compileCmd.Flags().Bool("baseenv", false, "assemble a base-environment program")
	compileCmd.Flags().Bool("linker", false, "assemble a linker program (default: module)")
	compileCmd.Flags().StringP("output", "o", "", "output C++ file")
	compileCmd.Flags().StringArrayP("header", "h", nil, "additional C++ header (repeatable)")
	compileCmd.Flags().StringArrayP("module", "m", nil, "builtin-module descriptor file or directory (repeatable)")
	compileCmd.Flags().StringP("base", "b", "", "base-declarations file")
	compileCmd.Flags().StringArrayP("define", "D", nil, "conditional-compilation symbol (repeatable)")
}

// newParser returns the Oz grammar this build links in. No concrete grammar
// is vendored into this repository (spec.md section 1, "Out of scope");
// wiring a real one means replacing this constructor.
func newParser() parser.Parser {
	return parser.Unimplemented()
}

func runCompile(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		fmt.Println("compile: at least one input file is required")
		os.Exit(1)
	}

	baseenv := GetFlag(cmd, "baseenv")
	linker := GetFlag(cmd, "linker")
	output := GetString(cmd, "output")
	headers := GetStringArray(cmd, "header")
	modules := GetStringArray(cmd, "module")
	base := GetString(cmd, "base")
	defines := GetStringArray(cmd, "define")

	files, err := source.ReadFiles(args...)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	prog := program.New()
	reg := builtins.NewRegistry(prog.Counter())
	prog.Builtins = reg

	for _, m := range modules {
		if _, err := reg.Load(m); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}

	var text string

	switch {
	case linker:
		text = assembleLinker(args)
	case baseenv:
		text = assembleBaseEnv(prog, reg, files, base)
	default:
		text = assembleModule(prog, files)
	}

	var w strings.Builder
	w.WriteString(emitter.Defines(defines))
	w.WriteString(emitter.Headers(headers))
	w.WriteString(text)

	if output == "" {
		fmt.Print(w.String())
		return
	}

	if err := os.WriteFile(output, []byte(w.String()), 0o644); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	log.WithField("output", output).Info("wrote generated C++ program")
}

// moduleURL applies spec.md section 6's "URL conventions" for the one case
// this driver has ground truth for: a user module addressed by
// `<name>.ozf`. The `x-oz://system/<name>.ozf` scheme names a fixed
// allow-list of system modules whose actual membership is not recorded
// anywhere in spec.md or the retrieved sources (see DESIGN.md); it is not
// implemented here rather than invented.
func moduleURL(name string) string {
	return name + ".ozf"
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseFunctor parses file's contents as a single functor expression and
// names it on its own terms, without installing a top-level abstraction for
// it (see Namer.NameFunctor): module mode installs the functor's own
// abstraction directly, and base-env mode needs every operand named before
// emitter.MergeBaseFunctors combines them into the one functor a Pipeline
// will actually run over.
func parseFunctor(prog *program.Program, file *source.File, p parser.Parser) (ast.FunctorExpression, error) {
	reader := bufio.NewReader(strings.NewReader(string(file.Contents())))

	expr, err := p.ParseExpression(reader, file, parser.Defines{})
	if err != nil {
		return ast.FunctorExpression{}, err
	}

	raw, ok := expr.(ast.FunctorExpression)
	if !ok {
		return ast.FunctorExpression{}, fmt.Errorf("%s: expected a functor expression", file.Filename())
	}

	return transform.NewNamer(prog, file).NameFunctor(raw), nil
}

// installTopLevel wraps functor in a synthetic bind so the pipeline's
// post-Namer passes (DesugarFunctor in particular, which rewrites only
// prog.TopLevel()'s body) have a reachable top-level statement to find it
// through; the bind's variable is never otherwise referenced.
func installTopLevel(prog *program.Program, name string, functor ast.Expression) {
	at := source.NewSpan(0, 0)
	sym := symbol.NewVariable(prog.Counter(), name)

	bind := ast.NewBind(at, ast.NewVariable(at, sym), functor)

	top := prog.NewAbstraction(nil)
	sym.SetOwner(top.Id())
	prog.SetTopLevel(top.Id(), bind)
	top.SetBody(bind)
}

func assembleModule(prog *program.Program, files []*source.File) string {
	if len(files) != 1 {
		fmt.Println("module mode expects exactly one input file")
		os.Exit(1)
	}

	file := files[0]
	p := newParser()

	functor, err := parseFunctor(prog, file, p)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	installTopLevel(prog, "$module", functor)

	errs := transform.NewPipeline(prog, file).RunPostNamer()
	if errs != nil {
		printSyntaxErrors(errs)
		os.Exit(2)
	}

	var w strings.Builder
	emitter.EmitAbstractions(&w, prog)

	name := baseName(file.Filename())
	w.WriteString(emitter.EmitModule(functor.Abstraction, name, moduleURL(name)))

	return w.String()
}

func assembleBaseEnv(prog *program.Program, reg *builtins.Registry, files []*source.File, baseDeclPath string) string {
	p := newParser()

	var functors []ast.FunctorExpression

	for _, file := range files {
		functor, err := parseFunctor(prog, file, p)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		functors = append(functors, functor)
	}

	merged := emitter.MergeBaseFunctors(prog, functors)

	installTopLevel(prog, "$base", merged)
	prog.IsBaseEnvironment = true

	errs := transform.NewPipeline(prog, files[0]).RunPostNamer()
	if errs != nil {
		printSyntaxErrors(errs)
		os.Exit(2)
	}

	prog.BaseDeclarations = exportedNames(merged)
	diffBaseDeclarations(prog.BaseDeclarations, baseDeclPath)

	bootModules := make(map[string]string, len(reg.Modules()))
	for _, m := range reg.Modules() {
		bootModules[m.Name] = m.URL
	}

	var w strings.Builder
	emitter.EmitAbstractions(&w, prog)
	w.WriteString(emitter.EmitBaseEnv(merged, bootModules))

	return w.String()
}

func exportedNames(f ast.FunctorExpression) []string {
	names := make([]string, 0, len(f.Exports))

	for _, e := range f.Exports {
		if !e.Feature.IsInt {
			names = append(names, e.Feature.Atom)
		}
	}

	return names
}

// diffBaseDeclarations warns about any mismatch between the merged base
// functor's actual exports and the expected list read from path, rather
// than failing the build: the base-declarations file documents an
// expectation, it is not itself authoritative over what the sources define.
func diffBaseDeclarations(actual []string, path string) {
	if path == "" {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	expected := make(map[string]bool)

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			expected[line] = true
		}
	}

	have := make(map[string]bool, len(actual))
	for _, n := range actual {
		have[n] = true

		if !expected[n] {
			log.WithField("name", n).Warn("base environment declares a name absent from the base-declarations file")
		}
	}

	for n := range expected {
		if !have[n] {
			log.WithField("name", n).Warn("base-declarations file lists a name the base environment does not export")
		}
	}
}

func assembleLinker(args []string) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = baseName(a)
	}

	mainName := names[0]

	return emitter.EmitLinker(names, moduleURL(mainName))
}
