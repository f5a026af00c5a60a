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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yjaradin/mozart2-bootcompiler/internal/builtins"
	"github.com/yjaradin/mozart2-bootcompiler/internal/inspect"
	"github.com/yjaradin/mozart2-bootcompiler/internal/parser"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/transform"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Disassemble a compiled functor's code areas",
	Run:   runInspect,
}

func init() {
	inspectCmd.Flags().StringArrayP("module", "m", nil, "builtin-module descriptor file or directory (repeatable)")
}

func runInspect(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("inspect: exactly one input file is required")
		os.Exit(1)
	}

	modules := GetStringArray(cmd, "module")

	files, err := source.ReadFiles(args[0])
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

	file := files[0]

	functor, err := parseFunctor(prog, file, newParser())
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

	var lines []string

	for _, abs := range prog.Abstractions() {
		lines = append(lines, inspect.Header(abs))
		lines = append(lines, inspect.Disassemble(abs).Render(true)...)
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("entry functor abstraction: %d", functor.Abstraction))

	if err := inspect.Page(os.Stdout, lines); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
