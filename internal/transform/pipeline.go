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

package transform

import (
	log "github.com/sirupsen/logrus"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
)

// Pipeline runs the nine documented passes over a single compilation unit
// in order (spec.md section 4): Namer, DesugarFunctor, DesugarClass,
// Desugar, PatternMatcher, ConstantFolding, Unnester, Flattener, CodeGen.
// Per spec.md section 7, a pass runs to completion so it can collect every
// error it finds, but the pipeline aborts before starting the next pass as
// soon as any has been recorded - running a later pass over a tree the
// Namer failed to fully resolve would just produce a cascade of
// meaningless follow-on errors.
type Pipeline struct {
	prog *program.Program
	file *source.File
}

// NewPipeline constructs a Pipeline over prog, attributing any error a pass
// records to file.
func NewPipeline(prog *program.Program, file *source.File) *Pipeline {
	return &Pipeline{prog: prog, file: file}
}

// stage is a single named pipeline step; run is called only if every prior
// stage completed without recording an error.
type stage struct {
	name string
	run  func()
}

// Run resolves and compiles raw, the program's top-level statement as
// produced by the parser, returning the accumulated errors of whichever
// stage first recorded any (nil if compilation succeeded end to end).
func (p *Pipeline) Run(raw ast.Statement) []*source.SyntaxError {
	stages := append([]stage{
		{"namer", func() { NewNamer(p.prog, p.file).Name(raw) }},
	}, p.postNamerStages()...)

	return p.runStages(stages)
}

// RunPostNamer runs every pass after the Namer, assuming the caller has
// already installed a named top-level body via prog.SetTopLevel (used by
// the BaseEnv assembly driver, which names each operand functor separately
// before emitter.MergeBaseFunctors combines them into one top-level body;
// see spec.md section 4.5).
func (p *Pipeline) RunPostNamer() []*source.SyntaxError {
	return p.runStages(p.postNamerStages())
}

func (p *Pipeline) postNamerStages() []stage {
	return []stage{
		{"desugar-functor", func() { DesugarFunctor(p.prog) }},
		{"desugar-class", func() { DesugarClass(p.prog) }},
		{"desugar", func() { Desugar(p.prog) }},
		{"pattern-matcher", func() { NewPatternMatcher(p.prog, p.file).Run() }},
		{"constant-folding", func() { NewConstantFolding(p.prog).Run() }},
		{"unnester", func() { NewUnnester(p.prog).Run() }},
		{"flattener", func() { NewFlattener(p.prog).Run() }},
		{"codegen", func() { NewCodeGen(p.prog).Run() }},
	}
}

func (p *Pipeline) runStages(stages []stage) []*source.SyntaxError {
	for _, st := range stages {
		log.WithField("pass", st.name).Debug("running compiler pass")

		st.run()

		if p.prog.HasErrors() {
			log.WithField("pass", st.name).WithField("errors", len(p.prog.Errors())).
				Warn("pass recorded errors, aborting pipeline")

			return p.prog.Errors()
		}
	}

	return nil
}
