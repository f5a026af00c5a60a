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
	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// PatternMatcher compiles CaseStatement into a decision tree of
// record-tag/feature tests and bindings (spec.md section 4.2): each arm
// becomes a guarded branch testing the scrutinee's label (and, for a
// closed-tail record pattern, its full arity) before binding its fields
// and falling through to the next arm or the default on failure.
//
// These tests are against VM intrinsics that have no JSON descriptor (they
// are primitive opcodes of the target machine, not boot-module procedures,
// see spec.md section 4.3's opcode model), so the matcher mints its own
// BuiltinSymbols for them rather than going through the builtins.Registry.
//
// MatchExpression (a pattern match used in expression rather than
// statement position) is out of scope for this pass: the end-to-end
// scenarios of spec.md section 8 only exercise CaseStatement, and a
// well-formed input is expected to already express value-producing
// pattern matches via a local statement and an explicit result binding
// (the same convention a `fun` body uses for its own result). A bare
// MatchExpression survives to this pass, it is reported as unsupported.
type PatternMatcher struct {
	prog *program.Program
	file *source.File

	equals   *symbol.BuiltinSymbol
	testTag  *symbol.BuiltinSymbol
	testArit *symbol.BuiltinSymbol
}

// NewPatternMatcher constructs a PatternMatcher over prog, attributing any
// error it records to file.
func NewPatternMatcher(prog *program.Program, file *source.File) *PatternMatcher {
	return &PatternMatcher{
		prog: prog,
		file: file,
		equals: symbol.NewBuiltin(prog.Counter(), "ValueEquals", "OzValues::valueEquals",
			[]symbol.ParamKind{symbol.In, symbol.In, symbol.Out}, false, 0),
		testTag: symbol.NewBuiltin(prog.Counter(), "TestLabel", "OzValues::testLabel",
			[]symbol.ParamKind{symbol.In, symbol.In, symbol.Out}, false, 0),
		testArit: symbol.NewBuiltin(prog.Counter(), "TestArity", "OzValues::testArity",
			[]symbol.ParamKind{symbol.In, symbol.In, symbol.Out}, false, 0),
	}
}

// Run rewrites every CaseStatement reachable from the program's top-level
// body into its compiled decision-tree form.
func (pm *PatternMatcher) Run() {
	top := pm.prog.TopLevel()

	w := &abstractionWalker{
		Stmt: func(owner symbol.AbstractionID, s ast.Statement) ast.Statement {
			if c, ok := s.(ast.CaseStatement); ok {
				return pm.compileCase(owner, c)
			}

			return s
		},
		Expr: func(owner symbol.AbstractionID, e ast.Expression) ast.Expression {
			if m, ok := e.(ast.MatchExpression); ok {
				pm.prog.AddError(pm.file, m.Pos(),
					"match expressions are not supported; rewrite as a case statement with an explicit result binding")

				return ast.NewConstantUnit(m.Pos())
			}

			return e
		},
	}

	top.SetBody(w.walkStatement(top.Id(), top.Body()))
}

func (pm *PatternMatcher) compileCase(owner symbol.AbstractionID, c ast.CaseStatement) ast.Statement {
	fallthroughStmt := ast.Statement(c.Default)
	if fallthroughStmt == nil {
		fallthroughStmt = ast.NewRaise(c.Pos(), ast.NewConstantAtom(c.Pos(), "matchFailure"))
	}

	for i := len(c.Arms) - 1; i >= 0; i-- {
		arm := c.Arms[i]

		then := arm.Body
		if arm.Guard != nil {
			then = ast.NewIf(arm.Body.Pos(), arm.Guard, arm.Body, fallthroughStmt)
		}

		fallthroughStmt = pm.compilePattern(owner, c.Scrutinee, arm.Pattern, then, fallthroughStmt)
	}

	return fallthroughStmt
}

// compilePattern returns a statement that, given value already bound,
// either runs then (having bound whatever pat introduces) or falls
// through to els.
func (pm *PatternMatcher) compilePattern(owner symbol.AbstractionID, value ast.Expression, pat ast.Pattern,
	then, els ast.Statement) ast.Statement {
	at := pat.Pos()

	switch p := pat.(type) {
	case ast.WildcardPattern:
		return then

	case ast.BindingPattern:
		return ast.NewSequence(at, ast.NewBind(at, ast.NewVariable(at, p.Symbol), value), then)

	case ast.LiteralPattern:
		result := symbol.NewSynthetic(pm.prog.Counter(), "eq")
		result.SetOwner(owner)

		call := ast.NewCall(at, ast.NewConstantBuiltin(at, pm.equals), value, p.Value, ast.NewVariable(at, result))
		test := ast.NewIf(at, ast.NewVariable(at, result), then, els)

		return ast.NewLocal(at, []*symbol.VariableSymbol{result}, ast.NewSequence(at, call, test))

	case ast.RecordPattern:
		return pm.compileRecordPattern(owner, value, p, then, els)

	default:
		pm.prog.AddError(pm.file, at, "unsupported pattern kind")
		return els
	}
}

func (pm *PatternMatcher) compileRecordPattern(owner symbol.AbstractionID, value ast.Expression, p ast.RecordPattern,
	then, els ast.Statement) ast.Statement {
	at := p.Pos()

	// Bind each field before testing (fields are accessed unconditionally
	// once the label/arity test has passed, so the binds live inside the
	// test's Then branch).
	body := then

	for i := len(p.Fields) - 1; i >= 0; i-- {
		f := p.Fields[i]
		access := featureAccess(at, value, f.Feature)
		body = pm.compilePattern(owner, access, f.Value, body, els)
	}

	result := symbol.NewSynthetic(pm.prog.Counter(), "tag")
	result.SetOwner(owner)

	var testExpr ast.Expression

	var testBuiltin *symbol.BuiltinSymbol

	if p.Tail == ast.ClosedTail {
		features := make([]ast.Feature, len(p.Fields))
		for i, f := range p.Fields {
			features[i] = f.Feature
		}

		testExpr = ast.NewConstantArity(at, p.Label, features)
		testBuiltin = pm.testArit
	} else {
		testExpr = ast.NewConstantAtom(at, p.Label)
		testBuiltin = pm.testTag
	}

	call := ast.NewCall(at, ast.NewConstantBuiltin(at, testBuiltin), value, testExpr, ast.NewVariable(at, result))
	test := ast.NewIf(at, ast.NewVariable(at, result), body, els)

	return ast.NewLocal(at, []*symbol.VariableSymbol{result}, ast.NewSequence(at, call, test))
}
