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
	"fmt"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// Namer resolves every RawVariable/RawLocalStatement/RawBindingPattern/
// RawProcExpression/RawFunExpression node of a raw parsed tree into its
// resolved counterpart over fresh VariableSymbols, per spec.md section 4.1.
// It also allocates the Abstraction arena slot for the top-level statement
// and for every nested procedure/function value, so that by the time the
// Namer finishes, every VariableSymbol it has touched has a defined owner
// (spec.md section 8, invariant 1).  Closure-capture bookkeeping (which
// symbols become globals of which abstraction) is entirely the Flattener's
// job: the Namer only resolves identity, it never inspects which
// abstraction a resolved symbol's owner is relative to the one doing the
// referencing.
type Namer struct {
	prog *program.Program
	file *source.File
}

// NewNamer constructs a Namer over prog, attributing any error it records
// to file.
func NewNamer(prog *program.Program, file *source.File) *Namer {
	return &Namer{prog: prog, file: file}
}

// nameCtx threads the enclosing abstraction (for newly minted symbols'
// ownership) and lexical scope frame through recursion without polluting
// every method's argument list by hand.
type nameCtx struct {
	n   *Namer
	abs *program.Abstraction
	sc  *scope
}

func (c nameCtx) push() nameCtx {
	return nameCtx{c.n, c.abs, newScope(c.sc)}
}

func (c nameCtx) withAbstraction(abs *program.Abstraction) nameCtx {
	return nameCtx{c.n, abs, newScope(c.sc)}
}

// declare mints a fresh VariableSymbol for name, owned by the context's
// current abstraction, binds it in the current frame, and records it as a
// local of that abstraction.  A name already declared directly in this
// frame is a duplicate-declaration error; a fresh symbol is still minted so
// the rest of the pass can proceed (spec.md section 7, "a pass runs to
// completion to collect all errors").
func (c nameCtx) declare(at source.Span, name string) *symbol.VariableSymbol {
	if c.sc.declared(name) {
		c.n.prog.AddError(c.n.file, at, fmt.Sprintf("duplicate declaration of %q in this scope", name))
	}

	sym := symbol.NewVariable(c.n.prog.Counter(), name)
	sym.SetOwner(c.abs.Id())
	c.abs.AddLocal(sym)
	c.sc.bind(name, sym)

	return sym
}

// declareFormal mints a fresh formal parameter symbol but does not bind an
// owner: the caller sets the owner of every formal once the abstraction's
// formal list is complete.
func (c nameCtx) declareFormal(name string) *symbol.VariableSymbol {
	return symbol.NewFormal(c.n.prog.Counter(), name)
}

func (c nameCtx) resolve(at source.Span, name string) *symbol.VariableSymbol {
	if sym, ok := c.sc.resolve(name); ok {
		return sym
	}

	c.n.prog.AddError(c.n.file, at, fmt.Sprintf("%q is not declared in this scope", name))

	// Mint a throwaway symbol so the rest of the pass has something well
	// formed to chew on; the pipeline aborts after this pass regardless,
	// since an error was recorded.
	sym := symbol.NewVariable(c.n.prog.Counter(), name)
	sym.SetOwner(c.abs.Id())

	return sym
}

// Name resolves stmt as the program's top-level statement, allocating the
// distinguished TopLevelAbstraction for it.
func (n *Namer) Name(stmt ast.Statement) ast.Statement {
	top := n.prog.NewAbstraction(nil)
	n.prog.SetTopLevel(top.Id(), stmt)

	ctx := nameCtx{n: n, abs: top, sc: newScope(nil)}
	body := ctx.statement(stmt)
	top.SetBody(body)

	return body
}

// NameFunctor resolves a single functor expression's require, imports,
// prepare, define and exports clauses without installing a top-level
// abstraction for it.  Used when several base functors must each be named
// independently before emitter.MergeBaseFunctors combines them into the
// one functor a Pipeline will actually run over (spec.md section 4.5,
// "BaseEnv mode"); Namer.Name always wraps its argument in a fresh
// top-level abstraction, which is the wrong shape for an operand that is
// about to be merged away.
func (n *Namer) NameFunctor(f ast.FunctorExpression) ast.FunctorExpression {
	ctx := nameCtx{n: n, sc: newScope(nil)}
	return ctx.nameFunctor(f).(ast.FunctorExpression)
}

func (c nameCtx) statement(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case ast.SequenceStatement:
		stmts := make([]ast.Statement, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = c.statement(st)
		}

		return ast.NewSequence(n.Pos(), stmts...)

	case ast.RawLocalStatement:
		inner := c.push()

		decls := make([]*symbol.VariableSymbol, len(n.Names))
		for i, name := range n.Names {
			decls[i] = inner.declare(n.Pos(), name)
		}

		return ast.NewLocal(n.Pos(), decls, inner.statement(n.Body))

	case ast.LocalStatement:
		// Already resolved (defensive: a later pass may re-run the Namer
		// over its own output in a test).
		inner := c.push()
		for _, d := range n.Decls {
			inner.sc.bind(d.Name(), d)
		}

		n.Body = inner.statement(n.Body)

		return n

	case ast.BindStatement:
		n.Lhs = c.expression(n.Lhs)
		n.Rhs = c.expression(n.Rhs)

		return n

	case ast.CallStatement:
		n.Proc = c.expression(n.Proc)
		args := make([]ast.Expression, len(n.Args))

		for i, a := range n.Args {
			args[i] = c.expression(a)
		}

		n.Args = args

		return n

	case ast.IfStatement:
		n.Cond = c.expression(n.Cond)
		n.Then = c.statement(n.Then)

		if n.Else == nil {
			n.Else = ast.NewSkip(n.Pos())
		} else {
			n.Else = c.statement(n.Else)
		}

		return n

	case ast.CaseStatement:
		n.Scrutinee = c.expression(n.Scrutinee)
		arms := make([]ast.CaseArm, len(n.Arms))

		for i, a := range n.Arms {
			armCtx := c.push()
			pat := armCtx.pattern(a.Pattern)

			var guard ast.Expression
			if a.Guard != nil {
				guard = armCtx.expression(a.Guard)
			}

			arms[i] = ast.CaseArm{Pattern: pat, Guard: guard, Body: armCtx.statement(a.Body)}
		}

		n.Arms = arms
		if n.Default != nil {
			n.Default = c.statement(n.Default)
		}

		return n

	case ast.RecordStatement:
		n.Target = c.expression(n.Target)
		n.Label = c.expression(n.Label)
		n.Fields = c.fields(n.Fields)

		return n

	case ast.SkipStatement:
		return n

	case ast.ThreadStatement:
		n.Body = c.statement(n.Body)
		return n

	case ast.TryStatement:
		n.Body = c.statement(n.Body)

		catchCtx := c.push()
		n.Pattern = catchCtx.pattern(n.Pattern)
		n.Catch = catchCtx.statement(n.Catch)

		if n.Finally != nil {
			n.Finally = c.statement(n.Finally)
		}

		return n

	case ast.RaiseStatement:
		n.Value = c.expression(n.Value)
		return n

	case ast.FunctorApplyStatement:
		n.Target = c.expression(n.Target)
		n.Functor = c.expression(n.Functor)
		n.Import = c.expression(n.Import)

		return n

	default:
		panic(fmt.Sprintf("internal error: unhandled statement variant %T in Namer", s))
	}
}

func (c nameCtx) expression(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case ast.RawVariable:
		return ast.NewVariable(n.Pos(), c.resolve(n.Pos(), n.Name))

	case ast.Variable:
		return n

	case ast.ConstantAtom, ast.ConstantInt, ast.ConstantFloat, ast.ConstantBool,
		ast.ConstantUnit, ast.ConstantBuiltin, ast.ConstantCodeArea, ast.ConstantArity:
		return n

	case ast.RecordExpression:
		n.Label = c.expression(n.Label)
		n.Fields = c.fields(n.Fields)

		return n

	case ast.TupleExpression:
		n.Label = c.expression(n.Label)
		elems := make([]ast.Expression, len(n.Elements))

		for i, el := range n.Elements {
			elems[i] = c.expression(el)
		}

		n.Elements = elems

		return n

	case ast.FeatureAccess:
		n.Record = c.expression(n.Record)
		n.Feature = c.expression(n.Feature)

		return n

	case ast.RawProcExpression:
		abs := c.n.prog.NewAbstraction(nil)
		formals := make([]*symbol.VariableSymbol, len(n.FormalNames))
		inner := c.withAbstraction(abs)

		for i, name := range n.FormalNames {
			formals[i] = inner.declareFormal(name)
			inner.sc.bind(name, formals[i])
		}

		abs.SetFormals(formals)
		for _, f := range formals {
			f.SetOwner(abs.Id())
		}

		body := inner.statement(n.Body)

		return ast.NewProc(n.Pos(), abs.Id(), formals, body)

	case ast.RawFunExpression:
		abs := c.n.prog.NewAbstraction(nil)
		formals := make([]*symbol.VariableSymbol, len(n.FormalNames))
		inner := c.withAbstraction(abs)

		for i, name := range n.FormalNames {
			formals[i] = inner.declareFormal(name)
			inner.sc.bind(name, formals[i])
		}

		result := inner.declareFormal(n.ResultName)
		inner.sc.bind(n.ResultName, result)

		abs.SetFormals(append(append([]*symbol.VariableSymbol{}, formals...), result))
		for _, f := range formals {
			f.SetOwner(abs.Id())
		}

		result.SetOwner(abs.Id())

		body := inner.statement(n.Body)

		return ast.NewFun(n.Pos(), abs.Id(), formals, result, body)

	case ast.ProcExpression, ast.FunExpression:
		// Already resolved; passed through unchanged.
		return n

	case ast.MatchExpression:
		n.Scrutinee = c.expression(n.Scrutinee)
		arms := make([]ast.MatchArm, len(n.Arms))

		for i, a := range n.Arms {
			armCtx := c.push()
			pat := armCtx.pattern(a.Pattern)

			var guard ast.Expression
			if a.Guard != nil {
				guard = armCtx.expression(a.Guard)
			}

			arms[i] = ast.MatchArm{Pattern: pat, Guard: guard, Value: armCtx.expression(a.Value)}
		}

		n.Arms = arms
		if n.Default != nil {
			n.Default = c.expression(n.Default)
		}

		return n

	case ast.FunctorExpression:
		return c.nameFunctor(n)

	case ast.CreateAbstraction:
		captured := make([]ast.Expression, len(n.Captured))
		for i, ce := range n.Captured {
			captured[i] = c.expression(ce)
		}

		n.Captured = captured

		return n

	default:
		panic(fmt.Sprintf("internal error: unhandled expression variant %T in Namer", e))
	}
}

// nameFunctor resolves a functor's require/prepare/imports/define/exports
// clauses in order: require binds before prepare is named, and imports bind
// after prepare but before define, so prepare cannot see the imports.
func (c nameCtx) nameFunctor(n ast.FunctorExpression) ast.Expression {
	abs := c.n.prog.NewAbstraction(nil)
	inner := c.withAbstraction(abs)

	require := make([]ast.ImportSpec, len(n.Require))
	for i, imp := range n.Require {
		sym := inner.declare(n.Pos(), imp.Variable.Name())
		require[i] = ast.ImportSpec{Variable: sym, URL: imp.URL, Feature: imp.Feature}
	}

	var prepare ast.Statement
	if n.Prepare != nil {
		prepare = inner.statement(n.Prepare)
	}

	imports := make([]ast.ImportSpec, len(n.Imports))
	for i, imp := range n.Imports {
		sym := inner.declare(n.Pos(), imp.Variable.Name())
		imports[i] = ast.ImportSpec{Variable: sym, URL: imp.URL, Feature: imp.Feature}
	}

	define := inner.statement(n.Define)

	exports := make([]ast.ExportSpec, len(n.Exports))
	for i, exp := range n.Exports {
		exports[i] = ast.ExportSpec{Feature: exp.Feature, Variable: inner.resolve(n.Pos(), exp.Variable.Name())}
	}

	return ast.NewFunctor(n.Pos(), abs.Id(), n.Name, require, prepare, imports, define, exports)
}

func (c nameCtx) pattern(p ast.Pattern) ast.Pattern {
	switch n := p.(type) {
	case ast.WildcardPattern:
		return n

	case ast.RawBindingPattern:
		return ast.NewBindingPattern(n.Pos(), c.declare(n.Pos(), n.Name))

	case ast.BindingPattern:
		return n

	case ast.LiteralPattern:
		n.Value = c.expression(n.Value).(ast.Constant)
		return n

	case ast.RecordPattern:
		fields := make([]ast.FieldPattern, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = ast.FieldPattern{Feature: f.Feature, Value: c.pattern(f.Value)}
		}

		n.Fields = fields

		return n

	default:
		panic(fmt.Sprintf("internal error: unhandled pattern variant %T in Namer", p))
	}
}

func (c nameCtx) fields(fields []ast.FieldValue) []ast.FieldValue {
	out := make([]ast.FieldValue, len(fields))
	for i, f := range fields {
		out[i] = ast.FieldValue{Feature: c.expression(f.Feature), Value: c.expression(f.Value)}
	}

	return out
}
