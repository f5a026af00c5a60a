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

// Unnester enforces A-normal form (spec.md section 4.2): every argument to
// a call, every operand of a primitive, and every record field value is
// either a Variable or a Constant. Wherever it is not, Unnester introduces
// a synthetic local and a preceding binding, producing a LocalStatement
// whose body contains only flat operations. By the time it runs, the
// Namer/DesugarFunctor/Desugar/PatternMatcher passes have already
// eliminated every raw, functor, sugar, and case-statement node, so the
// node inventory Unnester needs to handle is the flat-operation subset of
// the AST plus still-nested ProcExpression values (the Flattener hoists
// those next).
type Unnester struct {
	prog *program.Program
}

// NewUnnester constructs an Unnester over prog.
func NewUnnester(prog *program.Program) *Unnester {
	return &Unnester{prog: prog}
}

// Run A-normalizes the program's top-level body.
func (u *Unnester) Run() {
	top := u.prog.TopLevel()
	top.SetBody(u.statement(top.Id(), top.Body()))
}

type preBinding struct {
	sym *symbol.VariableSymbol
	val ast.Expression
}

func (u *Unnester) statement(owner symbol.AbstractionID, s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case ast.SequenceStatement:
		stmts := make([]ast.Statement, len(n.Stmts))
		for i, c := range n.Stmts {
			stmts[i] = u.statement(owner, c)
		}

		n.Stmts = stmts

		return n

	case ast.LocalStatement:
		n.Body = u.statement(owner, n.Body)
		return n

	case ast.BindStatement:
		var pre []preBinding

		lhs := u.simplify(owner, n.Lhs, &pre)
		rhs := u.simplify(owner, n.Rhs, &pre)

		return wrapLocals(n.Pos(), pre, ast.NewBind(n.Pos(), lhs, rhs))

	case ast.CallStatement:
		var pre []preBinding

		proc := u.simplify(owner, n.Proc, &pre)
		args := make([]ast.Expression, len(n.Args))

		for i, a := range n.Args {
			args[i] = u.simplify(owner, a, &pre)
		}

		return wrapLocals(n.Pos(), pre, ast.NewCall(n.Pos(), proc, args...))

	case ast.IfStatement:
		var pre []preBinding

		n.Cond = u.simplify(owner, n.Cond, &pre)
		n.Then = u.statement(owner, n.Then)
		n.Else = u.statement(owner, n.Else)

		return wrapLocals(n.Pos(), pre, n)

	case ast.RecordStatement:
		var pre []preBinding

		target := u.simplify(owner, n.Target, &pre)
		label := u.simplify(owner, n.Label, &pre)
		fields := make([]ast.FieldValue, len(n.Fields))

		for i, f := range n.Fields {
			fields[i] = ast.FieldValue{
				Feature: u.simplify(owner, f.Feature, &pre),
				Value:   u.simplify(owner, f.Value, &pre),
			}
		}

		return wrapLocals(n.Pos(), pre, ast.NewRecordStatement(n.Pos(), target, label, fields))

	case ast.SkipStatement:
		return n

	case ast.ThreadStatement:
		n.Body = u.statement(owner, n.Body)
		return n

	case ast.TryStatement:
		n.Body = u.statement(owner, n.Body)
		n.Catch = u.statement(owner, n.Catch)

		if n.Finally != nil {
			n.Finally = u.statement(owner, n.Finally)
		}

		return n

	case ast.RaiseStatement:
		var pre []preBinding

		val := u.simplify(owner, n.Value, &pre)

		return wrapLocals(n.Pos(), pre, ast.NewRaise(n.Pos(), val))

	case ast.FunctorApplyStatement:
		var pre []preBinding

		target := u.simplify(owner, n.Target, &pre)
		functor := u.simplify(owner, n.Functor, &pre)
		imp := u.simplify(owner, n.Import, &pre)

		return wrapLocals(n.Pos(), pre, ast.NewFunctorApply(n.Pos(), target, functor, imp))

	default:
		panic(fmt.Sprintf("internal error: unhandled statement variant %T reached Unnester", s))
	}
}

// simplify reduces e to a Variable or Constant, appending whatever
// preceding bindings are necessary to *pre in evaluation order.
func (u *Unnester) simplify(owner symbol.AbstractionID, e ast.Expression, pre *[]preBinding) ast.Expression {
	switch n := e.(type) {
	case ast.Variable:
		return n

	case ast.ConstantAtom, ast.ConstantInt, ast.ConstantFloat, ast.ConstantBool,
		ast.ConstantUnit, ast.ConstantBuiltin, ast.ConstantCodeArea, ast.ConstantArity:
		return n

	case ast.RecordExpression:
		label := u.simplify(owner, n.Label, pre)
		fields := make([]ast.FieldValue, len(n.Fields))

		for i, f := range n.Fields {
			fields[i] = ast.FieldValue{Feature: u.simplify(owner, f.Feature, pre), Value: u.simplify(owner, f.Value, pre)}
		}

		return u.bind(owner, ast.NewRecord(n.Pos(), label, fields), pre)

	case ast.FeatureAccess:
		record := u.simplify(owner, n.Record, pre)
		feature := u.simplify(owner, n.Feature, pre)

		return u.bind(owner, ast.NewFeatureAccess(n.Pos(), record, feature), pre)

	case ast.ProcExpression:
		n.Body = u.statement(n.Abstraction, n.Body)
		return u.bind(owner, n, pre)

	default:
		panic(fmt.Sprintf("internal error: unhandled expression variant %T reached Unnester", e))
	}
}

func (u *Unnester) bind(owner symbol.AbstractionID, val ast.Expression, pre *[]preBinding) ast.Expression {
	sym := symbol.NewSynthetic(u.prog.Counter(), "t")
	sym.SetOwner(owner)

	*pre = append(*pre, preBinding{sym, val})

	return ast.NewVariable(val.Pos(), sym)
}

func wrapLocals(_ source.Span, pre []preBinding, body ast.Statement) ast.Statement {
	if len(pre) == 0 {
		return body
	}

	decls := make([]*symbol.VariableSymbol, len(pre))
	stmts := make([]ast.Statement, 0, len(pre)+1)

	for i, p := range pre {
		decls[i] = p.sym
		stmts = append(stmts, ast.NewBind(p.val.Pos(), ast.NewVariable(p.val.Pos(), p.sym), p.val))
	}

	stmts = append(stmts, body)

	return ast.NewLocal(body.Pos(), decls, ast.NewSequence(body.Pos(), stmts...))
}
