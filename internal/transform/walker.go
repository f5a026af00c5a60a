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
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// abstractionWalker is the TreeCopier role used by PatternMatcher,
// ConstantFolding and the Flattener: like ast.Rewriter, it reconstructs a
// node bottom-up from its rewritten children, but it also tracks which
// Abstraction the node currently being visited belongs to, switching
// context whenever it descends into a ProcExpression/FunExpression's body.
// A pass that mints a fresh symbol (PatternMatcher's test temporaries)
// needs to know which abstraction owns it; a plain ast.Rewriter has no such
// notion.  The Unnester and CodeGen track the owner in their own recursion.
type abstractionWalker struct {
	Stmt func(owner symbol.AbstractionID, s ast.Statement) ast.Statement
	Expr func(owner symbol.AbstractionID, e ast.Expression) ast.Expression
	Pat  func(owner symbol.AbstractionID, p ast.Pattern) ast.Pattern
}

func (w *abstractionWalker) stmt(owner symbol.AbstractionID, s ast.Statement) ast.Statement {
	if w.Stmt != nil {
		return w.Stmt(owner, s)
	}

	return s
}

func (w *abstractionWalker) expr(owner symbol.AbstractionID, e ast.Expression) ast.Expression {
	if w.Expr != nil {
		return w.Expr(owner, e)
	}

	return e
}

func (w *abstractionWalker) pat(owner symbol.AbstractionID, p ast.Pattern) ast.Pattern {
	if w.Pat != nil {
		return w.Pat(owner, p)
	}

	return p
}

func (w *abstractionWalker) walkStatement(owner symbol.AbstractionID, s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case ast.SequenceStatement:
		stmts := make([]ast.Statement, len(n.Stmts))
		for i, c := range n.Stmts {
			stmts[i] = w.walkStatement(owner, c)
		}

		n.Stmts = stmts

		return w.stmt(owner, n)

	case ast.LocalStatement:
		n.Body = w.walkStatement(owner, n.Body)
		return w.stmt(owner, n)

	case ast.BindStatement:
		n.Lhs = w.walkExpression(owner, n.Lhs)
		n.Rhs = w.walkExpression(owner, n.Rhs)

		return w.stmt(owner, n)

	case ast.CallStatement:
		n.Proc = w.walkExpression(owner, n.Proc)
		args := make([]ast.Expression, len(n.Args))

		for i, a := range n.Args {
			args[i] = w.walkExpression(owner, a)
		}

		n.Args = args

		return w.stmt(owner, n)

	case ast.IfStatement:
		n.Cond = w.walkExpression(owner, n.Cond)
		n.Then = w.walkStatement(owner, n.Then)
		n.Else = w.walkStatement(owner, n.Else)

		return w.stmt(owner, n)

	case ast.CaseStatement:
		n.Scrutinee = w.walkExpression(owner, n.Scrutinee)
		arms := make([]ast.CaseArm, len(n.Arms))

		for i, a := range n.Arms {
			arm := ast.CaseArm{Pattern: w.pat(owner, a.Pattern), Body: w.walkStatement(owner, a.Body)}
			if a.Guard != nil {
				arm.Guard = w.walkExpression(owner, a.Guard)
			}

			arms[i] = arm
		}

		n.Arms = arms
		if n.Default != nil {
			n.Default = w.walkStatement(owner, n.Default)
		}

		return w.stmt(owner, n)

	case ast.RecordStatement:
		n.Target = w.walkExpression(owner, n.Target)
		n.Label = w.walkExpression(owner, n.Label)
		n.Fields = w.walkFields(owner, n.Fields)

		return w.stmt(owner, n)

	case ast.SkipStatement:
		return w.stmt(owner, n)

	case ast.ThreadStatement:
		n.Body = w.walkStatement(owner, n.Body)
		return w.stmt(owner, n)

	case ast.TryStatement:
		n.Body = w.walkStatement(owner, n.Body)
		n.Pattern = w.pat(owner, n.Pattern)
		n.Catch = w.walkStatement(owner, n.Catch)

		if n.Finally != nil {
			n.Finally = w.walkStatement(owner, n.Finally)
		}

		return w.stmt(owner, n)

	case ast.RaiseStatement:
		n.Value = w.walkExpression(owner, n.Value)
		return w.stmt(owner, n)

	case ast.FunctorApplyStatement:
		n.Target = w.walkExpression(owner, n.Target)
		n.Functor = w.walkExpression(owner, n.Functor)
		n.Import = w.walkExpression(owner, n.Import)

		return w.stmt(owner, n)

	default:
		panic(fmt.Sprintf("internal error: unhandled statement variant %T in abstractionWalker", s))
	}
}

func (w *abstractionWalker) walkExpression(owner symbol.AbstractionID, e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case ast.RawVariable, ast.Variable, ast.ConstantAtom, ast.ConstantInt, ast.ConstantFloat, ast.ConstantBool,
		ast.ConstantUnit, ast.ConstantBuiltin, ast.ConstantCodeArea, ast.ConstantArity:
		return w.expr(owner, n)

	case ast.RecordExpression:
		n.Label = w.walkExpression(owner, n.Label)
		n.Fields = w.walkFields(owner, n.Fields)

		return w.expr(owner, n)

	case ast.TupleExpression:
		n.Label = w.walkExpression(owner, n.Label)
		elems := make([]ast.Expression, len(n.Elements))

		for i, el := range n.Elements {
			elems[i] = w.walkExpression(owner, el)
		}

		n.Elements = elems

		return w.expr(owner, n)

	case ast.FeatureAccess:
		n.Record = w.walkExpression(owner, n.Record)
		n.Feature = w.walkExpression(owner, n.Feature)

		return w.expr(owner, n)

	case ast.ProcExpression:
		n.Body = w.walkStatement(n.Abstraction, n.Body)
		return w.expr(owner, n)

	case ast.FunExpression:
		n.Body = w.walkStatement(n.Abstraction, n.Body)
		return w.expr(owner, n)

	case ast.MatchExpression:
		n.Scrutinee = w.walkExpression(owner, n.Scrutinee)
		arms := make([]ast.MatchArm, len(n.Arms))

		for i, a := range n.Arms {
			arm := ast.MatchArm{Pattern: w.pat(owner, a.Pattern), Value: w.walkExpression(owner, a.Value)}
			if a.Guard != nil {
				arm.Guard = w.walkExpression(owner, a.Guard)
			}

			arms[i] = arm
		}

		n.Arms = arms
		if n.Default != nil {
			n.Default = w.walkExpression(owner, n.Default)
		}

		return w.expr(owner, n)

	case ast.FunctorExpression:
		if n.Prepare != nil {
			n.Prepare = w.walkStatement(n.Abstraction, n.Prepare)
		}

		n.Define = w.walkStatement(n.Abstraction, n.Define)

		return w.expr(owner, n)

	case ast.CreateAbstraction:
		captured := make([]ast.Expression, len(n.Captured))
		for i, c := range n.Captured {
			captured[i] = w.walkExpression(owner, c)
		}

		n.Captured = captured

		return w.expr(owner, n)

	default:
		panic(fmt.Sprintf("internal error: unhandled expression variant %T in abstractionWalker", e))
	}
}

func (w *abstractionWalker) walkFields(owner symbol.AbstractionID, fields []ast.FieldValue) []ast.FieldValue {
	out := make([]ast.FieldValue, len(fields))
	for i, f := range fields {
		out[i] = ast.FieldValue{Feature: w.walkExpression(owner, f.Feature), Value: w.walkExpression(owner, f.Value)}
	}

	return out
}
