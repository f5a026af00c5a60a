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

package ast

// Rewriter implements the TreeCopier role described in spec.md section 3: a
// generic, exhaustive recursion which reconstructs a node from its rewritten
// children while preserving the original node's position, then (optionally)
// hands the freshly rebuilt node to a caller-supplied hook for further
// transformation.  Its users (Desugar, DesugarFunctor, and the emitter's
// MergeBaseFunctors via Substitute) configure only the hooks they care
// about; an unset hook defaults to the identity function.  Passes that need
// to know the owning abstraction use transform's abstractionWalker instead.
//
// Hooks are applied bottom-up (children are rewritten and rebuilt first),
// which matches how every pass in this compiler wants to operate: by the
// time a hook sees a node, its children have already reached the pass's
// normal form.
type Rewriter struct {
	// Stmt, if set, is applied to every statement after its children have
	// been rewritten and the node rebuilt.
	Stmt func(Statement) Statement
	// Expr, if set, is applied to every expression after its children have
	// been rewritten and the node rebuilt.
	Expr func(Expression) Expression
	// Pat, if set, is applied to every pattern after its children have been
	// rewritten and the node rebuilt.
	Pat func(Pattern) Pattern
}

func (r *Rewriter) stmt(s Statement) Statement {
	if r.Stmt != nil {
		return r.Stmt(s)
	}

	return s
}

func (r *Rewriter) expr(e Expression) Expression {
	if r.Expr != nil {
		return r.Expr(e)
	}

	return e
}

func (r *Rewriter) pat(p Pattern) Pattern {
	if rp, ok := p.(RecordPattern); ok {
		fields := make([]FieldPattern, len(rp.Fields))
		for i, f := range rp.Fields {
			fields[i] = FieldPattern{f.Feature, r.pat(f.Value)}
		}

		rp.Fields = fields
		p = rp
	}

	if r.Pat != nil {
		return r.Pat(p)
	}

	return p
}

// RewriteStatement rewrites s and its entire subtree.
func (r *Rewriter) RewriteStatement(s Statement) Statement {
	switch n := s.(type) {
	case SequenceStatement:
		stmts := make([]Statement, len(n.Stmts))
		for i, c := range n.Stmts {
			stmts[i] = r.RewriteStatement(c)
		}

		return r.stmt(SequenceStatement{n.base, stmts})
	case RawLocalStatement:
		n.Body = r.RewriteStatement(n.Body)
		return r.stmt(n)
	case LocalStatement:
		n.Body = r.RewriteStatement(n.Body)
		return r.stmt(n)
	case BindStatement:
		n.Lhs = r.RewriteExpression(n.Lhs)
		n.Rhs = r.RewriteExpression(n.Rhs)

		return r.stmt(n)
	case CallStatement:
		n.Proc = r.RewriteExpression(n.Proc)
		args := make([]Expression, len(n.Args))

		for i, a := range n.Args {
			args[i] = r.RewriteExpression(a)
		}

		n.Args = args

		return r.stmt(n)
	case IfStatement:
		n.Cond = r.RewriteExpression(n.Cond)
		n.Then = r.RewriteStatement(n.Then)
		n.Else = r.RewriteStatement(n.Else)

		return r.stmt(n)
	case CaseStatement:
		n.Scrutinee = r.RewriteExpression(n.Scrutinee)
		arms := make([]CaseArm, len(n.Arms))

		for i, a := range n.Arms {
			arm := CaseArm{r.pat(a.Pattern), nil, r.RewriteStatement(a.Body)}
			if a.Guard != nil {
				arm.Guard = r.RewriteExpression(a.Guard)
			}

			arms[i] = arm
		}

		n.Arms = arms
		if n.Default != nil {
			n.Default = r.RewriteStatement(n.Default)
		}

		return r.stmt(n)
	case RecordStatement:
		n.Target = r.RewriteExpression(n.Target)
		n.Label = r.RewriteExpression(n.Label)
		n.Fields = rewriteFields(r, n.Fields)

		return r.stmt(n)
	case SkipStatement:
		return r.stmt(n)
	case ThreadStatement:
		n.Body = r.RewriteStatement(n.Body)
		return r.stmt(n)
	case TryStatement:
		n.Body = r.RewriteStatement(n.Body)
		n.Pattern = r.pat(n.Pattern)
		n.Catch = r.RewriteStatement(n.Catch)

		if n.Finally != nil {
			n.Finally = r.RewriteStatement(n.Finally)
		}

		return r.stmt(n)
	case RaiseStatement:
		n.Value = r.RewriteExpression(n.Value)
		return r.stmt(n)
	case FunctorApplyStatement:
		n.Target = r.RewriteExpression(n.Target)
		n.Functor = r.RewriteExpression(n.Functor)
		n.Import = r.RewriteExpression(n.Import)

		return r.stmt(n)
	default:
		panic("internal error: unhandled statement variant in TreeCopier")
	}
}

// RewriteExpression rewrites e and its entire subtree.
func (r *Rewriter) RewriteExpression(e Expression) Expression {
	switch n := e.(type) {
	case RawVariable, Variable, ConstantAtom, ConstantInt, ConstantFloat, ConstantBool,
		ConstantUnit, ConstantBuiltin, ConstantCodeArea, ConstantArity:
		return r.expr(n)
	case RecordExpression:
		n.Label = r.RewriteExpression(n.Label)
		n.Fields = rewriteFields(r, n.Fields)

		return r.expr(n)
	case TupleExpression:
		n.Label = r.RewriteExpression(n.Label)
		elems := make([]Expression, len(n.Elements))

		for i, el := range n.Elements {
			elems[i] = r.RewriteExpression(el)
		}

		n.Elements = elems

		return r.expr(n)
	case FeatureAccess:
		n.Record = r.RewriteExpression(n.Record)
		n.Feature = r.RewriteExpression(n.Feature)

		return r.expr(n)
	case RawProcExpression:
		n.Body = r.RewriteStatement(n.Body)
		return r.expr(n)
	case RawFunExpression:
		n.Body = r.RewriteStatement(n.Body)
		return r.expr(n)
	case ProcExpression:
		n.Body = r.RewriteStatement(n.Body)
		return r.expr(n)
	case FunExpression:
		n.Body = r.RewriteStatement(n.Body)
		return r.expr(n)
	case MatchExpression:
		n.Scrutinee = r.RewriteExpression(n.Scrutinee)
		arms := make([]MatchArm, len(n.Arms))

		for i, a := range n.Arms {
			arm := MatchArm{r.pat(a.Pattern), nil, r.RewriteExpression(a.Value)}
			if a.Guard != nil {
				arm.Guard = r.RewriteExpression(a.Guard)
			}

			arms[i] = arm
		}

		n.Arms = arms
		if n.Default != nil {
			n.Default = r.RewriteExpression(n.Default)
		}

		return r.expr(n)
	case FunctorExpression:
		if n.Prepare != nil {
			n.Prepare = r.RewriteStatement(n.Prepare)
		}

		n.Define = r.RewriteStatement(n.Define)

		return r.expr(n)
	case CreateAbstraction:
		captured := make([]Expression, len(n.Captured))
		for i, c := range n.Captured {
			captured[i] = r.RewriteExpression(c)
		}

		n.Captured = captured

		return r.expr(n)
	default:
		panic("internal error: unhandled expression variant in TreeCopier")
	}
}

func rewriteFields(r *Rewriter, fields []FieldValue) []FieldValue {
	out := make([]FieldValue, len(fields))

	for i, f := range fields {
		out[i] = FieldValue{r.RewriteExpression(f.Feature), r.RewriteExpression(f.Value)}
	}

	return out
}

// Substitute returns a copy of s in which every Variable referencing one of
// the symbols in subst has been replaced by the corresponding replacement
// expression.  Used by emitter.MergeBaseFunctors to redirect references to
// a base functor's symbols onto their re-minted replacements.
func Substitute(s Statement, subst map[uint64]Expression) Statement {
	rw := &Rewriter{
		Expr: func(e Expression) Expression {
			if v, ok := e.(Variable); ok {
				if repl, found := subst[v.Symbol.Id()]; found {
					return repl
				}
			}

			return e
		},
	}

	return rw.RewriteStatement(s)
}

// SubstituteExpr is the expression-rooted counterpart of Substitute.
func SubstituteExpr(e Expression, subst map[uint64]Expression) Expression {
	rw := &Rewriter{
		Expr: func(e Expression) Expression {
			if v, ok := e.(Variable); ok {
				if repl, found := subst[v.Symbol.Id()]; found {
					return repl
				}
			}

			return e
		},
	}

	return rw.RewriteExpression(e)
}
