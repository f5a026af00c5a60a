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

import (
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

func (SequenceStatement) isStatement()    {}
func (RawLocalStatement) isStatement()    {}
func (LocalStatement) isStatement()       {}
func (BindStatement) isStatement()        {}
func (CallStatement) isStatement()        {}
func (IfStatement) isStatement()          {}
func (CaseStatement) isStatement()        {}
func (RecordStatement) isStatement()      {}
func (SkipStatement) isStatement()        {}
func (ThreadStatement) isStatement()      {}
func (TryStatement) isStatement()         {}
func (RaiseStatement) isStatement()       {}
func (FunctorApplyStatement) isStatement() {}

// SequenceStatement is the sequential composition of zero or more
// statements ("S1 S2 ... Sn" in Oz surface syntax).
type SequenceStatement struct {
	base
	Stmts []Statement
}

// NewSequence constructs a sequential composition.  A single-element or
// empty sequence is permitted; later passes are free to collapse these, but
// nothing requires it.
func NewSequence(at source.Span, stmts ...Statement) SequenceStatement {
	return SequenceStatement{base{at}, stmts}
}

// RawLocalStatement is the pre-Namer form of a local declaration: it
// introduces a scope binding the textual names in Names, with Body
// evaluated in that scope.  The Namer pass resolves this into a
// LocalStatement over fresh VariableSymbols.
type RawLocalStatement struct {
	base
	Names []string
	Body  Statement
}

// NewRawLocal constructs a pre-Namer local declaration.
func NewRawLocal(at source.Span, names []string, body Statement) RawLocalStatement {
	return RawLocalStatement{base{at}, names, body}
}

// LocalStatement is the post-Namer form of a local declaration: Decls holds
// one fresh VariableSymbol per declared name, scoped over Body.  Also the
// canonical output shape of the Unnester, which introduces one LocalStatement
// per synthetic temporary it must bind ahead of a flattened operation.
type LocalStatement struct {
	base
	Decls []*symbol.VariableSymbol
	Body  Statement
}

// NewLocal constructs a post-Namer (or Unnester-introduced) local
// declaration.
func NewLocal(at source.Span, decls []*symbol.VariableSymbol, body Statement) LocalStatement {
	return LocalStatement{base{at}, decls, body}
}

// BindStatement assigns (binds, in the logic-variable sense) the value of
// Rhs to Lhs ("X = Expr" in Oz surface syntax).
type BindStatement struct {
	base
	Lhs Expression
	Rhs Expression
}

// NewBind constructs a binding statement.
func NewBind(at source.Span, lhs, rhs Expression) BindStatement {
	return BindStatement{base{at}, lhs, rhs}
}

// CallStatement invokes a procedure with the given arguments ("{Proc Args}"
// in Oz surface syntax).  After the Unnester, every element of Args is a
// Variable or Constant.
type CallStatement struct {
	base
	Proc Expression
	Args []Expression
}

// NewCall constructs a procedure call statement.
func NewCall(at source.Span, proc Expression, args ...Expression) CallStatement {
	return CallStatement{base{at}, proc, args}
}

// IfStatement is a two-armed conditional.  Else is never nil after the
// Namer (a bare "if" with no else branch is given an implicit SkipStatement
// else branch there).
type IfStatement struct {
	base
	Cond Expression
	Then Statement
	Else Statement
}

// NewIf constructs a conditional statement.
func NewIf(at source.Span, cond Expression, then, els Statement) IfStatement {
	return IfStatement{base{at}, cond, then, els}
}

// CaseArm is a single arm of a case/match construct: if Pattern matches the
// scrutinee (and, if present, Guard evaluates true), Body is executed.
type CaseArm struct {
	Pattern Pattern
	Guard   Expression // may be nil
	Body    Statement
}

// CaseStatement pattern-matches Scrutinee against each arm in turn; if no
// arm matches, Default runs.  Default may be nil; PatternMatcher then
// compiles the no-match path as a raise of the atom matchFailure.
type CaseStatement struct {
	base
	Scrutinee Expression
	Arms      []CaseArm
	Default   Statement
}

// NewCase constructs a pattern-match statement.
func NewCase(at source.Span, scrutinee Expression, arms []CaseArm, deflt Statement) CaseStatement {
	return CaseStatement{base{at}, scrutinee, arms, deflt}
}

// FieldValue is a single label:value pair of a record, tuple, or functor
// import/export list.
type FieldValue struct {
	Feature Expression
	Value   Expression
}

// RecordStatement constructs a record value from Label and Fields and binds
// it to Target.  Kept distinct from a general BindStatement so that
// ConstantFolding can canonicalise its field order in place without first
// having to pattern-match a BindStatement's Rhs.
type RecordStatement struct {
	base
	Target Expression
	Label  Expression
	Fields []FieldValue
}

// NewRecordStatement constructs a record-creation statement.
func NewRecordStatement(at source.Span, target, label Expression, fields []FieldValue) RecordStatement {
	return RecordStatement{base{at}, target, label, fields}
}

// SkipStatement is the statement that does nothing.
type SkipStatement struct {
	base
}

// NewSkip constructs a no-op statement.
func NewSkip(at source.Span) SkipStatement {
	return SkipStatement{base{at}}
}

// ThreadStatement spawns Body as a new, concurrently scheduled thread.
type ThreadStatement struct {
	base
	Body Statement
}

// NewThread constructs a thread-spawning statement.
func NewThread(at source.Span, body Statement) ThreadStatement {
	return ThreadStatement{base{at}, body}
}

// TryStatement runs Body; if it raises an exception matching Pattern, Catch
// runs with the exception bound per Pattern; Finally (may be nil) always
// runs afterwards.
type TryStatement struct {
	base
	Body    Statement
	Pattern Pattern
	Catch   Statement
	Finally Statement
}

// NewTry constructs a try/catch/finally statement.
func NewTry(at source.Span, body Statement, pattern Pattern, catch, finally Statement) TryStatement {
	return TryStatement{base{at}, body, pattern, catch, finally}
}

// RaiseStatement raises Value as an exception.
type RaiseStatement struct {
	base
	Value Expression
}

// NewRaise constructs a raise statement.
func NewRaise(at source.Span, value Expression) RaiseStatement {
	return RaiseStatement{base{at}, value}
}

// FunctorApplyStatement applies Functor to Import, binding the resulting
// export record to Target.  This is how a functor application surfaces in
// statement position after DesugarFunctor has lowered the declarative
// functor syntax away.
type FunctorApplyStatement struct {
	base
	Target  Expression
	Functor Expression
	Import  Expression
}

// NewFunctorApply constructs a functor-application statement.
func NewFunctorApply(at source.Span, target, functor, imp Expression) FunctorApplyStatement {
	return FunctorApplyStatement{base{at}, target, functor, imp}
}
