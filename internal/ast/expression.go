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

func (RawVariable) isExpression()       {}
func (Variable) isExpression()          {}
func (ConstantAtom) isExpression()      {}
func (ConstantInt) isExpression()       {}
func (ConstantFloat) isExpression()     {}
func (ConstantBool) isExpression()      {}
func (ConstantUnit) isExpression()      {}
func (ConstantBuiltin) isExpression()   {}
func (ConstantCodeArea) isExpression()  {}
func (ConstantArity) isExpression()     {}
func (RecordExpression) isExpression()  {}
func (TupleExpression) isExpression()   {}
func (FeatureAccess) isExpression()     {}
func (RawProcExpression) isExpression() {}
func (RawFunExpression) isExpression()  {}
func (ProcExpression) isExpression()    {}
func (FunExpression) isExpression()     {}
func (MatchExpression) isExpression()   {}
func (FunctorExpression) isExpression() {}
func (CreateAbstraction) isExpression() {}

// Constant is implemented by every expression node which denotes a
// statically known value eligible for K-register pooling.  ConstantFolding
// and CodeGen both dispatch on this interface.
type Constant interface {
	Expression
	isConstant()
}

func (ConstantAtom) isConstant()     {}
func (ConstantInt) isConstant()      {}
func (ConstantFloat) isConstant()    {}
func (ConstantBool) isConstant()     {}
func (ConstantUnit) isConstant()     {}
func (ConstantBuiltin) isConstant()  {}
func (ConstantCodeArea) isConstant() {}
func (ConstantArity) isConstant()    {}

// RawVariable is the pre-Namer form of a variable reference: just the
// textual name as it appeared in source.
type RawVariable struct {
	base
	Name string
}

// NewRawVariable constructs an unresolved variable reference.
func NewRawVariable(at source.Span, name string) RawVariable {
	return RawVariable{base{at}, name}
}

// Variable is the post-Namer form of a variable reference: resolved to the
// identity of its declaring symbol.
type Variable struct {
	base
	Symbol *symbol.VariableSymbol
}

// NewVariable constructs a resolved variable reference.
func NewVariable(at source.Span, sym *symbol.VariableSymbol) Variable {
	return Variable{base{at}, sym}
}

// ConstantAtom is an Oz atom literal, e.g. 'foo'.
type ConstantAtom struct {
	base
	Value string
}

// NewConstantAtom constructs an atom constant.
func NewConstantAtom(at source.Span, value string) ConstantAtom {
	return ConstantAtom{base{at}, value}
}

// ConstantInt is an Oz integer literal.
type ConstantInt struct {
	base
	Value int64
}

// NewConstantInt constructs an integer constant.
func NewConstantInt(at source.Span, value int64) ConstantInt {
	return ConstantInt{base{at}, value}
}

// ConstantFloat is an Oz float literal.
type ConstantFloat struct {
	base
	Value float64
}

// NewConstantFloat constructs a float constant.
func NewConstantFloat(at source.Span, value float64) ConstantFloat {
	return ConstantFloat{base{at}, value}
}

// ConstantBool is an Oz boolean literal.
type ConstantBool struct {
	base
	Value bool
}

// NewConstantBool constructs a boolean constant.
func NewConstantBool(at source.Span, value bool) ConstantBool {
	return ConstantBool{base{at}, value}
}

// ConstantUnit is the Oz unit value.
type ConstantUnit struct {
	base
}

// NewConstantUnit constructs the unit constant.
func NewConstantUnit(at source.Span) ConstantUnit {
	return ConstantUnit{base{at}}
}

// ConstantBuiltin is a reference to a builtin procedure/function, used as a
// first-class value (e.g. passed as an argument, or installed as the value
// of a base-environment name).
type ConstantBuiltin struct {
	base
	Symbol *symbol.BuiltinSymbol
}

// NewConstantBuiltin constructs a builtin-reference constant.
func NewConstantBuiltin(at source.Span, sym *symbol.BuiltinSymbol) ConstantBuiltin {
	return ConstantBuiltin{base{at}, sym}
}

// ConstantCodeArea is a reference to another abstraction's code area, used
// by CreateAbstraction and by a directly self-recursive procedure which
// refers to its own code area as a value.
type ConstantCodeArea struct {
	base
	Abstraction symbol.AbstractionID
}

// NewConstantCodeArea constructs a code-area-reference constant.
func NewConstantCodeArea(at source.Span, id symbol.AbstractionID) ConstantCodeArea {
	return ConstantCodeArea{base{at}, id}
}

// Feature is a single label of an arity: either an integer position or an
// atom name.
type Feature struct {
	// IsInt, when true, indicates Int holds the feature; otherwise Atom
	// holds it.
	IsInt bool
	Int   int64
	Atom  string
}

// ConstantArity is a label plus an ordered list of features identifying a
// record shape (spec.md GLOSSARY, "Arity").
type ConstantArity struct {
	base
	Label    string
	Features []Feature
}

// NewConstantArity constructs an arity constant.
func NewConstantArity(at source.Span, label string, features []Feature) ConstantArity {
	return ConstantArity{base{at}, label, features}
}

// IsTupleShaped reports whether this arity's features are exactly the
// positive integers 1..n in order, in which case the record it describes
// collapses to a tuple representation (spec.md section 9, "Open question").
func (a ConstantArity) IsTupleShaped() bool {
	for i, f := range a.Features {
		if !f.IsInt || f.Int != int64(i+1) {
			return false
		}
	}

	return true
}

// RecordExpression constructs a record value: Label names its arity, and
// Fields gives each field's feature and value.  After ConstantFolding, a
// record whose features are all int/atom constants has its Fields in
// canonical order (integer features ascending, then atoms); no pass turns a
// RecordExpression into a ConstantArity, so IsTupleShaped does not apply to
// it.
type RecordExpression struct {
	base
	Label  Expression
	Fields []FieldValue
}

// NewRecord constructs a record expression.
func NewRecord(at source.Span, label Expression, fields []FieldValue) RecordExpression {
	return RecordExpression{base{at}, label, fields}
}

// TupleExpression is surface-syntax sugar for a record whose features are
// exactly 1..n; Desugar rewrites it into a RecordExpression whose features
// are the integer constants 1..n, but it is retained as a first-class node so the
// parser/desugarer can emit it directly in the common case.
type TupleExpression struct {
	base
	Label    Expression
	Elements []Expression
}

// NewTuple constructs a tuple expression.
func NewTuple(at source.Span, label Expression, elements []Expression) TupleExpression {
	return TupleExpression{base{at}, label, elements}
}

// FeatureAccess projects a single Feature out of Record ("Record.Feature" in
// Oz surface syntax).
type FeatureAccess struct {
	base
	Record  Expression
	Feature Expression
}

// NewFeatureAccess constructs a feature-access expression.
func NewFeatureAccess(at source.Span, record, feature Expression) FeatureAccess {
	return FeatureAccess{base{at}, record, feature}
}

// RawProcExpression is the pre-Namer form of ProcExpression: its formal
// parameters are bare textual names, not yet minted symbols.
type RawProcExpression struct {
	base
	FormalNames []string
	Body        Statement
}

// NewRawProc constructs an unresolved procedure expression.
func NewRawProc(at source.Span, names []string, body Statement) RawProcExpression {
	return RawProcExpression{base{at}, names, body}
}

// RawFunExpression is the pre-Namer form of FunExpression.
type RawFunExpression struct {
	base
	FormalNames []string
	ResultName  string
	Body        Statement
}

// NewRawFun constructs an unresolved function expression.
func NewRawFun(at source.Span, names []string, result string, body Statement) RawFunExpression {
	return RawFunExpression{base{at}, names, result, body}
}

// ProcExpression is a (possibly nested) procedure value: Formals are bound
// on application, Body is executed.  Prior to the Flattener this may appear
// nested anywhere an expression is expected; after the Flattener, every
// ProcExpression has been replaced by a CreateAbstraction referencing a
// hoisted, top-level Abstraction.  Abstraction identifies the arena slot
// the Namer (or whichever later pass introduced this node) allocated for
// it; every formal's owner is that same id.
type ProcExpression struct {
	base
	Abstraction symbol.AbstractionID
	Formals     []*symbol.VariableSymbol
	Body        Statement
}

// NewProc constructs a procedure expression already bound to its
// abstraction id.
func NewProc(at source.Span, id symbol.AbstractionID, formals []*symbol.VariableSymbol, body Statement) ProcExpression {
	return ProcExpression{base{at}, id, formals, body}
}

// FunExpression is a function value: like ProcExpression, but Body's final
// result is understood to be bound to Result rather than discarded.  Desugar
// lowers every FunExpression into an equivalent ProcExpression whose Body
// explicitly binds Result.
type FunExpression struct {
	base
	Abstraction symbol.AbstractionID
	Formals     []*symbol.VariableSymbol
	Result      *symbol.VariableSymbol
	Body        Statement
}

// NewFun constructs a function expression already bound to its abstraction
// id.
func NewFun(at source.Span, id symbol.AbstractionID, formals []*symbol.VariableSymbol,
	result *symbol.VariableSymbol, body Statement) FunExpression {
	return FunExpression{base{at}, id, formals, result, body}
}

// MatchArm is a single arm of a pattern-match expression.
type MatchArm struct {
	Pattern Pattern
	Guard   Expression // may be nil
	Value   Expression
}

// MatchExpression is the expression-position counterpart of CaseStatement:
// it evaluates to the Value of whichever arm's Pattern (and Guard) first
// matches Scrutinee, or to Default if none does.
type MatchExpression struct {
	base
	Scrutinee Expression
	Arms      []MatchArm
	Default   Expression
}

// NewMatchExpression constructs a pattern-match expression.
func NewMatchExpression(at source.Span, scrutinee Expression, arms []MatchArm, deflt Expression) MatchExpression {
	return MatchExpression{base{at}, scrutinee, arms, deflt}
}

// ImportSpec is a single entry of a functor's `require`/`imports` clause: it
// binds Variable, drawn from the Feature of the module imported from URL.
type ImportSpec struct {
	Variable *symbol.VariableSymbol
	URL      string
	Feature  Feature
}

// ExportSpec is a single entry of a functor's `exports` clause: Feature
// names the field of the resulting export record, bound to the value of
// Variable.
type ExportSpec struct {
	Feature  Feature
	Variable *symbol.VariableSymbol
}

// FunctorExpression is a first-class Oz functor value, parameterised by the
// modules it requires and producing the record described by Exports when
// applied.  DesugarFunctor lowers this into a plain procedure operating on
// concrete records (see spec.md section 4.2).  Abstraction is the arena
// slot the Namer allocated for the functor's own prepare/define scope: its
// Require/Imports declarations and any locals of Prepare/Define are owned
// by this id, distinct from whatever abstraction lexically encloses the
// functor expression itself.
type FunctorExpression struct {
	base
	Abstraction symbol.AbstractionID
	Name        string
	Require     []ImportSpec
	Prepare     Statement // may be nil
	Imports     []ImportSpec
	Define      Statement
	Exports     []ExportSpec
}

// NewFunctor constructs a functor expression already bound to its
// abstraction id.
func NewFunctor(at source.Span, id symbol.AbstractionID, name string, require []ImportSpec, prepare Statement,
	imports []ImportSpec, define Statement, exports []ExportSpec) FunctorExpression {
	return FunctorExpression{base{at}, id, name, require, prepare, imports, define, exports}
}

// CreateAbstraction replaces an inline ProcExpression/FunExpression once the
// Flattener has hoisted it into a top-level Abstraction: Captured carries,
// in the hoisted abstraction's global order, the values to close over.
type CreateAbstraction struct {
	base
	Abstraction symbol.AbstractionID
	Captured    []Expression
}

// NewCreateAbstraction constructs a closure-allocation expression.
func NewCreateAbstraction(at source.Span, id symbol.AbstractionID, captured []Expression) CreateAbstraction {
	return CreateAbstraction{base{at}, id, captured}
}
