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

// Package program defines the Abstraction and Program aggregates: the
// mutable, long-lived structures that own the AST and the symbol table
// across a compilation (spec.md section 3, "Abstractions").
package program

import (
	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/codegen"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// Abstraction represents a compiled procedure/functor body: its formal
// parameters, the locals and globals referenced from its body, the body
// itself, and (once CodeGen has run) its CodeArea.
type Abstraction struct {
	id      symbol.AbstractionID
	formals []*symbol.VariableSymbol
	locals  []*symbol.VariableSymbol
	globals []*symbol.VariableSymbol
	body    ast.Statement
	area    *codegen.CodeArea
}

// NewAbstraction constructs an abstraction with the given id and formals.
// Locals accumulate as the Namer declares them and globals as the Flattener
// discovers captures; Body is set once its final (flattened) form is known.
func NewAbstraction(id symbol.AbstractionID, formals []*symbol.VariableSymbol) *Abstraction {
	return &Abstraction{id: id, formals: formals}
}

// Id returns this abstraction's arena index, used both as the symbol-owner
// key and for generating a unique C++ identifier.
func (a *Abstraction) Id() symbol.AbstractionID {
	return a.id
}

// Formals returns this abstraction's ordered formal parameters.
func (a *Abstraction) Formals() []*symbol.VariableSymbol {
	return a.formals
}

// SetFormals installs this abstraction's formals once their owning symbols
// have been minted.  Used by the Namer for a nested procedure/function
// value, where the formal symbols cannot be constructed until after the
// abstraction id they will be owned by already exists (they are passed as
// nil to NewAbstraction and filled in here instead of at construction).
func (a *Abstraction) SetFormals(formals []*symbol.VariableSymbol) {
	a.formals = formals
}

// Locals returns the set of local variables declared within this
// abstraction's body (order is declaration order; duplicates are never
// added, see AddLocal).
func (a *Abstraction) Locals() []*symbol.VariableSymbol {
	return a.locals
}

// AddLocal records v as a local of this abstraction, unless already present.
func (a *Abstraction) AddLocal(v *symbol.VariableSymbol) {
	for _, e := range a.locals {
		if e == v {
			return
		}
	}

	a.locals = append(a.locals, v)
}

// Globals returns this abstraction's captured (closed-over) variables, in
// first-reference order.  A variable's position in this slice is its
// G-register index.
func (a *Abstraction) Globals() []*symbol.VariableSymbol {
	return a.globals
}

// GlobalIndex returns the G-register index of v within this abstraction,
// adding v to Globals (at the next available index) on its first
// occurrence.  Subsequent calls with the same v return the same index,
// which is how the Flattener guarantees "added once, preserving
// first-encounter order" (spec.md section 4.1).
func (a *Abstraction) GlobalIndex(v *symbol.VariableSymbol) uint {
	for i, e := range a.globals {
		if e == v {
			return uint(i)
		}
	}

	a.globals = append(a.globals, v)

	return uint(len(a.globals) - 1)
}

// Body returns this abstraction's body statement.
func (a *Abstraction) Body() ast.Statement {
	return a.body
}

// SetBody installs the (possibly rewritten, by a later pass) body of this
// abstraction.
func (a *Abstraction) SetBody(body ast.Statement) {
	a.body = body
}

// CodeArea returns the code area CodeGen produced for this abstraction, or
// nil before CodeGen has run.
func (a *Abstraction) CodeArea() *codegen.CodeArea {
	return a.area
}

// SetCodeArea installs the code area CodeGen produced for this abstraction.
// May only be called once.
func (a *Abstraction) SetCodeArea(area *codegen.CodeArea) {
	if a.area != nil {
		panic("internal error: code area already assigned to abstraction")
	}

	a.area = area
}

// TopLevelAbstraction is the distinguished abstraction wrapping the program
// statement as a whole (spec.md section 3, "Abstractions").
type TopLevelAbstraction struct {
	*Abstraction
	// RawCode is the unprocessed top-level program statement, as handed to
	// the Namer.  Retained for diagnostics even after later passes have
	// replaced Abstraction.Body with the fully transformed statement.
	RawCode ast.Statement
}
