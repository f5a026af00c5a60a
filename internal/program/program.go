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

package program

import (
	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// BuiltinRegistry resolves a builtin by name.  Defined here, rather than
// depending on package builtins directly, to avoid a dependency cycle (the
// builtins loader constructs symbol.BuiltinSymbol values using the same
// symbol.Counter as the rest of a compilation, and so must be handed the
// Program's counter; Program only needs to read the registry back).
type BuiltinRegistry interface {
	Lookup(name string) (*symbol.BuiltinSymbol, bool)
}

// Program is the mutable aggregate a compilation is built around: the
// top-level abstraction, the arena of hoisted abstractions the Flattener
// produces, the builtin registry, accumulated errors, and the handful of
// distinguished symbols/flags spec.md section 3 calls out.
type Program struct {
	counter *symbol.Counter
	// arena holds every abstraction, addressed by AbstractionID, avoiding a
	// direct pointer cycle between a VariableSymbol and its owner (see
	// symbol.AbstractionID).
	arena []*Abstraction
	// top is the arena index of the distinguished top-level abstraction.
	top symbol.AbstractionID
	// rawTop retains the unprocessed top-level statement for diagnostics.
	rawTop ast.Statement

	Builtins BuiltinRegistry

	// BaseEnvSymbol is the variable bound to the Base module value, valid
	// only in BaseEnv mode.
	BaseEnvSymbol *symbol.VariableSymbol
	// BootMMSymbol is the variable bound to the boot module manager.
	BootMMSymbol *symbol.VariableSymbol

	// BaseDeclarations lists the names exported by the base environment,
	// mutated as BaseEnv-mode assembly discovers them.
	BaseDeclarations []string

	// IsBaseEnvironment is true when this Program is being assembled in
	// BaseEnv mode (spec.md section 4.5).
	IsBaseEnvironment bool

	errs []*source.SyntaxError
}

// New constructs an empty program with a fresh, independent symbol-id
// counter (spec.md section 9, "Global counter for symbol ids").
func New() *Program {
	p := &Program{counter: symbol.NewCounter(), top: symbol.NoAbstraction}
	return p
}

// Counter returns this program's symbol-id counter, shared by every pass
// that needs to mint a symbol.
func (p *Program) Counter() *symbol.Counter {
	return p.counter
}

// NewAbstraction allocates a fresh abstraction in the arena and returns it;
// its id is available from Id().  Every formal's owner is set to the new
// abstraction's id.
func (p *Program) NewAbstraction(formals []*symbol.VariableSymbol) *Abstraction {
	id := symbol.AbstractionID(len(p.arena))
	abs := NewAbstraction(id, formals)
	p.arena = append(p.arena, abs)

	for _, f := range formals {
		f.SetOwner(id)
	}

	return abs
}

// Abstraction resolves an AbstractionID to its Abstraction.
func (p *Program) Abstraction(id symbol.AbstractionID) *Abstraction {
	if id == symbol.NoAbstraction {
		return nil
	}

	return p.arena[id]
}

// Abstractions returns every abstraction in the arena, in allocation order
// (which, after the Flattener, is also C++ emission order).
func (p *Program) Abstractions() []*Abstraction {
	return p.arena
}

// SetTopLevel installs the distinguished top-level abstraction, wrapping
// rawCode.
func (p *Program) SetTopLevel(id symbol.AbstractionID, rawCode ast.Statement) {
	p.top = id
	p.rawTop = rawCode
}

// TopLevel returns the distinguished top-level abstraction.
func (p *Program) TopLevel() *TopLevelAbstraction {
	if p.top == symbol.NoAbstraction {
		return nil
	}

	return &TopLevelAbstraction{p.arena[p.top], p.rawTop}
}

// AddError records a semantic error at span with the given message.  Errors
// accumulate within a pass and the pipeline aborts before the next pass
// begins if any were recorded (spec.md section 7).
func (p *Program) AddError(file *source.File, span source.Span, msg string) {
	p.errs = append(p.errs, file.SyntaxError(span, msg))
}

// Errors returns every error recorded so far.
func (p *Program) Errors() []*source.SyntaxError {
	return p.errs
}

// HasErrors reports whether any error has been recorded.
func (p *Program) HasErrors() bool {
	return len(p.errs) > 0
}

// ClearErrors discards any recorded errors.  The driver never calls it: each
// compilation uses its own Program.
func (p *Program) ClearErrors() {
	p.errs = nil
}
