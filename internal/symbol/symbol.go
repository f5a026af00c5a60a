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

// Package symbol defines the identity layer of the compiler: process-unique
// symbol ids, the Symbol variants (variable, builtin, the "no symbol"
// sentinel), and the abstraction-index type used to record ownership without
// a direct back-pointer (see DESIGN.md, "cyclic ownership").
package symbol

import "fmt"

// AbstractionID identifies an Abstraction within a Program's abstraction
// arena.  Symbols record their owner by index rather than by pointer, which
// avoids a direct dependency cycle between the symbol table and the AST/
// program model (an Abstraction owns a body statement; a VariableSymbol is
// referenced from within that very statement).
type AbstractionID int

// NoAbstraction is the sentinel owner of a symbol that has not yet been
// placed into any abstraction.
const NoAbstraction AbstractionID = -1

// Symbol is the common interface satisfied by every kind of name the
// compiler can resolve a reference to: a user variable, a builtin, or the
// placeholder "no symbol" used before resolution.
type Symbol interface {
	fmt.Stringer
	// Id returns this symbol's process-unique, monotonically allocated id.
	// Two distinct symbols always have distinct ids, even if they share a
	// name.
	Id() uint64
	// Name returns the (unqualified, possibly synthetic) name of this
	// symbol.
	Name() string
	// IsDefined reports whether this symbol denotes a real, resolved
	// entity.  Only NoSymbol answers false.
	IsDefined() bool
}

// noSymbol is the sentinel placeholder owner used before ownership of a
// variable has been established (e.g. a RawVariable prior to the Namer
// pass).  It is never placed in an abstraction and never appears in a
// post-Namer AST.
type noSymbol struct{}

// NoSymbol is the single shared instance of the "no symbol" sentinel.
var NoSymbol Symbol = noSymbol{}

func (noSymbol) Id() uint64        { return 0 }
func (noSymbol) Name() string      { return "<no symbol>" }
func (noSymbol) IsDefined() bool   { return false }
func (noSymbol) String() string    { return "<no symbol>" }
