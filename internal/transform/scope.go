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

// Package transform implements the nine-pass pipeline that lowers raw,
// parser-produced AST into the flat, closure-converted form CodeGen
// consumes (spec.md section 2, "System overview"; section 4).
package transform

import "github.com/yjaradin/mozart2-bootcompiler/internal/symbol"

// scope is a single lexical frame of the Namer's name resolution stack:
// textual names declared in this frame, chained to the frame of the
// enclosing construct.
type scope struct {
	parent *scope
	names  map[string]*symbol.VariableSymbol
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]*symbol.VariableSymbol)}
}

// resolve searches this frame and its ancestors, innermost first.
func (s *scope) resolve(name string) (*symbol.VariableSymbol, bool) {
	for f := s; f != nil; f = f.parent {
		if sym, ok := f.names[name]; ok {
			return sym, true
		}
	}

	return nil, false
}

// declared reports whether name is bound directly in this frame (not an
// ancestor), used to detect duplicate declarations within one scope.
func (s *scope) declared(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s *scope) bind(name string, sym *symbol.VariableSymbol) {
	s.names[name] = sym
}
