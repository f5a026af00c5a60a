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

func (WildcardPattern) isPattern()    {}
func (RawBindingPattern) isPattern()  {}
func (BindingPattern) isPattern()     {}
func (LiteralPattern) isPattern()     {}
func (RecordPattern) isPattern()      {}

// WildcardPattern matches anything and binds nothing ("_" in Oz surface
// syntax).
type WildcardPattern struct {
	base
}

// NewWildcard constructs a wildcard pattern.
func NewWildcard(at source.Span) WildcardPattern {
	return WildcardPattern{base{at}}
}

// RawBindingPattern matches anything and binds the matched value to a
// not-yet-resolved name; the Namer resolves it to a BindingPattern over a
// fresh VariableSymbol.
type RawBindingPattern struct {
	base
	Name string
}

// NewRawBindingPattern constructs an unresolved binding pattern.
func NewRawBindingPattern(at source.Span, name string) RawBindingPattern {
	return RawBindingPattern{base{at}, name}
}

// BindingPattern matches anything and binds the matched value to Symbol.
type BindingPattern struct {
	base
	Symbol *symbol.VariableSymbol
}

// NewBindingPattern constructs a resolved binding pattern.
func NewBindingPattern(at source.Span, sym *symbol.VariableSymbol) BindingPattern {
	return BindingPattern{base{at}, sym}
}

// LiteralPattern matches only values equal to Value, which must be a
// constant expression.
type LiteralPattern struct {
	base
	Value Constant
}

// NewLiteralPattern constructs a literal pattern.
func NewLiteralPattern(at source.Span, value Constant) LiteralPattern {
	return LiteralPattern{base{at}, value}
}

// FieldPattern is a single label:pattern pair within a RecordPattern.
type FieldPattern struct {
	Feature Feature
	Value   Pattern
}

// TailMode describes how a RecordPattern treats features not explicitly
// listed.
type TailMode uint8

const (
	// ClosedTail requires the matched record's features to be exactly
	// those listed in Fields.
	ClosedTail TailMode = iota
	// OpenTail permits the matched record to carry additional,
	// unmentioned features (Oz "..." tail pattern).
	OpenTail
)

// RecordPattern matches a record by Label and by the patterns of Fields; its
// Tail mode determines whether additional, unmentioned features are
// permitted.
type RecordPattern struct {
	base
	Label  string
	Fields []FieldPattern
	Tail   TailMode
}

// NewRecordPattern constructs a record pattern.
func NewRecordPattern(at source.Span, label string, fields []FieldPattern, tail TailMode) RecordPattern {
	return RecordPattern{base{at}, label, fields, tail}
}
