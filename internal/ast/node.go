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

// Package ast defines the closed algebraic tree consumed and produced by
// every pass of the transform pipeline: statements, expressions, patterns,
// and functor sub-structures.  Every node carries a source position.  Nodes
// are immutable values; a pass produces a new tree rather than mutating the
// one it was given (see spec.md section 3, "Lifecycle").
package ast

import "github.com/yjaradin/mozart2-bootcompiler/internal/source"

// Node is the common interface of every AST node: it carries the source
// position from which it originated (or, for a synthesised node, the
// position of whatever triggered its synthesis).
type Node interface {
	// Pos returns the span of source text this node was built from.
	Pos() source.Span
}

// Statement is implemented by every statement-level AST node.
type Statement interface {
	Node
	isStatement()
}

// Expression is implemented by every expression-level AST node.
type Expression interface {
	Node
	isExpression()
}

// Pattern is implemented by every pattern-level AST node, as found in the
// arms of a case/match construct.
type Pattern interface {
	Node
	isPattern()
}

// base is embedded by every concrete node to provide its position without
// repeating the field and method on every type.
type base struct {
	at source.Span
}

// Pos returns the position this node was built at.
func (b base) Pos() source.Span {
	return b.at
}

// AtPos constructs a base carrying the given position.  Used by pass
// implementations that synthesise a new node: `AtPos(original.Pos())`
// preserves the position of whatever subtree is being rewritten, in the
// style of the teacher's `atPos(node){...}` convention.
func AtPos(span source.Span) base {
	return base{span}
}
