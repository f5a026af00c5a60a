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

// Package parser specifies the external collaborator contract for turning
// Oz source text into raw AST (spec.md section 1, "Out of scope"; section 6,
// "Parser interface (consumed)").  The Oz grammar itself is not part of
// this compiler's core and is not implemented here; this package defines
// only the interface the pipeline depends on, plus a stub that reports the
// absence of a real parser so the rest of the driver remains wireable and
// testable independent of one.
package parser

import (
	"errors"
	"io"

	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
)

// Defines is the set of conditional-compilation symbols made available to
// the parser via the `-D/--define` flag (spec.md section 6).
type Defines map[string]bool

// Parser turns Oz source text into raw AST (pre-Namer: RawVariable and
// RawLocalStatement nodes, textual functor/require/export names).  On
// failure it returns a *source.SyntaxError describing the first problem
// encountered; this compiler has no error-recovery mode (spec.md section 1,
// "Non-goals"), so parsing aborts at the first error.
type Parser interface {
	// ParseStatement parses a single top-level statement from reader.
	ParseStatement(reader io.RuneScanner, file *source.File, defines Defines) (ast.Statement, error)
	// ParseExpression parses a single expression from reader, used when
	// embedding Oz expressions outside statement position (e.g. within
	// driver-constructed scaffolding).
	ParseExpression(reader io.RuneScanner, file *source.File, defines Defines) (ast.Expression, error)
}

// ErrNoParser is returned by Unimplemented's methods: this build of the
// compiler has no Oz grammar wired in, only the AST it would produce.
var ErrNoParser = errors.New("no Oz parser is linked into this build; supply one via parser.Parser")

// unimplemented is a placeholder Parser that always fails.  It exists so
// the driver and its tests can depend on the Parser interface without
// requiring a real grammar to be vendored into this repository.
type unimplemented struct{}

// Unimplemented returns a Parser whose methods always fail with
// ErrNoParser.
func Unimplemented() Parser {
	return unimplemented{}
}

func (unimplemented) ParseStatement(io.RuneScanner, *source.File, Defines) (ast.Statement, error) {
	return nil, ErrNoParser
}

func (unimplemented) ParseExpression(io.RuneScanner, *source.File, Defines) (ast.Expression, error) {
	return nil, ErrNoParser
}
