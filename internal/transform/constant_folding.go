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

package transform

import (
	"github.com/yjaradin/mozart2-bootcompiler/internal/ast"
	"github.com/yjaradin/mozart2-bootcompiler/internal/program"
	"github.com/yjaradin/mozart2-bootcompiler/internal/symbol"
)

// ConstantFolding canonicalises record constructions (RecordExpression and
// RecordStatement) whose feature expressions are all statically known
// int/atom constants, sorting their fields into feature-ascending order.
// It does not fold arithmetic and does not touch field values; a record
// with any non-constant feature is left untouched.
type ConstantFolding struct {
	prog *program.Program
}

// NewConstantFolding constructs a ConstantFolding pass over prog.
func NewConstantFolding(prog *program.Program) *ConstantFolding {
	return &ConstantFolding{prog: prog}
}

// Run canonicalises the field order of every reachable record construction
// whose features are all int/atom constants.
func (cf *ConstantFolding) Run() {
	top := cf.prog.TopLevel()

	w := &abstractionWalker{
		Stmt: func(_ symbol.AbstractionID, s ast.Statement) ast.Statement {
			if r, ok := s.(ast.RecordStatement); ok {
				folded := cf.foldRecord(ast.NewRecord(r.Pos(), r.Label, r.Fields)).(ast.RecordExpression)
				r.Fields = folded.Fields

				return r
			}

			return s
		},
		Expr: func(_ symbol.AbstractionID, e ast.Expression) ast.Expression {
			if r, ok := e.(ast.RecordExpression); ok {
				return cf.foldRecord(r)
			}

			return e
		},
	}

	top.SetBody(w.walkStatement(top.Id(), top.Body()))
}

// foldRecord sorts r's fields into canonical (feature-ascending) order when
// every feature expression is a statically known int/atom constant, and
// returns r unchanged otherwise.
func (cf *ConstantFolding) foldRecord(r ast.RecordExpression) ast.Expression {
	allKnown := true

	for _, f := range r.Fields {
		if !isConstantFeature(f.Feature) {
			allKnown = false
			break
		}
	}

	if !allKnown {
		return r
	}

	fields := append([]ast.FieldValue{}, r.Fields...)
	sortFieldsByFeature(fields)
	r.Fields = fields

	return r
}

func isConstantFeature(e ast.Expression) bool {
	switch e.(type) {
	case ast.ConstantInt, ast.ConstantAtom:
		return true
	default:
		return false
	}
}

func featureOrdinal(e ast.Expression) (isInt bool, i int64, a string) {
	switch n := e.(type) {
	case ast.ConstantInt:
		return true, n.Value, ""
	case ast.ConstantAtom:
		return false, 0, n.Value
	default:
		return false, 0, ""
	}
}

// sortFieldsByFeature orders fields with integer features first (ascending),
// then atom features (lexically), matching the arity ordering convention
// spec.md section 9 assumes when deciding tuple-shapedness.
func sortFieldsByFeature(fields []ast.FieldValue) {
	less := func(i, j int) bool {
		iInt, iNum, iAtom := featureOrdinal(fields[i].Feature)
		jInt, jNum, jAtom := featureOrdinal(fields[j].Feature)

		if iInt != jInt {
			return iInt
		}

		if iInt {
			return iNum < jNum
		}

		return iAtom < jAtom
	}

	// Simple insertion sort: field lists are small (arities rarely exceed a
	// handful of features) and this keeps the pass dependency-free.
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			fields[j], fields[j-1] = fields[j-1], fields[j]
		}
	}
}
