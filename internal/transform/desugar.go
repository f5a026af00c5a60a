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

// Desugar lowers the remaining surface sugar spec.md section 4.2 calls out
// that this AST actually models: function definitions into procedures that
// bind an explicit result formal, and tuple shorthand into the equivalent
// record with features 1..n.  `for`-loop and infix-operator desugaring are
// a no-op here: this AST has no dedicated for-loop or operator node (the
// external parser is expected to hand either construct to this compiler
// already expressed as a builtin call / recursive procedure), so there is
// nothing for this pass to rewrite for them.
func Desugar(prog *program.Program) {
	top := prog.TopLevel()

	rw := &ast.Rewriter{
		Expr: func(e ast.Expression) ast.Expression {
			switch n := e.(type) {
			case ast.FunExpression:
				formals := append(append([]*symbol.VariableSymbol{}, n.Formals...), n.Result)
				return ast.NewProc(n.Pos(), n.Abstraction, formals, n.Body)

			case ast.TupleExpression:
				fields := make([]ast.FieldValue, len(n.Elements))
				for i, el := range n.Elements {
					fields[i] = ast.FieldValue{Feature: ast.NewConstantInt(n.Pos(), int64(i+1)), Value: el}
				}

				return ast.NewRecord(n.Pos(), n.Label, fields)

			default:
				return e
			}
		},
	}

	top.SetBody(rw.RewriteStatement(top.Body()))
}
