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

// Flattener performs closure conversion (spec.md section 4.2): for every
// nested ProcExpression/FunExpression it determines the abstraction's free
// variables, records them as that abstraction's globals in first-reference
// order, installs the (already recursively flattened) body onto the
// Abstraction the Namer allocated for it, and replaces the inline
// procedure value with a CreateAbstraction node referencing it. Because
// abstractionWalker already recurses into a ProcExpression's body before
// invoking the Expr hook on the ProcExpression itself, nested closures are
// hoisted innermost-first, so a free-variable scan of an outer body never
// sees the inner body's own locals - only the CreateAbstraction left
// behind for it.
type Flattener struct {
	prog *program.Program
}

// NewFlattener constructs a Flattener over prog.
func NewFlattener(prog *program.Program) *Flattener {
	return &Flattener{prog: prog}
}

// Run hoists every nested procedure/function value reachable from the
// program's top-level body.
func (fl *Flattener) Run() {
	top := fl.prog.TopLevel()

	w := &abstractionWalker{
		Expr: fl.lowerExpr,
	}

	top.SetBody(w.walkStatement(top.Id(), top.Body()))
}

func (fl *Flattener) lowerExpr(_ symbol.AbstractionID, e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case ast.ProcExpression:
		return fl.hoist(n.Abstraction, n.Formals, n.Body)

	case ast.FunExpression:
		formals := append(append([]*symbol.VariableSymbol{}, n.Formals...), n.Result)
		return fl.hoist(n.Abstraction, formals, n.Body)

	default:
		return e
	}
}

func (fl *Flattener) hoist(id symbol.AbstractionID, formals []*symbol.VariableSymbol, body ast.Statement) ast.Expression {
	abs := fl.prog.Abstraction(id)
	abs.SetFormals(formals)
	abs.SetBody(body)

	free := freeVariables(id, body)
	captured := make([]ast.Expression, len(free))

	for i, v := range free {
		abs.GlobalIndex(v)
		v.MarkGlobal()
		captured[i] = ast.NewVariable(body.Pos(), v)
	}

	return ast.NewCreateAbstraction(body.Pos(), id, captured)
}

// freeVariables returns, in first-reference order, every VariableSymbol
// referenced within body whose owner is not owner.
func freeVariables(owner symbol.AbstractionID, body ast.Statement) []*symbol.VariableSymbol {
	var free []*symbol.VariableSymbol

	seen := make(map[uint64]bool)

	w := &abstractionWalker{
		Expr: func(_ symbol.AbstractionID, e ast.Expression) ast.Expression {
			if v, ok := e.(ast.Variable); ok && v.Symbol.Owner() != owner && !seen[v.Symbol.Id()] {
				seen[v.Symbol.Id()] = true
				free = append(free, v.Symbol)
			}

			return e
		},
	}

	w.walkStatement(owner, body)

	return free
}
