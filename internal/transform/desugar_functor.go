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

// DesugarFunctor lowers every FunctorExpression reachable from the
// program's top-level body into an equivalent FunExpression operating on
// concrete records, per spec.md section 4.2: require/imports bind by
// feature off a single supplied import record, and the functor's result is
// a record built from its exports.  The functor's own Abstraction (already
// allocated by the Namer so its require/imports/define-scope locals have a
// stable owner) is reused unchanged, now carrying a single formal (the
// import record) in place of whatever the Namer left it with.
func DesugarFunctor(prog *program.Program) {
	top := prog.TopLevel()

	rw := &ast.Rewriter{
		Expr: func(e ast.Expression) ast.Expression {
			if f, ok := e.(ast.FunctorExpression); ok {
				return lowerFunctor(prog, f)
			}

			return e
		},
	}

	top.SetBody(rw.RewriteStatement(top.Body()))
}

func lowerFunctor(prog *program.Program, f ast.FunctorExpression) ast.Expression {
	abs := prog.Abstraction(f.Abstraction)
	at := f.Pos()

	importParam := symbol.NewFormal(prog.Counter(), "Import")
	resultParam := symbol.NewFormal(prog.Counter(), "Export")
	importParam.SetOwner(f.Abstraction)
	resultParam.SetOwner(f.Abstraction)
	abs.SetFormals([]*symbol.VariableSymbol{importParam})

	var stmts []ast.Statement

	for _, req := range f.Require {
		stmts = append(stmts, ast.NewBind(at, ast.NewVariable(at, req.Variable),
			featureAccess(at, ast.NewVariable(at, importParam), req.Feature)))
	}

	if f.Prepare != nil {
		stmts = append(stmts, f.Prepare)
	}

	for _, imp := range f.Imports {
		stmts = append(stmts, ast.NewBind(at, ast.NewVariable(at, imp.Variable),
			featureAccess(at, ast.NewVariable(at, importParam), imp.Feature)))
	}

	stmts = append(stmts, f.Define)

	fields := make([]ast.FieldValue, len(f.Exports))
	for i, exp := range f.Exports {
		fields[i] = ast.FieldValue{Feature: featureExpr(at, exp.Feature), Value: ast.NewVariable(at, exp.Variable)}
	}

	exportRecord := ast.NewRecord(at, ast.NewConstantAtom(at, "export"), fields)
	stmts = append(stmts, ast.NewBind(at, ast.NewVariable(at, resultParam), exportRecord))

	body := ast.NewSequence(at, stmts...)

	return ast.NewFun(at, f.Abstraction, []*symbol.VariableSymbol{importParam}, resultParam, body)
}
