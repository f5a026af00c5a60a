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
	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
)

// featureExpr renders a Feature as the constant expression that denotes it
// (an int or an atom), used wherever a pass needs to build a feature-access
// or record-field expression from a Feature value rather than an already
// existing Expression.
func featureExpr(at source.Span, f ast.Feature) ast.Expression {
	if f.IsInt {
		return ast.NewConstantInt(at, f.Int)
	}

	return ast.NewConstantAtom(at, f.Atom)
}

// featureAccess builds a FeatureAccess reading f off of record.
func featureAccess(at source.Span, record ast.Expression, f ast.Feature) ast.Expression {
	return ast.NewFeatureAccess(at, record, featureExpr(at, f))
}
