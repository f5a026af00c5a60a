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

import "github.com/yjaradin/mozart2-bootcompiler/internal/program"

// DesugarClass would lower class definitions (method tables, attributes,
// features) into records and procedures.  Oz class syntax does not appear
// anywhere in this corpus's functor/statement/expression surface, so, per
// spec.md section 4.2 ("If not used in the target corpus, the pass is a
// no-op pass-through"), this pass leaves the tree untouched.  It remains a
// pipeline stage in its own right so the pass ordering and per-pass
// logging stay faithful to the documented nine-stage sequence.
func DesugarClass(prog *program.Program) {
	_ = prog
}
