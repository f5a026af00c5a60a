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

// Package builtins loads the JSON descriptors of VM-provided builtin
// modules (spec.md section 6, "Builtin-module descriptors (consumed)") and
// exposes them as synthetic functor-export records keyed by boot-module
// URL, ready for BaseEnv-mode program assembly to install.
package builtins

// Descriptor is the top-level shape of a `*-builtin.json` file.
type Descriptor struct {
	Name     string              `json:"name"`
	Builtins []BuiltinDescriptor `json:"builtins"`
}

// BuiltinDescriptor describes a single builtin exposed by a module.
type BuiltinDescriptor struct {
	FullCppName  string            `json:"fullCppName"`
	Name         string            `json:"name"`
	Inlineable   bool              `json:"inlineable"`
	InlineOpCode int               `json:"inlineOpCode"`
	Params       []ParamDescriptor `json:"params"`
}

// ParamDescriptor describes a single formal parameter's direction.
type ParamDescriptor struct {
	// Kind is either "In" or "Out".
	Kind string `json:"kind"`
}
