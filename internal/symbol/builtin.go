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

package symbol

// ParamKind distinguishes an input parameter from an output parameter of a
// builtin, as declared by a `*-builtin.json` descriptor (spec.md section 6).
type ParamKind uint8

const (
	// In denotes an input (by-value) parameter.
	In ParamKind = iota
	// Out denotes an output parameter, bound by the builtin itself.
	Out
)

// BuiltinSymbol is a builtin procedure or function exposed by the VM
// runtime, with a known arity and a fully qualified C++ name used by the
// emitter to reference it from generated code.
type BuiltinSymbol struct {
	id      uint64
	name    string
	cppName string
	params  []ParamKind
	// inlineable indicates the VM has a dedicated opcode for this builtin
	// rather than requiring a generic call.
	inlineable bool
	// inlineOpCode is the dedicated opcode number, meaningful only when
	// inlineable is true.
	inlineOpCode int
}

// NewBuiltin constructs a builtin symbol.  Builtins are registered once, at
// module-load time, by the builtins loader; they are never re-owned and
// have no Abstraction (BuiltinSymbol.Owner is meaningless and not tracked).
func NewBuiltin(counter *Counter, name, cppName string, params []ParamKind, inlineable bool, inlineOpCode int) *BuiltinSymbol {
	return &BuiltinSymbol{counter.Next(), name, cppName, params, inlineable, inlineOpCode}
}

// Id returns this symbol's process-unique id.
func (b *BuiltinSymbol) Id() uint64 {
	return b.id
}

// Name returns the unqualified name under which this builtin was declared.
func (b *BuiltinSymbol) Name() string {
	return b.name
}

// IsDefined is always true for a BuiltinSymbol.
func (b *BuiltinSymbol) IsDefined() bool {
	return true
}

// CppName returns the fully qualified C++ name the emitter should reference.
func (b *BuiltinSymbol) CppName() string {
	return b.cppName
}

// Arity returns the number of parameters (input and output combined) this
// builtin accepts.
func (b *BuiltinSymbol) Arity() uint {
	return uint(len(b.params))
}

// Params returns the ordered parameter kinds of this builtin.
func (b *BuiltinSymbol) Params() []ParamKind {
	return b.params
}

// Inlineable reports whether the VM provides a dedicated opcode for this
// builtin.
func (b *BuiltinSymbol) Inlineable() bool {
	return b.inlineable
}

// InlineOpCode returns the dedicated opcode number.  Only meaningful when
// Inlineable() is true.
func (b *BuiltinSymbol) InlineOpCode() int {
	return b.inlineOpCode
}

// String renders this symbol for debugging / Lisp-style dumps.
func (b *BuiltinSymbol) String() string {
	return b.name
}
