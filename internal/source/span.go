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

package source

// Span identifies a contiguous region of a source file, measured as a
// half-open range of rune indices [start,end).
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span over [start,end).
func NewSpan(start, end int) Span {
	return Span{start, end}
}

// Start returns the starting index of this span.
func (s Span) Start() int {
	return s.start
}

// End returns the (exclusive) ending index of this span.
func (s Span) End() int {
	return s.end
}

// Length returns the number of characters covered by this span.
func (s Span) Length() int {
	return s.end - s.start
}

// Merge produces the smallest span enclosing both s and other, e.g. the
// union of a subtree's children's positions.
func (s Span) Merge(other Span) Span {
	start := min(s.start, other.start)
	end := max(s.end, other.end)

	return Span{start, end}
}
