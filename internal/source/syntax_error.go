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

import "fmt"

// SyntaxError is a structured error which retains the span into the original
// source file where an error occurred, along with a message.  Used both by
// the parser (out of scope, consumed only) and by the semantic passes for
// unresolved names, duplicate declarations, and malformed constructs.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// NewSyntaxError constructs a syntax error directly from its parts.
func NewSyntaxError(srcfile *File, span Span, msg string) *SyntaxError {
	return &SyntaxError{srcfile, span, msg}
}

// SourceFile returns the underlying source file that this syntax error
// covers.
func (e *SyntaxError) SourceFile() *File {
	return e.srcfile
}

// Span returns the span of the original text on which this error is
// reported.
func (e *SyntaxError) Span() Span {
	return e.span
}

// Message returns the message to be reported.
func (e *SyntaxError) Message() string {
	return e.msg
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.srcfile == nil {
		return e.msg
	}

	return fmt.Sprintf("%s:%d:%d:%s", e.srcfile.Filename(), e.span.start, e.span.end, e.msg)
}

// FirstEnclosingLine determines the first line in this source file to which
// this error is associated.
func (e *SyntaxError) FirstEnclosingLine() Line {
	return e.srcfile.FindFirstEnclosingLine(e.span)
}
