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

import "os"

// File represents a given source file (typically stored on disk) over which
// positions are tracked during parsing and compilation.
type File struct {
	// Filename for this source file, as it should be reported in error
	// messages.
	filename string
	// Contents of this file.
	contents []rune
}

// NewFile constructs a new source file from a given byte array.
func NewFile(filename string, bytes []byte) *File {
	contents := []rune(string(bytes))
	return &File{filename, contents}
}

// ReadFiles reads a given set of source files from disk, or produces an
// error.
func ReadFiles(filenames ...string) ([]*File, error) {
	files := make([]*File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := os.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = NewFile(n, bytes)
	}
	//
	return files, nil
}

// Filename returns the filename associated with this source file.
func (f *File) Filename() string {
	return f.filename
}

// Contents returns the contents of this source file.
func (f *File) Contents() []rune {
	return f.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (f *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{f, span, msg}
}

// Line provides information about a given line within the original string.
// This includes the line number (counting from 1), and the span of the line
// within the original string.
type Line struct {
	text   []rune
	span   Span
	number int
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (l Line) Number() int {
	return l.number
}

// Start returns the starting index of this line in the original string.
func (l Line) Start() int {
	return l.span.start
}

// Length returns the number of characters in this line.
func (l Line) Length() int {
	return l.span.Length()
}

// String returns the string representing this line.
func (l Line) String() string {
	return string(l.text[l.span.start:l.span.end])
}

// FindFirstEnclosingLine determines the first line in this source file which
// encloses the start of a span.  If the position is beyond the bounds of the
// source file then the last physical line is returned.  The returned line is
// not guaranteed to enclose the entire span, as spans can cross multiple
// lines.
func (f *File) FindFirstEnclosingLine(span Span) Line {
	index := span.start
	num := 1
	start := 0
	//
	for i := 0; i < len(f.contents); i++ {
		if i == index {
			end := findEndOfLine(index, f.contents)
			return Line{f.contents, Span{start, end}, num}
		} else if f.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{f.contents, Span{start, len(f.contents)}, num}
}

func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	//
	return len(text)
}
