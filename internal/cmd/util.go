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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yjaradin/mozart2-bootcompiler/internal/source"
)

// GetFlag retrieves a bool flag, exiting with code 1 on the internal error
// of a misregistered flag name (spec.md section 6, "Exit codes").
func GetFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return v
}

// GetString retrieves a string flag.
func GetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return v
}

// GetStringArray retrieves a repeatable string flag, preserving the order
// the user supplied it in (spec.md section 6, "-h/--header ... repeatable,
// order preserved").
func GetStringArray(cmd *cobra.Command, name string) []string {
	v, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	return v
}

// printSyntaxError renders one error with file, line, column, and a caret
// under the offending span (spec.md section 7, "A user-facing failure
// prints each error with file, line, column, and a caret pointing at the
// token").
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	length := min(line.Length()-lineOffset, span.Length())

	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	fmt.Println()
	fmt.Println(line.String())
	fmt.Print(strings.Repeat(" ", lineOffset))
	fmt.Println(strings.Repeat("^", length))
}

// printSyntaxErrors renders every error in errs, in order.
func printSyntaxErrors(errs []*source.SyntaxError) {
	for _, err := range errs {
		printSyntaxError(err)
	}
}
