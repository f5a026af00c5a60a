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

package inspect

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Page writes lines to w. When stdout is an interactive terminal, it pages
// them a screenful at a time, advancing on any keypress and quitting on 'q'
// or Ctrl-C; otherwise it dumps every line straight through, matching what a
// piped or redirected invocation (e.g. under CI) expects.
func Page(w io.Writer, lines []string) error {
	fd := int(os.Stdout.Fd())
	if w != os.Stdout || !term.IsTerminal(fd) {
		return dump(w, lines)
	}

	return page(fd, lines)
}

func dump(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}

	return nil
}

func page(fd int, lines []string) error {
	_, height, err := term.GetSize(fd)
	if err != nil {
		return dump(os.Stdout, lines)
	}

	if height < 2 {
		height = 24
	}

	pageSize := height - 1

	state, err := term.MakeRaw(fd)
	if err != nil {
		return dump(os.Stdout, lines)
	}
	defer term.Restore(fd, state)

	reader := bufio.NewReader(os.Stdin)

	for start := 0; start < len(lines); start += int(pageSize) {
		end := min(start+int(pageSize), len(lines))

		for _, l := range lines[start:end] {
			fmt.Fprintf(os.Stdout, "%s\r\n", l)
		}

		if end >= len(lines) {
			break
		}

		fmt.Fprint(os.Stdout, "-- more --\r")

		key, err := reader.ReadByte()
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stdout, "\r           \r")

		if key == 'q' || key == 3 {
			break
		}
	}

	return nil
}
