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

// Package cmd wires the cobra CLI surface spec.md section 6 documents onto
// the compiler pipeline, the emitter, and the inspector: one root command
// (bootcompiler) and a compile subcommand that dispatches to the three
// program-assembly strategies.
package cmd

import (
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is overridden at link time by the release process; when empty,
// Execute falls back to the build info embedded by the Go toolchain.
var Version = ""

var rootCmd = &cobra.Command{
	Use:   "bootcompiler",
	Short: "Bootstrap compiler for Oz, emitting C++ VM programs",
	Long: `bootcompiler reads Oz functors, statements and expressions and
emits C++ source reconstructing a compiled program as an in-memory
virtual-machine data structure.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(inspectCmd)
}

// Execute runs the root command, exiting the process with code 1 on
// failure (spec.md section 6, "Exit codes").
func Execute() {
	cobra.OnInitialize(initLogging)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initLogging() {
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func resolveVersion() string {
	if Version != "" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}

	return "unknown"
}

func init() {
	rootCmd.Version = resolveVersion()
}
