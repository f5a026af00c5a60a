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

import (
	"fmt"
	"sync/atomic"
)

// Counter is an atomic, monotonically increasing source of symbol ids.  It
// is attached to a Program rather than held process-global, so independent
// compilations (e.g. parallel tests) never share or race on id allocation;
// an atomic counter makes it trivially safe even if a future caller invokes
// it from more than one goroutine (see spec.md section 5).
type Counter struct {
	next atomic.Uint64
}

// NewCounter constructs a fresh counter starting at id 1 (0 is reserved for
// NoSymbol).
func NewCounter() *Counter {
	c := &Counter{}
	c.next.Store(1)

	return c
}

// Next allocates and returns the next symbol id.
func (c *Counter) Next() uint64 {
	return c.next.Add(1) - 1
}

// syntheticName mints a name of the form `x$N` for a compiler-generated
// variable, where N is unique within the lifetime of the counter that
// produced it.
func syntheticName(prefix string, id uint64) string {
	return fmt.Sprintf("%s$%d", prefix, id)
}
