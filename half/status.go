// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package half

import (
	"strings"
	"sync/atomic"
)

// Condition is a set of IEEE 754 exception flags raised by a conversion.
// Conditions are advisory: every conversion still produces a value.
type Condition uint8

const (
	// Underflow: a nonzero value was tiny and lost bits (rounded to a
	// subnormal or flushed to zero).
	Underflow Condition = 1 << iota

	// Overflow: the rounded value exceeded the largest finite value and
	// became infinity.
	Overflow

	// Inexact: the result differs from the exact input.
	Inexact

	// Invalid: a signaling NaN was quieted (NaNQuiet policy only).
	Invalid

	// NoCondition is the empty set.
	NoCondition Condition = 0

	allConditions = Underflow | Overflow | Inexact | Invalid
)

var conditionNames = [...]struct {
	c    Condition
	name string
}{
	{Underflow, "underflow"},
	{Overflow, "overflow"},
	{Inexact, "inexact"},
	{Invalid, "invalid"},
}

// Has reports whether every flag in mask is set in c.
func (c Condition) Has(mask Condition) bool {
	return c&mask == mask
}

// Any reports whether any flag in mask is set in c.
func (c Condition) Any(mask Condition) bool {
	return c&mask != 0
}

// String lists the set flags joined by "|", or "none".
func (c Condition) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, n := range conditionNames {
		if c&n.c != 0 {
			names = append(names, n.name)
		}
	}
	if rest := c &^ allConditions; rest != 0 {
		names = append(names, "unknown")
	}
	return strings.Join(names, "|")
}

// Status is a sticky flag register in the style of the IEEE 754 floating
// point environment. The zero value has no flags set.
//
// A Status is owned by one goroutine; it is not safe for concurrent use.
// Use AtomicStatus to collect flags from several goroutines.
type Status struct {
	flags Condition
}

// Raise sets the flags in c.
func (s *Status) Raise(c Condition) {
	s.flags |= c
}

// Test returns the subset of mask that is currently set.
func (s *Status) Test(mask Condition) Condition {
	return s.flags & mask
}

// Clear resets the flags in mask.
func (s *Status) Clear(mask Condition) {
	s.flags &^= mask
}

// Flags returns all set flags.
func (s *Status) Flags() Condition {
	return s.flags
}

// AtomicStatus is a Status that may be raised from several goroutines.
type AtomicStatus struct {
	flags atomic.Uint32
}

// Raise sets the flags in c.
func (s *AtomicStatus) Raise(c Condition) {
	if c != 0 {
		s.flags.Or(uint32(c))
	}
}

// Test returns the subset of mask that is currently set.
func (s *AtomicStatus) Test(mask Condition) Condition {
	return Condition(s.flags.Load()) & mask
}

// Clear resets the flags in mask.
func (s *AtomicStatus) Clear(mask Condition) {
	s.flags.And(^uint32(mask))
}

// Flags returns all set flags.
func (s *AtomicStatus) Flags() Condition {
	return Condition(s.flags.Load())
}
