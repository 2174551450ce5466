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

// Package half implements the IEEE 754 binary16 (half-precision) format:
// correctly rounded narrowing from float32 and float64, exact widening back,
// and sign-bit operations.
//
// Narrowing returns the raised IEEE exception flags (see Condition) next to
// the value instead of setting a process-wide status register; callers that
// want sticky flags accumulate them in a Status they own.
//
//	h, cond := half.Narrow32(65520)
//	// h == half.Float16Inf, cond == half.Overflow|half.Inexact
//
// Arithmetic on Float16 is intentionally absent: widen, compute, narrow.
package half

import (
	"fmt"
	"strconv"
)

// Float16 represents an IEEE 754 half-precision (binary16) floating-point number.
// It wraps uint16 for storage; every bit pattern is a valid value.
//
// Format: Sign (1 bit) | Exponent (5 bits) | Mantissa (10 bits)
//
//	S | EEEEE | MMMMMMMMMM
//
// Properties:
//   - Exponent bias: 15
//   - Max value: 65504
//   - Min positive normal: 2^-14 (~6.10e-5)
//   - Min positive subnormal: 2^-24 (~5.96e-8)
//   - Precision: ~3.3 decimal digits
type Float16 uint16

// Float16 constants for special values.
const (
	Float16Zero      Float16 = 0x0000 // Positive zero
	Float16NegZero   Float16 = 0x8000 // Negative zero
	Float16One       Float16 = 0x3C00 // 1.0
	Float16NegOne    Float16 = 0xBC00 // -1.0
	Float16MaxValue  Float16 = 0x7BFF // 65504 (max finite value)
	Float16MinNormal Float16 = 0x0400 // 2^-14, smallest normal
	Float16MinValue  Float16 = 0x0001 // 2^-24, smallest subnormal
	Float16Inf       Float16 = 0x7C00 // Positive infinity
	Float16NegInf    Float16 = 0xFC00 // Negative infinity
	Float16NaN       Float16 = 0x7E00 // Quiet NaN (canonical)

	signMask16     = 0x8000
	exponentMask16 = 0x7C00
	mantissaMask16 = 0x03FF
)

// FromBits returns the Float16 with the given binary16 encoding.
func FromBits(b uint16) Float16 {
	return Float16(b)
}

// Bits returns the binary16 encoding of h.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

// IsNaN reports whether h is a NaN of any payload.
func (h Float16) IsNaN() bool {
	return h&exponentMask16 == exponentMask16 && h&mantissaMask16 != 0
}

// IsSignalingNaN reports whether h is a NaN with the quiet bit clear.
func (h Float16) IsSignalingNaN() bool {
	return h.IsNaN() && h&0x0200 == 0
}

// IsInf reports whether h is positive or negative infinity.
func (h Float16) IsInf() bool {
	return h&^signMask16 == Float16Inf
}

// IsZero reports whether h is positive or negative zero.
func (h Float16) IsZero() bool {
	return h&^signMask16 == 0
}

// IsSubnormal reports whether h is a nonzero value with a zero exponent field.
func (h Float16) IsSubnormal() bool {
	return h&exponentMask16 == 0 && h&mantissaMask16 != 0
}

// IsNormal reports whether h is finite, nonzero and not subnormal.
func (h Float16) IsNormal() bool {
	exp := h & exponentMask16
	return exp != 0 && exp != exponentMask16
}

// IsFinite reports whether h is neither infinite nor NaN.
func (h Float16) IsFinite() bool {
	return h&exponentMask16 != exponentMask16
}

// String formats h as the shortest decimal that identifies its exact float32
// value.
func (h Float16) String() string {
	return strconv.FormatFloat(float64(h.Float32()), 'g', -1, 32)
}

// Format implements fmt.Formatter. The integer verbs %b, %d, %o, %x and %X
// print the encoding, %v and %s print String, and the float verbs format
// the value.
func (h Float16) Format(s fmt.State, verb rune) {
	switch verb {
	case 'b', 'd', 'o', 'x', 'X':
		fmt.Fprintf(s, fmt.FormatString(s, verb), uint16(h))
	case 'v', 's':
		fmt.Fprintf(s, fmt.FormatString(s, 's'), h.String())
	default:
		fmt.Fprintf(s, fmt.FormatString(s, verb), h.Float32())
	}
}
