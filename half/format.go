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

import "fmt"

// Format describes an IEEE 754 binary interchange layout.
//
//	S | E...E (ExponentWidth) | M...M (MantissaWidth)
//
// Only three layouts exist: Binary16, Binary32 and Binary64. Use FormatOf to
// look one up by width.
type Format struct {
	Width         int
	ExponentWidth int
	MantissaWidth int
	ExponentBias  int
}

// Supported binary formats.
var (
	Binary16 = newFormat(16)
	Binary32 = newFormat(32)
	Binary64 = newFormat(64)
)

// exponentWidth returns E(W) for the supported widths, or 0.
func exponentWidth(width int) int {
	switch width {
	case 16:
		return 5
	case 32:
		return 8
	case 64:
		return 11
	}
	return 0
}

func newFormat(width int) Format {
	e := exponentWidth(width)
	if e == 0 {
		panic(fmt.Sprintf("half: unsupported binary format width %d (want 16, 32 or 64)", width))
	}
	return Format{
		Width:         width,
		ExponentWidth: e,
		MantissaWidth: width - e - 1,
		ExponentBias:  1<<(e-1) - 1,
	}
}

// FormatOf returns the descriptor for width 16, 32 or 64.
// Any other width is a programming error and panics.
func FormatOf(width int) Format {
	switch width {
	case 16:
		return Binary16
	case 32:
		return Binary32
	case 64:
		return Binary64
	}
	return newFormat(width)
}

// checkFormat panics unless f is Binary16, Binary32 or Binary64.
func checkFormat(f Format) {
	switch f {
	case Binary16, Binary32, Binary64:
		return
	}
	panic(fmt.Sprintf("half: unsupported format %+v", f))
}

// String returns "binary16", "binary32" or "binary64".
func (f Format) String() string {
	return fmt.Sprintf("binary%d", f.Width)
}

// SignMask returns the mask of the sign bit.
func (f Format) SignMask() uint64 {
	return 1 << (f.Width - 1)
}

// ExponentMask returns the all-ones biased exponent value (Inf/NaN field),
// right-aligned.
func (f Format) ExponentMask() uint64 {
	return 1<<f.ExponentWidth - 1
}

// MantissaMask returns the mask of the trailing significand field.
func (f Format) MantissaMask() uint64 {
	return 1<<f.MantissaWidth - 1
}

// QuietBit returns the most significant mantissa bit, set on quiet NaNs.
func (f Format) QuietBit() uint64 {
	return 1 << (f.MantissaWidth - 1)
}

// MaxExponent is the largest unbiased exponent of a finite value.
func (f Format) MaxExponent() int {
	return f.ExponentBias
}

// MinExponent is the unbiased exponent of the smallest normal value.
func (f Format) MinExponent() int {
	return 1 - f.ExponentBias
}

// Unpack splits bits into sign (0 or 1), biased exponent and mantissa fields.
func (f Format) Unpack(bits uint64) (sign, exp, mant uint64) {
	sign = bits >> (f.Width - 1) & 1
	exp = bits >> f.MantissaWidth & f.ExponentMask()
	mant = bits & f.MantissaMask()
	return sign, exp, mant
}

// Pack is the inverse of Unpack. Fields are masked to their widths.
func (f Format) Pack(sign, exp, mant uint64) uint64 {
	return (sign&1)<<(f.Width-1) | (exp&f.ExponentMask())<<f.MantissaWidth | mant&f.MantissaMask()
}

// Inf returns the bits of infinity with the given sign (0 or 1).
func (f Format) Inf(sign uint64) uint64 {
	return f.Pack(sign, f.ExponentMask(), 0)
}
