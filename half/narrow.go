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
	"fmt"
	"math"
)

// NaNPolicy selects what survives of a NaN payload when narrowing.
type NaNPolicy uint8

const (
	// NaNPreserve keeps the most significant payload bits. If those are all
	// zero the lowest mantissa bit is set so the result stays a NaN.
	// Signaling NaNs stay signaling and no condition is raised.
	NaNPreserve NaNPolicy = iota

	// NaNQuiet keeps the payload like NaNPreserve and also sets the quiet
	// bit, raising Invalid when the input was a signaling NaN. This matches
	// the F16C and ARM FCVT instructions.
	NaNQuiet

	// NaNCanonical replaces every NaN with the canonical quiet NaN of the
	// destination format, keeping only the sign.
	NaNCanonical
)

// String returns the policy name as accepted by ParseNaNPolicy.
func (p NaNPolicy) String() string {
	switch p {
	case NaNPreserve:
		return "preserve"
	case NaNQuiet:
		return "quiet"
	case NaNCanonical:
		return "canonical"
	default:
		return fmt.Sprintf("NaNPolicy(%d)", uint8(p))
	}
}

// ParseNaNPolicy parses "preserve", "quiet" or "canonical".
func ParseNaNPolicy(s string) (NaNPolicy, error) {
	for _, p := range []NaNPolicy{NaNPreserve, NaNQuiet, NaNCanonical} {
		if s == p.String() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("half: unknown NaN policy %q", s)
}

// Converter narrows wide floats using round-to-nearest, ties-to-even.
// The zero value uses NaNPreserve and is what the package-level functions use.
type Converter struct {
	NaN NaNPolicy
}

// Narrow32 converts f to binary16 and reports the raised conditions.
func (c Converter) Narrow32(f float32) (Float16, Condition) {
	b, cond := c.NarrowBits(uint64(math.Float32bits(f)), Binary32, Binary16)
	return Float16(b), cond
}

// Narrow64 converts f to binary16 directly, without rounding through float32.
func (c Converter) Narrow64(f float64) (Float16, Condition) {
	b, cond := c.NarrowBits(math.Float64bits(f), Binary64, Binary16)
	return Float16(b), cond
}

// Reduce converts f to float32 with the same rounding and reporting rules.
func (c Converter) Reduce(f float64) (float32, Condition) {
	b, cond := c.NarrowBits(math.Float64bits(f), Binary64, Binary32)
	return math.Float32frombits(uint32(b)), cond
}

// NarrowBits rounds the src-encoded pattern b to the narrower dst format.
// It panics if dst is not narrower than src or either is not one of
// Binary16, Binary32 and Binary64.
func (c Converter) NarrowBits(b uint64, src, dst Format) (uint64, Condition) {
	checkFormat(src)
	checkFormat(dst)
	if dst.Width >= src.Width {
		panic(fmt.Sprintf("half: cannot narrow %v to %v", src, dst))
	}
	sign, exp, mant := src.Unpack(b)

	switch {
	case exp == src.ExponentMask():
		if mant == 0 {
			return dst.Inf(sign), NoCondition
		}
		return c.narrowNaN(sign, mant, src, dst)
	case exp == 0 && mant == 0:
		return dst.Pack(sign, 0, 0), NoCondition
	}

	// Significand with its implicit bit and the unbiased exponent of its
	// leading position (bit src.MantissaWidth).
	sig := mant
	e := src.MinExponent()
	if exp != 0 {
		sig |= 1 << src.MantissaWidth
		e = int(exp) - src.ExponentBias
	}

	// Number of low significand bits that do not fit in dst.
	shift := src.MantissaWidth - dst.MantissaWidth
	if e < dst.MinExponent() {
		shift += dst.MinExponent() - e
	}

	switch {
	case shift > src.MantissaWidth+1:
		// Below half the smallest subnormal: rounds to zero whatever the
		// mantissa.
		return dst.Pack(sign, 0, 0), Underflow | Inexact

	case e < dst.MinExponent():
		kept, inexact := roundNearestEven(sig, shift)
		// A carry out of the subnormal mantissa lands in the exponent field
		// and yields the smallest normal.
		out := sign<<(dst.Width-1) | kept
		if inexact {
			return out, Underflow | Inexact
		}
		return out, NoCondition

	case e <= dst.MaxExponent():
		kept, inexact := roundNearestEven(sig, shift)
		biased := uint64(e + dst.ExponentBias)
		if kept>>(dst.MantissaWidth+1) != 0 {
			kept >>= 1
			biased++
		}
		if biased >= dst.ExponentMask() {
			return dst.Inf(sign), Overflow | Inexact
		}
		out := dst.Pack(sign, biased, kept)
		if inexact {
			return out, Inexact
		}
		return out, NoCondition

	default:
		return dst.Inf(sign), Overflow | Inexact
	}
}

func (c Converter) narrowNaN(sign, mant uint64, src, dst Format) (uint64, Condition) {
	exp := dst.ExponentMask()
	payload := mant >> (src.MantissaWidth - dst.MantissaWidth)

	switch c.NaN {
	case NaNCanonical:
		return dst.Pack(sign, exp, dst.QuietBit()), NoCondition
	case NaNQuiet:
		cond := NoCondition
		if mant&src.QuietBit() == 0 {
			cond = Invalid
		}
		return dst.Pack(sign, exp, payload|dst.QuietBit()), cond
	}

	if payload == 0 {
		payload = 1
	}
	return dst.Pack(sign, exp, payload), NoCondition
}

// roundNearestEven drops the low shift bits of sig, rounding to nearest with
// ties to even. inexact reports whether any dropped bit was set.
// shift must be in [1, 63].
func roundNearestEven(sig uint64, shift int) (kept uint64, inexact bool) {
	kept = sig >> shift
	rem := sig & (1<<shift - 1)
	halfway := uint64(1) << (shift - 1)
	if rem > halfway || (rem == halfway && kept&1 != 0) {
		kept++
	}
	return kept, rem != 0
}

var defaultConverter Converter

// Narrow32 converts f to binary16 with round-to-nearest-even and returns the
// raised conditions alongside the result.
func Narrow32(f float32) (Float16, Condition) {
	return defaultConverter.Narrow32(f)
}

// Narrow64 converts f to binary16 with a single rounding step.
func Narrow64(f float64) (Float16, Condition) {
	return defaultConverter.Narrow64(f)
}

// Reduce converts f to float32 and returns the raised conditions, which Go's
// built-in float32(f) conversion does not report.
func Reduce(f float64) (float32, Condition) {
	return defaultConverter.Reduce(f)
}

// FromFloat32 converts f to binary16, discarding conditions.
func FromFloat32(f float32) Float16 {
	h, _ := defaultConverter.Narrow32(f)
	return h
}

// FromFloat64 converts f to binary16, discarding conditions.
func FromFloat64(f float64) Float16 {
	h, _ := defaultConverter.Narrow64(f)
	return h
}
