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
	"math/bits"
)

// WidenBits converts the src-encoded pattern b to the wider dst format.
// The conversion is exact for every input, NaN payloads included, so it
// raises no conditions. It panics if dst is not wider than src or either is
// not one of Binary16, Binary32 and Binary64.
func WidenBits(b uint64, src, dst Format) uint64 {
	checkFormat(src)
	checkFormat(dst)
	if dst.Width <= src.Width {
		panic(fmt.Sprintf("half: cannot widen %v to %v", src, dst))
	}
	sign, exp, mant := src.Unpack(b)
	align := dst.MantissaWidth - src.MantissaWidth

	switch {
	case exp == src.ExponentMask():
		// Inf keeps a zero mantissa, NaN keeps its payload left-aligned.
		return dst.Pack(sign, dst.ExponentMask(), mant<<align)

	case exp == 0:
		if mant == 0 {
			return dst.Pack(sign, 0, 0)
		}
		// Subnormal in src, normal in dst: move the leading one into the
		// implicit position.
		shift := src.MantissaWidth + 1 - bits.Len64(mant)
		mant = mant << shift & src.MantissaMask()
		e := src.MinExponent() - shift
		return dst.Pack(sign, uint64(e+dst.ExponentBias), mant<<align)
	}

	e := int(exp) - src.ExponentBias
	return dst.Pack(sign, uint64(e+dst.ExponentBias), mant<<align)
}

// Float32 converts h to float32. This is exact.
func (h Float16) Float32() float32 {
	return math.Float32frombits(uint32(WidenBits(uint64(h), Binary16, Binary32)))
}

// Float64 converts h to float64. This is exact.
func (h Float16) Float64() float64 {
	return math.Float64frombits(WidenBits(uint64(h), Binary16, Binary64))
}

// Widen returns the bit pattern of h in the dst format. Widening to Binary16
// returns h's own bits.
func (h Float16) Widen(dst Format) uint64 {
	if dst == Binary16 {
		return uint64(h)
	}
	return WidenBits(uint64(h), Binary16, dst)
}
