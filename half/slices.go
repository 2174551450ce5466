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

// This file provides bulk conversions between Float16 slices and float32 or
// float64 slices.
//
// Promotion: Float16 -> float32/float64 (widens, no precision loss)
// Demotion: float32/float64 -> Float16 (narrows, may lose precision or overflow)
//
// Demotions return the union of the conditions raised by every element.
// A destination shorter than the source is a caller bug and panics.

func checkLen(dst, src int) {
	if dst < src {
		panic("half: destination slice too small")
	}
}

// FromFloat32s narrows src into dst using c's NaN policy.
func (c Converter) FromFloat32s(dst []Float16, src []float32) Condition {
	checkLen(len(dst), len(src))
	var cond Condition
	for i, f := range src {
		h, fc := c.Narrow32(f)
		dst[i] = h
		cond |= fc
	}
	return cond
}

// FromFloat64s narrows src into dst using c's NaN policy.
func (c Converter) FromFloat64s(dst []Float16, src []float64) Condition {
	checkLen(len(dst), len(src))
	var cond Condition
	for i, f := range src {
		h, fc := c.Narrow64(f)
		dst[i] = h
		cond |= fc
	}
	return cond
}

// FromFloat32s narrows src into dst.
func FromFloat32s(dst []Float16, src []float32) Condition {
	return defaultConverter.FromFloat32s(dst, src)
}

// FromFloat64s narrows src into dst.
func FromFloat64s(dst []Float16, src []float64) Condition {
	return defaultConverter.FromFloat64s(dst, src)
}

// ToFloat32s widens src into dst.
func ToFloat32s(dst []float32, src []Float16) {
	checkLen(len(dst), len(src))
	for i, h := range src {
		dst[i] = h.Float32()
	}
}

// ToFloat64s widens src into dst.
func ToFloat64s(dst []float64, src []Float16) {
	checkLen(len(dst), len(src))
	for i, h := range src {
		dst[i] = h.Float64()
	}
}
