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
	"math"
	"math/big"
	"math/rand/v2"
	"testing"
)

var negZero = math.Copysign(0, -1)

// TestNarrow32 tests conversion from float32 to Float16, including the
// conditions raised.
func TestNarrow32(t *testing.T) {
	tests := []struct {
		name  string
		input float32
		want  Float16
		cond  Condition
	}{
		{"Zero", 0, 0x0000, NoCondition},
		{"NegZero", float32(negZero), 0x8000, NoCondition},
		{"One", 1, 0x3C00, NoCondition},
		{"NegTwo", -2, 0xC000, NoCondition},
		{"Half", 0.5, 0x3800, NoCondition},
		{"OneThird", 0x1.554p-02, 0x3555, NoCondition},
		{"LargestBelowOne", 0x1.ffcp-01, 0x3BFF, NoCondition},
		{"SmallestAboveOne", 0x1.004p+00, 0x3C01, NoCondition},
		{"MaxValue", 65504, 0x7BFF, NoCondition},
		{"MinNormal", 0x1p-14, 0x0400, NoCondition},
		{"LargestSubnormal", 0x1.ff8p-15, 0x03FF, NoCondition},
		{"SmallestSubnormal", 0x1p-24, 0x0001, NoCondition},
		{"SmallestSubnormalApprox", 5.96046e-8, 0x0001, Underflow | Inexact},
		{"Pi", math.Pi, 0x4248, Inexact},

		// Ties go to the even neighbour, anything past the tie rounds up.
		{"TieDown", 0x1.002p+00, 0x3C00, Inexact},
		{"AboveTie", math.Nextafter32(0x1.002p+00, 2), 0x3C01, Inexact},
		{"BelowTie", math.Nextafter32(0x1.006p+00, 0), 0x3C01, Inexact},
		{"TieUp", 0x1.006p+00, 0x3C02, Inexact},

		// Mantissa carry propagates into the exponent.
		{"CarryIntoExponent", 0x1.ffep+00, 0x4000, Inexact},
		{"SubnormalCarryToNormal", 0x1.ffep-15, 0x0400, Underflow | Inexact},
		{"CarryIntoInfinity", 65520, 0x7C00, Overflow | Inexact},
		{"BelowOverflowTie", math.Nextafter32(65520, 0), 0x7BFF, Inexact},

		{"Overflow", 0x1p+16, 0x7C00, Overflow | Inexact},
		{"NegOverflow", -0x1p+17, 0xFC00, Overflow | Inexact},
		{"MaxFloat32", math.MaxFloat32, 0x7C00, Overflow | Inexact},

		{"HalfSmallestSubnormalTie", 0x1p-25, 0x0000, Underflow | Inexact},
		{"AboveHalfSmallestSubnormal", math.Nextafter32(0x1p-25, 1), 0x0001, Underflow | Inexact},
		{"Underflow", 2.0e-9, 0x0000, Underflow | Inexact},
		{"NegUnderflow", -2.0e-9, 0x8000, Underflow | Inexact},
		{"Float32Subnormal", 0x1p-140, 0x0000, Underflow | Inexact},
		{"SmallestFloat32", math.SmallestNonzeroFloat32, 0x0000, Underflow | Inexact},

		{"Inf", float32(math.Inf(1)), 0x7C00, NoCondition},
		{"NegInf", float32(math.Inf(-1)), 0xFC00, NoCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cond := Narrow32(tt.input)
			if got != tt.want || cond != tt.cond {
				t.Errorf("Narrow32(%v): got 0x%04X [%v], want 0x%04X [%v]", tt.input, got, cond, tt.want, tt.cond)
			}
			if h := FromFloat32(tt.input); h != tt.want {
				t.Errorf("FromFloat32(%v): got 0x%04X, want 0x%04X", tt.input, h, tt.want)
			}
		})
	}
}

// TestNarrow64 covers float64 inputs whose correct binary16 result differs
// from rounding through float32 first.
func TestNarrow64(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  Float16
		cond  Condition
	}{
		{"One", 1, 0x3C00, NoCondition},
		{"NegZero", negZero, 0x8000, NoCondition},
		{"MaxValue", 65504, 0x7BFF, NoCondition},
		{"CarryIntoInfinity", 65520, 0x7C00, Overflow | Inexact},
		// 1 + 2^-11 + 2^-40 is just above the tie. Rounding to float32
		// first lands exactly on the tie and rounds down to 1.
		{"NoDoubleRounding", 1 + 0x1p-11 + 0x1p-40, 0x3C01, Inexact},
		{"Tie", 1 + 0x1p-11, 0x3C00, Inexact},
		{"Float64Subnormal", 0x1p-1070, 0x0000, Underflow | Inexact},
		{"Huge", math.MaxFloat64, 0x7C00, Overflow | Inexact},
		{"NegHuge", -1e300, 0xFC00, Overflow | Inexact},
		{"SmallestSubnormal", 0x1p-24, 0x0001, NoCondition},
		{"Inf", math.Inf(1), 0x7C00, NoCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cond := Narrow64(tt.input)
			if got != tt.want || cond != tt.cond {
				t.Errorf("Narrow64(%v): got 0x%04X [%v], want 0x%04X [%v]", tt.input, got, cond, tt.want, tt.cond)
			}
			if h := FromFloat64(tt.input); h != tt.want {
				t.Errorf("FromFloat64(%v): got 0x%04X, want 0x%04X", tt.input, h, tt.want)
			}
		})
	}
}

// TestNarrowNaN tests each NaN policy on quiet, signaling and negative NaNs.
func TestNarrowNaN(t *testing.T) {
	tests := []struct {
		name   string
		input  uint32
		policy NaNPolicy
		want   uint64
		cond   Condition
	}{
		{"PreserveQuiet", 0x7FC00000, NaNPreserve, 0x7E00, NoCondition},
		{"PreservePayload", 0x7FC02000, NaNPreserve, 0x7E01, NoCondition},
		{"PreserveNegative", 0xFFC00000, NaNPreserve, 0xFE00, NoCondition},
		{"PreserveLowPayloadForced", 0x7F800001, NaNPreserve, 0x7C01, NoCondition},
		{"PreserveSignaling", 0x7F802000, NaNPreserve, 0x7C01, NoCondition},
		{"QuietSignaling", 0x7F802000, NaNQuiet, 0x7E01, Invalid},
		{"QuietLowPayload", 0x7F800001, NaNQuiet, 0x7E00, Invalid},
		{"QuietAlreadyQuiet", 0xFFC02000, NaNQuiet, 0xFE01, NoCondition},
		{"Canonical", 0x7FC02000, NaNCanonical, 0x7E00, NoCondition},
		{"CanonicalNegative", 0xFF800001, NaNCanonical, 0xFE00, NoCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Converter{NaN: tt.policy}
			got, cond := c.NarrowBits(uint64(tt.input), Binary32, Binary16)
			if got != tt.want || cond != tt.cond {
				t.Errorf("NarrowBits(%#x, %v): got %#x [%v], want %#x [%v]", tt.input, tt.policy, got, cond, tt.want, tt.cond)
			}
			if !Float16(got).IsNaN() {
				t.Errorf("NarrowBits(%#x, %v) = %#x is not a NaN", tt.input, tt.policy, got)
			}
		})
	}

	t.Run("Float64", func(t *testing.T) {
		h, cond := Narrow64(math.NaN())
		if !h.IsNaN() || cond != NoCondition {
			t.Errorf("Narrow64(NaN) = 0x%04X [%v]", h, cond)
		}
	})
}

func TestParseNaNPolicy(t *testing.T) {
	for _, p := range []NaNPolicy{NaNPreserve, NaNQuiet, NaNCanonical} {
		got, err := ParseNaNPolicy(p.String())
		if err != nil || got != p {
			t.Errorf("ParseNaNPolicy(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParseNaNPolicy("signaling"); err == nil {
		t.Error("ParseNaNPolicy(\"signaling\") should fail")
	}
}

// TestNarrowWidthMisusePanics tests that narrowing to an equal or wider
// format is rejected.
func TestNarrowWidthMisusePanics(t *testing.T) {
	pairs := [][2]Format{{Binary16, Binary32}, {Binary32, Binary32}, {Binary16, Binary64}}
	for _, p := range pairs {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NarrowBits(%v -> %v) did not panic", p[0], p[1])
				}
			}()
			defaultConverter.NarrowBits(0, p[0], p[1])
		}()
	}
}

// TestReduce compares Reduce with Go's float64 -> float32 conversion, which
// is correctly rounded in hardware, over random bit patterns.
func TestReduce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	n := 1 << 20
	if testing.Short() {
		n = 1 << 14
	}

	check := func(f float64) {
		got, cond := Reduce(f)
		want := float32(f)
		if math.Float32bits(got) != math.Float32bits(want) {
			t.Fatalf("Reduce(%v [%#x]): got %#x, want %#x", f, math.Float64bits(f), math.Float32bits(got), math.Float32bits(want))
		}
		inexact := float64(got) != f
		overflow := math.IsInf(float64(got), 0) && !math.IsInf(f, 0)
		underflow := inexact && math.Abs(f) < 0x1p-126
		if cond.Has(Inexact) != inexact || cond.Has(Overflow) != overflow || cond.Has(Underflow) != underflow {
			t.Fatalf("Reduce(%v): conditions %v (inexact=%v overflow=%v underflow=%v)", f, cond, inexact, overflow, underflow)
		}
	}

	for range n {
		f := math.Float64frombits(rng.Uint64())
		if math.IsNaN(f) {
			continue
		}
		check(f)
	}
	// Focus on the float32 subnormal band and its boundaries.
	for range n {
		check(math.Ldexp(rng.Float64()+0.5, -rng.IntN(30)-120))
	}
}

// narrow64Reference rounds a finite float64 to binary16 using math/big for
// the normal range and exact scaling for the subnormal range.
func narrow64Reference(f float64) Float16 {
	var sign Float16
	if math.Signbit(f) {
		sign = signMask16
	}
	a := math.Abs(f)
	if a < 0x1p-14 {
		// Scaling by a power of two is exact; the subnormal grid is then
		// the integers.
		return sign | Float16(math.RoundToEven(a*0x1p24))
	}
	r, _ := new(big.Float).SetPrec(11).SetMode(big.ToNearestEven).SetFloat64(a).Float64()
	if r >= 0x1p16 {
		return sign | Float16Inf
	}
	frac, exp := math.Frexp(r)
	mant := uint16((frac*2 - 1) * 1024)
	return sign | Float16(exp-1+15)<<10 | Float16(mant)
}

// TestNarrow64Reference compares Narrow64 against an arbitrary-precision
// round-to-nearest-even reference over the whole binary16 range.
func TestNarrow64Reference(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	n := 1 << 18
	if testing.Short() {
		n = 1 << 12
	}

	check := func(f float64) {
		got, cond := Narrow64(f)
		want := narrow64Reference(f)
		if got != want {
			t.Fatalf("Narrow64(%v [%#x]): got 0x%04X, want 0x%04X", f, math.Float64bits(f), got, want)
		}
		inexact := got.Float64() != f
		if cond.Has(Inexact) != inexact {
			t.Fatalf("Narrow64(%v): conditions %v, inexact=%v", f, cond, inexact)
		}
		if cond.Has(Overflow) != got.IsInf() {
			t.Fatalf("Narrow64(%v): conditions %v, result 0x%04X", f, cond, got)
		}
		if cond.Has(Underflow) != (inexact && math.Abs(f) < 0x1p-14) {
			t.Fatalf("Narrow64(%v): conditions %v", f, cond)
		}
	}

	for range n {
		m := rng.Float64() + 1
		e := rng.IntN(48) - 30
		f := math.Ldexp(m, e)
		if rng.IntN(2) == 0 {
			f = -f
		}
		check(f)
	}

	// Every tie and its neighbours between two adjacent finite binary16
	// values, then the tie between MaxValue and 2^16.
	mids := []float64{65520}
	for b := range uint16(0x7BFF) {
		lo := Float16(b).Float64()
		hi := Float16(b + 1).Float64()
		mids = append(mids, lo+(hi-lo)/2)
	}
	for _, mid := range mids {
		check(mid)
		check(math.Nextafter(mid, 0))
		check(math.Nextafter(mid, math.Inf(1)))
	}
}

// TestNarrowThresholds walks the exponent of 1.5 (which has bits below the
// binary16 precision in the subnormal band) through every classification
// boundary.
func TestNarrowThresholds(t *testing.T) {
	for e := -40; e <= 20; e++ {
		f := math.Ldexp(1.5, e)
		h, cond := Narrow64(f)
		switch {
		case e > 15:
			if h != Float16Inf || !cond.Has(Overflow) {
				t.Errorf("2^%d*1.5: got 0x%04X [%v], want overflow", e, h, cond)
			}
		case e >= -14:
			if !h.IsNormal() || cond != NoCondition || h.Float64() != f {
				t.Errorf("2^%d*1.5: got 0x%04X [%v], want exact normal", e, h, cond)
			}
		case e >= -23:
			if !h.IsSubnormal() || cond != NoCondition || h.Float64() != f {
				t.Errorf("2^%d*1.5: got 0x%04X [%v], want exact subnormal", e, h, cond)
			}
		case e >= -25:
			// 1.5*2^-24 ties to 2*2^-24; 1.5*2^-25 rounds up to 2^-24.
			if h.IsZero() || !cond.Has(Underflow|Inexact) {
				t.Errorf("2^%d*1.5: got 0x%04X [%v], want rounded subnormal", e, h, cond)
			}
		default:
			if h != Float16Zero || cond != Underflow|Inexact {
				t.Errorf("2^%d*1.5: got 0x%04X [%v], want underflow to zero", e, h, cond)
			}
		}
	}
}

func BenchmarkNarrow32(b *testing.B) {
	inputs := []float32{0, 1, -2.5, 65504, 65520, 1e-6, 2e-9, 3.14159}
	var sink Float16
	for i := 0; i < b.N; i++ {
		h, _ := Narrow32(inputs[i%len(inputs)])
		sink ^= h
	}
	_ = sink
}

func BenchmarkNarrow64(b *testing.B) {
	inputs := []float64{0, 1, -2.5, 65504, 65520, 1e-6, 2e-9, 3.14159}
	var sink Float16
	for i := 0; i < b.N; i++ {
		h, _ := Narrow64(inputs[i%len(inputs)])
		sink ^= h
	}
	_ = sink
}
