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
	"os"
	"strconv"
)

// DispatchLevel identifies the hardware float16 conversion support detected
// on this machine.
//
// Conversions in this package always run the portable code path. The level
// tells callers that batch data through other kernels whether a hardware
// conversion with the same rounding is available.
type DispatchLevel int

const (
	// DispatchScalar indicates no hardware float16 conversion, or that it
	// was disabled with HALF_NO_SIMD.
	DispatchScalar DispatchLevel = iota

	// DispatchF16C indicates x86 F16C (VCVTPS2PH/VCVTPH2PS), Haswell+ and
	// Piledriver+.
	DispatchF16C

	// DispatchARMFP16 indicates ARMv8.2 half-precision floating point
	// (FCVT between H and S/D registers).
	DispatchARMFP16
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchF16C:
		return "f16c"
	case DispatchARMFP16:
		return "armfp16"
	default:
		return "unknown"
	}
}

// currentLevel is the detected level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// CurrentLevel returns the detected hardware conversion support.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentName returns a human-readable name for CurrentLevel, for example
// "f16c", "armfp16" or "scalar".
func CurrentName() string {
	return currentLevel.String()
}

// HasHardwareConversion reports whether the CPU converts float32 to binary16
// in hardware. Such instructions round to nearest even and quiet NaNs, so
// they agree bit for bit with a Converter using NaNQuiet.
func HasHardwareConversion() bool {
	return currentLevel != DispatchScalar
}

// NoSimdEnv checks if the HALF_NO_SIMD environment variable is set.
// When set, detection reports DispatchScalar regardless of CPU capabilities.
func NoSimdEnv() bool {
	val := os.Getenv("HALF_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
