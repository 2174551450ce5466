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

// Sign operations work on the encoding only. They apply to NaNs and
// infinities like to any other value and never raise a Condition.

// Neg returns h with its sign bit flipped.
func (h Float16) Neg() Float16 {
	return h ^ signMask16
}

// Abs returns h with its sign bit cleared.
func (h Float16) Abs() Float16 {
	return h &^ signMask16
}

// Signbit reports whether the sign bit of h is set, including for -0 and
// negative NaNs.
func (h Float16) Signbit() bool {
	return h&signMask16 != 0
}

// Copysign returns a value with the magnitude bits of x and the sign of y.
func Copysign(x, y Float16) Float16 {
	return x&^signMask16 | y&signMask16
}
