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

//go:build arm64

package half

import "golang.org/x/sys/cpu"

func init() {
	currentLevel = detectLevel(NoSimdEnv())
}

func detectLevel(disabled bool) DispatchLevel {
	if disabled {
		return DispatchScalar
	}
	// FCVT to and from H registers is part of the base ARMv8 FP unit, but
	// FPHP is the flag that guarantees full half-precision support.
	if cpu.ARM64.HasFPHP {
		return DispatchARMFP16
	}
	return DispatchScalar
}
