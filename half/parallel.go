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

import "github.com/ajroetker/go-half/half/contrib/workerpool"

// MinParallelLen is the slice length below which the Parallel* functions
// convert on the calling goroutine.
const MinParallelLen = 1 << 14

// ParallelFromFloat32s is FromFloat32s split across pool's workers.
// A nil pool converts inline.
func (c Converter) ParallelFromFloat32s(pool *workerpool.Pool, dst []Float16, src []float32) Condition {
	checkLen(len(dst), len(src))
	if pool == nil || len(src) < MinParallelLen {
		return c.FromFloat32s(dst, src)
	}
	var status AtomicStatus
	pool.ParallelFor(len(src), func(start, end int) {
		status.Raise(c.FromFloat32s(dst[start:end], src[start:end]))
	})
	return status.Flags()
}

// ParallelFromFloat32s narrows src into dst using pool.
func ParallelFromFloat32s(pool *workerpool.Pool, dst []Float16, src []float32) Condition {
	return defaultConverter.ParallelFromFloat32s(pool, dst, src)
}

// ParallelToFloat32s is ToFloat32s split across pool's workers.
// A nil pool converts inline.
func ParallelToFloat32s(pool *workerpool.Pool, dst []float32, src []Float16) {
	checkLen(len(dst), len(src))
	if pool == nil || len(src) < MinParallelLen {
		ToFloat32s(dst, src)
		return
	}
	pool.ParallelFor(len(src), func(start, end int) {
		ToFloat32s(dst[start:end], src[start:end])
	})
}

// ParallelFromFloat64s is FromFloat64s with batches handed to whichever
// worker is free. A nil pool converts inline.
func (c Converter) ParallelFromFloat64s(pool *workerpool.Pool, dst []Float16, src []float64) Condition {
	checkLen(len(dst), len(src))
	if pool == nil || len(src) < MinParallelLen {
		return c.FromFloat64s(dst, src)
	}
	var status AtomicStatus
	pool.ParallelForBatched(len(src), MinParallelLen/4, func(start, end int) {
		status.Raise(c.FromFloat64s(dst[start:end], src[start:end]))
	})
	return status.Flags()
}

// ParallelFromFloat64s narrows src into dst using pool.
func ParallelFromFloat64s(pool *workerpool.Pool, dst []Float16, src []float64) Condition {
	return defaultConverter.ParallelFromFloat64s(pool, dst, src)
}
