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
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a byte payload ends in the middle of a
// binary16 value.
var ErrShortBuffer = errors.New("half: short buffer")

// AppendBytes appends the binary16 encoding of each value in src to b, two
// bytes per value in the given byte order.
func AppendBytes(b []byte, order binary.AppendByteOrder, src []Float16) []byte {
	for _, h := range src {
		b = order.AppendUint16(b, uint16(h))
	}
	return b
}

// DecodeBytes decodes len(b)/2 values from b into dst and returns the number
// decoded. An odd trailing byte yields ErrShortBuffer after decoding the
// complete values.
func DecodeBytes(dst []Float16, b []byte, order binary.ByteOrder) (int, error) {
	n := len(b) / 2
	checkLen(len(dst), n)
	for i := range n {
		dst[i] = Float16(order.Uint16(b[2*i:]))
	}
	if len(b)%2 != 0 {
		return n, fmt.Errorf("decoding %d bytes: %w", len(b), ErrShortBuffer)
	}
	return n, nil
}

// MarshalBinary encodes h big-endian, the network byte order used by CBOR and
// most wire protocols.
func (h Float16) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint16(nil, uint16(h)), nil
}

// UnmarshalBinary decodes a big-endian binary16 value.
func (h *Float16) UnmarshalBinary(data []byte) error {
	switch {
	case len(data) < 2:
		return fmt.Errorf("unmarshaling %d bytes: %w", len(data), ErrShortBuffer)
	case len(data) > 2:
		return fmt.Errorf("half: unmarshaling %d bytes, want 2", len(data))
	}
	*h = Float16(binary.BigEndian.Uint16(data))
	return nil
}
