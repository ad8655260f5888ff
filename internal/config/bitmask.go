// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"iter"
	"math/bits"
)

// flag is the underlying type of a set of single bit flags.
type flag interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// BitMask is a set of flags of type T. The zero value is the empty set.
type BitMask[T flag] struct {
	value T
}

// NewBitMask returns a [BitMask] with the given flags enabled.
func NewBitMask[T flag](flags ...T) BitMask[T] {
	var value T
	for _, f := range flags {
		value |= f
	}

	return BitMask[T]{value: value}
}

// Set enables or disables f.
func (b *BitMask[T]) Set(f T, enabled bool) {
	if enabled {
		b.value |= f
	} else {
		b.value &^= f
	}
}

// Enable adds f to the set.
func (b *BitMask[T]) Enable(f T) { b.Set(f, true) }

// Disable removes f from the set.
func (b *BitMask[T]) Disable(f T) { b.Set(f, false) }

// Enabled reports whether any bit of f is set.
func (b BitMask[T]) Enabled(f T) bool { return b.value&f != 0 }

// Value returns the raw flags.
func (b BitMask[T]) Value() T { return b.value }

// Only returns a copy of the set restricted to mask.
func (b BitMask[T]) Only(mask T) BitMask[T] { return BitMask[T]{value: b.value & mask} }

// Flags yields the enabled flags one bit at a time, lowest bit first.
func (b BitMask[T]) Flags() iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := uint64(b.value); v != 0; v &= v - 1 {
			if !yield(T(1) << bits.TrailingZeros64(v)) {
				return
			}
		}
	}
}
