// Package bitset implements a packed, dynamically-sized bit array.
//
// It plays the role of compact index buffers elsewhere (vertex
// lookup tables and the active-geometry compaction used throughout
// the arrangement kernel): a block-word
// array that grows as needed and guarantees the bits past the
// logical length of the last block are always zero, so popcount and
// block-wise bitwise ops never need to mask the tail by hand at every
// call site.
package bitset

import "math/bits"

const wordBits = 64

// Set is a dynamic bitset backed by a slice of 64-bit words.
type Set struct {
	words []uint64
	n     int // logical length in bits
}

// New returns a Set of length n, all bits clear.
func New(n int) *Set {
	s := &Set{n: n}
	s.words = make([]uint64, wordsFor(n))
	return s
}

func wordsFor(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + wordBits - 1) / wordBits
}

// Len reports the logical number of bits.
func (s *Set) Len() int { return s.n }

// Grow extends the set to n bits, preserving existing bits. Shrinking
// is not supported; n < s.Len() is a no-op.
func (s *Set) Grow(n int) {
	if n <= s.n {
		return
	}
	need := wordsFor(n)
	if need > len(s.words) {
		grown := make([]uint64, need)
		copy(grown, s.words)
		s.words = grown
	}
	s.n = n
}

func (s *Set) clampTail() {
	if s.n == 0 {
		return
	}
	rem := s.n % wordBits
	if rem == 0 {
		return
	}
	last := len(s.words) - 1
	mask := uint64(1)<<uint(rem) - 1
	s.words[last] &= mask
}

// Test reports whether bit i is set.
func (s *Set) Test(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.words[i/wordBits]&(uint64(1)<<uint(i%wordBits)) != 0
}

// Set sets bit i to 1.
func (s *Set) Set(i int) {
	if i >= s.n {
		s.Grow(i + 1)
	}
	s.words[i/wordBits] |= uint64(1) << uint(i%wordBits)
}

// Clear sets bit i to 0.
func (s *Set) Clear(i int) {
	if i < 0 || i >= s.n {
		return
	}
	s.words[i/wordBits] &^= uint64(1) << uint(i%wordBits)
}

// SetTo sets bit i to the given value.
func (s *Set) SetTo(i int, v bool) {
	if v {
		s.Set(i)
	} else {
		s.Clear(i)
	}
}

// Flip toggles bit i.
func (s *Set) Flip(i int) {
	if i >= s.n {
		s.Grow(i + 1)
	}
	s.words[i/wordBits] ^= uint64(1) << uint(i%wordBits)
}

func sameLen(a, b *Set) int {
	n := a.n
	if b.n > n {
		n = b.n
	}
	return n
}

// Or sets s to the bitwise OR of s and other, growing s if needed.
func (s *Set) Or(other *Set) {
	s.Grow(sameLen(s, other))
	for i := range other.words {
		if i < len(s.words) {
			s.words[i] |= other.words[i]
		}
	}
	s.clampTail()
}

// And sets s to the bitwise AND of s and other.
func (s *Set) And(other *Set) {
	s.Grow(sameLen(s, other))
	for i := range s.words {
		if i < len(other.words) {
			s.words[i] &= other.words[i]
		} else {
			s.words[i] = 0
		}
	}
}

// AndNot sets s to s AND NOT other (used by the difference operator).
func (s *Set) AndNot(other *Set) {
	s.Grow(sameLen(s, other))
	for i := range s.words {
		if i < len(other.words) {
			s.words[i] &^= other.words[i]
		}
	}
}

// Xor sets s to the bitwise XOR of s and other.
func (s *Set) Xor(other *Set) {
	s.Grow(sameLen(s, other))
	for i := range other.words {
		if i < len(s.words) {
			s.words[i] ^= other.words[i]
		}
	}
	s.clampTail()
}

// Not flips every bit in place (tail bits stay clamped to zero).
func (s *Set) Not() {
	for i := range s.words {
		s.words[i] = ^s.words[i]
	}
	s.clampTail()
}

// ShiftLeft shifts all bits left by k positions (towards higher indices),
// growing the set so no set bit is lost.
func (s *Set) ShiftLeft(k int) {
	if k <= 0 {
		return
	}
	s.Grow(s.n + k)
	wordShift := k / wordBits
	bitShift := uint(k % wordBits)
	out := make([]uint64, len(s.words))
	for i := len(s.words) - 1; i >= 0; i-- {
		srcIdx := i - wordShift
		if srcIdx < 0 {
			continue
		}
		var v uint64
		v = s.words[srcIdx] << bitShift
		if bitShift > 0 && srcIdx-1 >= 0 {
			v |= s.words[srcIdx-1] >> (wordBits - bitShift)
		}
		out[i] = v
	}
	s.words = out
	s.clampTail()
}

// FindFirst returns the index of the lowest set bit, or -1 if none.
func (s *Set) FindFirst() int { return s.FindNext(-1) }

// FindNext returns the index of the lowest set bit strictly greater
// than i, or -1 if none.
func (s *Set) FindNext(i int) int {
	start := i + 1
	if start < 0 {
		start = 0
	}
	if start >= s.n {
		return -1
	}
	wi := start / wordBits
	bitOff := uint(start % wordBits)
	w := s.words[wi] >> bitOff
	if w != 0 {
		idx := start + bits.TrailingZeros64(w)
		if idx < s.n {
			return idx
		}
		return -1
	}
	for wi++; wi < len(s.words); wi++ {
		if s.words[wi] != 0 {
			idx := wi*wordBits + bits.TrailingZeros64(s.words[wi])
			if idx < s.n {
				return idx
			}
			return -1
		}
	}
	return -1
}

// PopCount returns the number of set bits.
func (s *Set) PopCount() int {
	c := 0
	for _, w := range s.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Any reports whether any bit is set.
func (s *Set) Any() bool { return s.FindFirst() >= 0 }

// None reports whether no bit is set.
func (s *Set) None() bool { return !s.Any() }

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := &Set{n: s.n, words: make([]uint64, len(s.words))}
	copy(c.words, s.words)
	return c
}

// Equal reports whether s and other have the same logical contents
// (trailing length differences of all-zero bits are ignored).
func (s *Set) Equal(other *Set) bool {
	n := sameLen(s, other)
	a := s.Clone()
	b := other.Clone()
	a.Grow(n)
	b.Grow(n)
	for i := range a.words {
		if a.words[i] != b.words[i] {
			return false
		}
	}
	return true
}
