// Package lut is a precomputed lookup table for the common one- and
// two-plane arrangement case. A table entry is keyed by the
// sign pattern of each plane's four tet-corner values (one trit per
// corner, packed into a byte), and maps to the cap-face topology
// package arrangement derives by cutting. Nothing in the pipeline
// loads or consults the table: package arrangement always runs its
// general incremental cut.
package lut

import "github.com/mtsarch/isonet/predicate"

// Key packs up to two planes' four-corner sign patterns into one
// lookup key. Each plane contributes one base-3 digit per corner
// (negative=0, zero=1, positive=2), for a maximum of 3^8 = 6561
// two-plane entries.
type Key uint16

// SignTrit maps a predicate.Sign to its base-3 digit.
func SignTrit(s predicate.Sign) uint16 {
	switch s {
	case predicate.Negative:
		return 0
	case predicate.Zero:
		return 1
	case predicate.Positive:
		return 2
	default:
		return 1
	}
}

// KeyForOnePlane builds a Key for the single-plane case from the four
// corner signs.
func KeyForOnePlane(signs [4]predicate.Sign) Key {
	var k uint16
	for i, s := range signs {
		k += SignTrit(s) * pow3(uint16(i))
	}
	return Key(k)
}

// KeyForTwoPlanes builds a Key for the two-plane case from both
// planes' four corner signs.
func KeyForTwoPlanes(a, b [4]predicate.Sign) Key {
	ka := KeyForOnePlane(a)
	kb := KeyForOnePlane(b)
	return Key(uint16(ka) + uint16(kb)*81) // 3^4 = 81 one-plane keys
}

func pow3(n uint16) uint16 {
	r := uint16(1)
	for i := uint16(0); i < n; i++ {
		r *= 3
	}
	return r
}

// Entry is a precomputed topology fragment: the cap-face vertex loop
// (expressed as edge/corner identifiers local to the tet, resolved by
// the caller into arrangement.Vertex ids). It does not record which
// of the two resulting half-tets is negative.
type Entry struct {
	// CapLoopEdges names each cap-vertex by the tet edge it lies on
	// ([2]int8 of local corner indices, {-1,-1} for an unsplit corner
	// kept as-is).
	CapLoopEdges [][2]int8
}

// Table is an in-memory one-/two-plane lookup table, normally loaded
// from disk via package iotable.
type Table struct {
	OnePlane  map[Key]Entry
	TwoPlane  map[Key]Entry
}

// New returns an empty Table.
func New() *Table {
	return &Table{OnePlane: make(map[Key]Entry), TwoPlane: make(map[Key]Entry)}
}

// LookupOnePlane returns the entry for a one-plane sign pattern, and
// whether it was found.
func (t *Table) LookupOnePlane(signs [4]predicate.Sign) (Entry, bool) {
	e, ok := t.OnePlane[KeyForOnePlane(signs)]
	return e, ok
}

// LookupTwoPlane returns the entry for a two-plane sign pattern, and
// whether it was found.
func (t *Table) LookupTwoPlane(a, b [4]predicate.Sign) (Entry, bool) {
	e, ok := t.TwoPlane[KeyForTwoPlanes(a, b)]
	return e, ok
}
