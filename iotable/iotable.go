// Package iotable reads and writes package lut's precomputed table,
// serialized with MessagePack via github.com/vmihailenco/msgpack/v5,
// a binary, schema-light wire format chosen over JSON for compact,
// typed binary blobs.
package iotable

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mtsarch/isonet/lut"
)

// wireEntry is the on-disk shape of a lut.Entry: msgpack has no direct
// [2]int8 array support ergonomics in Go structs, so edges are
// flattened to a pair of int8 slices of equal length.
type wireEntry struct {
	EdgeA []int8 `msgpack:"edge_a"`
	EdgeB []int8 `msgpack:"edge_b"`
}

type wireTable struct {
	OnePlane map[uint16]wireEntry `msgpack:"one_plane"`
	TwoPlane map[uint16]wireEntry `msgpack:"two_plane"`
}

func toWire(e lut.Entry) wireEntry {
	w := wireEntry{EdgeA: make([]int8, len(e.CapLoopEdges)), EdgeB: make([]int8, len(e.CapLoopEdges))}
	for i, pair := range e.CapLoopEdges {
		w.EdgeA[i] = pair[0]
		w.EdgeB[i] = pair[1]
	}
	return w
}

func fromWire(w wireEntry) lut.Entry {
	e := lut.Entry{CapLoopEdges: make([][2]int8, len(w.EdgeA))}
	for i := range w.EdgeA {
		e.CapLoopEdges[i] = [2]int8{w.EdgeA[i], w.EdgeB[i]}
	}
	return e
}

// Write serializes t to path as MessagePack.
func Write(path string, t *lut.Table) error {
	w := wireTable{
		OnePlane: make(map[uint16]wireEntry, len(t.OnePlane)),
		TwoPlane: make(map[uint16]wireEntry, len(t.TwoPlane)),
	}
	for k, v := range t.OnePlane {
		w.OnePlane[uint16(k)] = toWire(v)
	}
	for k, v := range t.TwoPlane {
		w.TwoPlane[uint16(k)] = toWire(v)
	}
	data, err := msgpack.Marshal(w)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a Table previously written by Write.
func Read(path string) (*lut.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w wireTable
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	t := lut.New()
	for k, v := range w.OnePlane {
		t.OnePlane[lut.Key(k)] = fromWire(v)
	}
	for k, v := range w.TwoPlane {
		t.TwoPlane[lut.Key(k)] = fromWire(v)
	}
	return t, nil
}
