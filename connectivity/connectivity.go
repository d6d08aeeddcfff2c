// Package connectivity builds patches, chains, shells and components
// from the global iso-surface mesh: flood-filling iso-faces into
// single-primitive manifold patches along their manifold edges, then
// chaining the leftover non-manifold edges into chains, using
// github.com/katalvlaran/lvlath's core.Graph and bfs.BFS as the
// traversal engine.
//
// isonet otherwise favors integer-id arenas over pointer/string
// graphs; lvlath's core.Graph is string-vertex-keyed, so ids here are
// formatted with strconv.Itoa only at the boundary of a BFS call and
// parsed back immediately after, keeping every other package's
// surface int32-native.
package connectivity

import (
	"strconv"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"

	"github.com/mtsarch/isonet/container"
	"github.com/mtsarch/isonet/isomesh"
)

// Patch is a maximal set of iso-faces of one primitive connected
// through manifold edges (an edge touched by exactly two faces of that
// primitive).
type Patch struct {
	Primitive int32
	Faces     []int32
}

// Chain is a maximal run of non-manifold edges (touched by a number of
// faces other than two, or by faces of more than one primitive)
// threaded through degree-2 vertices.
type Chain struct {
	Edges [][2]int32
}

type edgeKey [2]int32

func makeEdgeKey(a, b int32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// edgeFaces maps every undirected edge of the iso-mesh to the faces
// incident to it, in face-index order, whatever primitive owns them.
func edgeFaces(mesh *isomesh.Mesh) map[edgeKey][]int32 {
	out := make(map[edgeKey][]int32)
	for fid, f := range mesh.Faces {
		n := len(f.Verts)
		for i := 0; i < n; i++ {
			a, b := f.Verts[i], f.Verts[(i+1)%n]
			k := makeEdgeKey(a, b)
			out[k] = append(out[k], int32(fid))
		}
	}
	return out
}

// BuildPatches flood-fills iso-faces into per-primitive manifold
// patches, using a core.Graph over face ids with an edge wherever two
// faces of the same primitive share a manifold (degree-2) mesh edge.
func BuildPatches(mesh *isomesh.Mesh) ([]Patch, error) {
	ef := edgeFaces(mesh)
	g := core.NewGraph(core.WithDirected(false))
	for fid := range mesh.Faces {
		if err := g.AddVertex(strconv.Itoa(fid)); err != nil {
			return nil, err
		}
	}
	for _, faces := range ef {
		if len(faces) != 2 {
			continue // non-manifold edge: left to BuildChains
		}
		fa, fb := faces[0], faces[1]
		if mesh.Faces[fa].Primitive != mesh.Faces[fb].Primitive {
			continue
		}
		if _, err := g.AddEdge(strconv.Itoa(int(fa)), strconv.Itoa(int(fb)), 1); err != nil {
			return nil, err
		}
	}

	visited := make([]bool, len(mesh.Faces))
	var patches []Patch
	for fid := range mesh.Faces {
		if visited[fid] {
			continue
		}
		res, err := bfs.BFS(g, strconv.Itoa(fid))
		if err != nil {
			return nil, err
		}
		var faces []int32
		for _, idStr := range res.Order {
			id, _ := strconv.Atoi(idStr)
			if visited[id] {
				continue
			}
			visited[id] = true
			faces = append(faces, int32(id))
		}
		if len(faces) == 0 {
			continue
		}
		patches = append(patches, Patch{Primitive: mesh.Faces[fid].Primitive, Faces: faces})
	}
	return patches, nil
}

// BuildChains threads the non-manifold (or cross-primitive) edges of
// the iso-mesh into maximal chains through degree-2 vertices, the
// complement of the manifold edges BuildPatches consumed.
func BuildChains(mesh *isomesh.Mesh) []Chain {
	ef := edgeFaces(mesh)
	nonManifold := make(map[edgeKey]bool)
	for k, faces := range ef {
		if len(faces) != 2 {
			nonManifold[k] = true
			continue
		}
		if mesh.Faces[faces[0]].Primitive != mesh.Faces[faces[1]].Primitive {
			nonManifold[k] = true
		}
	}

	degree := make(map[int32]int)
	adjacency := make(map[int32][]int32)
	for k := range nonManifold {
		degree[k[0]]++
		degree[k[1]]++
		adjacency[k[0]] = append(adjacency[k[0]], k[1])
		adjacency[k[1]] = append(adjacency[k[1]], k[0])
	}

	used := make(map[edgeKey]bool)
	var chains []Chain
	for k := range nonManifold {
		if used[k] {
			continue
		}
		chain := Chain{Edges: [][2]int32{{k[0], k[1]}}}
		used[k] = true
		// extend forward through degree-2 vertices only.
		cur := k[1]
		prev := k[0]
		for degree[cur] == 2 {
			next := otherNeighbor(adjacency[cur], prev)
			nk := makeEdgeKey(cur, next)
			if used[nk] {
				break
			}
			chain.Edges = append(chain.Edges, [2]int32{cur, next})
			used[nk] = true
			prev, cur = cur, next
		}
		chains = append(chains, chain)
	}
	return chains
}

func otherNeighbor(neighbors []int32, exclude int32) int32 {
	for _, n := range neighbors {
		if n != exclude {
			return n
		}
	}
	return exclude
}

// HalfPatch identifies one oriented side of a patch (its Sign is true
// for the side facing the primitive's positive half-space).
type HalfPatch struct {
	Patch int32
	Sign  bool
}

// BuildShells groups half-patches into shells: maximal sets connected
// through chainorder's half-face stitching, taken here as a
// precomputed adjacency list of half-patch index pairs, using a
// union-find kept int32-keyed rather than routed through lvlath so the
// hot union/find path stays allocation-free.
func BuildShells(halfPatchCount int, adjacency [][2]int32) *container.UnionFind {
	uf := container.NewUnionFind(halfPatchCount)
	for _, pair := range adjacency {
		uf.Union(pair[0], pair[1])
	}
	return uf
}

// BuildComponents groups patches (ignoring sign) into connected
// components via the same patch-adjacency graph, answering "which
// patches belong to one connected surface" regardless of orientation.
func BuildComponents(patchCount int, adjacency [][2]int32) *container.UnionFind {
	uf := container.NewUnionFind(patchCount)
	for _, pair := range adjacency {
		uf.Union(pair[0], pair[1])
	}
	return uf
}
