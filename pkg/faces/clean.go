package faces

import (
	"fmt"

	"github.com/tessadri/facekit/pkg/kernel"
)

// CleanFaces rebuilds a shape with every group of adjacent coplanar
// faces merged into a single face. Faces belong to the same group
// when they are connected through edges shared by exactly two faces
// whose normals at the surface midpoint are identical. Faces outside
// any group pass through unchanged, after the merged ones. The result
// is a shell, or a solid when the input shape was closed. Kernel
// failures while rebuilding propagate to the caller.
func (o *Ops) CleanFaces(shape kernel.Shape) (kernel.Shape, error) {
	faceset := shape.Faces()

	owners, order := edgeOwners(faceset)

	// Edges shared by exactly two faces with matching midpoint
	// normals connect faces that can merge. The normal comparison is
	// exact: merge candidates are meant to be translated copies of
	// the same plane, not merely near-parallel.
	var targetEdges []kernel.Hash
	for _, h := range order {
		fs := owners[h]
		if len(fs) != 2 {
			continue
		}
		if faceset[fs[0]].NormalAt(0.5, 0.5) != faceset[fs[1]].NormalAt(0.5, 0.5) {
			continue
		}
		targetEdges = append(targetEdges, h)
	}

	// Faces touched by a target edge, in first-appearance order, and
	// the neighbour relation between them.
	var targets []int
	inTarget := make(map[int]bool)
	neighbours := make(map[int][]int)
	for _, h := range targetEdges {
		fs := owners[h]
		for _, fi := range fs {
			if !inTarget[fi] {
				inTarget[fi] = true
				targets = append(targets, fi)
			}
		}
		neighbours[fs[0]] = append(neighbours[fs[0]], fs[1])
		neighbours[fs[1]] = append(neighbours[fs[1]], fs[0])
	}

	// Grow islands of transitively connected target faces with a
	// breadth-first walk. The seed face of an island anchors the
	// orientation of its merged replacement.
	visited := make(map[int]bool)
	var islands [][]int
	for _, seed := range targets {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		island := []int{seed}
		queue := []int{seed}
		for len(queue) > 0 {
			fi := queue[0]
			queue = queue[1:]
			for _, nb := range neighbours[fi] {
				if !visited[nb] {
					visited[nb] = true
					island = append(island, nb)
					queue = append(queue, nb)
				}
			}
		}
		islands = append(islands, island)
	}

	// Rebuild each island as one face from its outer boundary.
	newfaces := make([]kernel.Face, 0, len(faceset))
	for _, island := range islands {
		members := make([]kernel.Face, len(island))
		for i, fi := range island {
			members[i] = faceset[fi]
		}
		bound := o.k.SortEdges(o.BoundaryOfFaces(members))
		w, err := o.k.MakeWire(bound)
		if err != nil {
			return nil, fmt.Errorf("merging %d faces: %w", len(island), err)
		}
		merged, err := o.k.MakeFace(w)
		if err != nil {
			return nil, fmt.Errorf("merging %d faces: %w", len(island), err)
		}
		// Keep the orientation of the island's seed face. The sign
		// of the dot product tells apart a flipped rebuild from
		// harmless low-bit normal differences.
		if merged.NormalAt(0.5, 0.5).Dot(members[0].NormalAt(0.5, 0.5)) < 0 {
			merged.Reverse()
		}
		newfaces = append(newfaces, merged)
	}

	for fi, f := range faceset {
		if !inTarget[fi] {
			newfaces = append(newfaces, f)
		}
	}

	shell, err := o.k.MakeShell(newfaces)
	if err != nil {
		return nil, fmt.Errorf("reassembling shell: %w", err)
	}
	if shape.IsClosed() {
		solid, err := o.k.MakeSolid(shell)
		if err != nil {
			return nil, fmt.Errorf("reassembling solid: %w", err)
		}
		return solid, nil
	}
	return shell, nil
}
