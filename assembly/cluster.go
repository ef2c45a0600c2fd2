/*package assembly turns raw particle positions into labeled assemblies:
proximity clustering into connected components, per-cluster statistics with
a discrete lifecycle state, and the global metric rollup.
*/
package assembly

import (
	"sort"

	"github.com/nanoforge/nanosim/particle"
)

// Clusters partitions particles into connected components under the
// relation "distance < cutoff". Components smaller than minSize are
// discarded. The result is canonical: each group is sorted by particle ID
// and groups are ordered by their smallest ID, so membership is a pure
// function of the adjacency relation regardless of input ordering. The
// returned values are indices into ps.
//
// Distances are plain Euclidean; clusters are features of the instantaneous
// configuration, not of the wrapped topology.
func Clusters(ps []particle.Particle, cutoff float64, minSize int) [][]int {
	n := len(ps)
	if n == 0 {
		return nil
	}
	if minSize < 2 {
		minSize = 2
	}

	cut2 := cutoff * cutoff
	visited := make([]bool, n)
	var groups [][]int

	stack := make([]int, 0, n)
	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}

		group := []int{}
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[cur] {
				continue
			}
			visited[cur] = true
			group = append(group, cur)

			for j := 0; j < n; j++ {
				if !visited[j] && dist2(&ps[cur], &ps[j]) < cut2 {
					stack = append(stack, j)
				}
			}
		}

		if len(group) >= minSize {
			groups = append(groups, group)
		}
	}

	for _, g := range groups {
		sort.Slice(g, func(a, b int) bool { return ps[g[a]].ID < ps[g[b]].ID })
	}
	sort.Slice(groups, func(a, b int) bool {
		return ps[groups[a][0]].ID < ps[groups[b][0]].ID
	})

	return groups
}

func dist2(a, b *particle.Particle) float64 {
	dx := a.Pos[0] - b.Pos[0]
	dy := a.Pos[1] - b.Pos[1]
	dz := a.Pos[2] - b.Pos[2]
	return dx*dx + dy*dy + dz*dz
}
