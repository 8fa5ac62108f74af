package domain

import (
	"slices"
	"sort"
)

// Evolution is one node of an evolution tree.
type Evolution struct {
	Pokemon
	NextEvolutions []*Evolution `json:"next_evolutions"`
}

// FilterEvolutions returns the creatures sharing any of lines, ordered by
// stage and then by ID.
func FilterEvolutions(all []Pokemon, lines []string) []Pokemon {
	if len(lines) == 0 {
		return []Pokemon{}
	}
	out := make([]Pokemon, 0)
	for _, p := range all {
		if p.SharesLine(lines) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EvolutionStage != out[j].EvolutionStage {
			return out[i].EvolutionStage < out[j].EvolutionStage
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BuildEvolutionTree links creatures into trees. A creature evolves into
// another when the other sits exactly one stage later and carries every one
// of its lines. The returned roots are the nodes nothing evolves into.
func BuildEvolutionTree(evolutions []Pokemon) []*Evolution {
	ordered := slices.Clone(evolutions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EvolutionStage < ordered[j].EvolutionStage
	})

	nodes := make([]*Evolution, len(ordered))
	for i, p := range ordered {
		nodes[i] = &Evolution{Pokemon: p, NextEvolutions: []*Evolution{}}
	}

	hasParent := make([]bool, len(nodes))
	for i, from := range nodes {
		if len(from.EvolutionLines) == 0 {
			continue
		}
		for j, to := range nodes {
			if i == j || to.EvolutionStage != from.EvolutionStage+1 {
				continue
			}
			if containsAll(to.EvolutionLines, from.EvolutionLines) {
				from.NextEvolutions = append(from.NextEvolutions, to)
				hasParent[j] = true
			}
		}
	}

	roots := make([]*Evolution, 0)
	for i, node := range nodes {
		if !hasParent[i] {
			roots = append(roots, node)
		}
	}
	return roots
}

func containsAll(set, values []string) bool {
	for _, v := range values {
		if !slices.Contains(set, v) {
			return false
		}
	}
	return true
}
