package pokeapi

// placeEvolution locates species in the chain. The stage is the depth of the
// node, starting at 1 for the base form. The lines are the root species
// followed by every node on the path whose parent branches. A species that
// is not in the chain gets stage 0 and no lines.
func placeEvolution(chain ChainLink, species string) (int, []string) {
	var branches []string
	stage, ok := walkChain(chain, species, 1, 1, &branches)
	if !ok {
		return 0, []string{}
	}
	lines := make([]string, 0, len(branches)+1)
	lines = append(lines, chain.Species.Name)
	for i := len(branches) - 1; i >= 0; i-- {
		lines = append(lines, branches[i])
	}
	return stage, lines
}

// walkChain appends branching nodes deepest first while unwinding.
func walkChain(node ChainLink, species string, siblings, stage int, branches *[]string) (int, bool) {
	if node.Species.Name == species {
		if siblings > 1 {
			*branches = append(*branches, node.Species.Name)
		}
		return stage, true
	}
	for _, next := range node.EvolvesTo {
		found, ok := walkChain(next, species, len(node.EvolvesTo), stage+1, branches)
		if ok {
			if siblings > 1 {
				*branches = append(*branches, node.Species.Name)
			}
			return found, true
		}
	}
	return 0, false
}
