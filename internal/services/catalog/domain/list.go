package domain

import "strings"

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 12
	// MaxLimit caps requested page sizes.
	MaxLimit = 100
)

// ListFilter narrows and pages a catalog listing. Type and Generation are
// handles; Name is a free-text search.
type ListFilter struct {
	Name       string
	Type       string
	Generation string
	Limit      int
	Offset     int
}

// ClampListFilter applies paging defaults and trims the text fields.
func ClampListFilter(filter ListFilter) ListFilter {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Type = strings.TrimSpace(filter.Type)
	filter.Generation = strings.TrimSpace(filter.Generation)
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

// Page is one window of a filtered listing. Count is the size of the whole
// filtered set.
type Page[T any] struct {
	Count       int  `json:"count"`
	CurrentPage int  `json:"current_page"`
	IsLast      bool `json:"is_last"`
	Data        []T  `json:"data"`
}

// NewPage slices items with the filter's offset and limit.
func NewPage[T any](items []T, filter ListFilter) Page[T] {
	filter = ClampListFilter(filter)
	start := windowStart(len(items), filter.Offset)
	end := windowEnd(len(items), filter.Offset, filter.Limit)
	return PageOf(items[start:end], len(items), filter)
}

// PageOf wraps an already sliced window of a set of count items.
func PageOf[T any](window []T, count int, filter ListFilter) Page[T] {
	filter = ClampListFilter(filter)
	if window == nil {
		window = []T{}
	}
	return Page[T]{
		Count:       count,
		CurrentPage: filter.Offset/filter.Limit + 1,
		IsLast:      filter.Offset+filter.Limit >= count,
		Data:        window,
	}
}

func windowStart(n, offset int) int {
	if offset > n {
		return n
	}
	return offset
}

func windowEnd(n, offset, limit int) int {
	end := offset + limit
	if end > n {
		return n
	}
	return end
}

// ApplyListFilter filters a catalog in ID order. Type and generation narrow
// the set first; a name search then keeps direct matches plus every creature
// sharing an evolution line with one of them.
func ApplyListFilter(all []Pokemon, filter ListFilter) []ListedPokemon {
	filter = ClampListFilter(filter)

	candidates := make([]Pokemon, 0, len(all))
	for _, p := range all {
		if filter.Type != "" && !p.HasType(filter.Type) {
			continue
		}
		if filter.Generation != "" && p.Generation.Handle != filter.Generation {
			continue
		}
		candidates = append(candidates, p)
	}

	query := NormalizeName(filter.Name)
	if query == "" {
		out := make([]ListedPokemon, 0, len(candidates))
		for _, p := range candidates {
			out = append(out, ListedPokemon{Pokemon: p})
		}
		return out
	}

	direct := make(map[int]bool)
	var lines []string
	for _, p := range candidates {
		if strings.Contains(NormalizeName(p.Name), query) {
			direct[p.ID] = true
			lines = append(lines, p.EvolutionLines...)
		}
	}

	out := make([]ListedPokemon, 0, len(direct))
	for _, p := range candidates {
		switch {
		case direct[p.ID]:
			out = append(out, ListedPokemon{Pokemon: p, SearchMatch: SearchMatchContains})
		case p.SharesLine(lines):
			out = append(out, ListedPokemon{Pokemon: p, SearchMatch: SearchMatchEvolution})
		}
	}
	return out
}
