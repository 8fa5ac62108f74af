// Package domain holds the catalog model and the pure list, search and
// evolution operations shared by every data source.
package domain

// MaxBaseStat is the upper bound used to scale base stat bars.
const MaxBaseStat = 255

// Generation is a release wave grouping creatures.
type Generation struct {
	ID     int    `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// PokemonType is an elemental category.
type PokemonType struct {
	ID     int    `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
}

// Stats are the six base stats of a creature.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Total returns the sum of all base stats.
func (s Stats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpecialAttack + s.SpecialDefense + s.Speed
}

// StatEntry is one labeled stat value.
type StatEntry struct {
	Key   string
	Label string
	Value int
}

// Entries returns the stats in display order.
func (s Stats) Entries() []StatEntry {
	return []StatEntry{
		{Key: "hp", Label: "HP", Value: s.HP},
		{Key: "attack", Label: "Attack", Value: s.Attack},
		{Key: "defense", Label: "Defense", Value: s.Defense},
		{Key: "special-attack", Label: "Sp. Attack", Value: s.SpecialAttack},
		{Key: "special-defense", Label: "Sp. Defense", Value: s.SpecialDefense},
		{Key: "speed", Label: "Speed", Value: s.Speed},
	}
}

// Set assigns a stat by its PokeAPI key. Unknown keys are ignored.
func (s *Stats) Set(key string, value int) {
	switch key {
	case "hp":
		s.HP = value
	case "attack":
		s.Attack = value
	case "defense":
		s.Defense = value
	case "special-attack":
		s.SpecialAttack = value
	case "special-defense":
		s.SpecialDefense = value
	case "speed":
		s.Speed = value
	}
}

// Pokemon is one catalog entry.
//
// EvolutionLines identify the branches the creature belongs to; two creatures
// are related when they share at least one line. EvolutionStage is 1 for the
// base form. Height is in decimeters and Weight in hectograms.
type Pokemon struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url"`
	EvolutionLines []string      `json:"evolution_lines"`
	EvolutionStage int           `json:"evolution_stage"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	Stats          Stats         `json:"stats"`
	Generation     Generation    `json:"generation"`
	Types          []PokemonType `json:"types"`
}

// HasType reports whether the creature carries the type handle.
func (p Pokemon) HasType(handle string) bool {
	for _, t := range p.Types {
		if t.Handle == handle {
			return true
		}
	}
	return false
}

// SharesLine reports whether the creature belongs to any of lines.
func (p Pokemon) SharesLine(lines []string) bool {
	for _, own := range p.EvolutionLines {
		for _, line := range lines {
			if own == line {
				return true
			}
		}
	}
	return false
}

// SearchMatch tells why a creature appears in a search result.
type SearchMatch string

const (
	// SearchMatchNone marks results of an unsearched listing.
	SearchMatchNone SearchMatch = ""
	// SearchMatchContains marks a direct name match.
	SearchMatchContains SearchMatch = "contains"
	// SearchMatchEvolution marks a relative of a direct match.
	SearchMatchEvolution SearchMatch = "evolution"
)

// ListedPokemon is a creature annotated with its search match.
type ListedPokemon struct {
	Pokemon
	SearchMatch SearchMatch `json:"search_match,omitempty"`
}
