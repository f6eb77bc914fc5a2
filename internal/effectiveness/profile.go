package effectiveness

import "github.com/ramonehamilton/pokeparty/internal/pokemon"

// Matchup pairs a type with the multiplier it produces.
type Matchup struct {
	Type       pokemon.TypeName `json:"type"`
	Multiplier float64          `json:"multiplier"`
}

// Profile groups every attacking type by how it fares against one defender.
type Profile struct {
	Defender []pokemon.TypeName `json:"defender"`
	Immune   []Matchup          `json:"immune"`
	Resists  []Matchup          `json:"resists"`
	Neutral  []Matchup          `json:"neutral"`
	Weak     []Matchup          `json:"weak"`
}

// DefensiveProfile evaluates all 18 attacking types against the defender, in chart order.
func DefensiveProfile(defenders DefenderTypes) Profile {
	p := Profile{Defender: defenders.Types()}
	for _, attack := range pokemon.AllTypeNames {
		r := Calculate(attack, defenders)
		m := Matchup{Type: attack, Multiplier: r.Multiplier}
		switch r.Category {
		case Immune:
			p.Immune = append(p.Immune, m)
		case NotVeryEffect:
			p.Resists = append(p.Resists, m)
		case NormalEffect:
			p.Neutral = append(p.Neutral, m)
		case SuperEffective:
			p.Weak = append(p.Weak, m)
		}
	}
	return p
}

// Coverage groups the single-type defenders by how one attacking type hits them.
type Coverage struct {
	Attack   pokemon.TypeName   `json:"attack"`
	NoEffect []pokemon.TypeName `json:"noEffect"`
	NotVery  []pokemon.TypeName `json:"notVery"`
	Neutral  []pokemon.TypeName `json:"neutral"`
	Super    []pokemon.TypeName `json:"superEffective"`
}

// OffensiveCoverage evaluates one attacking type against each of the 18 single types.
func OffensiveCoverage(attack pokemon.TypeName) Coverage {
	c := Coverage{Attack: attack}
	for _, def := range pokemon.AllTypeNames {
		switch m := MultiplierFor(attack, def); {
		case m == 0:
			c.NoEffect = append(c.NoEffect, def)
		case m < 1:
			c.NotVery = append(c.NotVery, def)
		case m == 1:
			c.Neutral = append(c.Neutral, def)
		default:
			c.Super = append(c.Super, def)
		}
	}
	return c
}
