package party

import (
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// MaxLoadoutSize bounds the slots a swap may address.
const MaxLoadoutSize = 4

// SwapMove returns a copy of p with the move in slot of member replaced. The
// balancer is not consulted; p itself is left untouched.
func SwapMove(p *Party, member, slot int, replacement pokemon.Move) (*Party, error) {
	if p == nil {
		return nil, invalidf("no party to modify")
	}
	if member < 0 || member >= len(p.Members) {
		return nil, invalidf("member index %d out of range", member)
	}
	loadout := p.Members[member].Moves
	if slot < 0 || slot > len(loadout) || slot >= MaxLoadoutSize {
		return nil, invalidf("move slot %d out of range", slot)
	}
	if replacement.Name == "" {
		return nil, invalidf("replacement move has no name")
	}
	for i, m := range loadout {
		if i != slot && m.Name == replacement.Name {
			return nil, invalidf("%s already knows %s", memberName(p.Members[member]), replacement.Name)
		}
	}

	out := p.Clone()
	if slot == len(loadout) {
		// An empty slot on a short loadout is filled.
		out.Members[member].Moves = append(out.Members[member].Moves, replacement)
	} else {
		out.Members[member].Moves[slot] = replacement
	}
	if out.BattleMode == Double {
		annotateAllyHits(out.Members)
	}
	return out, nil
}
