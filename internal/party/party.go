// Package party assembles themed parties: it asks a suggestion provider for candidate
// species, enriches each with a balanced move loadout, and attaches a strategy note.
package party

import (
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// Mode selects whether the caller supplies the theme.
type Mode string

const (
	ModeTheme  Mode = "theme"
	ModeRandom Mode = "random"
)

// BattleMode only affects prompting and the strategy note.
type BattleMode string

const (
	Single BattleMode = "single"
	Double BattleMode = "double"
)

// GuideSource records where the strategy note came from.
type GuideSource string

const (
	GuideFromProvider GuideSource = "llm"
	GuideFallback     GuideSource = "fallback"
)

// Member is one species with its selected loadout.
type Member struct {
	Species      pokemon.Species `json:"pokemon"`
	Moves        []pokemon.Move  `json:"selectedMoves"`
	AllyWarnings []AllyWarning   `json:"allyWarnings,omitempty"`
}

// AllyWarning flags a loadout move that can hit the partner in a double battle.
type AllyWarning struct {
	Move string `json:"move"`
	Note string `json:"note"`
	// SafePartners are the other members immune to the move.
	SafePartners []string `json:"safePartners,omitempty"`
}

// Party is the result of one generation call.
type Party struct {
	ID          uuid.UUID   `json:"id"`
	Theme       string      `json:"theme"`
	Members     []Member    `json:"members"`
	BattleMode  BattleMode  `json:"battleMode"`
	Guide       string      `json:"guide"`
	GuideSource GuideSource `json:"guideSource"`
	// Requested is the member count asked for; Partial is set when fewer were found.
	Requested int       `json:"requested"`
	Partial   bool      `json:"partial"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy whose members and loadouts can be modified independently.
func (p *Party) Clone() *Party {
	c := *p
	c.Members = make([]Member, len(p.Members))
	for i, m := range p.Members {
		c.Members[i] = m
		c.Members[i].Moves = append([]pokemon.Move(nil), m.Moves...)
		c.Members[i].AllyWarnings = append([]AllyWarning(nil), m.AllyWarnings...)
	}
	return &c
}
