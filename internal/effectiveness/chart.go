// Package effectiveness computes type matchups from the fixed attacker × defender chart.
package effectiveness

import "github.com/ramonehamilton/pokeparty/internal/pokemon"

// Multiplier values a single chart cell can hold.
const (
	NoEffect    = 0.0
	NotVery     = 0.5
	Neutral     = 1.0
	SuperEffect = 2.0
)

// matchups lists every non-neutral cell, keyed by attacking type.
var matchups = map[pokemon.TypeName]map[pokemon.TypeName]float64{
	pokemon.Normal: {
		pokemon.Rock: NotVery, pokemon.Steel: NotVery,
		pokemon.Ghost: NoEffect,
	},
	pokemon.Fire: {
		pokemon.Grass: SuperEffect, pokemon.Ice: SuperEffect, pokemon.Bug: SuperEffect, pokemon.Steel: SuperEffect,
		pokemon.Fire: NotVery, pokemon.Water: NotVery, pokemon.Rock: NotVery, pokemon.Dragon: NotVery,
	},
	pokemon.Water: {
		pokemon.Fire: SuperEffect, pokemon.Ground: SuperEffect, pokemon.Rock: SuperEffect,
		pokemon.Water: NotVery, pokemon.Grass: NotVery, pokemon.Dragon: NotVery,
	},
	pokemon.Electric: {
		pokemon.Water: SuperEffect, pokemon.Flying: SuperEffect,
		pokemon.Electric: NotVery, pokemon.Grass: NotVery, pokemon.Dragon: NotVery,
		pokemon.Ground: NoEffect,
	},
	pokemon.Grass: {
		pokemon.Water: SuperEffect, pokemon.Ground: SuperEffect, pokemon.Rock: SuperEffect,
		pokemon.Fire: NotVery, pokemon.Grass: NotVery, pokemon.Poison: NotVery, pokemon.Flying: NotVery,
		pokemon.Bug: NotVery, pokemon.Dragon: NotVery, pokemon.Steel: NotVery,
	},
	pokemon.Ice: {
		pokemon.Grass: SuperEffect, pokemon.Ground: SuperEffect, pokemon.Flying: SuperEffect, pokemon.Dragon: SuperEffect,
		pokemon.Fire: NotVery, pokemon.Water: NotVery, pokemon.Ice: NotVery, pokemon.Steel: NotVery,
	},
	pokemon.Fighting: {
		pokemon.Normal: SuperEffect, pokemon.Ice: SuperEffect, pokemon.Rock: SuperEffect, pokemon.Dark: SuperEffect,
		pokemon.Steel:  SuperEffect,
		pokemon.Poison: NotVery, pokemon.Flying: NotVery, pokemon.Psychic: NotVery, pokemon.Bug: NotVery,
		pokemon.Fairy: NotVery,
		pokemon.Ghost: NoEffect,
	},
	pokemon.Poison: {
		pokemon.Grass: SuperEffect, pokemon.Fairy: SuperEffect,
		pokemon.Poison: NotVery, pokemon.Ground: NotVery, pokemon.Rock: NotVery, pokemon.Ghost: NotVery,
		pokemon.Steel: NoEffect,
	},
	pokemon.Ground: {
		pokemon.Fire: SuperEffect, pokemon.Electric: SuperEffect, pokemon.Poison: SuperEffect, pokemon.Rock: SuperEffect,
		pokemon.Steel: SuperEffect,
		pokemon.Grass: NotVery, pokemon.Bug: NotVery,
		pokemon.Flying: NoEffect,
	},
	pokemon.Flying: {
		pokemon.Grass: SuperEffect, pokemon.Fighting: SuperEffect, pokemon.Bug: SuperEffect,
		pokemon.Electric: NotVery, pokemon.Rock: NotVery, pokemon.Steel: NotVery,
	},
	pokemon.Psychic: {
		pokemon.Fighting: SuperEffect, pokemon.Poison: SuperEffect,
		pokemon.Psychic: NotVery, pokemon.Steel: NotVery,
		pokemon.Dark: NoEffect,
	},
	pokemon.Bug: {
		pokemon.Grass: SuperEffect, pokemon.Psychic: SuperEffect, pokemon.Dark: SuperEffect,
		pokemon.Fire: NotVery, pokemon.Fighting: NotVery, pokemon.Poison: NotVery, pokemon.Flying: NotVery,
		pokemon.Ghost: NotVery, pokemon.Steel: NotVery, pokemon.Fairy: NotVery,
	},
	pokemon.Rock: {
		pokemon.Fire: SuperEffect, pokemon.Ice: SuperEffect, pokemon.Flying: SuperEffect, pokemon.Bug: SuperEffect,
		pokemon.Fighting: NotVery, pokemon.Ground: NotVery, pokemon.Steel: NotVery,
	},
	pokemon.Ghost: {
		pokemon.Psychic: SuperEffect, pokemon.Ghost: SuperEffect,
		pokemon.Dark:   NotVery,
		pokemon.Normal: NoEffect,
	},
	pokemon.Dragon: {
		pokemon.Dragon: SuperEffect,
		pokemon.Steel:  NotVery,
		pokemon.Fairy:  NoEffect,
	},
	pokemon.Dark: {
		pokemon.Psychic: SuperEffect, pokemon.Ghost: SuperEffect,
		pokemon.Fighting: NotVery, pokemon.Dark: NotVery, pokemon.Fairy: NotVery,
	},
	pokemon.Steel: {
		pokemon.Ice: SuperEffect, pokemon.Rock: SuperEffect, pokemon.Fairy: SuperEffect,
		pokemon.Fire: NotVery, pokemon.Water: NotVery, pokemon.Electric: NotVery, pokemon.Steel: NotVery,
	},
	pokemon.Fairy: {
		pokemon.Fighting: SuperEffect, pokemon.Dragon: SuperEffect, pokemon.Dark: SuperEffect,
		pokemon.Fire: NotVery, pokemon.Poison: NotVery, pokemon.Steel: NotVery,
	},
}

// MultiplierFor returns the chart multiplier for one attacking type against one defending type.
// Every pair of the 18 types is defined; pairs without an explicit entry are neutral.
func MultiplierFor(attack, defense pokemon.TypeName) float64 {
	if row, ok := matchups[attack]; ok {
		if m, ok := row[defense]; ok {
			return m
		}
	}
	return Neutral
}
