package effectiveness

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

func TestMultiplierFor_EveryPairInDomain(t *testing.T) {
	allowed := map[float64]bool{0: true, 0.5: true, 1: true, 2: true}
	for _, a := range pokemon.AllTypeNames {
		for _, d := range pokemon.AllTypeNames {
			m := MultiplierFor(a, d)
			if !allowed[m] {
				t.Errorf("MultiplierFor(%s, %s) = %v, outside chart domain", a, d, m)
			}
		}
	}
}

func TestMultiplierFor_KnownCells(t *testing.T) {
	tests := []struct {
		attack, defense pokemon.TypeName
		want            float64
	}{
		{pokemon.Fire, pokemon.Grass, 2},
		{pokemon.Grass, pokemon.Fire, 0.5},
		{pokemon.Normal, pokemon.Ghost, 0},
		{pokemon.Ghost, pokemon.Normal, 0},
		{pokemon.Ground, pokemon.Flying, 0},
		{pokemon.Flying, pokemon.Ground, 1},
		{pokemon.Dragon, pokemon.Fairy, 0},
		{pokemon.Fairy, pokemon.Dragon, 2},
		{pokemon.Electric, pokemon.Electric, 0.5},
		{pokemon.Psychic, pokemon.Dark, 0},
		{pokemon.Water, pokemon.Normal, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.attack)+"_vs_"+string(tt.defense), func(t *testing.T) {
			assert.Equal(t, tt.want, MultiplierFor(tt.attack, tt.defense))
		})
	}
}

func TestCalculate_ProductOfLookups(t *testing.T) {
	reachable := map[float64]bool{0: true, 0.25: true, 0.5: true, 1: true, 2: true, 4: true}
	for _, a := range pokemon.AllTypeNames {
		for i, d1 := range pokemon.AllTypeNames {
			single := Calculate(a, MustDefenderTypes(d1))
			assert.Equal(t, MultiplierFor(a, d1), single.Multiplier)

			for _, d2 := range pokemon.AllTypeNames[i+1:] {
				r := Calculate(a, MustDefenderTypes(d1, d2))
				want := MultiplierFor(a, d1) * MultiplierFor(a, d2)
				if r.Multiplier != want {
					t.Fatalf("%s vs %s/%s = %v, want %v", a, d1, d2, r.Multiplier, want)
				}
				if !reachable[r.Multiplier] {
					t.Fatalf("%s vs %s/%s produced unreachable multiplier %v", a, d1, d2, r.Multiplier)
				}
			}
		}
	}
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		m    float64
		want Category
	}{
		{0, Immune},
		{0.25, NotVeryEffect},
		{0.5, NotVeryEffect},
		{1, NormalEffect},
		{2, SuperEffective},
		{4, SuperEffective},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFor(tt.m), "multiplier %v", tt.m)
	}
}

func TestCalculate_Messages(t *testing.T) {
	tests := []struct {
		name       string
		attack     pokemon.TypeName
		defenders  DefenderTypes
		want       float64
		message    string
		emphasized bool
	}{
		{"immune", pokemon.Ground, MustDefenderTypes(pokemon.Flying), 0, "It doesn't affect the target...", false},
		{"quarter", pokemon.Fire, MustDefenderTypes(pokemon.Water, pokemon.Rock), 0.25, "It's barely effective...", true},
		{"half", pokemon.Fire, MustDefenderTypes(pokemon.Water), 0.5, "It's not very effective...", false},
		{"neutral", pokemon.Normal, MustDefenderTypes(pokemon.Water), 1, "Normal damage.", false},
		{"double", pokemon.Electric, MustDefenderTypes(pokemon.Water), 2, "It's super effective!", false},
		{"quadruple", pokemon.Fire, MustDefenderTypes(pokemon.Grass, pokemon.Bug), 4, "It's extremely effective!!", true},
		{"cancelled out", pokemon.Fire, MustDefenderTypes(pokemon.Grass, pokemon.Water), 1, "Normal damage.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(tt.attack, tt.defenders)
			assert.Equal(t, tt.want, r.Multiplier)
			assert.Equal(t, tt.message, r.Message)
			assert.Equal(t, tt.emphasized, r.Emphasized)
		})
	}
}

func TestCalculateLocalized(t *testing.T) {
	r := CalculateLocalized("ja", pokemon.Water, MustDefenderTypes(pokemon.Fire))
	assert.Equal(t, "こうかはばつぐんだ！", r.Message)
	assert.Equal(t, SuperEffective, r.Category)

	tests := []struct {
		attack    pokemon.TypeName
		defenders DefenderTypes
		want      string
	}{
		{pokemon.Electric, MustDefenderTypes(pokemon.Ground), "こうかがないようだ..."},
		{pokemon.Fire, MustDefenderTypes(pokemon.Water, pokemon.Rock), "こうかはいまひとつだ..."},
		{pokemon.Fire, MustDefenderTypes(pokemon.Water), "こうかはいまひとつのようだ"},
		{pokemon.Normal, MustDefenderTypes(pokemon.Water), "ふつうのダメージ"},
		{pokemon.Fire, MustDefenderTypes(pokemon.Grass, pokemon.Bug), "こうかはばつぐんだ！！"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateLocalized("ja", tt.attack, tt.defenders).Message, "%s vs %v", tt.attack, tt.defenders.Types())
	}

	fallback := CalculateLocalized("fr", pokemon.Water, MustDefenderTypes(pokemon.Fire))
	assert.Equal(t, "It's super effective!", fallback.Message)
}

func TestNewDefenderTypes(t *testing.T) {
	_, err := NewDefenderTypes()
	assert.True(t, errors.Is(err, ErrInvalidDefenderTypes))

	_, err = NewDefenderTypes(pokemon.Fire, pokemon.Water, pokemon.Grass)
	assert.True(t, errors.Is(err, ErrInvalidDefenderTypes))

	_, err = NewDefenderTypes(pokemon.Fire, pokemon.Fire)
	assert.True(t, errors.Is(err, ErrInvalidDefenderTypes))

	_, err = NewDefenderTypes("plasma")
	var unknown *pokemon.UnknownTypeError
	assert.True(t, errors.As(err, &unknown))

	d, err := NewDefenderTypes(pokemon.Water, pokemon.Ground)
	require.NoError(t, err)
	assert.Equal(t, []pokemon.TypeName{pokemon.Water, pokemon.Ground}, d.Types())
}

func TestParseDefenderTypes(t *testing.T) {
	d, err := ParseDefenderTypes([]string{" Fire ", "FLYING"})
	require.NoError(t, err)
	assert.Equal(t, []pokemon.TypeName{pokemon.Fire, pokemon.Flying}, d.Types())

	_, err = ParseDefenderTypes([]string{"fire", "sound"})
	assert.Error(t, err)
}

func TestForMove(t *testing.T) {
	power := 90
	fire, _ := pokemon.LookupType(pokemon.Fire)
	flamethrower := pokemon.Move{Name: "flamethrower", Type: fire, DamageClass: pokemon.Special, Power: &power}
	willOWisp := pokemon.Move{Name: "will-o-wisp", Type: fire, DamageClass: pokemon.Status}
	defender := MustDefenderTypes(pokemon.Grass, pokemon.Steel)

	r, ok := ForMove(flamethrower, defender)
	require.True(t, ok)
	assert.Equal(t, 4.0, r.Multiplier)

	_, ok = ForMove(willOWisp, defender)
	assert.False(t, ok, "status moves must not produce a result")
}

func TestForMove_Idempotent(t *testing.T) {
	power := 80
	loadout := []pokemon.Move{}
	for _, name := range []pokemon.TypeName{pokemon.Ice, pokemon.Fighting, pokemon.Dark, pokemon.Fairy} {
		tp, _ := pokemon.LookupType(name)
		loadout = append(loadout, pokemon.Move{Name: string(name) + "-move", Type: tp, DamageClass: pokemon.Physical, Power: &power})
	}
	defender := MustDefenderTypes(pokemon.Dragon, pokemon.Flying)

	first := make([]Result, 0, len(loadout))
	for _, m := range loadout {
		r, _ := ForMove(m, defender)
		first = append(first, r)
	}
	for i := 0; i < 5; i++ {
		again := make([]Result, 0, len(loadout))
		for _, m := range loadout {
			r, _ := ForMove(m, defender)
			again = append(again, r)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("results changed between calls (-first +again):\n%s", diff)
		}
	}
}

func TestFormatMultiplier(t *testing.T) {
	assert.Equal(t, "×0", FormatMultiplier(0))
	assert.Equal(t, "×0.25", FormatMultiplier(0.25))
	assert.Equal(t, "×0.5", FormatMultiplier(0.5))
	assert.Equal(t, "×1", FormatMultiplier(1))
	assert.Equal(t, "×4", FormatMultiplier(4))
}

func TestDefensiveProfile(t *testing.T) {
	p := DefensiveProfile(MustDefenderTypes(pokemon.Water, pokemon.Ground))

	total := len(p.Immune) + len(p.Resists) + len(p.Neutral) + len(p.Weak)
	assert.Equal(t, len(pokemon.AllTypeNames), total)

	assert.Equal(t, []Matchup{{Type: pokemon.Electric, Multiplier: 0}}, p.Immune)
	assert.Equal(t, []Matchup{{Type: pokemon.Grass, Multiplier: 4}}, p.Weak)
	assert.Contains(t, p.Resists, Matchup{Type: pokemon.Fire, Multiplier: 0.5})
	assert.Contains(t, p.Neutral, Matchup{Type: pokemon.Water, Multiplier: 1})

	quarter := DefensiveProfile(MustDefenderTypes(pokemon.Water, pokemon.Rock))
	assert.Contains(t, quarter.Resists, Matchup{Type: pokemon.Fire, Multiplier: 0.25})
	assert.Contains(t, quarter.Weak, Matchup{Type: pokemon.Grass, Multiplier: 4})
}

func TestOffensiveCoverage(t *testing.T) {
	c := OffensiveCoverage(pokemon.Ground)
	assert.Equal(t, []pokemon.TypeName{pokemon.Flying}, c.NoEffect)
	assert.Equal(t, []pokemon.TypeName{pokemon.Fire, pokemon.Electric, pokemon.Poison, pokemon.Rock, pokemon.Steel}, c.Super)
	assert.Equal(t, []pokemon.TypeName{pokemon.Grass, pokemon.Bug}, c.NotVery)
	assert.Len(t, c.Neutral, 18-1-5-2)
}
