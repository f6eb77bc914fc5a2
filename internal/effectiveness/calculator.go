package effectiveness

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// ErrInvalidDefenderTypes is returned when a defender has no types, more than two, or a duplicate.
var ErrInvalidDefenderTypes = errors.New("defender must have one or two distinct types")

// DefenderTypes is the one or two types of the species being hit.
type DefenderTypes struct {
	types []pokemon.TypeName
}

// NewDefenderTypes validates and builds a defender type list.
func NewDefenderTypes(types ...pokemon.TypeName) (DefenderTypes, error) {
	if len(types) == 0 || len(types) > 2 {
		return DefenderTypes{}, fmt.Errorf("%w: got %d", ErrInvalidDefenderTypes, len(types))
	}
	for _, t := range types {
		if _, ok := pokemon.LookupType(t); !ok {
			return DefenderTypes{}, &pokemon.UnknownTypeError{Name: string(t)}
		}
	}
	if len(types) == 2 && types[0] == types[1] {
		return DefenderTypes{}, fmt.Errorf("%w: %s listed twice", ErrInvalidDefenderTypes, types[0])
	}
	return DefenderTypes{types: append([]pokemon.TypeName(nil), types...)}, nil
}

// MustDefenderTypes is NewDefenderTypes for literals known to be valid.
func MustDefenderTypes(types ...pokemon.TypeName) DefenderTypes {
	d, err := NewDefenderTypes(types...)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDefenderTypes builds a defender type list from raw strings.
func ParseDefenderTypes(raw []string) (DefenderTypes, error) {
	names := make([]pokemon.TypeName, 0, len(raw))
	for _, r := range raw {
		name, err := pokemon.ParseTypeName(r)
		if err != nil {
			return DefenderTypes{}, err
		}
		names = append(names, name)
	}
	return NewDefenderTypes(names...)
}

// Types returns a copy of the defender's types in order.
func (d DefenderTypes) Types() []pokemon.TypeName {
	return append([]pokemon.TypeName(nil), d.types...)
}

// Category is the coarse outcome of an attack.
type Category string

const (
	Immune         Category = "immune"
	NotVeryEffect  Category = "not_very"
	NormalEffect   Category = "normal"
	SuperEffective Category = "super"
)

// CategoryFor derives the category from a combined multiplier.
func CategoryFor(m float64) Category {
	switch {
	case m == 0:
		return Immune
	case m < 1:
		return NotVeryEffect
	case m == 1:
		return NormalEffect
	default:
		return SuperEffective
	}
}

// Result is the outcome of one attacking type against a defender.
type Result struct {
	Multiplier float64  `json:"multiplier"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	// Emphasized marks the 0.25 and 4 cases, which only change the wording.
	Emphasized bool `json:"emphasized"`
}

type messageSet struct {
	immune, notVery, barely, normal, super, extreme string
}

var messages = map[string]messageSet{
	"en": {
		immune:  "It doesn't affect the target...",
		notVery: "It's not very effective...",
		barely:  "It's barely effective...",
		normal:  "Normal damage.",
		super:   "It's super effective!",
		extreme: "It's extremely effective!!",
	},
	"ja": {
		immune:  "こうかがないようだ...",
		notVery: "こうかはいまひとつのようだ",
		barely:  "こうかはいまひとつだ...",
		normal:  "ふつうのダメージ",
		super:   "こうかはばつぐんだ！",
		extreme: "こうかはばつぐんだ！！",
	},
}

// Calculate multiplies the chart entries for every defender type. English wording.
func Calculate(attack pokemon.TypeName, defenders DefenderTypes) Result {
	return CalculateLocalized("en", attack, defenders)
}

// CalculateLocalized is Calculate with messages in the given language ("en" or "ja").
// Unknown languages fall back to English.
func CalculateLocalized(lang string, attack pokemon.TypeName, defenders DefenderTypes) Result {
	m := 1.0
	for _, d := range defenders.types {
		m *= MultiplierFor(attack, d)
	}

	set, ok := messages[lang]
	if !ok {
		set = messages["en"]
	}

	r := Result{Multiplier: m, Category: CategoryFor(m)}
	switch r.Category {
	case Immune:
		r.Message = set.immune
	case NotVeryEffect:
		r.Message = set.notVery
		if m == 0.25 {
			r.Message = set.barely
			r.Emphasized = true
		}
	case NormalEffect:
		r.Message = set.normal
	case SuperEffective:
		r.Message = set.super
		if m == 4 {
			r.Message = set.extreme
			r.Emphasized = true
		}
	}
	return r
}

// ForMove computes the result for a damaging move. Status moves deal no damage
// and report false without consulting the chart.
func ForMove(move pokemon.Move, defenders DefenderTypes) (Result, bool) {
	if move.IsStatus() {
		return Result{}, false
	}
	return Calculate(move.Type.Name, defenders), true
}

// FormatMultiplier renders a multiplier as "×2", "×0.25" and so on.
func FormatMultiplier(m float64) string {
	return "×" + strconv.FormatFloat(m, 'f', -1, 64)
}
