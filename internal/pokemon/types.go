// Package pokemon holds the shared domain model: the 18 elemental types, moves and species.
package pokemon

import (
	"fmt"
	"strings"
)

// TypeName is the machine-readable identifier of an elemental type (e.g. "fire").
type TypeName string

const (
	Normal   TypeName = "normal"
	Fire     TypeName = "fire"
	Water    TypeName = "water"
	Electric TypeName = "electric"
	Grass    TypeName = "grass"
	Ice      TypeName = "ice"
	Fighting TypeName = "fighting"
	Poison   TypeName = "poison"
	Ground   TypeName = "ground"
	Flying   TypeName = "flying"
	Psychic  TypeName = "psychic"
	Bug      TypeName = "bug"
	Rock     TypeName = "rock"
	Ghost    TypeName = "ghost"
	Dragon   TypeName = "dragon"
	Dark     TypeName = "dark"
	Steel    TypeName = "steel"
	Fairy    TypeName = "fairy"
)

// AllTypeNames lists the 18 types in chart order.
var AllTypeNames = []TypeName{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

// Type describes how a type is presented.
type Type struct {
	Name         TypeName `json:"name"`
	DisplayName  string   `json:"displayName"`
	JapaneseName string   `json:"japaneseName"`
	Color        string   `json:"color"` // hex color token
}

var typeTable = map[TypeName]Type{
	Normal:   {Name: Normal, DisplayName: "Normal", JapaneseName: "ノーマル", Color: "#A8A878"},
	Fire:     {Name: Fire, DisplayName: "Fire", JapaneseName: "ほのお", Color: "#F08030"},
	Water:    {Name: Water, DisplayName: "Water", JapaneseName: "みず", Color: "#6890F0"},
	Electric: {Name: Electric, DisplayName: "Electric", JapaneseName: "でんき", Color: "#F8D030"},
	Grass:    {Name: Grass, DisplayName: "Grass", JapaneseName: "くさ", Color: "#78C850"},
	Ice:      {Name: Ice, DisplayName: "Ice", JapaneseName: "こおり", Color: "#98D8D8"},
	Fighting: {Name: Fighting, DisplayName: "Fighting", JapaneseName: "かくとう", Color: "#C03028"},
	Poison:   {Name: Poison, DisplayName: "Poison", JapaneseName: "どく", Color: "#A040A0"},
	Ground:   {Name: Ground, DisplayName: "Ground", JapaneseName: "じめん", Color: "#E0C068"},
	Flying:   {Name: Flying, DisplayName: "Flying", JapaneseName: "ひこう", Color: "#A890F0"},
	Psychic:  {Name: Psychic, DisplayName: "Psychic", JapaneseName: "エスパー", Color: "#F85888"},
	Bug:      {Name: Bug, DisplayName: "Bug", JapaneseName: "むし", Color: "#A8B820"},
	Rock:     {Name: Rock, DisplayName: "Rock", JapaneseName: "いわ", Color: "#B8A038"},
	Ghost:    {Name: Ghost, DisplayName: "Ghost", JapaneseName: "ゴースト", Color: "#705898"},
	Dragon:   {Name: Dragon, DisplayName: "Dragon", JapaneseName: "ドラゴン", Color: "#7038F8"},
	Dark:     {Name: Dark, DisplayName: "Dark", JapaneseName: "あく", Color: "#705848"},
	Steel:    {Name: Steel, DisplayName: "Steel", JapaneseName: "はがね", Color: "#B8B8D0"},
	Fairy:    {Name: Fairy, DisplayName: "Fairy", JapaneseName: "フェアリー", Color: "#EE99AC"},
}

// LookupType returns the presentation data for a type name.
func LookupType(name TypeName) (Type, bool) {
	t, ok := typeTable[name]
	return t, ok
}

// AllTypes returns the presentation data for every type in chart order.
func AllTypes() []Type {
	types := make([]Type, 0, len(AllTypeNames))
	for _, name := range AllTypeNames {
		types = append(types, typeTable[name])
	}
	return types
}

// UnknownTypeError is returned when a string does not name one of the 18 types.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

// ParseTypeName validates and normalises a type name.
func ParseTypeName(s string) (TypeName, error) {
	name := TypeName(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := typeTable[name]; !ok {
		return "", &UnknownTypeError{Name: s}
	}
	return name, nil
}

// Localized returns the display name for a language code ("ja" or anything else for English).
func (t Type) Localized(lang string) string {
	if lang == "ja" {
		return t.JapaneseName
	}
	return t.DisplayName
}
