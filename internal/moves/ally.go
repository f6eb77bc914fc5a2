package moves

import "github.com/ramonehamilton/pokeparty/internal/pokemon"

// AllyHit describes a spread move relevant to double battles.
type AllyHit struct {
	Name         string             `json:"name"`
	JapaneseName string             `json:"japaneseName"`
	HitsAllies   bool               `json:"hitsAllies"`
	ImmuneTypes  []pokemon.TypeName `json:"immuneTypes,omitempty"`
	Note         string             `json:"note"`
}

var allyHits = map[string]AllyHit{
	"earthquake":     {Name: "earthquake", JapaneseName: "じしん", HitsAllies: true, ImmuneTypes: []pokemon.TypeName{pokemon.Flying}, Note: "Hits the partner; Flying types and Levitate are immune"},
	"magnitude":      {Name: "magnitude", JapaneseName: "マグニチュード", HitsAllies: true, ImmuneTypes: []pokemon.TypeName{pokemon.Flying}, Note: "Hits the partner; Flying types and Levitate are immune"},
	"bulldoze":       {Name: "bulldoze", JapaneseName: "じならし", HitsAllies: true, ImmuneTypes: []pokemon.TypeName{pokemon.Flying}, Note: "Hits the partner; Flying types and Levitate are immune"},
	"surf":           {Name: "surf", JapaneseName: "なみのり", HitsAllies: true, Note: "Hits everyone on the field"},
	"muddy-water":    {Name: "muddy-water", JapaneseName: "だくりゅう", HitsAllies: true, Note: "Hits everyone on the field"},
	"blizzard":       {Name: "blizzard", JapaneseName: "ふぶき", HitsAllies: true, Note: "Hits everyone on the field"},
	"rock-slide":     {Name: "rock-slide", JapaneseName: "いわなだれ", Note: "Hits both opponents only"},
	"explosion":      {Name: "explosion", JapaneseName: "だいばくはつ", HitsAllies: true, Note: "User faints and the partner is hit"},
	"self-destruct":  {Name: "self-destruct", JapaneseName: "じばく", HitsAllies: true, Note: "User faints and the partner is hit"},
	"lava-plume":     {Name: "lava-plume", JapaneseName: "ふんえん", HitsAllies: true, Note: "Hits everyone on the field"},
	"heat-wave":      {Name: "heat-wave", JapaneseName: "ねっぷう", Note: "Hits both opponents only"},
	"discharge":      {Name: "discharge", JapaneseName: "ほうでん", HitsAllies: true, Note: "Hits everyone on the field"},
	"dazzling-gleam": {Name: "dazzling-gleam", JapaneseName: "マジカルシャイン", Note: "Hits both opponents only"},
	"snarl":          {Name: "snarl", JapaneseName: "バークアウト", Note: "Hits both opponents only"},
	"twister":        {Name: "twister", JapaneseName: "たつまき", Note: "Hits both opponents only"},
	"boomburst":      {Name: "boomburst", JapaneseName: "ばくおんぱ", HitsAllies: true, Note: "Hits everyone on the field"},
	"hyper-voice":    {Name: "hyper-voice", JapaneseName: "ハイパーボイス", Note: "Hits both opponents only"},
}

// AllyHitting looks up a spread move by machine name.
func AllyHitting(name string) (AllyHit, bool) {
	h, ok := allyHits[name]
	return h, ok
}

// CanHitAlly reports whether using the move can damage the user's partner.
func CanHitAlly(name string) bool {
	h, ok := allyHits[name]
	return ok && h.HitsAllies
}

// SafeFor reports whether a partner with the given types is immune to the move.
func (h AllyHit) SafeFor(partner []pokemon.TypeName) bool {
	for _, immune := range h.ImmuneTypes {
		for _, t := range partner {
			if t == immune {
				return true
			}
		}
	}
	return false
}
