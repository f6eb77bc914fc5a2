package pokemon

import "fmt"

// DamageClass is how a move deals damage.
type DamageClass string

const (
	Physical DamageClass = "physical"
	Special  DamageClass = "special"
	Status   DamageClass = "status"
)

// ParseDamageClass validates a damage class name.
func ParseDamageClass(s string) (DamageClass, error) {
	switch DamageClass(s) {
	case Physical, Special, Status:
		return DamageClass(s), nil
	}
	return "", fmt.Errorf("unknown damage class %q", s)
}

// JapaneseName returns the Japanese label of the damage class.
func (c DamageClass) JapaneseName() string {
	switch c {
	case Physical:
		return "ぶつり"
	case Special:
		return "とくしゅ"
	case Status:
		return "へんか"
	}
	return string(c)
}

// Move is a fully resolved move. Status moves deal no damage.
type Move struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Type        Type        `json:"type"`
	DamageClass DamageClass `json:"damageClass"`
	Power       *int        `json:"power,omitempty"`
	Description string      `json:"description,omitempty"`
}

// IsStatus reports whether the move deals no direct damage.
func (m Move) IsStatus() bool {
	return m.DamageClass == Status
}

// Species is a creature without its movepool.
type Species struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Types       []Type `json:"types"`
	Sprite      string `json:"sprite"`
}

// TypeNames returns the species' own type names.
func (s Species) TypeNames() []TypeName {
	names := make([]TypeName, len(s.Types))
	for i, t := range s.Types {
		names[i] = t.Name
	}
	return names
}

// HasType reports whether the species has the given type.
func (s Species) HasType(name TypeName) bool {
	for _, t := range s.Types {
		if t.Name == name {
			return true
		}
	}
	return false
}
