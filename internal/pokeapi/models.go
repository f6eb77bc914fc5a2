package pokeapi

import (
	"errors"
	"fmt"
)

// NamedResource is PokeAPI's {name, url} reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LocalizedName is one entry of a resource's "names" list.
type LocalizedName struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

// FlavorText is one entry of a move's "flavor_text_entries" list.
type FlavorText struct {
	FlavorText   string        `json:"flavor_text"`
	Language     NamedResource `json:"language"`
	VersionGroup NamedResource `json:"version_group"`
}

// PokemonType is a slot in a pokemon's type list.
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonMove is an entry of a pokemon's learnable move list.
type PokemonMove struct {
	Move NamedResource `json:"move"`
}

// Sprites holds the image URLs used for display.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

// Pokemon is the /pokemon/{id or name} resource, trimmed to the fields we use.
type Pokemon struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Species NamedResource `json:"species"`
	Types   []PokemonType `json:"types"`
	Moves   []PokemonMove `json:"moves"`
	Sprites Sprites       `json:"sprites"`
}

// PokemonSpecies is the /pokemon-species/{id} resource.
type PokemonSpecies struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Names []LocalizedName `json:"names"`
}

// Move is the /move/{id or name} resource.
type Move struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Power             *int            `json:"power"`
	Type              NamedResource   `json:"type"`
	DamageClass       NamedResource   `json:"damage_class"`
	Names             []LocalizedName `json:"names"`
	FlavorTextEntries []FlavorText    `json:"flavor_text_entries"`
}

// ErrMalformed marks a response that decoded but is missing required data.
var ErrMalformed = errors.New("malformed PokeAPI response")

// APIError is a non-success response other than 404 and 429.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("PokeAPI error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("PokeAPI error (HTTP %d)", e.Status)
}

// NotFoundError represents a 404 error from the API.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
