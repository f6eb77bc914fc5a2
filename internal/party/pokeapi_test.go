package party

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/pokeapi"
)

const pikachuResource = `{
	"id": 25,
	"name": "pikachu",
	"species": {"name": "pikachu", "url": ""},
	"types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
	"moves": [
		{"move": {"name": "thunderbolt", "url": ""}},
		{"move": {"name": "quick-attack", "url": ""}},
		{"move": {"name": "growl", "url": ""}}
	],
	"sprites": {"front_default": null, "other": {"official-artwork": {"front_default": null}}}
}`

const pikachuSpeciesResource = `{"id": 25, "name": "pikachu", "names": [{"name": "Pikachu", "language": {"name": "en", "url": ""}}]}`

func TestGenerate_PokemonResourceFetchedOncePerGeneration(t *testing.T) {
	var pokemonHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/pikachu", func(w http.ResponseWriter, r *http.Request) {
		pokemonHits.Add(1)
		_, _ = w.Write([]byte(pikachuResource))
	})
	mux.HandleFunc("/pokemon-species/pikachu", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(pikachuSpeciesResource))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		http.DefaultTransport.(*http.Transport).CloseIdleConnections()
	})

	client := pokeapi.NewClient(pokeapi.ClientConfig{
		BaseURL:    server.URL,
		RateLimit:  time.Millisecond,
		MaxRetries: 1,
		Language:   "en",
	})

	cfg := DefaultGeneratorConfig()
	pools := moves.NewMovepools(client)
	cfg.Movepools = pools
	suggester := &fakeSuggester{suggestion: &llm.Suggestion{Pokemon: []string{"pikachu"}}, guide: "Zap."}
	g := newTestGenerator(t, suggester, client, cfg)

	for range 2 {
		p, err := g.Generate(context.Background(), Request{Theme: "mouse", Count: 1})
		require.NoError(t, err)
		require.Len(t, p.Members, 1)
		assert.Equal(t, "Pikachu", p.Members[0].Species.DisplayName)
	}
	assert.Equal(t, int32(2), pokemonHits.Load())

	// The movepool route shares the names the generator cached.
	names, err := pools.LearnableMoveNames(context.Background(), "25")
	require.NoError(t, err)
	assert.Equal(t, []string{"thunderbolt", "quick-attack", "growl"}, names)
	assert.Equal(t, int32(2), pokemonHits.Load())
}
