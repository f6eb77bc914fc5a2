package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/ramonehamilton/pokeparty/internal/pokedex"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

func newPokedexRouter() http.Handler {
	h := NewPokedexHandler(pokedex.NewCatalog([]pokedex.Entry{
		{ID: 25, Name: "pikachu", JapaneseName: "ピカチュウ", Types: []pokemon.TypeName{pokemon.Electric}},
		{ID: 26, Name: "raichu", JapaneseName: "ライチュウ", Types: []pokemon.TypeName{pokemon.Electric}},
		{ID: 172, Name: "pichu", JapaneseName: "ピチュー", Types: []pokemon.TypeName{pokemon.Electric}},
	}))
	r := chi.NewRouter()
	r.Get("/pokemon/search", h.Search)
	r.Get("/pokemon/{speciesID}", h.GetSpecies)
	return r
}

func TestPokedexSearch(t *testing.T) {
	h := newPokedexRouter()

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"prefix first", "q=" + url.QueryEscape("ピ"), []int{25, 172}},
		{"substring by id", "q=" + url.QueryEscape("チュ"), []int{25, 26, 172}},
		{"limit", "q=" + url.QueryEscape("チュ") + "&limit=1", []int{25}},
		{"empty query", "q=", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/pokemon/search?"+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			got := decodeData[SearchResponse](t, rec)
			if got.Total != 3 {
				t.Errorf("Total = %d, want 3", got.Total)
			}
			ids := make([]int, len(got.Results))
			for i, e := range got.Results {
				ids[i] = e.ID
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if rec := do(t, h, http.MethodGet, "/pokemon/search?q=x&limit=-1", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetSpecies(t *testing.T) {
	h := newPokedexRouter()

	for _, target := range []string{"/pokemon/25", "/pokemon/Pikachu"} {
		rec := do(t, h, http.MethodGet, target, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status = %d", target, rec.Code)
		}
		var resp struct {
			Data pokedex.Entry `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Data.JapaneseName != "ピカチュウ" {
			t.Errorf("GET %s: japaneseName = %q", target, resp.Data.JapaneseName)
		}
	}

	if rec := do(t, h, http.MethodGet, "/pokemon/151", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown species: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
