package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply   string
	err     error
	systems []string
	prompts []string
	opts    []CompletionOptions
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string, opts CompletionOptions) (string, error) {
	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.reply, f.err
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  *Suggestion
		isErr bool
	}{
		{
			name: "plain object",
			text: `{"pokemon": ["pikachu", "raichu"]}`,
			want: &Suggestion{Pokemon: []string{"pikachu", "raichu"}},
		},
		{
			name: "fenced with theme",
			text: "```json\n{\"theme\": \" Volcano \", \"pokemon\": [\"magcargo\"]}\n```",
			want: &Suggestion{Theme: "Volcano", Pokemon: []string{"magcargo"}},
		},
		{
			name: "prose around object",
			text: `Sure! Here you go: {"pokemon": ["mr-mime"], "note": "a {brace} in text"} Enjoy.`,
			want: &Suggestion{Pokemon: []string{"mr-mime"}},
		},
		{name: "no object", text: "I cannot help with that.", isErr: true},
		{name: "missing list", text: `{"theme": "x"}`, isErr: true},
		{name: "wrong element type", text: `{"pokemon": [1, 2]}`, isErr: true},
		{name: "truncated", text: `{"pokemon": ["pikachu"`, isErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestion(tt.text)
			if tt.isErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```{\"a\":1}```"))
	assert.Equal(t, "plain", stripFences("  plain  "))
}

func TestPromptSuggester_SuggestPokemon(t *testing.T) {
	fc := &fakeCompleter{reply: `{"pokemon": ["vaporeon", "jolteon", "flareon"]}`}
	s := NewPromptSuggester(fc, DefaultSuggesterConfig())

	got, err := s.SuggestPokemon(context.Background(), SuggestRequest{Theme: "eeveelutions", Count: 3, BattleMode: "double"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vaporeon", "jolteon", "flareon"}, got.Pokemon)

	require.Len(t, fc.prompts, 1)
	assert.Contains(t, fc.prompts[0], "Theme: eeveelutions")
	assert.Contains(t, fc.prompts[0], "Number of Pokémon: 3")
	assert.Contains(t, fc.prompts[0], "double battles")
	assert.True(t, fc.opts[0].JSON)
	assert.Equal(t, suggestSystemPrompt, fc.systems[0])
}

func TestPromptSuggester_Random(t *testing.T) {
	fc := &fakeCompleter{reply: `{"theme": "Night owls", "pokemon": ["noctowl"]}`}
	s := NewPromptSuggester(fc, DefaultSuggesterConfig())

	got, err := s.SuggestPokemon(context.Background(), SuggestRequest{Count: 1, Random: true})
	require.NoError(t, err)
	assert.Equal(t, "Night owls", got.Theme)
	assert.Equal(t, randomSystemPrompt, fc.systems[0])
	assert.NotContains(t, fc.prompts[0], "Theme:")
}

func TestPromptSuggester_PropagatesRateLimit(t *testing.T) {
	rl := &RateLimitError{Provider: "fake", RetryAfter: DefaultRetryAfter}
	s := NewPromptSuggester(&fakeCompleter{err: rl}, DefaultSuggesterConfig())

	_, err := s.SuggestPokemon(context.Background(), SuggestRequest{Theme: "x", Count: 1})
	var got *RateLimitError
	require.True(t, errors.As(err, &got))
	assert.Same(t, rl, got)
}

func TestPromptSuggester_WriteGuide(t *testing.T) {
	fc := &fakeCompleter{reply: "  Lead with Pikachu.  "}
	s := NewPromptSuggester(fc, DefaultSuggesterConfig())

	guide, err := s.WriteGuide(context.Background(), GuideRequest{
		Theme:    "electric",
		Language: "ja",
		Members:  []GuideMember{{Name: "Pikachu", Types: []string{"electric"}, Moves: []string{"Thunderbolt", "Quick Attack"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lead with Pikachu.", guide)
	assert.Contains(t, fc.prompts[0], "Japanese")
	assert.Contains(t, fc.prompts[0], "- Pikachu (electric): Thunderbolt, Quick Attack")
	assert.False(t, fc.opts[0].JSON)

	fc.reply = "   "
	_, err = s.WriteGuide(context.Background(), GuideRequest{Theme: "electric"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
