package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when the provider's answer lacks the expected shape.
var ErrMalformedResponse = errors.New("malformed provider response")

const suggestSystemPrompt = `You are a Pokémon expert building themed teams.
Rules:
1. Return only real Pokémon, using their English machine names (lower case, words joined by hyphens, e.g. "mr-mime").
2. Return exactly the requested number of Pokémon.
3. Only choose Pokémon that fit the theme.
4. Answer with a single JSON object and nothing else.
Output format: {"pokemon": ["pikachu", "charizard", "blastoise"]}`

const randomSystemPrompt = `You are a Pokémon expert building themed teams.
Invent a fun, specific team theme yourself, then choose Pokémon that fit it.
Rules:
1. Return only real Pokémon, using their English machine names (lower case, words joined by hyphens).
2. Return exactly the requested number of Pokémon.
3. Answer with a single JSON object and nothing else.
Output format: {"theme": "Volcano dwellers", "pokemon": ["magcargo", "torkoal"]}`

const guideSystemPrompt = `You are a competitive Pokémon coach.
Write a short strategy note (at most five sentences) for the given team: name each member's role
and how the team should play together. Plain text only, no headings or lists.`

// SuggesterConfig tunes the prompts sent through a Completer.
type SuggesterConfig struct {
	SuggestTemperature float64
	SuggestMaxTokens   int
	GuideTemperature   float64
	GuideMaxTokens     int
}

// DefaultSuggesterConfig returns sensible defaults.
func DefaultSuggesterConfig() SuggesterConfig {
	return SuggesterConfig{
		SuggestTemperature: 0.9,
		SuggestMaxTokens:   300,
		GuideTemperature:   0.7,
		GuideMaxTokens:     500,
	}
}

// PromptSuggester implements Suggester on top of any Completer.
type PromptSuggester struct {
	completer Completer
	config    SuggesterConfig
}

// NewPromptSuggester wraps a completer.
func NewPromptSuggester(completer Completer, config SuggesterConfig) *PromptSuggester {
	return &PromptSuggester{completer: completer, config: config}
}

func (s *PromptSuggester) Name() string { return s.completer.Name() }

func battleModeLabel(mode string) string {
	if mode == "double" {
		return "double battles (two Pokémon on the field per side)"
	}
	return "single battles"
}

// SuggestPokemon asks for req.Count candidate identifiers.
func (s *PromptSuggester) SuggestPokemon(ctx context.Context, req SuggestRequest) (*Suggestion, error) {
	system := suggestSystemPrompt
	var prompt strings.Builder
	if req.Random {
		system = randomSystemPrompt
		fmt.Fprintf(&prompt, "Invent a theme and choose %d Pokémon for %s.\n", req.Count, battleModeLabel(req.BattleMode))
	} else {
		fmt.Fprintf(&prompt, "Theme: %s\n", req.Theme)
		fmt.Fprintf(&prompt, "Number of Pokémon: %d\n", req.Count)
		fmt.Fprintf(&prompt, "Format: %s\n", battleModeLabel(req.BattleMode))
	}
	prompt.WriteString("Reply with JSON only.")

	text, err := s.completer.Complete(ctx, system, prompt.String(), CompletionOptions{
		Temperature: s.config.SuggestTemperature,
		MaxTokens:   s.config.SuggestMaxTokens,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}
	return ParseSuggestion(text)
}

// WriteGuide asks for a plain-text strategy note.
func (s *PromptSuggester) WriteGuide(ctx context.Context, req GuideRequest) (string, error) {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Theme: %s\nFormat: %s\n", req.Theme, battleModeLabel(req.BattleMode))
	if req.Language == "ja" {
		prompt.WriteString("Write the note in Japanese.\n")
	}
	prompt.WriteString("Team:\n")
	for _, m := range req.Members {
		fmt.Fprintf(&prompt, "- %s (%s): %s\n", m.Name, strings.Join(m.Types, "/"), strings.Join(m.Moves, ", "))
	}

	text, err := s.completer.Complete(ctx, guideSystemPrompt, prompt.String(), CompletionOptions{
		Temperature: s.config.GuideTemperature,
		MaxTokens:   s.config.GuideMaxTokens,
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(stripFences(text))
	if text == "" {
		return "", fmt.Errorf("%w: empty guide", ErrMalformedResponse)
	}
	return text, nil
}

// stripFences removes a surrounding ``` or ```json code block.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "```")
	if start < 0 {
		return text
	}
	rest := text[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "{[") {
		rest = rest[nl+1:]
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// extractObject returns the first balanced {...} object in text.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// ParseSuggestion extracts {"theme"?: string, "pokemon": [string]} from a model answer.
func ParseSuggestion(text string) (*Suggestion, error) {
	obj, ok := extractObject(stripFences(text))
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}

	var raw struct {
		Theme   string          `json:"theme"`
		Pokemon json.RawMessage `json:"pokemon"`
	}
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(raw.Pokemon) == 0 {
		return nil, fmt.Errorf("%w: missing pokemon list", ErrMalformedResponse)
	}
	var names []string
	if err := json.Unmarshal(raw.Pokemon, &names); err != nil {
		return nil, fmt.Errorf("%w: pokemon must be a list of strings", ErrMalformedResponse)
	}

	return &Suggestion{Theme: strings.TrimSpace(raw.Theme), Pokemon: names}, nil
}
