package party

import (
	"strings"
	"unicode/utf8"
)

const (
	MinCount       = 1
	MaxCount       = 6
	MaxThemeLength = 200
)

// Request is the caller-facing generation request.
type Request struct {
	Mode       Mode       `json:"mode"`
	Theme      string     `json:"theme,omitempty"`
	Count      int        `json:"count"`
	BattleMode BattleMode `json:"battleMode"`
}

// Normalize validates r and returns it with defaults applied: an empty mode is
// theme, an empty battle mode is single, and the theme is trimmed and capped.
func (r Request) Normalize() (Request, error) {
	if r.Mode == "" {
		r.Mode = ModeTheme
	}
	if r.Mode != ModeTheme && r.Mode != ModeRandom {
		return r, invalidf("unknown mode %q", r.Mode)
	}

	if r.BattleMode == "" {
		r.BattleMode = Single
	}
	if r.BattleMode != Single && r.BattleMode != Double {
		return r, invalidf("unknown battle mode %q", r.BattleMode)
	}

	if r.Count < MinCount || r.Count > MaxCount {
		return r, invalidf("count must be between %d and %d, got %d", MinCount, MaxCount, r.Count)
	}

	r.Theme = truncateRunes(strings.TrimSpace(r.Theme), MaxThemeLength)
	if r.Mode == ModeTheme && r.Theme == "" {
		return r, invalidf("theme is required in theme mode")
	}
	if r.Mode == ModeRandom {
		r.Theme = ""
	}
	return r, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
