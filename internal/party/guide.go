package party

import (
	"fmt"
	"strings"

	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/moves"
)

// FallbackGuide is the deterministic strategy note used when the provider's note
// is unavailable.
func FallbackGuide(theme string, mode BattleMode, members []Member, lang string) string {
	names := memberNames(members)
	if lang == "ja" {
		return fallbackGuideJA(theme, mode, names)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "A %q party of %d.", theme, len(members))
	switch {
	case len(names) == 0:
	case mode == Double && len(names) >= 2:
		fmt.Fprintf(&b, " Open with %s and %s side by side and focus both attacks on one target.", names[0], names[1])
		if len(names) > 2 {
			fmt.Fprintf(&b, " Keep %s in the back to switch in on bad matchups.", joinEnglish(names[2:]))
		}
	default:
		fmt.Fprintf(&b, " Lead with %s.", names[0])
		if len(names) > 1 {
			fmt.Fprintf(&b, " Switch to %s when the matchup turns against you.", joinEnglish(names[1:]))
		}
	}
	b.WriteString(" Favour same-type attacks and pick moves the opponent does not resist.")
	return b.String()
}

func fallbackGuideJA(theme string, mode BattleMode, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "「%s」のパーティです。", theme)
	switch {
	case len(names) == 0:
	case mode == Double && len(names) >= 2:
		fmt.Fprintf(&b, "%sと%sを先発させ、同じ相手に攻撃を集中させましょう。", names[0], names[1])
		if len(names) > 2 {
			fmt.Fprintf(&b, "%sは控えに置き、不利な対面で交代しましょう。", strings.Join(names[2:], "、"))
		}
	default:
		fmt.Fprintf(&b, "%sを先発にしましょう。", names[0])
		if len(names) > 1 {
			fmt.Fprintf(&b, "不利な対面では%sに交代しましょう。", strings.Join(names[1:], "、"))
		}
	}
	b.WriteString("タイプ一致技を軸に、相手に半減されない技を選びましょう。")
	return b.String()
}

func memberName(m Member) string {
	if m.Species.DisplayName != "" {
		return m.Species.DisplayName
	}
	return m.Species.Name
}

func memberNames(members []Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = memberName(m)
	}
	return names
}

func joinEnglish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}

// guideRequest describes the party to the provider.
func guideRequest(theme string, mode BattleMode, members []Member, lang string) llm.GuideRequest {
	req := llm.GuideRequest{
		Theme:      theme,
		BattleMode: string(mode),
		Language:   lang,
		Members:    make([]llm.GuideMember, len(members)),
	}
	for i, m := range members {
		gm := llm.GuideMember{Name: memberName(m)}
		for _, t := range m.Species.Types {
			gm.Types = append(gm.Types, string(t.Name))
		}
		for _, mv := range m.Moves {
			gm.Moves = append(gm.Moves, mv.DisplayName)
		}
		req.Members[i] = gm
	}
	return req
}

// annotateAllyHits fills AllyWarnings on every member whose loadout can hit a partner.
func annotateAllyHits(members []Member) {
	for i := range members {
		members[i].AllyWarnings = allyWarningsFor(members, i)
	}
}

func allyWarningsFor(members []Member, i int) []AllyWarning {
	var warnings []AllyWarning
	for _, mv := range members[i].Moves {
		hit, ok := moves.AllyHitting(mv.Name)
		if !ok || !hit.HitsAllies {
			continue
		}
		w := AllyWarning{Move: mv.DisplayName, Note: hit.Note}
		for j, partner := range members {
			if j != i && hit.SafeFor(partner.Species.TypeNames()) {
				w.SafePartners = append(w.SafePartners, memberName(partner))
			}
		}
		warnings = append(warnings, w)
	}
	return warnings
}

// allyHitSection renders the warnings appended to a double-battle guide.
func allyHitSection(members []Member, lang string) string {
	var lines []string
	for _, m := range members {
		name := memberName(m)
		for _, w := range m.AllyWarnings {
			line := fmt.Sprintf("Careful: %s's %s. %s.", name, w.Move, w.Note)
			if lang == "ja" {
				line = fmt.Sprintf("注意: %sの%sは味方にも当たります。", name, w.Move)
			}
			if len(w.SafePartners) > 0 {
				if lang == "ja" {
					line += fmt.Sprintf("%sと組めば安全です。", strings.Join(w.SafePartners, "、"))
				} else {
					line += fmt.Sprintf(" Safe next to %s.", joinEnglish(w.SafePartners))
				}
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
