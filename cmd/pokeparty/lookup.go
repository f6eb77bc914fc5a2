package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/pokeparty/internal/effectiveness"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/pokedex"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

func typeLabels(names []pokemon.TypeName, lang string) string {
	labels := make([]string, len(names))
	for i, n := range names {
		t, _ := pokemon.LookupType(n)
		labels[i] = t.Localized(lang)
	}
	return strings.Join(labels, "/")
}

func newMatchupCmd(c *cli) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:     "matchup <attack> <defender> [defender]",
		Short:   "Show how an attacking type fares against one or two defending types",
		Example: "  pokeparty matchup fire grass steel",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			attack, err := pokemon.ParseTypeName(args[0])
			if err != nil {
				return err
			}
			defenders, err := effectiveness.ParseDefenderTypes(args[1:])
			if err != nil {
				return err
			}
			if lang == "" {
				lang = c.cfg.PokeAPI.Language
			}

			r := effectiveness.CalculateLocalized(lang, attack, defenders)
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %s %s\n",
				typeLabels([]pokemon.TypeName{attack}, lang),
				typeLabels(defenders.Types(), lang),
				effectiveness.FormatMultiplier(r.Multiplier),
				r.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "message language (en or ja)")
	return cmd
}

func newDefenseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "defense <type> [type]",
		Short:   "List every attacking type by how it fares against a defender",
		Example: "  pokeparty defense water ground",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			defenders, err := effectiveness.ParseDefenderTypes(args)
			if err != nil {
				return err
			}
			writeProfile(cmd.OutOrStdout(), effectiveness.DefensiveProfile(defenders), c.cfg.PokeAPI.Language)
			return nil
		},
	}
}

func writeProfile(w io.Writer, p effectiveness.Profile, lang string) {
	rows := []struct {
		label    string
		matchups []effectiveness.Matchup
	}{
		{"weak", p.Weak},
		{"neutral", p.Neutral},
		{"resists", p.Resists},
		{"immune", p.Immune},
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if len(row.matchups) == 0 {
			continue
		}
		parts := make([]string, len(row.matchups))
		for i, m := range row.matchups {
			parts[i] = fmt.Sprintf("%s %s", typeLabels([]pokemon.TypeName{m.Type}, lang), effectiveness.FormatMultiplier(m.Multiplier))
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.label, strings.Join(parts, ", "))
	}
	_ = tw.Flush()
}

func newMovesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moves",
		Short: "Query the move catalog",
	}

	var limit int
	search := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find moves by display name",
		Example: "  pokeparty moves search thunder --limit 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadCatalog(cmd.Context(), c.cfg.Catalog, c.cfg.PokeAPI.Language)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.New("no move catalog configured (set catalog.path or catalog.sqlite_path)")
			}

			results := moves.NewCatalog(entries).Search(strings.Join(args, " "), limit)
			writeMoves(cmd.OutOrStdout(), results)
			return nil
		},
	}
	search.Flags().IntVarP(&limit, "limit", "l", moves.DefaultSearchLimit, "maximum results")

	cmd.AddCommand(search)
	return cmd
}

func writeMoves(w io.Writer, entries []moves.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCLASS\tPOWER")
	for _, e := range entries {
		power := "-"
		if e.Power != nil {
			power = strconv.Itoa(*e.Power)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.DisplayName, e.Type, e.DamageClass, power)
	}
	_ = tw.Flush()
}

func newPokemonCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pokemon",
		Short: "Query the species list",
	}

	var limit int
	search := &cobra.Command{
		Use:     "search <query>",
		Short:   "Find species by Japanese name",
		Example: "  pokeparty pokemon search ピカ --limit 5",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadPokedex(cmd.Context(), c.cfg.Catalog)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.New("no species list configured (set catalog.species_path or catalog.sqlite_path)")
			}

			results := pokedex.NewCatalog(entries).Search(strings.Join(args, " "), limit)
			writeSpecies(cmd.OutOrStdout(), results, c.cfg.PokeAPI.Language)
			return nil
		},
	}
	search.Flags().IntVarP(&limit, "limit", "l", pokedex.DefaultSearchLimit, "maximum results")

	cmd.AddCommand(search)
	return cmd
}

func writeSpecies(w io.Writer, entries []pokedex.Entry, lang string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tJAPANESE\tTYPES")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Name, e.JapaneseName, typeLabels(e.Types, lang))
	}
	_ = tw.Flush()
}
