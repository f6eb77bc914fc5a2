package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/party"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		req    party.Request
		random bool
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "generate [theme]",
		Short: "Generate one party and print it as JSON",
		Example: `  pokeparty generate "Volcano dwellers" --count 4
  pokeparty generate --random --battle-mode double`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Theme = args[0]
			}
			req.Mode = party.ModeTheme
			if random {
				req.Mode = party.ModeRandom
			}
			req.BattleMode = party.BattleMode(mode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := newApp(ctx, c.cfg, c.logger, c.verbose)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.generator.Generate(ctx, req)
			if err != nil {
				if rl, ok := llm.AsRateLimit(err); ok {
					return fmt.Errorf("%s is rate limiting requests, try again in %ds", rl.Provider, rl.RetryAfterSeconds())
				}
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
	cmd.Flags().BoolVar(&random, "random", false, "let the provider pick the theme")
	cmd.Flags().IntVarP(&req.Count, "count", "n", party.MaxCount, "party size (1-6)")
	cmd.Flags().StringVar(&mode, "battle-mode", string(party.Single), "single or double")
	return cmd
}
