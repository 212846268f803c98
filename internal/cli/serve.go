package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/internal/api"
	"github.com/matzehuels/gridboard/pkg/config"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve boards over HTTP",
		Long: `Serve the configured store as a JSON API. Boards are loaded on first use and
kept in memory with their undo history until the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}

			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			srv := api.New(s, api.Options{
				Logger:       c.Logger,
				HistoryDepth: c.cfg.HistoryDepth,
				ReadTimeout:  c.cfg.Server.ReadTimeout,
				WriteTimeout: c.cfg.Server.WriteTimeout,
			})

			printInfo("Serving boards on %s", StyleLink.Render(addr))
			printKeyValue("store", c.cfg.Store.String())
			printKeyValue("history", fmt.Sprintf("%d steps", c.cfg.HistoryDepth))
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return err
			}
			printNewline()
			printSuccess("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	return cmd
}
