package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/render"
	"github.com/matzehuels/gridboard/pkg/store"
)

// initCommand creates the "init" command.
func (c *CLI) initCommand() *cobra.Command {
	var columns, rows int
	var cellSize, gap float64

	cmd := &cobra.Command{
		Use:   "init <board>",
		Short: "Create an empty board",
		Long: `Create an empty board. Grid dimensions default to the [grid] section
of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			g := c.cfg.Grid
			if cmd.Flags().Changed("columns") {
				g.Columns = columns
			}
			if cmd.Flags().Changed("rows") {
				g.Rows = rows
			}
			if cmd.Flags().Changed("cell-size") {
				g.CellSize = cellSize
			}
			if cmd.Flags().Changed("gap") {
				g.Gap = gap
			}
			if err := g.ValidateGrid(); err != nil {
				return err
			}

			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			existing, err := s.Get(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil {
				return errors.New(errors.ErrCodeInvalidInput, "board %q already exists", name)
			}

			b, err := board.Open(ctx, s, name, g, c.boardOptions())
			if err != nil {
				return err
			}
			if err := b.Save(ctx); err != nil {
				return err
			}

			printSuccess("Created board %s", StyleHighlight.Render(name))
			printBoardSummary(b.Grid(), b.Layout())
			printNewline()
			printNextStep("Add a widget", fmt.Sprintf("%s add %s --size 2x1", appName, name))
			return nil
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 0, "number of grid columns")
	cmd.Flags().IntVar(&rows, "rows", 0, "number of grid rows")
	cmd.Flags().Float64Var(&cellSize, "cell-size", 0, "cell size in pixels")
	cmd.Flags().Float64Var(&gap, "gap", 0, "gap between cells in pixels")

	return cmd
}

// listCommand creates the "list" command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No boards yet")
				printNextStep("Create one", appName+" init home")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rec, err := s.Get(ctx, name)
				if err != nil || rec == nil {
					printWarning("Skipping %s: %v", name, err)
					continue
				}
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%dx%d", rec.Grid.Columns, rec.Grid.Rows),
					strconv.Itoa(len(rec.Widgets)),
					rec.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), boardTable(rows))
			return nil
		},
	}
}

func boardTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Board", "Grid", "Widgets", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorAccent)
			}
			return lipgloss.NewStyle().Foreground(colorText)
		}).
		Render()
}

// showCommand creates the "show" command.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <board>",
		Short: "Print a board as a character grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(store.Record{Name: b.Name(), Grid: b.Grid(), Widgets: b.Layout()})
			}

			fmt.Fprintln(out, StyleTitle.Render(b.Name()))
			fmt.Fprint(out, render.Text(b.Grid(), b.Layout(), render.TextOptions{}))
			printBoardSummary(b.Grid(), b.Layout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored record as JSON")
	return cmd
}

// deleteCommand creates the "delete" command.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <board>",
		Aliases: []string{"rm"},
		Short:   "Delete a board",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if rec == nil {
				return errors.New(errors.ErrCodeBoardNotFound, "board %q does not exist", args[0])
			}
			if err := s.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted board %s", args[0])
			return nil
		},
	}
}
