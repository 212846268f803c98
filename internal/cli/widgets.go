package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/render"
)

// addCommand creates the "add" command.
func (c *CLI) addCommand() *cobra.Command {
	var id, size string

	cmd := &cobra.Command{
		Use:   "add <board>",
		Short: "Place a new widget in the first free position",
		Long: `Place a new widget in the first free position, scanning rows top to bottom
and columns left to right. Without --id a random identifier is generated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sz, err := parseSize(size)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			w, err := b.AddWidget(ctx, id, sz)
			if err != nil {
				return err
			}
			printSuccess("Added %s %s at %s", StyleHighlight.Render(w.ID), formatSize(w.Size), formatPosition(w.Position))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "widget identifier (default: random)")
	cmd.Flags().StringVarP(&size, "size", "s", "1x1", "widget size in cells as WxH")
	return cmd
}

// removeCommand creates the "remove" command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <board> <widget>",
		Short: "Remove a widget from a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			if err := b.RemoveWidget(ctx, args[1]); err != nil {
				return err
			}
			printSuccess("Removed %s", args[1])
			return nil
		},
	}
}

// moveCommand creates the "move" command.
func (c *CLI) moveCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "move <board> <widget> <x,y>",
		Short: "Move a widget, pushing aside whatever is in the way",
		Long: `Move a widget to a target cell. The target is clamped so the widget stays
on the grid. Widgets overlapping the target are relocated to the nearest free
space; the move fails if any of them cannot be placed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePosition(args[2])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			if dryRun {
				return c.previewMove(cmd, b, args[1], target)
			}

			displaced, err := b.Move(ctx, args[1], target)
			if err != nil {
				return err
			}
			w, _ := b.Layout().Find(args[1])
			printSuccess("Moved %s to %s", StyleHighlight.Render(args[1]), formatPosition(w.Position))
			if len(displaced) > 0 {
				printDetail("displaced: %s", strings.Join(displaced, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the drop preview without moving")
	return cmd
}

// compactCommand creates the "compact" command.
func (c *CLI) compactCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compact <board>",
		Short: "Pack widgets toward the top-left",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			moved, err := b.Compact(ctx)
			if err != nil {
				return err
			}
			if moved == 0 {
				printInfo("Already compact")
				return nil
			}
			printSuccess("Compacted %s: %s widgets moved", b.Name(), StyleNumber.Render(fmt.Sprint(moved)))
			return nil
		},
	}
}

// previewMove runs the move as a gesture and cancels it, printing the board
// with the drop preview overlaid.
func (c *CLI) previewMove(cmd *cobra.Command, b *board.Board, id string, target grid.Position) error {
	if err := b.StartGesture(id); err != nil {
		return err
	}
	defer b.CancelGesture()

	fb, err := b.UpdateGestureCell(target)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Text(b.Grid(), b.Layout(), render.TextOptions{Session: b.Session()}))

	at := formatPosition(*fb.PreviewPosition)
	switch {
	case !fb.IsValidDrop:
		printWarning("%s cannot be dropped at %s", id, at)
	case fb.WillDisplace:
		printInfo("%s would move to %s, displacing other widgets", id, at)
	default:
		printInfo("%s would move to %s", id, at)
	}
	return nil
}
