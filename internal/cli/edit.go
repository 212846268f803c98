package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/drag"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/render"
)

// Editor styles
var (
	editHelpStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	editStatusStyle = lipgloss.NewStyle().Foreground(colorMuted)
	editErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// editCommand creates the "edit" command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <board>",
		Short: "Rearrange a board interactively",
		Long: `Open a keyboard editor for a board. Pick a widget up with enter, steer the
drop preview with the arrow keys, and press enter again to drop it. Every
drop is saved immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			final, err := tea.NewProgram(newEditModel(ctx, b), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(editModel); ok && m.err != nil {
				return m.err
			}
			return nil
		},
	}
}

// =============================================================================
// editModel - Interactive board editor
// =============================================================================

// editModel is the bubbletea model for keyboard editing. While no gesture is
// active the arrow keys move the cursor; during a gesture they move the drop
// target one cell at a time.
type editModel struct {
	ctx    context.Context
	board  *board.Board
	cursor grid.Position
	target grid.Position
	status string
	err    error // fatal store error, reported after quitting
}

func newEditModel(ctx context.Context, b *board.Board) editModel {
	return editModel{ctx: ctx, board: b, status: "enter: pick up widget"}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	active := m.board.Session().Phase() == drag.Active
	switch key.String() {
	case "q", "ctrl+c":
		m.board.CancelGesture()
		return m, tea.Quit
	case "esc":
		if !active {
			return m, tea.Quit
		}
		m.board.CancelGesture()
		m.status = "cancelled"
	case "up", "k":
		m.step(active, 0, -1)
	case "down", "j":
		m.step(active, 0, 1)
	case "left", "h":
		m.step(active, -1, 0)
	case "right", "l":
		m.step(active, 1, 0)
	case "enter", " ":
		if active {
			return m.drop()
		}
		m.pickUp()
	case "c":
		if active {
			break
		}
		moved, err := m.board.Compact(m.ctx)
		if err != nil {
			return m.fail(err)
		}
		m.status = fmt.Sprintf("compacted, %d moved", moved)
	case "u", "r":
		if active {
			break
		}
		op, fn := "undo", m.board.Undo
		if key.String() == "r" {
			op, fn = "redo", m.board.Redo
		}
		done, err := fn(m.ctx)
		if err != nil {
			return m.fail(err)
		}
		m.status = op
		if !done {
			m.status = "nothing to " + op
		}
	}
	return m, nil
}

// step moves the cursor, or the drop target while a gesture is active.
func (m *editModel) step(active bool, dx, dy int) {
	g := m.board.Grid()
	if !active {
		m.cursor = g.Clamp(grid.Position{X: m.cursor.X + dx, Y: m.cursor.Y + dy}, grid.Size{Width: 1, Height: 1})
		return
	}

	s := m.board.Session()
	m.target = g.Clamp(grid.Position{X: m.target.X + dx, Y: m.target.Y + dy}, s.Size)
	fb, err := m.board.UpdateGestureCell(m.target)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.cursor = m.target
	switch {
	case !fb.IsValidDrop:
		m.status = "no room here"
	case fb.WillDisplace:
		m.status = "drop will push widgets aside"
	default:
		m.status = "free"
	}
}

// pickUp starts a gesture on the widget under the cursor.
func (m *editModel) pickUp() {
	hit := grid.FindOverlapping(m.board.Layout(), grid.Rect{X: m.cursor.X, Y: m.cursor.Y, Width: 1, Height: 1}, "")
	if len(hit) == 0 {
		m.status = "no widget here"
		return
	}
	w := hit[0]
	if err := m.board.StartGesture(w.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.target = w.Position
	m.cursor = w.Position
	m.status = "moving " + w.ID
}

// drop ends the gesture in progress.
func (m editModel) drop() (tea.Model, tea.Cmd) {
	id := m.board.Session().ActiveWidgetID
	committed, err := m.board.EndGesture(m.ctx)
	if err != nil {
		return m.fail(err)
	}
	if committed {
		m.status = "moved " + id
	} else {
		m.status = "drop discarded"
	}
	if w, ok := m.board.Layout().Find(id); ok {
		m.cursor = w.Position
	}
	return m, nil
}

func (m editModel) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	return m, tea.Quit
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.board.Name()))
	b.WriteString("\n")
	b.WriteString(editHelpStyle.Render("arrows: move  enter: pick up/drop  esc: cancel  c: compact  u/r: undo/redo  q: quit"))
	b.WriteString("\n\n")

	cursor := m.cursor
	b.WriteString(render.Text(m.board.Grid(), m.board.Layout(), render.TextOptions{
		Session: m.board.Session(),
		Cursor:  &cursor,
	}))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(editErrorStyle.Render(m.err.Error()))
	} else {
		b.WriteString(editStatusStyle.Render(fmt.Sprintf("%s  %s", formatPosition(m.cursor), m.status)))
	}
	b.WriteString("\n")
	return b.String()
}
