// Package cli implements the gridboard command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/buildinfo"
	"github.com/matzehuels/gridboard/pkg/config"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	backend    string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gridboard arranges widgets on a fixed grid",
		Long: `Gridboard keeps named boards of rectangular widgets on a fixed cell grid.
Moving a widget onto occupied cells pushes the occupants to the nearest free
space; compaction packs everything toward the top-left.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gridboard/config.toml)")
	root.PersistentFlags().StringVar(&c.backend, "store", "", "store backend: "+strings.Join(store.Backends(), ", "))

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.compactCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg

	observability.SetBoardHooks(&logHooks{logger: c.Logger})
	observability.SetStoreHooks(&logHooks{logger: c.Logger})

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Store and Board Factories
// =============================================================================

// openStore opens the configured layout store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, c.cfg.Store)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened store", "backend", c.cfg.Store.Backend, "location", c.cfg.Store.String())
	return s, nil
}

// openBoard opens an existing board. The returned close function releases the store.
func (c *CLI) openBoard(ctx context.Context, name string) (*board.Board, func(), error) {
	s, err := c.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	b, err := board.Open(ctx, s, name, grid.Grid{}, c.boardOptions())
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return b, func() { s.Close() }, nil
}

func (c *CLI) boardOptions() board.Options {
	return board.Options{Logger: c.Logger, HistoryDepth: c.cfg.HistoryDepth}
}

// =============================================================================
// Argument Parsing
// =============================================================================

// parseSize parses "WxH" into a widget size.
func parseSize(s string) (grid.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return grid.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q must look like WxH", s)
	}
	width, err1 := strconv.Atoi(strings.TrimSpace(w))
	height, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil {
		return grid.Size{}, errors.New(errors.ErrCodeInvalidInput, "size %q must look like WxH", s)
	}
	if err := errors.ValidateDimensions("widget", width, height); err != nil {
		return grid.Size{}, err
	}
	return grid.Size{Width: width, Height: height}, nil
}

// parsePosition parses "X,Y" into a cell position.
func parsePosition(s string) (grid.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Position{}, errors.New(errors.ErrCodeInvalidInput, "position %q must look like X,Y", s)
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(xs))
	y, err2 := strconv.Atoi(strings.TrimSpace(ys))
	if err1 != nil || err2 != nil {
		return grid.Position{}, errors.New(errors.ErrCodeInvalidInput, "position %q must look like X,Y", s)
	}
	return grid.Position{X: x, Y: y}, nil
}

func formatPosition(p grid.Position) string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func formatSize(s grid.Size) string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
