package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path; derived from the board name when empty
	format    string // svg, png or dot
	showEmpty bool   // draw free cells as dashed boxes
	title     string // graph label
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true}

// renderCommand creates the render command for exporting a board image.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "render <board>",
		Short: "Render a board to SVG, PNG or DOT",
		Long: `Render a board through Graphviz. Every widget becomes a box pinned to its
pixel rectangle, so the image matches the layout one to one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(opts.format)
			if err := validateFormat(opts.format); err != nil {
				return err
			}

			ctx := cmd.Context()
			b, closeStore, err := c.openBoard(ctx, args[0])
			if err != nil {
				return err
			}
			defer closeStore()

			return runRender(ctx, b, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <board>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.showEmpty, "show-empty", false, "draw free cells")
	cmd.Flags().StringVar(&opts.title, "title", "", "image title (default: board name)")

	return cmd
}

// validateFormat checks that format is in validFormats.
func validateFormat(format string) error {
	if !validFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg', 'png', or 'dot')", format)
	}
	return nil
}

// outputPath derives the output path from the flag value, the board name and the format.
// A flag value without an extension gets one.
func outputPath(output, name, format string) string {
	if output == "" {
		return name + "." + format
	}
	if filepath.Ext(output) == "" {
		return output + "." + format
	}
	return output
}

// runRender builds the DOT source for b and writes it in the requested format.
func runRender(ctx context.Context, b *board.Board, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	title := opts.title
	if title == "" {
		title = b.Name()
	}
	dot := render.ToDOT(b.Grid(), b.Layout(), render.DOTOptions{Title: title, ShowEmpty: opts.showEmpty})
	logger.Debugf("Generated DOT: %d bytes", len(dot))

	data, err := renderBytes(ctx, dot, opts.format)
	if err != nil {
		return err
	}

	path := outputPath(opts.output, b.Name(), opts.format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	p.done(fmt.Sprintf("Wrote %s, %d bytes", path, len(data)))
	printSuccess("Rendered %s", b.Name())
	printFile(path)
	return nil
}

// renderBytes converts DOT source to the requested format, showing a spinner
// while Graphviz runs.
func renderBytes(ctx context.Context, dot, format string) ([]byte, error) {
	if format == "dot" {
		return []byte(dot), nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.ToUpper(format)))
	spinner.Start()
	defer spinner.Stop()

	if format == "png" {
		return render.RenderPNG(ctx, dot)
	}
	return render.RenderSVG(ctx, dot)
}
